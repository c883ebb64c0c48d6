package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "catchat.conf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func boolPtr(b bool) *bool { return &b }

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		args    Args
		output  Config
		success bool
	}{
		{
			name: "command line only",
			args: Args{Server: "irc.example.com", Channel: "chan", Nick: "guest"},
			output: Config{
				Server:       "irc.example.com",
				Port:         "6697",
				Channel:      "chan",
				Nick:         "guest",
				PollInterval: time.Second,
				WriteTimeout: 30 * time.Second,
			},
			success: true,
		},
		{
			name: "file only",
			file: `# A comment
server = irc.example.com
port = 6667
channel = #chan
nick = guest
realname = Guest User
tls = true
raw = false
poll-interval = 250ms
write-timeout = 10s
`,
			output: Config{
				Server:       "irc.example.com",
				Port:         "6667",
				Channel:      "#chan",
				Nick:         "guest",
				RealName:     "Guest User",
				TLS:          true,
				PollInterval: 250 * time.Millisecond,
				WriteTimeout: 10 * time.Second,
			},
			success: true,
		},
		{
			name: "command line wins",
			file: `server = irc.example.com
channel = chan
nick = guest
tls = true
`,
			args: Args{Nick: "other", Port: "7000", TLS: boolPtr(false),
				Raw: boolPtr(true)},
			output: Config{
				Server:       "irc.example.com",
				Port:         "7000",
				Channel:      "chan",
				Nick:         "other",
				PollInterval: time.Second,
				WriteTimeout: 30 * time.Second,
				Raw:          true,
			},
			success: true,
		},
		{
			name:    "missing nick",
			args:    Args{Server: "irc.example.com", Channel: "chan"},
			success: false,
		},
		{
			name:    "missing server",
			file:    "channel = chan\nnick = guest\n",
			success: false,
		},
		{
			name:    "unknown key",
			file:    "server = a\nchannel = b\nnick = c\nmotd = hi\n",
			success: false,
		},
		{
			name:    "bad port",
			file:    "server = a\nchannel = b\nnick = c\nport = 70000\n",
			success: false,
		},
		{
			name:    "bad tls",
			file:    "server = a\nchannel = b\nnick = c\ntls = maybe\n",
			success: false,
		},
		{
			name:    "bad poll interval",
			file:    "server = a\nchannel = b\nnick = c\npoll-interval = soon\n",
			success: false,
		},
		{
			name:    "zero write timeout",
			file:    "server = a\nchannel = b\nnick = c\nwrite-timeout = 0s\n",
			success: false,
		},
		{
			name:    "key twice",
			file:    "server = a\nserver = b\nchannel = b\nnick = c\n",
			success: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := test.args
			if test.file != "" {
				args.ConfigFile = writeConfig(t, test.file)
			}

			cfg, err := buildConfig(args)
			if !test.success {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.output, cfg)
		})
	}
}

func TestBuildConfigMissingFile(t *testing.T) {
	_, err := buildConfig(Args{
		ConfigFile: filepath.Join(t.TempDir(), "nope.conf"),
	})
	assert.Error(t, err)
}
