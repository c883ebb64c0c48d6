package message

import (
	"testing"

	"github.com/horgh/irc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lines without tags must decode the same way as they do with horgh/irc.
func TestParseAgreesWithIRC(t *testing.T) {
	lines := []string{
		":irc.example.com NOTICE * :*** Looking up your hostname...\r\n",
		":dan!d@localhost PRIVMSG #chan :Hey!\r\n",
		":dan!d@localhost PRIVMSG #chan Hey!\r\n",
		"PING :12345\r\n",
		":irc.example.com 001 guest :Welcome to the network guest\r\n",
		"CAP REQ :sasl message-tags foo\r\n",
		":irc.example.com CAP * LIST :\r\n",
		":irc.example.com 372 guest :- some motd line\r\n",
		"ERROR :Closing Link: guest (Quit)\r\n",
	}

	for _, line := range lines {
		want, err := irc.ParseMessage(line)
		require.NoError(t, err, "irc.ParseMessage(%q)", line)

		got, err := Parse(line)
		require.NoError(t, err, "Parse(%q)", line)

		source, _ := got.Source()
		assert.Equal(t, want.Prefix, source.String(), "source of %q", line)
		assert.Equal(t, want.Command, got.Command().String(), "command of %q",
			line)
		assert.Equal(t, want.Params, got.Params(), "params of %q", line)
	}
}

// What we encode must decode with horgh/irc to the same command and params.
func TestEncodeAgreesWithIRC(t *testing.T) {
	messages := []Message{
		CapLS("302"),
		Nick("guest"),
		User("guest", "Developer"),
		CapEnd(),
		Join("#chan"),
		Pong("irc.example.com"),
		MOTD(),
		PrivMsg("#chan", "hello there"),
	}

	for _, m := range messages {
		line := string(Encode(m))

		got, err := irc.ParseMessage(line)
		require.NoError(t, err, "irc.ParseMessage(%q)", line)

		assert.Equal(t, "", got.Prefix)
		assert.Equal(t, m.Command().String(), got.Command)
		assert.Equal(t, len(m.Params()), len(got.Params), "params of %q", line)
		for i, param := range m.Params() {
			if i < len(got.Params) {
				assert.Equal(t, param, got.Params[i], "param %d of %q", i, line)
			}
		}
	}
}
