package display

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/horgh/catchat/internal/message"
	"github.com/horgh/catchat/internal/queue"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter(raw bool) (*Printer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	p := NewPrinter(buf, "guest", raw)
	p.SetColorProfile(termenv.Ascii)
	return p, buf
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{":dan!d@localhost PRIVMSG #chan :Hey!\r\n", "[#chan] <dan> Hey!"},
		{":dan!d@localhost PRIVMSG #chan :\x01ACTION waves\x01\r\n",
			"[#chan] * dan waves"},
		{":dan!d@localhost PRIVMSG guest :psst\r\n", "*dan* psst"},
		{":dan!d@localhost PRIVMSG guest :\x01ACTION waves\x01\r\n",
			"* dan waves"},
		{":irc.example.com NOTICE * :*** Looking up your hostname...\r\n",
			"-irc.example.com- *** Looking up your hostname..."},
		{"NOTICE guest :hi\r\n", "-*- hi"},
		{":irc.example.com 001 guest :Welcome to the network guest\r\n",
			"RPL_WELCOME Welcome to the network guest"},
		{":irc.example.com 372 guest :- a motd line\r\n",
			"RPL_MOTD - a motd line"},
		{":irc.example.com 005 guest NICKLEN=30 :are supported\r\n",
			"005 NICKLEN=30 are supported"},
		{":irc.example.com 999\r\n", "999"},
		{":guest!~g@localhost JOIN #chan\r\n", "*** guest joined #chan"},
		{":guest!~g@localhost NICK guest_\r\n",
			"*** guest is now known as guest_"},
		{"ERROR :Closing Link: guest (Quit)\r\n",
			"ERROR Closing Link: guest (Quit)"},
		{"PING :abc\r\n", ""},
		{":irc.example.com PONG irc.example.com\r\n", ""},
		{":irc.example.com CAP * LS :sasl\r\n", ""},
		{":dan!d@localhost KICK #chan guest :bye\r\n",
			":dan!d@localhost KICK #chan guest :bye"},
	}

	p, _ := newTestPrinter(false)

	for _, test := range tests {
		m, err := message.Parse(test.input)
		require.NoError(t, err, "parsing %q", test.input)
		assert.Equal(t, test.output, p.Format(m), "input %q", test.input)
	}
}

func TestFormatRaw(t *testing.T) {
	p, _ := newTestPrinter(true)

	m, err := message.Parse("@a=b :irc.example.com PING :abc def\r\n")
	require.NoError(t, err)
	assert.Equal(t, "@a=b :irc.example.com PING :abc def", p.Format(m))
}

func TestRun(t *testing.T) {
	p, buf := newTestPrinter(false)

	q := queue.New[message.Message]()
	for _, line := range []string{
		"PING :abc\r\n",
		":dan!d@localhost PRIVMSG #chan :one\r\n",
		":dan!d@localhost PRIVMSG #chan :two\r\n",
	} {
		m, err := message.Parse(line)
		require.NoError(t, err)
		require.NoError(t, q.Send(m))
	}
	q.CloseSend()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Run(ctx, q))
	assert.Equal(t, "[#chan] <dan> one\n[#chan] <dan> two\n", buf.String())
}

// Once the printer stops, senders find out.
func TestRunStops(t *testing.T) {
	p, _ := newTestPrinter(false)
	q := queue.New[message.Message]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, context.Canceled, p.Run(ctx, q))
	assert.Equal(t, queue.ErrDeliveryFailed, q.Send(message.MOTD()))
}

func TestFatal(t *testing.T) {
	p, buf := newTestPrinter(false)

	p.Fatal(errors.New("error during read: EOF"))
	assert.Equal(t, "*** Disconnected: error during read: EOF\n", buf.String())
}
