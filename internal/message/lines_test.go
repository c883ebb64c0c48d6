package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBuffer(t *testing.T) {
	tests := []struct {
		chunks []string
		lines  []string
		left   int
	}{
		{[]string{"PING a\r\n"}, []string{"PING a\r\n"}, 0},
		{[]string{"PING a\r\nPING b\r\n"}, []string{"PING a\r\n", "PING b\r\n"},
			0},
		// Line boundary inside a read.
		{[]string{"PING a\r\nPI", "NG b\r", "\n"},
			[]string{"PING a\r\n", "PING b\r\n"}, 0},
		{[]string{"PI", "NG", " a", "\r\n"}, []string{"PING a\r\n"}, 0},
		// Partial line stays buffered.
		{[]string{"PING a\r\nPING"}, []string{"PING a\r\n"}, 4},
		// Blank lines are dropped.
		{[]string{"\r\n\nPING a\n\r\n"}, []string{"PING a\n"}, 0},
		{[]string{""}, nil, 0},
	}

	for _, test := range tests {
		var b LineBuffer
		var lines []string
		for _, chunk := range test.chunks {
			lines = append(lines, b.Feed([]byte(chunk))...)
		}
		assert.Equal(t, test.lines, lines, "chunks %q", test.chunks)
		assert.Equal(t, test.left, b.Pending(), "chunks %q", test.chunks)
	}
}

func TestLineBufferOverlong(t *testing.T) {
	var b LineBuffer

	long := strings.Repeat("a", MaxLineLength+1)

	lines := b.Feed([]byte("PRIVMSG #a :" + long))
	if assert.Len(t, lines, 1) {
		_, err := Parse(lines[0])
		assert.Error(t, err)
	}
	assert.Equal(t, 0, b.Pending())

	// The rest of the overlong line is dropped. The next line is intact.
	lines = b.Feed([]byte("more of it\r\nPING x\r\n"))
	assert.Equal(t, []string{"PING x\r\n"}, lines)
}
