package message

import (
	"bytes"
	"strings"
)

// LineBuffer splits a byte stream into lines.
//
// Reads from a connection do not line up with lines: one read may hold
// several lines and the end of a read may fall in the middle of one.
// LineBuffer keeps the partial line until the rest of it arrives.
//
// The zero value is ready to use.
type LineBuffer struct {
	pending []byte

	// Set after we gave up on an overlong line. We drop input until the next
	// LF.
	discarding bool
}

// Feed adds a chunk read from the stream and returns each line it completed,
// in order. Lines include their line ending. Blank lines are dropped.
//
// A line that grows past MaxLineLength without a LF is returned as is (so
// Parse reports it) and the rest of it is dropped.
func (b *LineBuffer) Feed(chunk []byte) []string {
	var lines []string

	for len(chunk) > 0 {
		idx := bytes.IndexByte(chunk, '\n')

		if b.discarding {
			if idx == -1 {
				return lines
			}
			b.discarding = false
			chunk = chunk[idx+1:]
			continue
		}

		if idx == -1 {
			b.pending = append(b.pending, chunk...)
			break
		}

		b.pending = append(b.pending, chunk[:idx+1]...)
		chunk = chunk[idx+1:]

		line := string(b.pending)
		b.pending = b.pending[:0]

		if strings.TrimRight(line, "\r\n") == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(b.pending) > MaxLineLength {
		lines = append(lines, string(b.pending))
		b.pending = nil
		b.discarding = true
	}

	return lines
}

// Pending returns how many bytes of a partial line are buffered.
func (b *LineBuffer) Pending() int {
	return len(b.pending)
}
