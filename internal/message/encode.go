package message

import (
	"bytes"
	"strings"
)

// Encode encodes the message into a protocol line ending with CRLF.
//
// The line is the command followed by each parameter, separated by single
// spaces. If the message was built with a trailing parameter, the last
// parameter is prefixed with ':'. Parameters are otherwise written as they
// are: no quoting is added based on their content, and it is up to the
// caller to not put CR or LF in them.
//
// Tags and source are never written. Messages a client sends do not carry
// them.
func Encode(m Message) []byte {
	var buf bytes.Buffer

	buf.WriteString(m.command.String())

	for i, param := range m.params {
		buf.WriteByte(' ')
		if m.trailing && i == len(m.params)-1 {
			buf.WriteByte(':')
		}
		buf.WriteString(param)
	}

	buf.WriteString("\r\n")

	return buf.Bytes()
}

// tagEscaper escapes tag values for display.
var tagEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\:",
	" ", "\\s",
	"\r", "\\r",
	"\n", "\\n",
)

// String renders the whole message, including tags and source, in wire form
// without the line ending. It is meant for logs and raw display.
func (m Message) String() string {
	var b strings.Builder

	if len(m.tags) > 0 {
		b.WriteByte('@')
		for i, tag := range m.tags {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(tag.Key)
			if tag.Value != "" {
				b.WriteByte('=')
				b.WriteString(tagEscaper.Replace(tag.Value))
			}
		}
		b.WriteByte(' ')
	}

	if m.source != nil {
		b.WriteByte(':')
		b.WriteString(m.source.String())
		b.WriteByte(' ')
	}

	b.WriteString(m.command.String())

	for i, param := range m.params {
		b.WriteByte(' ')
		if m.trailing && i == len(m.params)-1 {
			b.WriteByte(':')
		}
		b.WriteString(param)
	}

	return b.String()
}
