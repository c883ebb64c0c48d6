package message

import (
	"fmt"
	"strings"
)

// ParseError is returned by Parse when a line is malformed.
type ParseError struct {
	// Line is the raw line we were given.
	Line string

	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse message: %s: %q", e.Reason, e.Line)
}

func parseErrorf(line, format string, args ...interface{}) error {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse parses a protocol line from the server. The line should include the
// trailing CRLF. A bare LF, or no line ending at all, is accepted too.
//
// The grammar, with each part optional except the command:
//
//   [ "@" tags SPACE ] [ ":" source SPACE ] command [ params ] crlf
//
// Parse never panics. It returns a *ParseError for malformed lines.
func Parse(line string) (Message, error) {
	body := trimLineEnding(line)

	if len(body) == 0 {
		return Message{}, parseErrorf(line, "line is blank")
	}

	if len(body)+2 > MaxLineLength {
		return Message{}, parseErrorf(line, "line is longer than %d bytes",
			MaxLineLength)
	}

	if idx := strings.IndexAny(body, "\x00\r\n"); idx != -1 {
		return Message{}, parseErrorf(line, "invalid character %q at position %d",
			body[idx], idx)
	}

	m := Message{}
	index := 0

	if body[0] == '@' {
		tags, tagsIndex, err := parseTags(body)
		if err != nil {
			return Message{}, parseErrorf(line, "problem parsing tags: %s", err)
		}
		m.tags = tags
		index = tagsIndex
	}

	if index < len(body) && body[index] == ':' {
		source, sourceIndex, err := parseSourceToken(body, index)
		if err != nil {
			return Message{}, parseErrorf(line, "problem parsing source: %s", err)
		}
		m.source = &source
		index = sourceIndex
	}

	command, index, err := parseCommand(body, index)
	if err != nil {
		return Message{}, parseErrorf(line, "problem parsing command: %s", err)
	}
	m.command = command

	m.params, m.trailing = parseParams(body, index)

	return m, nil
}

// trimLineEnding removes one trailing CRLF or LF.
func trimLineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2]
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1]
	}
	return line
}

// skipSpaces returns the index of the first non-space character at or after
// index.
func skipSpaces(body string, index int) int {
	for index < len(body) && body[index] == ' ' {
		index++
	}
	return index
}

// parseTags parses the tag section of a line. body begins with '@'.
//
// We return the tags and the index of the first character after the spaces
// following the tags. Tags is nil if the section held no pairs.
//
// Tags are separated by ';'. A ';' or a space always ends a value, escaped or
// not, so a value can never contain either one raw.
func parseTags(body string) (Tags, int, error) {
	end := strings.IndexByte(body, ' ')
	if end == -1 {
		return nil, -1, fmt.Errorf("no space after tags")
	}

	var tags Tags

	for _, item := range strings.Split(body[1:end], ";") {
		if item == "" {
			continue
		}

		key, value := item, ""
		if eq := strings.IndexByte(item, '='); eq != -1 {
			key, value = item[:eq], unescapeTagValue(item[eq+1:])
		}

		// A value without a key tells us nothing.
		if key == "" {
			continue
		}

		tags = append(tags, Tag{Key: key, Value: value})
	}

	index := skipSpaces(body, end)
	if index == len(body) {
		return nil, -1, fmt.Errorf("nothing after tags")
	}

	return tags, index, nil
}

// parseSourceToken parses the source beginning at index, which points at the
// ':'.
//
// We return the source and the index of the first character after the spaces
// following it.
func parseSourceToken(body string, index int) (Source, int, error) {
	rest := body[index+1:]

	end := strings.IndexByte(rest, ' ')
	if end == -1 {
		return Source{}, -1, fmt.Errorf("no space after source")
	}

	if end == 0 {
		return Source{}, -1, fmt.Errorf("source is zero length")
	}

	newIndex := skipSpaces(body, index+1+end)
	if newIndex == len(body) {
		return Source{}, -1, fmt.Errorf("nothing after source")
	}

	return parseSource(rest[:end]), newIndex, nil
}

// parseCommand parses the command starting at index.
//
// We return the command and the index just after it (at a space or the end
// of the line).
func parseCommand(body string, index int) (Command, int, error) {
	end := strings.IndexByte(body[index:], ' ')
	if end == -1 {
		end = len(body) - index
	}

	if end == 0 {
		return Command{}, -1, fmt.Errorf("0 length command found")
	}

	return ParseCommand(body[index : index+end]), index + end, nil
}

// parseParams parses the parameters starting at index.
//
// Runs of spaces between parameters are treated as one. A parameter beginning
// with ':' is the trailing parameter. It takes the rest of the line including
// any spaces and may be empty.
//
// The returned slice is nil when there are no parameters. The bool reports
// whether the last parameter was a trailing parameter.
func parseParams(body string, index int) ([]string, bool) {
	var params []string

	for {
		index = skipSpaces(body, index)
		if index >= len(body) {
			return params, false
		}

		if body[index] == ':' {
			return append(params, body[index+1:]), true
		}

		end := strings.IndexByte(body[index:], ' ')
		if end == -1 {
			return append(params, body[index:]), false
		}

		params = append(params, body[index:index+end])
		index += end
	}
}

// unescapeTagValue reverses the escaping of an IRCv3 tag value.
//
// An unknown escape drops the backslash. A trailing lone backslash is
// dropped.
func unescapeTagValue(v string) string {
	if strings.IndexByte(v, '\\') == -1 {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))

	for i := 0; i < len(v); i++ {
		if v[i] != '\\' {
			b.WriteByte(v[i])
			continue
		}

		i++
		if i == len(v) {
			break
		}

		switch v[i] {
		case ':':
			b.WriteByte(';')
		case 's':
			b.WriteByte(' ')
		case 'r':
			b.WriteByte('\r')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(v[i])
		}
	}

	return b.String()
}
