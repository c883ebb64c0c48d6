// Package message provides the data model and codec for IRC protocol lines
// as seen by a client: decoding lines read from a server into Messages, and
// encoding Messages the client sends.
package message

import (
	"strings"
)

const (
	// MaxLineLength is the longest line we accept, including CRLF. It is the
	// IRCv3 message-tags budget (8191 bytes for the tag section) plus the RFC
	// 1459 limit for the rest of the line (512 bytes).
	MaxLineLength = 8191 + 512
)

// Tag is a single IRCv3 message tag. A tag sent without a value has Value "".
type Tag struct {
	Key   string
	Value string
}

// Tags holds message tags in the order they appeared on the line.
//
// Keys are not required to be unique. We keep every pair we see.
type Tags []Tag

// Get returns the value of the first tag with the given key.
func (t Tags) Get(key string) (string, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag.Value, true
		}
	}
	return "", false
}

// Has reports whether a tag with the given key is present.
func (t Tags) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Source identifies where a message came from. It is either a bare name (a
// server name or a nick) or a full nick!user@host triple.
type Source struct {
	Nick string
	User string
	Host string
}

// Full reports whether the source carries user and host.
func (s Source) Full() bool {
	return s.User != "" && s.Host != ""
}

// Is compares the nick of the source against the given nick. It does not
// look at user or host.
func (s Source) Is(nick string) bool {
	return s.Nick == nick
}

func (s Source) String() string {
	if !s.Full() {
		return s.Nick
	}
	return s.Nick + "!" + s.User + "@" + s.Host
}

// parseSource splits a source token into nick, user, and host.
//
// If the token is not of the form nick!user@host with all three parts
// present, the whole token is the nick.
func parseSource(token string) Source {
	bang := strings.IndexByte(token, '!')
	if bang <= 0 {
		return Source{Nick: token}
	}

	at := strings.IndexByte(token[bang+1:], '@')
	if at <= 0 {
		return Source{Nick: token}
	}
	at += bang + 1

	if at == len(token)-1 {
		return Source{Nick: token}
	}

	return Source{
		Nick: token[:bang],
		User: token[bang+1 : at],
		Host: token[at+1:],
	}
}

// Message is a protocol message. See section 2.3.1 of RFC 1459 and the IRCv3
// message-tags extension.
//
// A Message is a value. Its fields are only set while parsing or by the
// constructors in this package, and the accessors hand out copies.
type Message struct {
	tags    Tags
	source  *Source
	command Command
	params  []string

	// Whether the last parameter is a trailing parameter (introduced with ':'
	// on the wire).
	trailing bool
}

// New creates a Message with the given command and parameters. None of the
// parameters may contain a space or start with ':'. Use NewTrailing if the
// last parameter needs to.
//
// Messages we send never carry tags or a source.
func New(command Command, params ...string) Message {
	m := Message{command: command}
	if len(params) > 0 {
		m.params = append([]string(nil), params...)
	}
	return m
}

// NewTrailing creates a Message whose last parameter is sent as a trailing
// parameter. It may contain spaces or be empty.
func NewTrailing(command Command, params ...string) Message {
	m := New(command, params...)
	m.trailing = len(m.params) > 0
	return m
}

// Tags returns a copy of the message's tags. It is nil if the message had
// none.
func (m Message) Tags() Tags {
	if m.tags == nil {
		return nil
	}
	return append(Tags(nil), m.tags...)
}

// Source returns the message's source, if it had one.
func (m Message) Source() (Source, bool) {
	if m.source == nil {
		return Source{}, false
	}
	return *m.source, true
}

// Command returns the message's command.
func (m Message) Command() Command {
	return m.command
}

// Params returns a copy of the message's parameters. It is nil if the message
// had no parameters.
func (m Message) Params() []string {
	if m.params == nil {
		return nil
	}
	return append([]string(nil), m.params...)
}

// Param returns the parameter at index i (starting at 0).
func (m Message) Param(i int) (string, bool) {
	if i < 0 || i >= len(m.params) {
		return "", false
	}
	return m.params[i], true
}

// NumParams returns how many parameters the message has.
func (m Message) NumParams() int {
	return len(m.params)
}

// HasTrailing reports whether the last parameter is a trailing parameter.
func (m Message) HasTrailing() bool {
	return m.trailing
}

// SourceNick returns the nick of the message's source, or "" if there is
// none.
func (m Message) SourceNick() string {
	if m.source == nil {
		return ""
	}
	return m.source.Nick
}
