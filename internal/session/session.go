// Package session tracks where a client is in its conversation with a server
// and decides what to send in response to what arrives.
//
// A Session does no I/O. The caller feeds it decoded messages and writes out
// the messages it returns.
package session

import (
	"fmt"

	"github.com/horgh/catchat/internal/message"
	"github.com/pkg/errors"
)

// DefaultRealName is the real name we register with if none is set.
const DefaultRealName = "Developer"

// CapVersion is the capability negotiation version we request.
const CapVersion = "302"

// State is the phase of the session.
type State int

const (
	// Connecting means we have not sent anything yet.
	Connecting State = iota

	// Registering means we sent our registration and are waiting for the
	// server to welcome us.
	Registering

	// Joining means we are registered and asked to join our channel.
	Joining

	// Active means we are in our channel.
	Active
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Registering:
		return "registering"
	case Joining:
		return "joining"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ProtocolError means a message was well formed but not something we can act
// on. The session is unchanged.
type ProtocolError struct {
	Message message.Message
	Reason  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s: %s", e.Reason, e.Message)
}

// Config holds what we need to register and join.
type Config struct {
	Nick     string
	Channel  string
	RealName string
}

// Session is the client side state of one connection.
//
// It is not safe for concurrent use.
type Session struct {
	state State

	// Set once the server welcomes us.
	registered bool

	// Set once we see ourselves join our channel.
	joined bool

	nick     string
	channel  string
	realname string

	// Chat text requested before we were in the channel, in request order.
	pending []string
}

// New creates a Session. The channel is normalized to start with '#'.
//
// Nick, channel, and real name are used as given. We only refuse ones that
// would break the line they are sent in.
func New(cfg Config) (*Session, error) {
	if breaksLine(cfg.Nick) {
		return nil, errors.Errorf("nick contains a line break or NUL: %q",
			cfg.Nick)
	}

	if breaksLine(cfg.Channel) {
		return nil, errors.Errorf("channel contains a line break or NUL: %q",
			cfg.Channel)
	}

	if breaksLine(cfg.RealName) {
		return nil, errors.Errorf("real name contains a line break or NUL: %q",
			cfg.RealName)
	}

	channel := NormalizeChannel(cfg.Channel)

	realname := cfg.RealName
	if realname == "" {
		realname = DefaultRealName
	}

	return &Session{
		state:    Connecting,
		nick:     cfg.Nick,
		channel:  channel,
		realname: realname,
	}, nil
}

// Start returns the registration messages to send on a new connection, in
// order. It does anything only the first time.
func (s *Session) Start() []message.Message {
	if s.state != Connecting {
		return nil
	}

	s.state = Registering

	return []message.Message{
		message.CapLS(CapVersion),
		message.Nick(s.nick),
		message.User(s.nick, s.realname),
		message.CapEnd(),
	}
}

// Handle processes one message from the server and returns the messages to
// send in response, in order.
//
// A *ProtocolError means the message could not be acted on. The caller should
// log it and carry on.
func (s *Session) Handle(m message.Message) ([]message.Message, error) {
	switch m.Command().Kind() {
	case message.KindPing:
		return s.pingCommand(m)
	case message.KindNumeric:
		if m.Command() == message.RplWelcome {
			return s.welcomeCommand(), nil
		}
	case message.KindJoin:
		return s.joinCommand(m), nil
	case message.KindNick:
		s.nickCommand(m)
	}

	return nil, nil
}

func (s *Session) pingCommand(m message.Message) ([]message.Message, error) {
	token, ok := m.Param(0)
	if !ok {
		return nil, &ProtocolError{Message: m, Reason: "PING without a token"}
	}

	return []message.Message{message.Pong(token)}, nil
}

// The server accepted our registration. Join our channel.
func (s *Session) welcomeCommand() []message.Message {
	if s.state != Registering {
		return nil
	}

	s.registered = true
	s.state = Joining

	return []message.Message{
		message.MOTD(),
		message.Join(s.channel),
	}
}

// When we see ourselves join our channel we are in it. Anything we were asked
// to say before then goes out now.
func (s *Session) joinCommand(m message.Message) []message.Message {
	if s.state != Joining {
		return nil
	}

	source, ok := m.Source()
	if !ok || canonicalizeNick(source.Nick) != canonicalizeNick(s.nick) {
		return nil
	}

	channel, ok := m.Param(0)
	if !ok || canonicalizeChannel(channel) != canonicalizeChannel(s.channel) {
		return nil
	}

	s.joined = true
	s.state = Active

	var replies []message.Message
	for _, text := range s.pending {
		replies = append(replies, message.PrivMsg(s.channel, text))
	}
	s.pending = nil

	return replies
}

// The server may change our nick. Follow it so we still recognize ourselves.
func (s *Session) nickCommand(m message.Message) {
	source, ok := m.Source()
	if !ok || canonicalizeNick(source.Nick) != canonicalizeNick(s.nick) {
		return
	}

	nick, ok := m.Param(0)
	if !ok || nick == "" {
		return
	}

	s.nick = nick
}

// Say returns the message that sends text to our channel.
//
// If we are not in the channel yet, it remembers the text and returns nothing.
// Handle returns it once we join.
func (s *Session) Say(text string) []message.Message {
	if text == "" {
		return nil
	}

	if s.state != Active {
		s.pending = append(s.pending, text)
		return nil
	}

	return []message.Message{message.PrivMsg(s.channel, text)}
}

// State returns the phase the session is in.
func (s *Session) State() State { return s.state }

// Registered tells whether the server has welcomed us.
func (s *Session) Registered() bool { return s.registered }

// Joined tells whether we are in our channel.
func (s *Session) Joined() bool { return s.joined }

// Nick returns our current nick.
func (s *Session) Nick() string { return s.nick }

// Channel returns our channel.
func (s *Session) Channel() string { return s.channel }

// Pending returns how many chat messages are waiting for us to join.
func (s *Session) Pending() int { return len(s.pending) }
