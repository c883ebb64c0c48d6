package message

import (
	"fmt"
	"strings"
)

// Kind says which variant of Command a value is.
type Kind int

const (
	// KindUnknown is a command we have no name for. The token is kept as is.
	KindUnknown Kind = iota

	// KindNumeric is a three digit reply.
	KindNumeric

	KindCap
	KindNotice
	KindNick
	KindUser
	KindJoin
	KindPrivMsg
	KindPing
	KindPong
	KindError
	KindMOTD
)

// verbs maps the canonical text of each known verb to its kind.
var verbs = map[string]Kind{
	"CAP":     KindCap,
	"NOTICE":  KindNotice,
	"NICK":    KindNick,
	"USER":    KindUser,
	"JOIN":    KindJoin,
	"PRIVMSG": KindPrivMsg,
	"PING":    KindPing,
	"PONG":    KindPong,
	"ERROR":   KindError,
	"MOTD":    KindMOTD,
}

var verbText = func() map[Kind]string {
	m := make(map[Kind]string, len(verbs))
	for text, kind := range verbs {
		m[kind] = text
	}
	return m
}()

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindNumeric:
		return "numeric"
	}
	if text, ok := verbText[k]; ok {
		return text
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Command is the verb of a message: a known textual command, a numeric reply,
// or an unknown token.
//
// Commands are comparable, so they may be used with == and in switch
// statements.
type Command struct {
	kind Kind

	// Set for KindNumeric. 0 to 999.
	code int

	// Set for KindUnknown.
	token string
}

// Known commands.
var (
	CmdCap     = Command{kind: KindCap}
	CmdNotice  = Command{kind: KindNotice}
	CmdNick    = Command{kind: KindNick}
	CmdUser    = Command{kind: KindUser}
	CmdJoin    = Command{kind: KindJoin}
	CmdPrivMsg = Command{kind: KindPrivMsg}
	CmdPing    = Command{kind: KindPing}
	CmdPong    = Command{kind: KindPong}
	CmdError   = Command{kind: KindError}
	CmdMOTD    = Command{kind: KindMOTD}
)

// Numeric replies we know by name.
var (
	RplWelcome   = Numeric(1)
	RplYourHost  = Numeric(2)
	RplCreated   = Numeric(3)
	RplMyInfo    = Numeric(4)
	RplMOTD      = Numeric(372)
	RplMOTDStart = Numeric(375)
	RplEndOfMOTD = Numeric(376)
)

var numericNames = map[int]string{
	1:   "RPL_WELCOME",
	2:   "RPL_YOURHOST",
	3:   "RPL_CREATED",
	4:   "RPL_MYINFO",
	372: "RPL_MOTD",
	375: "RPL_MOTDSTART",
	376: "RPL_ENDOFMOTD",
}

// Numeric creates a numeric reply command. code must be in the range 0 to
// 999.
func Numeric(code int) Command {
	return Command{kind: KindNumeric, code: code}
}

// Unknown creates a command for a token we don't recognise.
func Unknown(token string) Command {
	return Command{kind: KindUnknown, token: token}
}

// ParseCommand turns a command token from the wire into a Command.
//
// Exactly three ASCII digits is a numeric. Known verbs match regardless of
// case. Anything else is an Unknown command holding the token verbatim.
func ParseCommand(token string) Command {
	if isNumeric(token) {
		code := int(token[0]-'0')*100 + int(token[1]-'0')*10 + int(token[2]-'0')
		return Numeric(code)
	}

	if kind, ok := verbs[strings.ToUpper(token)]; ok {
		return Command{kind: kind}
	}

	return Unknown(token)
}

func isNumeric(token string) bool {
	if len(token) != 3 {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}

// Kind returns which variant the command is.
func (c Command) Kind() Kind {
	return c.kind
}

// Code returns the numeric value of a numeric reply.
func (c Command) Code() (int, bool) {
	if c.kind != KindNumeric {
		return 0, false
	}
	return c.code, true
}

// String returns the command as it appears on the wire. Numerics are three
// zero padded digits.
func (c Command) String() string {
	switch c.kind {
	case KindNumeric:
		return fmt.Sprintf("%03d", c.code)
	case KindUnknown:
		return c.token
	}
	return verbText[c.kind]
}

// Name returns a human readable name. For numerics we know this is the RFC
// name such as RPL_WELCOME. Otherwise it is the same as String.
func (c Command) Name() string {
	if c.kind == KindNumeric {
		if name, ok := numericNames[c.code]; ok {
			return name
		}
	}
	return c.String()
}
