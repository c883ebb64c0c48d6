package message

import "strings"

// CapLS starts capability negotiation. version is the CAP version we speak,
// such as "302".
func CapLS(version string) Message {
	return New(CmdCap, "LS", version)
}

// CapEnd ends capability negotiation.
func CapEnd() Message {
	return New(CmdCap, "END")
}

// Nick sets our nickname.
func Nick(nick string) Message {
	return New(CmdNick, nick)
}

// User registers our user name and real name. The mode is 0 and the unused
// parameter is "*" (RFC 2812 section 3.1.3).
func User(user, realname string) Message {
	return NewTrailing(CmdUser, user, "0", "*", realname)
}

// Join requests to join a channel. The channel name is used as is.
func Join(channel string) Message {
	return New(CmdJoin, channel)
}

// Pong answers a PING with the token the server sent. The token goes out as
// a trailing parameter only if it could not be sent as a plain one.
func Pong(token string) Message {
	if token == "" || strings.ContainsRune(token, ' ') || token[0] == ':' {
		return NewTrailing(CmdPong, token)
	}
	return New(CmdPong, token)
}

// MOTD asks the server for its message of the day.
func MOTD() Message {
	return New(CmdMOTD)
}

// PrivMsg sends text to a channel or nick.
func PrivMsg(target, text string) Message {
	return NewTrailing(CmdPrivMsg, target, text)
}
