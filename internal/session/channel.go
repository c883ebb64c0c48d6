package session

import (
	"strings"
)

// NormalizeChannel returns the channel name with a single leading '#'.
//
// Note: We don't check validity or strip whitespace.
func NormalizeChannel(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

// canonicalizeNick converts the given nick to its canonical representation
// for comparison.
func canonicalizeNick(n string) string {
	return strings.ToLower(n)
}

// canonicalizeChannel converts the given channel to its canonical
// representation for comparison.
func canonicalizeChannel(c string) string {
	return strings.ToLower(c)
}

// breaksLine checks if s holds a character that would end or corrupt the line
// it is sent in. Nick and channel syntax is otherwise up to the server.
func breaksLine(s string) bool {
	return strings.ContainsAny(s, "\r\n\x00")
}
