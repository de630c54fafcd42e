// Package model defines the data exchanged between the desk front ends and the notice API.
package model

import "strings"

// Party is one side of a notice. It is parsed from a free-text block whose
// first line is the name and whose remaining lines form the address.
type Party struct {
	Name    string
	Address string
}

// ParseParty splits a block into name and address. Address lines are joined
// with ", " verbatim; only the name is trimmed.
func ParseParty(block string) Party {
	lines := strings.Split(NormalizeNewlines(block), "\n")
	return Party{
		Name:    strings.TrimSpace(lines[0]),
		Address: strings.Join(lines[1:], ", "),
	}
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF. Browsers
// submit textarea content with CRLF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
