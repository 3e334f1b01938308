package key

import (
	"strings"
)

// Sequence represents a series of key tokens forming a shortcut.
// Examples: "g d" (go to dashboard), "control+s" (save), "r o d e o"
type Sequence []Token

// NewSequence creates a sequence from the given tokens.
func NewSequence(tokens ...Token) Sequence {
	seq := make(Sequence, len(tokens))
	copy(seq, tokens)
	return seq
}

// Len returns the number of tokens in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no tokens.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Last returns the last token, or "" if empty.
func (s Sequence) Last() Token {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// String returns the space separated form, which ParseSequence accepts.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, t := range s {
		if t != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, t := range prefix {
		if t != s[i] {
			return false
		}
	}
	return true
}

// HasStrictPrefix returns true if prefix is a proper, shorter prefix of s.
func (s Sequence) HasStrictPrefix(prefix Sequence) bool {
	return len(prefix) < len(s) && s.HasPrefix(prefix)
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return NewSequence(s...)
}

// ParseSequence parses a whitespace separated key sequence string.
// Examples: "g d", "Ctrl+S", "r o d e o"
func ParseSequence(s string) (Sequence, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, ErrEmptySpec
	}

	seq := make(Sequence, 0, len(parts))
	for _, part := range parts {
		tok, err := ParseToken(part)
		if err != nil {
			return nil, err
		}
		seq = append(seq, tok)
	}
	return seq, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
