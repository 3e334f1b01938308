package input

import (
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

// Config configures the shortcut engine.
type Config struct {
	// SequenceTimeout is how long a partial sequence waits for its next key.
	// Zero or less disables the timeout.
	// DefaultConfig sets 1000ms.
	SequenceTimeout time.Duration

	// AllowWhileTyping lists key specifications that stay active inside
	// editable targets. A nil list means Escape and ?; an empty non-nil
	// list allows nothing.
	AllowWhileTyping []string

	// Strict rejects binding tables with duplicate patterns in LoadBindings.
	Strict bool
}

var defaultAllowWhileTyping = []string{"Escape", "?"}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout:  1000 * time.Millisecond,
		AllowWhileTyping: append([]string(nil), defaultAllowWhileTyping...),
	}
}

// withDefaults fills the fields whose zero value has a default meaning.
func (c Config) withDefaults() Config {
	if c.AllowWhileTyping == nil {
		c.AllowWhileTyping = append([]string(nil), defaultAllowWhileTyping...)
	}
	return c
}

// AllowTokens parses the allow-list. Invalid entries are returned as errors
// alongside the tokens that did parse.
func (c Config) AllowTokens() ([]key.Token, []error) {
	toks := make([]key.Token, 0, len(c.AllowWhileTyping))
	var errs []error
	for _, spec := range c.AllowWhileTyping {
		tok, err := key.ParseToken(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, tok)
	}
	return toks, errs
}
