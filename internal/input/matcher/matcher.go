// Package matcher resolves a stream of key tokens against a binding table.
//
// The matcher owns a short rolling buffer of recent tokens. Each new token
// is appended and the buffer is classified as an exact match, a strict
// prefix of a longer binding, or nothing. An exact match always fires at
// once, even when a longer binding shares the same prefix.
package matcher

import (
	"io"
	"log/slog"
	"time"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Status is the outcome of feeding one token to the matcher.
type Status uint8

const (
	// NoMatch means the token matched nothing and the buffer is empty.
	NoMatch Status = iota

	// Buffering means the buffer is a strict prefix of a longer binding.
	Buffering

	// Resolved means the buffer matched a binding exactly and was cleared.
	Resolved
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Buffering:
		return "buffering"
	case Resolved:
		return "resolved"
	default:
		return "no-match"
	}
}

// Result is returned by OnToken. Binding is set only when Status is Resolved.
type Result struct {
	Status  Status
	Binding *keymap.Binding
}

// Matcher is the sequence state machine. It is not safe for concurrent use;
// the engine serializes access.
type Matcher struct {
	table   *keymap.Table
	timeout time.Duration
	logger  *slog.Logger

	buffer key.Sequence
	last   time.Time
}

// New creates a matcher over table. A timeout of zero or less disables
// buffer expiry.
func New(table *keymap.Table, timeout time.Duration, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Matcher{
		table:   table,
		timeout: timeout,
		logger:  logger,
	}
}

// Timeout returns the configured buffer timeout.
func (m *Matcher) Timeout() time.Duration {
	return m.timeout
}

// OnToken feeds one token, observed at now, through the matcher.
func (m *Matcher) OnToken(tok key.Token, now time.Time) Result {
	if m.Expired(now) {
		m.logger.Debug("sequence timed out", "pending", m.buffer.String())
		m.Reset()
	}

	m.buffer = append(m.buffer, tok)
	m.last = now

	if r, ok := m.classify(m.buffer); ok {
		return r
	}

	// The buffer went nowhere; the token may still start a fresh sequence.
	if len(m.buffer) > 1 {
		m.buffer = key.Sequence{tok}
		if r, ok := m.classify(m.buffer); ok {
			return r
		}
	}

	m.Reset()
	return Result{Status: NoMatch}
}

// classify handles the exact and prefix cases for candidate. It reports
// false when candidate matches nothing.
func (m *Matcher) classify(candidate key.Sequence) (Result, bool) {
	if m.table == nil {
		return Result{}, false
	}

	if exact := m.table.Lookup(candidate); len(exact) > 0 {
		if len(exact) > 1 {
			m.logger.Warn("duplicate binding, first registered wins",
				"pattern", candidate.String(),
				"count", len(exact))
		}
		m.Reset()
		return Result{Status: Resolved, Binding: exact[0]}, true
	}

	if m.table.HasPrefix(candidate) {
		return Result{Status: Buffering}, true
	}

	return Result{}, false
}

// Expired reports whether a non-empty buffer has outlived the timeout at now.
func (m *Matcher) Expired(now time.Time) bool {
	if m.timeout <= 0 || len(m.buffer) == 0 {
		return false
	}
	return now.Sub(m.last) > m.timeout
}

// Reset clears the buffer.
func (m *Matcher) Reset() {
	m.buffer = nil
	m.last = time.Time{}
}

// Pending returns a copy of the buffered tokens.
func (m *Matcher) Pending() key.Sequence {
	return m.buffer.Clone()
}

// LastTimestamp returns when the most recent buffered token arrived, or the
// zero time if the buffer is empty.
func (m *Matcher) LastTimestamp() time.Time {
	return m.last
}

// SetTable swaps the binding table and clears the buffer.
func (m *Matcher) SetTable(t *keymap.Table) {
	m.table = t
	m.Reset()
}

// Table returns the current binding table.
func (m *Matcher) Table() *keymap.Table {
	return m.table
}
