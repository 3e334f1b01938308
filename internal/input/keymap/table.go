package keymap

import (
	"io"
	"log/slog"

	"github.com/dshills/keychord/internal/input/key"
)

// Table is an immutable, validated set of bindings indexed for
// exact and prefix lookup.
type Table struct {
	bindings []*Binding
	root     *prefixNode
}

// TableOption configures table construction.
type TableOption func(*tableOptions)

type tableOptions struct {
	strict bool
	logger *slog.Logger
}

// Strict makes duplicate patterns a construction error instead of a
// logged warning.
func Strict() TableOption {
	return func(o *tableOptions) {
		o.strict = true
	}
}

// WithLogger sets the logger used to report duplicate patterns.
func WithLogger(l *slog.Logger) TableOption {
	return func(o *tableOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewTable validates the bindings and builds a table. Bindings keep their
// insertion order, which decides between duplicates in a lenient table.
func NewTable(bindings []Binding, opts ...TableOption) (*Table, error) {
	o := tableOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		bindings: make([]*Binding, 0, len(bindings)),
		root:     newPrefixNode(),
	}

	for i, b := range bindings {
		if b.Keys == "" {
			return nil, &BindingError{Index: i, Keys: b.Keys, Err: ErrEmptyKeys}
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, &BindingError{Index: i, Keys: b.Keys, Err: err}
		}
		if err := b.Action.Validate(); err != nil {
			return nil, &BindingError{Index: i, Keys: b.Keys, Err: err}
		}

		nb := b
		nb.Pattern = seq

		if existing := t.Lookup(seq); len(existing) > 0 {
			dup := &DuplicateError{
				Pattern: seq.String(),
				First:   t.indexOf(existing[0]),
				Second:  i,
			}
			if o.strict {
				return nil, dup
			}
			o.logger.Warn("duplicate binding pattern, first registered wins",
				"pattern", dup.Pattern,
				"kept", existing[0].Action.String(),
				"shadowed", nb.Action.String())
		}

		t.bindings = append(t.bindings, &nb)
		t.root.insert(seq, &nb)
	}

	return t, nil
}

// MustNewTable builds a strict table and panics on error.
// Use only for known-valid tables in initialization code and tests.
func MustNewTable(bindings []Binding) *Table {
	t, err := NewTable(bindings, Strict())
	if err != nil {
		panic("invalid binding table: " + err.Error())
	}
	return t
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Bindings returns a copy of all bindings in insertion order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = *b
	}
	return out
}

// Lookup returns the bindings whose pattern equals seq, in insertion order.
// More than one result only happens in a lenient table with duplicates.
func (t *Table) Lookup(seq key.Sequence) []*Binding {
	node := t.root.find(seq)
	if node == nil || len(node.entries) == 0 {
		return nil
	}
	out := make([]*Binding, len(node.entries))
	copy(out, node.entries)
	return out
}

// HasPrefix reports whether seq is a strict prefix of at least one longer
// binding pattern.
func (t *Table) HasPrefix(seq key.Sequence) bool {
	if len(seq) == 0 {
		return len(t.root.children) > 0
	}
	node := t.root.find(seq)
	return node != nil && len(node.children) > 0
}

// Starts reports whether any binding begins with tok.
func (t *Table) Starts(tok key.Token) bool {
	_, ok := t.root.children[tok]
	return ok
}

func (t *Table) indexOf(b *Binding) int {
	for i, existing := range t.bindings {
		if existing == b {
			return i
		}
	}
	return -1
}

// prefixNode is one level of the token trie.
type prefixNode struct {
	children map[key.Token]*prefixNode
	entries  []*Binding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{
		children: make(map[key.Token]*prefixNode),
	}
}

// insert adds a binding at the node for seq, creating the path as needed.
func (n *prefixNode) insert(seq key.Sequence, b *Binding) {
	node := n
	for _, tok := range seq {
		child, ok := node.children[tok]
		if !ok {
			child = newPrefixNode()
			node.children[tok] = child
		}
		node = child
	}
	node.entries = append(node.entries, b)
}

// find walks to the node for seq, or nil if no pattern passes through it.
func (n *prefixNode) find(seq key.Sequence) *prefixNode {
	node := n
	for _, tok := range seq {
		child, ok := node.children[tok]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}
