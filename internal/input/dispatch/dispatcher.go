// Package dispatch performs the action attached to a resolved binding.
//
// Navigation and focus are delegated to collaborators supplied by the host
// application. Callbacks are looked up by id in a Registry that UI code
// populates at runtime. A missing focus target or callback is a silent
// no-op. The reserved callback id "showHelp" toggles the dispatcher's own
// help visibility flag.
package dispatch

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/keychord/internal/input/keymap"
)

// Navigator sends the host application to path.
type Navigator func(path string)

// Focusable is an element that can take input focus.
type Focusable interface {
	Focus()
}

// FocusFinder returns the focusable element with the given id, or nil if
// it is not currently mounted.
type FocusFinder func(id string) Focusable

// Result describes what a dispatch did.
type Result struct {
	// Performed is false for lookup misses (unknown focus target, missing
	// callback, no navigator).
	Performed bool

	// PreventDefault is true whenever a binding was dispatched, whether or
	// not the action found its target.
	PreventDefault bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithNavigator sets the navigation collaborator.
func WithNavigator(n Navigator) Option {
	return func(d *Dispatcher) {
		d.navigate = n
	}
}

// WithFocusFinder sets the focus lookup collaborator.
func WithFocusFinder(f FocusFinder) Option {
	return func(d *Dispatcher) {
		d.findFocusable = f
	}
}

// WithRegistry shares an existing callback registry.
func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// Dispatcher routes bindings to navigation, focus or callbacks.
type Dispatcher struct {
	navigate      Navigator
	findFocusable FocusFinder
	registry      *Registry
	logger        *slog.Logger

	mu          sync.Mutex
	helpVisible bool
	helpSubs    []func(bool)
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the callback registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch performs the binding's action.
func (d *Dispatcher) Dispatch(b *keymap.Binding) Result {
	if b == nil {
		return Result{}
	}

	res := Result{PreventDefault: true}
	a := b.Action

	switch a.Kind {
	case keymap.KindNavigate:
		if d.navigate == nil {
			d.logger.Debug("no navigator, dropping navigation", "path", a.Target)
			return res
		}
		d.logger.Debug("navigate", "path", a.Target, "keys", b.Pattern.String())
		res.Performed = d.invoke(a, func() { d.navigate(a.Target) })

	case keymap.KindFocus:
		var el Focusable
		if d.findFocusable != nil {
			el = d.findFocusable(a.Target)
		}
		if el == nil {
			d.logger.Debug("focus target not mounted", "target", a.Target)
			return res
		}
		d.logger.Debug("focus", "target", a.Target, "keys", b.Pattern.String())
		res.Performed = d.invoke(a, el.Focus)

	case keymap.KindCallback:
		if a.Target == keymap.CallbackShowHelp {
			d.ToggleHelp()
			res.Performed = true
			return res
		}
		h, ok := d.registry.Lookup(a.Target)
		if !ok {
			d.logger.Debug("callback not registered", "id", a.Target)
			return res
		}
		d.logger.Debug("callback", "id", a.Target, "keys", b.Pattern.String())
		res.Performed = d.invoke(a, h)

	default:
		d.logger.Warn("unknown action kind", "action", a.String())
		return Result{}
	}

	return res
}

// invoke runs fn. A panic is logged and reported as not performed.
func (d *Dispatcher) invoke(a keymap.Action, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("shortcut handler panicked",
				"action", a.String(),
				"panic", fmt.Sprint(r))
			ok = false
		}
	}()
	fn()
	return true
}

// IsHelpVisible reports the help visibility flag.
func (d *Dispatcher) IsHelpVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.helpVisible
}

// SetHelpVisible sets the help visibility flag and notifies observers if
// it changed.
func (d *Dispatcher) SetHelpVisible(visible bool) {
	d.mu.Lock()
	if d.helpVisible == visible {
		d.mu.Unlock()
		return
	}
	d.helpVisible = visible
	subs := make([]func(bool), len(d.helpSubs))
	copy(subs, d.helpSubs)
	d.mu.Unlock()

	for _, fn := range subs {
		fn(visible)
	}
}

// ToggleHelp flips the help visibility flag.
func (d *Dispatcher) ToggleHelp() {
	d.mu.Lock()
	next := !d.helpVisible
	d.mu.Unlock()
	d.SetHelpVisible(next)
}

// OnHelpChange registers fn to be called with the new value whenever the
// help flag changes.
func (d *Dispatcher) OnHelpChange(fn func(bool)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.helpSubs = append(d.helpSubs, fn)
}
