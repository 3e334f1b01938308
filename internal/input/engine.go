package input

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/input/dispatch"
	"github.com/dshills/keychord/internal/input/guard"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/matcher"
)

// ErrClosed is returned when operating on a closed engine.
var ErrClosed = errors.New("engine closed")

// State is the engine-level matching state.
type State uint8

const (
	// StateIdle means no keys are buffered.
	StateIdle State = iota

	// StateBuffering means a partial sequence awaits its next key or timeout.
	StateBuffering

	// StateDispatching means an action is being performed.
	StateDispatching
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateBuffering:
		return "buffering"
	case StateDispatching:
		return "dispatching"
	default:
		return "idle"
	}
}

// Outcome reports what the engine did with one key event.
type Outcome struct {
	// Token is the canonical token, empty when Ignored.
	Token key.Token

	// Status is the matcher result. It is NoMatch for ignored and
	// suppressed events.
	Status matcher.Status

	// Binding is the resolved binding when Status is Resolved.
	Binding *keymap.Binding

	// Ignored is true for events with no token (bare modifiers, unknown
	// keys) and for events received after Close.
	Ignored bool

	// Suppressed is true when the guard dropped the event because the
	// target is editable.
	Suppressed bool

	// Performed is true when the dispatched action reached its target.
	Performed bool

	// PreventDefault tells the host to swallow the key.
	PreventDefault bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithNavigator sets the navigation collaborator.
func WithNavigator(n dispatch.Navigator) Option {
	return func(e *Engine) {
		e.dispatchOpts = append(e.dispatchOpts, dispatch.WithNavigator(n))
	}
}

// WithFocusFinder sets the focus lookup collaborator.
func WithFocusFinder(f dispatch.FocusFinder) Option {
	return func(e *Engine) {
		e.dispatchOpts = append(e.dispatchOpts, dispatch.WithFocusFinder(f))
	}
}

// WithRegistry shares a callback registry with the engine.
func WithRegistry(r *dispatch.Registry) Option {
	return func(e *Engine) {
		e.dispatchOpts = append(e.dispatchOpts, dispatch.WithRegistry(r))
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithClock overrides the time source used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine is the shortcut engine. It is safe for concurrent use, but events
// are expected from a single host goroutine so they are handled in order.
type Engine struct {
	id     string
	config Config
	logger *slog.Logger
	now    func() time.Time

	metrics      *Metrics
	hooks        *HookManager
	guard        *guard.Guard
	dispatcher   *dispatch.Dispatcher
	dispatchOpts []dispatch.Option

	mu          sync.Mutex
	matcher     *matcher.Matcher
	timer       *time.Timer
	timerGen    uint64
	dispatching int
	unsubscribe func()
	closed      bool
}

// New creates an engine over table.
func New(table *keymap.Table, config Config, opts ...Option) *Engine {
	config = config.withDefaults()
	e := &Engine{
		id:      uuid.NewString(),
		config:  config,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		metrics: NewMetrics(),
		hooks:   NewHookManager(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger = e.logger.With("engine", e.id)
	e.dispatcher = dispatch.New(append(e.dispatchOpts, dispatch.WithLogger(e.logger))...)
	e.matcher = matcher.New(table, config.SequenceTimeout, e.logger)

	allow, errs := config.AllowTokens()
	for _, err := range errs {
		e.logger.Warn("ignoring allow-list entry", "error", err)
	}
	e.guard = guard.New(allow...)

	return e
}

// ID returns the engine's unique id, used to correlate log lines.
func (e *Engine) ID() string {
	return e.id
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// HandleKeyEvent runs one key event through guard, normalizer, matcher and
// dispatcher. target is the focused element and may be nil.
func (e *Engine) HandleKeyEvent(ev key.Event, target guard.Target) Outcome {
	start := time.Now()

	tok, ok := key.Normalize(ev)
	if !ok {
		e.metrics.RecordIgnored()
		out := Outcome{Ignored: true}
		e.hooks.RunKeyEvent(ev, out)
		return out
	}

	if e.guard.IsSuppressed(target, tok) {
		e.metrics.RecordSuppressed()
		e.logger.Debug("key suppressed in editable target", "token", tok)
		out := Outcome{Token: tok, Suppressed: true}
		e.hooks.RunKeyEvent(ev, out)
		return out
	}

	now := ev.Timestamp
	if now.IsZero() {
		now = e.now()
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return Outcome{Token: tok, Ignored: true}
	}
	res := e.matcher.OnToken(tok, now)
	switch res.Status {
	case matcher.Buffering:
		e.armTimerLocked()
	case matcher.Resolved:
		e.stopTimerLocked()
		e.dispatching++
	default:
		e.stopTimerLocked()
	}
	pending := e.matcher.Pending()
	e.mu.Unlock()

	out := Outcome{Token: tok, Status: res.Status, Binding: res.Binding}

	switch res.Status {
	case matcher.Buffering:
		e.metrics.RecordBuffered()
		e.logger.Debug("buffering", "token", tok, "pending", pending.String())
	case matcher.Resolved:
		e.hooks.RunDispatch(res.Binding)
		dr := e.dispatcher.Dispatch(res.Binding)
		out.Performed = dr.Performed
		out.PreventDefault = dr.PreventDefault

		e.mu.Lock()
		e.dispatching--
		e.mu.Unlock()

		e.metrics.RecordDispatch(dr.Performed)
		e.logger.Debug("resolved",
			"keys", res.Binding.Pattern.String(),
			"action", res.Binding.Action.String(),
			"performed", dr.Performed)
	default:
		e.metrics.RecordNoMatch()
	}

	e.metrics.RecordKeyEvent(time.Since(start))
	e.hooks.RunKeyEvent(ev, out)
	return out
}

// armTimerLocked starts or restarts the single sequence timer.
func (e *Engine) armTimerLocked() {
	e.stopTimerLocked()
	if e.config.SequenceTimeout <= 0 {
		return
	}
	gen := e.timerGen
	e.timer = time.AfterFunc(e.config.SequenceTimeout, func() {
		e.handleTimeout(gen)
	})
}

// stopTimerLocked cancels the pending timer, if any. Bumping the
// generation makes a timer that already fired a no-op.
func (e *Engine) stopTimerLocked() {
	e.timerGen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) handleTimeout(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.timerGen {
		return
	}
	pending := e.matcher.Pending()
	e.timer = nil
	if pending.IsEmpty() {
		return
	}
	e.matcher.Reset()
	e.metrics.RecordSequenceTimeout()
	e.logger.Debug("sequence timed out", "pending", pending.String())
}

// Source delivers key events from a host UI toolkit.
type Source interface {
	// Subscribe installs fn as the key listener and returns a function that
	// removes it. fn reports whether the host should swallow the key.
	Subscribe(fn func(ev key.Event, target guard.Target) bool) (unsubscribe func())
}

// Start attaches the engine to src. A previous source is detached first.
func (e *Engine) Start(src Source) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	prev := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if prev != nil {
		prev()
	}

	unsub := src.Subscribe(func(ev key.Event, target guard.Target) bool {
		return e.HandleKeyEvent(ev, target).PreventDefault
	})

	e.mu.Lock()
	e.unsubscribe = unsub
	e.mu.Unlock()

	e.logger.Info("shortcut engine started")
	return nil
}

// Stop detaches the engine from its source and clears any buffered keys.
func (e *Engine) Stop() {
	e.mu.Lock()
	unsub := e.unsubscribe
	e.unsubscribe = nil
	e.stopTimerLocked()
	e.matcher.Reset()
	e.mu.Unlock()

	if unsub != nil {
		unsub()
		e.logger.Info("shortcut engine stopped")
	}
}

// Close stops the engine permanently.
func (e *Engine) Close() {
	e.Stop()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// IsClosed reports whether Close has been called.
func (e *Engine) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// SetTable replaces the binding table and clears any buffered keys.
func (e *Engine) SetTable(t *keymap.Table) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
	e.matcher.SetTable(t)
	if t != nil {
		e.logger.Info("binding table replaced", "bindings", t.Len())
	}
}

// LoadBindings builds a table from bindings using the engine's strictness
// and logger, then installs it.
func (e *Engine) LoadBindings(bindings []keymap.Binding) error {
	opts := []keymap.TableOption{keymap.WithLogger(e.logger)}
	if e.config.Strict {
		opts = append(opts, keymap.Strict())
	}
	t, err := keymap.NewTable(bindings, opts...)
	if err != nil {
		return err
	}
	e.SetTable(t)
	return nil
}

// Table returns the current binding table.
func (e *Engine) Table() *keymap.Table {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matcher.Table()
}

// State returns the current matching state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dispatching > 0 {
		return StateDispatching
	}
	if len(e.matcher.Pending()) > 0 {
		return StateBuffering
	}
	return StateIdle
}

// PendingKeys returns the buffered tokens, space separated.
func (e *Engine) PendingKeys() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matcher.Pending().String()
}

// Reset drops any buffered keys.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimerLocked()
	e.matcher.Reset()
}

// RegisterCallback installs a handler for a callback id.
func (e *Engine) RegisterCallback(id string, h func()) {
	e.dispatcher.Registry().Register(id, h)
}

// UnregisterCallback removes the handler for a callback id.
func (e *Engine) UnregisterCallback(id string) {
	e.dispatcher.Registry().Unregister(id)
}

// RegisterOwnedCallback installs a handler for a callback id on behalf of
// owner. See dispatch.Registry.RegisterOwned.
func (e *Engine) RegisterOwnedCallback(owner any, id string, h func()) {
	e.dispatcher.Registry().RegisterOwned(id, owner, h)
}

// UnregisterOwnedCallback removes the handler for id if owner still holds it.
func (e *Engine) UnregisterOwnedCallback(owner any, id string) bool {
	return e.dispatcher.Registry().UnregisterOwned(id, owner)
}

// Callbacks returns the registered callback ids.
func (e *Engine) Callbacks() []string {
	return e.dispatcher.Registry().IDs()
}

// IsHelpVisible reports whether the help overlay should be shown.
func (e *Engine) IsHelpVisible() bool {
	return e.dispatcher.IsHelpVisible()
}

// SetHelpVisible shows or hides the help overlay.
func (e *Engine) SetHelpVisible(visible bool) {
	e.dispatcher.SetHelpVisible(visible)
}

// OnHelpChange registers an observer for help visibility changes.
func (e *Engine) OnHelpChange(fn func(bool)) {
	e.dispatcher.OnHelpChange(fn)
}

// Hooks returns the hook manager.
func (e *Engine) Hooks() *HookManager {
	return e.hooks
}

// Metrics returns the metrics collector.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}
