package input

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Hook observes the engine. Hooks cannot consume or reorder events; the
// engine only drops keys through its guard and timeout rules.
type Hook interface {
	// KeyEvent is called once per handled event with its outcome.
	KeyEvent(ev key.Event, out Outcome)

	// Dispatch is called just before a resolved binding is dispatched.
	Dispatch(b *keymap.Binding)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
)

// HookID uniquely identifies a registered hook.
type HookID uint64

type hookRegistration struct {
	id       HookID
	priority HookPriority
	hook     Hook
}

// HookManager runs hooks in priority order.
type HookManager struct {
	mu     sync.RWMutex
	hooks  []hookRegistration
	nextID HookID
	sorted bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{sorted: true}
}

// Register adds a hook with normal priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithPriority(hook, HookPriorityNormal)
}

// RegisterWithPriority adds a hook with the given priority. Hooks with equal
// priority run in registration order.
func (m *HookManager) RegisterWithPriority(hook Hook, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, hookRegistration{id: m.nextID, priority: priority, hook: hook})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].id == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// snapshot returns the hooks in priority order for iteration outside the lock.
func (m *HookManager) snapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.hooks) == 0 {
		return nil
	}
	if !m.sorted {
		sort.SliceStable(m.hooks, func(i, j int) bool {
			return m.hooks[i].priority < m.hooks[j].priority
		})
		m.sorted = true
	}

	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].hook
	}
	return hooks
}

// RunKeyEvent runs all KeyEvent hooks.
func (m *HookManager) RunKeyEvent(ev key.Event, out Outcome) {
	for _, h := range m.snapshot() {
		h.KeyEvent(ev, out)
	}
}

// RunDispatch runs all Dispatch hooks.
func (m *HookManager) RunDispatch(b *keymap.Binding) {
	for _, h := range m.snapshot() {
		h.Dispatch(b)
	}
}

// FuncHook adapts functions to the Hook interface. Nil fields are skipped.
type FuncHook struct {
	KeyEventFunc func(key.Event, Outcome)
	DispatchFunc func(*keymap.Binding)
}

// KeyEvent calls KeyEventFunc if set.
func (h FuncHook) KeyEvent(ev key.Event, out Outcome) {
	if h.KeyEventFunc != nil {
		h.KeyEventFunc(ev, out)
	}
}

// Dispatch calls DispatchFunc if set.
func (h FuncHook) Dispatch(b *keymap.Binding) {
	if h.DispatchFunc != nil {
		h.DispatchFunc(b)
	}
}

// LoggingHook logs every key event and dispatch at debug level.
type LoggingHook struct {
	Logger *slog.Logger
}

// KeyEvent logs the event outcome.
func (h LoggingHook) KeyEvent(ev key.Event, out Outcome) {
	if h.Logger == nil {
		return
	}
	h.Logger.Debug("key event",
		"event", ev.GoString(),
		"token", out.Token,
		"status", out.Status.String(),
		"ignored", out.Ignored,
		"suppressed", out.Suppressed)
}

// Dispatch logs the binding about to run.
func (h LoggingHook) Dispatch(b *keymap.Binding) {
	if h.Logger == nil {
		return
	}
	h.Logger.Debug("dispatching", "keys", b.Pattern.String(), "action", b.Action.String())
}
