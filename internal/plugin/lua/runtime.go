package lua

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Host is the part of the shortcut engine that scripts can drive.
type Host interface {
	RegisterOwnedCallback(owner any, id string, h func())
	UnregisterOwnedCallback(owner any, id string) bool
	UnregisterCallback(id string)
	IsHelpVisible() bool
	SetHelpVisible(visible bool)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for script output and callback errors.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(r *Runtime) {
		r.stateOpts = append(r.stateOpts, opts...)
	}
}

// Runtime runs scripts that register shortcut callbacks with a Host.
type Runtime struct {
	host      Host
	state     *State
	logger    *slog.Logger
	stateOpts []StateOption

	mu    sync.Mutex
	owned map[string]bool
}

// NewRuntime creates a runtime bound to host.
func NewRuntime(host Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:   host,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		owned:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "lua")
	r.state = NewState(r.stateOpts...)

	r.state.RegisterModule("keychord", map[string]lua.LGFunction{
		"register":   r.register,
		"unregister": r.unregister,
		"help":       r.help,
		"log":        r.log,
	})
	return r
}

// LoadFile runs a script file.
func (r *Runtime) LoadFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		return err
	}
	r.logger.Info("loaded script", "path", path)
	return nil
}

// LoadString runs script source.
func (r *Runtime) LoadString(code string) error {
	return r.state.DoString(code)
}

// Callbacks returns the ids registered by scripts, sorted.
func (r *Runtime) Callbacks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.owned))
	for id := range r.owned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close unregisters the script callbacks that are still installed and
// closes the Lua state. Ids that other code has since re-registered are
// left alone.
func (r *Runtime) Close() error {
	for _, id := range r.Callbacks() {
		if !r.host.UnregisterOwnedCallback(r, id) {
			r.logger.Debug("callback replaced, leaving it registered", "id", id)
		}
	}
	r.mu.Lock()
	r.owned = make(map[string]bool)
	r.mu.Unlock()

	return r.state.Close()
}

// register(id, fn) -> nil
func (r *Runtime) register(L *lua.LState) int {
	id := L.CheckString(1)
	fn := L.CheckFunction(2)
	if id == "" {
		L.ArgError(1, "callback id cannot be empty")
		return 0
	}

	r.host.RegisterOwnedCallback(r, id, func() {
		if err := r.state.CallFunction(fn); err != nil {
			r.logger.Warn("callback failed", "id", id, "error", err)
		}
	})

	r.mu.Lock()
	r.owned[id] = true
	r.mu.Unlock()
	return 0
}

// unregister(id) -> nil
func (r *Runtime) unregister(L *lua.LState) int {
	id := L.CheckString(1)
	r.host.UnregisterCallback(id)

	r.mu.Lock()
	delete(r.owned, id)
	r.mu.Unlock()
	return 0
}

// help([visible]) -> bool
func (r *Runtime) help(L *lua.LState) int {
	if L.GetTop() >= 1 {
		r.host.SetHelpVisible(L.CheckBool(1))
	}
	L.Push(lua.LBool(r.host.IsHelpVisible()))
	return 1
}

// log(msg) -> nil
func (r *Runtime) log(L *lua.LState) int {
	r.logger.Info(L.CheckString(1))
	return 0
}
