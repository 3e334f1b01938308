package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/keymap"
)

// contextKey is the key type for values stored in a command context.
type contextKey string

const runtimeContextKey contextKey = "keychord.runtime"

// Runtime is the shared dependency bundle injected into each subcommand via context.
type Runtime struct {
	Config *config.Config
	Log    *slog.Logger
	Debug  bool

	logFile io.Closer
}

// NewContext returns a new context carrying the Runtime.
func NewContext(parent context.Context, rt *Runtime) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, runtimeContextKey, rt)
}

// FromContext extracts the Runtime from ctx. Panics if not present (programming error).
func FromContext(ctx context.Context) *Runtime {
	rt, ok := lookupRuntime(ctx)
	if !ok {
		panic("keychord: Runtime not found in context, missing PersistentPreRunE?")
	}
	return rt
}

func lookupRuntime(ctx context.Context) (*Runtime, bool) {
	if ctx == nil {
		return nil, false
	}
	rt, ok := ctx.Value(runtimeContextKey).(*Runtime)
	return rt, ok && rt != nil
}

// Bindings returns the configured binding file's contents, or the default
// table when no file is configured.
func (rt *Runtime) Bindings() ([]keymap.Binding, error) {
	if rt.Config.Bindings == "" {
		return keymap.Default(), nil
	}
	return keymap.NewLoader().LoadFile(rt.Config.Bindings)
}

// Table validates bindings into a table, honouring the strict setting.
func (rt *Runtime) Table(bindings []keymap.Binding) (*keymap.Table, error) {
	opts := []keymap.TableOption{keymap.WithLogger(rt.Log)}
	if rt.Config.Engine.Strict {
		opts = append(opts, keymap.Strict())
	}
	return keymap.NewTable(bindings, opts...)
}

// Close releases the log file, if one was opened.
func (rt *Runtime) Close() error {
	if rt.logFile == nil {
		return nil
	}
	err := rt.logFile.Close()
	rt.logFile = nil
	return err
}
