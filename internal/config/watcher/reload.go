package watcher

import (
	"io"
	"log/slog"

	"github.com/dshills/keychord/internal/input/keymap"
)

// BindingSink accepts a freshly loaded binding table.
type BindingSink interface {
	LoadBindings(bindings []keymap.Binding) error
}

// ReloadBindings returns a Handler that reads the changed file with loader
// and installs it into sink. A file that is removed or fails to load leaves
// the current table in place.
func ReloadBindings(sink BindingSink, loader *keymap.Loader, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(ev Event) {
		if ev.Op == OpRemove || ev.Op == OpRename {
			logger.Warn("binding file went away, keeping current table", "path", ev.Path, "op", ev.Op.String())
			return
		}

		bindings, err := loader.LoadFile(ev.Path)
		if err != nil {
			logger.Warn("binding reload failed", "path", ev.Path, "error", err)
			return
		}
		if err := sink.LoadBindings(bindings); err != nil {
			logger.Warn("binding reload rejected", "path", ev.Path, "error", err)
			return
		}
		logger.Info("bindings reloaded", "path", ev.Path, "count", len(bindings))
	}
}
