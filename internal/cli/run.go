package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/config/watcher"
	"github.com/dshills/keychord/internal/demo"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/plugin/lua"
)

func newRunCmd() *cobra.Command {
	var (
		host    string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo dashboard with the shortcut engine attached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := FromContext(cmd.Context())
			if host == "" {
				host = rt.Config.Host
			}
			if host != config.HostTcell && host != config.HostTea {
				return fmt.Errorf("unknown host %q (use tcell or tea)", host)
			}

			bindings, err := rt.Bindings()
			if err != nil {
				return err
			}
			table, err := rt.Table(bindings)
			if err != nil {
				return err
			}

			dash := demo.New(bindings)
			engine := input.New(table, rt.Config.EngineConfig(),
				input.WithNavigator(dash.Navigator()),
				input.WithFocusFinder(dash.FocusFinder()),
				input.WithLogger(rt.Log),
			)
			defer engine.Close()
			dash.Attach(engine)

			if rt.Debug {
				engine.Hooks().Register(input.LoggingHook{Logger: rt.Log})
			}

			scripts := lua.NewRuntime(engine, lua.WithLogger(rt.Log))
			defer scripts.Close()
			for _, path := range rt.Config.Scripts {
				if err := scripts.LoadFile(path); err != nil {
					return fmt.Errorf("script %s: %w", path, err)
				}
			}

			if rt.Config.Watch && !noWatch && rt.Config.Bindings != "" {
				w, err := watcher.New(watcher.WithLogger(rt.Log))
				if err != nil {
					return err
				}
				defer w.Close()

				sink := reloadSink{engine: engine, dash: dash}
				w.OnChange(watcher.ReloadBindings(sink, keymap.NewLoader(), rt.Log))
				if err := w.Watch(rt.Config.Bindings); err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if host == config.HostTea {
				err = demo.RunTea(ctx, dash, engine)
			} else {
				err = runTcell(ctx, dash, engine, rt)
			}

			logMetrics(rt, engine.Metrics().Snapshot())
			return err
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Terminal host: tcell or tea (defaults to the host setting)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the binding file when it changes")
	return cmd
}

func runTcell(ctx context.Context, dash *demo.Dashboard, engine *input.Engine, rt *Runtime) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return demo.NewTcellApp(dash, engine, screen, rt.Log).Run(ctx)
}

// reloadSink installs reloaded bindings in the engine and the help panel.
type reloadSink struct {
	engine *input.Engine
	dash   *demo.Dashboard
}

func (s reloadSink) LoadBindings(bindings []keymap.Binding) error {
	if err := s.engine.LoadBindings(bindings); err != nil {
		return err
	}
	s.dash.SetBindings(bindings)
	return nil
}

func logMetrics(rt *Runtime, snap input.MetricsSnapshot) {
	rt.Log.Info("session finished",
		"keys", snap.KeyEventsTotal,
		"dispatched", snap.DispatchesTotal,
		"lookup_misses", snap.LookupMisses,
		"suppressed", snap.SuppressedEvents,
		"timeouts", snap.SequenceTimeouts,
		"avg_latency", snap.AvgKeyLatency,
		"p99_latency", snap.P99KeyLatency,
	)
}
