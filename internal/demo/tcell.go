package demo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/host/tcellhost"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
)

// TcellApp draws the dashboard on a tcell screen.
type TcellApp struct {
	dash   *Dashboard
	screen tcell.Screen
	engine *input.Engine
	logger *slog.Logger
	cancel context.CancelFunc
}

// NewTcellApp creates an app for an initialized screen.
func NewTcellApp(dash *Dashboard, engine *input.Engine, screen tcell.Screen, logger *slog.Logger) *TcellApp {
	return &TcellApp{dash: dash, screen: screen, engine: engine, logger: logger}
}

// Run attaches the engine to the screen and blocks until the user quits or
// ctx is done.
func (a *TcellApp) Run(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	defer a.cancel()

	src := tcellhost.NewSource(a.screen,
		tcellhost.WithTarget(a.dash.FocusTarget),
		tcellhost.WithFallback(a.fallback),
		tcellhost.WithLogger(a.logger),
	)
	if err := a.engine.Start(src); err != nil {
		return err
	}
	defer a.engine.Stop()

	a.dash.OnChange(a.draw)
	defer a.dash.OnChange(nil)

	// Redraw after every key so the pending sequence stays visible.
	hookID := a.engine.Hooks().Register(input.FuncHook{
		KeyEventFunc: func(key.Event, input.Outcome) { a.draw() },
	})
	defer a.engine.Hooks().Unregister(hookID)

	a.draw()

	err := src.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// fallback handles events the engine did not consume.
func (a *TcellApp) fallback(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.draw()
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *TcellApp) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		a.cancel()
		return
	}

	if !a.dash.Typing() {
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			a.cancel()
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyRune:
		a.dash.TypeRune(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.dash.Backspace()
	case tcell.KeyEnter:
		a.dash.Blur()
	}
}

func (a *TcellApp) draw() {
	a.screen.Clear()
	style := tcell.StyleDefault
	for y, line := range a.dash.Render() {
		x := 0
		for _, r := range line {
			a.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	if pending := a.engine.PendingKeys(); pending != "" {
		_, h := a.screen.Size()
		x := 0
		for _, r := range "keys: " + pending {
			a.screen.SetContent(x, h-1, r, nil, style.Reverse(true))
			x++
		}
	}
	a.screen.Show()
}
