package tcellhost

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/guard"
	"github.com/dshills/keychord/internal/input/key"
)

// Option configures a Source.
type Option func(*Source)

// WithTarget sets the function reporting the focused element for each key.
func WithTarget(fn func() guard.Target) Option {
	return func(s *Source) {
		s.target = fn
	}
}

// WithFallback sets the handler for non-key events and for keys the
// subscriber did not swallow.
func WithFallback(fn func(tcell.Event)) Option {
	return func(s *Source) {
		s.fallback = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// Source polls a tcell screen and delivers key events, in order, to one
// subscriber.
type Source struct {
	screen   tcell.Screen
	target   func() guard.Target
	fallback func(tcell.Event)
	logger   *slog.Logger

	mu      sync.Mutex
	handler func(key.Event, guard.Target) bool
}

// NewSource creates a source for screen. The screen must be initialized.
func NewSource(screen tcell.Screen, opts ...Option) *Source {
	s := &Source{
		screen: screen,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe installs fn as the key listener.
func (s *Source) Subscribe(fn func(key.Event, guard.Target) bool) func() {
	s.mu.Lock()
	s.handler = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.handler = nil
	}
}

// Deliver routes one tcell event. It returns true if the key was swallowed
// by the subscriber.
func (s *Source) Deliver(ev tcell.Event) bool {
	if tev, ok := ev.(*tcell.EventKey); ok {
		s.mu.Lock()
		fn := s.handler
		s.mu.Unlock()

		if fn != nil {
			if kev, ok := Convert(tev); ok {
				var target guard.Target
				if s.target != nil {
					target = s.target()
				}
				if fn(kev, target) {
					return true
				}
			} else {
				s.logger.Debug("unmapped tcell key", "name", tev.Name())
			}
		}
	}

	if s.fallback != nil {
		s.fallback(ev)
	}
	return false
}

// Run polls the screen until ctx is done or the screen is finalized.
func (s *Source) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Deliver(ev)
	}
}
