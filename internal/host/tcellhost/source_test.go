package tcellhost

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/guard"
	"github.com/dshills/keychord/internal/input/key"
)

func TestDeliver(t *testing.T) {
	var fallback []tcell.Event
	s := NewSource(nil,
		WithTarget(func() guard.Target { return guard.TextInput }),
		WithFallback(func(ev tcell.Event) { fallback = append(fallback, ev) }),
	)

	var got []key.Event
	var targets []guard.Target
	unsub := s.Subscribe(func(ev key.Event, target guard.Target) bool {
		got = append(got, ev)
		targets = append(targets, target)
		return ev.Rune == 'x'
	})

	if !s.Deliver(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("x should be swallowed")
	}
	if s.Deliver(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone)) {
		t.Error("y should pass through")
	}
	s.Deliver(tcell.NewEventResize(80, 24))

	if len(got) != 2 || got[0].Rune != 'x' || got[1].Rune != 'y' {
		t.Errorf("handler saw %v", got)
	}
	if targets[0] != guard.TextInput {
		t.Errorf("target = %v", targets[0])
	}
	if len(fallback) != 2 {
		t.Errorf("fallback got %d events, want 2 (y and resize)", len(fallback))
	}

	unsub()
	if s.Deliver(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("delivered after unsubscribe")
	}
}

func TestRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()

	var mu sync.Mutex
	var runes []rune
	s := NewSource(screen)
	s.Subscribe(func(ev key.Event, _ guard.Target) bool {
		mu.Lock()
		defer mu.Unlock()
		runes = append(runes, ev.Rune)
		return true
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for _, r := range "gd" {
		if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatalf("PostEvent() error = %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(runes)
		mu.Unlock()
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("received %d keys, want 2", n)
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if string(runes) != "gd" {
		t.Errorf("runes = %q, want %q (in order)", string(runes), "gd")
	}
}
