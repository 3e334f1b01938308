package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

const waitTimeout = 2 * time.Second

func newTestWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func collect(w *Watcher) <-chan Event {
	ch := make(chan Event, 16)
	w.OnChange(func(ev Event) { ch <- ev })
	return ch
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNew(t *testing.T) {
	w := newTestWatcher(t)
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = newTestWatcher(t, WithDebounce(50*time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	for _, p := range []string{a, b, a} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("Watch(%s) error = %v", p, err)
		}
	}
	if files := w.WatchedFiles(); len(files) != 2 || files[0] != a || files[1] != b {
		t.Errorf("WatchedFiles() = %v", files)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[dir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch() error = %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatalf("Unwatch() error = %v", err)
	}
	if len(w.WatchedFiles()) != 0 || len(w.dirs) != 0 {
		t.Errorf("files = %v, dirs = %v", w.WatchedFiles(), w.dirs)
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newTestWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "missing", "keys.toml")); err == nil {
		t.Error("Watch() in missing directory succeeded")
	}
}

func TestWatcher_StartStop(t *testing.T) {
	w := newTestWatcher(t)

	if w.IsRunning() {
		t.Error("IsRunning() = true before Start()")
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	w.Stop()
	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Start() after Close error = %v", err)
	}
	if err := w.Watch("x.toml"); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch() after Close error = %v", err)
	}
}

func TestWatcher_DetectsFileModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, WithDebounce(0))
	ch := collect(w)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, ch)
	if ev.Path != path || ev.Op != OpWrite {
		t.Errorf("event = %+v, want write of %s", ev, path)
	}
}

func TestWatcher_DetectsFileCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")

	w := newTestWatcher(t, WithDebounce(100*time.Millisecond))
	ch := collect(w)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, ch)
	if ev.Path != path || ev.Op != OpCreate {
		t.Errorf("event = %+v, want create of %s", ev, path)
	}
}

func TestWatcher_DetectsFileDeletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, WithDebounce(0))
	ch := collect(w)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, ch)
	if ev.Op != OpRemove {
		t.Errorf("event = %+v, want remove", ev)
	}
}

func TestWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")

	w := newTestWatcher(t, WithDebounce(0))
	ch := collect(w)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if ev := waitEvent(t, ch); ev.Path != path {
		t.Errorf("first event for %s, want %s", ev.Path, path)
	}
}

func TestWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, WithDebounce(150*time.Millisecond))
	var count atomic.Int32
	w.OnChange(func(Event) { count.Add(1) })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(waitTimeout)
	for count.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(300 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("handler called %d times, want 1", got)
	}
}

func TestWatcher_QueueCoalesces(t *testing.T) {
	w := newTestWatcher(t, WithDebounce(time.Hour))
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpRemove, Time: now})
	w.queueEvent(Event{Path: "/c", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/c", Op: OpWrite, Time: now})

	var got []Event
	w.OnChange(func(ev Event) { got = append(got, ev) })
	w.timer.Stop()
	w.flush()

	want := []Operation{OpCreate, OpRemove, OpWrite}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, op := range want {
		if got[i].Op != op {
			t.Errorf("event %d (%s) op = %v, want %v", i, got[i].Path, got[i].Op, op)
		}
	}
}
