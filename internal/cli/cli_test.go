package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keychord/internal/input/keymap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "keychord dev") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json error = %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["version"] != Version || info["commit"] != Commit {
		t.Errorf("info = %v", info)
	}
}

func TestDefaults(t *testing.T) {
	formats := []keymap.Format{keymap.FormatTOML, keymap.FormatYAML, keymap.FormatJSON}
	for _, f := range formats {
		t.Run(string(f), func(t *testing.T) {
			out, err := execute(t, "defaults", "--format", string(f))
			if err != nil {
				t.Fatalf("defaults error = %v", err)
			}
			bindings, err := keymap.Load(strings.NewReader(out), f)
			if err != nil {
				t.Fatalf("output does not load: %v", err)
			}
			if len(bindings) != len(keymap.Default()) {
				t.Errorf("got %d bindings, want %d", len(bindings), len(keymap.Default()))
			}
		})
	}

	if _, err := execute(t, "defaults", "--format", "ini"); !errors.Is(err, keymap.ErrUnsupportedFormat) {
		t.Errorf("defaults --format ini error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	good := filepath.Join(t.TempDir(), "keys.yaml")
	if err := keymap.SaveFile(good, keymap.Default()); err != nil {
		t.Fatal(err)
	}
	dup := writeFile(t, "dup.json", `{"bindings": [
		{"keys": "Ctrl+S", "action": "callback", "target": "save"},
		{"keys": "control+s", "action": "callback", "target": "saveAll"}
	]}`)
	bad := writeFile(t, "bad.toml", `[[bindings]]
keys = "g"
action = "teleport"
target = "x"
`)

	out, err := execute(t, "check", good)
	if err != nil {
		t.Fatalf("check good error = %v", err)
	}
	if !strings.Contains(out, "ok, ") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "check", good, dup, bad)
	if err == nil || !strings.Contains(err.Error(), "2 of 3") {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "duplicate binding pattern") || !strings.Contains(out, "unknown action kind") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "check"); err == nil {
		t.Error("check with no files succeeded")
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"Navigation", "g s", "navigate(/samples)", "Go to samples", "control+s"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q", want)
		}
	}

	path := writeFile(t, "keys.toml", `[[bindings]]
keys = "z"
action = "callback"
target = "sleep"
description = "Sleep"
`)
	out, err = execute(t, "list", "--bindings", path)
	if err != nil {
		t.Fatalf("list --bindings error = %v", err)
	}
	if !strings.Contains(out, "Other") || !strings.Contains(out, "callback(sleep)") || strings.Contains(out, "Navigation") {
		t.Errorf("output = %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `host = "gtk"`)
	_, err := execute(t, "--config", path, "list")
	if err == nil || !strings.HasPrefix(err.Error(), "config:") {
		t.Fatalf("error = %v, want config error", err)
	}
}

func TestRunRejectsUnknownHost(t *testing.T) {
	_, err := execute(t, "run", "--host", "gtk")
	if err == nil || !strings.Contains(err.Error(), "unknown host") {
		t.Fatalf("error = %v", err)
	}
}

func TestFromContextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FromContext did not panic")
		}
	}()
	FromContext(context.Background())
}

func TestListFilter(t *testing.T) {
	out, err := execute(t, "list", "--filter", "save")
	if err != nil {
		t.Fatalf("list --filter error = %v", err)
	}
	if !strings.Contains(out, "control+s") || strings.Contains(out, "Navigation") {
		t.Errorf("output = %q", out)
	}
}
