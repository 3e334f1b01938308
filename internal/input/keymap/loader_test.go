package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tomlBindings = `
[[bindings]]
keys = "g d"
action = "navigate"
target = "/"
description = "Go to dashboard"
category = "Navigation"

[[bindings]]
keys = "Ctrl+S"
action = "callback"
target = "save"
`

const yamlBindings = `
bindings:
  - keys: g d
    action: navigate
    target: /
    description: Go to dashboard
    category: Navigation
  - keys: Ctrl+S
    action: callback
    target: save
`

const jsonBindings = `{
  "bindings": [
    {"keys": "g d", "action": "navigate", "target": "/", "description": "Go to dashboard", "category": "Navigation"},
    {"keys": "Ctrl+S", "action": "callback", "target": "save"}
  ]
}`

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatTOML, tomlBindings},
		{FormatYAML, yamlBindings},
		{FormatJSON, jsonBindings},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			bindings, err := Load(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(bindings) != 2 {
				t.Fatalf("got %d bindings, want 2", len(bindings))
			}
			if bindings[0].Action != Navigate("/") {
				t.Errorf("bindings[0].Action = %v", bindings[0].Action)
			}
			if bindings[0].Description != "Go to dashboard" || bindings[0].Category != "Navigation" {
				t.Errorf("bindings[0] metadata = %+v", bindings[0])
			}
			if bindings[1].Keys != "Ctrl+S" || bindings[1].Action != Callback("save") {
				t.Errorf("bindings[1] = %+v", bindings[1])
			}

			if _, err := NewTable(bindings, Strict()); err != nil {
				t.Errorf("NewTable() error = %v", err)
			}
		})
	}
}

func TestLoadUnknownAction(t *testing.T) {
	input := `{"bindings": [{"keys": "x", "action": "teleport", "target": "y"}]}`
	_, err := Load(strings.NewReader(input), FormatJSON)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Load() error = %v, want ErrUnknownAction", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(strings.NewReader("[[bindings]\nkeys ="), FormatTOML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"keys.toml", FormatTOML, false},
		{"keys.YAML", FormatYAML, false},
		{"keys.yml", FormatYAML, false},
		{"/etc/keys.json", FormatJSON, false},
		{"keys.ini", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("FormatFromPath(%q) error = %v", tt.path, err)
		}
		if tt.err && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"keys.toml", "keys.yaml", "keys.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveFile(path, Default()); err != nil {
				t.Fatalf("SaveFile() error = %v", err)
			}

			got, err := NewLoader().LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			want := Default()
			if len(got) != len(want) {
				t.Fatalf("got %d bindings, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i].Keys != want[i].Keys || got[i].Action != want[i].Action {
					t.Errorf("binding %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestLoadFileSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bindings: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader().LoadFile(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("LoadFile() error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.toml":     `[[bindings]]` + "\n" + `keys = "j"` + "\n" + `action = "callback"` + "\n" + `target = "next"` + "\n",
		"b.json":     `{"bindings": [{"keys": "k", "action": "callback", "target": "prev"}]}`,
		"readme.txt": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLoader()
	l.AddSearchPath(dir)
	l.AddSearchPath(filepath.Join(dir, "missing"))

	bindings, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(bindings))
	}
	if bindings[0].Keys != "j" || bindings[1].Keys != "k" {
		t.Errorf("bindings out of file order: %q, %q", bindings[0].Keys, bindings[1].Keys)
	}
}
