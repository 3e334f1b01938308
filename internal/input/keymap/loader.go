package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a binding file encoding.
type Format string

// Supported binding file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Loader loads binding tables from configuration files.
type Loader struct {
	// searchPaths are directories to search for binding files.
	searchPaths []string
}

// NewLoader creates a new binding file loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for binding files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile reads a binding file, picking the decoder from its extension.
// The returned bindings are not yet validated; pass them to NewTable.
func (l *Loader) LoadFile(path string) ([]Binding, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening binding file: %w", err)
	}
	defer f.Close()

	bindings, err := Load(f, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return bindings, nil
}

// LoadAll loads every binding file in the search paths, in directory order
// and then file name order, and concatenates the results.
func (l *Loader) LoadAll() ([]Binding, error) {
	var all []Binding

	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading binding directory %s: %w", dir, err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatFromPath(e.Name()); err != nil {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			bindings, err := l.LoadFile(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			all = append(all, bindings...)
		}
	}

	return all, nil
}

// Load decodes bindings from r in the given format.
func Load(r io.Reader, format Format) ([]Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}

	var cfg fileConfig
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: "<toml>", Message: err.Error(), Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: "<yaml>", Message: err.Error(), Err: err}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, &ParseError{Path: "<json>", Message: err.Error(), Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	bindings := make([]Binding, 0, len(cfg.Bindings))
	for i, bc := range cfg.Bindings {
		b, err := bc.toBinding()
		if err != nil {
			return nil, &BindingError{Index: i, Keys: bc.Keys, Err: err}
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}

// Encode writes bindings to w in the given format.
func Encode(w io.Writer, bindings []Binding, format Format) error {
	cfg := fileConfig{Bindings: make([]bindingConfig, 0, len(bindings))}
	for _, b := range bindings {
		cfg.Bindings = append(cfg.Bindings, bindingConfig{
			Keys:        b.Keys,
			Action:      b.Action.Kind.String(),
			Target:      b.Action.Target,
			Description: b.Description,
			Category:    b.Category,
		})
	}

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveFile writes bindings to path, picking the encoder from its extension.
func SaveFile(path string, bindings []Binding) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, bindings, format); err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing binding file: %w", err)
	}
	return nil
}

// fileConfig is the on-disk structure of a binding file.
type fileConfig struct {
	Bindings []bindingConfig `toml:"bindings" yaml:"bindings" json:"bindings"`
}

type bindingConfig struct {
	Keys        string `toml:"keys" yaml:"keys" json:"keys"`
	Action      string `toml:"action" yaml:"action" json:"action"`
	Target      string `toml:"target" yaml:"target" json:"target"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Category    string `toml:"category,omitempty" yaml:"category,omitempty" json:"category,omitempty"`
}

func (bc bindingConfig) toBinding() (Binding, error) {
	kind, err := ParseKind(bc.Action)
	if err != nil {
		return Binding{}, err
	}
	return Binding{
		Keys:        bc.Keys,
		Action:      Action{Kind: kind, Target: bc.Target},
		Description: bc.Description,
		Category:    bc.Category,
	}, nil
}
