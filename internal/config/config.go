package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/logging"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "KEYCHORD"

// Hosts accepted by the host setting.
const (
	HostTcell = "tcell"
	HostTea   = "tea"
)

// Defaults are applied before any config file is read.
var Defaults = map[string]any{
	"engine.sequence_timeout":   "1000ms",
	"engine.allow_while_typing": []string{"Escape", "?"},
	"engine.strict":             false,
	"bindings":                  "",
	"watch":                     true,
	"scripts":                   []string{},
	"host":                      HostTcell,
	"log.level":                 "",
	"log.format":                "text",
	"log.file":                  "",
}

// Config is the decoded keychord configuration.
type Config struct {
	Engine   EngineConfig `mapstructure:"engine"`
	Bindings string       `mapstructure:"bindings"` // empty uses the default table
	Watch    bool         `mapstructure:"watch"`
	Scripts  []string     `mapstructure:"scripts"`
	Host     string       `mapstructure:"host"` // tcell | tea
	Log      LogConfig    `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// EngineConfig holds the shortcut engine settings.
type EngineConfig struct {
	SequenceTimeout  time.Duration `mapstructure:"sequence_timeout"`
	AllowWhileTyping []string      `mapstructure:"allow_while_typing"`
	Strict           bool          `mapstructure:"strict"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // empty disables logging
	Format string `mapstructure:"format"` // text | json
	File   string `mapstructure:"file"`
}

// Load reads the configuration. explicitPath, when set, must exist.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	for k, val := range Defaults {
		v.SetDefault(k, val)
	}

	// KEYCHORD_ENGINE_STRICT -> engine.strict
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, explicitPath)
			}
			return nil, err
		}
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", explicitPath, err)
		}
	} else if dir := Dir(); dir != "" {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dir returns the per-user keychord config directory, or "" if unknown.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "keychord")
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Engine.SequenceTimeout < 0 {
		return &ValidationError{Path: "engine.sequence_timeout", Message: "must not be negative", Value: c.Engine.SequenceTimeout}
	}
	if _, errs := c.EngineConfig().AllowTokens(); len(errs) > 0 {
		return &ValidationError{Path: "engine.allow_while_typing", Message: errs[0].Error(), Value: c.Engine.AllowWhileTyping}
	}
	if c.Host != HostTcell && c.Host != HostTea {
		return &ValidationError{Path: "host", Message: "must be tcell or tea", Value: c.Host}
	}
	if c.Bindings != "" {
		if _, err := keymap.FormatFromPath(c.Bindings); err != nil {
			return &ValidationError{Path: "bindings", Message: err.Error(), Value: c.Bindings}
		}
	}
	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return &ValidationError{Path: "log.level", Message: err.Error(), Value: c.Log.Level}
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return &ValidationError{Path: "log.format", Message: "must be text or json", Value: c.Log.Format}
	}
	return nil
}

// EngineConfig converts the engine settings for input.New.
func (c *Config) EngineConfig() input.Config {
	return input.Config{
		SequenceTimeout:  c.Engine.SequenceTimeout,
		AllowWhileTyping: c.Engine.AllowWhileTyping,
		Strict:           c.Engine.Strict,
	}
}

// LoggingConfig converts the log settings for logging.New. The caller
// supplies the output writer.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
	}
}
