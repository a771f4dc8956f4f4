package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/tplkit/store"
	"github.com/randalmurphal/tplkit/template"
)

// defaultConfigFiles are tried in order when --config is not given.
var defaultConfigFiles = []string{"tpl.yaml", "tpl.yml", "tpl.toml"}

// Config is the tpl configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn or error. Empty disables logging.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Template configures the template engine.
	Template template.Config `yaml:"template" toml:"template"`

	// TemplateDir is the default directory for the watch command.
	TemplateDir string `yaml:"template_dir" toml:"template_dir"`

	// TemplateExt is the extension of template files in TemplateDir.
	TemplateExt string `yaml:"template_ext" toml:"template_ext"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Template:    template.DefaultConfig(),
		TemplateDir: ".",
		TemplateExt: store.DefaultExtension,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Template.Validate(); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	return nil
}

// LoadConfig reads the config file at path, decoded by extension, over
// DefaultConfig. With an empty path the default file names are tried in
// the working directory; if none exists the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, name := range defaultConfigFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config file extension %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// parseLevel parses a log level name. An empty name is valid and means
// logging is off.
func parseLevel(name string) (slog.Level, error) {
	if name == "" {
		return 0, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: use debug, info, warn or error", name)
	}
	return lvl, nil
}

// newLogger returns a text logger on w at the named level, or a discard
// logger when name is empty.
func newLogger(w io.Writer, name string) (*slog.Logger, error) {
	if name == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	lvl, err := parseLevel(name)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
