package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tplkit/template"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml over defaults", func(t *testing.T) {
		path := writeFile(t, dir, "a.yml", "log_level: info\ntemplate_dir: templates\ntemplate:\n  cache_size: 8\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Config{
			LogLevel:    "info",
			Template:    template.Config{LeftDelim: "{{", RightDelim: "}}", CacheSize: 8},
			TemplateDir: "templates",
			TemplateExt: ".tpl",
		}, cfg)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, dir, "a.toml", "template_ext = \".tmpl\"\n[template]\nleft_delim = \"[[\"\nright_delim = \"]]\"\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ".tmpl", cfg.TemplateExt)
		assert.Equal(t, "[[", cfg.Template.LeftDelim)
		assert.Equal(t, template.DefaultCacheSize, cfg.Template.CacheSize)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, dir, "a.ini", "x=1"))
		assert.ErrorContains(t, err, "unsupported")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(dir + "/nope.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, dir, "bad.yaml", "template: [\n"))
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("no file uses defaults", func(t *testing.T) {
		chdir(t, t.TempDir())
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("discovers tpl.yml", func(t *testing.T) {
		wd := t.TempDir()
		writeFile(t, wd, "tpl.yml", "template_dir: from-discovery\n")
		chdir(t, wd)
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "from-discovery", cfg.TemplateDir)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// chdir changes the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
