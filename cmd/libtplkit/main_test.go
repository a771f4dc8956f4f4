//go:build cgo

package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/tplkit/template"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"", false, true},
		{"bogus", false, true},
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, true},
		{"error", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger(tt.level)
			assert.Equal(t, tt.debug, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.warn, logger.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}

func TestBoundaryInitialized(t *testing.T) {
	assert.NotNil(t, boundary)
	assert.Equal(t, "Hello, sir.", string(boundary.ExecutePayload("Hello, {{ name }}.", `{"name": "sir"}`)))
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.LogLevel)
		assert.Equal(t, template.DefaultConfig(), cfg.engineConfig())
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("TPLKIT_LOG_LEVEL", "debug")
		t.Setenv("TPLKIT_LEFT_DELIM", "<%")
		t.Setenv("TPLKIT_RIGHT_DELIM", "%>")
		t.Setenv("TPLKIT_CACHE_SIZE", "8")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, template.Config{LeftDelim: "<%", RightDelim: "%>", CacheSize: 8}, cfg.engineConfig())
	})

	t.Run("malformed cache size", func(t *testing.T) {
		t.Setenv("TPLKIT_CACHE_SIZE", "lots")
		_, err := loadConfig()
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("invalid delimiters", func(t *testing.T) {
		t.Setenv("TPLKIT_LEFT_DELIM", "##")
		t.Setenv("TPLKIT_RIGHT_DELIM", "##")
		_, err := loadConfig()
		assert.ErrorContains(t, err, "invalid config")
	})
}

func TestNewBoundary_FallsBackOnInvalidEnvironment(t *testing.T) {
	t.Setenv("TPLKIT_CACHE_SIZE", "-1")
	b := newBoundary()
	assert.Equal(t, "Hi sir", string(b.ExecutePayload("Hi {{ name }}", `{"name": "sir"}`)))
}
