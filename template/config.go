package template

import (
	"errors"
	"fmt"
	"strings"
)

// Default delimiters and cache size.
const (
	DefaultLeftDelim  = "{{"
	DefaultRightDelim = "}}"
	DefaultCacheSize  = 256
)

// Config holds configuration for an Engine.
// Zero values are replaced by defaults in NewEngine where noted.
type Config struct {
	// LeftDelim opens an expression region.
	// Default: "{{".
	LeftDelim string `json:"left_delim" yaml:"left_delim" toml:"left_delim"`

	// RightDelim closes an expression region.
	// Default: "}}".
	RightDelim string `json:"right_delim" yaml:"right_delim" toml:"right_delim"`

	// CacheSize bounds the number of parsed templates an Engine keeps,
	// keyed by source text. 0 disables caching.
	CacheSize int `json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LeftDelim:  DefaultLeftDelim,
		RightDelim: DefaultRightDelim,
		CacheSize:  DefaultCacheSize,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.LeftDelim == "" || c.RightDelim == "" {
		return errors.New("delimiters must not be empty")
	}
	if c.LeftDelim == c.RightDelim {
		return fmt.Errorf("left and right delimiters must differ, both are %q", c.LeftDelim)
	}
	if strings.Contains(c.LeftDelim, c.RightDelim) || strings.Contains(c.RightDelim, c.LeftDelim) {
		return fmt.Errorf("delimiters %q and %q overlap", c.LeftDelim, c.RightDelim)
	}
	if strings.ContainsAny(c.LeftDelim+c.RightDelim, " \t\r\n|") {
		return errors.New("delimiters must not contain whitespace or '|'")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", c.CacheSize)
	}
	return nil
}

// delims returns the delimiter pair of the config.
func (c Config) delims() Delims {
	return Delims{Left: c.LeftDelim, Right: c.RightDelim}
}
