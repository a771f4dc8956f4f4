// Command libtplkit builds the template engine as a C shared library:
//
//	go build -buildmode=c-shared -o libtplkit.so ./cmd/libtplkit
//
// It exports three symbols:
//
//	char *variables(char *text);
//	char *execute(char *text, char *context_json);
//	void  release(char *buf);
//
// Every buffer returned by variables or execute must be passed to release
// exactly once. Failures are returned as a JSON error document; see package
// ffi. A NULL text is treated as an empty template and a NULL context as "{}".
//
// The library reads its configuration from the environment when loaded:
//
//	TPLKIT_LOG_LEVEL    debug, info, warn or error; logs to stderr (default: off)
//	TPLKIT_LEFT_DELIM   opening delimiter (default: "{{")
//	TPLKIT_RIGHT_DELIM  closing delimiter (default: "}}")
//	TPLKIT_CACHE_SIZE   parsed templates kept by source text (default: 256)
//
// An invalid environment falls back to the defaults with a warning.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"unsafe"

	"github.com/caarlos0/env/v10"

	"github.com/randalmurphal/tplkit/ffi"
	"github.com/randalmurphal/tplkit/template"
)

// libConfig holds the environment configuration of the shared library.
type libConfig struct {
	LogLevel   string `env:"TPLKIT_LOG_LEVEL"`
	LeftDelim  string `env:"TPLKIT_LEFT_DELIM" envDefault:"{{"`
	RightDelim string `env:"TPLKIT_RIGHT_DELIM" envDefault:"}}"`
	CacheSize  int    `env:"TPLKIT_CACHE_SIZE" envDefault:"256"`
}

// loadConfig parses the environment into a libConfig and validates the
// engine settings it carries.
func loadConfig() (libConfig, error) {
	var cfg libConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.engineConfig().Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c libConfig) engineConfig() template.Config {
	return template.Config{
		LeftDelim:  c.LeftDelim,
		RightDelim: c.RightDelim,
		CacheSize:  c.CacheSize,
	}
}

var boundary = newBoundary()

func newBoundary() *ffi.Boundary {
	cfg, cfgErr := loadConfig()
	logger := newLogger(cfg.LogLevel)

	engineCfg := template.DefaultConfig()
	if cfgErr != nil {
		logger.Warn("ignoring environment configuration", "error", cfgErr)
	} else {
		engineCfg = cfg.engineConfig()
	}

	engine, err := template.NewEngineFromConfig(engineCfg, template.WithLogger(logger))
	if err != nil {
		// engineCfg has been validated.
		panic(err)
	}
	return ffi.New(engine, ffi.CAllocator{}, ffi.WithLogger(logger))
}

// newLogger returns a stderr text logger at level, or a discard logger when
// level is empty or not a known level name.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if level == "" || lvl.UnmarshalText([]byte(level)) != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

//export variables
func variables(text *C.char) *C.char {
	return (*C.char)(boundary.Variables(C.GoString(text)))
}

//export execute
func execute(text, contextJSON *C.char) *C.char {
	ctx := "{}"
	if contextJSON != nil {
		ctx = C.GoString(contextJSON)
	}
	return (*C.char)(boundary.Execute(C.GoString(text), ctx))
}

//export release
func release(buf *C.char) {
	boundary.Release(unsafe.Pointer(buf))
}

func main() {}
