package ffi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/randalmurphal/tplkit/template"
)

// Allocator hands out NUL-terminated buffers that outlive the call which
// produced them. Every pointer returned by Alloc must be passed to Free
// exactly once.
type Allocator interface {
	// Alloc copies b into a new buffer followed by a NUL byte.
	// It returns nil if the buffer cannot be allocated.
	Alloc(b []byte) unsafe.Pointer

	// Free releases a buffer returned by Alloc.
	Free(p unsafe.Pointer)
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Boundary) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Boundary exposes an Engine through string-in, buffer-out calls suitable
// for a C ABI. Results are either the successful payload or a JSON error
// document:
//
//	{"error":"missing variable: greet","kind":"missing_variable","name":"greet"}
//
// Kinds are the template.Kind* constants. Syntax errors carry "offset";
// missing variable and unknown filter errors carry "name".
//
// A Boundary holds no per-call state and is safe for concurrent use.
type Boundary struct {
	engine *template.Engine
	alloc  Allocator
	logger *slog.Logger
}

// New creates a Boundary over engine that returns buffers from alloc.
func New(engine *template.Engine, alloc Allocator, opts ...Option) *Boundary {
	b := &Boundary{
		engine: engine,
		alloc:  alloc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Variables parses text and returns a buffer holding the JSON array of
// variable names in order of first appearance, or an error document.
func (b *Boundary) Variables(text string) unsafe.Pointer {
	return b.alloc.Alloc(b.VariablesPayload(text))
}

// Execute renders text against the JSON object contextJSON and returns a
// buffer holding the rendered text, or an error document. An empty
// contextJSON is treated as "{}".
//
// The returned buffer is NUL-terminated, so a C caller sees rendered text
// only up to the first NUL byte it contains.
func (b *Boundary) Execute(text, contextJSON string) unsafe.Pointer {
	return b.alloc.Alloc(b.ExecutePayload(text, contextJSON))
}

// Release frees a buffer returned by Variables or Execute. A nil pointer is
// a no-op. Releasing the same buffer twice, or a buffer this Boundary did
// not return, is undefined.
func (b *Boundary) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b.alloc.Free(p)
}

// VariablesPayload is Variables without the allocation.
func (b *Boundary) VariablesPayload(text string) (out []byte) {
	defer b.recoverInto(&out, "variables")

	vars, err := b.engine.Variables(text)
	if err != nil {
		return b.errorPayload("variables", err)
	}
	if vars == nil {
		vars = []string{}
	}
	data, err := json.Marshal(vars)
	if err != nil {
		return b.errorPayload("variables", err)
	}
	return data
}

// ExecutePayload is Execute without the allocation.
func (b *Boundary) ExecutePayload(text, contextJSON string) (out []byte) {
	defer b.recoverInto(&out, "execute")

	if contextJSON == "" {
		contextJSON = "{}"
	}
	rendered, err := b.engine.Execute(text, []byte(contextJSON))
	if err != nil {
		return b.errorPayload("execute", err)
	}
	return []byte(rendered)
}

// recoverInto turns a panic in op into an internal error document.
func (b *Boundary) recoverInto(out *[]byte, op string) {
	r := recover()
	if r == nil {
		return
	}
	b.logger.Error("recovered panic", slog.String("op", op), slog.Any("panic", r))
	*out = b.errorPayload(op, fmt.Errorf("internal error: %v", r))
}

// errorDoc is the JSON shape of a failed call.
type errorDoc struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Offset *int   `json:"offset,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (b *Boundary) errorPayload(op string, err error) []byte {
	doc := errorDoc{Error: err.Error(), Kind: template.Kind(err)}

	var synErr *template.SyntaxError
	var missing *template.MissingVariableError
	var unknown *template.UnknownFilterError
	switch {
	case errors.As(err, &synErr):
		offset := synErr.Offset
		doc.Offset = &offset
	case errors.As(err, &missing):
		doc.Name = missing.Name
	case errors.As(err, &unknown):
		doc.Name = unknown.Name
	}

	b.logger.Debug("call failed", slog.String("op", op), slog.String("kind", doc.Kind), slog.Any("error", err))

	// Strings and an int pointer always marshal.
	data, _ := json.Marshal(doc)
	return data
}
