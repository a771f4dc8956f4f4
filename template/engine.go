package template

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Option configures Parse and NewEngine.
type Option func(*options)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type options struct {
	registry  *Registry
	delims    Delims
	cacheSize int
	logger    *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		registry:  defaultRegistry,
		delims:    defaultDelims,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	return o
}

// WithRegistry sets the filter registry used when rendering.
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithDelims sets the expression delimiters.
func WithDelims(left, right string) Option {
	return func(o *options) {
		o.delims = Delims{Left: left, Right: right}
	}
}

// WithCacheSize bounds the parsed-template cache. 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfig applies the delimiters and cache size from cfg.
// The config is not validated here; see NewEngineFromConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.delims = cfg.delims()
		o.cacheSize = cfg.CacheSize
	}
}

// Engine parses and renders templates, caching parsed templates by source text.
// All methods are safe for concurrent use.
type Engine struct {
	registry  *Registry
	delims    Delims
	cacheSize int
	logger    *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Template
}

// NewEngine creates a new template engine using the built-in filters
// unless WithRegistry is given.
func NewEngine(opts ...Option) *Engine {
	o := newOptions(opts)
	return &Engine{
		registry:  o.registry,
		delims:    o.delims,
		cacheSize: o.cacheSize,
		logger:    o.logger,
		cache:     make(map[string]*Template),
	}
}

// NewEngineFromConfig validates cfg and creates an engine from it.
// Options in opts are applied after the config.
func NewEngineFromConfig(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template config: %w", err)
	}
	return NewEngine(append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Registry returns the filter registry used when rendering.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Delims returns the delimiters used when parsing.
func (e *Engine) Delims() Delims {
	return e.delims
}

// Parse returns the parsed template for src, from cache when possible.
// Parse errors are not cached.
func (e *Engine) Parse(src string) (*Template, error) {
	if e.cacheSize <= 0 {
		return Parse(src, WithDelims(e.delims.Left, e.delims.Right))
	}

	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[src]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	tmpl, err := Parse(src, WithDelims(e.delims.Left, e.delims.Right))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Another goroutine may have parsed the same source meanwhile
	if cached, ok := e.cache[src]; ok {
		return cached, nil
	}
	if len(e.cache) >= e.cacheSize {
		e.logger.Debug("template cache full, resetting", slog.Int("size", len(e.cache)))
		e.cache = make(map[string]*Template)
	}
	e.cache[src] = tmpl

	return tmpl, nil
}

// Validate parses src without rendering it.
func (e *Engine) Validate(src string) error {
	_, err := e.Parse(src)
	return err
}

// Variables parses src and returns the variable names it references,
// in order of first appearance.
func (e *Engine) Variables(src string) ([]string, error) {
	tmpl, err := e.Parse(src)
	if err != nil {
		return nil, err
	}
	return tmpl.Variables(), nil
}

// Render parses src and renders it with ctx.
func (e *Engine) Render(src string, ctx Context) (string, error) {
	tmpl, err := e.Parse(src)
	if err != nil {
		return "", err
	}
	out, err := tmpl.RenderWith(e.registry, ctx)
	if err != nil {
		e.logger.Debug("render failed", slog.String("kind", Kind(err)), slog.Any("error", err))
		return "", err
	}
	return out, nil
}

// Execute parses src, decodes contextJSON with DecodeContext and renders.
func (e *Engine) Execute(src string, contextJSON []byte) (string, error) {
	tmpl, err := e.Parse(src)
	if err != nil {
		return "", err
	}
	ctx, err := DecodeContext(contextJSON)
	if err != nil {
		return "", err
	}
	out, err := tmpl.RenderWith(e.registry, ctx)
	if err != nil {
		e.logger.Debug("render failed", slog.String("kind", Kind(err)), slog.Any("error", err))
		return "", err
	}
	return out, nil
}

// ClearCache clears the parsed-template cache.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*Template)
}

// CacheLen returns the number of cached templates.
func (e *Engine) CacheLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
