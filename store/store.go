package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/tplkit/template"
)

// DefaultExtension is the file extension of template files.
const DefaultExtension = ".tpl"

// DefaultPollInterval is how often Watch rescans the directory when file
// notifications are unavailable.
const DefaultPollInterval = 500 * time.Millisecond

// ErrNotFound is returned when no template is stored under a name.
var ErrNotFound = errors.New("template not found")

// Option configures a Store.
type Option func(*Store)

// WithExtension sets the extension of template files. A missing leading
// dot is added.
func WithExtension(ext string) Option {
	return func(s *Store) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithEngine sets the engine used to parse and render templates.
func WithEngine(engine *template.Engine) Option {
	return func(s *Store) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPollInterval sets the rescan interval used when Watch falls back to polling.
func WithPollInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// Store holds the parsed templates found in one directory, keyed by file
// name without extension. A Store is safe for concurrent use; Refresh swaps
// the whole set at once so readers never see a partial reload.
type Store struct {
	dir          string
	ext          string
	engine       *template.Engine
	logger       *slog.Logger
	pollInterval time.Duration

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New creates a Store for dir and loads it.
func New(dir string, opts ...Option) (*Store, error) {
	s := &Store{
		dir:          dir,
		ext:          DefaultExtension,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		pollInterval: DefaultPollInterval,
		templates:    make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = template.NewEngine(template.WithLogger(s.logger))
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the directory the store loads from.
func (s *Store) Dir() string {
	return s.dir
}

// Refresh rereads every template file in the directory. If any file fails
// to read or parse, the previously loaded set is kept and the error names
// the offending path.
func (s *Store) Refresh() error {
	loaded, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.templates = loaded
	s.mu.Unlock()

	s.logger.Debug("templates loaded", slog.String("dir", s.dir), slog.Int("count", len(loaded)))
	return nil
}

func (s *Store) load() (map[string]*template.Template, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	loaded := make(map[string]*template.Template)
	for _, entry := range entries {
		name, ok := s.templateName(entry.Name())
		if !ok || entry.IsDir() {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		tmpl, err := s.engine.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
		loaded[name] = tmpl
	}
	return loaded, nil
}

// templateName returns the store name for a file name, or false if the
// file is not a template.
func (s *Store) templateName(fileName string) (string, bool) {
	if !strings.HasSuffix(fileName, s.ext) || len(fileName) == len(s.ext) {
		return "", false
	}
	return strings.TrimSuffix(fileName, s.ext), true
}

// Get returns the template stored under name.
func (s *Store) Get(name string) (*template.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[name]
	return tmpl, ok
}

// Names returns the stored template names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render renders the template stored under name with the store's engine registry.
func (s *Store) Render(name string, ctx template.Context) (string, error) {
	tmpl, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return tmpl.RenderWith(s.engine.Registry(), ctx)
}
