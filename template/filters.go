package template

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter is a named, pure string transformation applied in an expression's pipe chain.
type Filter interface {
	Apply(s string) string
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(s string) string

// Apply calls f(s).
func (f FilterFunc) Apply(s string) string {
	return f(s)
}

// Registry maps filter names to filters.
// A Registry is populated at construction and never mutated afterwards,
// so it is safe to share between goroutines without locking.
type Registry struct {
	filters map[string]Filter
}

// RegistryOption configures a Registry during NewRegistry.
type RegistryOption func(filters map[string]Filter)

// WithFilter registers f under name, replacing any built-in of the same name.
//
// Example:
//
//	reg := template.NewRegistry(
//	    template.WithFilter("reverse", template.FilterFunc(reverse)),
//	)
func WithFilter(name string, f Filter) RegistryOption {
	return func(filters map[string]Filter) {
		filters[name] = f
	}
}

// WithoutBuiltins starts the registry empty instead of with the built-in filters.
func WithoutBuiltins() RegistryOption {
	return func(filters map[string]Filter) {
		for name := range filters {
			delete(filters, name)
		}
	}
}

// NewRegistry creates a registry holding the built-in filters plus any
// filters added by opts, applied in order.
func NewRegistry(opts ...RegistryOption) *Registry {
	filters := builtinFilters()
	for _, opt := range opts {
		opt(filters)
	}
	return &Registry{filters: filters}
}

// Lookup returns the filter registered under name. Lookups are case-sensitive.
func (r *Registry) Lookup(name string) (Filter, bool) {
	f, ok := r.filters[name]
	return f, ok
}

// Has reports whether a filter is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.filters[name]
	return ok
}

// Names returns the registered filter names.
// The list is sorted alphabetically for consistent ordering.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is the process-wide registry of built-in filters.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry of built-in filters.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// builtinFilters returns a fresh map of the built-in filters.
func builtinFilters() map[string]Filter {
	return map[string]Filter{
		"title":      FilterFunc(title),
		"capitalize": FilterFunc(capitalize),
		"upper":      FilterFunc(strings.ToUpper),
		"lower":      FilterFunc(strings.ToLower),
		"trim":       FilterFunc(strings.TrimSpace),
		"trim_start": FilterFunc(trimStart),
		"trim_end":   FilterFunc(trimEnd),
	}
}

// title capitalizes each whitespace-separated word: its first letter is
// upper-cased and the letters after it lower-cased. Non-letters, including
// any punctuation or digits before the first letter, are kept as they are,
// so title is idempotent.
func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	atWordStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			b.WriteRune(r)
		case !unicode.IsLetter(r):
			b.WriteRune(r)
		case atWordStart:
			atWordStart = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// capitalize upper-cases the first rune of s and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func trimStart(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

func trimEnd(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
