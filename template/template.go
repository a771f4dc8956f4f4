package template

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Template is parsed template source. It is immutable once created and may
// be rendered concurrently with independent contexts.
type Template struct {
	source string
	nodes  []Node
	vars   []string
}

// Parse parses src into a reusable Template.
// Only the delimiter options (WithDelims, WithConfig) affect parsing;
// filter names are resolved at render time, not here.
func Parse(src string, opts ...Option) (*Template, error) {
	o := newOptions(opts)
	if o.delims.Left == "" || o.delims.Right == "" {
		return nil, errors.New("template delimiters must not be empty")
	}
	nodes, err := parse(src, o.delims)
	if err != nil {
		return nil, err
	}
	return &Template{
		source: src,
		nodes:  nodes,
		vars:   Variables(nodes),
	}, nil
}

// MustParse is like Parse but panics if src cannot be parsed.
// Use only with constant template text (e.g., in tests or package variables).
func MustParse(src string, opts ...Option) *Template {
	t, err := Parse(src, opts...)
	if err != nil {
		panic(fmt.Sprintf("template.MustParse(%q): %v", src, err))
	}
	return t
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string {
	return t.source
}

// Nodes returns a copy of the parsed node sequence.
func (t *Template) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	for i, n := range t.nodes {
		switch n := n.(type) {
		case *TextNode:
			out[i] = &TextNode{Text: n.Text}
		case *ExprNode:
			out[i] = &ExprNode{Name: n.Name, Filters: append([]string(nil), n.Filters...), Offset: n.Offset}
		}
	}
	return out
}

// Variables returns the distinct variable names referenced by the template,
// in order of first appearance.
func (t *Template) Variables() []string {
	return append([]string(nil), t.vars...)
}

// Render renders the template with the built-in filter registry.
func (t *Template) Render(ctx Context) (string, error) {
	return t.RenderWith(defaultRegistry, ctx)
}

// RenderWith renders the template, resolving filters through reg, or
// through the built-in filters when reg is nil.
// Rendering is all-or-nothing: on error the returned string is empty.
func (t *Template) RenderWith(reg *Registry, ctx Context) (string, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	var b strings.Builder
	b.Grow(len(t.source))
	if err := render(&b, t.nodes, reg, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderTo renders the template with the built-in filters and writes the
// result to w. Nothing is written when rendering fails.
func (t *Template) RenderTo(w io.Writer, ctx Context) error {
	out, err := t.Render(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Variables collects the distinct variable names referenced by nodes,
// each exactly once, in order of first appearance.
func Variables(nodes []Node) []string {
	seen := make(map[string]bool)
	var result []string
	for _, n := range nodes {
		expr, ok := n.(*ExprNode)
		if !ok {
			continue
		}
		if !seen[expr.Name] {
			seen[expr.Name] = true
			result = append(result, expr.Name)
		}
	}
	return result
}
