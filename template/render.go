package template

import (
	"fmt"
	"strings"
)

// render writes the output of nodes to b. It stops at the first missing
// variable or unknown filter; callers discard b on error.
func render(b *strings.Builder, nodes []Node, reg *Registry, ctx Context) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *TextNode:
			b.WriteString(n.Text)
		case *ExprNode:
			val, ok := ctx[n.Name]
			if !ok {
				return &MissingVariableError{Name: n.Name}
			}
			for _, name := range n.Filters {
				f, ok := reg.Lookup(name)
				if !ok {
					return &UnknownFilterError{Name: name}
				}
				val = f.Apply(val)
			}
			b.WriteString(val)
		default:
			return fmt.Errorf("unexpected node type %T", n)
		}
	}
	return nil
}

// ValidateContext checks that every required variable is present in ctx.
// The returned error is a *MissingVariableError for the first missing name,
// wrapped with the full list when more than one is missing.
func ValidateContext(required []string, ctx Context) error {
	var missing []string
	for _, name := range required {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return &MissingVariableError{Name: missing[0]}
	default:
		return fmt.Errorf("%w (all missing: %s)",
			&MissingVariableError{Name: missing[0]}, strings.Join(missing, ", "))
	}
}
