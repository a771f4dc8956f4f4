package template

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// ContextSchema describes, as a JSON Schema, the context a template needs:
// an object with one required string property per variable, in order of
// first appearance. Extra properties are allowed since rendering ignores them.
func ContextSchema(t *Template) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	filters := filtersByVariable(t.nodes)

	for _, name := range t.vars {
		prop := &jsonschema.Schema{Type: "string"}
		if chain := filters[name]; len(chain) > 0 {
			prop.Description = fmt.Sprintf("filtered by %s", strings.Join(chain, ", "))
		}
		props.Set(name, prop)
	}

	return &jsonschema.Schema{
		Version:    jsonschema.Version,
		Type:       "object",
		Properties: props,
		Required:   t.Variables(),
	}
}

// filtersByVariable lists the distinct filters applied to each variable
// across all of its expressions, in order of first use.
func filtersByVariable(nodes []Node) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]bool)
	for _, n := range nodes {
		expr, ok := n.(*ExprNode)
		if !ok {
			continue
		}
		for _, f := range expr.Filters {
			key := expr.Name + "|" + f
			if !seen[key] {
				seen[key] = true
				out[expr.Name] = append(out[expr.Name], f)
			}
		}
	}
	return out
}
