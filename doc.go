// Package tplkit is a small template engine for {{ variable | filter }}
// substitution, usable from Go, from C through a shared library, and from
// the command line.
//
// Each subpackage can be used independently:
//
//   - template: Lexing, parsing, variable extraction, filters and rendering
//   - ffi: C-style boundary returning NUL-terminated buffers and JSON error documents
//   - store: Directory of named template files with live reload
//
// Commands:
//
//   - cmd/tpl: CLI for render, vars, schema, filters and watch
//   - cmd/libtplkit: c-shared build exporting variables, execute and release
//
// # Quick Start
//
// Rendering:
//
//	import "github.com/randalmurphal/tplkit/template"
//	tmpl, _ := template.Parse("Hello, {{ name }}. {{ greet | title }}")
//	out, _ := tmpl.Render(template.Context{"name": "sir", "greet": "what DO you think???"})
//	// out: "Hello, sir. What Do You Think???"
//
// Variable extraction:
//
//	tmpl.Variables() // ["name", "greet"]
//
// JSON contexts through an engine with a parse cache:
//
//	engine := template.NewEngine()
//	out, err := engine.Execute(src, []byte(`{"name": "sir", "greet": "hi"}`))
package tplkit
