// Package template implements a small template language with variable
// interpolation and pipeable filters.
//
// # Syntax
//
// Expressions are enclosed in double braces and name a context variable,
// optionally followed by filters separated by '|':
//
//	Hello, {{ name }}. {{ greet | title }}
//
// Filters apply left to right, so {{ x | f | g }} renders g(f(x)).
// Everything outside the delimiters is copied verbatim. Delimiters can be
// changed with WithDelims.
//
// An unterminated "{{", or a "{{" inside an expression, is a *SyntaxError
// carrying the byte offset of the offending marker.
//
// # Parsing and Rendering
//
// Parse turns text into an immutable Template that can be rendered many
// times, concurrently, against different contexts:
//
//	tmpl, err := template.Parse("Hello, {{ name }}. {{ greet | title }}")
//	out, err := tmpl.Render(template.Context{"name": "sir", "greet": "what DO you think???"})
//	// out: "Hello, sir. What Do You Think???"
//
// Rendering is all-or-nothing. A variable missing from the context fails
// with *MissingVariableError and a filter missing from the registry fails
// with *UnknownFilterError; no partial output is produced.
//
// # Variable Extraction
//
// Variables lists the distinct variable names a template references, in
// order of first appearance:
//
//	tmpl.Variables() // ["name", "greet"]
//
// # Filters
//
// Filters are resolved at render time through a Registry, so parsing does
// not depend on which filters a build provides. Built-ins: title,
// capitalize, upper, lower, trim, trim_start, trim_end. Add more when
// building a registry:
//
//	reg := template.NewRegistry(template.WithFilter("shout", template.FilterFunc(shout)))
//	engine := template.NewEngine(template.WithRegistry(reg))
//
// # Contexts
//
// A Context maps names to strings. DecodeContext reads a flat JSON object;
// DecodeContextYAML and DecodeContextTOML read the YAML and TOML equivalents.
// Nested values reject the whole document with *ContextDecodeError.
//
// # Engine
//
// Engine caches parsed templates by source text and combines parsing,
// context decoding and rendering:
//
//	engine := template.NewEngine()
//	out, err := engine.Execute(src, []byte(`{"name": "sir"}`))
package template
