// Package store keeps a directory of template files parsed and addressable
// by name.
//
// Each file with the store's extension (".tpl" by default) becomes one
// template named after the file:
//
//	s, err := store.New("templates")
//	out, err := s.Render("greeting", template.Context{"name": "sir"})
//
// Watch keeps the store in sync with the directory until its context ends.
package store
