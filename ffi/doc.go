// Package ffi adapts a template.Engine to a C-style calling convention:
// strings in, NUL-terminated buffers out, one explicit release per buffer.
//
// The Boundary never lets an error or panic escape. Failures come back as a
// JSON error document in the same buffer slot a successful result would use:
//
//	b := ffi.New(template.NewEngine(), ffi.CAllocator{})
//	p := b.Execute("Hello, {{ name }}", `{"name": "sir"}`)
//	defer b.Release(p)
//
// CAllocator needs cgo. Pure-Go callers and tests can use VariablesPayload
// and ExecutePayload, which return the same bytes without allocating.
//
// cmd/libtplkit exports a Boundary as the variables, execute and release
// symbols of a shared library.
package ffi
