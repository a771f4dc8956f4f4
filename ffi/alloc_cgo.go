//go:build cgo

package ffi

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// CAllocator allocates buffers on the C heap, so a foreign caller may hold
// them for as long as it likes and hand them back through Release.
type CAllocator struct{}

// Alloc copies b into malloc'd memory followed by a NUL byte.
func (CAllocator) Alloc(b []byte) unsafe.Pointer {
	p := C.malloc(C.size_t(len(b) + 1))
	if p == nil {
		return nil
	}
	buf := unsafe.Slice((*byte)(p), len(b)+1)
	copy(buf, b)
	buf[len(b)] = 0
	return p
}

// Free releases a buffer returned by Alloc.
func (CAllocator) Free(p unsafe.Pointer) {
	C.free(p)
}
