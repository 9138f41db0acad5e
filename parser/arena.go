package parser

import (
	"unsafe"
)

// miniArena is a typed bump allocator that hands out pointers into
// pre-allocated chunks of T. When a chunk fills up, the next chunk is
// allocated at 1.5x the previous size; memory already handed out stays
// valid because the callers hold live pointers into it.
type miniArena[T any] struct {
	elementSize uintptr

	chunk unsafe.Pointer
	cap   uintptr
	next  uintptr
}

func newArena[T any](startCap int) *miniArena[T] {
	var t T
	return &miniArena[T]{
		elementSize: unsafe.Sizeof(t),
		cap:         uintptr(startCap),
		chunk:       unsafe.Pointer(&make([]T, startCap)[0]),
	}
}

func (a *miniArena[T]) make() *T {
	n := (*T)(unsafe.Add(a.chunk, a.next*a.elementSize))
	if a.next++; a.next == a.cap {
		a.grow()
	}

	return n
}

//go:noinline
func (a *miniArena[T]) grow() {
	a.cap += a.cap >> 1 // 1.5x growth, integer math

	a.chunk = unsafe.Pointer(&make([]T, a.cap)[0])
	a.next = 0
}

// makeSlice allocates n contiguous elements from the arena and returns a
// slice whose backing array lives in arena memory. If the current chunk
// doesn't have enough room, a new chunk is allocated that is large enough.
func (a *miniArena[T]) makeSlice(n int) []T {
	if n == 0 {
		return nil
	}
	un := uintptr(n)
	if a.next+un > a.cap {
		a.growForSlice(un)
	}
	start := unsafe.Add(a.chunk, a.next*a.elementSize)
	a.next += un
	if a.next == a.cap {
		a.grow()
	}
	return unsafe.Slice((*T)(start), n)
}

// growForSlice allocates a new chunk large enough to hold at least minElems
// contiguous elements. Kept out-of-line so the fast path in makeSlice stays
// free of write barriers.
//
//go:noinline
func (a *miniArena[T]) growForSlice(minElems uintptr) {
	newCap := a.cap + a.cap>>1 // 1.5x growth, integer math
	if newCap < minElems {
		newCap = minElems
	}
	a.cap = newCap
	a.chunk = unsafe.Pointer(&make([]T, newCap)[0])
	a.next = 0
}
