// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

// ObjectAllocator layers placement construction/destruction over a
// BlockCache. It is a standalone utility, not wired into ChunkList's own
// internals (which cache raw chunk blocks directly) — it exists for
// callers who want the same cached-block discipline for heap objects they
// pass by pointer, for instance constructing the pointees that flow
// through a Pipe[*T] (a pipe whose element type happens to be a pointer),
// so the pointed-to object is recycled the same way the pipe recycles its
// own chunks.
//
// Go has no C++-style placement new or exceptions, so "construct in
// place" becomes "hand the caller a *T pointing at cache-provided memory,
// optionally running an init callback", and "exception safety" becomes a
// defer/recover: if init panics, the block is returned to the cache
// before the panic is re-raised, so a failed construction never leaks a
// block and never leaves a half-built object reachable.
type ObjectAllocator[T any] struct {
	noCopy

	cache *BlockCache[T]
}

// NewObjectAllocator creates an ObjectAllocator backed by a BlockCache of
// reserve capacity s.
func NewObjectAllocator[T any](s int) *ObjectAllocator[T] {
	return &ObjectAllocator[T]{cache: newBlockCache[T](newRawAllocator[T](nil), s)}
}

// Alloc obtains a block and, if init is non-nil, runs it against the
// block before returning. If the cache and the raw allocator are both
// exhausted, Alloc returns (nil, nil) — there is nothing to construct. If
// init returns an error, the block is returned to the cache and the error
// is propagated. If init panics, the block is returned to the cache and
// the panic is re-raised — the caller never observes a half-built object.
func (a *ObjectAllocator[T]) Alloc(init func(*T) error) (ptr *T, err error) {
	mem := a.cache.alloc()
	if mem == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			a.cache.free(mem)
			panic(r)
		}
	}()

	if init != nil {
		if err = init(mem); err != nil {
			a.cache.free(mem)
			return nil, err
		}
	}
	return mem, nil
}

// Free destructs ptr (zeroes it, so any references it held can be
// collected) and returns its block to the cache. Free(nil) is a no-op.
func (a *ObjectAllocator[T]) Free(ptr *T) {
	if ptr == nil {
		return
	}
	var zero T
	*ptr = zero
	a.cache.free(ptr)
}
