// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

// chunkNode is a block interpreted as N raw slots plus the doubly linked
// list pointers. slots is allocated once, at chunk-creation time, and
// never reallocated — &slots[i] is stable for the chunk's whole lifetime.
type chunkNode[T any] struct {
	slots []T
	prev  *chunkNode[T]
	next  *chunkNode[T]
}

// chunkList is a doubly linked list of fixed-capacity-N chunks: the
// writer only ever touches the tail (back/push/unpush), the reader only
// ever touches the head (front/pop). There is no internal
// synchronization — none is needed, because the two sides never touch
// the same chunk pointers at the same time, only the shared BlockCache
// that recycles chunks between them.
type chunkList[T any] struct {
	noCopy

	n     int
	cache *BlockCache[chunkNode[T]]

	// (front/pop) access point — reader-owned.
	beginChunk *chunkNode[T]
	beginPos   int

	// (back/push/unpush) access point — writer-owned.
	backChunk *chunkNode[T]
	backPos   int
	endChunk  *chunkNode[T] // always the list's tail node
	endPos    int
}

// newChunkList creates a chunkList of chunk capacity n, backed by a
// BlockCache of reserve capacity s. Panics if n < 1 (spec requires N >= 1)
// or if the very first chunk cannot be allocated — a pipe cannot exist
// without at least one chunk, so that failure is treated as fatal rather
// than surfaced through the bool-returning OOM path used everywhere else.
func newChunkList[T any](n, s int) *chunkList[T] {
	if n < 1 {
		panic("pipe: chunk size must be >= 1")
	}
	cl := &chunkList[T]{n: n}
	cl.cache = newBlockCache[chunkNode[T]](newRawAllocator(func() *chunkNode[T] {
		return &chunkNode[T]{slots: make([]T, n)}
	}), s)

	first := cl.cache.alloc()
	if first == nil {
		panic("pipe: failed to allocate initial chunk")
	}
	cl.beginChunk = first
	cl.endChunk = first
	return cl
}

// front returns a reference to the first live element. Undefined if the
// list is empty. Reader-only.
func (cl *chunkList[T]) front() *T {
	return &cl.beginChunk.slots[cl.beginPos]
}

// back returns a reference to the last live element. Undefined if the
// list is empty. Writer-only.
func (cl *chunkList[T]) back() *T {
	return &cl.backChunk.slots[cl.backPos]
}

// full reports whether the tail frontier has reached the end of its
// chunk without yet obtaining a replacement — i.e. a previous push/growEnd
// failed to allocate and left end in its boundary sentinel position.
// While full, back() still refers to the slot most recently committed,
// not a free one; the writer must growEnd successfully before pushing
// again.
func (cl *chunkList[T]) full() bool {
	return cl.endPos == cl.n
}

// growEnd obtains a fresh tail chunk from the cache and links it after
// endChunk. Returns false, leaving all state unchanged, if the cache and
// raw allocator are both exhausted.
func (cl *chunkList[T]) growEnd() bool {
	nc := cl.cache.alloc()
	if nc == nil {
		return false
	}
	cl.endChunk.next = nc
	nc.prev = cl.endChunk
	nc.next = nil
	cl.endChunk = nc
	cl.endPos = 0
	return true
}

// push commits the current tail "in-progress" slot as the new back, then
// advances the tail. Writer-only. Returns false if advancing crossed a
// chunk boundary and no replacement chunk was available — the element
// just committed into back() is unaffected either way; only the
// following push (i.e. the following Write) is blocked until a later
// push or growEnd succeeds.
func (cl *chunkList[T]) push() bool {
	cl.backChunk, cl.backPos = cl.endChunk, cl.endPos
	cl.endPos++
	if cl.endPos != cl.n {
		return true
	}
	return cl.growEnd()
}

// unpush rolls back the most recent push. Writer-only; undefined if the
// list is empty.
func (cl *chunkList[T]) unpush() {
	if cl.backPos > 0 {
		cl.backPos--
	} else {
		cl.backPos = cl.n - 1
		cl.backChunk = cl.backChunk.prev
	}

	if cl.endPos > 0 {
		cl.endPos--
	} else {
		cl.endPos = cl.n - 1
		cl.endChunk = cl.endChunk.prev
		cl.cache.free(cl.endChunk.next)
		cl.endChunk.next = nil
	}
}

// pop discards the front element. Reader-only.
func (cl *chunkList[T]) pop() {
	cl.beginPos++
	if cl.beginPos == cl.n {
		old := cl.beginChunk
		cl.beginChunk = cl.beginChunk.next
		cl.beginChunk.prev = nil
		cl.beginPos = 0
		cl.cache.free(old)
	}
}

// close returns every remaining chunk to the cache. Not part of the
// spec's operation set; an optional, idiomatic-Go release hook for
// callers that want to recycle chunks eagerly instead of waiting on the
// garbage collector.
func (cl *chunkList[T]) close() {
	for cl.beginChunk != cl.endChunk {
		next := cl.beginChunk.next
		cl.cache.free(cl.beginChunk)
		cl.beginChunk = next
	}
	cl.cache.free(cl.beginChunk)
}
