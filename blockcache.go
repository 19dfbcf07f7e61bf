// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// BlockCache is a bounded, concurrency-safe free list of *B with reserve
// capacity S.
//
// head and tail range over [0, 2S); the physical slot is the index modulo
// S. This is the "two-slot-size" trick from the teacher's own
// MemoryAllocator<T,S>: it lets empty (head == tail) and full
// (|head-tail| == S, mod 2S) be told apart without a separate counter.
// The ring buffer itself (buf) is a plain []unsafe.Pointer synchronized
// purely by the head/tail CAS — the same pattern the teacher's own
// SPSCPtr uses for its buffer.
//
// S == 0 and S == 1 are specialized per spec: S == 0 passes straight
// through to the raw allocator with no atomic state; S == 1 collapses to
// a single atomic cell exchanged on each call.
type BlockCache[B any] struct {
	noCopy

	raw  *rawAllocator[B]
	size uint64 // S; 0 and 1 take the specialized fast paths below

	_    padPtr
	cell atomix.Pointer[B] // S == 1 fast path
	_    padShort
	head atomix.Uint64 // consumer (alloc) index, S > 1
	_    padShort
	tail atomix.Uint64 // producer (free) index, S > 1
	_    pad
	buf  []unsafe.Pointer // physical ring, length S, S > 1
}

// NewBlockCache creates a BlockCache[B] with reserve capacity s, backed
// by a plain new(B) on cache misses and for S == 0. ObjectAllocator and
// chunkList each build their own BlockCache internally (over T and
// chunkNode[T] respectively); this constructor is for callers who want
// the same bounded free-list discipline directly over their own type.
func NewBlockCache[B any](s int) *BlockCache[B] {
	return newBlockCache[B](newRawAllocator[B](nil), s)
}

// newBlockCache creates a BlockCache with reserve capacity s, backed by
// raw for cache misses and for S == 0.
func newBlockCache[B any](raw *rawAllocator[B], s int) *BlockCache[B] {
	if s < 0 {
		panic("pipe: cache size must be >= 0")
	}
	// 2S must fit the counter domain; with a 64-bit counter this can
	// only matter for S close to 2^63, which no real configuration
	// approaches, but the spec calls for the check at instantiation.
	if uint64(s) > (1<<63-1)/2 {
		panic("pipe: cache size too large for a 64-bit index")
	}
	c := &BlockCache[B]{raw: raw, size: uint64(s)}
	if s > 1 {
		c.buf = make([]unsafe.Pointer, s)
	}
	return c
}

// Alloc returns a cached *B if one is available, else falls through to
// the raw allocator. A nil result means the allocator itself is
// exhausted, not that the cache is empty — an empty cache is the normal
// steady state and always falls through silently.
func (c *BlockCache[B]) Alloc() *B {
	return c.alloc()
}

// Free returns b to the cache, or releases it if the cache is full (or
// disabled, S == 0). Free(nil) is a no-op.
func (c *BlockCache[B]) Free(b *B) {
	c.free(b)
}

// alloc returns a cached *B if one is available, else falls through to
// the raw allocator. Never returns an error; a nil result means the raw
// allocator itself reported exhaustion.
func (c *BlockCache[B]) alloc() *B {
	switch c.size {
	case 0:
		return c.raw.allocate()
	case 1:
		if ptr := c.cell.SwapAcqRel(nil); ptr != nil {
			return ptr
		}
		return c.raw.allocate()
	}

	sw := spin.Wait{}
	for {
		head := c.head.LoadAcquire()
		tail := c.tail.LoadAcquire()
		if head == tail {
			return c.raw.allocate()
		}

		next := (head + 1) % (2 * c.size)
		phys := head
		if phys >= c.size {
			phys -= c.size
		}
		// Read before the CAS so a racing free cannot overwrite what
		// we sampled out from under us.
		ptr := c.buf[phys]

		if c.head.CompareAndSwapAcqRel(head, next) {
			return (*B)(ptr)
		}
		sw.Once()
	}
}

// free returns b to the cache, or to the raw allocator if the cache is
// full (or disabled). free(nil) is a documented no-op.
func (c *BlockCache[B]) free(b *B) {
	if b == nil {
		return
	}

	switch c.size {
	case 0:
		c.raw.release(b)
		return
	case 1:
		if old := c.cell.SwapAcqRel(b); old != nil {
			c.raw.release(old)
		}
		return
	}

	sw := spin.Wait{}
	for {
		tail := c.tail.LoadAcquire()
		head := c.head.LoadAcquire()
		if head+c.size == tail || tail+c.size == head {
			c.raw.release(b)
			return
		}

		next := (tail + 1) % (2 * c.size)
		if c.tail.CompareAndSwapAcqRel(tail, next) {
			phys := tail
			if phys >= c.size {
				phys -= c.size
			}
			// Write only after the CAS: the slot at phys is
			// guaranteed unreferenced while it sits in the "free
			// hole" region between tail and head.
			c.buf[phys] = unsafe.Pointer(b)
			return
		}
		sw.Once()
	}
}
