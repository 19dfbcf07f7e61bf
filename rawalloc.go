// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

// rawAllocator is the bottom layer: a factory for one uninitialized *B.
//
// Go's runtime allocator does not return a recoverable failure the way a
// C allocator's NULL does — true exhaustion crashes the process. newFn is
// an injectable seam so bounded or fault-injecting allocators (used by
// tests exercising the OOM boundary behavior in BlockCache/chunkList) can
// simulate a "null on failure" allocator without touching the runtime.
type rawAllocator[B any] struct {
	newFn func() *B
}

// newRawAllocator creates a rawAllocator. A nil newFn defaults to a plain
// new(B).
func newRawAllocator[B any](newFn func() *B) *rawAllocator[B] {
	if newFn == nil {
		newFn = func() *B { return new(B) }
	}
	return &rawAllocator[B]{newFn: newFn}
}

// allocate returns a fresh *B, or nil if newFn reports exhaustion.
func (a *rawAllocator[B]) allocate() *B {
	return a.newFn()
}

// release returns b's backing memory to the host. release(nil) is a
// documented no-op. There is nothing to do beyond letting b become
// unreachable: Go's garbage collector reclaims it once the block cache
// and chunk list both drop their last reference.
func (a *rawAllocator[B]) release(b *B) {
	_ = b
}
