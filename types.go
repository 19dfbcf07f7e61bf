// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

// Writer is the write-side interface of a Pipe.
//
// Writer methods may only be called from the single goroutine that owns
// the pipe's writer role. Calling them from the reader goroutine, or from
// more than one goroutine, is undefined — the pipe is SPSC, not MPSC.
type Writer[T any] interface {
	// Write places value at the tail of the pipe. If incomplete is true,
	// the element is staged but not revealed to the reader until a later
	// non-incomplete Write. Returns ErrWouldBlock if a new chunk was
	// needed and the allocator could not provide one; the pipe's
	// existing contents are unaffected.
	Write(value T, incomplete bool) error

	// Unwrite retracts the most recently written, not-yet-finalized
	// (incomplete) element into *out. Returns false if there is nothing
	// retractable (nothing has been written since the last finalized
	// write, whether or not that write has been flushed).
	Unwrite(out *T) bool

	// Flush publishes every complete write staged since the last Flush,
	// making it visible to CheckRead/Read. Returns false only when the
	// reader had parked itself (see Reader.CheckRead) and must be woken
	// out-of-band; true covers both "nothing new to publish" and
	// "published, reader wasn't parked".
	Flush() bool
}

// Reader is the read-side interface of a Pipe.
//
// Reader methods may only be called from the single goroutine that owns
// the pipe's reader role.
type Reader[T any] interface {
	// CheckRead reports whether Read would currently succeed, without
	// consuming anything. When the reader has drained everything it
	// knows was published, CheckRead advertises the reader as parked so
	// a subsequent Flush can detect it and report false.
	CheckRead() bool

	// Read moves the front element into *out, destructs the slot, and
	// advances. Returns false if nothing is currently readable.
	Read(out *T) bool
}
