// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import "code.hybscloud.com/atomix"

// Pipe is a single-producer/single-consumer, unbounded, chunked queue.
// All writer methods (Write, Unwrite, Flush) must be called from exactly
// one goroutine; all reader methods (CheckRead, Read) from exactly one
// other. Calling a writer method concurrently with another writer
// method, or a reader method concurrently with another reader method, is
// undefined behavior — the same discipline the teacher's SPSC queue
// documents for its own push/pop pair.
//
// Four positions track the pipe's state:
//
//   - back/end (inside chunks): the writer's staging frontier.
//   - flushEnd: the writer-local boundary of the most recently finalized
//     (incomplete == false) write. Unwrite refuses to retract past it.
//   - lastFlushEnd: the writer-local boundary most recently handed to
//     the reader. Flush moves it up to flushEnd.
//   - commitEnd: the one position shared between the two goroutines,
//     published by Flush and observed by CheckRead/Read. It doubles as
//     a parked/awake flag: nil means the reader has drained everything
//     it knows about and has advertised itself as asleep, so Flush must
//     fall back to an unconditional store and tell its caller to wake
//     the reader out-of-band.
//   - readEnd: the reader-local exclusive upper bound of the range it
//     knows is published. Advanced only by CheckRead, never by Read.
//
// Every position except commitEnd is private to its goroutine; commitEnd
// is the sole synchronization point, so it is the only field that needs
// to be an atomic.
type Pipe[T any] struct {
	noCopy

	chunks *chunkList[T]

	// writer-only
	flushEnd     *T
	lastFlushEnd *T

	// shared
	commitEnd atomix.Pointer[T]

	// reader-only
	readEnd *T
}

// NewPipe creates a Pipe whose chunks hold n elements each, backed by a
// BlockCache of reserve capacity s. Panics if n < 1.
func NewPipe[T any](n, s int) *Pipe[T] {
	chunks := newChunkList[T](n, s)
	// Prime the staging frontier: after one push, chunks.back() is a
	// dirty-but-addressable slot rather than the chunk list's
	// otherwise-undefined empty state.
	chunks.push()

	p := &Pipe[T]{chunks: chunks}
	origin := chunks.back()
	p.flushEnd = origin
	p.lastFlushEnd = origin
	p.readEnd = origin
	p.commitEnd.StoreRelease(origin)
	return p
}

// Write stages value as the next element. If incomplete is true, the
// write is tentative: it becomes visible to the reader only once a
// later Write finalizes it (incomplete == false) and Flush publishes it,
// and it can be retracted with Unwrite until then. If incomplete is
// false, value and every tentative write before it become final: none of
// them can be retracted again, though they still are not visible to the
// reader until Flush runs.
//
// Write returns ErrWouldBlock if the tail has reached the end of its
// chunk (an earlier Write could not obtain the next chunk) and neither
// the cache nor the underlying allocator can provide one now. The pipe
// is left exactly as it was before the call; retrying later (once the
// allocator has room) is always safe.
func (p *Pipe[T]) Write(value T, incomplete bool) error {
	if p.chunks.full() {
		if !p.chunks.growEnd() {
			return ErrWouldBlock
		}
	}

	back := p.chunks.back()
	*back = value
	p.chunks.push()

	if !incomplete {
		p.flushEnd = p.chunks.back()
	}
	return nil
}

// Unwrite retracts the most recent tentative write and copies it into
// out, which may be nil to discard it. It reports false, leaving the
// pipe unchanged, if there is nothing left to retract — either nothing
// has been written since the last finalized write, or the pipe was just
// created.
func (p *Pipe[T]) Unwrite(out *T) bool {
	if p.flushEnd == p.chunks.back() {
		return false
	}
	p.chunks.unpush()
	if out != nil {
		*out = *p.chunks.back()
	}
	return true
}

// Flush publishes every finalized write staged since the last Flush,
// making them visible to CheckRead/Read.
//
// It reports true if there was nothing new to publish, or if the reader
// was not parked (commitEnd still held lastFlushEnd, so the CAS to
// flushEnd succeeded). It reports false only when the reader had
// installed the nil sentinel in commitEnd to mark itself parked: Flush
// still restores commitEnd to flushEnd unconditionally in that case, but
// the false return tells the caller it must wake the reader out-of-band
// (e.g. signal a condition variable), which is exactly what
// BlockingQueue.Flush does.
func (p *Pipe[T]) Flush() bool {
	if p.flushEnd == p.lastFlushEnd {
		return true
	}
	if p.commitEnd.CompareAndSwapAcqRel(p.lastFlushEnd, p.flushEnd) {
		p.lastFlushEnd = p.flushEnd
		return true
	}
	p.commitEnd.StoreRelease(p.flushEnd)
	p.lastFlushEnd = p.flushEnd
	return false
}

// CheckRead reports whether Read would currently succeed, without
// consuming anything.
//
// If the reader has already drained everything it previously learned
// was published (chunks.front() has caught up to readEnd), CheckRead
// attempts to install the nil sentinel into commitEnd, advertising the
// reader as parked, before reporting false. If a concurrent Flush had
// already moved commitEnd past readEnd, the CAS fails, the refreshed
// boundary is adopted into readEnd, and CheckRead reports true instead.
func (p *Pipe[T]) CheckRead() bool {
	if p.chunks.front() != p.readEnd {
		return true
	}
	if p.commitEnd.CompareAndSwapAcqRel(p.readEnd, nil) {
		return false
	}
	cur := p.commitEnd.LoadAcquire()
	if cur == nil {
		return false
	}
	p.readEnd = cur
	return true
}

// Read consumes the oldest published element into out, which may be nil
// to discard it. It reports false, consuming nothing, if no published
// element is available.
func (p *Pipe[T]) Read(out *T) bool {
	if !p.CheckRead() {
		return false
	}
	if out != nil {
		*out = *p.chunks.front()
	}
	var zero T
	*p.chunks.front() = zero
	p.chunks.pop()
	return true
}

// Close returns every chunk still held by the pipe to its cache. Not
// required before a Pipe is dropped — it exists for callers that want
// their chunks back in the cache immediately rather than waiting on the
// garbage collector.
func (p *Pipe[T]) Close() {
	p.chunks.close()
}

// AsWriter narrows p to its write-side interface, for handing off to
// code that should only ever call Write/Unwrite/Flush — the compiler
// then rejects any attempt to call a reader method on it.
func (p *Pipe[T]) AsWriter() Writer[T] {
	return p
}

// AsReader narrows p to its read-side interface, for handing off to
// code that should only ever call CheckRead/Read.
func (p *Pipe[T]) AsReader() Reader[T] {
	return p
}
