// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipe provides a single-producer/single-consumer, non-blocking,
// unbounded FIFO pipe built from chunked storage and a lock-free block
// cache.
//
// Unlike a bounded ring buffer, Write never returns ErrWouldBlock because
// the pipe is "full" — it grows by one chunk at a time instead. It can
// return ErrWouldBlock only when the host allocator itself is exhausted
// (see the Error Handling section below).
//
// # Quick Start
//
//	p := pipe.NewPipe[Event](128, 1) // chunk size 128, cache reserve 1
//
//	// Writer goroutine
//	p.Write(ev, false)
//	p.Flush()
//
//	// Reader goroutine
//	var ev Event
//	for p.Read(&ev) {
//	    process(ev)
//	}
//
// Or via the fluent builder:
//
//	p := pipe.Build[Event](pipe.New().ChunkSize(256).CacheSize(4))
//
// # Writer Operations
//
// Write(value, incomplete) stages value at the tail. incomplete=true lets
// a producer batch several writes atomically from the reader's point of
// view — nothing becomes visible until a later Write with incomplete=false
// finalizes the batch. Unwrite retracts the most recent write that has not
// yet been finalized. Flush publishes every finalized write staged since
// the previous Flush; its bool return is true unless the reader had
// already parked itself (see Blocking Front-Ends below), in which case
// Flush still publishes but returns false to tell the caller a wake is
// needed.
//
// # Reader Operations
//
// Read removes and returns the front element, returning false if nothing
// is currently readable. CheckRead reports the same thing without
// consuming anything, for callers that want to poll before committing to
// a Read.
//
// # Producer/Consumer Discipline
//
// Exactly one goroutine may call Write/Unwrite/Flush ([Writer]); exactly
// one (possibly different) goroutine may call CheckRead/Read ([Reader]).
// Calling a writer method from the reader goroutine, or vice versa, or
// from more than one goroutine on either side, is undefined behavior —
// there is no internal locking to catch the mistake.
//
// # Blocking Front-Ends
//
// The pipe itself never blocks, but CheckRead installs a nil sentinel into
// the shared commit pointer when the reader has drained everything it
// knows about, advertising itself as parked; the next Flush notices this
// through a failed compare-and-swap and reports false. [BlockingQueue]
// layers a mutex and condition variable on top of this handshake for
// callers that want a conventional blocking push/pop: Flush always
// signals a sync.Cond that ReadBlocking waits on, so either the pipe-level
// park or the goroutine-level park is cleared.
//
// # Error Handling
//
// Write returns [ErrWouldBlock] (an alias of [code.hybscloud.com/iox]'s
// sentinel) when a fresh tail chunk was needed and the allocator could
// not provide one — nothing already written or flushed is affected. Use
// [IsWouldBlock] to check for it.
//
// # Memory
//
// Chunks are recycled through a bounded block cache (reserve size S):
// drained head chunks returned by the reader are handed back as fresh
// tail chunks requested by the writer without touching the host
// allocator, as long as at most S chunks are in flight between the two
// sides at once. S=0 disables the cache entirely (every chunk boundary
// allocates); S=1 selects a single-cell fast path.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions in
// the block cache's CAS retry loops.
package pipe
