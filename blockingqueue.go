// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import "sync"

// BlockingQueue wraps a Pipe with a mutex and condition variable so the
// reader can block until data is available instead of busy-polling
// CheckRead. This is exactly the front end the original lock-free pipe's
// own documentation sketches as a usage example: a condition variable
// signaled on every successful Flush, waited on by a reader that loops
// on CheckRead.
//
// Write/Unwrite still require a single writer goroutine; the mutex here
// only coordinates Flush's notification with the reader's wait, it does
// not make BlockingQueue safe for multiple writers or multiple readers.
type BlockingQueue[T any] struct {
	noCopy

	pipe *Pipe[T]

	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
}

// NewBlockingQueue creates a BlockingQueue whose chunks hold n elements
// each, backed by a BlockCache of reserve capacity s.
func NewBlockingQueue[T any](n, s int) *BlockingQueue[T] {
	q := &BlockingQueue[T]{pipe: NewPipe[T](n, s)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Write stages value; see [Pipe.Write].
func (q *BlockingQueue[T]) Write(value T, incomplete bool) error {
	return q.pipe.Write(value, incomplete)
}

// Unwrite retracts the most recent tentative write; see [Pipe.Unwrite].
func (q *BlockingQueue[T]) Unwrite(out *T) bool {
	return q.pipe.Unwrite(out)
}

// Flush publishes staged writes and wakes any goroutine blocked in Wait
// or ReadBlocking.
//
// It returns [Pipe.Flush]'s result unchanged: false means the Pipe's own
// commitEnd handshake had found the reader already parked (CheckRead had
// installed the nil sentinel). Either way this wrapper's reader is
// always blocked on cond.Wait, never busy-polling, so Flush signals the
// condition variable unconditionally whenever it published anything;
// signaling with no waiter parked on it is a harmless no-op.
func (q *BlockingQueue[T]) Flush() bool {
	published := q.pipe.Flush()
	q.mu.Lock()
	q.cond.Signal()
	q.mu.Unlock()
	return published
}

// CheckRead reports whether Read would currently succeed; see
// [Pipe.CheckRead].
func (q *BlockingQueue[T]) CheckRead() bool {
	return q.pipe.CheckRead()
}

// Read consumes the oldest published element without blocking; see
// [Pipe.Read].
func (q *BlockingQueue[T]) Read(out *T) bool {
	return q.pipe.Read(out)
}

// Wait blocks until CheckRead would return true or Close has been
// called. It reports false if it returned because of Close.
func (q *BlockingQueue[T]) Wait() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.pipe.CheckRead() && !q.closed {
		q.cond.Wait()
	}
	return !q.closed
}

// ReadBlocking blocks until an element is available or Close is called,
// then reads it into out, which may be nil to discard it. It reports
// false if it returned because of Close rather than a read.
func (q *BlockingQueue[T]) ReadBlocking(out *T) bool {
	if !q.Wait() {
		return false
	}
	return q.pipe.Read(out)
}

// Close wakes every goroutine blocked in Wait or ReadBlocking and
// releases the underlying pipe's chunks. After Close, Wait and
// ReadBlocking return false immediately.
func (q *BlockingQueue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	q.pipe.Close()
}
