// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import "unsafe"

// DefaultChunkSize is the chunk capacity (N) used when a Pipe is built
// without an explicit ChunkSize.
const DefaultChunkSize = 128

// DefaultCacheSize is the block cache reserve (S) used when a Pipe is
// built without an explicit CacheSize.
const DefaultCacheSize = 1

// Options configures the chunk size and block cache reserve of a Pipe.
type Options struct {
	chunkSize int
	cacheSize int
}

// Builder creates a Pipe with fluent configuration.
//
// Example:
//
//	p := pipe.Build[Event](pipe.New().ChunkSize(256).CacheSize(4))
type Builder struct {
	opts Options
}

// New creates a Builder defaulted to DefaultChunkSize/DefaultCacheSize.
func New() *Builder {
	return &Builder{opts: Options{chunkSize: DefaultChunkSize, cacheSize: DefaultCacheSize}}
}

// ChunkSize sets N, the number of slots per chunk.
// Panics if n < 1 (spec requires N >= 1; N == 0 is rejected).
func (b *Builder) ChunkSize(n int) *Builder {
	if n < 1 {
		panic("pipe: chunk size must be >= 1")
	}
	b.opts.chunkSize = n
	return b
}

// CacheSize sets S, the block cache's reserve capacity.
// S == 0 disables the cache (every chunk boundary touches the raw
// allocator); S == 1 selects the single-cell specialization.
// Panics if s < 0.
func (b *Builder) CacheSize(s int) *Builder {
	if s < 0 {
		panic("pipe: cache size must be >= 0")
	}
	b.opts.cacheSize = s
	return b
}

// Build creates a *Pipe[T] from the builder's configuration.
func Build[T any](b *Builder) *Pipe[T] {
	return NewPipe[T](b.opts.chunkSize, b.opts.cacheSize)
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte

// padPtr is padding to fill a cache line after a pointer-sized field.
type padPtr [64 - ptrSize]byte
