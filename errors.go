// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates Write cannot place its next element because the
// chunk list could not obtain a fresh tail chunk from the raw allocator.
//
// Unlike a bounded queue, the pipe itself is unbounded: ErrWouldBlock here
// means "the host allocator is currently exhausted", not "the pipe is
// full". It is still a control flow signal, not a failure — the already
// written element is never lost, and a later Write may succeed once the
// reader has returned a drained chunk to the cache or the allocator has
// room again.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
