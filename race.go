// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package pipe

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent Pipe tests, which trigger false
// positives: the block cache's CAS-then-read/write-then-CAS ordering
// establishes happens-before relationships the race detector cannot see.
const RaceEnabled = true
