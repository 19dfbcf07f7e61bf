// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe

// noCopy lets `go vet`'s copylocks check flag accidental copies of the
// types that embed it, the same idiom sync.WaitGroup and strings.Builder
// use. Pipe, chunkList, ObjectAllocator and BlockCache must not be copied
// after first use — their addresses are shared across the writer and
// reader goroutines.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
