// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/pipe"
)

type widget struct {
	id   int
	name string
}

func TestObjectAllocatorAllocFree(t *testing.T) {
	a := pipe.NewObjectAllocator[widget](1)

	w, err := a.Alloc(func(w *widget) error {
		w.id = 1
		w.name = "first"
		return nil
	})
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if w == nil {
		t.Fatalf("Alloc: got nil, want a block")
	}
	if w.id != 1 || w.name != "first" {
		t.Fatalf("Alloc: got %+v, want {1 first}", *w)
	}

	a.Free(w)
	if w.id != 0 || w.name != "" {
		t.Fatalf("Free did not zero the block: got %+v", *w)
	}

	w2, err := a.Alloc(nil)
	if err != nil {
		t.Fatalf("Alloc(nil init): %v", err)
	}
	if w2 != w {
		t.Fatalf("Alloc after Free with cache size 1: got a different block, want the recycled one")
	}
}

func TestObjectAllocatorInitError(t *testing.T) {
	a := pipe.NewObjectAllocator[widget](1)
	wantErr := errors.New("init failed")

	w, err := a.Alloc(func(w *widget) error {
		return wantErr
	})
	if w != nil {
		t.Fatalf("Alloc on init error: got non-nil block")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("Alloc on init error: got %v, want %v", err, wantErr)
	}

	// The block must have been returned to the cache, not leaked.
	w2, err := a.Alloc(nil)
	if err != nil {
		t.Fatalf("Alloc after failed init: %v", err)
	}
	if w2 == nil {
		t.Fatalf("Alloc after failed init: got nil, want a reused block")
	}
}

func TestObjectAllocatorInitPanicReleasesBlock(t *testing.T) {
	a := pipe.NewObjectAllocator[widget](1)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("Alloc with panicking init: did not panic")
			}
		}()
		_, _ = a.Alloc(func(w *widget) error {
			panic("boom")
		})
	}()

	w, err := a.Alloc(nil)
	if err != nil {
		t.Fatalf("Alloc after panicking init: %v", err)
	}
	if w == nil {
		t.Fatalf("Alloc after panicking init: got nil, want the released block back")
	}
}

func TestObjectAllocatorFreeNil(t *testing.T) {
	a := pipe.NewObjectAllocator[widget](1)
	a.Free(nil) // must not panic
}
