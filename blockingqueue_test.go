// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipe_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/pipe"
)

func TestBlockingQueueReadBlocksUntilFlush(t *testing.T) {
	if pipe.RaceEnabled {
		t.Skip("skip: commitEnd's CAS-then-load ordering is invisible to the race detector")
	}

	q := pipe.NewBlockingQueue[int](8, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var v int
		if !q.ReadBlocking(&v) {
			t.Errorf("ReadBlocking(): got false, want true")
			return
		}
		if v != 99 {
			t.Errorf("ReadBlocking(): got %d, want 99", v)
		}
	}()

	if err := q.Write(99, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	q.Flush()
	wg.Wait()
}

func TestBlockingQueueCloseWakesReader(t *testing.T) {
	if pipe.RaceEnabled {
		t.Skip("skip: commitEnd's CAS-then-load ordering is invisible to the race detector")
	}

	q := pipe.NewBlockingQueue[int](8, 1)

	done := make(chan bool, 1)
	go func() {
		var v int
		done <- q.ReadBlocking(&v)
	}()

	q.Close()
	if ok := <-done; ok {
		t.Fatalf("ReadBlocking() after Close: got true, want false")
	}
}

func TestBlockingQueueProducerConsumer(t *testing.T) {
	if pipe.RaceEnabled {
		t.Skip("skip: commitEnd's CAS-then-load ordering is invisible to the race detector")
	}

	const n = 20000
	q := pipe.NewBlockingQueue[int](64, 2)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for q.Write(i, false) != nil {
			}
			q.Flush()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			var v int
			if !q.ReadBlocking(&v) {
				t.Errorf("ReadBlocking() at i=%d: got false", i)
				return
			}
			if v != i {
				t.Errorf("ReadBlocking() at i=%d: got %d, want %d", i, v, i)
				return
			}
		}
		q.Close()
	}()

	wg.Wait()
}
