// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/asyncq"
)

func TestGoExecutorWaitBlocksUntilRelease(t *testing.T) {
	ex := asyncq.NewGoExecutor()
	tok := ex.KeepAlive()

	waitDone := make(chan struct{})
	go func() {
		ex.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		t.Fatal("Wait returned before the token was released")
	case <-time.After(20 * time.Millisecond):
	}

	tok.Release()
	select {
	case <-waitDone:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Release")
	}
}

func TestGoExecutorDispatchIsAsync(t *testing.T) {
	ex := asyncq.NewGoExecutor()
	var ran atomic.Bool
	done := make(chan struct{})
	ex.Dispatch(func() {
		ran.Store(true)
		close(done)
	})
	if ran.Load() {
		t.Fatal("Dispatch ran f synchronously")
	}
	<-done
}

func TestPoolExecutorBoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := asyncq.NewPoolExecutor(workers)
	defer pool.Close()

	var current, maxSeen atomic.Int64
	var wg sync.WaitGroup
	const jobs = 30
	wg.Add(jobs)
	for range jobs {
		pool.Dispatch(func() {
			defer wg.Done()
			n := current.Add(1)
			for {
				m := maxSeen.Load()
				if n <= m || maxSeen.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			current.Add(-1)
		})
	}
	wg.Wait()

	if got := maxSeen.Load(); got > workers {
		t.Fatalf("observed %d concurrent jobs, pool only has %d workers", got, workers)
	}
}

func TestPoolExecutorIdle(t *testing.T) {
	pool := asyncq.NewPoolExecutor(2)
	defer pool.Close()

	if !pool.Idle() {
		t.Fatal("fresh pool should be idle")
	}

	done := make(chan struct{})
	block := make(chan struct{})
	pool.Dispatch(func() {
		close(done)
		<-block
	})
	<-done

	if pool.Idle() {
		t.Fatal("pool should not be idle while a job is running")
	}
	close(block)
}

// countingExecutor wraps a GoExecutor, counting how many completions
// were dispatched through it specifically, to tell a queue's default
// executor apart from a per-call override at the dispatch site.
type countingExecutor struct {
	*asyncq.GoExecutor
	dispatched atomic.Int64
}

func newCountingExecutor() *countingExecutor {
	return &countingExecutor{GoExecutor: asyncq.NewGoExecutor()}
}

func (e *countingExecutor) Dispatch(f func()) {
	e.dispatched.Add(1)
	e.GoExecutor.Dispatch(f)
}

// TestAsyncPushPerCallExecutorOverride covers the strand-equivalent
// per-handler executor override: PushOptions.Executor must receive the
// dispatched completion instead of the queue's own default executor.
func TestAsyncPushPerCallExecutorOverride(t *testing.T) {
	def := newCountingExecutor()
	override := newCountingExecutor()
	q := asyncq.NewQueue[int](def, 4)

	done := make(chan struct{})
	q.AsyncPush(1, func(err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		close(done)
	}, &asyncq.PushOptions{Executor: override})
	<-done

	if n := override.dispatched.Load(); n != 1 {
		t.Fatalf("override executor dispatched %d completions, want 1", n)
	}
	if n := def.dispatched.Load(); n != 0 {
		t.Fatalf("default executor dispatched %d completions, want 0", n)
	}
}

// TestAsyncPopPerCallExecutorOverride is AsyncPop's counterpart: the
// completion runs on PopOptions.Executor, never the queue's default.
func TestAsyncPopPerCallExecutorOverride(t *testing.T) {
	def := newCountingExecutor()
	override := newCountingExecutor()
	q := asyncq.NewQueue[int](def, 4)
	q.TryPush(7)

	done := make(chan struct{})
	var got int
	q.AsyncPop(func(err error, v int) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		got = v
		close(done)
	}, &asyncq.PopOptions[int]{Executor: override})
	<-done

	if got != 7 {
		t.Fatalf("popped %d, want 7", got)
	}
	if n := override.dispatched.Load(); n != 1 {
		t.Fatalf("override executor dispatched %d completions, want 1", n)
	}
	if n := def.dispatched.Load(); n != 0 {
		t.Fatalf("default executor dispatched %d completions, want 0", n)
	}
}

func TestQueueWithPoolExecutor(t *testing.T) {
	pool := asyncq.NewPoolExecutor(4)
	defer pool.Close()

	q := asyncq.NewQueue[int](pool, 8)
	var wg sync.WaitGroup
	wg.Add(1)
	q.AsyncPush(1, func(err error) {
		defer wg.Done()
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}, nil)
	wg.Wait()
}
