// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// PoolExecutor dispatches completions onto a fixed number of worker
// goroutines instead of one goroutine per completion. Jobs submitted
// via Dispatch sit on an internal FIFO; workers drain it with a short
// spin followed by an escalating backoff before parking on a condition
// variable.
//
// Concurrency is bounded by the fixed number of worker goroutines: each
// worker runs at most one job at a time before looping back for the
// next, so at most numWorkers jobs ever run at once, even momentarily,
// which GoExecutor does not guarantee.
type PoolExecutor struct {
	mu       sync.Mutex
	cond     *sync.Cond
	jobs     fifo[func()]
	closed   bool
	outstand atomix.Int64 // jobs submitted but not yet finished running
}

// NewPoolExecutor starts a PoolExecutor backed by numWorkers goroutines.
// It panics if numWorkers < 1.
func NewPoolExecutor(numWorkers int) *PoolExecutor {
	if numWorkers < 1 {
		panic("asyncq: numWorkers must be >= 1")
	}
	e := &PoolExecutor{}
	e.cond = sync.NewCond(&e.mu)
	for range numWorkers {
		go e.worker()
	}
	return e
}

// Dispatch enqueues f for a worker goroutine to run. It never runs f
// synchronously on the caller's goroutine.
func (e *PoolExecutor) Dispatch(f func()) {
	e.outstand.AddAcqRel(1)
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.outstand.AddAcqRel(-1)
		return
	}
	e.jobs.pushBack(f)
	e.mu.Unlock()
	e.cond.Signal()
}

// KeepAlive returns a token that increments Idle's outstanding count
// for its lifetime, same contract as GoExecutor's.
func (e *PoolExecutor) KeepAlive() WorkToken {
	e.outstand.AddAcqRel(1)
	return &poolWorkToken{e: e}
}

// Idle reports whether the pool currently has no outstanding
// dispatched jobs or keep-alive tokens. It does not block and may be
// stale the instant it returns.
func (e *PoolExecutor) Idle() bool {
	return e.outstand.LoadAcquire() == 0
}

// Close stops accepting new Dispatch calls and wakes parked workers so
// they can exit once the job queue drains. Close does not wait for
// in-flight jobs to finish; call Idle or compose with the caller's own
// synchronization for that.
func (e *PoolExecutor) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.cond.Broadcast()
}

func (e *PoolExecutor) worker() {
	sw := spin.Wait{}
	bo := iox.Backoff{}
	for {
		f, ok := e.tryTake(&sw, &bo)
		if !ok {
			return
		}
		func() {
			defer e.outstand.AddAcqRel(-1)
			f()
		}()
		sw = spin.Wait{}
		bo.Reset()
	}
}

// tryTake pulls the next job off the queue, spinning briefly then
// backing off before parking on the condition variable. Returns
// ok=false once the pool is closed and the queue has drained, telling
// the worker to exit.
func (e *PoolExecutor) tryTake(sw *spin.Wait, bo *iox.Backoff) (func(), bool) {
	for range 64 {
		if f, ok := e.tryPopLocked(); ok {
			return f, true
		}
		sw.Once()
	}
	bo.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	for {
		if f, ok := e.jobs.popFront(); ok {
			return f, true
		}
		if e.closed {
			return nil, false
		}
		e.cond.Wait()
	}
}

func (e *PoolExecutor) tryPopLocked() (func(), bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.jobs.popFront()
}

type poolWorkToken struct {
	e        *PoolExecutor
	mu       sync.Mutex
	released bool
}

func (t *poolWorkToken) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	t.released = true
	t.e.outstand.AddAcqRel(-1)
}
