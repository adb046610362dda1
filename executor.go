// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "sync"

// GoExecutor dispatches each completion onto its own goroutine. It is
// the simplest possible Executor and the default one Builder attaches
// when none is supplied.
//
// Wait blocks until every KeepAlive token issued so far has been
// released, giving callers an io_context.run()-style quiescence point
// for graceful shutdown.
type GoExecutor struct {
	wg sync.WaitGroup
}

// NewGoExecutor returns a ready-to-use GoExecutor.
func NewGoExecutor() *GoExecutor {
	return &GoExecutor{}
}

// Dispatch runs f on a new goroutine. It never runs f synchronously.
func (e *GoExecutor) Dispatch(f func()) {
	go f()
}

// KeepAlive returns a token backed by the executor's WaitGroup. Wait
// will block until it, and every other outstanding token, is
// Released.
func (e *GoExecutor) KeepAlive() WorkToken {
	e.wg.Add(1)
	return &goWorkToken{wg: &e.wg}
}

// Wait blocks until every token issued by KeepAlive has been released.
// It is safe to call concurrently with further KeepAlive calls, but a
// Wait that returns while new work is still being submitted gives no
// guarantee that the queue has actually gone idle — callers typically
// Close the queue first.
func (e *GoExecutor) Wait() {
	e.wg.Wait()
}

type goWorkToken struct {
	wg       *sync.WaitGroup
	released bool
	mu       sync.Mutex
}

func (t *goWorkToken) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return
	}
	t.released = true
	t.wg.Done()
}
