// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asyncq provides a thread-safe, bounded asynchronous queue: a
// rendezvous and buffering primitive between concurrent producers and
// consumers, with FIFO completion order, cancellation, and completions
// dispatched through a pluggable [Executor] rather than run inline.
//
// # Quick Start
//
//	q := asyncq.NewQueue[int](asyncq.NewGoExecutor(), 16)
//
//	q.AsyncPush(42, func(err error) {
//	    // dispatched on the executor, never called synchronously
//	    // from AsyncPush itself
//	}, nil)
//
//	q.AsyncPop(func(err error, v int) {
//	    if err == nil {
//	        fmt.Println(v)
//	    }
//	}, nil)
//
// Builder API, mirroring this ecosystem's other queue packages:
//
//	q := asyncq.Build[Event](asyncq.New(64).WithExecutor(ex))
//
// # Buffering vs. Rendezvous
//
// Capacity L ≥ 1 behaves like a bounded buffered channel: pushes
// succeed immediately while the buffer has room, and suspend once it
// is full; pops succeed immediately while the buffer is non-empty, and
// suspend once it is empty.
//
// Capacity 0 is a pure rendezvous queue: there is no steady-state
// buffer, and every successful push/pop pair is a direct hand-off
// between a waiting producer and a waiting consumer.
//
//	q := asyncq.NewQueue[Job](ex, 0)
//
// # Never-Synchronous Completion
//
// AsyncPush and AsyncPop always dispatch their handler through the
// Executor, even when the operation could complete immediately. A
// handler is therefore never invoked on the initiator's goroutine
// before the initiating call returns — callers that suspend on a
// channel/future wrapped around the handler can rely on always
// suspending before being resumed.
//
// # Synchronous Try-Variants
//
//	backoff := asyncq.Backoff{}
//	for {
//	    if q.TryPush(item) {
//	        backoff.Reset()
//	        break
//	    }
//	    backoff.Wait()
//	}
//
//	v, ok := q.TryPop(nil)
//	if !ok {
//	    // queue empty right now
//	}
//
// # Cancellation
//
//	n := q.CancelOnePush() // cancel the single oldest pending push
//	n = q.CancelPop()      // cancel every pending pop
//	n = q.Cancel()         // cancel every pending waiter, either kind
//
// Compose with [context.Context] for timeouts, since the core has no
// built-in timeout primitive:
//
//	done := make(chan struct{})
//	q.AsyncPop(func(err error, v T) {
//	    close(done)
//	    handle(err, v)
//	}, nil)
//	select {
//	case <-done:
//	case <-ctx.Done():
//	    q.CancelOnePop()
//	    <-done // wait for the cancelled handler to run
//	}
//
// # Close and Reset
//
//	q.Close()                        // closes with ErrClosed
//	q.CloseWithReason(myCustomError) // any non-nil reason
//
// A closed queue keeps serving pops from its buffer until drained;
// only then do subsequent pops complete with the close reason. Pushes
// on a closed queue always complete with the close reason immediately.
//
//	q.Reset() // drops buffered values, cancels waiters, reopens
//
// # Executors
//
// [GoExecutor] dispatches each completion on its own goroutine, the
// simplest and default choice. [PoolExecutor] bounds completions to a
// fixed worker count instead:
//
//	pool := asyncq.NewPoolExecutor(8)
//	defer pool.Close()
//	q := asyncq.NewQueue[Event](pool, 256)
//
// A single AsyncPush or AsyncPop call can override the queue's default
// executor for just that completion, the equivalent of binding a
// handler to its own strand:
//
//	q.AsyncPush(v, handler, &asyncq.PushOptions{Executor: otherExecutor})
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the lock-free
// IsOpen and PoolExecutor.Idle fast paths, [code.hybscloud.com/iox] for
// Backoff and PoolExecutor's retry-before-park strategy, and
// [code.hybscloud.com/spin] for PoolExecutor's CPU-pause spin.
package asyncq
