// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "sync"

// Queue is a thread-safe, bounded rendezvous and buffering queue
// between concurrent producers and consumers. It supports asynchronous
// push/pop that dispatch their completion through an Executor,
// synchronous try-variants, cancellation, and close/reset.
//
// A Queue must be created with NewQueue or Build; the zero value is
// not usable.
type Queue[T any] struct {
	mu          sync.Mutex
	executor    Executor
	capacity    int
	buf         fifo[T]
	pushWaiters fifo[pushWaiter[T]]
	popWaiters  fifo[popWaiter[T]]
	closeReason error
	closed      atomicClosedFlag
}

// NewQueue creates a Queue with the given default executor and fixed
// capacity. Capacity 0 configures a pure rendezvous queue. Panics if
// executor is nil or capacity is negative.
func NewQueue[T any](executor Executor, capacity int) *Queue[T] {
	if executor == nil {
		panic("asyncq: executor must not be nil")
	}
	if capacity < 0 {
		panic("asyncq: capacity must be >= 0")
	}
	return &Queue[T]{executor: executor, capacity: capacity}
}

func (q *Queue[T]) lock() {
	q.mu.Lock()
	q.checkInvariant()
}

func (q *Queue[T]) unlock() {
	q.checkInvariant()
	q.mu.Unlock()
}

func (q *Queue[T]) pushExecutor(opts *PushOptions) Executor {
	if opts != nil && opts.Executor != nil {
		return opts.Executor
	}
	return q.executor
}

func (q *Queue[T]) popExecutorAndFactory(opts *PopOptions[T]) (Executor, DefaultFactory[T]) {
	ex := q.executor
	var factory DefaultFactory[T] = zeroFactory[T]
	if opts != nil {
		if opts.Executor != nil {
			ex = opts.Executor
		}
		if opts.DefaultFactory != nil {
			factory = opts.DefaultFactory
		}
	}
	return ex, factory
}

func dispatchPush(ex Executor, h PushHandler, err error) {
	ex.Dispatch(func() { h(err) })
}

func dispatchPop[T any](ex Executor, h PopHandler[T], err error, v T) {
	ex.Dispatch(func() { h(err, v) })
}

// readyPushLocked reports whether a push can proceed without
// suspending: either the buffer has room, or the queue is a
// zero-capacity rendezvous with a consumer already waiting.
func (q *Queue[T]) readyPushLocked() bool {
	return q.buf.len() < q.capacity || (q.capacity == 0 && q.popWaiters.len() > 0)
}

// AsyncPush initiates a push of value. handler is invoked exactly once,
// dispatched through the resolved executor, never synchronously from
// this call: with a nil error on success, the close reason (ErrClosed
// after Close) if the queue was already closed at initiation, or
// ErrCancelled if the push was pending and got cancelled.
func (q *Queue[T]) AsyncPush(value T, handler PushHandler, opts *PushOptions) {
	ex := q.pushExecutor(opts)

	q.lock()

	if q.closeReason != nil {
		reason := q.closeReason
		q.unlock()
		dispatchPush(ex, handler, reason)
		return
	}

	if !q.readyPushLocked() {
		token := q.executor.KeepAlive()
		q.pushWaiters.pushBack(pushWaiter[T]{value: value, handler: handler, executor: ex, token: token})
		q.unlock()
		return
	}

	q.buf.pushBack(value)

	var promoted *popWaiter[T]
	var promotedValue T
	if q.popWaiters.len() > 0 {
		pw, _ := q.popWaiters.popFront()
		v, _ := q.buf.popFront()
		promoted = &pw
		promotedValue = v
	}

	q.unlock()

	dispatchPush(ex, handler, nil)
	if promoted != nil {
		dispatchPop(promoted.executor, promoted.handler, nil, promotedValue)
		promoted.token.Release()
	}
}

// AsyncPop initiates a pop. handler is invoked exactly once, dispatched
// through the resolved executor, never synchronously from this call:
// with (nil, value) on success, or (err, opts.DefaultFactory(err)) —
// the zero value of T by default — on the close reason or ErrCancelled.
func (q *Queue[T]) AsyncPop(handler PopHandler[T], opts *PopOptions[T]) {
	ex, factory := q.popExecutorAndFactory(opts)

	q.lock()

	var promoted *pushWaiter[T]
	if q.pushWaiters.len() > 0 {
		pw, _ := q.pushWaiters.popFront()
		q.buf.pushBack(pw.value)
		promoted = &pw
	}

	if q.buf.len() > 0 {
		v, _ := q.buf.popFront()
		q.unlock()
		if promoted != nil {
			dispatchPush(promoted.executor, promoted.handler, nil)
			promoted.token.Release()
		}
		dispatchPop(ex, handler, nil, v)
		return
	}

	if q.closeReason != nil {
		reason := q.closeReason
		q.unlock()
		dispatchPop(ex, handler, reason, factory(reason))
		return
	}

	token := q.executor.KeepAlive()
	q.popWaiters.pushBack(popWaiter[T]{handler: handler, factory: factory, executor: ex, token: token})
	q.unlock()
}

// TryPush performs value's push immediately, possibly rendezvousing
// with a waiting consumer, iff that can happen without suspending and
// the queue is open. Returns false without any state change otherwise.
func (q *Queue[T]) TryPush(value T) bool {
	q.lock()

	if q.closeReason != nil || !q.readyPushLocked() {
		q.unlock()
		return false
	}

	q.buf.pushBack(value)

	var promoted *popWaiter[T]
	var promotedValue T
	if q.popWaiters.len() > 0 {
		pw, _ := q.popWaiters.popFront()
		v, _ := q.buf.popFront()
		promoted = &pw
		promotedValue = v
	}

	q.unlock()

	if promoted != nil {
		dispatchPop(promoted.executor, promoted.handler, nil, promotedValue)
		promoted.token.Release()
	}
	return true
}

// TryPop returns (front value, true) if one is immediately available,
// possibly first promoting a pending producer into the buffer.
// Otherwise returns (opts.DefaultFactory(ErrEmpty), false) — the zero
// value of T by default — without any state change.
func (q *Queue[T]) TryPop(opts *PopOptions[T]) (T, bool) {
	_, factory := q.popExecutorAndFactory(opts)

	q.lock()

	var promoted *pushWaiter[T]
	if q.pushWaiters.len() > 0 {
		pw, _ := q.pushWaiters.popFront()
		q.buf.pushBack(pw.value)
		promoted = &pw
	}

	if q.buf.len() > 0 {
		v, _ := q.buf.popFront()
		q.unlock()
		if promoted != nil {
			dispatchPush(promoted.executor, promoted.handler, nil)
			promoted.token.Release()
		}
		return v, true
	}

	q.unlock()
	return factory(ErrEmpty), false
}

// CancelOnePush cancels the head pending push, if any, completing its
// handler with ErrCancelled. Returns 1 if a waiter was cancelled, 0 if
// there were none.
func (q *Queue[T]) CancelOnePush() int {
	q.lock()
	if q.pushWaiters.len() == 0 {
		q.unlock()
		return 0
	}
	pw, _ := q.pushWaiters.popFront()
	q.unlock()
	dispatchPush(pw.executor, pw.handler, ErrCancelled)
	pw.token.Release()
	return 1
}

// CancelOnePop cancels the head pending pop, if any, completing its
// handler with ErrCancelled. Returns 1 if a waiter was cancelled, 0 if
// there were none.
func (q *Queue[T]) CancelOnePop() int {
	q.lock()
	if q.popWaiters.len() == 0 {
		q.unlock()
		return 0
	}
	pw, _ := q.popWaiters.popFront()
	q.unlock()
	dispatchPop(pw.executor, pw.handler, ErrCancelled, pw.factory(ErrCancelled))
	pw.token.Release()
	return 1
}

// CancelPush cancels every pending push, in FIFO order, completing
// each handler with ErrCancelled. Returns the number cancelled.
func (q *Queue[T]) CancelPush() int {
	q.lock()
	waiters := q.pushWaiters.drainAll()
	q.unlock()
	for _, pw := range waiters {
		dispatchPush(pw.executor, pw.handler, ErrCancelled)
		pw.token.Release()
	}
	return len(waiters)
}

// CancelPop cancels every pending pop, in FIFO order, completing each
// handler with ErrCancelled. Returns the number cancelled.
func (q *Queue[T]) CancelPop() int {
	q.lock()
	waiters := q.popWaiters.drainAll()
	q.unlock()
	for _, pw := range waiters {
		dispatchPop(pw.executor, pw.handler, ErrCancelled, pw.factory(ErrCancelled))
		pw.token.Release()
	}
	return len(waiters)
}

// Cancel cancels every pending waiter regardless of kind. Returns the
// number cancelled.
func (q *Queue[T]) Cancel() int {
	return q.CancelPush() + q.CancelPop()
}

// Close closes the queue with ErrClosed. Equivalent to
// CloseWithReason(ErrClosed).
func (q *Queue[T]) Close() bool {
	return q.CloseWithReason(ErrClosed)
}

// CloseWithReason marks the queue closed with reason, cancelling every
// pending waiter with reason (not ErrCancelled — see Cancel for that).
// Once closed, AsyncPush completes immediately with reason; AsyncPop
// keeps succeeding from any values left in the buffer, then completes
// with reason once the buffer is drained.
//
// A nil reason is a no-op that returns false. A non-nil reason performs
// the close (or observes the queue already closed) and returns true.
func (q *Queue[T]) CloseWithReason(reason error) bool {
	if reason == nil {
		return false
	}

	q.lock()
	if q.closeReason != nil {
		q.unlock()
		return true
	}
	q.closeReason = reason
	q.closed.set(true)
	pushWaiters := q.pushWaiters.drainAll()
	popWaiters := q.popWaiters.drainAll()
	q.unlock()

	for _, pw := range pushWaiters {
		dispatchPush(pw.executor, pw.handler, reason)
		pw.token.Release()
	}
	for _, pw := range popWaiters {
		dispatchPop(pw.executor, pw.handler, reason, pw.factory(reason))
		pw.token.Release()
	}
	return true
}

// Reset drains the buffer (dropping its values), cancels every pending
// waiter with ErrCancelled, and reopens the queue.
func (q *Queue[T]) Reset() {
	q.lock()
	q.buf = fifo[T]{}
	pushWaiters := q.pushWaiters.drainAll()
	popWaiters := q.popWaiters.drainAll()
	q.closeReason = nil
	q.closed.set(false)
	q.unlock()

	for _, pw := range pushWaiters {
		dispatchPush(pw.executor, pw.handler, ErrCancelled)
		pw.token.Release()
	}
	for _, pw := range popWaiters {
		dispatchPop(pw.executor, pw.handler, ErrCancelled, pw.factory(ErrCancelled))
		pw.token.Release()
	}
}

// Drain removes and returns every value currently buffered, in FIFO
// order, without touching pending waiters or the close state. It is
// meant for the Close-old/construct-new transfer idiom: Close the
// queue, Drain its buffer, and TryPush the result into a replacement
// Queue, since Go's reference-type Queue has no move-assignment
// equivalent to hand off in place.
func (q *Queue[T]) Drain() []T {
	q.lock()
	defer q.unlock()
	return q.buf.drainAll()
}

// Len returns the number of values currently buffered.
func (q *Queue[T]) Len() int {
	q.lock()
	defer q.unlock()
	return q.buf.len()
}

// Empty reports whether the buffer currently holds no values.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// Full reports whether the buffer is currently at capacity.
func (q *Queue[T]) Full() bool {
	q.lock()
	defer q.unlock()
	return q.buf.len() >= q.capacity
}

// Cap returns the queue's fixed capacity.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// CloseErr returns the reason the queue was closed with, or nil if it
// is still open.
func (q *Queue[T]) CloseErr() error {
	q.lock()
	defer q.unlock()
	return q.closeReason
}

// IsOpen reports whether the queue is open. Unlike the other
// inspection methods this does not take the mutex; it is a lock-free
// read of the same flag CloseWithReason and Reset maintain under the
// lock, so a concurrent close may not be observed by the instant this
// returns.
func (q *Queue[T]) IsOpen() bool {
	return !q.closed.get()
}
