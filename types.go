// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// Executor is the external completion framework a Queue dispatches
// onto. Dispatch must not run f synchronously on the caller's
// goroutine; a Queue's async operations rely on that to guarantee a
// completion handler never runs before the initiating call returns.
//
// KeepAlive returns a token that should prevent the executor from
// considering itself idle for as long as the token is held. Every
// deferred (suspended) operation acquires one for its lifetime.
type Executor interface {
	// Dispatch schedules f for eventual, asynchronous execution.
	Dispatch(f func())
	// KeepAlive returns a work token pinning the executor open.
	KeepAlive() WorkToken
}

// WorkToken is an opaque handle returned by Executor.KeepAlive. The
// holder releases it exactly once, after the operation it was
// acquired for has fully completed.
type WorkToken interface {
	Release()
}

// PushHandler is invoked exactly once when an AsyncPush completes.
// err is nil on success, the close reason (ErrClosed after Close) if the
// queue was closed at initiation or while the push was pending, or
// ErrCancelled if the pending push was cancelled.
type PushHandler func(err error)

// PopHandler is invoked exactly once when an AsyncPop completes. err
// is nil on success, in which case value holds the dequeued element.
// On the close reason or ErrCancelled, value holds whatever the configured
// DefaultFactory produced for that error.
type PopHandler[T any] func(err error, value T)

// DefaultFactory produces the placeholder value delivered alongside an
// error completion of AsyncPop or the not-ok path of TryPop. The zero
// factory (used when none is supplied) returns the zero value of T.
type DefaultFactory[T any] func(err error) T

// PushOptions configures a single AsyncPush call.
type PushOptions struct {
	// Executor, if non-nil, overrides the queue's own executor for
	// dispatching this call's completion. Equivalent to binding a
	// single handler to a strand in the upstream framework this module
	// is modeled on.
	Executor Executor
}

// PopOptions configures a single AsyncPop or TryPop call.
type PopOptions[T any] struct {
	// Executor overrides the queue's own executor for this call's
	// completion, as in PushOptions.
	Executor Executor
	// DefaultFactory overrides the value delivered alongside an error
	// completion. Defaults to T's zero value.
	DefaultFactory DefaultFactory[T]
}

func zeroFactory[T any](error) T {
	var zero T
	return zero
}
