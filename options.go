// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// options configures queue creation.
type options struct {
	capacity int
	executor Executor
}

// Builder creates a Queue with fluent configuration.
//
// Example:
//
//	q := asyncq.Build[Event](asyncq.New(16).WithExecutor(asyncq.NewGoExecutor()))
type Builder struct {
	opts options
}

// New creates a queue builder with the given capacity. Capacity 0 is
// legal and configures a pure rendezvous queue: every push suspends
// until a consumer is waiting, and vice versa.
//
// Panics if capacity < 0.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("asyncq: capacity must be >= 0")
	}
	return &Builder{opts: options{capacity: capacity}}
}

// WithExecutor sets the executor completions are dispatched onto by
// default. If omitted, Build attaches a fresh [GoExecutor].
func (b *Builder) WithExecutor(ex Executor) *Builder {
	b.opts.executor = ex
	return b
}

// Build creates a Queue[T] from the builder's configuration.
func Build[T any](b *Builder) *Queue[T] {
	ex := b.opts.executor
	if ex == nil {
		ex = NewGoExecutor()
	}
	return NewQueue[T](ex, b.opts.capacity)
}
