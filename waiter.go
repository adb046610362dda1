// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

// fifo is a growable FIFO used both for the queue's element buffer and
// for its pending-waiter lists. Head compaction keeps amortized cost
// O(1) without an upfront capacity commitment, which lets the buffer
// grow to L+1 during the L=0 rendezvous hand-off without special
// casing (see Queue.AsyncPush).
type fifo[E any] struct {
	items []E
	head  int
}

func (f *fifo[E]) pushBack(e E) {
	f.items = append(f.items, e)
}

func (f *fifo[E]) popFront() (E, bool) {
	if f.head >= len(f.items) {
		var zero E
		return zero, false
	}
	e := f.items[f.head]
	var zero E
	f.items[f.head] = zero // allow GC of the slot's referents
	f.head++
	f.compact()
	return e, true
}

func (f *fifo[E]) front() (E, bool) {
	if f.head >= len(f.items) {
		var zero E
		return zero, false
	}
	return f.items[f.head], true
}

func (f *fifo[E]) len() int {
	return len(f.items) - f.head
}

// compact reclaims the discarded prefix once it dominates the slice,
// mirroring the amortized-reslice strategy used by the request queues
// in the wider example corpus.
func (f *fifo[E]) compact() {
	if f.head == 0 {
		return
	}
	if f.head < 1024 && f.head*2 < len(f.items) {
		return
	}
	remaining := len(f.items) - f.head
	copy(f.items[:remaining], f.items[f.head:])
	clear(f.items[remaining:])
	f.items = f.items[:remaining]
	f.head = 0
}

// drainAll removes and returns every pending entry, in FIFO order.
func (f *fifo[E]) drainAll() []E {
	out := make([]E, 0, f.len())
	for {
		e, ok := f.popFront()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// pushWaiter is a pending producer: AsyncPush enqueued it because the
// buffer was full (or, at capacity 0, no consumer was waiting to
// rendezvous with it directly).
type pushWaiter[T any] struct {
	value    T
	handler  PushHandler
	executor Executor // resolved at enqueue: the per-call override, else the queue's own executor
	token    WorkToken
}

// popWaiter is a pending consumer: AsyncPop enqueued it because the
// buffer was empty and no producer was waiting.
type popWaiter[T any] struct {
	handler  PopHandler[T]
	factory  DefaultFactory[T]
	executor Executor
	token    WorkToken
}
