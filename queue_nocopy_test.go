// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq_test

import (
	"sync"
	"testing"
)

// handle is a move-only resource: a single pointer plus a guard that
// panics if the resource it points to is ever observed by two
// recipients. It stands in for the kind of value the reference
// implementation this package is modeled on moves rather than copies
// across a rendezvous hand-off.
type handle struct {
	resource *int
	claimed  *sync.Once
}

func newHandle(n int) handle {
	v := n
	return handle{resource: &v, claimed: new(sync.Once)}
}

// claim marks the handle's resource as delivered, failing the test if
// it had already been claimed by some other recipient — which would
// mean the queue handed the same logical value to two handlers instead
// of transferring it to exactly one.
func (h handle) claim(t *testing.T) int {
	t.Helper()
	delivered := false
	h.claimed.Do(func() { delivered = true })
	if !delivered {
		t.Fatalf("handle for resource %d claimed more than once", *h.resource)
	}
	return *h.resource
}

// TestNoCopyElementSingleDelivery pushes move-only handles through
// every path that can hand a buffered value to a consumer — the
// immediate TryPush fast path drained by TryPop, the push-waiter
// promotion path, and a pending AsyncPop rendezvousing with TryPush —
// and checks each handle's resource is
// claimed exactly once. Queue[T] stores T by value, as Go has no
// analogue to a C++ move constructor, but since each push only ever
// enqueues one handle and each successful pop dequeues exactly one,
// nothing is ever duplicated: there is exactly one live copy of the
// struct in flight per element, referencing the same underlying *int.
func TestNoCopyElementSingleDelivery(t *testing.T) {
	q := newTestQueue[handle](1)

	// Fast path: buffer has room, no waiter to promote.
	q.TryPush(newHandle(1))
	v, ok := q.TryPop(nil)
	if !ok {
		t.Fatal("TryPop() on fast-pushed handle returned ok=false")
	}
	if got := v.claim(t); got != 1 {
		t.Fatalf("claimed resource %d, want 1", got)
	}

	// Push-waiter promotion path: fill the buffer, queue a second push
	// behind it, then let TryPop promote the waiter into the buffer.
	q.TryPush(newHandle(2))
	pushDone := make(chan struct{})
	q.AsyncPush(newHandle(3), func(err error) {
		if err != nil {
			t.Errorf("promoted push completed with %v, want nil", err)
		}
		close(pushDone)
	}, nil)

	v, ok = q.TryPop(nil) // drains the buffered handle(2), promotes handle(3)
	if !ok {
		t.Fatal("TryPop() during promotion returned ok=false")
	}
	if got := v.claim(t); got != 2 {
		t.Fatalf("claimed resource %d, want 2", got)
	}
	<-pushDone

	v, ok = q.TryPop(nil) // now drains the promoted handle(3)
	if !ok {
		t.Fatal("TryPop() after promotion returned ok=false")
	}
	if got := v.claim(t); got != 3 {
		t.Fatalf("claimed resource %d, want 3", got)
	}

	// Rendezvous path: a pending pop hands a pushed handle straight
	// across without the value ever sitting in the buffer.
	popDone := make(chan struct{})
	var popped handle
	q.AsyncPop(func(err error, v handle) {
		if err != nil {
			t.Errorf("rendezvous pop completed with %v, want nil", err)
		}
		popped = v
		close(popDone)
	}, nil)
	q.TryPush(newHandle(4))
	<-popDone
	if got := popped.claim(t); got != 4 {
		t.Fatalf("claimed resource %d, want 4", got)
	}
}
