// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build asyncq_debug

package asyncq

// checkInvariant asserts the class invariant. Called with q.mu held,
// on entry and exit of every critical section (see Queue.lock/unlock).
// Panics on violation; only ever built with the asyncq_debug tag.
func (q *Queue[T]) checkInvariant() {
	if q.buf.len() > q.capacity {
		panic("asyncq: invariant violated: buffer length exceeds capacity")
	}
	if q.pushWaiters.len() > 0 && q.buf.len() < q.capacity {
		panic("asyncq: invariant violated: producer waiting while buffer is not full")
	}
	if q.popWaiters.len() > 0 && q.buf.len() > 0 {
		panic("asyncq: invariant violated: consumer waiting while buffer is not empty")
	}
	if q.closeReason != nil && (q.pushWaiters.len() > 0 || q.popWaiters.len() > 0) {
		panic("asyncq: invariant violated: closed queue has pending waiters")
	}
}
