// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import "code.hybscloud.com/atomix"

// atomicClosedFlag mirrors a Queue's closeReason presence for IsOpen's
// lock-free fast path, the same split lfq documents for its FAA-based
// queues: a mutex-protected field of record, plus an atomic shadow for
// the one read callers want without contending the lock.
type atomicClosedFlag struct {
	v atomix.Bool
}

// set must only be called with the Queue's mutex held.
func (f *atomicClosedFlag) set(closed bool) {
	f.v.StoreRelease(closed)
}

func (f *atomicClosedFlag) get() bool {
	return f.v.LoadAcquire()
}
