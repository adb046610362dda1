// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !asyncq_debug

package asyncq

// checkInvariant is a no-op outside asyncq_debug builds.
func (q *Queue[T]) checkInvariant() {}
