// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package asyncq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrClosed is returned by (or delivered to a handler of) an operation
// initiated against, or pending on, a closed queue.
//
// An AsyncPush initiated on a queue closed by Close, or an AsyncPop
// initiated once such a queue's buffer is drained, has its handler
// completed with ErrClosed; a push or pop that was already suspended
// when Close ran is completed with ErrClosed as well. In every case the
// handler is dispatched on the executor, per the never-synchronous
// completion guarantee.
var ErrClosed = errors.New("asyncq: queue closed")

// ErrCancelled is delivered to a pending operation's handler when it is
// cancelled before it could complete, via CancelOnePush, CancelOnePop,
// CancelPush, CancelPop, or Cancel.
var ErrCancelled = errors.New("asyncq: operation cancelled")

// ErrEmpty is used only as the argument passed to a [DefaultFactory]
// when TryPop finds the queue empty. TryPop itself reports that case
// via its bool result, not an error; ErrEmpty is never returned
// directly and never delivered to an AsyncPop handler — an empty
// queue with no waiting push simply suspends the pop instead.
var ErrEmpty = errors.New("asyncq: queue empty")

// IsClosed reports whether err is, or wraps, ErrClosed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsCancelled reports whether err is, or wraps, ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Backoff is [iox.Backoff], re-exported so callers polling TryPush or
// TryPop don't need a second import for the retry loop shown in this
// package's examples.
type Backoff = iox.Backoff
