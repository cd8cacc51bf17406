// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

// Result is the outcome of one Step invocation.
// It is meaningful only when the accompanying error is nil.
type Result uint8

const (
	// NeedMoreData means the step could not complete with the bytes
	// currently available. The window and scratch state are untouched,
	// so the step can be retried verbatim once more bytes arrive. The
	// session's pending step is unchanged.
	NeedMoreData Result = iota

	// Complete means the step consumed what it needed and stored the
	// continuation's step into the session. The driver re-enters
	// immediately without waiting for more input.
	Complete
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case NeedMoreData:
		return "NeedMoreData"
	case Complete:
		return "Complete"
	default:
		return "Result(invalid)"
	}
}

// Step is one unit of incremental decode work, bound to its session by
// closure at construction time. A step runs to completion synchronously
// and never blocks.
//
// Built-in steps come from the combinator methods on [*Session]; a raw
// step is any function of this shape. A raw step that returns
// [Complete] must first store a non-nil next step via
// [Session.SetNext], exactly as the built-ins do.
type Step func() (Result, error)
