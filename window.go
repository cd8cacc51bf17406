// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"bytes"
)

// defaultWindowCapacity is the initial buffer size for sessions that do
// not request one. 256 holds a typical protocol line or small frame
// without growth.
const defaultWindowCapacity = 256

// Window is a bounded, addressable view over previously received,
// not-yet-consumed bytes. consumed is the offset of the next unread
// byte, limit is one past the last valid byte.
// Invariant: 0 <= consumed <= limit <= len(buf).
//
// Absolute offsets (as used by [Window.PeekAt], [Window.IndexOf] and
// [Window.Scan]) are stable between [Window.Append] calls; appending
// may compact the consumed prefix and shift them.
//
// The zero value is an empty window ready for use.
type Window struct {
	buf      []byte
	consumed int
	limit    int
}

// Init preallocates the window buffer. Optional: Append grows on demand.
func (w *Window) Init(capacity int) {
	if capacity <= 0 {
		capacity = defaultWindowCapacity
	}
	w.buf = make([]byte, capacity)
	w.consumed, w.limit = 0, 0
}

// Remaining returns the number of unconsumed bytes, limit - consumed.
func (w *Window) Remaining() int { return w.limit - w.consumed }

// Consumed returns the absolute offset of the next unread byte.
func (w *Window) Consumed() int { return w.consumed }

// Limit returns the absolute offset one past the last valid byte.
func (w *Window) Limit() int { return w.limit }

// Cap returns the current buffer capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Append adds p behind limit, compacting the consumed prefix first and
// growing the buffer when the tail cannot hold p.
func (w *Window) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	if w.consumed > 0 {
		copy(w.buf, w.buf[w.consumed:w.limit])
		w.limit -= w.consumed
		w.consumed = 0
	}
	if need := w.limit + len(p); need > len(w.buf) {
		capacity := len(w.buf) * 2
		if capacity < defaultWindowCapacity {
			capacity = defaultWindowCapacity
		}
		for capacity < need {
			capacity *= 2
		}
		grown := make([]byte, capacity)
		copy(grown, w.buf[:w.limit])
		w.buf = grown
	}
	copy(w.buf[w.limit:], p)
	w.limit += len(p)
}

// ReadN copies n bytes starting at consumed and advances consumed by n.
// Precondition: Remaining() >= n. Violating it is a combinator defect
// and panics.
func (w *Window) ReadN(n int) []byte {
	if n < 0 || n > w.Remaining() {
		panic("decode: short window read")
	}
	out := make([]byte, n)
	copy(out, w.buf[w.consumed:w.consumed+n])
	w.consumed += n
	return out
}

// Skip advances consumed by n without copying.
// Precondition: Remaining() >= n; panics otherwise.
func (w *Window) Skip(n int) {
	if n < 0 || n > w.Remaining() {
		panic("decode: short window skip")
	}
	w.consumed += n
}

// PeekAt reads the byte at an absolute offset without advancing
// consumed. The offset must lie in [consumed, limit); panics otherwise.
func (w *Window) PeekAt(offset int) byte {
	if offset < w.consumed || offset >= w.limit {
		panic("decode: peek outside window")
	}
	return w.buf[offset]
}

// IndexOf returns the first absolute offset >= from and < limit whose
// byte equals b, or -1 when absent. from is clamped to consumed.
func (w *Window) IndexOf(b byte, from int) int {
	if from < w.consumed {
		from = w.consumed
	}
	if from >= w.limit {
		return -1
	}
	i := bytes.IndexByte(w.buf[from:w.limit], b)
	if i < 0 {
		return -1
	}
	return from + i
}

// Scan returns the first absolute offset >= from and < limit whose byte
// satisfies pred, or -1 when absent. from is clamped to consumed.
func (w *Window) Scan(pred func(byte) bool, from int) int {
	if from < w.consumed {
		from = w.consumed
	}
	for i := from; i < w.limit; i++ {
		if pred(w.buf[i]) {
			return i
		}
	}
	return -1
}
