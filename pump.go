// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"io"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// defaultPumpCapacity is the bounded capacity for the chunk mailbox.
// 16 absorbs a burst of small reads without letting the producer run
// far ahead of the decoder.
const defaultPumpCapacity = 16

// Pump is a bounded lock-free SPSC chunk mailbox between a transport
// producer goroutine and the session's single decoding consumer. The
// producer calls [Pump.Offer] as bytes arrive and [Pump.Close] at end
// of stream; the consumer calls [Pump.Poll] from its own loop, or
// [Pump.Run] to block with adaptive backoff.
//
// The session itself stays single-threaded: only the consumer side
// touches the window and steps.
type Pump struct {
	s      *Session
	q      lfq.SPSC[[]byte]
	closed atomix.Uint32
	slot   []byte
}

// NewPump creates a pump feeding s. capacity <= 0 selects the default.
func NewPump(s *Session, capacity int) *Pump {
	if capacity <= 0 {
		capacity = defaultPumpCapacity
	}
	p := &Pump{s: s}
	p.q.Init(capacity)
	return p
}

// Session returns the session this pump feeds.
func (p *Pump) Session() *Session { return p.s }

// Offer hands a chunk to the decoder (producer side only).
// Non-blocking: returns iox.ErrWouldBlock when the mailbox is full;
// retry after the consumer makes progress. Returns io.ErrClosedPipe
// after Close. The pump takes ownership of the slice: pass a chunk the
// producer will not reuse.
func (p *Pump) Offer(chunk []byte) error {
	if p.closed.Load() != 0 {
		return io.ErrClosedPipe
	}
	p.slot = chunk
	return p.q.Enqueue(&p.slot)
}

// Close marks the producer side finished. Already-offered chunks are
// still decoded; once drained, [Pump.Run] returns.
func (p *Pump) Close() {
	p.closed.Add(1)
}

// Closed reports whether the producer side has closed the pump.
func (p *Pump) Closed() bool {
	return p.closed.Load() != 0
}

// fill drains queued chunks into the window without driving steps.
// Returns the number of bytes appended (consumer side only).
func (p *Pump) fill() int {
	n := 0
	for {
		chunk, err := p.q.Dequeue()
		if err != nil {
			// ErrWouldBlock: mailbox empty
			return n
		}
		p.s.Append(chunk)
		n += len(chunk)
	}
}

// Poll drains queued chunks into the window and drives the pending step
// chain (consumer side only). Returns the number of bytes appended and
// the first decode failure, which is fatal for the session.
func (p *Pump) Poll() (int, error) {
	n := p.fill()
	if n == 0 {
		return 0, nil
	}
	return n, Drive(p.s)
}

// Run polls until a decode failure or until the producer has closed the
// pump and the mailbox is drained, waiting with adaptive backoff when
// no progress is possible. A close that leaves unconsumed bytes in the
// window means the stream ended mid-unit: Run returns
// io.ErrUnexpectedEOF.
func (p *Pump) Run() error {
	var bo iox.Backoff
	for {
		n, err := p.Poll()
		if err != nil {
			return err
		}
		if n > 0 {
			bo.Reset()
			continue
		}
		if p.closed.Load() != 0 {
			// Close/Offer race: drain once more before deciding.
			n, err = p.Poll()
			if err != nil {
				return err
			}
			if n > 0 {
				bo.Reset()
				continue
			}
			if p.s.Window().Remaining() > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		bo.Wait()
	}
}
