// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"io"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Start evaluates a decode protocol until the first operation
// suspension. Returns (result, nil) on completion, or (zero,
// suspension) if pending.
func Start[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended decode operation against the session
// window. Dispatch is non-blocking: it returns iox.ErrWouldBlock while
// the window cannot satisfy the operation, leaving the suspension
// unconsumed so it may be retried after more bytes are appended.
//
// On success (nil error) the suspension is consumed and the protocol
// advances to the next operation or completion. On malformed input the
// suspension is discarded and the decode failure is returned; the
// session must then be discarded.
func Advance[R any](s *Session, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	op, ok := susp.Op().(decodeDispatcher)
	if !ok {
		panic("decode: unhandled effect in Advance")
	}
	v, err := op.DispatchDecode(s)
	if err != nil {
		var zero R
		if iox.IsWouldBlock(err) {
			return zero, susp, err
		}
		susp.Discard()
		return zero, nil, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

// Exec runs a Cont-world decode protocol to completion against a pump,
// waiting past iox.ErrWouldBlock boundaries with adaptive backoff while
// the producer goroutine offers chunks. Returns the protocol result, a
// decode failure, or io.ErrUnexpectedEOF when the pump closes with the
// protocol still waiting for bytes.
func Exec[R any](p *Pump, protocol kont.Eff[R]) (R, error) {
	return ExecExpr(p, Reify(protocol))
}

// ExecExpr runs an Expr-world decode protocol to completion against a
// pump. See [Exec].
func ExecExpr[R any](p *Pump, protocol kont.Expr[R]) (R, error) {
	result, susp := Start[R](protocol)
	var bo iox.Backoff
	for susp != nil {
		var err error
		result, susp, err = Advance(p.s, susp)
		if err == nil {
			bo.Reset()
			continue
		}
		if !iox.IsWouldBlock(err) {
			var zero R
			return zero, err
		}
		if p.fill() > 0 {
			bo.Reset()
			continue
		}
		if p.closed.Load() != 0 {
			// Close/Offer race: drain once more before deciding.
			if p.fill() > 0 {
				bo.Reset()
				continue
			}
			var zero R
			return zero, io.ErrUnexpectedEOF
		}
		bo.Wait()
	}
	return result, nil
}
