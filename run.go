// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

// Drive runs the session's pending step until a step suspends with
// [NeedMoreData] (return nil and wait for more input) or fails (return
// the decode failure; the session must then be discarded). After each
// [Complete] the freshly stored step runs immediately, so pipelined
// decode units in the window are drained without further I/O.
func Drive(s *Session) error {
	for {
		step := s.next
		if step == nil {
			panic("decode: session has no pending step")
		}
		res, err := step()
		if err != nil {
			return err
		}
		if res == NeedMoreData {
			return nil
		}
	}
}

// Feed appends newly received bytes and drives the decoder. This is the
// per-chunk entry point for a single-goroutine transport; concurrent
// transports hand chunks over through a [Pump] instead.
func Feed(s *Session, p []byte) error {
	s.Append(p)
	return Drive(s)
}
