// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package decode provides resumable step combinators for decoding byte
// streams that arrive in arbitrary fragments.
//
// A protocol author describes a decoder as a chain of small steps
// ("read N bytes", "read until a delimiter", "read a line", "read a
// 32-bit integer") without tracking how many bytes have arrived so far.
// When a step cannot complete with the bytes on hand it suspends; the
// transport appends more bytes and re-runs it verbatim.
//
// # Architecture
//
//   - Window: addressable view over buffered, unconsumed bytes with
//     consumed/limit offsets, absolute scanning, and compaction.
//   - Session: one per stream. Owns the [Window], author scratch
//     storage, and the pending [Step]. Strictly single-threaded.
//   - Step/Result: a [Step] runs to completion synchronously and
//     reports [NeedMoreData] (retry later, state untouched) or
//     [Complete] (next step already stored in the session).
//   - Pump: bounded lock-free SPSC chunk mailbox via
//     [code.hybscloud.com/lfq] bridging a transport producer goroutine
//     to the session's single decoding consumer.
//
// # API Topologies
//
//   - Step-world: combinator methods on [*Session] — [Session.ReadBytes],
//     [Session.ReadByteBuffer], [Session.ReadDelimiter],
//     [Session.ReadDelimiterBuffer], [Session.ReadLine],
//     [Session.ReadUntil], [Session.ReadInt8] … [Session.ReadInt64LE] —
//     driven by [Drive]/[Feed].
//   - Eff-world: decode effect operations ([Take], [Skip], [TakeDelim],
//     [TakeLine], [TakeInt32], …) on [code.hybscloud.com/kont], with
//     fused Cont-world constructors ([TakeBind], [LineBind], …),
//     zero-allocation Expr-world variants ([ExprTakeBind], …), and
//     [Loop] for repeated-message protocols. Bridge via [Reify] and
//     [Reflect].
//   - Stepping: [Start] and [Advance] evaluate Eff-world protocols one
//     operation at a time; [Advance] returns
//     [code.hybscloud.com/iox.ErrWouldBlock] while the window lacks
//     bytes, leaving the suspension unconsumed. [Exec] blocks on a
//     [Pump] using adaptive backoff.
//
// # Error Handling
//
// Insufficient data is not an error: it is [NeedMoreData] (Step-world)
// or iox.ErrWouldBlock (Eff-world). Malformed input (an undecodable
// line, a negative computed count) is a decode failure returned as an
// error wrapping [ErrMalformed]; it is fatal for the session because
// consumed bytes cannot be rewound. Combinator misuse panics.
//
// # Example
//
//	s := decode.NewSession(0)
//	var frame func() decode.Step
//	frame = func() decode.Step {
//		return s.ReadDelimiterBuffer('\n', func(line []byte) decode.Step {
//			n, _ := strconv.Atoi(string(bytes.TrimRight(line, "\r\n")))
//			return s.ReadByteBuffer(n, func(body []byte) decode.Step {
//				handle(body)
//				return frame()
//			})
//		})
//	}
//	s.SetNext(frame())
//	for chunk := range transport {
//		if err := decode.Feed(s, chunk); err != nil {
//			break // fatal: close the connection
//		}
//	}
package decode
