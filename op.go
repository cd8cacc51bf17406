// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"encoding/binary"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"golang.org/x/text/encoding"
)

// decodeDispatcher is the structural interface for decode operations.
// DispatchDecode is non-blocking: it returns iox.ErrWouldBlock when the
// window cannot yet satisfy the operation, and a malformed-input error
// on undecodable data (fatal, see [ErrMalformed]).
type decodeDispatcher interface {
	DispatchDecode(s *Session) (kont.Resumed, error)
}

// Take is the effect operation for consuming N bytes and yielding them
// in a fresh buffer.
type Take struct {
	kont.Phantom[[]byte]
	N int
}

// DispatchDecode handles Take on the session window.
// Non-blocking: returns iox.ErrWouldBlock while fewer than N bytes are
// buffered. A negative N is malformed input.
func (op Take) DispatchDecode(s *Session) (kont.Resumed, error) {
	if op.N < 0 {
		return nil, Malformedf("negative byte count %d", op.N)
	}
	if s.win.Remaining() < op.N {
		return nil, iox.ErrWouldBlock
	}
	return s.win.ReadN(op.N), nil
}

// Skip is the effect operation for consuming and discarding N bytes.
type Skip struct {
	kont.Phantom[struct{}]
	N int
}

// DispatchDecode handles Skip on the session window.
// Non-blocking: returns iox.ErrWouldBlock while fewer than N bytes are
// buffered. A negative N is malformed input.
func (op Skip) DispatchDecode(s *Session) (kont.Resumed, error) {
	if op.N < 0 {
		return nil, Malformedf("negative byte count %d", op.N)
	}
	if s.win.Remaining() < op.N {
		return nil, iox.ErrWouldBlock
	}
	s.win.Skip(op.N)
	return struct{}{}, nil
}

// TakeDelim is the effect operation for consuming bytes through the
// first occurrence of Delim and yielding them, delimiter included.
type TakeDelim struct {
	kont.Phantom[[]byte]
	Delim byte
}

// DispatchDecode handles TakeDelim on the session window.
// Non-blocking: returns iox.ErrWouldBlock while the delimiter is not
// buffered.
func (op TakeDelim) DispatchDecode(s *Session) (kont.Resumed, error) {
	i := s.win.IndexOf(op.Delim, s.win.Consumed())
	if i < 0 {
		return nil, iox.ErrWouldBlock
	}
	return s.win.ReadN(i - s.win.Consumed() + 1), nil
}

// TakeLine is the effect operation for consuming one '\n'-terminated
// line and yielding the decoded text. Strip trims the terminator
// ("\r\n" or "\n") from the text; the full span is consumed either way.
// A nil Encoding means strict UTF-8.
type TakeLine struct {
	kont.Phantom[string]
	Strip    bool
	Encoding encoding.Encoding
}

// DispatchDecode handles TakeLine on the session window.
// Non-blocking: returns iox.ErrWouldBlock while no full line is
// buffered. Undecodable text is malformed input.
func (op TakeLine) DispatchDecode(s *Session) (kont.Resumed, error) {
	line, ok := s.takeLine(op.Strip)
	if !ok {
		return nil, iox.ErrWouldBlock
	}
	text, err := decodeText(line, op.Encoding)
	if err != nil {
		return nil, err
	}
	return text, nil
}

// TakeInt8 is the effect operation for consuming one byte as a signed
// integer.
type TakeInt8 struct {
	kont.Phantom[int8]
}

// DispatchDecode handles TakeInt8 on the session window.
func (TakeInt8) DispatchDecode(s *Session) (kont.Resumed, error) {
	if s.win.Remaining() < 1 {
		return nil, iox.ErrWouldBlock
	}
	return int8(s.win.ReadN(1)[0]), nil
}

// TakeInt16 is the effect operation for consuming two bytes as a signed
// integer in Order (nil means big-endian).
type TakeInt16 struct {
	kont.Phantom[int16]
	Order binary.ByteOrder
}

// DispatchDecode handles TakeInt16 on the session window.
func (op TakeInt16) DispatchDecode(s *Session) (kont.Resumed, error) {
	if s.win.Remaining() < 2 {
		return nil, iox.ErrWouldBlock
	}
	return int16(byteOrder(op.Order).Uint16(s.win.ReadN(2))), nil
}

// TakeInt32 is the effect operation for consuming four bytes as a
// signed integer in Order (nil means big-endian).
type TakeInt32 struct {
	kont.Phantom[int32]
	Order binary.ByteOrder
}

// DispatchDecode handles TakeInt32 on the session window.
func (op TakeInt32) DispatchDecode(s *Session) (kont.Resumed, error) {
	if s.win.Remaining() < 4 {
		return nil, iox.ErrWouldBlock
	}
	return int32(byteOrder(op.Order).Uint32(s.win.ReadN(4))), nil
}

// TakeInt64 is the effect operation for consuming eight bytes as a
// signed integer in Order (nil means big-endian).
type TakeInt64 struct {
	kont.Phantom[int64]
	Order binary.ByteOrder
}

// DispatchDecode handles TakeInt64 on the session window.
func (op TakeInt64) DispatchDecode(s *Session) (kont.Resumed, error) {
	if s.win.Remaining() < 8 {
		return nil, iox.ErrWouldBlock
	}
	return int64(byteOrder(op.Order).Uint64(s.win.ReadN(8))), nil
}

// byteOrder resolves the default byte order: big-endian when
// unspecified.
func byteOrder(order binary.ByteOrder) binary.ByteOrder {
	if order == nil {
		return binary.BigEndian
	}
	return order
}
