// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// All combinators share the same suspend/resume shape: compute a
// required byte count (or delimiter offset), compare against what is
// available, and either report NeedMoreData or consume-and-continue.
// Constructors are methods on *Session so each Step closes over its
// session capability; no global "current session" exists.

// ReadBytes waits for n bytes, discards them, and continues with the
// step produced by k. n is fixed at construction (fast path). Use
// [Session.ReadByteBuffer] to receive the bytes instead.
func (s *Session) ReadBytes(n int, k func() Step) Step {
	if n < 0 {
		panic("decode: negative byte count")
	}
	return func() (Result, error) {
		if s.win.Remaining() < n {
			return NeedMoreData, nil
		}
		s.win.Skip(n)
		return s.complete(k())
	}
}

// ReadBytesFunc is [Session.ReadBytes] with the count recomputed on
// every invocation, for counts that depend on previously decoded values
// held outside the step. A negative count is malformed input.
func (s *Session) ReadBytesFunc(count func() int, k func() Step) Step {
	return func() (Result, error) {
		n := count()
		if n < 0 {
			return NeedMoreData, Malformedf("negative byte count %d", n)
		}
		if s.win.Remaining() < n {
			return NeedMoreData, nil
		}
		s.win.Skip(n)
		return s.complete(k())
	}
}

// ReadByteBuffer waits for n bytes, copies them into a fresh buffer,
// and passes the buffer to k.
func (s *Session) ReadByteBuffer(n int, k func([]byte) Step) Step {
	if n < 0 {
		panic("decode: negative byte count")
	}
	return func() (Result, error) {
		if s.win.Remaining() < n {
			return NeedMoreData, nil
		}
		return s.complete(k(s.win.ReadN(n)))
	}
}

// ReadByteBufferFunc is [Session.ReadByteBuffer] with the count
// recomputed on every invocation. A negative count is malformed input.
func (s *Session) ReadByteBufferFunc(count func() int, k func([]byte) Step) Step {
	return func() (Result, error) {
		n := count()
		if n < 0 {
			return NeedMoreData, Malformedf("negative byte count %d", n)
		}
		if s.win.Remaining() < n {
			return NeedMoreData, nil
		}
		return s.complete(k(s.win.ReadN(n)))
	}
}

// ReadDelimiter scans unconsumed bytes for delim. The continuation
// receives the count of bytes up to and including the delimiter; the
// bytes stay in the window for the continuation to consume. When the
// delimiter is absent the step suspends and the scan restarts from
// consumed on the next invocation (use [Session.ReadUntil] for a
// resumable scan).
func (s *Session) ReadDelimiter(delim byte, k func(n int) Step) Step {
	return func() (Result, error) {
		i := s.win.IndexOf(delim, s.win.Consumed())
		if i < 0 {
			return NeedMoreData, nil
		}
		return s.complete(k(i - s.win.Consumed() + 1))
	}
}

// ReadDelimiterBuffer is [Session.ReadDelimiter] but consumes the bytes
// through the delimiter and passes them, delimiter included, to k.
func (s *Session) ReadDelimiterBuffer(delim byte, k func([]byte) Step) Step {
	return func() (Result, error) {
		i := s.win.IndexOf(delim, s.win.Consumed())
		if i < 0 {
			return NeedMoreData, nil
		}
		return s.complete(k(s.win.ReadN(i - s.win.Consumed() + 1)))
	}
}

// ReadLine waits for a '\n'-terminated line and passes the decoded text
// to k. The full span, terminator included, is always consumed. With
// strip true the text excludes the terminator ("\r\n" or "\n");
// with strip false it is the full span. Text must be valid UTF-8;
// invalid bytes are malformed input, not a suspend condition.
func (s *Session) ReadLine(strip bool, k func(string) Step) Step {
	return s.readLine(strip, nil, k)
}

// ReadLineEncoding is [Session.ReadLine] decoding line bytes with the
// supplied text encoding instead of strict UTF-8.
func (s *Session) ReadLineEncoding(strip bool, enc encoding.Encoding, k func(string) Step) Step {
	if enc == nil {
		panic("decode: nil encoding")
	}
	return s.readLine(strip, enc, k)
}

func (s *Session) readLine(strip bool, enc encoding.Encoding, k func(string) Step) Step {
	return func() (Result, error) {
		line, ok := s.takeLine(strip)
		if !ok {
			return NeedMoreData, nil
		}
		text, err := decodeText(line, enc)
		if err != nil {
			return NeedMoreData, err
		}
		return s.complete(k(text))
	}
}

// takeLine consumes one '\n'-terminated span and returns the logical
// line bytes, trimmed of the terminator when strip is set. ok is false
// when no full line is buffered yet; nothing is consumed in that case.
func (s *Session) takeLine(strip bool) (line []byte, ok bool) {
	i := s.win.IndexOf('\n', s.win.Consumed())
	if i < 0 {
		return nil, false
	}
	span := s.win.ReadN(i - s.win.Consumed() + 1)
	if !strip {
		return span, true
	}
	line = span[:len(span)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, true
}

// decodeText decodes line bytes with enc; nil enc means strict UTF-8.
func decodeText(line []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		if !utf8.Valid(line) {
			return "", Malformedf("line is not valid UTF-8")
		}
		return string(line), nil
	}
	out, err := enc.NewDecoder().Bytes(line)
	if err != nil {
		return "", Malformedf("line decode: %v", err)
	}
	return string(out), nil
}

// ReadUntil scans byte-by-byte for the first byte satisfying pred. The
// continuation receives the count of bytes up to and including the
// match; the bytes stay in the window. The scan cursor is owned by this
// step instance, so a scan interrupted by insufficient data resumes
// exactly where it left off: examined-but-unmatched bytes are never
// re-scanned.
func (s *Session) ReadUntil(pred func(byte) bool, k func(n int) Step) Step {
	examined := 0
	return func() (Result, error) {
		i := s.win.Scan(pred, s.win.Consumed()+examined)
		if i < 0 {
			examined = s.win.Remaining()
			return NeedMoreData, nil
		}
		examined = 0
		return s.complete(k(i - s.win.Consumed() + 1))
	}
}

// ReadInt8 waits for one byte and passes it to k as a signed integer.
func (s *Session) ReadInt8(k func(int8) Step) Step {
	return func() (Result, error) {
		if s.win.Remaining() < 1 {
			return NeedMoreData, nil
		}
		return s.complete(k(int8(s.win.ReadN(1)[0])))
	}
}

// ReadInt16BE waits for two bytes and decodes them big-endian.
func (s *Session) ReadInt16BE(k func(int16) Step) Step {
	return s.readInt16(binary.BigEndian, k)
}

// ReadInt16LE waits for two bytes and decodes them little-endian.
func (s *Session) ReadInt16LE(k func(int16) Step) Step {
	return s.readInt16(binary.LittleEndian, k)
}

// ReadInt32BE waits for four bytes and decodes them big-endian.
func (s *Session) ReadInt32BE(k func(int32) Step) Step {
	return s.readInt32(binary.BigEndian, k)
}

// ReadInt32LE waits for four bytes and decodes them little-endian.
func (s *Session) ReadInt32LE(k func(int32) Step) Step {
	return s.readInt32(binary.LittleEndian, k)
}

// ReadInt64BE waits for eight bytes and decodes them big-endian.
func (s *Session) ReadInt64BE(k func(int64) Step) Step {
	return s.readInt64(binary.BigEndian, k)
}

// ReadInt64LE waits for eight bytes and decodes them little-endian.
func (s *Session) ReadInt64LE(k func(int64) Step) Step {
	return s.readInt64(binary.LittleEndian, k)
}

// Byte order affects interpretation only, never which bytes are
// consumed.

func (s *Session) readInt16(order binary.ByteOrder, k func(int16) Step) Step {
	return func() (Result, error) {
		if s.win.Remaining() < 2 {
			return NeedMoreData, nil
		}
		return s.complete(k(int16(order.Uint16(s.win.ReadN(2)))))
	}
}

func (s *Session) readInt32(order binary.ByteOrder, k func(int32) Step) Step {
	return func() (Result, error) {
		if s.win.Remaining() < 4 {
			return NeedMoreData, nil
		}
		return s.complete(k(int32(order.Uint32(s.win.ReadN(4)))))
	}
}

func (s *Session) readInt64(order binary.ByteOrder, k func(int64) Step) Step {
	return func() (Result, error) {
		if s.win.Remaining() < 8 {
			return NeedMoreData, nil
		}
		return s.complete(k(int64(order.Uint64(s.win.ReadN(8)))))
	}
}
