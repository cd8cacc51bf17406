// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode_test

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"code.hybscloud.com/decode"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

func TestStartAdvanceTake(t *testing.T) {
	protocol := decode.Reify(decode.TakeBind(3, func(b []byte) kont.Eff[string] {
		return decode.Done(string(b))
	}))

	s := decode.NewSession(0)
	result, susp := decode.Start[string](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Take")
	}
	if op, ok := susp.Op().(decode.Take); !ok || op.N != 3 {
		t.Fatalf("expected Take{N: 3}, got %#v", susp.Op())
	}

	s.Append([]byte("ab"))
	_, retrySusp, err := decode.Advance(s, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	if retrySusp != susp {
		t.Fatal("suspension should be returned unconsumed on would-block")
	}

	s.Append([]byte("c"))
	result, susp, err = decode.Advance(s, susp)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if susp != nil {
		t.Fatal("expected completion after Take")
	}
	if result != "abc" {
		t.Fatalf("result got %q, want %q", result, "abc")
	}
}

func TestAdvanceOperationSequence(t *testing.T) {
	// Skip, then big-endian int32, then counted body.
	protocol := decode.Reify(decode.SkipThen(2,
		decode.Int32Bind(nil, func(n int32) kont.Eff[[]byte] {
			return decode.TakeBind(int(n), func(b []byte) kont.Eff[[]byte] {
				return decode.Done(b)
			})
		}),
	))

	s := decode.NewSession(0)
	s.Append([]byte{0xde, 0xad, 0x00, 0x00, 0x00, 0x02, 'h', 'i'})

	result, susp := decode.Start[[]byte](protocol)
	for susp != nil {
		var err error
		result, susp, err = decode.Advance(s, susp)
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if !bytes.Equal(result, []byte("hi")) {
		t.Fatalf("result got %q, want %q", result, "hi")
	}
}

func TestAdvanceMalformedDiscards(t *testing.T) {
	protocol := decode.Reify(decode.LineBind(true, func(line string) kont.Eff[string] {
		return decode.Done(line)
	}))

	s := decode.NewSession(0)
	s.Append([]byte{0xff, 0xfe, '\n'})

	_, susp := decode.Start[string](protocol)
	_, next, err := decode.Advance(s, susp)
	if !errors.Is(err, decode.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if next != nil {
		t.Fatal("suspension should be discarded on malformed input")
	}
}

func TestAdvanceNegativeTakeMalformed(t *testing.T) {
	protocol := decode.Reify(decode.TakeBind(-1, func(b []byte) kont.Eff[struct{}] {
		return decode.Done(struct{}{})
	}))

	s := decode.NewSession(0)
	_, susp := decode.Start[struct{}](protocol)
	_, _, err := decode.Advance(s, susp)
	if !errors.Is(err, decode.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestAdvanceUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	protocol := kont.ExprPerform(bogus{})
	_, susp := decode.Start[int](protocol)
	if susp == nil {
		t.Fatal("expected suspension")
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "decode: unhandled effect in Advance" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	decode.Advance(decode.NewSession(0), susp)
}

func TestExecPump(t *testing.T) {
	skipRace(t)
	// Length line, then counted body, via the blocking runner with a
	// concurrent producer.
	protocol := decode.LineBind(true, func(line string) kont.Eff[string] {
		n, err := strconv.Atoi(line)
		if err != nil {
			n = -1
		}
		return decode.TakeBind(n, func(body []byte) kont.Eff[string] {
			return decode.Done(string(body))
		})
	})

	p := decode.NewPump(decode.NewSession(0), 0)
	go func() {
		payload := []byte("5\r\nhello")
		for i := range payload {
			chunk := payload[i : i+1]
			for {
				if err := p.Offer(chunk); err == nil {
					break
				}
			}
		}
		p.Close()
	}()

	result, err := decode.Exec(p, protocol)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if result != "hello" {
		t.Fatalf("result got %q, want %q", result, "hello")
	}
}

func TestExecTruncated(t *testing.T) {
	skipRace(t)
	protocol := decode.TakeBind(5, func(b []byte) kont.Eff[string] {
		return decode.Done(string(b))
	})

	p := decode.NewPump(decode.NewSession(0), 0)
	if err := p.Offer([]byte("he")); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	p.Close()

	_, err := decode.Exec(p, protocol)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestLoopDecodesRepeatedMessages(t *testing.T) {
	// One line per iteration until the "end" sentinel line.
	protocol := decode.Loop([]string(nil), func(acc []string) kont.Eff[kont.Either[[]string, []string]] {
		return decode.LineBind(true, func(line string) kont.Eff[kont.Either[[]string, []string]] {
			if line == "end" {
				return decode.Done(kont.Right[[]string, []string](acc))
			}
			return decode.Done(kont.Left[[]string, []string](append(acc, line)))
		})
	})

	s := decode.NewSession(0)
	s.Append([]byte("alpha\nbeta\r\ngamma\nend\n"))

	result, susp := decode.Start[[]string](decode.Reify(protocol))
	for susp != nil {
		var err error
		result, susp, err = decode.Advance(s, susp)
		if err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if got := strings.Join(result, ","); got != "alpha,beta,gamma" {
		t.Fatalf("lines got %q, want %q", got, "alpha,beta,gamma")
	}
}
