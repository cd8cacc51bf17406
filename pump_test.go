// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"code.hybscloud.com/decode"
	"code.hybscloud.com/iox"
)

func TestPumpOfferPoll(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	var got [][]byte
	lengthPrefixed(s, func(body []byte) {
		got = append(got, append([]byte(nil), body...))
	})
	p := decode.NewPump(s, 0)

	if err := p.Offer([]byte("5\r\nhe")); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	if err := p.Offer([]byte("llo")); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	n, err := p.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if n != 8 {
		t.Fatalf("Poll appended %d bytes, want 8", n)
	}
	if len(got) != 1 || !bytes.Equal(got[0], []byte("hello")) {
		t.Fatalf("bodies got %q, want [hello]", got)
	}
}

func TestPumpOfferWouldBlock(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	s.SetNext(idle())
	p := decode.NewPump(s, 2)

	if err := p.Offer([]byte("a")); err != nil {
		t.Fatalf("first Offer: %v", err)
	}
	if err := p.Offer([]byte("b")); err != nil {
		t.Fatalf("second Offer: %v", err)
	}
	if err := p.Offer([]byte("c")); !iox.IsWouldBlock(err) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
	// Consumer progress unblocks the producer.
	if _, err := p.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if err := p.Offer([]byte("c")); err != nil {
		t.Fatalf("Offer after drain: %v", err)
	}
}

func TestPumpRun(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	var got [][]byte
	lengthPrefixed(s, func(body []byte) {
		got = append(got, append([]byte(nil), body...))
	})
	p := decode.NewPump(s, 0)

	go func() {
		payload := []byte("5\r\nhello2\r\nok")
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

	if err := p.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 2 || !bytes.Equal(got[0], []byte("hello")) || !bytes.Equal(got[1], []byte("ok")) {
		t.Fatalf("bodies got %q, want [hello ok]", got)
	}
}

func TestPumpRunTruncatedStream(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	lengthPrefixed(s, func([]byte) {})
	p := decode.NewPump(s, 0)

	// Body promised 5 bytes, delivered 2, then the producer went away.
	if err := p.Offer([]byte("5\r\nhe")); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	p.Close()

	if err := p.Run(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestPumpRunMalformedStops(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	lengthPrefixed(s, func([]byte) {})
	p := decode.NewPump(s, 0)

	if err := p.Offer([]byte("nope\r\n")); err != nil {
		t.Fatalf("Offer: %v", err)
	}
	if err := p.Run(); !errors.Is(err, decode.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestPumpOfferAfterClose(t *testing.T) {
	skipRace(t)
	p := decode.NewPump(decode.NewSession(0), 0)
	p.Close()
	if !p.Closed() {
		t.Fatal("Closed() false after Close")
	}
	if err := p.Offer([]byte("x")); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected ErrClosedPipe, got %v", err)
	}
}

func TestPumpRunBackoffCoverage(t *testing.T) {
	skipRace(t)
	s := decode.NewSession(0)
	s.SetNext(idle())
	p := decode.NewPump(s, 0)

	done := make(chan error, 1)
	go func() { done <- p.Run() }()

	time.Sleep(50 * time.Millisecond) // Give it time to hit bo.Wait()
	p.Close()

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
