// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

// Session is the decode context of one logical connection or stream.
// It owns the byte [Window], a string-keyed scratch map surviving
// across suspend/resume cycles, and the pending [Step].
//
// Exactly one goroutine operates on a session at any time. Many
// independent sessions may run concurrently; they share nothing. A
// session is discarded by dropping it — there is no cleanup hook, so
// resources needing release belong to the transport layer.
type Session struct {
	win     Window
	scratch map[string]any
	next    Step
	serial  Serial
}

// NewSession creates a session with an empty window of the given
// capacity (<= 0 selects the default) and no pending step. The caller
// installs the protocol's first step via [Session.SetNext].
func NewSession(capacity int) *Session {
	s := &Session{serial: nextSerial()}
	s.win.Init(capacity)
	return s
}

// Serial returns the serial number assigned to this session.
func (s *Session) Serial() Serial { return s.serial }

// Window returns the session's byte window. Valid to use only on the
// session's own goroutine, typically from a running step.
func (s *Session) Window() *Window { return &s.win }

// Append adds newly received bytes behind the window's limit.
func (s *Session) Append(p []byte) { s.win.Append(p) }

// Next returns the pending step, or nil when none is installed.
func (s *Session) Next() Step { return s.next }

// SetNext installs the pending step. A nil step is a programming
// defect: after Complete the session must always hold a runnable step.
func (s *Session) SetNext(step Step) {
	if step == nil {
		panic("decode: nil step")
	}
	s.next = step
}

// Get returns the scratch value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.scratch[key]
	return v, ok
}

// Set stores a scratch value under key. Keys should be namespaced
// ("mypkg.cursor") so independent uses within a session do not collide.
func (s *Session) Set(key string, v any) {
	if s.scratch == nil {
		s.scratch = make(map[string]any)
	}
	s.scratch[key] = v
}

// Delete removes the scratch value stored under key.
func (s *Session) Delete(key string) {
	delete(s.scratch, key)
}

// complete stores the continuation's step and reports Complete.
// Every built-in combinator funnels through here to enforce the
// non-nil next step invariant.
func (s *Session) complete(next Step) (Result, error) {
	if next == nil {
		panic("decode: continuation returned nil step")
	}
	s.next = next
	return Complete, nil
}
