// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode_test

import (
	"testing"

	"code.hybscloud.com/decode"
)

// idle returns a step that suspends forever. Continuations in tests end
// their chains with it so the driver parks after the assertion point.
func idle() decode.Step {
	return func() (decode.Result, error) {
		return decode.NeedMoreData, nil
	}
}

// feedOneByOne feeds p one byte at a time, failing the test on a decode
// error. Exercises the worst-case fragmentation of a transport.
func feedOneByOne(tb testing.TB, s *decode.Session, p []byte) {
	tb.Helper()
	for i := range p {
		if err := decode.Feed(s, p[i:i+1]); err != nil {
			tb.Fatalf("Feed byte %d: %v", i, err)
		}
	}
}
