// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"errors"
	"fmt"
)

// ErrMalformed marks decode failures caused by malformed input, such as
// an undecodable line or a negative computed byte count. Match with
// errors.Is. Malformed input is fatal for the session: consumed bytes
// cannot be rewound, so the driver must discard the session (typically
// by closing the connection) rather than retry.
var ErrMalformed = errors.New("decode: malformed input")

// MalformedError carries the reason for a malformed-input failure.
// It matches [ErrMalformed] under errors.Is.
type MalformedError struct {
	Reason string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return "decode: malformed input: " + e.Reason
}

// Is reports whether target is [ErrMalformed].
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Malformedf constructs a malformed-input decode failure. Exported for
// raw steps and Eff-world operations written outside this package.
func Malformedf(format string, args ...any) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}
