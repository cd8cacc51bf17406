// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"encoding/binary"

	"code.hybscloud.com/kont"
)

// TakeBind consumes n bytes and passes them to f.
// Fuses Perform(Take{N: n}) + Bind.
func TakeBind[B any](n int, f func([]byte) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Take{N: n}), f)
}

// SkipThen discards n bytes and continues with next.
// Fuses Perform(Skip{N: n}) + Then.
func SkipThen[B any](n int, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Skip{N: n}), next)
}

// DelimBind consumes bytes through delim and passes them to f.
// Fuses Perform(TakeDelim{Delim: delim}) + Bind.
func DelimBind[B any](delim byte, f func([]byte) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeDelim{Delim: delim}), f)
}

// LineBind consumes one '\n'-terminated line (strict UTF-8) and passes
// the decoded text to f. Fuses Perform(TakeLine{Strip: strip}) + Bind.
func LineBind[B any](strip bool, f func(string) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeLine{Strip: strip}), f)
}

// Int8Bind consumes one byte and passes it to f as a signed integer.
// Fuses Perform(TakeInt8{}) + Bind.
func Int8Bind[B any](f func(int8) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeInt8{}), f)
}

// Int16Bind consumes two bytes in order (nil means big-endian) and
// passes the integer to f. Fuses Perform(TakeInt16{Order: order}) + Bind.
func Int16Bind[B any](order binary.ByteOrder, f func(int16) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeInt16{Order: order}), f)
}

// Int32Bind consumes four bytes in order (nil means big-endian) and
// passes the integer to f. Fuses Perform(TakeInt32{Order: order}) + Bind.
func Int32Bind[B any](order binary.ByteOrder, f func(int32) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeInt32{Order: order}), f)
}

// Int64Bind consumes eight bytes in order (nil means big-endian) and
// passes the integer to f. Fuses Perform(TakeInt64{Order: order}) + Bind.
func Int64Bind[B any](order binary.ByteOrder, f func(int64) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(TakeInt64{Order: order}), f)
}

// Done completes a decode protocol with a.
func Done[A any](a A) kont.Eff[A] {
	return kont.Pure(a)
}

// Loop runs a recursive decode protocol, e.g. one message per
// iteration. step returns Left(nextState) to continue or Right(result)
// to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}
