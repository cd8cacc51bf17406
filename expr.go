// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decode

import (
	"encoding/binary"

	"code.hybscloud.com/kont"
)

// Pre-allocated erased frames and operations to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world
// execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprTakeInt8    kont.Erased = TakeInt8{}
)

// identityResume is the identity resume function for EffectFrame
// construction. Named function produces a static function value,
// consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

func bindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	result := f(current.(T))
	return kont.Erased(result.Value), result.Frame
}

// exprBind builds the fused EffectFrame + UnwindFrame chain shared by
// the ExprXxxBind constructors.
func exprBind[T, B any](op kont.Operation, f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = bindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprTakeBind consumes n bytes and passes them to f.
// Fuses ExprPerform(Take{N: n}) + ExprBind.
func ExprTakeBind[B any](n int, f func([]byte) kont.Expr[B]) kont.Expr[B] {
	return exprBind(Take{N: n}, f)
}

// ExprSkipThen discards n bytes and continues with next.
// Fuses ExprPerform(Skip{N: n}) + ExprThen.
func ExprSkipThen[B any](n int, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Skip{N: n}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprDelimBind consumes bytes through delim and passes them to f.
// Fuses ExprPerform(TakeDelim{Delim: delim}) + ExprBind.
func ExprDelimBind[B any](delim byte, f func([]byte) kont.Expr[B]) kont.Expr[B] {
	return exprBind(TakeDelim{Delim: delim}, f)
}

// ExprLineBind consumes one '\n'-terminated line (strict UTF-8) and
// passes the decoded text to f.
// Fuses ExprPerform(TakeLine{Strip: strip}) + ExprBind.
func ExprLineBind[B any](strip bool, f func(string) kont.Expr[B]) kont.Expr[B] {
	return exprBind(TakeLine{Strip: strip}, f)
}

// ExprInt8Bind consumes one byte and passes it to f as a signed
// integer. Fuses ExprPerform(TakeInt8{}) + ExprBind.
func ExprInt8Bind[B any](f func(int8) kont.Expr[B]) kont.Expr[B] {
	return exprBind(exprTakeInt8, f)
}

// ExprInt32Bind consumes four bytes in order (nil means big-endian) and
// passes the integer to f.
// Fuses ExprPerform(TakeInt32{Order: order}) + ExprBind.
func ExprInt32Bind[B any](order binary.ByteOrder, f func(int32) kont.Expr[B]) kont.Expr[B] {
	return exprBind(TakeInt32{Order: order}, f)
}

// ExprDone completes a decode protocol with a.
func ExprDone[A any](a A) kont.Expr[A] {
	return kont.ExprReturn(a)
}
