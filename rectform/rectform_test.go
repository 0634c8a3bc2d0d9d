// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rectform

import (
	"testing"

	"maylib.dev/may/arena"
	"maylib.dev/may/eval"
	"maylib.dev/may/frame"
	"maylib.dev/may/term"
)

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	b := term.NewBuilder(arena.New(1<<18, true))
	return eval.New(frame.New(), b)
}

func TestSplitRealSum(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	a := term.SymbolC("rfa", term.DomainReal)
	c := term.SymbolC("rfc", term.DomainReal)

	re, im := Split(e, e.Eval(b.AddC(a, c)))
	want := e.Eval(b.AddC(a, c))
	if term.Compare(re, want) != 0 {
		t.Fatalf("real(a+c) = %#v, want a+c", re)
	}
	if !term.IsZeroNumeric(im) {
		t.Fatalf("imag(a+c) = %#v, want 0", im)
	}
}

func TestSplitFactorRealCoefficient(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	a := term.SymbolC("rff", term.DomainReal)

	re, im := Split(e, e.Eval(b.MulC(b.IntC64(2), a)))
	want := e.Eval(b.MulC(b.IntC64(2), a))
	if term.Compare(re, want) != 0 {
		t.Fatalf("real(2a) = %#v, want 2a", re)
	}
	if !term.IsZeroNumeric(im) {
		t.Fatalf("imag(2a) = %#v, want 0", im)
	}
}

func TestSplitExpOfReal(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	a := term.SymbolC("rfe", term.DomainReal)

	re, im := Split(e, e.Eval(b.ExpC(a)))
	want := e.Eval(b.ExpC(a))
	if term.Compare(re, want) != 0 {
		t.Fatalf("real(exp(a)) = %#v, want exp(a)", re)
	}
	if !term.IsZeroNumeric(im) {
		t.Fatalf("imag(exp(a)) = %#v, want 0", im)
	}
}

func TestSplitOpaqueSymbolPower(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	// z is an opaque (possibly complex) symbol: z^2 = (Re z)^2 -
	// (Im z)^2 + 2*(Re z)*(Im z)*i, the standard squaring identity.
	z := term.SymbolC("rfz", 0)
	x := e.Eval(b.PowC(z, b.IntC64(2)))

	re, im := Split(e, x)
	rz, iz := e.Eval(b.RealC(z)), e.Eval(b.ImagC(z))
	wantRe := e.Eval(b.SubC(b.MulC(rz, rz), b.MulC(iz, iz)))
	wantIm := e.Eval(b.MulC(b.IntC64(2), b.MulC(rz, iz)))
	if term.Compare(re, wantRe) != 0 {
		t.Fatalf("real(z^2) = %#v, want Re(z)^2-Im(z)^2", re)
	}
	if term.Compare(im, wantIm) != 0 {
		t.Fatalf("imag(z^2) = %#v, want 2*Re(z)*Im(z)", im)
	}
}

func TestSplitComplexLiteral(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	c := b.ComplexC(b.IntC64(3), b.IntC64(4))

	re, im := Split(e, c)
	if term.Compare(re, b.IntC64(3)) != 0 || term.Compare(im, b.IntC64(4)) != 0 {
		t.Fatalf("Split(3+4i) = (%#v, %#v), want (3, 4)", re, im)
	}
}
