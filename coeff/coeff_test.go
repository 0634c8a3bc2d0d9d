// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coeff

import (
	"math/big"
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

func TestExtractCoeffDegPlainPower(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ecx", 0)
	term3x2 := e.Eval(b.MulC(b.IntC64(3), b.PowC(x, b.IntC64(2))))

	c, d, ok := ExtractCoeffDeg(b, term3x2, x)
	if !ok {
		t.Fatal("ExtractCoeffDeg(3x^2, x) rejected")
	}
	if d != 2 {
		t.Fatalf("degree = %d, want 2", d)
	}
	if term.Compare(c, b.IntC64(3)) != 0 {
		t.Fatalf("coeff = %#v, want 3", c)
	}
}

func TestExtractCoeffDegProductWithOtherVar(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ecpx", 0)
	y := term.SymbolC("ecpy", 0)
	// 5*x^2*y -> coeff 5*y, degree 2 in x.
	raw := e.Eval(b.MulC(b.IntC64(5), b.MulC(b.PowC(x, b.IntC64(2)), y)))

	c, d, ok := ExtractCoeffDeg(b, raw, x)
	if !ok {
		t.Fatal("ExtractCoeffDeg(5x^2y, x) rejected")
	}
	if d != 2 {
		t.Fatalf("degree = %d, want 2", d)
	}
	want := e.Eval(b.MulC(b.IntC64(5), y))
	if term.Compare(e.Eval(c), want) != 0 {
		t.Fatalf("coeff = %#v, want %#v", c, want)
	}
}

func TestExtractCoeffDegIndependentTerm(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ecix", 0)
	y := term.SymbolC("eciy", 0)

	c, d, ok := ExtractCoeffDeg(b, y, x)
	if !ok || d != 0 || term.Compare(c, y) != 0 {
		t.Fatalf("ExtractCoeffDeg(y, x) = (%#v, %d, %v), want (y, 0, true)", c, d, ok)
	}
}

func TestExtractCoeffDegRejectsNonIntegerPower(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ecnx", 0)
	half := b.RatC(big.NewInt(1), big.NewInt(2))
	raw := e.Eval(b.PowC(x, half))

	if _, _, ok := ExtractCoeffDeg(b, raw, x); ok {
		t.Fatal("ExtractCoeffDeg accepted x^(1/2)")
	}
}

func TestExtractCoeffDegRejectsOpaqueFactor(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ecox", 0)
	raw := e.Eval(b.SinC(x))

	if _, _, ok := ExtractCoeffDeg(b, raw, x); ok {
		t.Fatal("ExtractCoeffDeg accepted sin(x)")
	}
}

func TestDegreeAndLDegree(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("edx", 0)
	// 1 + 3x^2 + 5x^5
	poly := e.Eval(b.AddC(b.AddC(term.One(), b.MulC(b.IntC64(3), b.PowC(x, b.IntC64(2)))),
		b.MulC(b.IntC64(5), b.PowC(x, b.IntC64(5)))))

	deg, coeffSum, _, ok := Degree(b, poly, x)
	if !ok || deg != 5 || term.Compare(e.Eval(coeffSum), b.IntC64(5)) != 0 {
		t.Fatalf("Degree = (%d, %#v, ok=%v), want (5, 5, true)", deg, coeffSum, ok)
	}

	ldeg, lcoeffSum, _, ok := LDegree(b, poly, x)
	if !ok || ldeg != 0 || term.Compare(e.Eval(lcoeffSum), term.One()) != 0 {
		t.Fatalf("LDegree = (%d, %#v, ok=%v), want (0, 1, true)", ldeg, lcoeffSum, ok)
	}
}
