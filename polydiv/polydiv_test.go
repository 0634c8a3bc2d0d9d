// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polydiv

import (
	"testing"

	"maylib.dev/may/arena"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/frame"
	"maylib.dev/may/term"
)

func newEvaluator(t *testing.T) *eval.Evaluator {
	t.Helper()
	b := term.NewBuilder(arena.New(1<<18, true))
	return eval.New(frame.New(), b)
}

func TestDivQRUnivariateExact(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("pdqx", 0)
	// (x^2 - 1) / (x - 1) = x + 1, remainder 0.
	a := e.Eval(b.SubC(b.PowC(x, b.IntC64(2)), term.One()))
	divisor := e.Eval(b.SubC(x, term.One()))

	q, r, ok := DivQR(e, a, divisor, x)
	if !ok {
		t.Fatal("DivQR rejected (x^2-1)/(x-1)")
	}
	want := e.Eval(b.AddC(x, term.One()))
	if term.Compare(q, want) != 0 {
		t.Fatalf("q = %#v, want x+1", q)
	}
	if !term.IsZeroNumeric(r) {
		t.Fatalf("r = %#v, want 0", r)
	}
}

func TestDivQRUnivariateWithRemainder(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("pdrx", 0)
	// (x^2 + 1) / (x - 1) = x + 1, remainder 2.
	a := e.Eval(b.AddC(b.PowC(x, b.IntC64(2)), term.One()))
	divisor := e.Eval(b.SubC(x, term.One()))

	q, r, ok := DivQR(e, a, divisor, x)
	if !ok {
		t.Fatal("DivQR rejected (x^2+1)/(x-1)")
	}
	wantQ := e.Eval(b.AddC(x, term.One()))
	if term.Compare(q, wantQ) != 0 {
		t.Fatalf("q = %#v, want x+1", q)
	}
	if term.Compare(r, b.IntC64(2)) != 0 {
		t.Fatalf("r = %#v, want 2", r)
	}
	// Reconstruct a = q*b + r and check it matches the original.
	rebuilt := expand.Expand(e, e.Eval(b.AddC(b.MulC(q, divisor), r)))
	if term.Compare(rebuilt, a) != 0 {
		t.Fatalf("q*b+r = %#v, want %#v", rebuilt, a)
	}
}

func TestDivQRDegreeShortCircuit(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("pdsx", 0)
	a := e.Eval(x)
	divisor := e.Eval(b.PowC(x, b.IntC64(3)))

	q, r, ok := DivQR(e, a, divisor, x)
	if !ok || !term.IsZeroNumeric(q) || term.Compare(r, a) != 0 {
		t.Fatalf("DivQR(x, x^3) = (%#v, %#v, %v), want (0, x, true)", q, r, ok)
	}
}

func TestDivQRXExpSplitsByDegree(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("pdxx", 0)
	// x^3 + 2x, split by x^2: q = x, r = 2x.
	a := e.Eval(b.AddC(b.PowC(x, b.IntC64(3)), b.MulC(b.IntC64(2), x)))

	q, r := DivQRXExp(e, a, x, 2)
	if term.Compare(q, e.Eval(x)) != 0 {
		t.Fatalf("q = %#v, want x", q)
	}
	want := e.Eval(b.MulC(b.IntC64(2), x))
	if term.Compare(r, want) != 0 {
		t.Fatalf("r = %#v, want 2x", r)
	}
}

func TestDivExactSucceedsAndFails(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("dex", 0)
	a := e.Eval(b.SubC(b.PowC(x, b.IntC64(2)), term.One()))
	divisor := e.Eval(b.SubC(x, term.One()))

	q, ok := DivExact(e, a, divisor)
	if !ok {
		t.Fatal("DivExact rejected an exact division")
	}
	want := e.Eval(b.AddC(x, term.One()))
	if term.Compare(q, want) != 0 {
		t.Fatalf("q = %#v, want x+1", q)
	}

	notDivisor := e.Eval(b.AddC(x, b.IntC64(5)))
	if _, ok := DivExact(e, a, notDivisor); ok {
		t.Fatal("DivExact accepted a non-exact division")
	}
}

func TestDivQRMultivariate(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("mvx", 0)
	y := term.SymbolC("mvy", 0)
	// (x+1)(y+1) / (x+1) = y+1, remainder 0.
	a := e.Eval(b.MulC(b.AddC(x, term.One()), b.AddC(y, term.One())))
	divisor := e.Eval(b.AddC(x, term.One()))

	q, r, ok := DivQRMulti(e, a, divisor, []*term.Term{x, y})
	if !ok {
		t.Fatal("DivQRMulti rejected (x+1)(y+1)/(x+1)")
	}
	want := e.Eval(b.AddC(y, term.One()))
	if term.Compare(q, want) != 0 {
		t.Fatalf("q = %#v, want y+1", q)
	}
	if !term.IsZeroNumeric(r) {
		t.Fatalf("r = %#v, want 0", r)
	}
}
