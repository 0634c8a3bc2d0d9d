// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcdlcm

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

func TestNaiveGCDNumeric(t *testing.T) {
	e := newEvaluator(t)
	got := NaiveGCD(e, []*term.Term{e.B.IntC64(4), e.B.IntC64(6)})
	if term.Compare(got, e.B.IntC64(2)) != 0 {
		t.Fatalf("NaiveGCD(4, 6) = %#v, want 2", got)
	}
}

func TestNaiveGCDSharedBase(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("ngx", 0)
	y := term.SymbolC("ngy", 0)
	// x^2*y and x^3 share only x, at the lesser exponent 2.
	t1 := e.Eval(b.MulC(b.PowC(x, b.IntC64(2)), y))
	t2 := e.Eval(b.PowC(x, b.IntC64(3)))

	got := NaiveGCD(e, []*term.Term{t1, t2})
	want := e.Eval(b.PowC(x, b.IntC64(2)))
	if term.Compare(got, want) != 0 {
		t.Fatalf("NaiveGCD(x^2*y, x^3) = %#v, want x^2", got)
	}
}

func TestNaiveLCMSharedBase(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("nlx", 0)
	y := term.SymbolC("nly", 0)
	t1 := e.Eval(b.PowC(x, b.IntC64(2)))
	t2 := e.Eval(b.MulC(b.PowC(x, b.IntC64(3)), y))

	got := NaiveLCM(e, []*term.Term{t1, t2})
	want := e.Eval(b.MulC(b.PowC(x, b.IntC64(3)), y))
	if term.Compare(got, want) != 0 {
		t.Fatalf("NaiveLCM(x^2, x^3*y) = %#v, want x^3*y", got)
	}
}

func TestEuclidGCDRepeatedRoot(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("egx", 0)
	// gcd((x-1)^2, 2x-2) = x-1 (monic, not 2x-2 or any other scalar).
	xm1 := e.Eval(b.SubC(x, term.One()))
	a := e.Eval(b.PowC(xm1, b.IntC64(2)))
	bb := e.Eval(b.MulC(b.IntC64(2), xm1))

	got := EuclidGCD(e, a, bb, x)
	if term.Compare(got, xm1) != 0 {
		t.Fatalf("EuclidGCD((x-1)^2, 2x-2) = %#v, want x-1", got)
	}
}

func TestTrueLCMFromGCDIdentity(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("tlx", 0)
	xm1 := e.Eval(b.SubC(x, term.One()))
	xp1 := e.Eval(b.AddC(x, term.One()))
	// lcm(x^2-1, x-1) = x^2-1.
	a := e.Eval(b.MulC(xm1, xp1))
	want := expand.Expand(e, a)

	got := TrueLCM(e, []*term.Term{a, xm1}, x)
	if term.Compare(got, want) != 0 {
		t.Fatalf("TrueLCM(x^2-1, x-1) = %#v, want x^2-1", got)
	}
}

func TestSquareFreeYunRepeatedRoot(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("syx", 0)
	xm1 := e.Eval(b.SubC(x, term.One()))
	p := e.Eval(b.PowC(xm1, b.IntC64(2)))

	got, ok := SquareFreeYun(e, p, x)
	if !ok {
		t.Fatal("SquareFreeYun rejected (x-1)^2")
	}
	if term.Compare(got, p) != 0 {
		t.Fatalf("SquareFreeYun((x-1)^2) = %#v, want (x-1)^2", got)
	}
}
