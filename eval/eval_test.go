// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"math/big"
	"testing"

	"maylib.dev/may/arena"
	"maylib.dev/may/frame"
	"maylib.dev/may/term"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	b := term.NewBuilder(arena.New(1<<16, true))
	return New(frame.New(), b)
}

func TestEvalFlattensAndMergesSum(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evalsumx", 0)
	// (x + x) + 3 should become factor(2,x) + 3, a 2-child sum.
	xx := e.B.AddC(x, x)
	three := e.B.IntC(big.NewInt(3))
	got := e.Eval(e.B.AddC(xx, three))
	if got.Tag() != term.TagSum || got.ChildCount() != 2 {
		t.Fatalf("Eval(x+x+3) = %#v, want 2-child sum", got)
	}
}

func TestEvalMergesProductExponents(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evalprodx", 0)
	xx := e.Eval(e.B.MulC(x, x))
	if xx.Tag() != term.TagPower {
		t.Fatalf("Eval(x*x) = %#v, want x^2", xx)
	}
	if xx.Child(1).Tag() != term.TagInteger || xx.Child(1).Int().Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("Eval(x*x) exponent = %#v, want 2", xx.Child(1))
	}
}

func TestEvalPowerOne(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evalpow1", 0)
	got := e.Eval(e.B.PowC(x, term.One()))
	if got != x {
		t.Fatalf("Eval(x^1) = %#v, want x", got)
	}
}

func TestEvalIdentityCosZero(t *testing.T) {
	e := newEvaluator(t)
	got := e.Eval(e.B.CosC(term.Zero()))
	if !term.IsOneNumeric(got) {
		t.Fatalf("Eval(cos(0)) = %#v, want 1", got)
	}
}

func TestEvalIdentitySinPi(t *testing.T) {
	e := newEvaluator(t)
	got := e.Eval(e.B.SinC(term.Pi()))
	if !term.IsZeroNumeric(got) {
		t.Fatalf("Eval(sin(pi)) = %#v, want 0", got)
	}
}

func TestEvalIdentityExpLog(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evalexplog", 0)
	got := e.Eval(e.B.ExpC(e.B.LogC(x)))
	if got != x {
		t.Fatalf("Eval(exp(log(x))) = %#v, want x", got)
	}
}

func TestEvalModulusReducesIntegers(t *testing.T) {
	f := frame.New()
	f.SetModulus(big.NewInt(5))
	b := term.NewBuilder(arena.New(1<<16, true))
	e := New(f, b)
	got := e.Eval(b.IntC(big.NewInt(7)))
	if got.Int().Cmp(big.NewInt(2)) != 0 {
		t.Fatalf("Eval(7) under mod 5 = %v, want 2", got.Int())
	}
}

func TestEvalDiffNodeFirstOrder(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evaldiffx", 0)
	x3 := e.B.PowC(x, e.B.IntC64(3))
	d := e.B.DiffC(x3, x, 1, nil)
	got := e.Eval(d)
	if term.IsZeroNumeric(got) {
		t.Fatal("Eval(diff(x^3, x, 1, nil)) should not be zero")
	}
}

func TestEvalIsIdempotent(t *testing.T) {
	e := newEvaluator(t)
	x := term.SymbolC("evalidempx", 0)
	once := e.Eval(e.B.AddC(x, x))
	twice := e.Eval(once)
	if once != twice {
		t.Fatalf("Eval(Eval(t)) != Eval(t): %#v vs %#v", twice, once)
	}
}
