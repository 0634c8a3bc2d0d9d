// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expand

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

// sumHasTerm reports whether the evaluated sum s has a child equal
// (under the kernel's total order) to want.
func sumHasTerm(s, want *term.Term) bool {
	if s.Tag() != term.TagSum {
		return term.Compare(s, want) == 0
	}
	for i := 0; i < s.ChildCount(); i++ {
		if term.Compare(s.Child(i), want) == 0 {
			return true
		}
	}
	return false
}

func TestExpandDistributesProduct(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("expx", 0)
	// (x+1)*(x+2) = x^2 + 3x + 2
	lhs := e.Eval(b.AddC(x, term.One()))
	rhs := e.Eval(b.AddC(x, b.IntC64(2)))
	prod := e.Eval(b.MulC(lhs, rhs))

	got := Expand(e, prod)
	if !got.IsExpanded() {
		t.Fatalf("Expand((x+1)(x+2)) result not marked Expanded: %#v", got)
	}
	if got.Tag() != term.TagSum || got.ChildCount() != 3 {
		t.Fatalf("Expand((x+1)(x+2)) = %#v, want 3-term sum", got)
	}
	xSquared := e.Eval(b.PowC(x, b.IntC64(2)))
	threeX := e.Eval(b.MulC(b.IntC64(3), x))
	if !sumHasTerm(got, xSquared) {
		t.Fatalf("missing x^2 term in %#v", got)
	}
	if !sumHasTerm(got, threeX) {
		t.Fatalf("missing 3x term in %#v", got)
	}
	if !sumHasTerm(got, b.IntC64(2)) {
		t.Fatalf("missing constant term in %#v", got)
	}
}

func TestExpandSquareOfSum(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	a := term.SymbolC("sqa", 0)
	c := term.SymbolC("sqb", 0)
	sum := e.Eval(b.AddC(a, c))
	sq := e.Eval(b.PowC(sum, b.IntC64(2)))

	got := Expand(e, sq)
	if got.Tag() != term.TagSum || got.ChildCount() != 3 {
		t.Fatalf("Expand((a+b)^2) = %#v, want 3-term sum", got)
	}
	aSquared := e.Eval(b.PowC(a, b.IntC64(2)))
	bSquared := e.Eval(b.PowC(c, b.IntC64(2)))
	cross := e.Eval(b.MulC(b.IntC64(2), b.MulC(a, c)))
	for _, want := range []*term.Term{aSquared, bSquared, cross} {
		if !sumHasTerm(got, want) {
			t.Fatalf("missing term %#v in %#v", want, got)
		}
	}
}

func TestExpandBinomialCube(t *testing.T) {
	// expand((1+x)^3) -> 1 + 3x + 3x^2 + x^3 (spec.md's acceptance example).
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("cubex", 0)
	base := e.Eval(b.AddC(term.One(), x))
	cube := e.Eval(b.PowC(base, b.IntC64(3)))

	got := Expand(e, cube)
	if got.Tag() != term.TagSum || got.ChildCount() != 4 {
		t.Fatalf("Expand((1+x)^3) = %#v, want 4-term sum", got)
	}
	want := []*term.Term{
		term.One(),
		e.Eval(b.MulC(b.IntC64(3), x)),
		e.Eval(b.MulC(b.IntC64(3), b.PowC(x, b.IntC64(2)))),
		e.Eval(b.PowC(x, b.IntC64(3))),
	}
	for _, w := range want {
		if !sumHasTerm(got, w) {
			t.Fatalf("missing term %#v in %#v", w, got)
		}
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("idemx", 0)
	base := e.Eval(b.AddC(x, term.One()))
	prod := e.Eval(b.MulC(base, base))

	once := Expand(e, prod)
	twice := Expand(e, once)
	if once != twice {
		t.Fatalf("Expand(Expand(t)) != Expand(t): %#v vs %#v", twice, once)
	}
}

func TestExpandLeavesNegativeExponentSumUnexpanded(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("negexpx", 0)
	base := e.Eval(b.AddC(x, term.One()))
	pow := e.Eval(b.PowC(base, b.NegC(b.IntC64(2))))

	got := Expand(e, pow)
	if !got.IsExpanded() {
		t.Fatal("result should be marked Expanded even when left structural")
	}
	if got.Tag() != term.TagPower || got.Child(0).Tag() != term.TagSum {
		t.Fatalf("Expand((x+1)^-2) = %#v, want an unexpanded power of a sum", got)
	}
}

func TestKroneckerMultiplyMatchesBasecase(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("kronx", 0)
	// (1 + 2x + 3x^2) * (4 - x + 5x^3)
	a := e.Eval(b.AddC(b.AddC(term.One(), b.MulC(b.IntC64(2), x)), b.MulC(b.IntC64(3), b.PowC(x, b.IntC64(2)))))
	c := e.Eval(b.AddC(b.AddC(b.IntC64(4), b.NegC(x)), b.MulC(b.IntC64(5), b.PowC(x, b.IntC64(3)))))

	viaKronecker, ok := kroneckerMultiply(e, a, c)
	if !ok {
		t.Fatal("kroneckerMultiply rejected a dense integer univariate pair")
	}
	viaBasecase := expandBasecase(e, []*term.Term{a, c}, a.ChildCount()*c.ChildCount())
	if term.Compare(viaKronecker, viaBasecase) != 0 {
		t.Fatalf("Kronecker result %#v != basecase result %#v", viaKronecker, viaBasecase)
	}
}

func TestUnivariateDenseIntegerPolyRejectsSymbolic(t *testing.T) {
	e := newEvaluator(t)
	b := e.B
	x := term.SymbolC("rejx", 0)
	y := term.SymbolC("rejy", 0)
	mixed := e.Eval(b.AddC(x, y))
	if _, _, ok := univariateDenseIntegerPoly(mixed); ok {
		t.Fatal("univariateDenseIntegerPoly accepted a two-variable sum")
	}
}

func TestFactorialTable(t *testing.T) {
	got := factorialTable(5)
	want := []int64{1, 1, 2, 6, 24, 120}
	for i, w := range want {
		if got[i].Cmp(big.NewInt(w)) != 0 {
			t.Fatalf("factorialTable(5)[%d] = %v, want %d", i, got[i], w)
		}
	}
}
