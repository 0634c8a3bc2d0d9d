// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"math/big"
	"testing"

	"maylib.dev/may/arena"
	"maylib.dev/may/term"
)

func newBuilder(t *testing.T) *term.Builder {
	t.Helper()
	return term.NewBuilder(arena.New(1<<16, true))
}

func TestDiffNumericIsZero(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("x", 0)
	if got := Diff(b, b.IntC(big.NewInt(5)), x); !term.IsZeroNumeric(got) {
		t.Fatalf("Diff(5, x) = %#v, want 0", got)
	}
}

func TestDiffSymbolWithRespectToItself(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("diffself", 0)
	if got := Diff(b, x, x); !term.IsOneNumeric(got) {
		t.Fatalf("Diff(x, x) = %#v, want 1", got)
	}
}

func TestDiffSymbolWithRespectToOther(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("dwrtx", 0)
	y := term.SymbolC("dwrty", 0)
	if got := Diff(b, x, y); !term.IsZeroNumeric(got) {
		t.Fatalf("Diff(x, y) = %#v, want 0", got)
	}
}

func TestDiffPowerSimpleRule(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("dpow", 0)
	// d/dx x^3 = 3 * x^2 * 1 (unevaluated structurally, but non-zero)
	x3 := b.PowC(x, b.IntC(big.NewInt(3)))
	got := Diff(b, x3, x)
	if term.IsZeroNumeric(got) {
		t.Fatal("Diff(x^3, x) should not be zero")
	}
}

func TestIndependentOf(t *testing.T) {
	x := term.SymbolC("indepx", 0)
	y := term.SymbolC("indepy", 0)
	if !IndependentOf(y, x) {
		t.Fatal("y should be independent of x")
	}
	if IndependentOf(x, x) {
		t.Fatal("x should not be independent of itself")
	}
}

func TestDiffSumIsElementwise(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("sumx", 0)
	y := term.SymbolC("sumy", 0)
	sum := b.AddC(x, y)
	got := Diff(b, sum, x)
	if term.IsZeroNumeric(got) {
		t.Fatal("Diff(x+y, x) should not be zero")
	}
}
