// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sumacc

import (
	"math/big"
	"testing"

	"maylib.dev/may/arena"
	"maylib.dev/may/term"
)

func newBuilder(t *testing.T) *term.Builder {
	t.Helper()
	a := arena.New(1<<16, true)
	return term.NewBuilder(a)
}

func TestInsertMergesCollisions(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("x", 0)
	y := term.SymbolC("y", 0)

	tr := New(b)
	tr.Insert(term.One(), x)
	tr.Insert(b.IntC(big.NewInt(2)), x)
	tr.Insert(term.One(), y)

	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}
	sum := tr.GetSum(term.Zero())
	if sum.Tag() != term.TagSum || sum.ChildCount() != 2 {
		t.Fatalf("GetSum() = %#v, want a 2-child sum", sum)
	}
}

func TestGetSumCollapsesSingleton(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("solo", 0)

	tr := New(b)
	tr.Insert(term.One(), x)
	sum := tr.GetSum(term.Zero())
	if sum != x {
		t.Fatalf("GetSum() = %#v, want bare symbol x", sum)
	}
}

func TestGetSumDropsZeroCoefficient(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("z", 0)
	y := term.SymbolC("w", 0)

	tr := New(b)
	tr.Insert(term.One(), x)
	tr.Insert(term.NegOne(), x) // cancels to zero
	tr.Insert(term.One(), y)
	sum := tr.GetSum(term.Zero())
	if sum != y {
		t.Fatalf("GetSum() = %#v, want bare symbol y (x cancelled)", sum)
	}
}

func TestGetSumIncludesNumericAccumulator(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("v", 0)

	tr := New(b)
	tr.Insert(term.One(), x)
	sum := tr.GetSum(b.IntC(big.NewInt(3)))
	if sum.Tag() != term.TagSum || sum.ChildCount() != 2 {
		t.Fatalf("GetSum() = %#v, want numeric+symbol sum", sum)
	}
}

func TestGetSumEmptyIsZero(t *testing.T) {
	b := newBuilder(t)
	tr := New(b)
	if sum := tr.GetSum(term.Zero()); sum != term.Zero() {
		t.Fatalf("GetSum() on empty tree = %#v, want Zero()", sum)
	}
}
