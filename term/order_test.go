// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term_test

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

// TestNumCmpCrossType checks that NumCmp orders integers, rationals and
// floats by real value regardless of which representation each side
// happens to be in, the numeric-tower analogue of the teacher's
// cross-type orderedCompare table in order_test.go.
func TestNumCmpCrossType(t *testing.T) {
	b := newBuilder(t)
	one := b.IntC64(1)
	oneRat := b.RatC(big.NewInt(1), big.NewInt(1))
	oneFloat := b.FloatC(big.NewFloat(1.0))
	two := b.IntC64(2)
	half := b.RatC(big.NewInt(1), big.NewInt(2))

	tests := []struct {
		name string
		x, y *term.Term
		want int
	}{
		{"int==int", one, b.IntC64(1), 0},
		{"int<int", one, two, -1},
		{"int>int", two, one, 1},
		{"int==rat", one, oneRat, 0},
		{"int==float", one, oneFloat, 0},
		{"rat==float", oneRat, oneFloat, 0},
		{"rat<int", half, one, -1},
		{"int>rat", one, half, 1},
		{"float<int", b.FloatC(big.NewFloat(0.5)), one, -1},
	}
	for _, tc := range tests {
		if got := term.NumCmp(tc.x, tc.y); got != tc.want {
			t.Errorf("NumCmp(%s) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

// TestCompareNumericMagnitude checks term.Compare's numeric class,
// which orders by magnitude (it is a canonical-form total order, not a
// signed-value order — see term/order.go's compareNumericMagnitude):
// a negative and its positive counterpart of equal magnitude compare
// equal, the one place this total order deliberately diverges from
// NumCmp.
func TestCompareNumericMagnitude(t *testing.T) {
	b := newBuilder(t)
	negOne := b.NumNeg(b.IntC64(1), term.DefaultPrecision)
	one := b.IntC64(1)
	two := b.IntC64(2)

	if c := term.Compare(one, negOne); c != 0 {
		t.Errorf("Compare(1, -1) = %d, want 0 (equal magnitude)", c)
	}
	if c := term.Compare(one, two); c >= 0 {
		t.Errorf("Compare(1, 2) = %d, want negative", c)
	}
	if c := term.Compare(two, one); c <= 0 {
		t.Errorf("Compare(2, 1) = %d, want positive", c)
	}
}

// TestCompareClassRank checks the coarse class ordering of §3.3:
// numeric < symbol < product < sum < power, mirroring the teacher's
// "vector bigger than every type" / "matrix bigger than every type"
// blanket-dominance assertions, adapted to this kernel's node classes
// (there are no vector/matrix leaves here — §1's non-goals exclude the
// array-language surface entirely).
func TestCompareClassRank(t *testing.T) {
	b := newBuilder(t)
	x := term.SymbolC("ordx", 0)
	y := term.SymbolC("ordy", 0)
	sum := b.AddC(x, term.One())
	product := b.MulC(x, y)
	power := b.PowC(x, b.IntC64(2))

	less := []struct {
		name string
		a, z *term.Term
	}{
		{"numeric<symbol", term.One(), x},
		{"symbol<product", x, product},
		{"product<sum", product, sum},
		{"sum<power", sum, power},
	}
	for _, tc := range less {
		if c := term.Compare(tc.a, tc.z); c >= 0 {
			t.Errorf("Compare(%s) = %d, want negative", tc.name, c)
		}
		if c := term.Compare(tc.z, tc.a); c <= 0 {
			t.Errorf("Compare(%s reversed) = %d, want positive", tc.name, c)
		}
	}
}

func TestCompareSymbolsByName(t *testing.T) {
	a := term.SymbolC("ordalpha", 0)
	z := term.SymbolC("ordzeta", 0)
	if term.Compare(a, z) >= 0 {
		t.Errorf("Compare(alpha, zeta) should be negative")
	}
	if term.Compare(a, a) != 0 {
		t.Errorf("Compare(alpha, alpha) should be 0")
	}
}
