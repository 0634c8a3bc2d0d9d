// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expand

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"

	"maylib.dev/may/eval"
	"maylib.dev/may/term"
)

// kroneckerMultiply implements step 5: multiply two sparse integer
// univariates a(x)*b(x) in the same variable by evaluating each at
// x = 2^n for an n wide enough that the convolved coefficients can't
// collide, multiplying the resulting big integers, then slicing the
// product back into signed base-2^n digits. Returns false when either
// operand isn't a dense-enough integer univariate in a shared
// variable, so the caller can fall back to pairwise accumulation.
func kroneckerMultiply(e *eval.Evaluator, aTerm, bTerm *term.Term) (*term.Term, bool) {
	v, coeffsA, ok := univariateDenseIntegerPoly(aTerm)
	if !ok {
		return nil, false
	}
	v2, coeffsB, ok := univariateDenseIntegerPoly(bTerm)
	if !ok || (v2 != nil && v != nil && v2.Name() != v.Name()) {
		return nil, false
	}
	if v == nil {
		v = v2
	}
	if v == nil {
		return nil, false
	}

	degA, degB := len(coeffsA)-1, len(coeffsB)-1
	maxAbsA, maxAbsB := maxAbs(coeffsA), maxAbs(coeffsB)
	if maxAbsA.Sign() == 0 || maxAbsB.Sign() == 0 {
		return nil, false
	}
	minDeg := degA
	if degB < minDeg {
		minDeg = degB
	}
	bound := new(big.Int).Mul(big.NewInt(int64(1+minDeg)), maxAbsA)
	bound.Mul(bound, maxAbsB)
	n := uint(bound.BitLen()) + 2
	// Guard against a pathological evaluation point: when the chosen
	// bit width would make the Kronecker point impractically large,
	// fall back rather than spend enormous time/memory on it.
	if n > 1<<22 {
		return nil, false
	}

	A := evalAtKroneckerPoint(coeffsA, n)
	B := evalAtKroneckerPoint(coeffsB, n)
	P := bigfft.Mul(A, B)
	coeffs := decodeKroneckerDigits(P, n, degA+degB+1)

	b := e.B
	return b.SealExpanded(e.Eval(polyToSum(b, v, coeffs))), true
}

// evalAtKroneckerPoint computes sum(coeffs[i] * 2^(i*n)) via Horner's
// method; exact regardless of the sign of individual coefficients.
func evalAtKroneckerPoint(coeffs []*big.Int, n uint) *big.Int {
	result := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result.Lsh(result, n)
		result.Add(result, coeffs[i])
	}
	return result
}

// decodeKroneckerDigits recovers count signed base-2^n digits of P,
// low order first: each digit is P mod 2^n, reinterpreted into
// [-2^(n-1), 2^(n-1)) when the unsigned residue is at least half the
// modulus, with the corresponding borrow folded into P before moving
// to the next digit.
func decodeKroneckerDigits(P *big.Int, n uint, count int) []*big.Int {
	modulus := new(big.Int).Lsh(big.NewInt(1), n)
	half := new(big.Int).Lsh(big.NewInt(1), n-1)
	p := new(big.Int).Set(P)
	out := make([]*big.Int, count)
	for i := 0; i < count; i++ {
		r := new(big.Int).Mod(p, modulus)
		if r.Cmp(half) >= 0 {
			r.Sub(r, modulus)
		}
		out[i] = r
		p.Sub(p, r)
		p.Rsh(p, n)
	}
	return out
}

// polyToSum rebuilds an unevaluated sum of coeff*v^k terms from a
// dense coefficient array, skipping zero coefficients. The caller is
// expected to run the result through Eval.
func polyToSum(b *term.Builder, v *term.Term, coeffs []*big.Int) *term.Term {
	var terms []*term.Term
	for k, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		vk := b.PowC(v, b.IntC64(int64(k)))
		terms = append(terms, b.FactorC(b.IntC(c), vk))
	}
	if len(terms) == 0 {
		return term.Zero()
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = b.AddC(result, t)
	}
	return result
}

func maxAbs(coeffs []*big.Int) *big.Int {
	m := big.NewInt(0)
	for _, c := range coeffs {
		a := new(big.Int).Abs(c)
		if a.Cmp(m) > 0 {
			m = a
		}
	}
	return m
}

// univariateDenseIntegerPoly reports whether t (a canonical sum, or a
// single monomial) is a sum of integer-coefficient monomials in at
// most one shared symbol, returning that symbol (nil if t is purely
// numeric) and the dense coefficient array indexed by degree.
func univariateDenseIntegerPoly(t *term.Term) (*term.Term, []*big.Int, bool) {
	var terms []*term.Term
	if t.Tag() == term.TagSum {
		terms = t.Children()
	} else {
		terms = []*term.Term{t}
	}

	var v *term.Term
	entries := map[int]*big.Int{}
	maxDeg := 0
	for _, s := range terms {
		coeff, exp, sym, ok := monomialOf(s)
		if !ok {
			return nil, nil, false
		}
		if sym != nil {
			if v == nil {
				v = sym
			} else if v.Name() != sym.Name() {
				return nil, nil, false
			}
		}
		if exp > maxDeg {
			maxDeg = exp
		}
		entries[exp] = coeff
	}
	coeffs := make([]*big.Int, maxDeg+1)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
	}
	for exp, c := range entries {
		coeffs[exp] = c
	}
	return v, coeffs, true
}

// monomialOf decomposes a single sum term into (integer coefficient,
// non-negative integer degree, variable symbol) form, reporting false
// for anything that isn't an integer multiple of v^k for a single
// symbol v (or a bare integer constant, degree 0, symbol nil).
func monomialOf(s *term.Term) (coeff *big.Int, exp int, sym *term.Term, ok bool) {
	switch {
	case s.IsNumeric():
		if s.Tag() != term.TagInteger {
			return nil, 0, nil, false
		}
		return s.Int(), 0, nil, true
	case s.Tag() == term.TagSymbol:
		return big.NewInt(1), 1, s, true
	case s.Tag() == term.TagPower:
		base, expo := s.Child(0), s.Child(1)
		if base.Tag() != term.TagSymbol || expo.Tag() != term.TagInteger || expo.Int().Sign() < 0 || !expo.Int().IsInt64() {
			return nil, 0, nil, false
		}
		return big.NewInt(1), int(expo.Int().Int64()), base, true
	case s.Tag() == term.TagFactor:
		c, base := s.Child(0), s.Child(1)
		if c.Tag() != term.TagInteger {
			return nil, 0, nil, false
		}
		switch {
		case base.Tag() == term.TagSymbol:
			return c.Int(), 1, base, true
		case base.Tag() == term.TagPower && base.Child(0).Tag() == term.TagSymbol &&
			base.Child(1).Tag() == term.TagInteger && base.Child(1).Int().Sign() >= 0 && base.Child(1).Int().IsInt64():
			return c.Int(), int(base.Child(1).Int().Int64()), base.Child(0), true
		}
	}
	return nil, 0, nil, false
}
