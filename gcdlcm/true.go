// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcdlcm

import (
	"maylib.dev/may/coeff"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/polydiv"
	"maylib.dev/may/term"
)

// EuclidGCD computes the univariate polynomial GCD of a and b in v by
// the plain Euclidean remainder sequence, normalized to monic (or to 1,
// for a purely numeric result) so repeated division by the result
// behaves consistently. Returns nil if a division along the way fails.
func EuclidGCD(e *eval.Evaluator, a, b, v *term.Term) *term.Term {
	aCur, bCur := expand.Expand(e, a), expand.Expand(e, b)
	for !term.IsZeroNumeric(bCur) {
		_, r, ok := polydiv.DivQR(e, aCur, bCur, v)
		if !ok {
			return nil
		}
		aCur, bCur = bCur, r
	}
	return monic(e, aCur, v)
}

// monic normalizes g by its leading coefficient in v, so a nonzero
// numeric result becomes exactly 1 and a polynomial result has leading
// coefficient 1.
func monic(e *eval.Evaluator, g, v *term.Term) *term.Term {
	if term.IsZeroNumeric(g) {
		return g
	}
	if g.IsNumeric() {
		return term.One()
	}
	_, lead, _, ok := coeff.Degree(e.B, g, v)
	if !ok || term.IsZeroNumeric(lead) {
		return g
	}
	return expand.Expand(e, e.Eval(e.B.DivC(g, lead)))
}

// TrueGCD folds EuclidGCD pairwise across terms, univariate in v.
// Callers with more than one shared variable should fall back to
// NaiveGCD, which is structural rather than remainder-sequence based
// and so needs no single distinguished variable.
func TrueGCD(e *eval.Evaluator, terms []*term.Term, v *term.Term) *term.Term {
	nonZero := filterNonZero(terms)
	if len(nonZero) == 0 {
		return term.Zero()
	}
	g := expand.Expand(e, nonZero[0])
	for _, t := range nonZero[1:] {
		g = EuclidGCD(e, g, t, v)
		if g == nil {
			return nil
		}
	}
	return g
}

// TrueLCM folds lcm(a,b) = a*(b/gcd(a,b)) pairwise across terms,
// univariate in v.
func TrueLCM(e *eval.Evaluator, terms []*term.Term, v *term.Term) *term.Term {
	nonZero := filterNonZero(terms)
	if len(nonZero) == 0 {
		return term.Zero()
	}
	lcm := expand.Expand(e, nonZero[0])
	for _, t := range nonZero[1:] {
		g := EuclidGCD(e, lcm, t, v)
		if g == nil || term.IsZeroNumeric(g) {
			return nil
		}
		quot, ok := polydiv.DivExact(e, t, g)
		if !ok {
			return nil
		}
		lcm = e.Eval(e.B.MulC(lcm, quot))
	}
	return lcm
}
