// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polydiv

import (
	"maylib.dev/may/coeff"
	"maylib.dev/may/term"
)

// denseCoeffs decomposes an expanded polynomial into a coefficient
// array indexed by non-negative degree in v, zero-filling any gaps.
// Fails when poly isn't expressible as monomials in v, or when any
// monomial's degree in v is negative (division works over ordinary,
// not Laurent, polynomials).
func denseCoeffs(b *term.Builder, poly, v *term.Term) ([]*term.Term, bool) {
	byDeg := map[int]*term.Term{}
	maxDeg := 0
	for _, s := range sumTerms(poly) {
		c, d, ok := coeff.ExtractCoeffDeg(b, s, v)
		if !ok || d < 0 {
			return nil, false
		}
		if existing, found := byDeg[d]; found {
			byDeg[d] = b.AddC(existing, c)
		} else {
			byDeg[d] = c
		}
		if d > maxDeg {
			maxDeg = d
		}
	}
	coeffs := make([]*term.Term, maxDeg+1)
	for i := range coeffs {
		coeffs[i] = term.Zero()
	}
	for d, c := range byDeg {
		coeffs[d] = c
	}
	return coeffs, true
}

// coeffsToPoly rebuilds a raw (unevaluated) sum of coeff*v^k terms from
// a dense coefficient array, skipping zero entries. The caller runs the
// result through Eval.
func coeffsToPoly(b *term.Builder, v *term.Term, coeffs []*term.Term) *term.Term {
	var terms []*term.Term
	for k, c := range coeffs {
		if c == nil || term.IsZeroNumeric(c) {
			continue
		}
		vk := b.PowC(v, b.IntC64(int64(k)))
		terms = append(terms, b.MulC(c, vk))
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

// sumTerms returns t's summands, or []*term.Term{t} when t isn't a Sum.
func sumTerms(t *term.Term) []*term.Term {
	if t.Tag() == term.TagSum {
		return t.Children()
	}
	return []*term.Term{t}
}

// sumOf folds terms into a raw (unevaluated) sum, Zero() if empty.
func sumOf(b *term.Builder, terms []*term.Term) *term.Term {
	if len(terms) == 0 {
		return term.Zero()
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = b.AddC(result, t)
	}
	return result
}
