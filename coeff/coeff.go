// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coeff implements spec.md §4.10's coefficient and degree
// extraction: viewing an evaluated term as a monomial (or a sum of
// monomials) in one distinguished variable, independent of whatever
// else the term contains. It builds only with a term.Builder, the same
// way diff does, leaving re-normalization of any combined coefficient
// to the caller's next Eval.
package coeff

import "maylib.dev/may/term"

// ExtractCoeffDeg views x as a monomial c*v^d and returns (c, d, true).
// It fails (false) when x cannot be read that way: v appears inside an
// opaque factor (a transcendental argument, a non-integer power of v,
// or alongside a Product factor that itself depends on v in some other
// shape). A term that doesn't mention v at all is its own coefficient
// at degree 0.
func ExtractCoeffDeg(b *term.Builder, x, v *term.Term) (*term.Term, int, bool) {
	var coeff, base *term.Term
	switch {
	case x.Tag() == term.TagFactor:
		coeff, base = x.Child(0), x.Child(1)
	case x.IsNumeric():
		return x, 0, true
	default:
		coeff, base = term.One(), x
	}

	if identical(base, v) {
		return coeff, 1, true
	}

	if base.Tag() == term.TagPower && identical(base.Child(0), v) {
		expo := base.Child(1)
		if expo.Tag() != term.TagInteger || !expo.Int().IsInt64() {
			return nil, 0, false
		}
		return coeff, int(expo.Int().Int64()), true
	}

	if base.Tag() == term.TagProduct {
		return extractFromProduct(b, coeff, base, v)
	}

	if containsVar(base, v) {
		return nil, 0, false
	}
	return x, 0, true
}

// extractFromProduct looks for a single factor of base that is v or
// v^INTEGER, requiring every other factor to be independent of v.
func extractFromProduct(b *term.Builder, coeff, base, v *term.Term) (*term.Term, int, bool) {
	n := base.ChildCount()
	for i := 0; i < n; i++ {
		local := base.Child(i)
		var deg int
		switch {
		case identical(local, v):
			deg = 1
		case local.Tag() == term.TagPower && identical(local.Child(0), v) &&
			local.Child(1).Tag() == term.TagInteger && local.Child(1).Int().IsInt64():
			deg = int(local.Child(1).Int().Int64())
		default:
			continue
		}
		for j := 0; j < n; j++ {
			if j != i && containsVar(base.Child(j), v) {
				return nil, 0, false
			}
		}
		rest := make([]*term.Term, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				rest = append(rest, base.Child(j))
			}
		}
		cc := productOf(b, rest)
		if !term.IsOneNumeric(coeff) {
			cc = b.FactorC(coeff, cc)
		}
		return cc, deg, true
	}
	if containsVar(base, v) {
		return nil, 0, false
	}
	raw := base
	if !term.IsOneNumeric(coeff) {
		raw = b.FactorC(coeff, base)
	}
	return raw, 0, true
}

func productOf(b *term.Builder, terms []*term.Term) *term.Term {
	if len(terms) == 0 {
		return term.One()
	}
	if len(terms) == 1 {
		return terms[0]
	}
	nb := b.NodeC(term.TagProduct, len(terms))
	for i, t := range terms {
		nb.SetAt(i, t)
	}
	return nb.CloseC(0)
}

func identical(a, v *term.Term) bool {
	return a.Tag() == term.TagSymbol && v.Tag() == term.TagSymbol && a.Name() == v.Name()
}

// containsVar reports whether v occurs anywhere inside t.
func containsVar(t, v *term.Term) bool {
	if t.Tag() == term.TagSymbol {
		return t.Name() == v.Name()
	}
	for i := 0; i < t.ChildCount(); i++ {
		if containsVar(t.Child(i), v) {
			return true
		}
	}
	return false
}

// sumTerms returns t's summands, or []*term.Term{t} when t isn't a Sum.
func sumTerms(t *term.Term) []*term.Term {
	if t.Tag() == term.TagSum {
		return t.Children()
	}
	return []*term.Term{t}
}

// collectByDegree buckets every summand of sum by its degree in v,
// folding coefficients at the same degree together with AddC. Fails if
// any summand can't be read as a monomial in v.
func collectByDegree(b *term.Builder, sum, v *term.Term) (map[int]*term.Term, bool) {
	byDeg := map[int]*term.Term{}
	for _, s := range sumTerms(sum) {
		c, d, ok := ExtractCoeffDeg(b, s, v)
		if !ok {
			return nil, false
		}
		if existing, found := byDeg[d]; found {
			byDeg[d] = b.AddC(existing, c)
		} else {
			byDeg[d] = c
		}
	}
	return byDeg, true
}

// Degree returns the greatest degree of sum in v, the raw (unevaluated)
// sum of every summand's coefficient at that degree, and that
// coefficient sum rebuilt as a monomial (coeff*v^degree). Fails when
// sum isn't expressible as monomials in v.
func Degree(b *term.Builder, sum, v *term.Term) (degree int, coeffSum, leader *term.Term, ok bool) {
	byDeg, ok := collectByDegree(b, sum, v)
	if !ok || len(byDeg) == 0 {
		return 0, nil, nil, false
	}
	best := 0
	first := true
	for d := range byDeg {
		if first || d > best {
			best, first = d, false
		}
	}
	return finish(b, v, best, byDeg[best])
}

// LDegree is Degree's least-degree counterpart.
func LDegree(b *term.Builder, sum, v *term.Term) (degree int, coeffSum, leader *term.Term, ok bool) {
	byDeg, ok := collectByDegree(b, sum, v)
	if !ok || len(byDeg) == 0 {
		return 0, nil, nil, false
	}
	best := 0
	first := true
	for d := range byDeg {
		if first || d < best {
			best, first = d, false
		}
	}
	return finish(b, v, best, byDeg[best])
}

func finish(b *term.Builder, v *term.Term, deg int, c *term.Term) (int, *term.Term, *term.Term, bool) {
	leader := b.MulC(c, b.PowC(v, b.IntC64(int64(deg))))
	return deg, c, leader, true
}
