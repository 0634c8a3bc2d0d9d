// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polydiv

import (
	"sort"

	"maylib.dev/may/coeff"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/term"
)

// DivQRMulti divides a by b under lex order on vars, returning (q, r,
// true) with a = q*b + r. At each step it picks a's lex-leading
// monomial; if that monomial's per-variable degree vector dominates
// b's leading degree vector componentwise, the matching multiple of b
// is subtracted into the quotient, otherwise the leading monomial is
// moved straight into the remainder and removed from a.
func DivQRMulti(e *eval.Evaluator, a, b *term.Term, vars []*term.Term) (q, r *term.Term, ok bool) {
	bld := e.B
	bExp := expand.Expand(e, b)
	if bExp.IsNumeric() {
		if term.IsZeroNumeric(bExp) {
			return nil, nil, false
		}
		return e.Eval(bld.DivC(a, bExp)), term.Zero(), true
	}

	_, degB, coeffB, ok := leadingMonomial(bld, bExp, vars)
	if !ok {
		return nil, nil, false
	}

	aCur := expand.Expand(e, a)
	var qTerms, rTerms []*term.Term
	mark := bld.A.Mark()
	steps := 0
	for !term.IsZeroNumeric(aCur) {
		leaderA, degA, coeffA, ok := leadingMonomial(bld, aCur, vars)
		if !ok {
			return nil, nil, false
		}
		if dominates(degA, degB) {
			divCoeff := e.Eval(bld.DivC(coeffA, coeffB))
			monFactor := monomialFromDegrees(bld, vars, subtractDegrees(degA, degB))
			div := e.Eval(bld.MulC(divCoeff, monFactor))
			qTerms = append(qTerms, div)
			sub := e.Eval(bld.MulC(div, bExp))
			aCur = expand.Expand(e, e.Eval(bld.SubC(aCur, sub)))
		} else {
			rTerms = append(rTerms, leaderA)
			aCur = expand.Expand(e, e.Eval(bld.SubC(aCur, leaderA)))
		}

		steps++
		if steps%10 == 0 {
			aCur = bld.A.Keep(mark, aCur).(*term.Term)
		}
	}

	return e.Eval(sumOf(bld, qTerms)), e.Eval(sumOf(bld, rTerms)), true
}

// leadingMonomial returns the summand of poly whose multidegree (under
// vars, in order) is lexicographically greatest, along with that degree
// vector and the coefficient left over once every var is peeled off.
func leadingMonomial(b *term.Builder, poly *term.Term, vars []*term.Term) (leader *term.Term, deg []int, coeff *term.Term, ok bool) {
	found := false
	var bestDeg []int
	var bestTerm, bestCoeff *term.Term
	for _, s := range sumTerms(poly) {
		d, c, ok2 := multidegree(b, s, vars)
		if !ok2 {
			return nil, nil, nil, false
		}
		if !found || cmpDegrees(d, bestDeg) > 0 {
			found, bestDeg, bestTerm, bestCoeff = true, d, s, c
		}
	}
	if !found {
		return nil, nil, nil, false
	}
	return bestTerm, bestDeg, bestCoeff, true
}

// multidegree peels vars off s in order, returning the per-variable
// degree vector and whatever coefficient remains once every var is
// extracted.
func multidegree(b *term.Builder, s *term.Term, vars []*term.Term) ([]int, *term.Term, bool) {
	deg := make([]int, len(vars))
	c := s
	for i, v := range vars {
		cc, d, ok := coeff.ExtractCoeffDeg(b, c, v)
		if !ok || d < 0 {
			return nil, nil, false
		}
		deg[i] = d
		c = cc
	}
	return deg, c, true
}

func cmpDegrees(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func dominates(a, b []int) bool {
	for i := range a {
		if a[i] < b[i] {
			return false
		}
	}
	return true
}

func subtractDegrees(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func monomialFromDegrees(b *term.Builder, vars []*term.Term, degs []int) *term.Term {
	result := term.One()
	first := true
	for i, v := range vars {
		if degs[i] == 0 {
			continue
		}
		factor := b.PowC(v, b.IntC64(int64(degs[i])))
		if first {
			result, first = factor, false
		} else {
			result = b.MulC(result, factor)
		}
	}
	return result
}

// collectSymbols returns the distinct symbols appearing in t, ordered
// by name for a deterministic lex order.
func collectSymbols(t *term.Term) []*term.Term {
	seen := map[string]*term.Term{}
	var names []string
	var walk func(*term.Term)
	walk = func(x *term.Term) {
		if x.Tag() == term.TagSymbol {
			if _, ok := seen[x.Name()]; !ok {
				seen[x.Name()] = x
				names = append(names, x.Name())
			}
			return
		}
		for i := 0; i < x.ChildCount(); i++ {
			walk(x.Child(i))
		}
	}
	walk(t)
	sort.Strings(names)
	out := make([]*term.Term, len(names))
	for i, n := range names {
		out[i] = seen[n]
	}
	return out
}
