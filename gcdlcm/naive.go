// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcdlcm

import (
	"maylib.dev/may/eval"
	"maylib.dev/may/polydiv"
	"maylib.dev/may/term"
)

// factorOutOwnGCD pulls t's own naive GCD out of itself when t is a sum,
// so a later caller folding t against other terms sees its structure
// through a Factor(gcd, rest) shape rather than a flat sum. Mirrors
// may_naive_gcd's el = el * (tab[0]/el) step in gcd1.c.
func factorOutOwnGCD(e *eval.Evaluator, t *term.Term) *term.Term {
	if t.Tag() != term.TagSum {
		return t
	}
	g := NaiveGCD(e, t.Children())
	if term.IsOneNumeric(g) {
		return t
	}
	rest, ok := polydiv.DivExact(e, t, g)
	if !ok {
		return t
	}
	return e.Eval(e.B.MulC(g, rest))
}

func intersectMinExponents(b *term.Builder, bases1, expos1, bases2, expos2 []*term.Term) ([]*term.Term, []*term.Term) {
	var bases, expos []*term.Term
	for i, base := range bases1 {
		for j, base2 := range bases2 {
			if term.Compare(base, base2) == 0 {
				m := naiveGCE(b, expos1[i], expos2[j])
				if !term.IsZeroNumeric(m) {
					bases = append(bases, base)
					expos = append(expos, m)
				}
				break
			}
		}
	}
	return bases, expos
}

func unionMaxExponents(b *term.Builder, bases1, expos1, bases2, expos2 []*term.Term) ([]*term.Term, []*term.Term) {
	bases := append([]*term.Term{}, bases1...)
	expos := append([]*term.Term{}, expos1...)
	used2 := make([]bool, len(bases2))
	for i, base := range bases {
		for j, base2 := range bases2 {
			if used2[j] {
				continue
			}
			if term.Compare(base, base2) == 0 {
				expos[i] = naiveLCE(b, expos[i], expos2[j])
				used2[j] = true
				break
			}
		}
	}
	for j, base2 := range bases2 {
		if !used2[j] {
			bases = append(bases, base2)
			expos = append(expos, expos2[j])
		}
	}
	return bases, expos
}

// NaiveGCD folds terms into num*prod(base^expo) by merging numeric
// parts with a numeric GCD and intersecting non-numeric base sets,
// keeping the minimum exponent per shared base. Grounded on
// original_source/gcd1.c's may_naive_gcd.
func NaiveGCD(e *eval.Evaluator, terms []*term.Term) *term.Term {
	b := e.B
	nonZero := filterNonZero(terms)
	if len(nonZero) == 0 {
		return term.Zero()
	}
	first := factorOutOwnGCD(e, nonZero[0])
	gcdNum, bases, expos := productEntries(first)
	for _, t := range nonZero[1:] {
		cur := factorOutOwnGCD(e, t)
		curNum, curBases, curExpos := productEntries(cur)
		gcdNum = b.NumGCD(gcdNum, curNum)
		bases, expos = intersectMinExponents(b, bases, expos, curBases, curExpos)
	}
	return assembleProduct(e, gcdNum, bases, expos)
}

// NaiveLCM is NaiveGCD's dual: the numeric part is a numeric LCM, and
// the base sets are unioned with the maximum exponent kept per base.
func NaiveLCM(e *eval.Evaluator, terms []*term.Term) *term.Term {
	b := e.B
	nonZero := filterNonZero(terms)
	if len(nonZero) == 0 {
		return term.Zero()
	}
	first := factorOutOwnGCD(e, nonZero[0])
	lcmNum, bases, expos := productEntries(first)
	for _, t := range nonZero[1:] {
		cur := factorOutOwnGCD(e, t)
		curNum, curBases, curExpos := productEntries(cur)
		lcmNum = b.NumLCM(lcmNum, curNum, e.F.Precision())
		bases, expos = unionMaxExponents(b, bases, expos, curBases, curExpos)
	}
	return assembleProduct(e, lcmNum, bases, expos)
}

// NaiveFactor recursively pulls each Sum's own naive GCD out of itself,
// top-down through Product/Factor/Power shapes, mirroring
// original_source/gcd1.c's may_naive_factor.
func NaiveFactor(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	switch t.Tag() {
	case term.TagSum:
		return factorOutOwnGCD(e, t)
	case term.TagFactor:
		return e.Eval(b.FactorC(t.Child(0), NaiveFactor(e, t.Child(1))))
	case term.TagProduct:
		n := t.ChildCount()
		raw := term.One()
		for i := 0; i < n; i++ {
			raw = b.MulC(raw, NaiveFactor(e, t.Child(i)))
		}
		return e.Eval(raw)
	case term.TagPower:
		return e.Eval(b.PowC(NaiveFactor(e, t.Child(0)), t.Child(1)))
	default:
		return t
	}
}
