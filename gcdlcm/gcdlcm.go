// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcdlcm implements spec.md §4.8: naive (structural,
// product-base-set) GCD/LCM over a sequence of terms, true (Euclidean,
// remainder-sequence) GCD/LCM folded pairwise, and Yun's square-free
// decomposition. Grounded on original_source/gcd1.c's may_naive_gcd /
// may_naive_gce / may_naive_factor.
package gcdlcm

import (
	"maylib.dev/may/eval"
	"maylib.dev/may/term"
)

// productEntries splits t into (numeric coefficient, base, exponent)
// triples: a Factor's coefficient child is the numeric part, and every
// Power/bare factor of whatever Product remains contributes one
// (base, exponent) pair (a bare non-Power factor has implicit exponent
// 1). A purely numeric t has no base/exponent pairs at all.
func productEntries(t *term.Term) (num *term.Term, bases, expos []*term.Term) {
	num = term.One()
	rest := t
	if t.Tag() == term.TagFactor {
		num = t.Child(0)
		rest = t.Child(1)
	} else if t.IsNumeric() {
		return t, nil, nil
	}

	switch rest.Tag() {
	case term.TagProduct:
		for i := 0; i < rest.ChildCount(); i++ {
			c := rest.Child(i)
			if c.Tag() == term.TagPower {
				bases = append(bases, c.Child(0))
				expos = append(expos, c.Child(1))
			} else {
				bases = append(bases, c)
				expos = append(expos, term.One())
			}
		}
	case term.TagPower:
		bases = []*term.Term{rest.Child(0)}
		expos = []*term.Term{rest.Child(1)}
	default:
		if !term.IsOneNumeric(rest) {
			bases = []*term.Term{rest}
			expos = []*term.Term{term.One()}
		}
	}
	return num, bases, expos
}

// assembleProduct rebuilds num * prod(bases[i]^expos[i]) and evaluates
// it into canonical form.
func assembleProduct(e *eval.Evaluator, num *term.Term, bases, expos []*term.Term) *term.Term {
	b := e.B
	raw := num
	for i := range bases {
		raw = b.MulC(raw, b.PowC(bases[i], expos[i]))
	}
	return e.Eval(raw)
}

// sumEntry is one summand of a sum-shaped exponent, viewed as
// coefficient*base (a bare numeric summand has base One()).
type sumEntry struct {
	coeff, base *term.Term
}

func sumEntries(t *term.Term) []sumEntry {
	var terms []*term.Term
	if t.Tag() == term.TagSum {
		terms = t.Children()
	} else {
		terms = []*term.Term{t}
	}
	out := make([]sumEntry, len(terms))
	for i, s := range terms {
		switch {
		case s.IsNumeric():
			out[i] = sumEntry{coeff: s, base: term.One()}
		case s.Tag() == term.TagFactor:
			out[i] = sumEntry{coeff: s.Child(0), base: s.Child(1)}
		default:
			out[i] = sumEntry{coeff: term.One(), base: s}
		}
	}
	return out
}

// naiveGCE is the "greatest common exponent" of spec.md §4.8: the
// minimum of two numeric exponents, or (when either is a sum, e.g. a
// symbolic exponent like a+b) the componentwise minimum across matching
// sub-sum terms.
func naiveGCE(b *term.Builder, x, y *term.Term) *term.Term {
	if x.IsNumeric() && y.IsNumeric() {
		return numMin(x, y)
	}
	xEntries, yEntries := sumEntries(x), sumEntries(y)
	var outTerms []*term.Term
	for _, xe := range xEntries {
		for _, ye := range yEntries {
			if term.Compare(xe.base, ye.base) == 0 {
				m := numMin(xe.coeff, ye.coeff)
				if !term.IsZeroNumeric(m) {
					outTerms = append(outTerms, b.FactorC(m, xe.base))
				}
				break
			}
		}
	}
	return sumOf(b, outTerms)
}

// naiveLCE is naiveGCE's union/maximum dual, used by NaiveLCM.
func naiveLCE(b *term.Builder, x, y *term.Term) *term.Term {
	if x.IsNumeric() && y.IsNumeric() {
		return numMax(x, y)
	}
	xEntries, yEntries := sumEntries(x), sumEntries(y)
	usedY := make([]bool, len(yEntries))
	var outTerms []*term.Term
	for _, xe := range xEntries {
		matched := false
		for j, ye := range yEntries {
			if usedY[j] {
				continue
			}
			if term.Compare(xe.base, ye.base) == 0 {
				outTerms = append(outTerms, b.FactorC(numMax(xe.coeff, ye.coeff), xe.base))
				usedY[j] = true
				matched = true
				break
			}
		}
		if !matched {
			outTerms = append(outTerms, b.FactorC(xe.coeff, xe.base))
		}
	}
	for j, ye := range yEntries {
		if !usedY[j] {
			outTerms = append(outTerms, b.FactorC(ye.coeff, ye.base))
		}
	}
	return sumOf(b, outTerms)
}

func numMin(x, y *term.Term) *term.Term {
	if term.NumCmp(x, y) <= 0 {
		return x
	}
	return y
}

func numMax(x, y *term.Term) *term.Term {
	if term.NumCmp(x, y) >= 0 {
		return x
	}
	return y
}

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

func filterNonZero(terms []*term.Term) []*term.Term {
	out := make([]*term.Term, 0, len(terms))
	for _, t := range terms {
		if !term.IsZeroNumeric(t) {
			out = append(out, t)
		}
	}
	return out
}
