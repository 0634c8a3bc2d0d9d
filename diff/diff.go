// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff implements symbolic differentiation (spec.md §4.9): the
// structural chain/product/Leibniz rules that rewrite a term into its
// derivative. It depends only on term, not eval: the rewrites it
// produces are unevaluated-ish trees (the builder's trivial peephole
// folds already apply), and it is the caller's job — eval, for the
// diff node it owns — to run the result back through full evaluation.
package diff

import "maylib.dev/may/term"

// Diff returns d(x)/d(v) for a structurally-evaluated x (§4.9). The
// result is not itself fully evaluated; callers that need a canonical
// term must run it back through the evaluator.
func Diff(b *term.Builder, x, v *term.Term) *term.Term {
	if x.IsNumeric() {
		return term.Zero()
	}
	switch x.Tag() {
	case term.TagSymbol:
		if x.Name() == v.Name() {
			return term.One()
		}
		return term.Zero()
	case term.TagSum:
		return diffSum(b, x, v)
	case term.TagFactor:
		return b.MulC(x.Child(0), Diff(b, x.Child(1), v))
	case term.TagProduct:
		return diffProduct(b, x, v)
	case term.TagPower:
		return diffPower(b, x, v)
	case term.TagDiff:
		return diffOfDiff(b, x, v)
	case term.TagExtension:
		if d := term.DiffExtension(x, v); d != nil {
			return d
		}
		return heldOrZero(b, x, v)
	default:
		if term.IsTranscendental(x.Tag()) {
			return diffTranscendental(b, x, v)
		}
		return heldOrZero(b, x, v)
	}
}

// heldOrZero implements the fallback shared by the extension and
// "otherwise unrecognized" cases: zero if x does not depend on v, else
// a held, unresolved diff node of order 1 (§4.9's Extension bullet).
func heldOrZero(b *term.Builder, x, v *term.Term) *term.Term {
	if IndependentOf(x, v) {
		return term.Zero()
	}
	return b.DiffC(x, v, 1, nil)
}

func diffSum(b *term.Builder, x, v *term.Term) *term.Term {
	acc := term.Zero()
	for i := 0; i < x.ChildCount(); i++ {
		acc = b.AddC(acc, Diff(b, x.Child(i), v))
	}
	return acc
}

// diffProduct applies Leibniz: sum over i of (product of all other
// factors) * diff(xi, v).
func diffProduct(b *term.Builder, x, v *term.Term) *term.Term {
	n := x.ChildCount()
	acc := term.Zero()
	for i := 0; i < n; i++ {
		dxi := Diff(b, x.Child(i), v)
		if term.IsZeroNumeric(dxi) {
			continue
		}
		rest := term.One()
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			rest = b.MulC(rest, x.Child(j))
		}
		acc = b.AddC(acc, b.MulC(rest, dxi))
	}
	return acc
}

// diffPower implements u^w: w*u^(w-1)*u' when w is independent of v,
// else the general u^w*(w'*log(u) + w*u'/u).
func diffPower(b *term.Builder, x, v *term.Term) *term.Term {
	u, w := x.Child(0), x.Child(1)
	du := Diff(b, u, v)
	if IndependentOf(w, v) {
		if term.IsZeroNumeric(du) {
			return term.Zero()
		}
		wMinus1 := b.SubC(w, term.One())
		return b.MulC(b.MulC(w, b.PowC(u, wMinus1)), du)
	}
	dw := Diff(b, w, v)
	term1 := b.MulC(dw, b.LogC(u))
	term2 := b.DivC(b.MulC(w, du), u)
	return b.MulC(x, b.AddC(term1, term2))
}

// diffOfDiff handles differentiating a held diff(f, w, n, a) node
// itself, per §4.9's "Unresolved diff(f, w, n, a)" bullet: when w != v
// and f is independent of v, compose as diff(a, v) * diff(f, w, n+1, a).
func diffOfDiff(b *term.Builder, x, v *term.Term) *term.Term {
	f, w := x.Child(0), x.Child(1)
	n := x.DiffOrder()
	var a *term.Term
	if x.ChildCount() > 2 {
		a = x.Child(2)
	}
	if w.Name() != v.Name() && IndependentOf(f, v) && a != nil {
		return b.MulC(Diff(b, a, v), b.DiffC(f, w, n+1, a))
	}
	// Spec is silent when w == v or a is absent; fall back to a held
	// diff node one order higher, which is conservative and keeps the
	// result structurally well-formed.
	return b.DiffC(f, w, n+1, a)
}

// IndependentOf implements independent_p(x, v): true iff no
// symbol-equal descendant of x matches v (§4.9).
func IndependentOf(x, v *term.Term) bool {
	if x.Tag() == term.TagSymbol {
		return x.Name() != v.Name()
	}
	for i := 0; i < x.ChildCount(); i++ {
		if !IndependentOf(x.Child(i), v) {
			return false
		}
	}
	return true
}
