// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expand implements the distributive expander of spec.md
// §4.5: expand(x) -> y where y is algebraically equal to x and bears
// the EXPANDED flag. It consumes and produces evaluated (canonical)
// term graphs, building on eval for re-normalization after each
// distribution step and on sumacc for monomial accumulation.
package expand

import (
	"maylib.dev/may/eval"
	"maylib.dev/may/sumacc"
	"maylib.dev/may/term"
)

// basecaseThreshold is the expansion-size cutoff above which a product
// with more than one sum factor switches from cartesian basecase
// expansion to the heavy (pairwise, Kronecker-assisted) strategy.
const basecaseThreshold = 100

// maxMultinomialExponent bounds the positive integer exponent the
// power-of-sum expansion will enumerate compositions for; the spec
// names no explicit ceiling, but an unbounded exponent can demand an
// astronomically large term count, so this is a deliberate safety
// guard rather than a spec requirement.
const maxMultinomialExponent = 4096

// Expand rewrites t into a canonical sum-of-monomials form, marking
// the result EXPANDED. Idempotent: an already-expanded term is
// returned unchanged.
func Expand(e *eval.Evaluator, t *term.Term) *term.Term {
	if t.IsExpanded() {
		return t
	}
	switch t.Tag() {
	case term.TagProduct:
		return expandProduct(e, t)
	case term.TagPower:
		return expandPower(e, t)
	case term.TagSum:
		return expandSum(e, t)
	case term.TagFactor:
		return expandFactor(e, t)
	default:
		return expandGeneric(e, t)
	}
}

// expandSum implements step 6: expand each child, re-emit.
func expandSum(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	children := make([]*term.Term, t.ChildCount())
	changed := false
	for i := 0; i < t.ChildCount(); i++ {
		children[i] = Expand(e, t.Child(i))
		if children[i] != t.Child(i) {
			changed = true
		}
	}
	if !changed {
		return b.SealExpanded(t)
	}
	raw := children[0]
	for _, c := range children[1:] {
		raw = b.AddC(raw, c)
	}
	return b.SealExpanded(e.Eval(raw))
}

// expandFactor implements step 7: expand the base; a Sum base has the
// coefficient distributed over its terms, any other base is re-wrapped.
func expandFactor(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	base := Expand(e, t.Child(1))
	if base.Tag() == term.TagSum {
		raw := b.MulC(t.Child(0), base.Child(0))
		for i := 1; i < base.ChildCount(); i++ {
			raw = b.AddC(raw, b.MulC(t.Child(0), base.Child(i)))
		}
		return b.SealExpanded(e.Eval(raw))
	}
	if base == t.Child(1) {
		return b.SealExpanded(t)
	}
	return b.SealExpanded(e.Eval(b.FactorC(t.Child(0), base)))
}

// expandGeneric handles every composite shape expand has no special
// distributive rule for (transcendentals, List, Range, Diff, Func,
// Mod, GCD, Extension): recurse into children per step 2 and reseal.
func expandGeneric(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	if t.ChildCount() == 0 {
		return t
	}
	children := make([]*term.Term, t.ChildCount())
	changed := false
	for i := 0; i < t.ChildCount(); i++ {
		children[i] = Expand(e, t.Child(i))
		if children[i] != t.Child(i) {
			changed = true
		}
	}
	if !changed {
		return b.SealExpanded(t)
	}
	nb := b.NodeC(t.Tag(), len(children))
	for i, c := range children {
		nb.SetAt(i, c)
	}
	nb.SetName(t.Name())
	nb.SetDomain(t.Domain())
	nb.SetOrder(t.DiffOrder())
	nb.SetBlob(t.Blob())
	nb.SetExtension(t.Extension())
	return nb.CloseC(term.Evaluated | term.Expanded)
}

// insertMonomial folds a fully-evaluated monomial x into the running
// (tree, numAcc) accumulation, mirroring eval.evalSum's flatten rule:
// numerics accumulate, nested sums (e.g. from a cancellation) flatten
// recursively, Factor nodes split into (coeff, key), anything else is
// a bare key with an implicit coefficient of 1.
func insertMonomial(e *eval.Evaluator, tree *sumacc.Tree, numAcc **term.Term, x *term.Term) {
	switch {
	case x.IsNumeric():
		*numAcc = e.B.NumAdd(*numAcc, x, e.F.Precision())
	case x.Tag() == term.TagSum:
		for i := 0; i < x.ChildCount(); i++ {
			insertMonomial(e, tree, numAcc, x.Child(i))
		}
	case x.Tag() == term.TagFactor:
		tree.Insert(x.Child(0), x.Child(1))
	default:
		tree.Insert(term.One(), x)
	}
}
