// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eval implements the evaluator of spec.md §4.3: the single
// recursive pass that rewrites a raw, unevaluated term tree into
// canonical form, flattening sums and products, merging like bases,
// applying the numeric power table, consulting the transcendental
// identity table, and resolving diff/extension nodes.
package eval

import (
	"sort"

	"maylib.dev/may/diff"
	"maylib.dev/may/frame"
	"maylib.dev/may/sumacc"
	"maylib.dev/may/term"
)

// Evaluator evaluates terms against one ambient Frame, building results
// with one Builder (and hence into one arena).
type Evaluator struct {
	F *frame.Frame
	B *term.Builder
}

// New returns an Evaluator that builds results with b under frame f.
func New(f *frame.Frame, b *term.Builder) *Evaluator {
	return &Evaluator{F: f, B: b}
}

// Eval rewrites raw into canonical form (§4.3). It is idempotent on
// composite/symbol terms — an already-EVALUATED node is returned
// unchanged — but numeric leaves are always re-checked against the
// ambient modulus, since that is frame-relative state that can change
// between calls.
func (e *Evaluator) Eval(t *term.Term) *term.Term {
	if t.IsNumeric() {
		return e.evalNumericLeaf(t)
	}
	if t.IsEvaluated() {
		return t
	}
	switch t.Tag() {
	case term.TagSymbol:
		return t
	case term.TagSum:
		return e.evalSum(t)
	case term.TagProduct:
		return e.evalProduct(t)
	case term.TagFactor:
		return e.evalFactor(t)
	case term.TagPower:
		return e.evalPower(t)
	case term.TagDiff:
		return e.evalDiffNode(t)
	case term.TagExtension:
		return e.evalExtension(t)
	case term.TagList:
		return e.evalList(t)
	case term.TagRange:
		return e.evalRange(t)
	case term.TagFunc:
		return e.evalFunc(t)
	case term.TagMod:
		return e.evalMod(t)
	case term.TagGCD:
		return e.evalGCD(t)
	case term.TagBlob:
		return t
	default:
		if term.IsTranscendental(t.Tag()) {
			return e.evalTranscendental(t)
		}
		term.Errorf("eval: unhandled tag %d", t.Tag())
		return nil
	}
}

func (e *Evaluator) evalNumericLeaf(t *term.Term) *term.Term {
	if t.Tag() != term.TagInteger {
		return t
	}
	m := e.F.Modulus()
	if m == nil {
		return t
	}
	return e.B.Smod(t, e.B.IntC(m))
}

// evalSum implements the Sum bullet of §4.3 via the sumacc red-black
// accumulator (§4.4).
func (e *Evaluator) evalSum(t *term.Term) *term.Term {
	numAcc := term.Zero()
	tree := sumacc.New(e.B)
	var flatten func(x *term.Term)
	flatten = func(x *term.Term) {
		x = e.Eval(x)
		switch {
		case x.IsNumeric():
			numAcc = e.B.NumAdd(numAcc, x, e.F.Precision())
		case x.Tag() == term.TagSum:
			for i := 0; i < x.ChildCount(); i++ {
				flatten(x.Child(i))
			}
		case x.Tag() == term.TagFactor:
			tree.Insert(x.Child(0), x.Child(1))
		default:
			tree.Insert(term.One(), x)
		}
	}
	for i := 0; i < t.ChildCount(); i++ {
		flatten(t.Child(i))
	}
	return tree.GetSum(numAcc)
}

type productEntry struct {
	base, expo *term.Term
}

// evalProduct implements the Product bullet of §4.3: flatten, split off
// the numeric coefficient, merge (base, exponent) entries, and fold any
// entry that collapses back to numeric.
func (e *Evaluator) evalProduct(t *term.Term) *term.Term {
	num := term.One()
	var entries []productEntry
	var flatten func(x *term.Term)
	flatten = func(x *term.Term) {
		x = e.Eval(x)
		switch {
		case x.IsNumeric():
			num = e.B.NumMul(num, x, e.F.Precision())
		case x.Tag() == term.TagProduct:
			for i := 0; i < x.ChildCount(); i++ {
				flatten(x.Child(i))
			}
		case x.Tag() == term.TagFactor:
			num = e.B.NumMul(num, x.Child(0), e.F.Precision())
			flatten(x.Child(1))
		default:
			base, expo := splitPower(x)
			for i := range entries {
				if term.Compare(entries[i].base, base) == 0 {
					entries[i].expo = e.B.AddC(entries[i].expo, expo)
					return
				}
			}
			entries = append(entries, productEntry{base, expo})
		}
	}
	for i := 0; i < t.ChildCount(); i++ {
		flatten(t.Child(i))
	}
	return e.foldProductEntries(num, entries)
}

func (e *Evaluator) foldProductEntries(num *term.Term, entries []productEntry) *term.Term {
	nonNumeric := make([]*term.Term, 0, len(entries))
	for _, ent := range entries {
		if term.IsZeroNumeric(ent.expo) {
			continue
		}
		p := e.corePower(ent.base, ent.expo)
		if p.IsNumeric() {
			num = e.B.NumMul(num, p, e.F.Precision())
		} else {
			nonNumeric = append(nonNumeric, p)
		}
	}
	sort.Slice(nonNumeric, func(i, j int) bool { return term.Compare(nonNumeric[i], nonNumeric[j]) < 0 })

	if term.IsZeroNumeric(num) {
		return term.Zero()
	}
	if len(nonNumeric) == 0 {
		return num
	}
	if len(nonNumeric) == 1 {
		if term.IsOneNumeric(num) {
			return nonNumeric[0]
		}
		return e.B.SealedFactorC(num, nonNumeric[0])
	}
	nb := e.B.NodeC(term.TagProduct, len(nonNumeric))
	for i, x := range nonNumeric {
		nb.SetAt(i, x)
	}
	prod := nb.CloseC(term.Evaluated)
	if term.IsOneNumeric(num) {
		return prod
	}
	return e.B.SealedFactorC(num, prod)
}

func splitPower(t *term.Term) (base, expo *term.Term) {
	if t.Tag() == term.TagPower {
		return t.Child(0), t.Child(1)
	}
	return t, term.One()
}

// evalFactor implements the Factor bullet: fold if coefficient is 0 or
// 1, fold a base that evaluates to a numeric into the coefficient,
// otherwise re-wrap in canonical shape (the FactorC constructor
// already performs the 0/1 fold and the nested-factor merge of §3.2).
func (e *Evaluator) evalFactor(t *term.Term) *term.Term {
	coeff := e.Eval(t.Child(0))
	base := e.Eval(t.Child(1))
	if coeff.IsNumeric() && base.IsNumeric() {
		return e.B.NumMul(coeff, base, e.F.Precision())
	}
	return e.B.SealedFactorC(coeff, base)
}

// evalPower implements the Power bullet of §4.3.
func (e *Evaluator) evalPower(t *term.Term) *term.Term {
	base := e.Eval(t.Child(0))
	expo := e.Eval(t.Child(1))
	return e.corePower(base, expo)
}

// corePower is evalPower's logic factored out so evalProduct's
// distribute-over-product step (which already has evaluated operands)
// can reuse it without re-entering Eval.
func (e *Evaluator) corePower(base, expo *term.Term) *term.Term {
	if base.IsNumeric() && expo.IsNumeric() {
		if r, ok := e.B.NumPow(base, expo, e.F.Precision(), e.F.MaxIntBits()); ok {
			return r
		}
		return e.sealPower(base, expo)
	}
	if expo.IsNumeric() && term.IsOneNumeric(expo) {
		return base
	}
	if expo.IsNumeric() && term.IsZeroNumeric(expo) {
		return term.One()
	}
	if base.Tag() == term.TagSum && isNegativeInteger(expo) {
		// Expansion is opt-in (§4.3, §4.5): leave (u+v)^(-n) unexpanded.
		return e.sealPower(base, expo)
	}
	if base.Tag() == term.TagProduct {
		return e.distributePowerOverProduct(base, expo)
	}
	return e.sealPower(base, expo)
}

func (e *Evaluator) sealPower(base, expo *term.Term) *term.Term {
	nb := e.B.NodeC(term.TagPower, 2)
	nb.SetAt(0, base)
	nb.SetAt(1, expo)
	return nb.CloseC(term.Evaluated)
}

func isNegativeInteger(t *term.Term) bool {
	return t.Tag() == term.TagInteger && t.Int().Sign() < 0
}

// distributePowerOverProduct implements "if base is a product,
// distribute over the product's non-numeric factors, leaving the
// numeric coefficient as a separate power".
func (e *Evaluator) distributePowerOverProduct(base, expo *term.Term) *term.Term {
	parts := make([]*term.Term, 0, base.ChildCount())
	for i := 0; i < base.ChildCount(); i++ {
		c := base.Child(i)
		if c.IsNumeric() {
			if r, ok := e.B.NumPow(c, expo, e.F.Precision(), e.F.MaxIntBits()); ok {
				parts = append(parts, r)
				continue
			}
		}
		parts = append(parts, e.corePower(c, expo))
	}
	num := term.One()
	var entries []productEntry
	for _, p := range parts {
		if p.IsNumeric() {
			num = e.B.NumMul(num, p, e.F.Precision())
			continue
		}
		b, x := splitPower(p)
		merged := false
		for i := range entries {
			if term.Compare(entries[i].base, b) == 0 {
				entries[i].expo = e.B.AddC(entries[i].expo, x)
				merged = true
				break
			}
		}
		if !merged {
			entries = append(entries, productEntry{b, x})
		}
	}
	return e.foldProductEntries(num, entries)
}

func (e *Evaluator) evalExtension(t *term.Term) *term.Term {
	return term.EvalExtension(t)
}

func (e *Evaluator) evalList(t *term.Term) *term.Term {
	nb := e.B.NodeC(term.TagList, t.ChildCount())
	for i := 0; i < t.ChildCount(); i++ {
		nb.SetAt(i, e.Eval(t.Child(i)))
	}
	return nb.CloseC(term.Evaluated)
}

func (e *Evaluator) evalRange(t *term.Term) *term.Term {
	return e.B.RangeC(e.Eval(t.Child(0)), e.Eval(t.Child(1)), e.Eval(t.Child(2)))
}

// evalFunc evaluates a generic function application's arguments; the
// function body itself is an external collaborator (§1's "out of
// scope" list — "reimplementing any particular extension").
func (e *Evaluator) evalFunc(t *term.Term) *term.Term {
	nb := e.B.NodeC(term.TagFunc, t.ChildCount())
	for i := 0; i < t.ChildCount(); i++ {
		nb.SetAt(i, e.Eval(t.Child(i)))
	}
	nb.SetName(t.Name())
	return nb.CloseC(term.Evaluated)
}

// evalMod folds x mod m to the symmetric residue when both sides are
// evaluated integers, else leaves a structural (but EVALUATED, in the
// sense that its children are canonical) modulo node.
func (e *Evaluator) evalMod(t *term.Term) *term.Term {
	x := e.Eval(t.Child(0))
	m := e.Eval(t.Child(1))
	if x.Tag() == term.TagInteger && m.Tag() == term.TagInteger {
		return e.B.Smod(x, m)
	}
	nb := e.B.NodeC(term.TagMod, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, m)
	return nb.CloseC(term.Evaluated)
}

// evalGCD folds gcd(x, y) when both sides are numeric, else leaves a
// structural node (symbolic/polynomial gcd is gcdlcm's concern, invoked
// explicitly rather than through automatic structural evaluation).
func (e *Evaluator) evalGCD(t *term.Term) *term.Term {
	x := e.Eval(t.Child(0))
	y := e.Eval(t.Child(1))
	if x.IsNumeric() && y.IsNumeric() {
		return e.B.NumGCD(x, y)
	}
	nb := e.B.NodeC(term.TagGCD, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, y)
	return nb.CloseC(term.Evaluated)
}

// evalDiffNode implements diff(f, v, n, a) (§4.9): n applications of
// the structural derivative, each re-evaluated, then substitution at
// the evaluation point if one was given. Negative n (antiderivative) is
// delegated to an external collaborator per §4.9 and is not handled
// here.
func (e *Evaluator) evalDiffNode(t *term.Term) *term.Term {
	f := e.Eval(t.Child(0))
	v := t.Child(1)
	n := t.DiffOrder()
	var a *term.Term
	if t.ChildCount() > 2 {
		a = e.Eval(t.Child(2))
	}
	if n < 0 {
		term.Errorf("diff: negative order (antiderivative) is not implemented")
	}
	result := f
	for i := 0; i < n; i++ {
		result = e.Eval(diff.Diff(e.B, result, v))
	}
	if a != nil {
		result = e.Eval(Substitute(e.B, result, v, a))
	}
	return result
}
