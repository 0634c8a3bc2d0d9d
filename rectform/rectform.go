// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rectform implements spec.md §4.11's rectangular-form
// decomposition: splitting an evaluated term into its real and
// imaginary parts, recursively, by a per-shape rewrite at every node.
// Grounded directly on original_source/rectform.c's may_rectform.
package rectform

import (
	"maylib.dev/may/eval"
	"maylib.dev/may/term"
)

// Split returns (real, imag) such that x = real + i*imag, recursively
// applying the standard identities for sums, products, exp, log, the
// trig/hyperbolic functions, and integer powers (via squaring on the
// running real/imag pair). A leaf already known to be real — including
// abs, argument, real and imag themselves — passes through unchanged
// with a zero imaginary part.
func Split(e *eval.Evaluator, x *term.Term) (real, imag *term.Term) {
	b := e.B
	switch x.Tag() {
	case term.TagInteger, term.TagRational, term.TagFloat,
		term.TagReal, term.TagImag, term.TagAbs, term.TagArg:
		return x, term.Zero()

	case term.TagComplex:
		return x.Child(0), x.Child(1)

	case term.TagSum:
		n := x.ChildCount()
		reParts := make([]*term.Term, n)
		imParts := make([]*term.Term, n)
		for i := 0; i < n; i++ {
			reParts[i], imParts[i] = Split(e, x.Child(i))
		}
		return e.Eval(sumOf(b, reParts)), e.Eval(sumOf(b, imParts))

	case term.TagFactor:
		coeff := x.Child(0)
		r, i := Split(e, x.Child(1))
		if coeff.Tag() != term.TagComplex {
			return e.Eval(b.MulC(coeff, r)), e.Eval(b.MulC(coeff, i))
		}
		cr, ci := coeff.Child(0), coeff.Child(1)
		rr := e.Eval(b.SubC(b.MulC(cr, r), b.MulC(ci, i)))
		ii := e.Eval(b.AddC(b.MulC(cr, i), b.MulC(ci, r)))
		return rr, ii

	case term.TagProduct:
		r, i := Split(e, x.Child(0))
		for j := 1; j < x.ChildCount(); j++ {
			rr, ii := Split(e, x.Child(j))
			nr := e.Eval(b.SubC(b.MulC(rr, r), b.MulC(ii, i)))
			ni := e.Eval(b.AddC(b.MulC(rr, i), b.MulC(ii, r)))
			r, i = nr, ni
		}
		return r, i

	case term.TagExp:
		r, i := Split(e, x.Child(0))
		y := e.Eval(b.ExpC(r))
		return e.Eval(b.MulC(y, b.CosC(i))), e.Eval(b.MulC(y, b.SinC(i)))

	case term.TagLog:
		return e.Eval(b.LogC(b.AbsC(x.Child(0)))), e.Eval(b.ArgC(x.Child(0)))

	case term.TagCos:
		r, i := Split(e, x.Child(0))
		re := e.Eval(b.MulC(b.CosC(r), b.CoshC(i)))
		im := e.Eval(b.NegC(b.MulC(b.SinC(r), b.SinhC(i))))
		return re, im

	case term.TagSin:
		r, i := Split(e, x.Child(0))
		re := e.Eval(b.MulC(b.SinC(r), b.CoshC(i)))
		im := e.Eval(b.MulC(b.CosC(r), b.SinhC(i)))
		return re, im

	case term.TagSinh:
		r, i := Split(e, x.Child(0))
		re := e.Eval(b.MulC(b.SinhC(r), b.CosC(i)))
		im := e.Eval(b.MulC(b.CoshC(r), b.SinC(i)))
		return re, im

	case term.TagCosh:
		r, i := Split(e, x.Child(0))
		re := e.Eval(b.MulC(b.CoshC(r), b.CosC(i)))
		im := e.Eval(b.MulC(b.SinhC(r), b.SinC(i)))
		return re, im

	case term.TagTan:
		x2, y2 := Split(e, x.Child(0))
		x2 = e.Eval(b.MulC(b.IntC64(2), x2))
		y2 = e.Eval(b.MulC(b.IntC64(2), y2))
		denom := e.Eval(b.AddC(b.CosC(x2), b.CoshC(y2)))
		return e.Eval(b.DivC(b.SinC(x2), denom)), e.Eval(b.DivC(b.SinhC(y2), denom))

	case term.TagTanh:
		x2, y2 := Split(e, x.Child(0))
		x2 = e.Eval(b.MulC(b.IntC64(2), x2))
		y2 = e.Eval(b.MulC(b.IntC64(2), y2))
		denom := e.Eval(b.AddC(b.CoshC(x2), b.CosC(y2)))
		return e.Eval(b.DivC(b.SinhC(x2), denom)), e.Eval(b.DivC(b.SinC(y2), denom))

	case term.TagPower:
		return splitPower(e, x)

	default:
		if isKnownReal(x) {
			return x, term.Zero()
		}
		return e.Eval(b.RealC(x)), e.Eval(b.ImagC(x))
	}
}

// splitPower handles x^n for an integer exponent n by splitting the
// base once and squaring the running (real, imag) pair, multiplying in
// the base's own split at every set bit of n — the same square-and-
// multiply original_source/rectform.c uses. A negative n first inverts
// the split base via 1/(C+iD) = (C-iD)/(C^2+D^2).
func splitPower(e *eval.Evaluator, x *term.Term) (*term.Term, *term.Term) {
	b := e.B
	expo := x.Child(1)
	if expo.Tag() != term.TagInteger || !expo.Int().IsInt64() {
		return e.Eval(b.RealC(x)), e.Eval(b.ImagC(x))
	}
	n := expo.Int().Int64()

	rr, ii := Split(e, x.Child(0))
	if n < 0 {
		denom := e.Eval(b.AddC(b.MulC(rr, rr), b.MulC(ii, ii)))
		rr, ii = e.Eval(b.DivC(rr, denom)), e.Eval(b.NegC(b.DivC(ii, denom)))
		n = -n
	}
	if n == 0 {
		return term.One(), term.Zero()
	}

	r, i := rr, ii
	for bitPos := bits(n) - 2; bitPos >= 0; bitPos-- {
		nr := e.Eval(b.SubC(b.MulC(r, r), b.MulC(i, i)))
		ni := e.Eval(b.MulC(b.IntC64(2), b.MulC(r, i)))
		r, i = nr, ni
		if n&(1<<uint(bitPos)) != 0 {
			nr2 := e.Eval(b.SubC(b.MulC(rr, r), b.MulC(ii, i)))
			ni2 := e.Eval(b.AddC(b.MulC(rr, i), b.MulC(ii, r)))
			r, i = nr2, ni2
		}
	}
	return r, i
}

func bits(n int64) int {
	c := 0
	for m := n; m != 0; m >>= 1 {
		c++
	}
	return c
}

func isKnownReal(x *term.Term) bool {
	return x.Tag() == term.TagSymbol && x.Domain()&term.DomainReal != 0
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
