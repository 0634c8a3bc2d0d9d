// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcdlcm

import (
	"maylib.dev/may/diff"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/polydiv"
	"maylib.dev/may/term"
)

// yunOne runs the classical Yun square-free loop on p (viewed as a
// univariate polynomial in v): w starts at p, y at p's derivative, and
// each round divides both by their GCD until the derivative of the
// reduced w matches y exactly. Returns the accumulated product of every
// peeled-off GCD power (list) and p/list, which by construction comes
// out to the fully reduced square-free core raised to its multiplicity.
func yunOne(e *eval.Evaluator, p, v *term.Term) (list, pOverList *term.Term, ok bool) {
	b := e.B
	w := expand.Expand(e, p)
	y := e.Eval(diff.Diff(b, w, v))
	g := EuclidGCD(e, w, y, v)
	if g == nil {
		return nil, nil, false
	}
	list = term.One()
	i := 1
	for {
		w2, ok1 := polydiv.DivExact(e, w, g)
		y2, ok2 := polydiv.DivExact(e, y, g)
		if !ok1 || !ok2 {
			return nil, nil, false
		}
		w, y = w2, y2
		dwdv := e.Eval(diff.Diff(b, w, v))
		y = e.Eval(b.SubC(y, dwdv))
		if term.IsZeroNumeric(expand.Expand(e, y)) {
			break
		}
		g = EuclidGCD(e, w, y, v)
		if g == nil {
			return nil, nil, false
		}
		gi := e.Eval(b.PowC(g, b.IntC64(int64(i))))
		list = e.Eval(b.MulC(list, gi))
		i++
	}
	pOverList, ok = polydiv.DivExact(e, p, list)
	if !ok {
		return nil, nil, false
	}
	return list, pOverList, true
}

// SquareFreeYun is spec.md §4.8's square-free decomposition: p is first
// run through naive factorization, then every resulting (base, power)
// entry is Yun-decomposed in v and recombined as list*(base/list)^power.
func SquareFreeYun(e *eval.Evaluator, p, v *term.Term) (*term.Term, bool) {
	b := e.B
	factored := NaiveFactor(e, expand.Expand(e, p))
	num, bases, expos := productEntries(factored)

	result := num
	for j, base := range bases {
		list, pOverList, ok := yunOne(e, base, v)
		if !ok {
			return nil, false
		}
		factor := e.Eval(b.MulC(list, b.PowC(pOverList, expos[j])))
		result = e.Eval(b.MulC(result, factor))
	}
	return result, true
}
