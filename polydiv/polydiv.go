// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polydiv implements spec.md §4.7's polynomial division:
// univariate and multivariate Euclidean division (a = q*b + r) and
// division by a pure power of one variable. Every entry point expands
// its operands first (division needs a's and b's canonical monomial
// layout, not whatever unexpanded shape they arrived in) and evaluates
// its result before returning, mirroring expand's own discipline of
// building raw intermediate sums and re-normalizing at the end.
package polydiv

import (
	"maylib.dev/may/arena"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/term"
)

// DivQR divides a by b, both viewed as univariate polynomials in v,
// returning (q, r, true) with a = q*b + r and deg_v(r) < deg_v(b). The
// working coefficient arrays are compacted against the arena every
// tenth elimination step, so a long division doesn't drag the garbage
// from every prior partial-remainder update along with it.
func DivQR(e *eval.Evaluator, a, b, v *term.Term) (q, r *term.Term, ok bool) {
	bld := e.B
	bExp := expand.Expand(e, b)
	if bExp.IsNumeric() {
		if term.IsZeroNumeric(bExp) {
			return nil, nil, false
		}
		return e.Eval(bld.DivC(a, bExp)), term.Zero(), true
	}

	aExp := expand.Expand(e, a)
	aCoeffs, aOk := denseCoeffs(bld, aExp, v)
	bCoeffs, bOk := denseCoeffs(bld, bExp, v)
	if !aOk || !bOk {
		return nil, nil, false
	}
	da, db := len(aCoeffs)-1, len(bCoeffs)-1
	if da < db {
		return term.Zero(), aExp, true
	}

	cb := bCoeffs[db]
	qCoeffs := make([]*term.Term, da-db+1)
	mark := bld.A.Mark()
	steps := 0
	for d := da; d >= db; d-- {
		if term.IsZeroNumeric(aCoeffs[d]) {
			qCoeffs[d-db] = term.Zero()
			continue
		}
		c := e.Eval(bld.DivC(aCoeffs[d], cb))
		qCoeffs[d-db] = c
		negC := e.Eval(bld.NegC(c))
		for i := 1; i <= db && d-i >= 0; i++ {
			prod := e.Eval(bld.MulC(negC, bCoeffs[db-i]))
			aCoeffs[d-i] = expand.Expand(e, e.Eval(bld.AddC(aCoeffs[d-i], prod)))
		}

		steps++
		if steps%10 == 0 {
			compactWorkingSet(bld.A, mark, qCoeffs, aCoeffs)
		}
	}

	q = coeffsToPoly(bld, v, qCoeffs)
	r = coeffsToPoly(bld, v, aCoeffs[:db])
	return e.Eval(q), e.Eval(r), true
}

// compactWorkingSet relocates the live coefficients of q and r (in
// place) below mark, reclaiming everything allocated above it since the
// last compaction.
func compactWorkingSet(a *arena.Arena, mark arena.Mark, q, r []*term.Term) {
	nodes := make([]arena.Node, 0, len(q)+len(r))
	for _, t := range q {
		nodes = append(nodes, t)
	}
	for _, t := range r {
		nodes = append(nodes, t)
	}
	out := a.CompactV(mark, nodes)
	for i := range q {
		q[i] = out[i].(*term.Term)
	}
	for i := range r {
		r[i] = out[len(q)+i].(*term.Term)
	}
}
