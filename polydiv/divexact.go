// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polydiv

import (
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/term"
)

// DivExact returns a/b when b divides a with zero remainder, picking
// variables for the division from whichever of a, b mentions any (pure
// numeric division when neither does), and reports false otherwise.
func DivExact(e *eval.Evaluator, a, b *term.Term) (*term.Term, bool) {
	bld := e.B
	vars := collectSymbols(b)
	if len(vars) == 0 {
		vars = collectSymbols(a)
	}

	var q, r *term.Term
	var ok bool
	switch {
	case len(vars) == 0:
		bExp := expand.Expand(e, b)
		if term.IsZeroNumeric(bExp) {
			return nil, false
		}
		q, r, ok = e.Eval(bld.DivC(a, bExp)), term.Zero(), true
	case len(vars) == 1:
		q, r, ok = DivQR(e, a, b, vars[0])
	default:
		q, r, ok = DivQRMulti(e, a, b, vars)
	}
	if !ok || !term.IsZeroNumeric(expand.Expand(e, r)) {
		return nil, false
	}
	return q, true
}
