// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package polydiv

import (
	"maylib.dev/may/coeff"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/term"
)

// DivQRXExp splits a into a = q*v^n + r with deg_v(r) < n, by
// classifying each summand of expand(a) on its degree in v: a summand
// at or above degree n divides exactly by v^n into the quotient: one
// whose degree can't be read at all (v buried in an opaque factor)
// falls to the remainder along with everything below degree n.
func DivQRXExp(e *eval.Evaluator, a, v *term.Term, n int) (q, r *term.Term) {
	b := e.B
	aExp := expand.Expand(e, a)

	var qTerms, rTerms []*term.Term
	for _, s := range sumTerms(aExp) {
		c, d, ok := coeff.ExtractCoeffDeg(b, s, v)
		if !ok || d < n {
			rTerms = append(rTerms, s)
			continue
		}
		qTerms = append(qTerms, b.MulC(c, b.PowC(v, b.IntC64(int64(d-n)))))
	}
	return e.Eval(sumOf(b, qTerms)), e.Eval(sumOf(b, rTerms))
}
