// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expand

import (
	"sort"

	"maylib.dev/may/eval"
	"maylib.dev/may/sumacc"
	"maylib.dev/may/term"
)

// expandProduct implements step 3: recurse into factors, compute the
// cartesian expansion size from the sum factors, and choose basecase
// or heavy distribution.
func expandProduct(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	n := t.ChildCount()
	factors := make([]*term.Term, n)
	changed := false
	for i := 0; i < n; i++ {
		factors[i] = Expand(e, t.Child(i))
		if factors[i] != t.Child(i) {
			changed = true
		}
	}

	size := 1
	sumCount := 0
	for _, f := range factors {
		if f.Tag() == term.TagSum {
			size *= f.ChildCount()
			sumCount++
		}
	}

	if size <= 1 {
		if !changed {
			return b.SealExpanded(t)
		}
		raw := factors[0]
		for _, f := range factors[1:] {
			raw = b.MulC(raw, f)
		}
		return b.SealExpanded(e.Eval(raw))
	}

	var result *term.Term
	if sumCount <= 1 || size <= basecaseThreshold {
		result = expandBasecase(e, factors, size)
	} else {
		result = expandHeavy(e, factors)
	}
	return b.SealExpanded(result)
}

// expandBasecase materializes every distributed monomial by cartesian-
// product iteration over the sum factors (cumul%nz / cumul/=nz picks
// out the i-th combination), evaluating each and folding it into the
// sum accumulator.
func expandBasecase(e *eval.Evaluator, factors []*term.Term, size int) *term.Term {
	b := e.B
	numAcc := term.Zero()
	tree := sumacc.New(b)
	parts := make([]*term.Term, len(factors))
	for i := 0; i < size; i++ {
		cumul := i
		for j, f := range factors {
			if f.Tag() == term.TagSum {
				nz := f.ChildCount()
				parts[j] = f.Child(cumul % nz)
				cumul /= nz
			} else {
				parts[j] = f
			}
		}
		raw := parts[0]
		for _, p := range parts[1:] {
			raw = b.MulC(raw, p)
		}
		insertMonomial(e, tree, &numAcc, e.Eval(raw))
	}
	return tree.GetSum(numAcc)
}

// expandHeavy sorts the sum factors by variable-set size and child
// count, pairwise-multiplies same-shaped factors (Kronecker trick when
// eligible, pairwise accumulation otherwise), then folds in whatever
// wasn't a sum.
func expandHeavy(e *eval.Evaluator, factors []*term.Term) *term.Term {
	b := e.B
	var sums, rest []*term.Term
	for _, f := range factors {
		if f.Tag() == term.TagSum {
			sums = append(sums, f)
		} else {
			rest = append(rest, f)
		}
	}
	sort.Slice(sums, func(i, j int) bool {
		vi, vj := len(varSet(sums[i])), len(varSet(sums[j]))
		if vi != vj {
			return vi < vj
		}
		if sums[i].ChildCount() != sums[j].ChildCount() {
			return sums[i].ChildCount() < sums[j].ChildCount()
		}
		return term.Compare(sums[i], sums[j]) < 0
	})
	acc := sums[0]
	for _, s := range sums[1:] {
		acc = multiplyTwoSums(e, acc, s)
	}
	raw := acc
	for _, r := range rest {
		raw = b.MulC(raw, r)
	}
	return e.Eval(raw)
}

// multiplyTwoSums multiplies two expanded sums, trying the Kronecker
// trick first (step 5) and falling back to plain pairwise-sum
// accumulation when the operands aren't a dense integer univariate
// pair.
func multiplyTwoSums(e *eval.Evaluator, a, c *term.Term) *term.Term {
	if poly, ok := kroneckerMultiply(e, a, c); ok {
		return poly
	}
	return expandBasecase(e, []*term.Term{a, c}, a.ChildCount()*c.ChildCount())
}

// varSet collects the distinct symbol names appearing in t, sorted.
func varSet(t *term.Term) []string {
	seen := map[string]bool{}
	var walk func(*term.Term)
	walk = func(x *term.Term) {
		if x.Tag() == term.TagSymbol {
			seen[x.Name()] = true
			return
		}
		for i := 0; i < x.ChildCount(); i++ {
			walk(x.Child(i))
		}
	}
	walk(t)
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
