// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expand

import (
	"math/big"

	"maylib.dev/may/eval"
	"maylib.dev/may/sumacc"
	"maylib.dev/may/term"
)

// expandPower implements step 4: a sum raised to a positive integer
// exponent expands via the square/cross-term special case (e == 2),
// the general multinomial expansion, or (when the base mixes
// algebraically-dependent radicals) repeated squaring. Every other
// shape of power just recurses into base and exponent.
func expandPower(e *eval.Evaluator, t *term.Term) *term.Term {
	b := e.B
	base := Expand(e, t.Child(0))
	expo := Expand(e, t.Child(1))

	if base.Tag() == term.TagSum && expo.Tag() == term.TagInteger && expo.Int().Sign() > 0 {
		n := expo.Int()
		if n.IsInt64() && n.Int64() <= maxMultinomialExponent {
			k := int(n.Int64())
			switch {
			case hasAlgebraicallyDependentRadicals(base):
				return b.SealExpanded(expandBySquaring(e, base, k))
			case k == 2:
				return b.SealExpanded(expandSquareOfSum(e, base))
			default:
				return b.SealExpanded(expandMultinomial(e, base, k))
			}
		}
	}

	if base == t.Child(0) && expo == t.Child(1) {
		return b.SealExpanded(t)
	}
	return b.SealExpanded(e.Eval(b.PowC(base, expo)))
}

// expandSquareOfSum emits a_i^2 for every term and 2*a_i*a_j for every
// i<j (the e==2 special case of step 4).
func expandSquareOfSum(e *eval.Evaluator, base *term.Term) *term.Term {
	b := e.B
	terms := base.Children()
	numAcc := term.Zero()
	tree := sumacc.New(b)
	for i, ai := range terms {
		insertMonomial(e, tree, &numAcc, e.Eval(b.PowC(ai, b.IntC64(2))))
		for j := i + 1; j < len(terms); j++ {
			cross := b.MulC(b.IntC64(2), b.MulC(ai, terms[j]))
			insertMonomial(e, tree, &numAcc, e.Eval(cross))
		}
	}
	return tree.GetSum(numAcc)
}

// expandMultinomial enumerates every composition of n into len(terms)
// non-negative parts and emits (n!/prod(a_i!)) * prod(base_i^a_i) for
// each, using a precomputed factorial table up to n.
func expandMultinomial(e *eval.Evaluator, base *term.Term, n int) *term.Term {
	b := e.B
	terms := base.Children()
	k := len(terms)
	fact := factorialTable(n)
	numAcc := term.Zero()
	tree := sumacc.New(b)

	comp := make([]int, k)
	var recurse func(idx, remaining int)
	recurse = func(idx, remaining int) {
		if idx == k-1 {
			comp[idx] = remaining
			emitMultinomialTerm(e, tree, &numAcc, terms, comp, fact, n)
			return
		}
		for a := 0; a <= remaining; a++ {
			comp[idx] = a
			recurse(idx+1, remaining-a)
		}
	}
	recurse(0, n)
	return tree.GetSum(numAcc)
}

func emitMultinomialTerm(e *eval.Evaluator, tree *sumacc.Tree, numAcc **term.Term, terms []*term.Term, comp []int, fact []*big.Int, n int) {
	b := e.B
	denom := big.NewInt(1)
	for _, a := range comp {
		denom.Mul(denom, fact[a])
	}
	coeff := new(big.Int).Div(fact[n], denom)
	raw := b.IntC(coeff)
	for i, a := range comp {
		if a == 0 {
			continue
		}
		raw = b.MulC(raw, b.PowC(terms[i], b.IntC64(int64(a))))
	}
	insertMonomial(e, tree, numAcc, e.Eval(raw))
}

func factorialTable(n int) []*big.Int {
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		table[i] = new(big.Int).Mul(table[i-1], big.NewInt(int64(i)))
	}
	return table
}

// hasAlgebraicallyDependentRadicals is the heuristic of step 4: at
// least one summand is an integer raised to a non-integer rational
// power, which the multinomial formula can't simplify across terms
// but repeated squaring (via the basecase multiplier) can.
func hasAlgebraicallyDependentRadicals(base *term.Term) bool {
	for _, c := range base.Children() {
		t := c
		if t.Tag() == term.TagFactor {
			t = t.Child(1)
		}
		if t.Tag() == term.TagPower {
			b0, e0 := t.Child(0), t.Child(1)
			if b0.Tag() == term.TagInteger && e0.Tag() == term.TagRational {
				return true
			}
		}
	}
	return false
}

// expandBySquaring raises base to the n-th power by repeated squaring,
// re-expanding (and hence re-evaluating) the product at every step so
// radical cancellations can occur between multiplications instead of
// only at the end.
func expandBySquaring(e *eval.Evaluator, base *term.Term, n int) *term.Term {
	result := term.One()
	sq := base
	for n > 0 {
		if n&1 == 1 {
			result = multiplyExpanded(e, result, sq)
		}
		n >>= 1
		if n > 0 {
			sq = multiplyExpanded(e, sq, sq)
		}
	}
	return result
}

func multiplyExpanded(e *eval.Evaluator, x, y *term.Term) *term.Term {
	return Expand(e, e.Eval(e.B.MulC(x, y)))
}
