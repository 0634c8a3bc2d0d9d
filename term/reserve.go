// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

// SumReserve and ProductReserve are the incremental accumulators of
// §4.2/§9: rather than modeling "reserve" as a variant of Term that
// must be carefully kept out of every evaluated tree, they are plain
// Go types confined to a builder's internals and converted to a sealed
// Term by a single Close call — the alternative §9 explicitly blesses
// ("a dedicated builder type that is converted to an evaluated term at
// a single closing step"). TagSumReserve/TagProductReserve remain
// defined on Tag for documentation of the term model but nothing
// constructs a Term carrying them.

// SumReserve accumulates a running numeric coefficient plus a growing
// set of non-numeric summands, amortizing what would otherwise be N
// intermediate sum allocations in a loop of N addinc_c calls.
type SumReserve struct {
	b     *Builder
	num   *Term
	terms []*Term
}

// NewSumReserve starts an empty accumulator with capacity hint n.
func (b *Builder) NewSumReserve(n int) *SumReserve {
	return &SumReserve{b: b, num: Zero(), terms: make([]*Term, 0, n)}
}

// AddInc folds x into the reserve (§4.2's addinc_c): numeric operands
// accumulate into num directly; non-numeric operands combining with an
// existing same-base term accumulate their coefficients; otherwise the
// term is appended. Growth is geometric via Go's slice append, meeting
// the "growing re-allocates with geometric overcapacity" requirement
// for free.
func (r *SumReserve) AddInc(x *Term) {
	if x.IsNumeric() {
		r.num = r.b.NumAdd(r.num, x, DefaultPrecision)
		return
	}
	coeff, base := splitFactor(x)
	for i, t := range r.terms {
		c, bs := splitFactor(t)
		if bs == base || Compare(bs, base) == 0 {
			r.terms[i] = r.b.FactorC(r.b.NumAdd(c, coeff, DefaultPrecision), base)
			return
		}
	}
	r.terms = append(r.terms, x)
}

// Close seals the reserve into a sum Term (or collapses to a single
// term / the numeric zero when there is nothing to sum). The result is
// NOT guaranteed canonical — eval still sorts and merges it — this
// only avoids intermediate allocation while accumulating.
func (r *SumReserve) Close() *Term {
	nonzero := r.terms
	if IsZeroNumeric(r.num) && len(nonzero) == 0 {
		return Zero()
	}
	if IsZeroNumeric(r.num) && len(nonzero) == 1 {
		return nonzero[0]
	}
	all := make([]*Term, 0, len(nonzero)+1)
	if !IsZeroNumeric(r.num) {
		all = append(all, r.num)
	}
	all = append(all, nonzero...)
	acc := all[0]
	for _, t := range all[1:] {
		acc = r.b.AddC(acc, t)
	}
	return acc
}

// ProductReserve is the multiplicative analogue of SumReserve.
type ProductReserve struct {
	b     *Builder
	num   *Term
	terms []*Term
}

// NewProductReserve starts an empty accumulator with capacity hint n.
func (b *Builder) NewProductReserve(n int) *ProductReserve {
	return &ProductReserve{b: b, num: One(), terms: make([]*Term, 0, n)}
}

// MulInc folds x into the reserve (§4.2's mulinc_c): numeric operands
// accumulate into num; a non-numeric operand combining with a same-base
// power accumulates exponents; otherwise it is appended.
func (r *ProductReserve) MulInc(x *Term) {
	if x.IsNumeric() {
		r.num = r.b.NumMul(r.num, x, DefaultPrecision)
		return
	}
	base, expo := splitPower(x)
	for i, t := range r.terms {
		b2, e2 := splitPower(t)
		if Compare(b2, base) == 0 {
			r.terms[i] = r.b.PowC(base, r.b.AddC(e2, expo))
			return
		}
	}
	r.terms = append(r.terms, x)
}

// Close seals the reserve into a product Term.
func (r *ProductReserve) Close() *Term {
	if IsZeroNumeric(r.num) {
		return Zero()
	}
	nonzero := r.terms
	if IsOneNumeric(r.num) && len(nonzero) == 0 {
		return One()
	}
	if IsOneNumeric(r.num) && len(nonzero) == 1 {
		return nonzero[0]
	}
	all := make([]*Term, 0, len(nonzero)+1)
	if !IsOneNumeric(r.num) {
		all = append(all, r.num)
	}
	all = append(all, nonzero...)
	acc := all[0]
	for _, t := range all[1:] {
		acc = r.b.MulC(acc, t)
	}
	return acc
}

// splitFactor decomposes a term into (coefficient, base), treating any
// non-Factor term as having an implicit coefficient of 1.
func splitFactor(t *Term) (coeff, base *Term) {
	if t.tag == TagFactor {
		return t.children[0], t.children[1]
	}
	return One(), t
}

// splitPower decomposes a term into (base, exponent), treating any
// non-Power term as having an implicit exponent of 1.
func splitPower(t *Term) (base, expo *Term) {
	if t.tag == TagPower {
		return t.children[0], t.children[1]
	}
	return t, One()
}
