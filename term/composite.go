// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

// This file holds the unevaluated composite constructors of §4.2:
// AddC, MulC, SubC, DivC, NegC, PowC and the unary transcendentals.
// They perform only the peephole folds the spec calls out (multiply-
// by-1, add-of-0, numeric-numeric short-circuit) and otherwise hand
// back an un-evaluated tree for eval to normalize; none of them sort
// children or merge like bases, which is eval's job.

// AddC builds an unevaluated sum of x and y.
func (b *Builder) AddC(x, y *Term) *Term {
	if x.IsNumeric() && y.IsNumeric() {
		return b.NumAdd(x, y, DefaultPrecision)
	}
	if x.IsNumeric() && IsZeroNumeric(x) {
		return y
	}
	if y.IsNumeric() && IsZeroNumeric(y) {
		return x
	}
	nb := b.NodeC(TagSum, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, y)
	return nb.CloseC(0)
}

// SubC builds an unevaluated x - y.
func (b *Builder) SubC(x, y *Term) *Term {
	return b.AddC(x, b.NegC(y))
}

// NegC builds an unevaluated -x.
func (b *Builder) NegC(x *Term) *Term {
	if x.IsNumeric() {
		return b.NumNeg(x, DefaultPrecision)
	}
	if x.tag == TagFactor {
		nb := b.NodeC(TagFactor, 2)
		nb.SetAt(0, b.NegC(x.children[0]))
		nb.SetAt(1, x.children[1])
		return nb.CloseC(0)
	}
	nb := b.NodeC(TagFactor, 2)
	nb.SetAt(0, NegOne())
	nb.SetAt(1, x)
	return nb.CloseC(0)
}

// MulC builds an unevaluated product of x and y.
func (b *Builder) MulC(x, y *Term) *Term {
	if x.IsNumeric() && y.IsNumeric() {
		return b.NumMul(x, y, DefaultPrecision)
	}
	if (x.IsNumeric() && IsZeroNumeric(x)) || (y.IsNumeric() && IsZeroNumeric(y)) {
		return Zero()
	}
	if x.IsNumeric() && IsOneNumeric(x) {
		return y
	}
	if y.IsNumeric() && IsOneNumeric(y) {
		return x
	}
	nb := b.NodeC(TagProduct, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, y)
	return nb.CloseC(0)
}

// DivC builds an unevaluated x / y.
func (b *Builder) DivC(x, y *Term) *Term {
	if x.IsNumeric() && y.IsNumeric() {
		return b.NumDiv(x, y, DefaultPrecision)
	}
	return b.MulC(x, b.PowC(y, NegOne()))
}

// PowC builds an unevaluated base**expo.
func (b *Builder) PowC(base, expo *Term) *Term {
	if base.IsNumeric() && expo.IsNumeric() {
		if r, ok := b.NumPow(base, expo, DefaultPrecision, 0); ok {
			return r
		}
	}
	if expo.IsNumeric() && IsOneNumeric(expo) {
		return base
	}
	if expo.IsNumeric() && IsZeroNumeric(expo) {
		return One()
	}
	nb := b.NodeC(TagPower, 2)
	nb.SetAt(0, base)
	nb.SetAt(1, expo)
	return nb.CloseC(0)
}

// unaryTranscendental builds an unevaluated single-child transcendental
// node for the given tag.
func (b *Builder) unaryTranscendental(tag Tag, x *Term) *Term {
	nb := b.NodeC(tag, 1)
	nb.SetAt(0, x)
	return nb.CloseC(0)
}

func (b *Builder) ExpC(x *Term) *Term   { return b.unaryTranscendental(TagExp, x) }
func (b *Builder) LogC(x *Term) *Term   { return b.unaryTranscendental(TagLog, x) }
func (b *Builder) SinC(x *Term) *Term   { return b.unaryTranscendental(TagSin, x) }
func (b *Builder) CosC(x *Term) *Term   { return b.unaryTranscendental(TagCos, x) }
func (b *Builder) TanC(x *Term) *Term   { return b.unaryTranscendental(TagTan, x) }
func (b *Builder) AsinC(x *Term) *Term  { return b.unaryTranscendental(TagAsin, x) }
func (b *Builder) AcosC(x *Term) *Term  { return b.unaryTranscendental(TagAcos, x) }
func (b *Builder) AtanC(x *Term) *Term  { return b.unaryTranscendental(TagAtan, x) }
func (b *Builder) SinhC(x *Term) *Term  { return b.unaryTranscendental(TagSinh, x) }
func (b *Builder) CoshC(x *Term) *Term  { return b.unaryTranscendental(TagCosh, x) }
func (b *Builder) TanhC(x *Term) *Term  { return b.unaryTranscendental(TagTanh, x) }
func (b *Builder) AsinhC(x *Term) *Term { return b.unaryTranscendental(TagAsinh, x) }
func (b *Builder) AcoshC(x *Term) *Term { return b.unaryTranscendental(TagAcosh, x) }
func (b *Builder) AtanhC(x *Term) *Term { return b.unaryTranscendental(TagAtanh, x) }
func (b *Builder) AbsC(x *Term) *Term   { return b.unaryTranscendental(TagAbs, x) }
func (b *Builder) SignC(x *Term) *Term  { return b.unaryTranscendental(TagSign, x) }
func (b *Builder) FloorC(x *Term) *Term { return b.unaryTranscendental(TagFloor, x) }
func (b *Builder) ConjC(x *Term) *Term  { return b.unaryTranscendental(TagConj, x) }
func (b *Builder) RealC(x *Term) *Term  { return b.unaryTranscendental(TagReal, x) }
func (b *Builder) ImagC(x *Term) *Term  { return b.unaryTranscendental(TagImag, x) }
func (b *Builder) ArgC(x *Term) *Term   { return b.unaryTranscendental(TagArg, x) }
func (b *Builder) GammaC(x *Term) *Term { return b.unaryTranscendental(TagGamma, x) }

// FactorC builds the canonical (numeric-coefficient, non-numeric-base)
// binary shape (§3.2); coeff of 1 collapses to base, 0 collapses to the
// numeric zero.
func (b *Builder) FactorC(coeff, base *Term) *Term {
	if IsZeroNumeric(coeff) {
		return Zero()
	}
	if IsOneNumeric(coeff) {
		return base
	}
	if base.tag == TagFactor {
		return b.FactorC(b.NumMul(coeff, base.children[0], DefaultPrecision), base.children[1])
	}
	nb := b.NodeC(TagFactor, 2)
	nb.SetAt(0, coeff)
	nb.SetAt(1, base)
	return nb.CloseC(0)
}

// SealedFactorC is FactorC with the result marked Evaluated: the
// caller is asserting that coeff and base are already canonical (eval
// and the sum accumulator build their Factor nodes this way so the
// result satisfies Eval's idempotency contract without a redundant
// pass through evalFactor).
func (b *Builder) SealedFactorC(coeff, base *Term) *Term {
	if IsZeroNumeric(coeff) {
		return Zero()
	}
	if IsOneNumeric(coeff) {
		return base
	}
	if base.tag == TagFactor {
		return b.SealedFactorC(b.NumMul(coeff, base.children[0], DefaultPrecision), base.children[1])
	}
	nb := b.NodeC(TagFactor, 2)
	nb.SetAt(0, coeff)
	nb.SetAt(1, base)
	return nb.CloseC(Evaluated)
}

// ListC builds an unevaluated list of elements, in the given order.
func (b *Builder) ListC(elems []*Term) *Term {
	nb := b.NodeC(TagList, len(elems))
	for i, e := range elems {
		nb.SetAt(i, e)
	}
	return nb.CloseC(Evaluated)
}

// RangeC builds a range node (lo, hi, step).
func (b *Builder) RangeC(lo, hi, step *Term) *Term {
	nb := b.NodeC(TagRange, 3)
	nb.SetAt(0, lo)
	nb.SetAt(1, hi)
	nb.SetAt(2, step)
	return nb.CloseC(Evaluated)
}

// FuncC builds an unevaluated generic function application name(args...).
func (b *Builder) FuncC(name string, args []*Term) *Term {
	nb := b.NodeC(TagFunc, len(args))
	for i, a := range args {
		nb.SetAt(i, a)
	}
	nb.SetName(name)
	return nb.CloseC(0)
}

// DiffC builds an unevaluated diff(f, v, n, at) node; at may be nil for
// a purely symbolic derivative (no evaluation point, §4.9).
func (b *Builder) DiffC(f, v *Term, n int, at *Term) *Term {
	slots := 2
	if at != nil {
		slots = 3
	}
	nb := b.NodeC(TagDiff, slots)
	nb.SetAt(0, f)
	nb.SetAt(1, v)
	if at != nil {
		nb.SetAt(2, at)
	}
	nb.SetOrder(n)
	return nb.CloseC(0)
}

// ModC builds an unevaluated x mod m node.
func (b *Builder) ModC(x, m *Term) *Term {
	nb := b.NodeC(TagMod, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, m)
	return nb.CloseC(0)
}

// GCDC builds an unevaluated gcd(x, y) node.
func (b *Builder) GCDC(x, y *Term) *Term {
	nb := b.NodeC(TagGCD, 2)
	nb.SetAt(0, x)
	nb.SetAt(1, y)
	return nb.CloseC(0)
}
