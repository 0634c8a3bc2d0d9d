// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import "math/big"

// DefaultPrecision is the big.Float precision (in bits) used when a
// caller does not have an ambient frame precision to hand in. The eval
// package always threads the frame's configured precision through
// instead of relying on this default.
const DefaultPrecision = 256

func numRank(t *Term) int {
	switch t.tag {
	case TagInteger:
		return 0
	case TagRational:
		return 1
	case TagFloat:
		return 2
	case TagComplex:
		return 3
	}
	Errorf("internal: numRank of non-numeric tag %d", t.tag)
	return -1
}

// promote raises x to at least rank target, given a float precision to
// use if a float conversion is needed.
func (b *Builder) promote(x *Term, target int, prec uint) *Term {
	for numRank(x) < target {
		switch x.tag {
		case TagInteger:
			x = b.rawRat(new(big.Rat).SetInt(x.bigInt))
		case TagRational:
			f := new(big.Float).SetPrec(prec).SetRat(x.bigRat)
			x = b.FloatC(f)
		case TagFloat:
			x = b.ComplexC(x, Zero())
		}
	}
	return x
}

// NumAdd returns x+y for evaluated numerics, promoting to the higher
// rank of the two operands.
func (b *Builder) NumAdd(x, y *Term, prec uint) *Term {
	if x.nan || y.nan {
		return NaN()
	}
	rk := maxInt(numRank(x), numRank(y))
	x, y = b.promote(x, rk, prec), b.promote(y, rk, prec)
	switch rk {
	case 0:
		return b.IntC(new(big.Int).Add(x.bigInt, y.bigInt))
	case 1:
		r := ratAdd(x.bigRat, y.bigRat)
		return b.RatC(r.Num(), r.Denom())
	case 2:
		return b.FloatC(new(big.Float).SetPrec(prec).Add(x.bigFloat, y.bigFloat))
	case 3:
		re := b.NumAdd(x.children[0], y.children[0], prec)
		im := b.NumAdd(x.children[1], y.children[1], prec)
		return b.ComplexC(re, im)
	}
	panic("unreachable")
}

func ratAdd(x, y *big.Rat) *big.Rat { return new(big.Rat).Add(x, y) }
func ratSub(x, y *big.Rat) *big.Rat { return new(big.Rat).Sub(x, y) }
func ratMul(x, y *big.Rat) *big.Rat { return new(big.Rat).Mul(x, y) }
func ratQuo(x, y *big.Rat) *big.Rat { return new(big.Rat).Quo(x, y) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NumSub returns x-y.
func (b *Builder) NumSub(x, y *Term, prec uint) *Term {
	if x.nan || y.nan {
		return NaN()
	}
	rk := maxInt(numRank(x), numRank(y))
	x, y = b.promote(x, rk, prec), b.promote(y, rk, prec)
	switch rk {
	case 0:
		return b.IntC(new(big.Int).Sub(x.bigInt, y.bigInt))
	case 1:
		r := ratSub(x.bigRat, y.bigRat)
		return b.RatC(r.Num(), r.Denom())
	case 2:
		return b.FloatC(new(big.Float).SetPrec(prec).Sub(x.bigFloat, y.bigFloat))
	case 3:
		re := b.NumSub(x.children[0], y.children[0], prec)
		im := b.NumSub(x.children[1], y.children[1], prec)
		return b.ComplexC(re, im)
	}
	panic("unreachable")
}

// NumMul returns x*y.
func (b *Builder) NumMul(x, y *Term, prec uint) *Term {
	if x.nan || y.nan {
		return NaN()
	}
	rk := maxInt(numRank(x), numRank(y))
	x, y = b.promote(x, rk, prec), b.promote(y, rk, prec)
	switch rk {
	case 0:
		return b.IntC(new(big.Int).Mul(x.bigInt, y.bigInt))
	case 1:
		r := ratMul(x.bigRat, y.bigRat)
		return b.RatC(r.Num(), r.Denom())
	case 2:
		return b.FloatC(new(big.Float).SetPrec(prec).Mul(x.bigFloat, y.bigFloat))
	case 3:
		xr, xi := x.children[0], x.children[1]
		yr, yi := y.children[0], y.children[1]
		re := b.NumSub(b.NumMul(xr, yr, prec), b.NumMul(xi, yi, prec), prec)
		im := b.NumAdd(b.NumMul(xr, yi, prec), b.NumMul(xi, yr, prec), prec)
		return b.ComplexC(re, im)
	}
	panic("unreachable")
}

// NumNeg returns -x.
func (b *Builder) NumNeg(x *Term, prec uint) *Term {
	if x.nan {
		return NaN()
	}
	switch x.tag {
	case TagInteger:
		return b.IntC(new(big.Int).Neg(x.bigInt))
	case TagRational:
		return b.RatC(new(big.Int).Neg(x.bigRat.Num()), x.bigRat.Denom())
	case TagFloat:
		return b.FloatC(new(big.Float).SetPrec(prec).Neg(x.bigFloat))
	case TagComplex:
		return b.ComplexC(b.NumNeg(x.children[0], prec), b.NumNeg(x.children[1], prec))
	}
	Errorf("internal: NumNeg of non-numeric")
	return nil
}

// NumInv returns 1/x, or NaN for x == 0 (§7).
func (b *Builder) NumInv(x *Term, prec uint) *Term {
	if x.nan || IsZeroNumeric(x) {
		return NaN()
	}
	switch x.tag {
	case TagInteger:
		return b.RatC(big.NewInt(1), x.bigInt)
	case TagRational:
		return b.RatC(x.bigRat.Denom(), x.bigRat.Num())
	case TagFloat:
		return b.FloatC(new(big.Float).SetPrec(prec).Quo(big.NewFloat(1), x.bigFloat))
	case TagComplex:
		denom := b.NumAdd(b.NumMul(x.children[0], x.children[0], prec), b.NumMul(x.children[1], x.children[1], prec), prec)
		re := b.NumDiv(x.children[0], denom, prec)
		im := b.NumNeg(b.NumDiv(x.children[1], denom, prec), prec)
		return b.ComplexC(re, im)
	}
	Errorf("internal: NumInv of non-numeric")
	return nil
}

// NumDiv returns x/y, or NaN for y == 0 (§7).
func (b *Builder) NumDiv(x, y *Term, prec uint) *Term {
	if IsZeroNumeric(y) {
		return NaN()
	}
	return b.NumMul(x, b.NumInv(y, prec), prec)
}

// NumAbs returns |x|.
func (b *Builder) NumAbs(x *Term, prec uint) *Term {
	switch x.tag {
	case TagInteger:
		return b.IntC(new(big.Int).Abs(x.bigInt))
	case TagRational:
		return b.RatC(new(big.Int).Abs(x.bigRat.Num()), x.bigRat.Denom())
	case TagFloat:
		return b.FloatC(new(big.Float).SetPrec(prec).Abs(x.bigFloat))
	case TagComplex:
		mag := b.NumAdd(b.NumMul(x.children[0], x.children[0], prec), b.NumMul(x.children[1], x.children[1], prec), prec)
		return b.NumSqrt(mag, prec)
	}
	Errorf("internal: NumAbs of non-numeric")
	return nil
}

// NumSqrt returns a numeric (possibly float) square root of a
// non-negative evaluated numeric. Used internally by NumAbs/NumPow.
func (b *Builder) NumSqrt(x *Term, prec uint) *Term {
	if x.tag == TagInteger && x.bigInt.Sign() >= 0 {
		root := new(big.Int).Sqrt(x.bigInt)
		if new(big.Int).Mul(root, root).Cmp(x.bigInt) == 0 {
			return b.IntC(root)
		}
	}
	f := toBigFloat(x, prec)
	if f.Sign() < 0 {
		return NaN()
	}
	z := new(big.Float).SetPrec(prec).Sqrt(f)
	return b.FloatC(z)
}

func toBigFloat(x *Term, prec uint) *big.Float {
	switch x.tag {
	case TagInteger:
		return new(big.Float).SetPrec(prec).SetInt(x.bigInt)
	case TagRational:
		return new(big.Float).SetPrec(prec).SetRat(x.bigRat)
	case TagFloat:
		return x.bigFloat
	}
	return nil
}

// NumConj returns the complex conjugate (identity on real numerics).
func (b *Builder) NumConj(x *Term, prec uint) *Term {
	if x.tag != TagComplex {
		return x
	}
	return b.ComplexC(x.children[0], b.NumNeg(x.children[1], prec))
}

// NumCmp compares two real numerics: -1, 0 or 1. Complex numbers are
// not ordered by this function; use term.Compare for the total order.
func NumCmp(x, y *Term) int {
	rk := maxInt(numRank(x), numRank(y))
	switch rk {
	case 0:
		return x.bigInt.Cmp(y.bigInt)
	case 1:
		xr, yr := asRat(x), asRat(y)
		return xr.Cmp(yr)
	default:
		xf, yf := toBigFloat(x, DefaultPrecision), toBigFloat(y, DefaultPrecision)
		return xf.Cmp(yf)
	}
}

func asRat(x *Term) *big.Rat {
	if x.tag == TagInteger {
		return new(big.Rat).SetInt(x.bigInt)
	}
	return x.bigRat
}

// NumGCD computes the numeric gcd convention of §4.6/§6.4: integers by
// Euclid; any mixture involving a rational or float is, by deliberate
// convention, 1; complex integers reduce to gcd(real, imag).
func (b *Builder) NumGCD(x, y *Term) *Term {
	if x.tag == TagInteger && y.tag == TagInteger {
		return b.IntC(new(big.Int).GCD(nil, nil, new(big.Int).Abs(x.bigInt), new(big.Int).Abs(y.bigInt)))
	}
	if x.tag == TagComplex && y.tag == TagComplex {
		g1 := b.NumGCD(x.children[0], y.children[0])
		g2 := b.NumGCD(x.children[1], y.children[1])
		return b.NumGCD(g1, g2)
	}
	return One()
}

// NumLCM computes lcm(x,y) = x*y/gcd(x,y) for integers; 1 elsewhere by
// the same convention as NumGCD.
func (b *Builder) NumLCM(x, y *Term, prec uint) *Term {
	if x.tag == TagInteger && y.tag == TagInteger {
		if x.bigInt.Sign() == 0 || y.bigInt.Sign() == 0 {
			return Zero()
		}
		g := b.NumGCD(x, y)
		prod := new(big.Int).Mul(x.bigInt, y.bigInt)
		q := new(big.Int).Div(prod, g.bigInt)
		return b.IntC(new(big.Int).Abs(q))
	}
	return One()
}

// Smod returns the representative of a mod b in the symmetric range
// [-ceil((|b|-1)/2), floor(|b|/2)] (§4.6, §6.4, §GLOSSARY).
func (b *Builder) Smod(a, m *Term) *Term {
	if a.tag != TagInteger || m.tag != TagInteger {
		Errorf("smod: operands must be integers")
	}
	if m.bigInt.Sign() == 0 {
		Errorf("smod: modulus is zero")
	}
	mod := new(big.Int).Abs(m.bigInt)
	r := new(big.Int).Mod(a.bigInt, mod)
	half := new(big.Int).Rsh(mod, 1)
	if r.Cmp(half) > 0 {
		r.Sub(r, mod)
	}
	return b.IntC(r)
}
