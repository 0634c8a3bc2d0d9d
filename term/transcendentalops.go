// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import "math/big"

// The Num* transcendental functions below evaluate a unary
// transcendental numerically for an evaluated numeric argument,
// promoting integers/rationals to float first. They are the numeric
// leaf of eval's identity table (§6.3): called only once the symbolic
// special-case table has had a chance to fire.

func (b *Builder) numericFloat(x *Term, prec uint) *big.Float {
	if x.tag == TagComplex {
		Errorf("internal: numericFloat of complex argument")
	}
	return toBigFloat(x, prec)
}

func (b *Builder) NumExp(x *Term, prec uint) *Term {
	if x.tag == TagComplex {
		return b.complexExp(x, prec)
	}
	return b.FloatC(floatExp(b.numericFloat(x, prec), prec))
}

func (b *Builder) NumLog(x *Term, prec uint) *Term {
	if x.tag == TagComplex {
		return b.complexLog(x, prec)
	}
	f := b.numericFloat(x, prec)
	if f.Sign() < 0 {
		re := b.FloatC(floatLog(new(big.Float).SetPrec(prec).Neg(f), prec))
		return b.ComplexC(re, b.FloatC(new(big.Float).SetPrec(prec).Copy(bigPi)))
	}
	return b.FloatC(floatLog(f, prec))
}

func (b *Builder) NumSin(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	_, sin := floatCosSin(f, prec)
	return b.FloatC(sin)
}

func (b *Builder) NumCos(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	cos, _ := floatCosSin(f, prec)
	return b.FloatC(cos)
}

func (b *Builder) NumTan(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	cos, sin := floatCosSin(f, prec)
	if cos.Sign() == 0 {
		return NaN()
	}
	return b.FloatC(new(big.Float).SetPrec(prec).Quo(sin, cos))
}

func (b *Builder) NumAsin(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	if new(big.Float).SetPrec(prec).Abs(f).Cmp(one) > 0 {
		return NaN()
	}
	arg := new(big.Float).SetPrec(prec).Sub(one, new(big.Float).SetPrec(prec).Mul(f, f))
	sq := new(big.Float).SetPrec(prec).Sqrt(arg)
	if sq.Sign() == 0 {
		half := new(big.Float).SetPrec(prec).Quo(bigPi, big.NewFloat(2))
		if f.Sign() < 0 {
			half.Neg(half)
		}
		return b.FloatC(half)
	}
	ratio := new(big.Float).SetPrec(prec).Quo(f, sq)
	return b.FloatC(floatAtan(ratio, prec))
}

func (b *Builder) NumAcos(x *Term, prec uint) *Term {
	asin := b.NumAsin(x, prec)
	if asin.nan {
		return NaN()
	}
	half := new(big.Float).SetPrec(prec).Quo(bigPi, big.NewFloat(2))
	return b.FloatC(new(big.Float).SetPrec(prec).Sub(half, asin.bigFloat))
}

func (b *Builder) NumAtan(x *Term, prec uint) *Term {
	return b.FloatC(floatAtan(b.numericFloat(x, prec), prec))
}

func (b *Builder) NumSinh(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	ef := floatExp(f, prec)
	enf := floatExp(new(big.Float).SetPrec(prec).Neg(f), prec)
	z := new(big.Float).SetPrec(prec).Sub(ef, enf)
	return b.FloatC(z.Quo(z, big.NewFloat(2)))
}

func (b *Builder) NumCosh(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	ef := floatExp(f, prec)
	enf := floatExp(new(big.Float).SetPrec(prec).Neg(f), prec)
	z := new(big.Float).SetPrec(prec).Add(ef, enf)
	return b.FloatC(z.Quo(z, big.NewFloat(2)))
}

func (b *Builder) NumTanh(x *Term, prec uint) *Term {
	sinh := b.NumSinh(x, prec).bigFloat
	cosh := b.NumCosh(x, prec).bigFloat
	return b.FloatC(new(big.Float).SetPrec(prec).Quo(sinh, cosh))
}

func (b *Builder) NumAsinh(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	inner := new(big.Float).SetPrec(prec).Add(new(big.Float).SetPrec(prec).Mul(f, f), big.NewFloat(1))
	sq := new(big.Float).SetPrec(prec).Sqrt(inner)
	return b.FloatC(floatLog(new(big.Float).SetPrec(prec).Add(f, sq), prec))
}

func (b *Builder) NumAcosh(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	if f.Cmp(one) < 0 {
		return NaN()
	}
	inner := new(big.Float).SetPrec(prec).Sub(new(big.Float).SetPrec(prec).Mul(f, f), one)
	sq := new(big.Float).SetPrec(prec).Sqrt(inner)
	return b.FloatC(floatLog(new(big.Float).SetPrec(prec).Add(f, sq), prec))
}

func (b *Builder) NumAtanh(x *Term, prec uint) *Term {
	f := b.numericFloat(x, prec)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	if new(big.Float).SetPrec(prec).Abs(f).Cmp(one) >= 0 {
		return NaN()
	}
	num := new(big.Float).SetPrec(prec).Add(one, f)
	den := new(big.Float).SetPrec(prec).Sub(one, f)
	ratio := new(big.Float).SetPrec(prec).Quo(num, den)
	z := floatLog(ratio, prec)
	return b.FloatC(z.Quo(z, big.NewFloat(2)))
}

// NumSign returns the sign of a real numeric as -1/0/1, or, for
// complex, x/|x|.
func (b *Builder) NumSign(x *Term, prec uint) *Term {
	if x.tag == TagComplex {
		if IsZeroNumeric(x) {
			return Zero()
		}
		return b.NumDiv(x, b.NumAbs(x, prec), prec)
	}
	switch sign(x) {
	case 0:
		return Zero()
	case 1:
		return One()
	default:
		return NegOne()
	}
}

// NumFloor returns floor(x) for a real numeric.
func (b *Builder) NumFloor(x *Term, prec uint) *Term {
	switch x.tag {
	case TagInteger:
		return x
	case TagRational:
		q := new(big.Int).Div(x.bigRat.Num(), x.bigRat.Denom())
		return b.IntC(q)
	case TagFloat:
		i, _ := x.bigFloat.Int(nil)
		if x.bigFloat.Sign() < 0 {
			rem := new(big.Float).SetPrec(prec).SetInt(i)
			if rem.Cmp(x.bigFloat) != 0 {
				i.Sub(i, big.NewInt(1))
			}
		}
		return b.IntC(i)
	}
	Errorf("internal: NumFloor of non-real numeric")
	return nil
}
