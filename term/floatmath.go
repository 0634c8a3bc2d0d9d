// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import "math/big"

var floatLog2 = mustParseFloat("0.693147180559945309417232121458176568075500134360255254120680009")

const maxLoopIterations = 4000

// floatExp computes e**x by Taylor series, converging quickly because
// callers only ever feed it arguments already reduced to a small range
// (ground in the teacher's power.go exponential()).
func floatExp(x *big.Float, prec uint) *big.Float {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	xN := new(big.Float).SetPrec(prec).Set(x)
	term := new(big.Float).SetPrec(prec)
	n := new(big.Float).SetPrec(prec).Set(one)
	nFactorial := new(big.Float).SetPrec(prec).Set(one)
	z := new(big.Float).SetPrec(prec).SetInt64(1)
	prevZ := new(big.Float).SetPrec(prec)

	for i := 0; i < maxLoopIterations; i++ {
		term.Quo(xN, nFactorial)
		z.Add(z, term)
		delta := new(big.Float).SetPrec(prec).Sub(z, prevZ)
		if delta.Sign() == 0 {
			break
		}
		prevZ.Set(z)
		xN.Mul(xN, x)
		n.Add(n, one)
		nFactorial.Mul(nFactorial, n)
	}
	return z
}

// floatLog computes the natural logarithm of a positive x via the
// Maclaurin series for log(1-y) after mantissa/exponent reduction
// (ground in the teacher's log.go floatLog).
func floatLog(x *big.Float, prec uint) *big.Float {
	if x.Sign() <= 0 {
		Errorf("log of non-positive value")
	}
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	xx := new(big.Float).SetPrec(prec).Set(x)
	invert := false
	if xx.Cmp(one) > 0 {
		invert = true
		xx.Quo(one, xx)
	}

	mantissa := new(big.Float).SetPrec(prec)
	exp2 := xx.MantExp(mantissa)
	exp := new(big.Float).SetPrec(prec).SetInt64(int64(exp2))
	exp.Mul(exp, floatLog2)
	if invert {
		exp.Neg(exp)
	}

	y := new(big.Float).SetPrec(prec).SetInt64(1)
	y.Sub(y, mantissa)

	yN := new(big.Float).SetPrec(prec).Set(y)
	term := new(big.Float).SetPrec(prec)
	z := new(big.Float).SetPrec(prec)
	prevZ := new(big.Float).SetPrec(prec)

	for i := 1; i < maxLoopIterations; i++ {
		term.Quo(yN, new(big.Float).SetPrec(prec).SetInt64(int64(i)))
		z.Sub(z, term)
		delta := new(big.Float).SetPrec(prec).Sub(z, prevZ)
		if delta.Sign() == 0 {
			break
		}
		prevZ.Set(z)
		yN.Mul(yN, y)
	}

	if invert {
		z.Neg(z)
	}
	z.Add(z, exp)
	return z
}

// complexLog returns log(z) = log|z| + i*arg(z) for an evaluated
// complex term.
func (b *Builder) complexLog(z *Term, prec uint) *Term {
	re, im := z.children[0], z.children[1]
	mag := b.NumAbs(z, prec)
	magF := toBigFloat(mag, prec)
	logMag := floatLog(magF, prec)
	arg := complexArg(re, im, prec)
	return b.ComplexC(b.FloatC(logMag), b.FloatC(arg))
}

// complexExp returns e**z for an evaluated complex term z:
// e**(a+bi) = e**a * (cos b, sin b).
func (b *Builder) complexExp(z *Term, prec uint) *Term {
	a := toBigFloat(z.children[0], prec)
	bb := toBigFloat(z.children[1], prec)
	ea := floatExp(a, prec)
	cosB, sinB := floatCosSin(bb, prec)
	re := new(big.Float).SetPrec(prec).Mul(ea, cosB)
	im := new(big.Float).SetPrec(prec).Mul(ea, sinB)
	return b.ComplexC(b.FloatC(re), b.FloatC(im))
}

// complexArg returns atan2(im, re) via a Taylor-series atan, reduced to
// the correct quadrant.
func complexArg(re, im *Term, prec uint) *big.Float {
	reF := toBigFloat(re, prec)
	imF := toBigFloat(im, prec)
	if imF.Sign() == 0 {
		if reF.Sign() >= 0 {
			return new(big.Float).SetPrec(prec)
		}
		return new(big.Float).SetPrec(prec).Copy(bigPi)
	}
	if reF.Sign() == 0 {
		halfPi := new(big.Float).SetPrec(prec).Quo(bigPi, big.NewFloat(2))
		if imF.Sign() > 0 {
			return halfPi
		}
		return new(big.Float).SetPrec(prec).Neg(halfPi)
	}
	ratio := new(big.Float).SetPrec(prec).Quo(imF, reF)
	a := floatAtan(ratio, prec)
	switch {
	case reF.Sign() > 0:
		return a
	case imF.Sign() >= 0:
		return new(big.Float).SetPrec(prec).Add(a, bigPi)
	default:
		return new(big.Float).SetPrec(prec).Sub(a, bigPi)
	}
}

// floatAtan computes atan(x) by the Euler-accelerated series for
// |x|<=1, else via atan(x) = pi/2 - atan(1/x).
func floatAtan(x *big.Float, prec uint) *big.Float {
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	if new(big.Float).SetPrec(prec).Abs(x).Cmp(one) > 0 {
		inv := new(big.Float).SetPrec(prec).Quo(one, x)
		halfPi := new(big.Float).SetPrec(prec).Quo(bigPi, big.NewFloat(2))
		r := floatAtan(inv, prec)
		if x.Sign() > 0 {
			return new(big.Float).SetPrec(prec).Sub(halfPi, r)
		}
		return new(big.Float).SetPrec(prec).Sub(new(big.Float).SetPrec(prec).Neg(halfPi), r)
	}
	// atan(x) = x - x^3/3 + x^5/5 - ...
	xN := new(big.Float).SetPrec(prec).Set(x)
	x2 := new(big.Float).SetPrec(prec).Mul(x, x)
	z := new(big.Float).SetPrec(prec)
	prevZ := new(big.Float).SetPrec(prec)
	sign := int64(1)
	for n := int64(1); n < maxLoopIterations; n += 2 {
		term := new(big.Float).SetPrec(prec).Quo(xN, big.NewFloat(float64(n)))
		if sign < 0 {
			z.Sub(z, term)
		} else {
			z.Add(z, term)
		}
		delta := new(big.Float).SetPrec(prec).Sub(z, prevZ)
		if delta.Sign() == 0 {
			break
		}
		prevZ.Set(z)
		xN.Mul(xN, x2)
		sign = -sign
	}
	return z
}

// floatCosSin computes (cos x, sin x) via Taylor series after argument
// reduction modulo 2*pi.
func floatCosSin(x *big.Float, prec uint) (cos, sin *big.Float) {
	twoPi := new(big.Float).SetPrec(prec).Mul(bigPi, big.NewFloat(2))
	r := new(big.Float).SetPrec(prec).Set(x)
	if r.MantExp(nil) > 0 {
		q := new(big.Float).SetPrec(prec).Quo(r, twoPi)
		qi, _ := q.Int(nil)
		adj := new(big.Float).SetPrec(prec).SetInt(qi)
		adj.Mul(adj, twoPi)
		r.Sub(r, adj)
	}
	sinZ := new(big.Float).SetPrec(prec)
	cosZ := new(big.Float).SetPrec(prec).SetInt64(1)
	sinTerm := new(big.Float).SetPrec(prec).Set(r)
	cosTerm := new(big.Float).SetPrec(prec).SetInt64(1)
	r2 := new(big.Float).SetPrec(prec).Mul(r, r)
	prevSin := new(big.Float).SetPrec(prec)
	prevCos := new(big.Float).SetPrec(prec)
	for n := int64(1); n < maxLoopIterations; n++ {
		sinZ.Add(sinZ, sinTerm)
		cosZ.Add(cosZ, cosTerm)
		dSin := new(big.Float).SetPrec(prec).Sub(sinZ, prevSin)
		dCos := new(big.Float).SetPrec(prec).Sub(cosZ, prevCos)
		if dSin.Sign() == 0 && dCos.Sign() == 0 {
			break
		}
		prevSin.Set(sinZ)
		prevCos.Set(cosZ)
		// sinTerm_{k+1} = -sinTerm_k * r^2 / ((2k)(2k+1))
		denomSin := float64(2*n) * float64(2*n+1)
		sinTerm.Mul(sinTerm, r2)
		sinTerm.Quo(sinTerm, big.NewFloat(denomSin))
		sinTerm.Neg(sinTerm)
		denomCos := float64(2*n-1) * float64(2*n)
		cosTerm.Mul(cosTerm, r2)
		cosTerm.Quo(cosTerm, big.NewFloat(denomCos))
		cosTerm.Neg(cosTerm)
	}
	return cosZ, sinZ
}
