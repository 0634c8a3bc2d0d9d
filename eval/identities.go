// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"math/big"
	"sync"

	"maylib.dev/may/term"
)

// evalTranscendental implements the Unary transcendental bullet of
// §4.3: consult the identity table (§6.3) first, then fall back to
// numeric evaluation for a numeric argument, then leave the node
// structural.
func (e *Evaluator) evalTranscendental(t *term.Term) *term.Term {
	arg := e.Eval(t.Child(0))
	if r, ok := e.identity(t.Tag(), arg); ok {
		return r
	}
	if arg.IsNumeric() {
		return e.numericTranscendental(t.Tag(), arg)
	}
	nb := e.B.NodeC(t.Tag(), 1)
	nb.SetAt(0, arg)
	return nb.CloseC(term.Evaluated)
}

func (e *Evaluator) numericTranscendental(tag term.Tag, arg *term.Term) *term.Term {
	prec := e.F.Precision()
	switch tag {
	case term.TagExp:
		return e.B.NumExp(arg, prec)
	case term.TagLog:
		return e.B.NumLog(arg, prec)
	case term.TagSin:
		return e.B.NumSin(arg, prec)
	case term.TagCos:
		return e.B.NumCos(arg, prec)
	case term.TagTan:
		return e.B.NumTan(arg, prec)
	case term.TagAsin:
		return e.B.NumAsin(arg, prec)
	case term.TagAcos:
		return e.B.NumAcos(arg, prec)
	case term.TagAtan:
		return e.B.NumAtan(arg, prec)
	case term.TagSinh:
		return e.B.NumSinh(arg, prec)
	case term.TagCosh:
		return e.B.NumCosh(arg, prec)
	case term.TagTanh:
		return e.B.NumTanh(arg, prec)
	case term.TagAsinh:
		return e.B.NumAsinh(arg, prec)
	case term.TagAcosh:
		return e.B.NumAcosh(arg, prec)
	case term.TagAtanh:
		return e.B.NumAtanh(arg, prec)
	case term.TagAbs:
		return e.B.NumAbs(arg, prec)
	case term.TagSign:
		return e.B.NumSign(arg, prec)
	case term.TagFloor:
		return e.B.NumFloor(arg, prec)
	case term.TagConj:
		return e.B.NumConj(arg, prec)
	case term.TagReal:
		if arg.Tag() == term.TagComplex {
			return arg.Child(0)
		}
		return arg
	case term.TagImag:
		if arg.Tag() == term.TagComplex {
			return arg.Child(1)
		}
		return term.Zero()
	case term.TagArg:
		if arg.Tag() == term.TagComplex {
			z := e.B.NumLog(arg, prec)
			if z.Tag() == term.TagComplex {
				return z.Child(1)
			}
		}
		if term.NumCmp(arg, term.Zero()) < 0 {
			return e.B.FloatC(new(big.Float).SetPrec(prec).Copy(piApprox()))
		}
		return term.Zero()
	case term.TagGamma:
		// Gamma has no closed-form Taylor evaluator here (out of scope
		// per §1's trigonometric/special-value-table exclusion analogue);
		// leave it structural for a non-identity numeric argument too.
		nb := e.B.NodeC(term.TagGamma, 1)
		nb.SetAt(0, arg)
		return nb.CloseC(term.Evaluated)
	}
	term.Errorf("eval: unhandled transcendental tag %d", tag)
	return nil
}

var (
	piOnce                       sync.Once
	halfPi, thirdPi, quarterPi, sixthPi *term.Term
	sqrt2Over2, sqrt3Over2       *term.Term
)

func initSpecialAngles(b *term.Builder) {
	piOnce.Do(func() {
		halfPi = b.FactorC(term.Half(), term.Pi())
		thirdPi = b.FactorC(b.RatC(big.NewInt(1), big.NewInt(3)), term.Pi())
		quarterPi = b.FactorC(b.RatC(big.NewInt(1), big.NewInt(4)), term.Pi())
		sixthPi = b.FactorC(b.RatC(big.NewInt(1), big.NewInt(6)), term.Pi())
		sqrt2Over2 = b.DivC(b.PowC(b.IntC64(2), term.Half()), b.IntC64(2))
		sqrt3Over2 = b.DivC(b.PowC(b.IntC64(3), term.Half()), b.IntC64(2))
	})
}

func piApprox() *big.Float {
	f, _, _ := big.ParseFloat("3.14159265358979323846264338327950288419716939937510582097494459", 10, 200, big.ToNearestEven)
	return f
}

// piMultiple reports whether t is exactly n*π for an integer n,
// returning n.
func piMultiple(t *term.Term) (*big.Int, bool) {
	if term.IsZeroNumeric(t) {
		return big.NewInt(0), true
	}
	if t == term.Pi() {
		return big.NewInt(1), true
	}
	if t.Tag() == term.TagFactor && t.Child(1) == term.Pi() && t.Child(0).Tag() == term.TagInteger {
		return t.Child(0).Int(), true
	}
	return nil, false
}

// negatedForm reports whether t has a negative overall numeric sign
// (a negative integer/rational/float, or a factor with a negative
// coefficient), returning its negation.
func negatedForm(b *term.Builder, t *term.Term) (*term.Term, bool) {
	if t.IsNumeric() {
		if term.NumCmp(t, term.Zero()) < 0 {
			return b.NumNeg(t, term.DefaultPrecision), true
		}
		return nil, false
	}
	if t.Tag() == term.TagFactor {
		c := t.Child(0)
		if term.NumCmp(c, term.Zero()) < 0 {
			return b.FactorC(b.NumNeg(c, term.DefaultPrecision), t.Child(1)), true
		}
	}
	return nil, false
}

func (e *Evaluator) identity(tag term.Tag, arg *term.Term) (*term.Term, bool) {
	initSpecialAngles(e.B)
	switch tag {
	case term.TagExp:
		if term.IsZeroNumeric(arg) {
			return term.One(), true
		}
		if arg.Tag() == term.TagLog {
			return arg.Child(0), true
		}
	case term.TagLog:
		if arg.IsNumeric() && term.IsOneNumeric(arg) {
			return term.Zero(), true
		}
	case term.TagCos:
		if n, ok := piMultiple(arg); ok {
			if n.Bit(0) == 0 {
				return term.One(), true
			}
			return term.NegOne(), true
		}
		switch {
		case term.Compare(arg, halfPi) == 0:
			return term.Zero(), true
		case term.Compare(arg, thirdPi) == 0:
			return term.Half(), true
		case term.Compare(arg, quarterPi) == 0:
			return sqrt2Over2, true
		case term.Compare(arg, sixthPi) == 0:
			return sqrt3Over2, true
		}
		if pos, ok := negatedForm(e.B, arg); ok {
			return e.evalTranscendentalOf(term.TagCos, pos), true
		}
		if arg.Tag() == term.TagAcos {
			return arg.Child(0), true
		}
		if arg.Tag() == term.TagAsin {
			x := arg.Child(0)
			return e.B.PowC(e.B.SubC(term.One(), e.B.PowC(x, e.B.IntC64(2))), term.Half()), true
		}
	case term.TagSin:
		if _, ok := piMultiple(arg); ok {
			return term.Zero(), true
		}
		switch {
		case term.Compare(arg, halfPi) == 0:
			return term.One(), true
		case term.Compare(arg, thirdPi) == 0:
			return sqrt3Over2, true
		case term.Compare(arg, quarterPi) == 0:
			return sqrt2Over2, true
		case term.Compare(arg, sixthPi) == 0:
			return term.Half(), true
		}
		if pos, ok := negatedForm(e.B, arg); ok {
			return e.B.NegC(e.evalTranscendentalOf(term.TagSin, pos)), true
		}
	case term.TagTan:
		if _, ok := piMultiple(arg); ok {
			return term.Zero(), true
		}
		if pos, ok := negatedForm(e.B, arg); ok {
			return e.B.NegC(e.evalTranscendentalOf(term.TagTan, pos)), true
		}
	case term.TagAsin:
		if arg.Tag() == term.TagSin && arg.Child(0).IsNumeric() {
			return e.reduceAsinSin(arg.Child(0)), true
		}
	}
	return nil, false
}

// evalTranscendentalOf builds and evaluates tag(arg) as if freshly
// constructed, used by parity identities that need the function
// re-applied to a transformed argument.
func (e *Evaluator) evalTranscendentalOf(tag term.Tag, arg *term.Term) *term.Term {
	nb := e.B.NodeC(tag, 1)
	nb.SetAt(0, arg)
	return e.Eval(nb.CloseC(0))
}

// reduceAsinSin implements "arcsin(sin(x)) for numeric x = x − n·π or
// n·π − x based on quadrant" (§6.3): k = floor(x/π + 1/2); result is
// x−kπ for even k, kπ−x for odd k.
func (e *Evaluator) reduceAsinSin(x *term.Term) *term.Term {
	prec := e.F.Precision()
	ratio := e.B.NumDiv(x, term.Pi(), prec)
	shifted := e.B.NumAdd(ratio, term.Half(), prec)
	k := e.B.NumFloor(shifted, prec)
	kPi := e.B.NumMul(k, term.Pi(), prec)
	if k.Tag() == term.TagInteger && k.Int().Bit(0) == 0 {
		return e.B.NumSub(x, kPi, prec)
	}
	return e.B.NumSub(kPi, x, prec)
}
