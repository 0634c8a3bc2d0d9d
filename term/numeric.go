// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"math/big"
	"sync"

	"maylib.dev/may/arena"
)

// permanentArena backs the hash-consed small-constant cache (§3.2,
// §9). It is extendable and never compacted: the constants it holds
// are process-wide, read-only, and outlive every per-request arena.
var permanentArena = arena.New(1<<20, true)
var permanentBuilder = &Builder{A: permanentArena}

const smallConstLo = -255
const smallConstHi = 255

var constants struct {
	once      sync.Once
	small     [smallConstHi - smallConstLo + 1]*Term
	half      *Term
	negHalf   *Term
	pi        *Term
	imagUnit  *Term
	posInf    *Term
	negInf    *Term
	nan       *Term
}

// bigPi is pi to a generous fixed precision, used to seed the cached pi
// constant. Algebraic identities (§6.3) compare against this term by
// reference, so its precision only matters for float fallbacks.
var bigPi = mustParseFloat("3.14159265358979323846264338327950288419716939937510582097494459")

func mustParseFloat(s string) *big.Float {
	f, _, err := big.ParseFloat(s, 10, 200, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return f
}

func ensureConstants() {
	constants.once.Do(func() {
		for n := smallConstLo; n <= smallConstHi; n++ {
			constants.small[n-smallConstLo] = permanentBuilder.rawInt(big.NewInt(int64(n)))
		}
		constants.half = permanentBuilder.rawRat(big.NewRat(1, 2))
		constants.negHalf = permanentBuilder.rawRat(big.NewRat(-1, 2))
		constants.pi = permanentBuilder.rawFloat(new(big.Float).Copy(bigPi))
		zero := constants.small[0-smallConstLo]
		one := constants.small[1-smallConstLo]
		constants.imagUnit = permanentBuilder.rawComplex(zero, one)
		constants.posInf = permanentBuilder.rawFloat(new(big.Float).SetInf(false))
		constants.negInf = permanentBuilder.rawFloat(new(big.Float).SetInf(true))
		nanTerm := &Term{tag: TagFloat, flags: Evaluated, nan: true}
		nanTerm.hash = hashTerm(nanTerm)
		constants.nan = nanTerm
	})
}

// Zero, One, NegOne, Half, NegHalf, Pi, I, PosInf, NegInf and NaN return
// the hash-consed small constants (§3.2).
func Zero() *Term    { ensureConstants(); return constants.small[0-smallConstLo] }
func One() *Term     { ensureConstants(); return constants.small[1-smallConstLo] }
func NegOne() *Term  { ensureConstants(); return constants.small[-1-smallConstLo] }
func Half() *Term    { ensureConstants(); return constants.half }
func NegHalf() *Term { ensureConstants(); return constants.negHalf }
func Pi() *Term      { ensureConstants(); return constants.pi }
func ImagUnit() *Term { ensureConstants(); return constants.imagUnit }
func PosInf() *Term  { ensureConstants(); return constants.posInf }
func NegInf() *Term  { ensureConstants(); return constants.negInf }
func NaN() *Term     { ensureConstants(); return constants.nan }

// smallInt returns the cached term for n if it is within the hash-cons
// range, else nil.
func smallInt(n int64) *Term {
	ensureConstants()
	if n < smallConstLo || n > smallConstHi {
		return nil
	}
	return constants.small[n-smallConstLo]
}

// rawInt builds an integer leaf with no hash-cons lookup, used only to
// seed the cache itself.
func (b *Builder) rawInt(x *big.Int) *Term {
	t := &Term{tag: TagInteger, flags: Evaluated, bigInt: x}
	t.hash = hashTerm(t)
	return b.alloc(t)
}

func (b *Builder) rawRat(r *big.Rat) *Term {
	t := &Term{tag: TagRational, flags: Evaluated, bigRat: r}
	t.hash = hashTerm(t)
	return b.alloc(t)
}

func (b *Builder) rawFloat(f *big.Float) *Term {
	t := &Term{tag: TagFloat, flags: Evaluated, bigFloat: f}
	t.hash = hashTerm(t)
	return b.alloc(t)
}

func (b *Builder) rawComplex(re, im *Term) *Term {
	t := &Term{tag: TagComplex, flags: Evaluated, children: []*Term{re, im}}
	t.hash = hashTerm(t)
	return b.alloc(t)
}

// IntC constructs a canonical integer leaf, aliasing to the hash-cons
// cache when x is small (§3.2).
func (b *Builder) IntC(x *big.Int) *Term {
	if x.IsInt64() {
		if c := smallInt(x.Int64()); c != nil {
			return c
		}
	}
	return b.rawInt(new(big.Int).Set(x))
}

// MpzNocopyC constructs an integer leaf taking ownership of x rather
// than cloning it (§4.2's "nocopy" convention).
func (b *Builder) MpzNocopyC(x *big.Int) *Term {
	if x.IsInt64() {
		if c := smallInt(x.Int64()); c != nil {
			return c
		}
	}
	return b.rawInt(x)
}

// IntC64 is a convenience for IntC(big.NewInt(n)).
func (b *Builder) IntC64(n int64) *Term {
	if c := smallInt(n); c != nil {
		return c
	}
	return b.rawInt(big.NewInt(n))
}

// RatC constructs a canonical rational: positive denominator, coprime,
// collapsing to an integer when the denominator is 1 (§3.2).
func (b *Builder) RatC(num, den *big.Int) *Term {
	if den.Sign() == 0 {
		Errorf("rational with zero denominator")
	}
	r := new(big.Rat).SetFrac(num, den)
	if r.IsInt() {
		return b.IntC(r.Num())
	}
	if r.Cmp(big.NewRat(1, 2)) == 0 {
		return Half()
	}
	if r.Cmp(big.NewRat(-1, 2)) == 0 {
		return NegHalf()
	}
	return b.rawRat(r)
}

// FloatC constructs a canonical binary float leaf.
func (b *Builder) FloatC(f *big.Float) *Term {
	if f.IsInf() {
		if f.Sign() > 0 {
			return PosInf()
		}
		return NegInf()
	}
	return b.rawFloat(new(big.Float).Copy(f))
}

// ComplexC constructs a canonical complex leaf: collapses to the real
// component when the imaginary part is (numerically) zero (§3.2).
func (b *Builder) ComplexC(re, im *Term) *Term {
	if IsZeroNumeric(im) {
		return re
	}
	if re == Zero() && im == One() {
		return ImagUnit()
	}
	return b.rawComplex(re, im)
}

// IsZeroNumeric reports whether t is the atomic numeric zero.
func IsZeroNumeric(t *Term) bool {
	switch t.tag {
	case TagInteger:
		return t.bigInt.Sign() == 0
	case TagRational:
		return t.bigRat.Sign() == 0
	case TagFloat:
		return !t.nan && t.bigFloat.Sign() == 0
	case TagComplex:
		return IsZeroNumeric(t.children[0]) && IsZeroNumeric(t.children[1])
	}
	return false
}

// IsOneNumeric reports whether t is the atomic numeric one.
func IsOneNumeric(t *Term) bool {
	switch t.tag {
	case TagInteger:
		return t.bigInt.Cmp(big.NewInt(1)) == 0
	case TagRational:
		return t.bigRat.IsInt() && t.bigRat.Num().Cmp(big.NewInt(1)) == 0
	case TagFloat:
		one := big.NewFloat(1)
		return !t.nan && t.bigFloat.Cmp(one) == 0
	}
	return false
}
