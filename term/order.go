// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"bytes"
	"math/big"
	"strings"
)

// classRank implements the coarse class ordering of §3.3: numeric <
// symbol < product < sum < power < function < ... A factor node
// inherits the class of its (non-numeric) base, since a factor is
// just a coefficient-decorated base.
func classRank(t *Term) int {
	t = unwrapFactor(t)
	switch t.tag {
	case TagInteger, TagRational, TagFloat, TagComplex:
		return 0
	case TagSymbol:
		return 1
	case TagProduct:
		return 2
	case TagSum:
		return 3
	case TagPower:
		return 4
	case TagList:
		return 6
	case TagRange:
		return 7
	case TagDiff:
		return 8
	case TagMod:
		return 9
	case TagGCD:
		return 10
	case TagExtension:
		return 11
	case TagBlob:
		return 12
	default:
		if IsTranscendental(t.tag) || t.tag == TagFunc {
			return 5
		}
		return 13
	}
}

func unwrapFactor(t *Term) *Term {
	if t.tag == TagFactor {
		return t.children[1]
	}
	return t
}

// Compare implements the kernel's total order (§3.3). It is
// deterministic and stable across runs: no address-based tiebreak.
func Compare(a, b *Term) int {
	ua, ub := unwrapFactor(a), unwrapFactor(b)
	ca, cb := classRank(ua), classRank(ub)
	if ca != cb {
		return cmpInt(ca, cb)
	}
	switch ca {
	case 0:
		return compareNumericMagnitude(ua, ub)
	case 1:
		return strings.Compare(ua.name, ub.name)
	case 2: // product
		return compareChildren(ua.children, ub.children)
	case 3: // sum: leading (already-sorted) non-numeric term, then children
		if c := compareLeading(ua, ub); c != 0 {
			return c
		}
		return compareChildren(ua.children, ub.children)
	case 4: // power: base then exponent
		if len(ua.children) < 2 || len(ub.children) < 2 {
			return compareChildren(ua.children, ub.children)
		}
		if c := Compare(ua.children[0], ub.children[0]); c != 0 {
			return c
		}
		return Compare(ua.children[1], ub.children[1])
	case 5: // function / transcendental
		if ua.tag != ub.tag {
			return cmpInt(int(ua.tag), int(ub.tag))
		}
		if ua.tag == TagFunc && ua.name != ub.name {
			return strings.Compare(ua.name, ub.name)
		}
		return compareChildren(ua.children, ub.children)
	default:
		if ua.tag != ub.tag {
			return cmpInt(int(ua.tag), int(ub.tag))
		}
		if ua.name != ub.name {
			return strings.Compare(ua.name, ub.name)
		}
		if c := bytes.Compare(ua.blob, ub.blob); c != 0 {
			return c
		}
		return compareChildren(ua.children, ub.children)
	}
}

// compareLeading compares the first child of two sums, treating a sum
// with no non-numeric children (i.e. already collapsed) as ranking
// below one with a leading term.
func compareLeading(a, b *Term) int {
	la := leadingNonNumeric(a)
	lb := leadingNonNumeric(b)
	if la == nil && lb == nil {
		return 0
	}
	if la == nil {
		return -1
	}
	if lb == nil {
		return 1
	}
	return Compare(la, lb)
}

func leadingNonNumeric(t *Term) *Term {
	for _, c := range t.children {
		if !unwrapFactor(c).IsNumeric() {
			return c
		}
	}
	return nil
}

func compareChildren(a, b []*Term) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func compareNumericMagnitude(a, b *Term) int {
	ma, mb := magnitude(a), magnitude(b)
	return NumCmp(ma, mb)
}

// magnitude returns a real numeric whose ordering reflects a term's
// magnitude for total-order purposes: |x| for reals, |re|+|im|-ish via
// squared modulus for complex (avoids a sqrt in the comparator).
func magnitude(t *Term) *Term {
	b := &Builder{A: permanentArena}
	switch t.tag {
	case TagComplex:
		re := b.NumAbs(t.children[0], DefaultPrecision)
		im := b.NumAbs(t.children[1], DefaultPrecision)
		return b.NumAdd(re, im, DefaultPrecision)
	default:
		return b.NumAbs(t, DefaultPrecision)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// hashTerm computes a deterministic hash from a sealed node's tag and
// children (order-sensitive; callers are responsible for normalizing
// child order before calling CloseC for sum/product nodes). Always
// recomputed from the final child sequence, never patched incrementally
// (§9).
func hashTerm(t *Term) uint64 {
	const (
		offset = 1469598103934665603
		prime  = 1099511628211
	)
	h := uint64(offset)
	mix := func(x uint64) {
		h ^= x
		h *= prime
	}
	mix(uint64(t.tag))
	mix(uint64(t.flags))
	mix(uint64(t.order))
	for _, r := range t.name {
		mix(uint64(r))
	}
	for _, byteVal := range t.blob {
		mix(uint64(byteVal))
	}
	switch t.tag {
	case TagInteger:
		if t.bigInt != nil {
			mixBigIntBits(mix, t.bigInt)
		}
	case TagRational:
		if t.bigRat != nil {
			mixBigIntBits(mix, t.bigRat.Num())
			mixBigIntBits(mix, t.bigRat.Denom())
		}
	case TagFloat:
		if t.nan {
			mix(0xDEADBEEF)
		} else if t.bigFloat != nil {
			for _, r := range t.bigFloat.Text('g', -1) {
				mix(uint64(r))
			}
		}
	}
	for _, c := range t.children {
		mix(c.hash)
	}
	return h
}

// mixBigIntBits folds a *big.Int's sign and word representation into an
// in-progress hash via mix.
func mixBigIntBits(mix func(uint64), z *big.Int) {
	mix(uint64(z.Sign() + 2))
	for _, w := range z.Bits() {
		mix(uint64(w))
	}
}
