// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import "maylib.dev/may/term"

// diffTranscendental applies the standard chain-rule rewrite for the
// named unary transcendental (§4.9): exp, log, sin, cos, tan, the
// inverse trig functions, the hyperbolics, and abs (via diff(u)*sign(u)).
// sign, floor, conj, real, imag, arg and gamma are not named by the
// spec's chain-rule bullet; they fall back to heldOrZero.
func diffTranscendental(b *term.Builder, x, v *term.Term) *term.Term {
	u := x.Child(0)
	du := Diff(b, u, v)
	if term.IsZeroNumeric(du) {
		return term.Zero()
	}
	one := term.One()
	sq := func(t *term.Term) *term.Term { return b.PowC(t, b.IntC64(2)) }
	sqrt := func(t *term.Term) *term.Term { return b.PowC(t, term.Half()) }

	switch x.Tag() {
	case term.TagExp:
		return b.MulC(x, du)
	case term.TagLog:
		return b.DivC(du, u)
	case term.TagSin:
		return b.MulC(b.CosC(u), du)
	case term.TagCos:
		return b.NegC(b.MulC(b.SinC(u), du))
	case term.TagTan:
		return b.DivC(du, sq(b.CosC(u)))
	case term.TagAsin:
		return b.DivC(du, sqrt(b.SubC(one, sq(u))))
	case term.TagAcos:
		return b.NegC(b.DivC(du, sqrt(b.SubC(one, sq(u)))))
	case term.TagAtan:
		return b.DivC(du, b.AddC(one, sq(u)))
	case term.TagSinh:
		return b.MulC(b.CoshC(u), du)
	case term.TagCosh:
		return b.MulC(b.SinhC(u), du)
	case term.TagTanh:
		return b.DivC(du, sq(b.CoshC(u)))
	case term.TagAsinh:
		return b.DivC(du, sqrt(b.AddC(sq(u), one)))
	case term.TagAcosh:
		return b.DivC(du, sqrt(b.SubC(sq(u), one)))
	case term.TagAtanh:
		return b.DivC(du, b.SubC(one, sq(u)))
	case term.TagAbs:
		return b.MulC(du, b.SignC(u))
	default:
		return heldOrZero(b, x, v)
	}
}
