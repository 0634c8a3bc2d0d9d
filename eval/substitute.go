// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import "maylib.dev/may/term"

// Substitute replaces every occurrence of symbol v in t with point a,
// structurally (no re-evaluation — the caller, evalDiffNode, runs the
// result back through Eval). Used for diff(f, v, n, a)'s evaluation-
// point step (§4.9).
func Substitute(b *term.Builder, t, v, a *term.Term) *term.Term {
	if t.Tag() == term.TagSymbol {
		if t.Name() == v.Name() {
			return a
		}
		return t
	}
	if t.ChildCount() == 0 {
		return t
	}
	children := make([]*term.Term, t.ChildCount())
	changed := false
	for i := 0; i < t.ChildCount(); i++ {
		c := Substitute(b, t.Child(i), v, a)
		children[i] = c
		if c != t.Child(i) {
			changed = true
		}
	}
	if !changed {
		return t
	}
	nb := b.NodeC(t.Tag(), len(children))
	for i, c := range children {
		nb.SetAt(i, c)
	}
	if t.Tag() == term.TagFunc {
		nb.SetName(t.Name())
	}
	if t.Tag() == term.TagDiff {
		nb.SetOrder(t.DiffOrder())
	}
	return nb.CloseC(0)
}
