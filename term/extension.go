// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

// ExtensionC builds a node of a user-installed operator class. The
// registry itself (how a ClassName maps to an *Extension, validation of
// arity, etc.) is out of scope (§1, §3.1) — this is only the shape a
// registered node carries, matching the slot the spec calls out without
// inventing the registration machinery around it.
func (b *Builder) ExtensionC(ext *Extension, args []*Term) *Term {
	nb := b.NodeC(TagExtension, len(args))
	for i, a := range args {
		nb.SetAt(i, a)
	}
	nb.SetName(ext.ClassName)
	nb.SetExtension(ext)
	return nb.CloseC(0)
}

// EvalExtension dispatches to the extension's Eval callback, or returns
// t unchanged if the extension (or its callback) is absent.
func EvalExtension(t *Term) *Term {
	if t.tag != TagExtension || t.ext == nil || t.ext.Eval == nil {
		return t
	}
	return t.ext.Eval(t)
}

// DiffExtension dispatches to the extension's Diff callback with
// respect to v, or returns nil if the extension cannot differentiate.
func DiffExtension(t, v *Term) *Term {
	if t.tag != TagExtension || t.ext == nil || t.ext.Diff == nil {
		return nil
	}
	return t.ext.Diff(t, v)
}
