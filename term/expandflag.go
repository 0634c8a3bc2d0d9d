// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

// SealExpanded returns t with the Expanded (and Evaluated) flags set,
// rebuilding it if it does not already carry them. Atomic terms (no
// children) need no rebuild: there is nothing further a distributive
// expansion could do to them. Used by the expander (§4.5) to seal its
// output so a later call sees the EXPANDED flag and returns early.
func (b *Builder) SealExpanded(t *Term) *Term {
	if t.IsExpanded() || len(t.children) == 0 {
		return t
	}
	nb := b.NodeC(t.tag, len(t.children))
	for i, c := range t.children {
		nb.SetAt(i, c)
	}
	nb.SetName(t.name)
	nb.SetDomain(t.domain)
	nb.SetOrder(t.order)
	nb.SetBlob(t.blob)
	nb.SetExtension(t.ext)
	return nb.CloseC(Evaluated | Expanded)
}
