// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import "maylib.dev/may/arena"

// Builder allocates terms into a single arena. All term construction
// goes through a Builder so the arena's bump-pointer/OOM bookkeeping
// and (for composites) the mutable-builder/sealed-node protocol stay
// in one place (§4.2, §9).
type Builder struct {
	A *arena.Arena
}

// NewBuilder returns a Builder allocating into a.
func NewBuilder(a *arena.Arena) *Builder {
	return &Builder{A: a}
}

func (b *Builder) alloc(t *Term) *Term {
	if err := b.A.Alloc(t, estimatedSize(t)); err != nil {
		Errorf("%v", err)
	}
	return t
}

// NodeBuilder is the mutable stage of a composite node: node_c opens
// one with n empty child slots, set_at fills them, and close_c seals
// it into an immutable Term. Children are not guaranteed safe to read
// until after CloseC (§9 "Mutation-during-build").
type NodeBuilder struct {
	owner    *Builder
	tag      Tag
	children []*Term
	name     string
	domain   Domain
	order    int
	blob     []byte
	ext      *Extension
}

// NodeC allocates an unevaluated composite with n child slots.
func (b *Builder) NodeC(tag Tag, n int) *NodeBuilder {
	return &NodeBuilder{owner: b, tag: tag, children: make([]*Term, n)}
}

// SetAt fills child slot i.
func (nb *NodeBuilder) SetAt(i int, child *Term) { nb.children[i] = child }

// SetName sets the symbol/function/extension name.
func (nb *NodeBuilder) SetName(name string) { nb.name = name }

// SetDomain sets the symbol's domain bitset.
func (nb *NodeBuilder) SetDomain(d Domain) { nb.domain = d }

// SetOrder sets the explicit diff order.
func (nb *NodeBuilder) SetOrder(n int) { nb.order = n }

// SetBlob sets the opaque byte payload.
func (nb *NodeBuilder) SetBlob(blob []byte) { nb.blob = blob }

// SetExtension sets the extension class slot.
func (nb *NodeBuilder) SetExtension(ext *Extension) { nb.ext = ext }

// CloseC seals the node: after this call, children are immutable. The
// hash is always recomputed from the final child sequence here, never
// patched incrementally — the one place the original implementation's
// author flagged as a suspected bug source (§9's "Ambiguities observed
// in source").
func (nb *NodeBuilder) CloseC(flags Flags) *Term {
	t := &Term{
		tag:      nb.tag,
		flags:    flags,
		children: nb.children,
		name:     nb.name,
		domain:   nb.domain,
		order:    nb.order,
		blob:     nb.blob,
		ext:      nb.ext,
	}
	t.hash = hashTerm(t)
	return nb.owner.alloc(t)
}
