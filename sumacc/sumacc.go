// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sumacc implements the sum accumulator of spec.md §4.4: a
// left-leaning red-black tree keyed on a term's "base" under the
// kernel's total order, merging numeric coefficients on collision.
// Node color is an explicit bool field rather than a pointer low-bit,
// per the design note that favors a plain field over bit-stuffing in
// a garbage-collected language.
package sumacc

import "maylib.dev/may/term"

const (
	red   = true
	black = false
)

type node struct {
	key         *term.Term
	coeff       *term.Term
	color       bool
	left, right *node
}

// Tree accumulates (coefficient, key) pairs for one sum evaluation.
// The zero value is an empty tree.
type Tree struct {
	b     *term.Builder
	root  *node
	count int
}

// New returns an empty accumulator that builds results with b.
func New(b *term.Builder) *Tree {
	return &Tree{b: b}
}

// Size returns the number of distinct keys accumulated so far.
func (t *Tree) Size() int { return t.count }

// Insert adds coeff to the entry for key, creating one if absent.
func (t *Tree) Insert(coeff, key *term.Term) {
	t.root = t.insert(t.root, coeff, key)
	t.root.color = black
}

func (t *Tree) insert(h *node, coeff, key *term.Term) *node {
	if h == nil {
		t.count++
		return &node{key: key, coeff: coeff, color: red}
	}
	switch c := term.Compare(key, h.key); {
	case c < 0:
		h.left = t.insert(h.left, coeff, key)
	case c > 0:
		h.right = t.insert(h.right, coeff, key)
	default:
		h.coeff = t.b.NumAdd(h.coeff, coeff, term.DefaultPrecision)
	}

	if isRed(h.right) && !isRed(h.left) {
		h = rotateLeft(h)
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = rotateRight(h)
	}
	if isRed(h.left) && isRed(h.right) {
		flipColors(h)
	}
	return h
}

func isRed(h *node) bool {
	if h == nil {
		return false
	}
	return h.color == red
}

func rotateLeft(h *node) *node {
	x := h.right
	h.right = x.left
	x.left = h
	x.color = h.color
	h.color = red
	return x
}

func rotateRight(h *node) *node {
	x := h.left
	h.left = x.right
	x.right = h
	x.color = h.color
	h.color = red
	return x
}

func flipColors(h *node) {
	h.color = !h.color
	h.left.color = !h.left.color
	h.right.color = !h.right.color
}

// GetSum builds an evaluated sum term from a numeric accumulator plus
// the tree's entries, in total order: an entry with coefficient 1
// contributes the bare key, coefficient 0 contributes nothing,
// otherwise it contributes factor(coeff, key) (§4.4). The numeric
// accumulator is omitted when zero.
func (t *Tree) GetSum(numericAcc *term.Term) *term.Term {
	terms := make([]*term.Term, 0, t.count+1)
	if !term.IsZeroNumeric(numericAcc) {
		terms = append(terms, numericAcc)
	}
	t.inorder(t.root, &terms)

	switch len(terms) {
	case 0:
		return term.Zero()
	case 1:
		return terms[0]
	}
	nb := t.b.NodeC(term.TagSum, len(terms))
	for i, x := range terms {
		nb.SetAt(i, x)
	}
	return nb.CloseC(term.Evaluated)
}

func (t *Tree) inorder(h *node, out *[]*term.Term) {
	if h == nil {
		return
	}
	t.inorder(h.left, out)
	switch {
	case term.IsOneNumeric(h.coeff):
		*out = append(*out, h.key)
	case term.IsZeroNumeric(h.coeff):
		// contributes nothing
	default:
		*out = append(*out, t.b.SealedFactorC(h.coeff, h.key))
	}
	t.inorder(h.right, out)
}
