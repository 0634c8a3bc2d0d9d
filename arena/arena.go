// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena provides a bump allocator with nested lifetime scopes
// (marks) and a compact operation that preserves named survivors while
// reclaiming everything else. It is the kernel's only reclamation
// mechanism: there is no finalization and no per-node free.
package arena

import "sync"

// Node is anything an Arena can allocate and relocate. Term graphs are
// the only implementation in this module, but the allocator itself
// knows nothing about terms; it only walks children and asks a node to
// clone itself with relocated children.
type Node interface {
	// ArenaChildren returns the node's direct children, in the same
	// order ArenaClone expects them back. Leaves return nil.
	ArenaChildren() []Node
	// ArenaClone returns a shallow copy of the receiver with its child
	// slots replaced by children, which has the same length and order
	// as the slice ArenaChildren returned.
	ArenaClone(children []Node) Node
}

// Mark is a snapshot of an Arena's allocation frontier, taken by Mark
// and consumed by Compact, CompactV, Keep and Cleanup.
type Mark struct {
	gen   int64
	bytes int64
}

// OutOfMemory is returned by Alloc when a non-extendable arena is
// exhausted.
type OutOfMemory struct {
	Requested int64
	Limit     int64
}

func (e *OutOfMemory) Error() string {
	return "arena: out of memory"
}

// Arena is a thread-local bump allocator. The "bump pointer" here counts
// bytes purely for the overflow/extend bookkeeping the spec describes;
// Go's garbage collector owns the actual node memory. What Arena really
// tracks is generations: every Mark bumps a generation counter, every
// allocation is stamped with the generation it was born in, and Compact
// decides per-node whether that stamp is older than the mark (leave in
// place) or younger (relocate below the mark, then re-stamp).
type Arena struct {
	mu         sync.Mutex
	bytes      int64
	limit      int64
	extendable bool
	gen        int64
	birth      map[Node]int64

	// foreign holds worker arenas handed off at task completion (§5.2).
	// The next Compact on this arena absorbs their live subgraphs.
	foreign []*Arena
}

// New creates an Arena with the given byte limit. If extendable is true,
// Alloc doubles the limit instead of failing when it is exceeded.
func New(limitBytes int64, extendable bool) *Arena {
	return &Arena{
		limit:      limitBytes,
		extendable: extendable,
		birth:      make(map[Node]int64),
	}
}

// Alloc accounts for n freshly allocated bytes and stamps node with the
// arena's current generation. It must be called by term constructors
// immediately after building a node that will live in this arena.
func (a *Arena) Alloc(node Node, n int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bytes+n > a.limit {
		if !a.extendable {
			return &OutOfMemory{Requested: n, Limit: a.limit}
		}
		newLimit := a.limit * 2
		for newLimit < a.bytes+n {
			newLimit *= 2
		}
		a.limit = newLimit
	}
	a.bytes += n
	a.birth[node] = a.gen
	return nil
}

// Mark snapshots the current allocation frontier.
func (a *Arena) Mark() Mark {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := Mark{gen: a.gen, bytes: a.bytes}
	a.gen++
	return m
}

// Compact relocates the reachable subgraphs of survivors below mark and
// reclaims everything else above it. Survivors already born at or before
// mark.gen are left in place (returned unchanged); subterms encountered
// more than once during the same compact are relocated once and shared
// by reference equality.
func (a *Arena) Compact(mark Mark, survivors ...Node) []Node {
	a.mu.Lock()
	a.absorbForeignLocked()
	a.mu.Unlock()

	seen := make(map[Node]Node, 64)
	out := make([]Node, len(survivors))
	for i, s := range survivors {
		out[i] = a.relocate(mark, s, seen)
	}

	a.mu.Lock()
	a.bytes = mark.bytes
	a.gen = mark.gen
	// Drop birth records above the mark; relocate already re-registered
	// the survivors at mark.gen via Alloc-equivalent bookkeeping below.
	for n, g := range a.birth {
		if g > mark.gen {
			delete(a.birth, n)
		}
	}
	a.mu.Unlock()
	return out
}

// CompactV is the vector form of Compact.
func (a *Arena) CompactV(mark Mark, xs []Node) []Node {
	return a.Compact(mark, xs...)
}

// Keep is a convenience for Compact(mark, []Node{x})[0].
func (a *Arena) Keep(mark Mark, x Node) Node {
	return a.Compact(mark, x)[0]
}

// Cleanup reclaims everything above mark, keeping no survivors.
func (a *Arena) Cleanup(mark Mark) {
	a.Compact(mark)
}

// relocate deep-copies node if it was born after mark.gen, sharing
// already-relocated subterms via seen. Nodes born at or before mark.gen
// are already "below" the mark and are returned unchanged.
func (a *Arena) relocate(mark Mark, node Node, seen map[Node]Node) Node {
	if node == nil {
		return nil
	}
	if r, ok := seen[node]; ok {
		return r
	}
	a.mu.Lock()
	born, tracked := a.birth[node]
	a.mu.Unlock()
	// A node this arena never allocated (a hash-consed global constant,
	// or a node already settled in another arena) is treated the same
	// as one born before the mark: left in place, shared by reference.
	if !tracked || born <= mark.gen {
		seen[node] = node
		return node
	}
	children := node.ArenaChildren()
	var relocatedChildren []Node
	if len(children) > 0 {
		relocatedChildren = make([]Node, len(children))
		for i, c := range children {
			relocatedChildren[i] = a.relocate(mark, c, seen)
		}
	}
	clone := node.ArenaClone(relocatedChildren)
	a.mu.Lock()
	a.birth[clone] = mark.gen
	a.mu.Unlock()
	seen[node] = clone
	return clone
}

// AbsorbForeign registers worker as a foreign arena whose live subgraphs
// should be treated as additional roots on this arena's next Compact
// (§4.1, §5.2). The worker must not allocate into itself again after
// this call.
func (a *Arena) AbsorbForeign(worker *Arena) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.foreign = append(a.foreign, worker)
}

// absorbForeignLocked merges birth bookkeeping from handed-off worker
// arenas so their surviving nodes are recognized as already-relocated
// (by reference) during the owning mark's next compact. Must be called
// with a.mu held.
func (a *Arena) absorbForeignLocked() {
	for _, f := range a.foreign {
		f.mu.Lock()
		for n := range f.birth {
			// Foreign nodes are always "new" from the absorbing
			// arena's point of view: they relocate on first use.
			a.birth[n] = a.gen + 1
		}
		f.mu.Unlock()
	}
	a.foreign = a.foreign[:0]
}

// Bytes reports the current bump-pointer position, for diagnostics.
func (a *Arena) Bytes() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bytes
}
