// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "testing"

// leaf is a minimal Node with no children, used to exercise Alloc/Mark/Compact.
type leaf struct{ id int }

func (l *leaf) ArenaChildren() []Node         { return nil }
func (l *leaf) ArenaClone(_ []Node) Node      { c := *l; return &c }

// pair is a two-child Node, used to exercise relocation sharing.
type pair struct {
	id       int
	a, b     Node
}

func (p *pair) ArenaChildren() []Node { return []Node{p.a, p.b} }
func (p *pair) ArenaClone(children []Node) Node {
	return &pair{id: p.id, a: children[0], b: children[1]}
}

func TestAllocOutOfMemory(t *testing.T) {
	a := New(16, false)
	n := &leaf{id: 1}
	if err := a.Alloc(n, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.Alloc(&leaf{id: 2}, 16); err == nil {
		t.Fatalf("expected OutOfMemory, got nil")
	}
}

func TestAllocExtends(t *testing.T) {
	a := New(8, true)
	if err := a.Alloc(&leaf{id: 1}, 64); err != nil {
		t.Fatalf("extendable arena should not fail: %v", err)
	}
	if a.Bytes() != 64 {
		t.Fatalf("Bytes() = %d, want 64", a.Bytes())
	}
}

func TestCompactKeepsSurvivor(t *testing.T) {
	a := New(1<<20, false)
	x := &leaf{id: 1}
	if err := a.Alloc(x, 8); err != nil {
		t.Fatal(err)
	}

	mark := a.Mark()

	y := &leaf{id: 2}
	if err := a.Alloc(y, 8); err != nil {
		t.Fatal(err)
	}
	p := &pair{id: 3, a: x, b: y}
	if err := a.Alloc(p, 8); err != nil {
		t.Fatal(err)
	}

	kept := a.Keep(mark, p)
	got, ok := kept.(*pair)
	if !ok {
		t.Fatalf("Keep returned %T, want *pair", kept)
	}
	// x predates the mark, so it is shared by reference.
	if got.a != Node(x) {
		t.Errorf("survivor's pre-mark child was copied; want shared by reference")
	}
	// y postdates the mark, so it must have been relocated (a fresh node).
	if got.b == Node(y) {
		t.Errorf("survivor's post-mark child should have been relocated, got same reference")
	}
}

func TestCompactSharesRepeatedSubterm(t *testing.T) {
	a := New(1<<20, false)
	mark := a.Mark()

	shared := &leaf{id: 1}
	if err := a.Alloc(shared, 8); err != nil {
		t.Fatal(err)
	}
	p1 := &pair{id: 2, a: shared, b: shared}
	if err := a.Alloc(p1, 8); err != nil {
		t.Fatal(err)
	}

	kept := a.Keep(mark, p1)
	got := kept.(*pair)
	if got.a != got.b {
		t.Errorf("repeated subterm relocated twice; want single shared relocation")
	}
}

func TestCleanupReclaimsEverything(t *testing.T) {
	a := New(1<<20, false)
	mark := a.Mark()
	if err := a.Alloc(&leaf{id: 1}, 100); err != nil {
		t.Fatal(err)
	}
	a.Cleanup(mark)
	if a.Bytes() != mark.bytes {
		t.Errorf("Bytes() after Cleanup = %d, want %d", a.Bytes(), mark.bytes)
	}
}
