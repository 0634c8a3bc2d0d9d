// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

// IsFuncNamed reports whether t is a generic function application with
// the given name, the shape §3.1 describes as "generic function (name,
// argument)" — modeled here with an arbitrary argument count rather
// than exactly one, since diff/gcd/mod already cover the fixed-arity
// binary cases and a user function may be applied to several
// arguments.
func IsFuncNamed(t *Term, name string) bool {
	return t.tag == TagFunc && t.name == name
}

// Arity returns the number of arguments of a generic function term.
func (t *Term) Arity() int {
	if t.tag != TagFunc {
		return 0
	}
	return len(t.children)
}

// Arg returns argument i of a generic function term.
func (t *Term) Arg(i int) *Term { return t.children[i] }
