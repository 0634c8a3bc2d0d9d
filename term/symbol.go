// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"sync"

	"github.com/google/uuid"
)

// symbolTable interns symbol names so that two symbols with the same
// name compare equal by identity as well as by name (§3.2). It is
// process-wide and read-only on the hot path once a name has been
// seen, like the teacher's symtab and the spec's process-wide
// "parser's string cache" (§5.4).
var symbolTable struct {
	mu    sync.Mutex
	byKey map[string]*Term
}

func init() {
	symbolTable.byKey = make(map[string]*Term)
}

// SymbolC interns a symbol with the given name and domain. Two calls
// with the same name return the identical *Term, regardless of arena,
// matching the hash-consing discipline already used for small numeric
// constants.
func SymbolC(name string, domain Domain) *Term {
	symbolTable.mu.Lock()
	defer symbolTable.mu.Unlock()
	if t, ok := symbolTable.byKey[name]; ok {
		return t
	}
	t := &Term{tag: TagSymbol, flags: Evaluated, name: name, domain: domain}
	t.hash = hashTerm(t)
	permanentBuilder.alloc(t)
	symbolTable.byKey[name] = t
	return t
}

var localSymbolCounter struct {
	mu sync.Mutex
	n  int
}

// NewLocalSymbol mints a fresh symbol guaranteed not to collide with
// any name a caller could have typed or with one generated by a
// concurrent worker, by suffixing a uuid fragment (§6.1's
// "local-symbol generator (unique name per call)"; see SPEC_FULL.md's
// domain-stack note on github.com/google/uuid).
func NewLocalSymbol(domain Domain) *Term {
	localSymbolCounter.mu.Lock()
	localSymbolCounter.n++
	n := localSymbolCounter.n
	localSymbolCounter.mu.Unlock()
	name := "_u" + itoa(n) + "_" + uuid.New().String()[:8]
	return SymbolC(name, domain)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
