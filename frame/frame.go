// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame holds the kernel's ambient, per-goroutine settings:
// float precision and rounding, I/O base, variable domain, an optional
// ambient integer modulus, the result-size overflow guard, and the
// sort/zero-test hooks (§5.4). It mirrors the teacher's config.Config —
// a nil-safe value type with getters defaulting sensibly on a nil
// receiver — generalized with scoped push/pop so evaluation can apply
// a local override (e.g. "evaluate this subexpression mod 7") without
// disturbing the caller's settings.
package frame

import (
	"math/big"

	"maylib.dev/may/term"
)

// settings is the mutable state snapshotted by Push/Pop.
type settings struct {
	precision  uint
	rounding   big.RoundingMode
	inputBase  int
	outputBase int
	domain     term.Domain
	modulus    *big.Int
	maxIntBits int
	presimplify bool
	sortHook   func(a, b *term.Term) int
	zeroHook   func(t *term.Term) bool
	debug      map[string]bool
}

// Frame holds one goroutine's (or one worker's) ambient settings. The
// zero value is ready to use and holds the kernel's defaults.
type Frame struct {
	cur   settings
	stack []settings
}

// New returns a Frame with the kernel's default settings.
func New() *Frame {
	f := &Frame{}
	f.cur.precision = term.DefaultPrecision
	f.cur.rounding = big.ToNearestEven
	f.cur.inputBase = 10
	f.cur.outputBase = 10
	f.cur.domain = term.DomainComplex
	f.cur.maxIntBits = 0
	f.cur.presimplify = true
	return f
}

// Precision returns the float precision in bits; 0 on a nil Frame
// falls back to term.DefaultPrecision, matching the teacher's nil-safe
// getter convention.
func (f *Frame) Precision() uint {
	if f == nil || f.cur.precision == 0 {
		return term.DefaultPrecision
	}
	return f.cur.precision
}

func (f *Frame) SetPrecision(bits uint) { f.cur.precision = bits }

func (f *Frame) Rounding() big.RoundingMode {
	if f == nil {
		return big.ToNearestEven
	}
	return f.cur.rounding
}

func (f *Frame) SetRounding(r big.RoundingMode) { f.cur.rounding = r }

// Base returns (inputBase, outputBase); both 10 on a nil Frame.
func (f *Frame) Base() (int, int) {
	if f == nil {
		return 10, 10
	}
	return f.cur.inputBase, f.cur.outputBase
}

func (f *Frame) SetBase(in, out int) { f.cur.inputBase, f.cur.outputBase = in, out }

func (f *Frame) Domain() term.Domain {
	if f == nil {
		return term.DomainComplex
	}
	return f.cur.domain
}

func (f *Frame) SetDomain(d term.Domain) { f.cur.domain = d }

// Modulus returns the ambient integer modulus, or nil if unset (§5.4:
// "if non-null, all integer operations return results reduced into
// ℤ/nℤ").
func (f *Frame) Modulus() *big.Int {
	if f == nil {
		return nil
	}
	return f.cur.modulus
}

func (f *Frame) SetModulus(m *big.Int) { f.cur.modulus = m }

// MaxIntBits returns the overflow guard in bits; 0 means unbounded.
func (f *Frame) MaxIntBits() int {
	if f == nil {
		return 0
	}
	return f.cur.maxIntBits
}

func (f *Frame) SetMaxIntBits(bits int) { f.cur.maxIntBits = bits }

// Presimplify reports whether floats should be presimplified before
// structural evaluation (§4.3).
func (f *Frame) Presimplify() bool {
	if f == nil {
		return true
	}
	return f.cur.presimplify
}

func (f *Frame) SetPresimplify(v bool) { f.cur.presimplify = v }

// SortHook and ZeroHook let a caller override the kernel's default
// total order / zero test for one scope, e.g. for a frame whose domain
// restricts comparisons. A nil hook means "use the kernel default".
func (f *Frame) SortHook() func(a, b *term.Term) int {
	if f == nil {
		return nil
	}
	return f.cur.sortHook
}

func (f *Frame) SetSortHook(h func(a, b *term.Term) int) { f.cur.sortHook = h }

func (f *Frame) ZeroHook() func(t *term.Term) bool {
	if f == nil {
		return nil
	}
	return f.cur.zeroHook
}

func (f *Frame) SetZeroHook(h func(t *term.Term) bool) { f.cur.zeroHook = h }

// Debug reports whether a tracing topic is enabled, mirroring the
// teacher's config.Config.Debug.
func (f *Frame) Debug(topic string) bool {
	if f == nil {
		return false
	}
	return f.cur.debug[topic]
}

func (f *Frame) SetDebug(topic string, v bool) {
	if f.cur.debug == nil {
		f.cur.debug = make(map[string]bool)
	}
	f.cur.debug[topic] = v
}

// Push saves the current settings onto an internal stack so a caller
// can apply local overrides and later discard them with Pop (§5.4
// "frames nest via scoped push/pop").
func (f *Frame) Push() {
	f.stack = append(f.stack, f.cur)
}

// Pop restores the settings saved by the matching Push. It panics if
// the stack is empty, since an unbalanced pop is a programming error,
// not a recoverable runtime condition.
func (f *Frame) Pop() {
	n := len(f.stack)
	if n == 0 {
		panic("frame: Pop without matching Push")
	}
	f.cur = f.stack[n-1]
	f.stack = f.stack[:n-1]
}

// Snapshot returns an independent copy of f suitable for handing to a
// worker goroutine (§5.4 "propagated to workers by snapshot"); the
// debug map is copied so the worker's SetDebug calls cannot race with
// the parent's.
func (f *Frame) Snapshot() *Frame {
	if f == nil {
		return New()
	}
	clone := &Frame{cur: f.cur}
	if f.cur.debug != nil {
		clone.cur.debug = make(map[string]bool, len(f.cur.debug))
		for k, v := range f.cur.debug {
			clone.cur.debug[k] = v
		}
	}
	return clone
}
