// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package worker

import (
	"sort"
	"testing"

	"golang.org/x/sync/semaphore"

	"maylib.dev/may/arena"
	"maylib.dev/may/eval"
	"maylib.dev/may/frame"
	"maylib.dev/may/term"
)

func newOwner(t *testing.T) (*arena.Arena, *frame.Frame) {
	t.Helper()
	return arena.New(1<<18, true), frame.New()
}

func TestBlockSyncCollectsAllResults(t *testing.T) {
	owner, f := newOwner(t)
	pool := NewPool(4)
	blk := pool.NewBlock(owner, f)

	for i := int64(1); i <= 5; i++ {
		n := i
		blk.Spawn(func(e *eval.Evaluator) *term.Term {
			return e.Eval(e.B.AddC(e.B.IntC64(n), e.B.IntC64(n)))
		})
	}
	results := blk.Sync()
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}

	got := make([]int64, len(results))
	for i, r := range results {
		if !r.IsNumeric() || r.Tag() != term.TagInteger {
			t.Fatalf("result %#v is not an integer", r)
		}
		got[i] = r.Int().Int64()
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []int64{2, 4, 6, 8, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("results = %v, want %v", got, want)
		}
	}
}

// TestBlockInlineWhenSaturated constructs a Block whose pool can never
// grant a slot (a zero-weight semaphore), forcing every Spawn onto the
// "no thread available" inline path (§5.2). That path runs task
// synchronously against the block's own owner arena and frame, so the
// result is already recorded by the time Spawn returns — no goroutine
// was ever scheduled for it.
func TestBlockInlineWhenSaturated(t *testing.T) {
	owner, f := newOwner(t)
	f.SetPrecision(77)
	blk := &Block{pool: &Pool{sem: semaphore.NewWeighted(0)}, owner: owner, frame: f}

	var sawPrecision uint
	blk.Spawn(func(e *eval.Evaluator) *term.Term {
		sawPrecision = e.F.Precision()
		return e.Eval(e.B.IntC64(42))
	})

	if sawPrecision != 77 {
		t.Fatalf("inline task saw precision %d, want 77 (the owner frame directly, no snapshot)", sawPrecision)
	}

	results := blk.Sync()
	if len(results) != 1 || term.Compare(results[0], term.NewBuilder(owner).IntC64(42)) != 0 {
		t.Fatalf("Sync() after inline Spawn = %#v, want [42]", results)
	}
}

// TestBlockGoroutinePathSeesFrameSnapshot spawns a single task into a
// pool with a free slot, and confirms the task observes the same
// setting as the owner frame at spawn time via Snapshot, per §5.4
// ("frame propagated to workers by snapshot").
func TestBlockGoroutinePathSeesFrameSnapshot(t *testing.T) {
	owner, f := newOwner(t)
	f.SetPrecision(53)
	pool := NewPool(1)
	blk := pool.NewBlock(owner, f)

	var sawPrecision uint
	blk.Spawn(func(e *eval.Evaluator) *term.Term {
		sawPrecision = e.F.Precision()
		return e.Eval(e.B.IntC64(1))
	})
	blk.Sync()

	if sawPrecision != 53 {
		t.Fatalf("worker saw precision %d, want 53", sawPrecision)
	}
}
