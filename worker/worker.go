// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package worker implements spec.md §5's bounded worker-thread pool for
// data-parallel inner loops: a spawn block attached to a compact mark,
// each task running against its own private arena and a frame
// snapshot, falling inline when the pool is saturated. Grounded on
// original_source/kernel_thread.c's may_spawn/may_spawn_sync, adapted
// to goroutines bounded by golang.org/x/sync/semaphore rather than a
// fixed set of pre-spawned, condition-variable-woken pthreads — Go's
// goroutines are cheap enough that a fresh one per task, gated by a
// weighted semaphore, gives the same "hand to an idle worker or run
// inline" contract without the C original's thread-reuse bookkeeping.
package worker

import (
	"sync"

	"golang.org/x/sync/semaphore"

	"maylib.dev/may/arena"
	"maylib.dev/may/eval"
	"maylib.dev/may/frame"
	"maylib.dev/may/term"
)

// MaxWorkers bounds the pool (§5.1).
const MaxWorkers = 32

// defaultWorkerArenaBytes is a worker's private arena's initial size;
// it's extendable, so this only sets the starting allocation.
const defaultWorkerArenaBytes = 1 << 16

// Pool bounds how many tasks run concurrently across every block built
// on it. A zero Pool is not usable; use NewPool.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a Pool with the given capacity, clamped to
// [1, MaxWorkers].
func NewPool(capacity int64) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	if capacity > MaxWorkers {
		capacity = MaxWorkers
	}
	return &Pool{sem: semaphore.NewWeighted(capacity)}
}

// Block is a spawn block (§5.2): a set of tasks sharing one owning
// arena and one ambient frame, whose results are collected by Sync.
type Block struct {
	pool  *Pool
	owner *arena.Arena
	frame *frame.Frame

	wg sync.WaitGroup
	mu sync.Mutex
	results []*term.Term
}

// NewBlock starts a spawn block against owner (the caller's arena,
// whose next Compact will absorb every task's private arena) and f
// (the ambient frame snapshotted into each task).
func (p *Pool) NewBlock(owner *arena.Arena, f *frame.Frame) *Block {
	return &Block{pool: p, owner: owner, frame: f}
}

// Spawn runs task against an Evaluator bound to a private arena and a
// snapshot of the block's frame. If a pool slot is free the task runs
// on its own goroutine; otherwise (§5.2 "else execute inline") it runs
// synchronously on the caller using the block's own owner arena and
// frame directly, matching may_spawn's "no thread available, call the
// function ourself" fallback.
func (b *Block) Spawn(task func(e *eval.Evaluator) *term.Term) {
	if !b.pool.sem.TryAcquire(1) {
		r := task(eval.New(b.frame, term.NewBuilder(b.owner)))
		b.record(r)
		return
	}

	b.wg.Add(1)
	workerFrame := b.frame.Snapshot()
	workerArena := arena.New(defaultWorkerArenaBytes, true)
	go func() {
		defer b.pool.sem.Release(1)
		defer b.wg.Done()
		r := task(eval.New(workerFrame, term.NewBuilder(workerArena)))
		// The worker must not allocate into workerArena again; its
		// result was the last thing built in it.
		b.owner.AbsorbForeign(workerArena)
		b.record(r)
	}()
}

func (b *Block) record(r *term.Term) {
	b.mu.Lock()
	b.results = append(b.results, r)
	b.mu.Unlock()
}

// Sync waits until every task spawned on b has terminated (§5.2, §5.3:
// the only suspension point) and returns their results in completion
// order. Results produced on worker arenas are only safe to keep past
// this point via the owner arena's next Compact/Keep call, which is
// what absorbs the foreign arenas Spawn registered.
func (b *Block) Sync() []*term.Term {
	b.wg.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}
