// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"math/big"
	"testing"
)

func TestDefaults(t *testing.T) {
	f := New()
	if f.Precision() == 0 {
		t.Fatal("Precision() = 0, want a positive default")
	}
	in, out := f.Base()
	if in != 10 || out != 10 {
		t.Fatalf("Base() = %d,%d, want 10,10", in, out)
	}
	if f.Modulus() != nil {
		t.Fatal("Modulus() on fresh Frame should be nil")
	}
}

func TestPushPopRestoresSettings(t *testing.T) {
	f := New()
	f.SetBase(8, 16)
	f.Push()
	f.SetBase(2, 2)
	f.SetModulus(big.NewInt(7))
	in, out := f.Base()
	if in != 2 || out != 2 {
		t.Fatalf("Base() after override = %d,%d, want 2,2", in, out)
	}
	f.Pop()
	in, out = f.Base()
	if in != 8 || out != 16 {
		t.Fatalf("Base() after Pop = %d,%d, want 8,16", in, out)
	}
	if f.Modulus() != nil {
		t.Fatal("Modulus() after Pop should be restored to nil")
	}
}

func TestPopWithoutPushPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pop without Push should panic")
		}
	}()
	New().Pop()
}

func TestNilFrameGettersAreSafe(t *testing.T) {
	var f *Frame
	if f.Precision() == 0 {
		t.Fatal("nil Frame Precision() should fall back to a default")
	}
	if f.Debug("anything") {
		t.Fatal("nil Frame Debug() should be false")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	f := New()
	f.SetDebug("eval", true)
	clone := f.Snapshot()
	clone.SetDebug("eval", false)
	if !f.Debug("eval") {
		t.Fatal("mutating the snapshot's debug map affected the original")
	}
}
