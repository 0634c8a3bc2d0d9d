// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import "fmt"

// Error is the kernel's error type. Errorf raises one by panicking;
// Try recovers it at a scope boundary, mirroring the teacher's
// value.Error / value.Errorf / run.Run recover pattern (§7).
type Error string

func (e Error) Error() string { return string(e) }

// Error kinds, tagged by the message prefix they carry. NaN is
// deliberately not here: it is a well-defined value, not an error
// (§7).
const (
	KindInvalidToken      = "invalid token"
	KindDimensionMismatch = "dimension mismatch"
	KindOutOfMemory       = "out of memory"
)

// Errorf formats a message and panics with it as an Error. Only Try (or
// an equivalent top-level recover) should catch it.
func Errorf(format string, args ...interface{}) {
	panic(Error(fmt.Sprintf("may: "+format, args...)))
}

// Try runs fn in a scoped error-handling region (§6.2, §7). If fn panics
// with an Error, Try recovers it and returns it as a normal error; any
// other panic propagates.
func Try(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(Error); ok {
			err = e
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
