// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when parallel data buffers of a
	// Series have different lengths.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfRange is returned when a subplot slot index is
	// outside its Grid.
	ErrIndexOutOfRange = errors.New("subplot index out of range")
)

// ShapeError describes two parallel buffers of different lengths. It
// matches ErrShapeMismatch with errors.Is.
type ShapeError struct {
	Names [2]string
	Lens  [2]int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has %d samples, %s has %d", ErrShapeMismatch, e.Names[0], e.Lens[0], e.Names[1], e.Lens[1])
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}
