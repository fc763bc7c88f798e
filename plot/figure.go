// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"slices"
)

// Grid is a rows×cols arrangement of optional Axes. Slots are
// addressed in row-major order and an empty slot draws nothing.
type Grid struct {
	rows, cols     int
	slots          []*Axes
	shareX, shareY bool
}

// MaxGridSide is the largest number of rows or columns in a Grid.
const MaxGridSide = 1 << 10

// NewGrid returns a grid of rows×cols empty slots. Dimensions are
// clamped to [0, MaxGridSide]; a grid with no slots is valid but
// nothing can be placed in it.
func NewGrid(rows, cols int) Grid {
	rows, cols = min(max(rows, 0), MaxGridSide), min(max(cols, 0), MaxGridSide)
	return Grid{rows: rows, cols: cols, slots: make([]*Axes, rows*cols)}
}

// Shape returns the number of rows and columns of g.
func (g Grid) Shape() (rows, cols int) { return g.rows, g.cols }

// Len returns the number of slots in g.
func (g Grid) Len() int { return len(g.slots) }

// Slot returns the Axes at index i, if one has been placed there.
func (g Grid) Slot(i int) (Axes, bool) {
	if i < 0 || i >= len(g.slots) || g.slots[i] == nil {
		return Axes{}, false
	}
	return *g.slots[i], true
}

func (g Grid) ShareX() bool { return g.shareX }
func (g Grid) ShareY() bool { return g.shareY }

// At returns g with axes placed at slot index, replacing anything
// already there. Index is row-major: row*cols + col. It fails with
// ErrIndexOutOfRange unless 0 <= index < rows*cols.
func (g Grid) At(index int, axes Axes) (Grid, error) {
	if index < 0 || index >= len(g.slots) {
		return g, fmt.Errorf("%w: index %d in %d×%d grid", ErrIndexOutOfRange, index, g.rows, g.cols)
	}
	g.slots = slices.Clone(g.slots)
	g.slots[index] = &axes
	return g, nil
}

// Place is like At, but addresses the slot by row and column.
func (g Grid) Place(row, col int, axes Axes) (Grid, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return g, fmt.Errorf("%w: (%d, %d) in %d×%d grid", ErrIndexOutOfRange, row, col, g.rows, g.cols)
	}
	return g.At(row*g.cols+col, axes)
}

// WithShareX returns g with the x axis shared across all slots.
func (g Grid) WithShareX(share bool) Grid {
	g.shareX = share
	return g
}

// WithShareY returns g with the y axis shared across all slots.
func (g Grid) WithShareY(share bool) Grid {
	g.shareY = share
	return g
}

// Figure is the root of a plot description. A figure is either empty
// or holds a Grid; a single-panel figure is a 1×1 grid.
type Figure struct {
	grid *Grid
}

// NewFigure returns an empty figure.
func NewFigure() Figure {
	return Figure{}
}

// Grid returns the layout of f, if it has one.
func (f Figure) Grid() (Grid, bool) { return get(f.grid) }

// WithAxes returns f laid out as a single panel holding axes.
func (f Figure) WithAxes(axes Axes) Figure {
	g := NewGrid(1, 1)
	g.slots[0] = &axes
	f.grid = &g
	return f
}

// WithSubplots returns f laid out as g.
func (f Figure) WithSubplots(g Grid) Figure {
	f.grid = &g
	return f
}
