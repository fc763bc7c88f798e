// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDataAnyValues(t *testing.T) {
	for _, test := range []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"empty non-nil", []float64{}, []float64{}},
		{"finite", []float64{0, 1, 2}, []float64{0, 1, 4}},
		{"nan", []float64{math.NaN()}, []float64{1}},
		{"inf", []float64{math.Inf(1), math.Inf(-1)}, []float64{0, math.NaN()}},
	} {
		s, err := NewScatter().WithData(test.x, test.y)
		require.NoError(t, err, test.name)
		assert.Equal(t, len(test.x), s.Len(), test.name)

		l, err := NewLine().WithData(test.x, test.y)
		require.NoError(t, err, test.name)
		assert.Equal(t, len(test.x), l.Len(), test.name)
	}
}

func TestWithDataShapeMismatch(t *testing.T) {
	for _, lens := range [][2]int{{0, 1}, {1, 0}, {3, 2}, {2, 5}} {
		x, y := make([]float64, lens[0]), make([]float64, lens[1])

		_, err := NewScatter().WithData(x, y)
		assert.ErrorIs(t, err, ErrShapeMismatch, "scatter %v", lens)

		_, err = NewLine().WithData(x, y)
		assert.ErrorIs(t, err, ErrShapeMismatch, "line %v", lens)

		var se *ShapeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, lens, se.Lens)
	}

	_, err := NewFillBetween().WithData([]float64{1, 2}, []float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = NewFillBetween().WithData([]float64{1, 2}, []float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestWithDataCopies(t *testing.T) {
	x, y := []float64{1, 2}, []float64{3, 4}
	s, err := NewScatter().WithData(x, y)
	require.NoError(t, err)
	x[0], y[0] = 100, 100
	assert.Equal(t, []float64{1, 2}, s.X())
	assert.Equal(t, []float64{3, 4}, s.Y())
}

func TestStyleSetters(t *testing.T) {
	l := NewLine().WithLabel("cos").WithColor("red").WithMarker("x").WithLineStyle("--").WithLineWidth(math.NaN())

	label, ok := l.Style().Label()
	assert.True(t, ok)
	assert.Equal(t, "cos", label)
	color, _ := l.Style().Color()
	assert.Equal(t, "red", color)
	marker, _ := l.Style().Marker()
	assert.Equal(t, "x", marker)
	ls, _ := l.LineStyle()
	assert.Equal(t, "--", ls)
	lw, ok := l.LineWidth()
	assert.True(t, ok)
	assert.True(t, math.IsNaN(lw))

	// Setters leave the receiver alone.
	base := NewScatter()
	_ = base.WithLabel("a")
	_, ok = base.Style().Label()
	assert.False(t, ok)
}

func TestFillBetween(t *testing.T) {
	f, err := NewFillBetween().WithData([]float64{0, 1}, []float64{0, 1}, []float64{1, 2})
	require.NoError(t, err)
	f = f.WithInterpolate(true).WithStep("mid")
	assert.True(t, f.Interpolate())
	step, ok := f.Step()
	assert.True(t, ok)
	assert.Equal(t, "mid", step)

	_, ok = f.Where()
	assert.False(t, ok)
	_, err = f.WithWhere([]bool{true})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	f, err = f.WithWhere([]bool{true, false})
	require.NoError(t, err)
	mask, ok := f.Where()
	assert.True(t, ok)
	assert.Equal(t, []bool{true, false}, mask)

	// Replacing data with a different length drops the mask.
	f, err = f.WithData([]float64{0}, []float64{0}, []float64{0})
	require.NoError(t, err)
	_, ok = f.Where()
	assert.False(t, ok)
}

func TestLegendNormalization(t *testing.T) {
	for _, loc := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, NewAxes(), NewAxes().WithLegend(loc), "%q", loc)
		assert.Equal(t, NewAxes(), NewAxes().WithLegend("x").WithLegend(loc), "%q", loc)
		_, ok := NewAxes().WithLegend("best").WithLegend(loc).Legend()
		assert.False(t, ok)
	}
	loc, ok := NewAxes().WithLegend("upper right").Legend()
	assert.True(t, ok)
	assert.Equal(t, "upper right", loc)
}

func TestAxesLastWriteWins(t *testing.T) {
	a := NewAxes().WithXLim(0, 1).WithXLim(-2, 2).WithXLabel("a").WithXLabel("b").WithGrid(true).WithGrid(false)
	xlim, ok := a.XLim()
	assert.True(t, ok)
	assert.Equal(t, Range{-2, 2}, xlim)
	xlabel, _ := a.XLabel()
	assert.Equal(t, "b", xlabel)
	assert.False(t, a.Grid())
	_, ok = a.YLim()
	assert.False(t, ok)
}

func TestAxesAddOrder(t *testing.T) {
	s1 := NewScatter().WithLabel("1")
	s2 := NewLine().WithLabel("2")
	base := NewAxes().Add(s1)
	a := base.Add(s2)
	b := base.Add(NewFillBetween())

	require.Len(t, a.Series(), 2)
	assert.Equal(t, KindScatter, a.Series()[0].Kind())
	assert.Equal(t, KindLine, a.Series()[1].Kind())
	// b must not have overwritten a's second series.
	assert.Equal(t, KindFillBetween, b.Series()[1].Kind())
	assert.Len(t, base.Series(), 1)
}

func TestGridAt(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {2, 1}, {2, 3}} {
		r, c := shape[0], shape[1]
		g := NewGrid(r, c)
		_, err := g.At(r*c-1, NewAxes())
		assert.NoError(t, err, "%v", shape)
		_, err = g.At(r*c, NewAxes())
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "%v", shape)
		_, err = g.At(-1, NewAxes())
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "%v", shape)
	}

	_, err := NewGrid(0, 3).At(0, NewAxes())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNewGridClamp(t *testing.T) {
	for _, shape := range [][2]int{{math.MaxInt, 3}, {3, math.MaxInt}, {math.MaxInt / 2, 3}, {-4, 2}} {
		g := NewGrid(shape[0], shape[1])
		r, c := g.Shape()
		assert.LessOrEqual(t, r, MaxGridSide, "%v", shape)
		assert.LessOrEqual(t, c, MaxGridSide, "%v", shape)
		assert.Equal(t, r*c, g.Len(), "%v", shape)
	}
	r, c := NewGrid(math.MaxInt, 3).Shape()
	assert.Equal(t, [2]int{MaxGridSide, 3}, [2]int{r, c})
}

func TestGridPlaceRowMajor(t *testing.T) {
	ax := NewAxes().WithXLabel("here")
	g, err := NewGrid(2, 3).Place(1, 2, ax)
	require.NoError(t, err)
	got, ok := g.Slot(5)
	require.True(t, ok)
	assert.Equal(t, ax, got)
	for i := 0; i < 5; i++ {
		_, ok := g.Slot(i)
		assert.False(t, ok, "slot %d", i)
	}

	_, err = NewGrid(2, 3).Place(0, 3, ax)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestGridValueSemantics(t *testing.T) {
	base := NewGrid(1, 2)
	g1, err := base.At(0, NewAxes().WithXLabel("one"))
	require.NoError(t, err)
	_, err = g1.At(0, NewAxes().WithXLabel("two"))
	require.NoError(t, err)

	_, ok := base.Slot(0)
	assert.False(t, ok)
	got, _ := g1.Slot(0)
	label, _ := got.XLabel()
	assert.Equal(t, "one", label)
}

func TestFigure(t *testing.T) {
	_, ok := NewFigure().Grid()
	assert.False(t, ok)

	fig := NewFigure().WithAxes(NewAxes().WithGrid(true))
	g, ok := fig.Grid()
	require.True(t, ok)
	rows, cols := g.Shape()
	assert.Equal(t, [2]int{1, 1}, [2]int{rows, cols})
	ax, ok := g.Slot(0)
	require.True(t, ok)
	assert.True(t, ax.Grid())
}
