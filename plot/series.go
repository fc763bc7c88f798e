// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot is an in-memory description of a figure: series of
// data points, the axes that hold them, and the grid of axes that
// makes up a figure.
//
// Every type in this package is a value. Builder methods return an
// updated copy and never modify their receiver, so a value may be
// reused as the starting point of several figures. Nothing in this
// package draws anything; see package wire for the encoding handed
// to a renderer and package backend for the renderers themselves.
package plot

import (
	"fmt"
	"slices"
)

// Kind identifies a Series variant.
//
// Kind values are part of the wire format. New kinds are appended;
// existing values never change.
type Kind uint8

const (
	KindScatter Kind = iota
	KindLine
	KindFillBetween

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindScatter:
		return "scatter"
	case KindLine:
		return "line"
	case KindFillBetween:
		return "fill-between"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is a known series kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

// A Series is one renderable trace within an Axes. The set of
// implementations is closed: Scatter, Line, and FillBetween.
type Series interface {
	// Kind returns the variant of this series.
	Kind() Kind

	// Len returns the number of samples in the series.
	Len() int

	// Style returns the attributes shared by all variants.
	Style() Style

	isSeries()
}

// Style holds the optional attributes common to every Series. An
// unset attribute is left for the renderer to choose.
type Style struct {
	label, color, marker *string
}

// Label returns the legend label of the series, if set.
func (s Style) Label() (string, bool) { return get(s.label) }

// Color returns the color of the series, if set. Colors are palette
// names or hex strings interpreted by the renderer.
func (s Style) Color() (string, bool) { return get(s.color) }

// Marker returns the marker symbol of the series, if set.
func (s Style) Marker() (string, bool) { return get(s.marker) }

func get[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func ptr[T any](v T) *T {
	return &v
}

// Scatter is a series drawn as unconnected markers.
type Scatter struct {
	x, y  []float64
	style Style
}

// NewScatter returns an empty scatter series with default style.
func NewScatter() Scatter {
	return Scatter{}
}

func (Scatter) Kind() Kind { return KindScatter }
func (s Scatter) Len() int { return len(s.x) }
func (s Scatter) Style() Style { return s.style }
func (Scatter) isSeries() {}
func (s Scatter) X() []float64 { return s.x }
func (s Scatter) Y() []float64 { return s.y }

// WithData returns s with its data replaced by copies of x and y. It
// fails with ErrShapeMismatch if x and y have different lengths.
// Values are not inspected; NaN and infinities are passed through to
// the renderer.
func (s Scatter) WithData(x, y []float64) (Scatter, error) {
	if err := checkShape("x", x, "y", y); err != nil {
		return s, err
	}
	s.x, s.y = slices.Clone(x), slices.Clone(y)
	return s, nil
}

// WithLabel returns s with its legend label set to text.
func (s Scatter) WithLabel(text string) Scatter {
	s.style.label = ptr(text)
	return s
}

// WithColor returns s with its color set.
func (s Scatter) WithColor(color string) Scatter {
	s.style.color = ptr(color)
	return s
}

// WithMarker returns s with its marker symbol set.
func (s Scatter) WithMarker(marker string) Scatter {
	s.style.marker = ptr(marker)
	return s
}

// Line is a series drawn as a connected path through its points, in
// data order.
type Line struct {
	x, y      []float64
	style     Style
	linestyle *string
	linewidth *float64
}

// NewLine returns an empty line series with default style.
func NewLine() Line {
	return Line{}
}

func (Line) Kind() Kind { return KindLine }
func (l Line) Len() int { return len(l.x) }
func (l Line) Style() Style { return l.style }
func (Line) isSeries() {}
func (l Line) X() []float64 { return l.x }
func (l Line) Y() []float64 { return l.y }

// LineStyle returns the dash style of the line, if set.
func (l Line) LineStyle() (string, bool) { return get(l.linestyle) }

// LineWidth returns the stroke width of the line, if set.
func (l Line) LineWidth() (float64, bool) { return get(l.linewidth) }

// WithData returns l with its data replaced by copies of x and y. It
// fails with ErrShapeMismatch if x and y have different lengths.
func (l Line) WithData(x, y []float64) (Line, error) {
	if err := checkShape("x", x, "y", y); err != nil {
		return l, err
	}
	l.x, l.y = slices.Clone(x), slices.Clone(y)
	return l, nil
}

func (l Line) WithLabel(text string) Line {
	l.style.label = ptr(text)
	return l
}

func (l Line) WithColor(color string) Line {
	l.style.color = ptr(color)
	return l
}

func (l Line) WithMarker(marker string) Line {
	l.style.marker = ptr(marker)
	return l
}

// WithLineStyle returns l with its dash style set, for example "--".
func (l Line) WithLineStyle(style string) Line {
	l.linestyle = ptr(style)
	return l
}

// WithLineWidth returns l with its stroke width set. The width is not
// validated.
func (l Line) WithLineWidth(width float64) Line {
	l.linewidth = ptr(width)
	return l
}

// FillBetween is a series drawn as the shaded region between two
// curves y1 and y2 sharing the same x values. A fill has no markers,
// so its Style never carries one.
type FillBetween struct {
	x, y1, y2   []float64
	where       []bool
	style       Style
	interpolate bool
	step        *string
}

// NewFillBetween returns an empty fill-between series with default
// style.
func NewFillBetween() FillBetween {
	return FillBetween{}
}

func (FillBetween) Kind() Kind { return KindFillBetween }
func (f FillBetween) Len() int { return len(f.x) }
func (f FillBetween) Style() Style { return f.style }
func (FillBetween) isSeries() {}
func (f FillBetween) X() []float64 { return f.x }
func (f FillBetween) Y1() []float64 { return f.y1 }
func (f FillBetween) Y2() []float64 { return f.y2 }

// Where returns the mask restricting which samples are filled, if
// set.
func (f FillBetween) Where() ([]bool, bool) {
	return f.where, f.where != nil
}

// Interpolate reports whether the renderer should compute exact
// crossings of y1 and y2 when filling with a Where mask.
func (f FillBetween) Interpolate() bool { return f.interpolate }

// Step returns the step mode of the fill, if set.
func (f FillBetween) Step() (string, bool) { return get(f.step) }

// WithData returns f with its data replaced by copies of x, y1, and
// y2. It fails with ErrShapeMismatch unless all three have the same
// length. A previously set Where mask that no longer matches is
// dropped.
func (f FillBetween) WithData(x, y1, y2 []float64) (FillBetween, error) {
	if err := checkShape("x", x, "y1", y1); err != nil {
		return f, err
	}
	if err := checkShape("x", x, "y2", y2); err != nil {
		return f, err
	}
	f.x, f.y1, f.y2 = slices.Clone(x), slices.Clone(y1), slices.Clone(y2)
	if f.where != nil && len(f.where) != len(x) {
		f.where = nil
	}
	return f, nil
}

// WithWhere returns f with a copy of mask restricting the filled
// samples. It fails with ErrShapeMismatch if mask and the x data have
// different lengths.
func (f FillBetween) WithWhere(mask []bool) (FillBetween, error) {
	if len(mask) != len(f.x) {
		return f, &ShapeError{Names: [2]string{"x", "where"}, Lens: [2]int{len(f.x), len(mask)}}
	}
	f.where = slices.Clone(mask)
	if f.where == nil {
		f.where = []bool{}
	}
	return f, nil
}

func (f FillBetween) WithLabel(text string) FillBetween {
	f.style.label = ptr(text)
	return f
}

func (f FillBetween) WithColor(color string) FillBetween {
	f.style.color = ptr(color)
	return f
}

func (f FillBetween) WithInterpolate(interpolate bool) FillBetween {
	f.interpolate = interpolate
	return f
}

// WithStep returns f with its step mode set ("pre", "post", or "mid"
// for matplotlib).
func (f FillBetween) WithStep(step string) FillBetween {
	f.step = ptr(step)
	return f
}

func checkShape(an string, a []float64, bn string, b []float64) error {
	if len(a) != len(b) {
		return &ShapeError{Names: [2]string{an, bn}, Lens: [2]int{len(a), len(b)}}
	}
	return nil
}
