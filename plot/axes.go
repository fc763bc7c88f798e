// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"slices"
	"strings"
)

// Range is a closed interval of an axis.
type Range struct {
	Lo, Hi float64
}

// Axes is one plotting region: an ordered list of series plus
// axis-level configuration. Series are drawn in the order they were
// added, so later series appear on top.
//
// The zero Axes is empty with every setting unset, meaning the
// renderer chooses.
type Axes struct {
	series []Series

	xlabel, ylabel *string
	grid           bool
	legend         *string
	xlim, ylim     *Range
}

// NewAxes returns an empty Axes.
func NewAxes() Axes {
	return Axes{}
}

// Add returns a with s appended to its series.
func (a Axes) Add(s Series) Axes {
	// Clip so that two Axes built from the same a never share the
	// appended element.
	a.series = append(slices.Clip(a.series), s)
	return a
}

// Series returns the series of a in drawing order. The caller must
// not modify the returned slice.
func (a Axes) Series() []Series { return a.series }

func (a Axes) XLabel() (string, bool) { return get(a.xlabel) }
func (a Axes) YLabel() (string, bool) { return get(a.ylabel) }
func (a Axes) Grid() bool { return a.grid }
func (a Axes) XLim() (Range, bool) { return get(a.xlim) }
func (a Axes) YLim() (Range, bool) { return get(a.ylim) }

// Legend returns the legend location, if a legend is shown. The
// location is a renderer-defined string such as "upper right".
func (a Axes) Legend() (string, bool) { return get(a.legend) }

func (a Axes) WithXLabel(text string) Axes {
	a.xlabel = ptr(text)
	return a
}

func (a Axes) WithYLabel(text string) Axes {
	a.ylabel = ptr(text)
	return a
}

// WithGrid returns a with grid lines shown or hidden.
func (a Axes) WithGrid(enabled bool) Axes {
	a.grid = enabled
	return a
}

// WithLegend returns a with a legend at loc. If loc is empty or only
// white space, the legend is removed and a is indistinguishable from
// an Axes on which WithLegend was never called.
func (a Axes) WithLegend(loc string) Axes {
	if strings.TrimSpace(loc) == "" {
		a.legend = nil
	} else {
		a.legend = ptr(loc)
	}
	return a
}

// WithXLim returns a with the x axis limited to [lo, hi]. The bounds
// are passed to the renderer as given.
func (a Axes) WithXLim(lo, hi float64) Axes {
	a.xlim = &Range{lo, hi}
	return a
}

// WithYLim returns a with the y axis limited to [lo, hi].
func (a Axes) WithYLim(lo, hi float64) Axes {
	a.ylim = &Range{lo, hi}
	return a
}
