// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfig

import (
	"fmt"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-mpl/plot"
)

// Options controls Figure.
type Options struct {
	// Units selects the units to plot, in order. If empty, every
	// unit is plotted in order of first appearance.
	Units []string

	// Band adds to each panel a shaded band spanning the lowest
	// to the highest value of each run across benchmarks.
	Band bool
}

// Figure plots results with one panel per unit, stacked in a column
// with a shared x axis. Each benchmark is a line of its values by run
// number, labeled with its mean and standard deviation. Results with
// no values yield the empty figure.
func Figure(results []Result, opts Options) (plot.Figure, error) {
	units := opts.Units
	if len(units) == 0 {
		units = allUnits(results)
	}
	if len(units) == 0 {
		return plot.NewFigure(), nil
	}

	g := plot.NewGrid(len(units), 1).WithShareX(true)
	for i, unit := range units {
		ax, err := unitAxes(results, unit, opts.Band)
		if err != nil {
			return plot.Figure{}, fmt.Errorf("%s: %w", unit, err)
		}
		if i == len(units)-1 {
			ax = ax.WithXLabel("run")
		}
		if g, err = g.At(i, ax); err != nil {
			return plot.Figure{}, err
		}
	}
	return plot.NewFigure().WithSubplots(g), nil
}

func allUnits(results []Result) []string {
	var units []string
	for _, r := range results {
		for _, u := range r.Units {
			if !slices.Contains(units, u) {
				units = append(units, u)
			}
		}
	}
	return units
}

// runs returns the values of unit for each benchmark, by name in
// order of first appearance.
func runs(results []Result, unit string) (names []string, values map[string][]float64) {
	values = make(map[string][]float64)
	for _, r := range results {
		v, ok := r.Values[unit]
		if !ok {
			continue
		}
		if _, ok := values[r.Name]; !ok {
			names = append(names, r.Name)
		}
		values[r.Name] = append(values[r.Name], v)
	}
	return names, values
}

func unitAxes(results []Result, unit string, band bool) (plot.Axes, error) {
	ax := plot.NewAxes().WithYLabel(unit).WithGrid(true)
	names, values := runs(results, unit)
	if len(names) == 0 {
		return ax, nil
	}
	if band {
		f, err := spread(names, values)
		if err != nil {
			return plot.Axes{}, err
		}
		ax = ax.Add(f)
	}
	for _, name := range names {
		ys := values[name]
		s := stats.Sample{Xs: ys}
		l, err := plot.NewLine().WithData(runNumbers(len(ys)), ys)
		if err != nil {
			return plot.Axes{}, err
		}
		label := fmt.Sprintf("%s (%.4g ± %.4g)", name, s.Mean(), stdDev(s))
		ax = ax.Add(l.WithLabel(label).WithMarker("."))
	}
	if len(names) > 1 {
		ax = ax.WithLegend("best")
	}
	return ax, nil
}

// spread returns a band covering, for each run number, the range of
// values across benchmarks that have that run.
func spread(names []string, values map[string][]float64) (plot.FillBetween, error) {
	n := 0
	for _, ys := range values {
		n = max(n, len(ys))
	}
	lo, hi := make([]float64, n), make([]float64, n)
	for i := range n {
		var at []float64
		for _, name := range names {
			if ys := values[name]; i < len(ys) {
				at = append(at, ys[i])
			}
		}
		lo[i], hi[i] = stats.Bounds(at)
	}
	f, err := plot.NewFillBetween().WithData(runNumbers(n), lo, hi)
	if err != nil {
		return plot.FillBetween{}, err
	}
	return f.WithLabel("range").WithColor("0.85"), nil
}

// stdDev is the sample standard deviation, or 0 for a single sample.
func stdDev(s stats.Sample) float64 {
	if len(s.Xs) < 2 {
		return 0
	}
	return s.StdDev()
}

func runNumbers(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}
