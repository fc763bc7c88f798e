// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/go-mpl/plot"
	"github.com/spf13/cobra"
)

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Render a sample figure",
		Long: `Render a sample figure: sin and cos over two periods, and the area
between them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := demoFigure()
			if err != nil {
				return err
			}
			return a.renderAll(fig)
		},
	}
}

func demoFigure() (plot.Figure, error) {
	x := vec.Linspace(0, 3.12*math.Pi, 40)
	sin, cos := vec.Map(math.Sin, x), vec.Map(math.Cos, x)

	pts, err := plot.NewScatter().WithData(x, sin)
	if err != nil {
		return plot.Figure{}, err
	}
	line, err := plot.NewLine().WithData(x, cos)
	if err != nil {
		return plot.Figure{}, err
	}
	fill, err := plot.NewFillBetween().WithData(x, sin, cos)
	if err != nil {
		return plot.Figure{}, err
	}

	top := plot.NewAxes().
		Add(pts.WithLabel("sin(x)").WithMarker("o")).
		Add(line.WithLabel("cos(x)").WithColor("red").WithMarker("x").WithLineStyle("--").WithLineWidth(1)).
		WithXLabel("Time [sec]").
		WithYLabel("Distance [mm]").
		WithLegend("upper right").
		WithXLim(0, 8).
		WithYLim(-2, 2)
	bottom := plot.NewAxes().Add(fill.WithInterpolate(true))

	g, err := plot.NewGrid(2, 1).At(0, top)
	if err != nil {
		return plot.Figure{}, err
	}
	if g, err = g.At(1, bottom); err != nil {
		return plot.Figure{}, err
	}
	return plot.NewFigure().WithSubplots(g), nil
}
