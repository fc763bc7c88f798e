// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-mpl/plot"
	svg "github.com/ajstarks/svgo"
)

// Native renders figures in process with go-gg and writes each one
// to its writer as an SVG document.
//
// go-gg draws a subset of what matplotlib does. Markers, line styles,
// line widths, step modes, fill masks, and legends are ignored; axis
// labels and limits come from the first panel that sets them; and
// panels without data are dropped from the layout.
type Native struct {
	w             io.Writer
	width, height int
}

// NewNative returns a Native backend writing width×height SVG
// documents to w.
func NewNative(w io.Writer, width, height int) *Native {
	return &Native{w: w, width: width, height: height}
}

// Evaluate renders fig and writes it to the backend's writer.
func (n *Native) Evaluate(fig plot.Figure) (err error) {
	g, ok := fig.Grid()
	if !ok {
		return n.blank()
	}
	tab, kinds := figureTable(g)
	if tab.Len() == 0 {
		return n.blank()
	}

	defer func() {
		// go-gg reports bad input by panicking.
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering figure: %v", r)
		}
	}()

	rows, cols := g.Shape()
	p := gg.NewPlot(tab)
	// Scales must be in place before faceting clones them.
	applyAxes(p, g)
	// FacetWrap cannot split scales, so lay the grid out as a
	// column facet composed with a row facet. Splitting in both
	// leaves unshared panels with a scale each.
	label := func(v interface{}) string { return fmt.Sprint(v.(int) + 1) }
	if cols > 1 {
		p.Add(gg.FacetX{
			Col:          "col",
			SplitXScales: !g.ShareX(),
			SplitYScales: !g.ShareY(),
			Labeler:      label,
		})
	}
	if rows > 1 {
		p.Add(gg.FacetY{
			Col:          "row",
			SplitXScales: !g.ShareX(),
			SplitYScales: !g.ShareY(),
			Labeler:      label,
		})
	}
	for _, k := range kinds {
		p.Save()
		p.SetData(table.FilterEq(p.Data(), "kind", k.String()))
		switch k {
		case plot.KindScatter:
			p.Add(gg.LayerPoints{X: "x", Y: "y", Color: "series"})
		case plot.KindLine:
			p.Add(gg.LayerPaths{X: "x", Y: "y", Color: "series"})
		case plot.KindFillBetween:
			p.Add(gg.LayerArea{X: "x", Lower: "y", Upper: "y2", Fill: "series"})
		}
		p.Restore()
	}

	if err := p.WriteSVG(n.w, n.width, n.height); err != nil {
		return fmt.Errorf("rendering figure: %w", err)
	}
	return nil
}

// blank writes an empty canvas.
func (n *Native) blank() error {
	w := &errWriter{w: n.w}
	canvas := svg.New(w)
	canvas.Start(n.width, n.height)
	canvas.End()
	if w.err != nil {
		return fmt.Errorf("rendering figure: %w", w.err)
	}
	return nil
}

// figureTable flattens every series of g into one table with a row
// per sample. It also returns the series kinds present, in first-use
// order.
func figureTable(g plot.Grid) (*table.Table, []plot.Kind) {
	var (
		row, col   []int
		name, kind []string
		x, y, y2   []float64
		kinds      []plot.Kind
		seen       = map[plot.Kind]bool{}
	)
	_, cols := g.Shape()
	for i := 0; i < g.Len(); i++ {
		ax, ok := g.Slot(i)
		if !ok {
			continue
		}
		for j, s := range ax.Series() {
			label, ok := s.Style().Label()
			if !ok {
				label = fmt.Sprintf("series %d", j+1)
			}
			var sx, sy, sy2 []float64
			switch s := s.(type) {
			case plot.Scatter:
				sx, sy, sy2 = s.X(), s.Y(), s.Y()
			case plot.Line:
				sx, sy, sy2 = s.X(), s.Y(), s.Y()
			case plot.FillBetween:
				sx, sy, sy2 = s.X(), s.Y1(), s.Y2()
			}
			for range sx {
				row = append(row, i/cols)
				col = append(col, i%cols)
				name = append(name, label)
				kind = append(kind, s.Kind().String())
			}
			x = append(x, sx...)
			y = append(y, sy...)
			y2 = append(y2, sy2...)
			if len(sx) > 0 && !seen[s.Kind()] {
				seen[s.Kind()] = true
				kinds = append(kinds, s.Kind())
			}
		}
	}
	tab := table.NewBuilder(nil).
		Add("row", row).
		Add("col", col).
		Add("series", name).
		Add("kind", kind).
		Add("x", x).
		Add("y", y).
		Add("y2", y2).
		Done()
	return tab, kinds
}

func applyAxes(p *gg.Plot, g plot.Grid) {
	var haveX, haveY, haveXLim, haveYLim bool
	for i := 0; i < g.Len(); i++ {
		ax, ok := g.Slot(i)
		if !ok {
			continue
		}
		if l, ok := ax.XLabel(); ok && !haveX {
			p.Add(gg.AxisLabel("x", l))
			haveX = true
		}
		if l, ok := ax.YLabel(); ok && !haveY {
			p.Add(gg.AxisLabel("y", l))
			haveY = true
		}
		if r, ok := ax.XLim(); ok && !haveXLim {
			p.SetScale("x", gg.NewLinearScaler().SetMin(r.Lo).SetMax(r.Hi))
			haveXLim = true
		}
		if r, ok := ax.YLim(); ok && !haveYLim {
			p.SetScale("y", gg.NewLinearScaler().SetMin(r.Lo).SetMax(r.Hi))
			haveYLim = true
		}
	}
}

// errWriter remembers the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	w.err = err
	return n, err
}
