// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figdoc

import (
	"bytes"
	"fmt"

	"github.com/aclements/go-mpl/plot"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FromFigure returns the document describing fig. Empty grid slots
// are left out.
func FromFigure(fig plot.Figure) Document {
	var d Document
	g, ok := fig.Grid()
	if !ok {
		return d
	}
	rows, cols := g.Shape()
	d.Rows, d.Cols = &rows, &cols
	d.ShareX, d.ShareY = g.ShareX(), g.ShareY()
	for i := 0; i < g.Len(); i++ {
		ax, ok := g.Slot(i)
		if !ok {
			continue
		}
		spec := axesSpec(ax)
		spec.Slot = opt(i, true)
		d.Axes = append(d.Axes, spec)
	}
	return d
}

func axesSpec(ax plot.Axes) AxesSpec {
	a := AxesSpec{Grid: ax.Grid()}
	a.XLabel = opt[string](ax.XLabel())
	a.YLabel = opt[string](ax.YLabel())
	a.Legend = opt[string](ax.Legend())
	if r, ok := ax.XLim(); ok {
		a.XLim = []float64{r.Lo, r.Hi}
	}
	if r, ok := ax.YLim(); ok {
		a.YLim = []float64{r.Lo, r.Hi}
	}
	for _, s := range ax.Series() {
		a.Series = append(a.Series, seriesSpec(s))
	}
	return a
}

func seriesSpec(s plot.Series) SeriesSpec {
	st := s.Style()
	spec := SeriesSpec{Kind: s.Kind().String()}
	spec.Label = opt[string](st.Label())
	spec.Color = opt[string](st.Color())
	switch s := s.(type) {
	case plot.Scatter:
		spec.X, spec.Y = s.X(), s.Y()
		spec.Marker = opt[string](st.Marker())
	case plot.Line:
		spec.X, spec.Y = s.X(), s.Y()
		spec.Marker = opt[string](st.Marker())
		spec.LineStyle = opt[string](s.LineStyle())
		spec.LineWidth = opt[float64](s.LineWidth())
	case plot.FillBetween:
		spec.X, spec.Y, spec.Y2 = s.X(), s.Y1(), s.Y2()
		if w, ok := s.Where(); ok {
			spec.Where = &w
		}
		spec.Interpolate = s.Interpolate()
		spec.Step = opt[string](s.Step())
	}
	// Documents always spell out the data, even when empty.
	if spec.X == nil {
		spec.X, spec.Y = []float64{}, []float64{}
	}
	return spec
}

// Marshal returns fig as a document in the given format.
func Marshal(fig plot.Figure, format Format) ([]byte, error) {
	doc := FromFigure(fig)
	var buf bytes.Buffer
	switch format {
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case TOML:
		enc := toml.NewEncoder(&buf).SetArraysMultiline(false)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	return buf.Bytes(), nil
}

func opt[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
