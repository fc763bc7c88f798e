// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figdoc reads and writes figures as YAML or TOML documents.
//
// A document looks like this in YAML:
//
//	rows: 2
//	cols: 1
//	share_x: true
//	axes:
//	  - slot: 0
//	    xlabel: time
//	    legend: upper left
//	    series:
//	      - kind: line
//	        x: [0, 1, 2]
//	        y: [0, 1, 4]
//	        label: squares
//	  - slot: 1
//	    ylim: [-1, 1]
//	    series:
//	      - kind: fill-between
//	        x: [0, 1, 2]
//	        y: [0, 0, 0]
//	        y2: [1, 0.5, 1]
//
// The TOML form has the same keys, with axes and their series as
// arrays of tables.
//
// Without rows and cols, a document with one axes entry is a
// single-axes figure, a document with several is a stack of them in
// one column, and a document with none is the empty figure. An axes
// entry without a slot takes the slot of its position in the list.
package figdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-mpl/plot"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKind is returned for a series whose kind is not a
	// known plot.Kind.
	ErrUnknownKind = errors.New("unknown series kind")

	// ErrBadRange is returned for an axis limit that is not a pair
	// of numbers.
	ErrBadRange = errors.New("axis limit must be [lo, hi]")

	// ErrBadField is returned for a series attribute that its kind
	// does not have.
	ErrBadField = errors.New("attribute not valid for series kind")
)

// Format is a document syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%s: unrecognized figure document extension", path)
}

// Document is the decoded form of a figure document.
type Document struct {
	Rows   *int       `yaml:"rows,omitempty" toml:"rows,omitempty"`
	Cols   *int       `yaml:"cols,omitempty" toml:"cols,omitempty"`
	ShareX bool       `yaml:"share_x,omitempty" toml:"share_x,omitempty"`
	ShareY bool       `yaml:"share_y,omitempty" toml:"share_y,omitempty"`
	Axes   []AxesSpec `yaml:"axes,omitempty" toml:"axes,omitempty"`
}

// AxesSpec describes one axes of a Document.
type AxesSpec struct {
	Slot   *int         `yaml:"slot,omitempty" toml:"slot,omitempty"`
	XLabel *string      `yaml:"xlabel,omitempty" toml:"xlabel,omitempty"`
	YLabel *string      `yaml:"ylabel,omitempty" toml:"ylabel,omitempty"`
	Grid   bool         `yaml:"grid,omitempty" toml:"grid,omitempty"`
	Legend *string      `yaml:"legend,omitempty" toml:"legend,omitempty"`
	XLim   []float64    `yaml:"xlim,omitempty,flow" toml:"xlim,omitempty"`
	YLim   []float64    `yaml:"ylim,omitempty,flow" toml:"ylim,omitempty"`
	Series []SeriesSpec `yaml:"series,omitempty" toml:"series,omitempty"`
}

// SeriesSpec describes one series of an AxesSpec. Y holds the lower
// bound of a fill-between series.
type SeriesSpec struct {
	Kind        string    `yaml:"kind" toml:"kind"`
	X           []float64 `yaml:"x,flow" toml:"x"`
	Y           []float64 `yaml:"y,flow" toml:"y"`
	Y2          []float64 `yaml:"y2,omitempty,flow" toml:"y2,omitempty"`
	Label       *string   `yaml:"label,omitempty" toml:"label,omitempty"`
	Color       *string   `yaml:"color,omitempty" toml:"color,omitempty"`
	Marker      *string   `yaml:"marker,omitempty" toml:"marker,omitempty"`
	LineStyle   *string   `yaml:"linestyle,omitempty" toml:"linestyle,omitempty"`
	LineWidth   *float64  `yaml:"linewidth,omitempty" toml:"linewidth,omitempty"`
	Interpolate bool      `yaml:"interpolate,omitempty" toml:"interpolate,omitempty"`
	Step        *string   `yaml:"step,omitempty" toml:"step,omitempty"`
	Where       *[]bool   `yaml:"where,omitempty,flow" toml:"where,omitempty"`
}

// Load reads the figure document at path. The format follows the
// file extension.
func Load(path string) (plot.Figure, error) {
	format, err := FormatOf(path)
	if err != nil {
		return plot.Figure{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return plot.Figure{}, err
	}
	fig, err := Parse(data, format)
	if err != nil {
		return plot.Figure{}, fmt.Errorf("%s: %w", path, err)
	}
	return fig, nil
}

// Parse decodes a figure document.
func Parse(data []byte, format Format) (plot.Figure, error) {
	var doc Document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return plot.Figure{}, err
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return plot.Figure{}, err
		}
	default:
		return plot.Figure{}, fmt.Errorf("unknown document format %q", format)
	}
	return doc.Figure()
}

// Figure builds the figure described by d.
func (d Document) Figure() (plot.Figure, error) {
	if d.Rows == nil && d.Cols == nil {
		switch len(d.Axes) {
		case 0:
			return plot.NewFigure(), nil
		case 1:
			if d.Axes[0].Slot == nil || *d.Axes[0].Slot == 0 {
				ax, err := d.Axes[0].Axes()
				if err != nil {
					return plot.Figure{}, fmt.Errorf("axes 0: %w", err)
				}
				return plot.NewFigure().WithAxes(ax), nil
			}
		}
	}

	rows, cols := len(d.Axes), 1
	if d.Rows != nil || d.Cols != nil {
		rows, cols = deref(d.Rows), deref(d.Cols)
	}
	g := plot.NewGrid(rows, cols).WithShareX(d.ShareX).WithShareY(d.ShareY)
	for i, spec := range d.Axes {
		ax, err := spec.Axes()
		if err != nil {
			return plot.Figure{}, fmt.Errorf("axes %d: %w", i, err)
		}
		slot := i
		if spec.Slot != nil {
			slot = *spec.Slot
		}
		if g, err = g.At(slot, ax); err != nil {
			return plot.Figure{}, fmt.Errorf("axes %d: %w", i, err)
		}
	}
	return plot.NewFigure().WithSubplots(g), nil
}

// Axes builds the axes described by a.
func (a AxesSpec) Axes() (plot.Axes, error) {
	ax := plot.NewAxes().WithGrid(a.Grid)
	if a.XLabel != nil {
		ax = ax.WithXLabel(*a.XLabel)
	}
	if a.YLabel != nil {
		ax = ax.WithYLabel(*a.YLabel)
	}
	if a.Legend != nil {
		ax = ax.WithLegend(*a.Legend)
	}
	if a.XLim != nil {
		if len(a.XLim) != 2 {
			return plot.Axes{}, fmt.Errorf("xlim: %w, got %d values", ErrBadRange, len(a.XLim))
		}
		ax = ax.WithXLim(a.XLim[0], a.XLim[1])
	}
	if a.YLim != nil {
		if len(a.YLim) != 2 {
			return plot.Axes{}, fmt.Errorf("ylim: %w, got %d values", ErrBadRange, len(a.YLim))
		}
		ax = ax.WithYLim(a.YLim[0], a.YLim[1])
	}
	for i, spec := range a.Series {
		s, err := spec.Series()
		if err != nil {
			return plot.Axes{}, fmt.Errorf("series %d: %w", i, err)
		}
		ax = ax.Add(s)
	}
	return ax, nil
}

// ParseKind returns the series kind called name. Underscores may
// stand in for hyphens.
func ParseKind(name string) (plot.Kind, error) {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	for k := plot.Kind(0); k.Valid(); k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

// Series builds the series described by s.
func (s SeriesSpec) Series() (plot.Series, error) {
	k, err := ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	bad := func(field string) error {
		return fmt.Errorf("%w: %s has no %s", ErrBadField, k, field)
	}
	if k != plot.KindFillBetween {
		switch {
		case s.Y2 != nil:
			return nil, bad("y2")
		case s.Where != nil:
			return nil, bad("where")
		case s.Interpolate:
			return nil, bad("interpolate")
		case s.Step != nil:
			return nil, bad("step")
		}
	}
	if k != plot.KindLine {
		switch {
		case s.LineStyle != nil:
			return nil, bad("linestyle")
		case s.LineWidth != nil:
			return nil, bad("linewidth")
		}
	}

	switch k {
	case plot.KindScatter:
		sc, err := plot.NewScatter().WithData(s.X, s.Y)
		if err != nil {
			return nil, err
		}
		if s.Label != nil {
			sc = sc.WithLabel(*s.Label)
		}
		if s.Color != nil {
			sc = sc.WithColor(*s.Color)
		}
		if s.Marker != nil {
			sc = sc.WithMarker(*s.Marker)
		}
		return sc, nil

	case plot.KindLine:
		l, err := plot.NewLine().WithData(s.X, s.Y)
		if err != nil {
			return nil, err
		}
		if s.Label != nil {
			l = l.WithLabel(*s.Label)
		}
		if s.Color != nil {
			l = l.WithColor(*s.Color)
		}
		if s.Marker != nil {
			l = l.WithMarker(*s.Marker)
		}
		if s.LineStyle != nil {
			l = l.WithLineStyle(*s.LineStyle)
		}
		if s.LineWidth != nil {
			l = l.WithLineWidth(*s.LineWidth)
		}
		return l, nil

	case plot.KindFillBetween:
		if s.Marker != nil {
			return nil, bad("marker")
		}
		f, err := plot.NewFillBetween().WithData(s.X, s.Y, s.Y2)
		if err != nil {
			return nil, err
		}
		if s.Where != nil {
			if f, err = f.WithWhere(*s.Where); err != nil {
				return nil, err
			}
		}
		if s.Label != nil {
			f = f.WithLabel(*s.Label)
		}
		if s.Color != nil {
			f = f.WithColor(*s.Color)
		}
		if s.Step != nil {
			f = f.WithStep(*s.Step)
		}
		return f.WithInterpolate(s.Interpolate), nil
	}
	panic("unreachable")
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
