// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire encodes a plot.Figure into the binary message consumed
// by a renderer.
//
// The message is built from MessagePack primitives. Every node is a
// fixed-length array whose elements appear in the order below, every
// optional value is either nil or the value itself, and every series
// is preceded by its discriminant, so a reader needs nothing beyond
// this table to walk the tree:
//
//	figure  = nil | grid
//	grid    = [rows uint, cols uint, [nil|axes ...], share_x bool, share_y bool]
//	axes    = [[series ...], xlabel, ylabel, grid bool, legend, xlim, ylim]
//	series  = [kind uint, fields]
//	scatter = [x, y, label, color, marker]
//	line    = [x, y, label, color, marker, linestyle, linewidth]
//	fill    = [x, y1, y2, label, color, interpolate bool, step, where]
//	xlim    = nil | [lo float64, hi float64]
//	x, y... = [float64 ...]
//	where   = nil | [bool ...]
//
// Floats are always written in their 8-byte form, and the output is a
// pure function of the Figure: encoding the same value twice yields
// the same bytes.
package wire

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aclements/go-mpl/plot"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrEncoding is returned when the byte sink rejects a write during
// encoding. The underlying I/O error is wrapped alongside it.
var ErrEncoding = errors.New("encoding failed")

// Field counts of each node. These are part of the format.
const (
	gridFields        = 5
	axesFields        = 7
	seriesFields      = 2
	scatterFields     = 5
	lineFields        = 7
	fillBetweenFields = 8
)

// Encode writes the encoding of fig to w.
func Encode(w io.Writer, fig plot.Figure) error {
	bw := bufio.NewWriter(w)
	e := &encoder{enc: msgpack.NewEncoder(bw)}
	e.figure(fig)
	if e.err == nil {
		e.err = bw.Flush()
	}
	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, e.err)
	}
	return nil
}

// Marshal returns the encoding of fig.
func Marshal(fig plot.Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, fig); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalBase64 returns the encoding of fig in standard base64, the
// form embedded in renderer scripts.
func MarshalBase64(fig plot.Figure) (string, error) {
	data, err := Marshal(fig)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// encoder records the first error and turns every later call into a
// no-op.
type encoder struct {
	enc *msgpack.Encoder
	err error
}

func (e *encoder) do(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) arrayLen(n int) {
	if e.err == nil {
		e.do(e.enc.EncodeArrayLen(n))
	}
}

func (e *encoder) null() {
	if e.err == nil {
		e.do(e.enc.EncodeNil())
	}
}

func (e *encoder) boolean(v bool) {
	if e.err == nil {
		e.do(e.enc.EncodeBool(v))
	}
}

func (e *encoder) uint(v uint64) {
	if e.err == nil {
		e.do(e.enc.EncodeUint(v))
	}
}

func (e *encoder) float(v float64) {
	if e.err == nil {
		e.do(e.enc.EncodeFloat64(v))
	}
}

func (e *encoder) str(v string) {
	if e.err == nil {
		e.do(e.enc.EncodeString(v))
	}
}

func (e *encoder) optString(v string, ok bool) {
	if !ok {
		e.null()
		return
	}
	e.str(v)
}

func (e *encoder) optFloat(v float64, ok bool) {
	if !ok {
		e.null()
		return
	}
	e.float(v)
}

func (e *encoder) floats(xs []float64) {
	e.arrayLen(len(xs))
	for _, x := range xs {
		e.float(x)
	}
}

func (e *encoder) optRange(r plot.Range, ok bool) {
	if !ok {
		e.null()
		return
	}
	e.arrayLen(2)
	e.float(r.Lo)
	e.float(r.Hi)
}

func (e *encoder) figure(fig plot.Figure) {
	g, ok := fig.Grid()
	if !ok {
		e.null()
		return
	}
	rows, cols := g.Shape()
	e.arrayLen(gridFields)
	e.uint(uint64(rows))
	e.uint(uint64(cols))
	e.arrayLen(g.Len())
	for i := 0; i < g.Len(); i++ {
		ax, ok := g.Slot(i)
		if !ok {
			e.null()
			continue
		}
		e.axes(ax)
	}
	e.boolean(g.ShareX())
	e.boolean(g.ShareY())
}

func (e *encoder) axes(ax plot.Axes) {
	e.arrayLen(axesFields)
	series := ax.Series()
	e.arrayLen(len(series))
	for _, s := range series {
		e.series(s)
	}
	e.optString(ax.XLabel())
	e.optString(ax.YLabel())
	e.boolean(ax.Grid())
	e.optString(ax.Legend())
	e.optRange(ax.XLim())
	e.optRange(ax.YLim())
}

func (e *encoder) style(st plot.Style, marker bool) {
	e.optString(st.Label())
	e.optString(st.Color())
	if marker {
		e.optString(st.Marker())
	}
}

func (e *encoder) series(s plot.Series) {
	e.arrayLen(seriesFields)
	e.uint(uint64(s.Kind()))
	switch s := s.(type) {
	case plot.Scatter:
		e.arrayLen(scatterFields)
		e.floats(s.X())
		e.floats(s.Y())
		e.style(s.Style(), true)
	case plot.Line:
		e.arrayLen(lineFields)
		e.floats(s.X())
		e.floats(s.Y())
		e.style(s.Style(), true)
		e.optString(s.LineStyle())
		e.optFloat(s.LineWidth())
	case plot.FillBetween:
		e.arrayLen(fillBetweenFields)
		e.floats(s.X())
		e.floats(s.Y1())
		e.floats(s.Y2())
		e.style(s.Style(), false)
		e.boolean(s.Interpolate())
		e.optString(s.Step())
		if mask, ok := s.Where(); ok {
			e.arrayLen(len(mask))
			for _, m := range mask {
				e.boolean(m)
			}
		} else {
			e.null()
		}
	default:
		// The Series set is sealed, so this is a new kind that
		// was not added here.
		panic(fmt.Sprintf("wire: no encoding for series kind %v", s.Kind()))
	}
}
