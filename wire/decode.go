// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aclements/go-mpl/plot"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	// ErrMalformed is returned when a message does not follow the
	// format described in the package documentation.
	ErrMalformed = errors.New("malformed figure message")

	// ErrUnknownKind is returned for a series discriminant that
	// this package does not know.
	ErrUnknownKind = errors.New("unknown series kind")
)

// Decode reads one encoded figure from r. The figure is rebuilt with
// the plot builders, so a message that violates their invariants
// fails the same way the builder would.
func Decode(r io.Reader) (plot.Figure, error) {
	d := &decoder{dec: msgpack.NewDecoder(r)}
	fig, err := d.figure()
	switch {
	case err == nil:
		return fig, nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		err = fmt.Errorf("%w: truncated: %w", ErrMalformed, err)
	case !errors.Is(err, ErrMalformed) && !errors.Is(err, ErrUnknownKind) &&
		!errors.Is(err, plot.ErrShapeMismatch) && !errors.Is(err, plot.ErrIndexOutOfRange):
		// Type errors from the msgpack decoder.
		err = fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return plot.Figure{}, err
}

// Unmarshal decodes a figure from data.
func Unmarshal(data []byte) (plot.Figure, error) {
	return Decode(bytes.NewReader(data))
}

// UnmarshalBase64 decodes a figure from the base64 form produced by
// MarshalBase64.
func UnmarshalBase64(s string) (plot.Figure, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return plot.Figure{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return Unmarshal(data)
}

// maxPrealloc bounds the elements allocated before they are decoded.
const maxPrealloc = 1 << 12

type decoder struct {
	dec *msgpack.Decoder
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// isNil consumes a nil if one is next.
func (d *decoder) isNil() (bool, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return false, err
	}
	if c != msgpcode.Nil {
		return false, nil
	}
	return true, d.dec.DecodeNil()
}

func (d *decoder) node(what string, fields int) error {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != fields {
		return malformed("%s has %d fields, want %d", what, n, fields)
	}
	return nil
}

func (d *decoder) optString() (string, bool, error) {
	if null, err := d.isNil(); err != nil || null {
		return "", false, err
	}
	s, err := d.dec.DecodeString()
	return s, err == nil, err
}

func (d *decoder) optFloat() (float64, bool, error) {
	if null, err := d.isNil(); err != nil || null {
		return 0, false, err
	}
	v, err := d.dec.DecodeFloat64()
	return v, err == nil, err
}

func (d *decoder) floats() ([]float64, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, malformed("nil sample array")
	}
	xs := make([]float64, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		v, err := d.dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		xs = append(xs, v)
	}
	return xs, nil
}

func (d *decoder) optRange() (plot.Range, bool, error) {
	if null, err := d.isNil(); err != nil || null {
		return plot.Range{}, false, err
	}
	if err := d.node("range", 2); err != nil {
		return plot.Range{}, false, err
	}
	lo, err := d.dec.DecodeFloat64()
	if err != nil {
		return plot.Range{}, false, err
	}
	hi, err := d.dec.DecodeFloat64()
	if err != nil {
		return plot.Range{}, false, err
	}
	return plot.Range{Lo: lo, Hi: hi}, true, nil
}

func (d *decoder) figure() (plot.Figure, error) {
	fig := plot.NewFigure()
	if null, err := d.isNil(); err != nil || null {
		return fig, err
	}
	if err := d.node("grid", gridFields); err != nil {
		return fig, err
	}
	rows, err := d.dec.DecodeUint64()
	if err != nil {
		return fig, err
	}
	cols, err := d.dec.DecodeUint64()
	if err != nil {
		return fig, err
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return fig, err
	}
	if rows > plot.MaxGridSide || cols > plot.MaxGridSide || n < 0 || uint64(n) != rows*cols {
		return fig, malformed("%d×%d grid has %d slots", rows, cols, n)
	}
	g := plot.NewGrid(int(rows), int(cols))
	for i := 0; i < n; i++ {
		if null, err := d.isNil(); err != nil {
			return fig, err
		} else if null {
			continue
		}
		ax, err := d.axes()
		if err != nil {
			return fig, fmt.Errorf("slot %d: %w", i, err)
		}
		if g, err = g.At(i, ax); err != nil {
			return fig, err
		}
	}
	shareX, err := d.dec.DecodeBool()
	if err != nil {
		return fig, err
	}
	shareY, err := d.dec.DecodeBool()
	if err != nil {
		return fig, err
	}
	return fig.WithSubplots(g.WithShareX(shareX).WithShareY(shareY)), nil
}

func (d *decoder) axes() (plot.Axes, error) {
	ax := plot.NewAxes()
	if err := d.node("axes", axesFields); err != nil {
		return ax, err
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return ax, err
	}
	for i := 0; i < n; i++ {
		s, err := d.series()
		if err != nil {
			return ax, fmt.Errorf("series %d: %w", i, err)
		}
		ax = ax.Add(s)
	}

	if v, ok, err := d.optString(); err != nil {
		return ax, err
	} else if ok {
		ax = ax.WithXLabel(v)
	}
	if v, ok, err := d.optString(); err != nil {
		return ax, err
	} else if ok {
		ax = ax.WithYLabel(v)
	}
	grid, err := d.dec.DecodeBool()
	if err != nil {
		return ax, err
	}
	ax = ax.WithGrid(grid)
	if v, ok, err := d.optString(); err != nil {
		return ax, err
	} else if ok {
		ax = ax.WithLegend(v)
	}
	if r, ok, err := d.optRange(); err != nil {
		return ax, err
	} else if ok {
		ax = ax.WithXLim(r.Lo, r.Hi)
	}
	if r, ok, err := d.optRange(); err != nil {
		return ax, err
	} else if ok {
		ax = ax.WithYLim(r.Lo, r.Hi)
	}
	return ax, nil
}

// styled is implemented by the series types that carry a label and a
// color.
type styled[S any] interface {
	WithLabel(string) S
	WithColor(string) S
}

func decodeStyle[S styled[S]](d *decoder, s S) (S, error) {
	if v, ok, err := d.optString(); err != nil {
		return s, err
	} else if ok {
		s = s.WithLabel(v)
	}
	if v, ok, err := d.optString(); err != nil {
		return s, err
	} else if ok {
		s = s.WithColor(v)
	}
	return s, nil
}

type marked[S any] interface {
	styled[S]
	WithMarker(string) S
}

func decodeMarker[S marked[S]](d *decoder, s S) (S, error) {
	s, err := decodeStyle(d, s)
	if err != nil {
		return s, err
	}
	if v, ok, err := d.optString(); err != nil {
		return s, err
	} else if ok {
		s = s.WithMarker(v)
	}
	return s, nil
}

func (d *decoder) series() (plot.Series, error) {
	if err := d.node("series", seriesFields); err != nil {
		return nil, err
	}
	k, err := d.dec.DecodeUint()
	if err != nil {
		return nil, err
	}
	switch kind := plot.Kind(k); {
	case k > 255 || !kind.Valid():
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	case kind == plot.KindScatter:
		if err := d.node("scatter", scatterFields); err != nil {
			return nil, err
		}
		x, y, err := d.xy()
		if err != nil {
			return nil, err
		}
		s, err := plot.NewScatter().WithData(x, y)
		if err != nil {
			return nil, err
		}
		return decodeMarker(d, s)
	case kind == plot.KindLine:
		if err := d.node("line", lineFields); err != nil {
			return nil, err
		}
		x, y, err := d.xy()
		if err != nil {
			return nil, err
		}
		l, err := plot.NewLine().WithData(x, y)
		if err != nil {
			return nil, err
		}
		if l, err = decodeMarker(d, l); err != nil {
			return nil, err
		}
		if v, ok, err := d.optString(); err != nil {
			return nil, err
		} else if ok {
			l = l.WithLineStyle(v)
		}
		if v, ok, err := d.optFloat(); err != nil {
			return nil, err
		} else if ok {
			l = l.WithLineWidth(v)
		}
		return l, nil
	default:
		return d.fillBetween()
	}
}

func (d *decoder) xy() (x, y []float64, err error) {
	if x, err = d.floats(); err != nil {
		return nil, nil, err
	}
	if y, err = d.floats(); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (d *decoder) fillBetween() (plot.Series, error) {
	if err := d.node("fill-between", fillBetweenFields); err != nil {
		return nil, err
	}
	x, y1, err := d.xy()
	if err != nil {
		return nil, err
	}
	y2, err := d.floats()
	if err != nil {
		return nil, err
	}
	f, err := plot.NewFillBetween().WithData(x, y1, y2)
	if err != nil {
		return nil, err
	}
	if f, err = decodeStyle(d, f); err != nil {
		return nil, err
	}
	interp, err := d.dec.DecodeBool()
	if err != nil {
		return nil, err
	}
	f = f.WithInterpolate(interp)
	if v, ok, err := d.optString(); err != nil {
		return nil, err
	} else if ok {
		f = f.WithStep(v)
	}
	if null, err := d.isNil(); err != nil {
		return nil, err
	} else if !null {
		n, err := d.dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		mask := make([]bool, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			v, err := d.dec.DecodeBool()
			if err != nil {
				return nil, err
			}
			mask = append(mask, v)
		}
		if f, err = f.WithWhere(mask); err != nil {
			return nil, err
		}
	}
	return f, nil
}
