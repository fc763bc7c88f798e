// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figdoc

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/go-mpl/plot"
	"github.com/aclements/go-mpl/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPanelYAML = `
rows: 2
cols: 1
share_x: true
axes:
  - slot: 0
    xlabel: time
    legend: upper left
    series:
      - kind: line
        x: [0, 1, 2]
        y: [0, 1, 4]
        label: squares
        linestyle: "--"
        linewidth: 1.5
      - kind: scatter
        x: [0.5]
        y: [2]
        marker: o
  - slot: 1
    ylim: [-1, 1]
    grid: true
    series:
      - kind: fill_between
        x: [0, 1, 2]
        y: [0, 0, 0]
        y2: [1, 0.5, 1]
        where: [true, false, true]
        step: mid
        interpolate: true
`

const twoPanelTOML = `
rows = 2
cols = 1
share_x = true

[[axes]]
slot = 0
xlabel = "time"
legend = "upper left"

[[axes.series]]
kind = "line"
x = [0.0, 1.0, 2.0]
y = [0.0, 1.0, 4.0]
label = "squares"
linestyle = "--"
linewidth = 1.5

[[axes.series]]
kind = "scatter"
x = [0.5]
y = [2.0]
marker = "o"

[[axes]]
slot = 1
ylim = [-1.0, 1.0]
grid = true

[[axes.series]]
kind = "fill-between"
x = [0.0, 1.0, 2.0]
y = [0.0, 0.0, 0.0]
y2 = [1.0, 0.5, 1.0]
where = [true, false, true]
step = "mid"
interpolate = true
`

func twoPanelFigure(t *testing.T) plot.Figure {
	t.Helper()
	line, err := plot.NewLine().WithData([]float64{0, 1, 2}, []float64{0, 1, 4})
	require.NoError(t, err)
	pts, err := plot.NewScatter().WithData([]float64{0.5}, []float64{2})
	require.NoError(t, err)
	fill, err := plot.NewFillBetween().WithData([]float64{0, 1, 2}, []float64{0, 0, 0}, []float64{1, 0.5, 1})
	require.NoError(t, err)
	fill, err = fill.WithWhere([]bool{true, false, true})
	require.NoError(t, err)

	top := plot.NewAxes().WithXLabel("time").WithLegend("upper left").
		Add(line.WithLabel("squares").WithLineStyle("--").WithLineWidth(1.5)).
		Add(pts.WithMarker("o"))
	bottom := plot.NewAxes().WithYLim(-1, 1).WithGrid(true).
		Add(fill.WithStep("mid").WithInterpolate(true))
	g, err := plot.NewGrid(2, 1).WithShareX(true).At(0, top)
	require.NoError(t, err)
	g, err = g.At(1, bottom)
	require.NoError(t, err)
	return plot.NewFigure().WithSubplots(g)
}

func encoded(t *testing.T, fig plot.Figure) []byte {
	t.Helper()
	b, err := wire.Marshal(fig)
	require.NoError(t, err)
	return b
}

func TestParse(t *testing.T) {
	want := encoded(t, twoPanelFigure(t))
	for _, test := range []struct {
		format Format
		doc    string
	}{
		{YAML, twoPanelYAML},
		{TOML, twoPanelTOML},
	} {
		t.Run(string(test.format), func(t *testing.T) {
			fig, err := Parse([]byte(test.doc), test.format)
			require.NoError(t, err)
			assert.Equal(t, want, encoded(t, fig))
		})
	}
}

func TestParseLayout(t *testing.T) {
	s, err := plot.NewScatter().WithData([]float64{1}, []float64{2})
	require.NoError(t, err)
	ax := plot.NewAxes().Add(s)
	stack, err := plot.NewGrid(2, 1).At(0, ax)
	require.NoError(t, err)
	stack, err = stack.At(1, ax.WithXLabel("b"))
	require.NoError(t, err)

	for _, test := range []struct {
		name string
		doc  string
		want plot.Figure
	}{
		{"empty", ``, plot.NewFigure()},
		{"empty map", `{}`, plot.NewFigure()},
		{"single", "axes:\n  - series: [{kind: scatter, x: [1], y: [2]}]\n", plot.NewFigure().WithAxes(ax)},
		{"stack", "axes:\n  - series: [{kind: scatter, x: [1], y: [2]}]\n  - {xlabel: b, series: [{kind: scatter, x: [1], y: [2]}]}\n", plot.NewFigure().WithSubplots(stack)},
		{"no slots", "rows: 0\ncols: 3\n", plot.NewFigure().WithSubplots(plot.NewGrid(0, 3))},
		{"sparse", "rows: 1\ncols: 3\n", plot.NewFigure().WithSubplots(plot.NewGrid(1, 3))},
	} {
		t.Run(test.name, func(t *testing.T) {
			fig, err := Parse([]byte(test.doc), YAML)
			require.NoError(t, err)
			assert.Equal(t, encoded(t, test.want), encoded(t, fig))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		doc  string
		want error
	}{
		{"kind", "axes: [{series: [{kind: bar, x: [], y: []}]}]", ErrUnknownKind},
		{"xlim", "axes: [{xlim: [1]}]", ErrBadRange},
		{"ylim", "axes: [{ylim: [1, 2, 3]}]", ErrBadRange},
		{"empty lim", "axes: [{ylim: []}]", ErrBadRange},
		{"shape", "axes: [{series: [{kind: line, x: [1, 2], y: [1]}]}]", plot.ErrShapeMismatch},
		{"fill shape", "axes: [{series: [{kind: fill-between, x: [1], y: [1]}]}]", plot.ErrShapeMismatch},
		{"where", "axes: [{series: [{kind: fill-between, x: [1], y: [1], y2: [2], where: []}]}]", plot.ErrShapeMismatch},
		{"slot", "rows: 1\ncols: 1\naxes: [{slot: 1}]", plot.ErrIndexOutOfRange},
		{"negative slot", "rows: 2\ncols: 2\naxes: [{slot: -1}]", plot.ErrIndexOutOfRange},
		{"fill marker", "axes: [{series: [{kind: fill-between, x: [], y: [], y2: [], marker: o}]}]", ErrBadField},
		{"scatter y2", "axes: [{series: [{kind: scatter, x: [], y: [], y2: []}]}]", ErrBadField},
		{"scatter width", "axes: [{series: [{kind: scatter, x: [], y: [], linewidth: 2}]}]", ErrBadField},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.doc), YAML)
			assert.ErrorIs(t, err, test.want)
		})
	}

	_, err := Parse([]byte("axes: [{colour: red}]"), YAML)
	assert.Error(t, err, "unknown field")
	_, err = Parse([]byte("[[axes]]\ncolour = 'red'\n"), TOML)
	assert.Error(t, err, "unknown field")
	_, err = Parse([]byte("{}"), "json")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for name, want := range map[string]plot.Kind{
		"scatter":      plot.KindScatter,
		"Line":         plot.KindLine,
		"fill-between": plot.KindFillBetween,
		"fill_between": plot.KindFillBetween,
	} {
		got, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseKind("Kind(3)")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMarshalRoundTrip(t *testing.T) {
	figs := map[string]plot.Figure{
		"empty":     plot.NewFigure(),
		"two panel": twoPanelFigure(t),
		"no slots":  plot.NewFigure().WithSubplots(plot.NewGrid(0, 3)),
		"bare axes": plot.NewFigure().WithAxes(plot.NewAxes()),
	}
	// An empty mask is distinct from no mask.
	empty, err := plot.NewFillBetween().WithWhere([]bool{})
	require.NoError(t, err)
	figs["empty where"] = plot.NewFigure().WithAxes(plot.NewAxes().Add(empty))

	for name, fig := range figs {
		for _, format := range []Format{YAML, TOML} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				doc, err := Marshal(fig, format)
				require.NoError(t, err)
				got, err := Parse(doc, format)
				require.NoError(t, err, "document:\n%s", doc)
				assert.Equal(t, encoded(t, fig), encoded(t, got), "document:\n%s", doc)
			})
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	want := encoded(t, twoPanelFigure(t))
	for name, doc := range map[string]string{
		"fig.yaml": twoPanelYAML,
		"fig.yml":  twoPanelYAML,
		"fig.toml": twoPanelTOML,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(doc), 0666))
		fig, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, want, encoded(t, fig), name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = Load(filepath.Join(dir, "fig.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("axes: [{xlim: [1]}]"), 0666))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrBadRange)
	assert.Contains(t, err.Error(), bad)
}
