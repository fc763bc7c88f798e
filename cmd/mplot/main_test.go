// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-mpl/backend"
	"github.com/aclements/go-mpl/figdoc"
	"github.com/aclements/go-mpl/internal/config"
	"github.com/aclements/go-mpl/plot"
	"github.com/aclements/go-mpl/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineDoc = `
axes:
  - xlabel: x
    series:
      - {kind: line, x: [0, 1, 2], y: [2, 1, 0], label: down}
`

type harness struct {
	t   *testing.T
	dir string
	cfg string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "mplot.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("backend = \"svg\"\nwidth = 320\nheight = 240\n"), 0666))
	t.Setenv(config.PythonEnv, "")
	return &harness{t, dir, cfg}
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

func (h *harness) write(name, content string) string {
	path := h.path(name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func (h *harness) runCtx(ctx context.Context, stdin string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", h.cfg}, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), err
}

func (h *harness) run(args ...string) (string, error) {
	return h.runCtx(context.Background(), "", args...)
}

func encoded(t *testing.T, fig plot.Figure) []byte {
	t.Helper()
	b, err := wire.Marshal(fig)
	require.NoError(t, err)
	return b
}

func scriptFigure(t *testing.T, path string) plot.Figure {
	t.Helper()
	script, err := os.ReadFile(path)
	require.NoError(t, err)
	payload, err := backend.ExtractPayload(script)
	require.NoError(t, err)
	fig, err := wire.UnmarshalBase64(payload)
	require.NoError(t, err)
	return fig
}

func TestDemoSVG(t *testing.T) {
	h := newHarness(t)
	out, err := h.run("demo")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
}

func TestDemoFileInspect(t *testing.T) {
	h := newHarness(t)
	script := h.path("demo.py")
	_, err := h.run("demo", "-b", "file", "-o", script)
	require.NoError(t, err)

	want, err := demoFigure()
	require.NoError(t, err)
	assert.Equal(t, encoded(t, want), encoded(t, scriptFigure(t, script)))

	for _, format := range []figdoc.Format{figdoc.YAML, figdoc.TOML} {
		doc, err := h.run("inspect", "-f", string(format), script)
		require.NoError(t, err)
		fig, err := figdoc.Parse([]byte(doc), format)
		require.NoError(t, err, "document:\n%s", doc)
		assert.Equal(t, encoded(t, want), encoded(t, fig), format)
	}

	_, err = h.run("inspect", h.write("plain.py", "print(1)\n"))
	assert.ErrorIs(t, err, backend.ErrNoPayload)
}

func TestRender(t *testing.T) {
	h := newHarness(t)
	doc := h.write("fig.yaml", lineDoc)
	want, err := figdoc.Load(doc)
	require.NoError(t, err)

	script := h.path("fig.py")
	_, err = h.run("render", "--backend", "file", "--out", script, doc)
	require.NoError(t, err)
	assert.Equal(t, encoded(t, want), encoded(t, scriptFigure(t, script)))

	svg := h.path("fig.svg")
	out, err := h.run("render", "-o", svg, doc)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderInteractive(t *testing.T) {
	h := newHarness(t)
	doc := h.write("fig.yaml", lineDoc)
	fig, err := figdoc.Load(doc)
	require.NoError(t, err)

	input := h.path("input.py")
	python := `sh -c 'cat > "$0"' ` + input
	_, err = h.run("render", "-b", "interactive", "--python", python, "--style", "ggplot", "-o", "fig.png", doc)
	require.NoError(t, err)

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	payload, err := wire.MarshalBase64(fig)
	require.NoError(t, err)
	want := backend.Prelude + "\n" + strings.Join([]string{
		`plt.style.use("ggplot")`,
		`fig = evaluate(r"` + payload + `")`,
		`fig.savefig("fig.png")`,
	}, "\n") + "\n"
	assert.Equal(t, want, string(got))
}

func TestBench(t *testing.T) {
	h := newHarness(t)
	results := "BenchmarkA-8\t10\t100 ns/op\nBenchmarkA-8\t10\t120 ns/op\n"

	out, err := h.runCtx(context.Background(), results, "bench", "--band")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	script := h.path("bench.py")
	_, err = h.run("bench", "-b", "file", "-o", script, "-u", "ns/op", h.write("results.txt", results))
	require.NoError(t, err)
	g, ok := scriptFigure(t, script).Grid()
	require.True(t, ok)
	ax, _ := g.Slot(0)
	require.Len(t, ax.Series(), 1)
	label, _ := ax.Series()[0].Style().Label()
	assert.Equal(t, "A (110 ± 14.14)", label)

	_, err = h.runCtx(context.Background(), "PASS\n", "bench")
	assert.ErrorContains(t, err, "no benchmark results")
}

func TestErrors(t *testing.T) {
	h := newHarness(t)
	doc := h.write("fig.yaml", lineDoc)

	_, err := h.run("render", "-b", "tk", doc)
	assert.ErrorIs(t, err, backend.ErrUnknownBackend)
	_, err = h.run("render", "-b", "file", doc)
	assert.ErrorContains(t, err, "-o")
	_, err = h.run("render", h.path("missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = h.run("render", "-b", "interactive", "--python", h.path("no-python"), doc)
	assert.ErrorIs(t, err, backend.ErrSpawn)
	_, err = h.run("render", h.write("bad.yaml", "axes: [{xlim: [1]}]"))
	assert.ErrorIs(t, err, figdoc.ErrBadRange)
	_, err = h.run("render")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	h := newHarness(t)
	doc := h.write("fig.yaml", lineDoc)
	script := h.path("fig.py")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := h.runCtx(ctx, "", "watch", "-b", "file", "-o", script, doc)
		done <- err
	}()

	// Rewrite the document until the watcher has picked it up.
	relabeled := strings.Replace(lineDoc, "label: down", "label: again", 1)
	want, err := figdoc.Parse([]byte(relabeled), figdoc.YAML)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		h.write("fig.yaml", relabeled)
		data, err := os.ReadFile(script)
		if err != nil {
			return false
		}
		payload, err := backend.ExtractPayload(data)
		if err != nil {
			return false
		}
		fig, err := wire.UnmarshalBase64(payload)
		return err == nil && bytes.Equal(encoded(t, fig), encoded(t, want))
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Equal(t, encoded(t, want), encoded(t, scriptFigure(t, script)))
}
