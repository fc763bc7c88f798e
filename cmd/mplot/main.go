// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mplot renders figures with matplotlib.
//
// Usage:
//
//	mplot render [flags] doc.yaml...
//	mplot watch [flags] doc.yaml
//	mplot bench [flags] [results...]
//	mplot inspect [flags] script.py
//	mplot demo [flags]
//
// Figures are described by YAML or TOML documents (see package
// figdoc) or built from Go benchmark results. Each figure goes to the
// backend chosen with -backend:
//
//	interactive  a python3 process fed over its standard input
//	file         a self-contained Python script, written to -o
//	svg          an SVG image drawn without Python, written to -o or stdout
//
// Defaults come from ~/.config/mplot.toml (see -config). The
// MPLOT_PYTHON environment variable overrides the python command.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/aclements/go-mpl/backend"
	"github.com/aclements/go-mpl/internal/config"
	"github.com/aclements/go-mpl/plot"
	"github.com/spf13/cobra"
)

func main() {
	log.SetPrefix("mplot: ")
	log.SetFlags(0)

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		log.Fatal(err)
	}
}

// flags holds the options shared by every subcommand.
type flags struct {
	config  string
	backend string
	out     string
	pickle  string
	python  string
	style   string
	width   int
	height  int
	show    bool
	verbose bool
}

type app struct {
	stdout, stderr io.Writer
	flags
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "mplot",
		Short:         "Render figures with matplotlib",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.config, "config", "", "read settings from `file` (default "+config.DefaultPath+")")
	pf.StringVarP(&a.backend, "backend", "b", "", "render with `backend`: interactive, file, or svg")
	pf.StringVarP(&a.out, "out", "o", "", "write the rendered figure to `file`")
	pf.StringVar(&a.pickle, "pickle", "", "also pickle the figure to `file` (interactive only)")
	pf.StringVar(&a.python, "python", "", "run the renderer with `command`")
	pf.StringVar(&a.style, "style", "", "apply matplotlib style `name`")
	pf.IntVar(&a.width, "width", 0, "SVG width in `pixels`")
	pf.IntVar(&a.height, "height", 0, "SVG height in `pixels`")
	pf.BoolVar(&a.show, "show", false, "display figures in a window (interactive only)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log renderer lifecycle events")

	root.AddCommand(
		a.renderCmd(),
		a.watchCmd(),
		a.benchCmd(),
		a.inspectCmd(),
		a.demoCmd(),
	)
	return root
}

// open returns the backend selected by the command line and settings
// file.
func (a *app) open() (backend.BackendCloser, error) {
	cfg, err := config.Load(a.config)
	if err != nil {
		return nil, err
	}
	if a.python != "" {
		cfg.Python = a.python
	}
	if a.style != "" {
		cfg.Style = a.style
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.width > 0 {
		cfg.Width = a.width
	}
	if a.height > 0 {
		cfg.Height = a.height
	}

	opts := backend.OpenOptions{
		Style:  cfg.Style,
		Logger: a.logger(),
		Out:    a.stdout,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	switch cfg.Backend {
	case backend.NameInteractive:
		if opts.Command, err = cfg.PythonCommand(); err != nil {
			return nil, err
		}
		opts.SaveTo, opts.PickleTo, opts.Show = a.out, a.pickle, a.show
		if a.out == "" && !a.show {
			opts.Show = true
		}
	case backend.NameFile:
		if a.out == "" {
			return nil, fmt.Errorf("the file backend requires -o")
		}
		opts.Path = a.out
	case backend.NameSVG:
		opts.Path = a.out
	}
	return backend.Open(cfg.Backend, opts)
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// renderAll evaluates each figure and finishes the backend.
func (a *app) renderAll(figs ...plot.Figure) error {
	b, err := a.open()
	if err != nil {
		return err
	}
	for _, fig := range figs {
		if err := b.Evaluate(fig); err != nil {
			b.Close()
			return err
		}
	}
	return b.Close()
}
