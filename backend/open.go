// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aclements/go-mpl/plot"
)

// Names accepted by Open.
const (
	NameInteractive = "interactive"
	NameFile        = "file"
	NameSVG         = "svg"
)

// ErrUnknownBackend is returned by Open for an unrecognized strategy
// name.
var ErrUnknownBackend = errors.New("unknown backend")

// OpenOptions collects the settings of every strategy. Each strategy
// reads only its own fields.
type OpenOptions struct {
	// Command, Style and Logger configure an interactive renderer.
	// Style, if set, is applied before any figure.
	Command []string
	Style   string
	Logger  *slog.Logger

	// SaveTo and PickleTo, if set, make an interactive renderer
	// save or pickle each figure there after evaluating it. Show
	// makes it display the figures when closed.
	SaveTo   string
	PickleTo string
	Show     bool

	// Path is the script written by the file strategy, or the SVG
	// file rewritten by the svg strategy on each figure.
	Path string

	// Out receives SVG documents from the svg strategy when Path is
	// empty. If nil, it defaults to os.Stdout.
	Out           io.Writer
	Width, Height int
}

// A BackendCloser is a Backend that must be finished once the caller
// is done evaluating figures.
type BackendCloser interface {
	Backend

	// Close finishes rendering. For an interactive renderer it
	// waits for the process to exit; for a script it writes the
	// file.
	Close() error
}

// Open returns the strategy called name.
func Open(name string, opts OpenOptions) (BackendCloser, error) {
	switch name {
	case NameInteractive:
		r, err := NewInteractive(InteractiveOptions{Command: opts.Command, Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		if opts.Style != "" {
			if err := r.SetStyle(opts.Style); err != nil {
				r.Close()
				return nil, err
			}
		}
		return &session{r, opts.SaveTo, opts.PickleTo, opts.Show}, nil
	case NameFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("%s backend: no output path", name)
		}
		return flushCloser{NewFile(opts.Path)}, nil
	case NameSVG:
		if opts.Path != "" {
			return &svgFile{opts.Path, opts.Width, opts.Height}, nil
		}
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return nopCloser{NewNative(out, opts.Width, opts.Height)}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
}

// session is an Interactive renderer run to completion on Close.
type session struct {
	r                *Interactive
	saveTo, pickleTo string
	show             bool
}

func (s *session) Evaluate(fig plot.Figure) error {
	if err := s.r.Evaluate(fig); err != nil {
		return err
	}
	if s.saveTo != "" {
		if err := s.r.SaveFig(s.saveTo); err != nil {
			return err
		}
	}
	if s.pickleTo != "" {
		return s.r.DumpPickle(s.pickleTo)
	}
	return nil
}

func (s *session) Close() error {
	if s.show && s.r.State() == Running {
		if err := s.r.Show(); err != nil {
			s.r.Close()
			return err
		}
	}
	if err := s.r.Wait(); err != nil {
		s.r.Close()
		return err
	}
	return nil
}

type flushCloser struct{ *File }

func (c flushCloser) Close() error { return c.Flush() }

type nopCloser struct{ *Native }

func (nopCloser) Close() error { return nil }

// svgFile replaces the file at path with each rendered figure.
type svgFile struct {
	path          string
	width, height int
}

func (f *svgFile) Evaluate(fig plot.Figure) error {
	var buf bytes.Buffer
	if err := NewNative(&buf, f.width, f.height).Evaluate(fig); err != nil {
		return err
	}
	if err := os.WriteFile(f.path, buf.Bytes(), 0666); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	return nil
}

func (f *svgFile) Close() error { return nil }
