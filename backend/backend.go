// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package backend delivers encoded figures to a renderer.
//
// Every strategy implements Backend. Interactive feeds a long-lived
// matplotlib interpreter over its standard input, File writes a
// self-contained script for later use, and Native renders in process
// with go-gg. The caller picks the strategy; nothing is detected
// automatically.
package backend

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/aclements/go-mpl/plot"
	"github.com/aclements/go-mpl/wire"
)

// A Backend accepts figures for rendering.
type Backend interface {
	// Evaluate hands fig to the renderer. Whether anything is
	// drawn before Evaluate returns depends on the strategy.
	Evaluate(fig plot.Figure) error
}

var (
	// ErrSpawn is returned when the renderer process cannot be
	// started.
	ErrSpawn = errors.New("cannot start renderer")

	// ErrBrokenPipe is returned when the renderer process stops
	// accepting input.
	ErrBrokenPipe = errors.New("renderer pipe closed")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("backend closed")
)

// Prelude is the Python source that defines evaluate(payload) for
// the matplotlib renderer.
//
//go:embed scripts/prelude.py
var Prelude string

// mainScript follows Prelude in a batch script. It reads the payload
// that trails the script and renders it.
//
//go:embed scripts/main.py
var mainScript string

// evalStatement returns the Python statement that renders fig into
// the variable fig.
func evalStatement(fig plot.Figure) (string, error) {
	payload, err := wire.MarshalBase64(fig)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`fig = evaluate(r"%s")`, payload), nil
}
