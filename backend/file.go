// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-mpl/plot"
	"github.com/aclements/go-mpl/wire"
)

// Markers around the base64 payload at the end of a batch script.
// The script locates its payload by these.
const (
	payloadBegin = "\n#==>\n#"
	payloadEnd   = "\n#<==\n"
)

// ErrNoPayload is returned by ExtractPayload for a script without an
// embedded figure.
var ErrNoPayload = errors.New("no figure payload in script")

// File writes a self-contained renderer script holding one figure.
// Running the script with Python renders the figure, saving it to the
// path given as its first argument or showing it otherwise.
//
// Nothing touches the file system until Flush.
type File struct {
	path string
	fig  plot.Figure
}

// NewFile returns a File backend that writes to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the script path.
func (f *File) Path() string { return f.path }

// Evaluate replaces the figure to be written. Only the last figure
// evaluated before Flush is written.
func (f *File) Evaluate(fig plot.Figure) error {
	f.fig = fig
	return nil
}

// WriteTo writes the script to w. If no figure was evaluated, the
// script holds the empty figure.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	payload, err := wire.MarshalBase64(f.fig)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	buf.WriteString(Prelude)
	buf.WriteString(mainScript)
	buf.WriteString(payloadBegin)
	buf.WriteString(payload)
	buf.WriteString(payloadEnd)
	return buf.WriteTo(w)
}

// Flush writes the script to the backend's path, replacing any
// existing content.
func (f *File) Flush() (err error) {
	out, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("writing renderer script: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("writing renderer script: %w", cerr)
		}
	}()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing renderer script: %w", err)
	}
	return nil
}

// ExtractPayload returns the base64 figure payload embedded in a
// script written by File.
func ExtractPayload(script []byte) (string, error) {
	i := bytes.LastIndex(script, []byte(payloadBegin))
	if i < 0 {
		return "", ErrNoPayload
	}
	rest := script[i+len(payloadBegin):]
	j := bytes.Index(rest, []byte(payloadEnd))
	if j < 0 {
		return "", ErrNoPayload
	}
	return string(rest[:j]), nil
}
