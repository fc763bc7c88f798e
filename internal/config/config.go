// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads mplot's settings.
//
// Settings come from a TOML file, by default ~/.config/mplot.toml:
//
//	python = "python3 -"
//	style = "ggplot"
//	backend = "interactive"
//	width = 640
//	height = 480
//
// The MPLOT_PYTHON environment variable overrides the python setting.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the settings file read when none is named.
const DefaultPath = "~/.config/mplot.toml"

// PythonEnv names the environment variable that overrides
// Config.Python.
const PythonEnv = "MPLOT_PYTHON"

// Config is the set of mplot settings.
type Config struct {
	// Python is the renderer command line, split by shell rules.
	Python string `toml:"python"`

	// Style is the matplotlib style sheet applied before rendering.
	Style string `toml:"style"`

	// Backend names the default rendering strategy.
	Backend string `toml:"backend"`

	// Width and Height size SVG output, in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Python:  "python3 -",
		Backend: "interactive",
		Width:   640,
		Height:  480,
	}
}

// Load reads the settings file at path over the defaults, then
// applies the environment. A leading "~" in path is the user's home
// directory. A missing file is not an error if path is DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	named := path != ""
	if !named {
		path = DefaultPath
	}
	full, err := homedir.Expand(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(full)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !named:
	case err != nil:
		return Config{}, err
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", full, err)
		}
	}
	if py := os.Getenv(PythonEnv); py != "" {
		cfg.Python = py
	}
	return cfg, nil
}

// PythonCommand returns the renderer command line as arguments.
func (c Config) PythonCommand() ([]string, error) {
	argv, err := shellquote.Split(c.Python)
	if err != nil {
		return nil, fmt.Errorf("python command %q: %w", c.Python, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("python command is empty")
	}
	return argv, nil
}
