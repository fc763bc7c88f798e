// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfig turns Go benchmark results into figures.
//
// The input format is described at
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package benchfig

import (
	"bufio"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is one benchmark result line.
type Result struct {
	// Name is the benchmark name without the "Benchmark" prefix,
	// the "-N" GOMAXPROCS suffix, or any "/key:value" parts.
	// Other sub-benchmark parts are kept.
	Name string

	// Iterations is the number of times the benchmark ran.
	Iterations int

	// Config holds the configuration in effect for this line: the
	// file's configuration block lines plus "/key:value" name parts
	// and "gomaxprocs".
	Config map[string]string

	// Values maps each unit to the measured value.
	Values map[string]float64

	// Units lists the keys of Values in the order they appear on
	// the line.
	Units []string
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// Parse reads benchmark results from r. A benchmark that ran more
// than once has a Result for every run, in input order. Lines that
// are neither configuration nor results are skipped.
func Parse(r io.Reader) ([]Result, error) {
	var results []Result
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if res, ok := parseResult(line, config); ok {
				results = append(results, res)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseResult(line string, config map[string]string) (Result, bool) {
	f := strings.Fields(line)
	if len(f) < 4 {
		return Result{}, false
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return Result{}, false
		}
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return Result{}, false
	}

	res := Result{
		Iterations: n,
		Config:     maps.Clone(config),
		Values:     make(map[string]float64),
	}
	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			res.Config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	if _, ok := res.Config["gomaxprocs"]; !ok {
		res.Config["gomaxprocs"] = "1"
	}
	parts := strings.Split(name, "/")
	keep := []string{parts[0]}
	for _, part := range parts[1:] {
		if k, v, ok := strings.Cut(part, ":"); ok {
			res.Config[k] = v
		} else {
			keep = append(keep, part)
		}
	}
	res.Name = strings.Join(keep, "/")

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		unit := f[i+1]
		if _, dup := res.Values[unit]; !dup {
			res.Units = append(res.Units, unit)
		}
		res.Values[unit] = val
	}
	return res, true
}
