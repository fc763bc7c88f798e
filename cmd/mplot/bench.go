// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-mpl/internal/benchfig"
	"github.com/spf13/cobra"
)

func (a *app) benchCmd() *cobra.Command {
	var opts benchfig.Options
	cmd := &cobra.Command{
		Use:   "bench [results...]",
		Short: "Plot Go benchmark results",
		Long: `Plot Go benchmark results, one panel per unit and one line per
benchmark. Results are read from the named files, or standard input
if there are none or a file is named "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			var results []benchfig.Result
			for _, path := range args {
				rs, err := readResults(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				results = append(results, rs...)
			}
			if len(results) == 0 {
				return fmt.Errorf("no benchmark results")
			}
			fig, err := benchfig.Figure(results, opts)
			if err != nil {
				return err
			}
			return a.renderAll(fig)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Units, "unit", "u", nil, "plot only `units`, in this order")
	cmd.Flags().BoolVar(&opts.Band, "band", false, "shade the range of each run across benchmarks")
	return cmd
}

func readResults(path string, stdin io.Reader) ([]benchfig.Result, error) {
	if path == "-" {
		return benchfig.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, err := benchfig.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}
