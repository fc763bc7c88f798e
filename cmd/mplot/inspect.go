// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/aclements/go-mpl/backend"
	"github.com/aclements/go-mpl/figdoc"
	"github.com/aclements/go-mpl/wire"
	"github.com/spf13/cobra"
)

func (a *app) inspectCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect script",
		Short: "Print the figure held by a script from the file backend",
		Long: `Print the figure held by a script written by the file backend, as a
figure document that render accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			payload, err := backend.ExtractPayload(script)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fig, err := wire.UnmarshalBase64(payload)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			doc, err := figdoc.Marshal(fig, figdoc.Format(format))
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(doc)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(figdoc.YAML), "print as `format`: yaml or toml")
	return cmd
}
