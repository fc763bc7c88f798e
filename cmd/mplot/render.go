// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/aclements/go-mpl/figdoc"
	"github.com/aclements/go-mpl/plot"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render doc...",
		Short: "Render figure documents",
		Long: `Render each YAML or TOML figure document in order.

With the file or svg backend and several documents, only the last
figure is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var figs []plot.Figure
			for _, path := range args {
				fig, err := figdoc.Load(path)
				if err != nil {
					return err
				}
				figs = append(figs, fig)
			}
			return a.renderAll(figs...)
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch doc",
		Short: "Re-render a figure document whenever it changes",
		Long: `Render a figure document, then render it again each time it is
written, until interrupted. A document that fails to load is reported
and the previous figure stays.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	fig, err := figdoc.Load(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors often replace the file rather than write it, so watch
	// the directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	b, err := a.open()
	if err != nil {
		return err
	}
	if err := b.Evaluate(fig); err != nil {
		b.Close()
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return b.Close()

		case ev, ok := <-w.Events:
			if !ok {
				return b.Close()
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			fig, err := figdoc.Load(path)
			if err != nil {
				log.Print(err)
				continue
			}
			if err := b.Evaluate(fig); err != nil {
				b.Close()
				return err
			}
			if f, ok := b.(interface{ Flush() error }); ok {
				if err := f.Flush(); err != nil {
					log.Print(err)
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return b.Close()
			}
			log.Print(err)
		}
	}
}
