// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
)

var watchCmd = &cobra.Command{
	Use:   "watch [manuscript]",
	Short: "Rebuild the index whenever the manuscript changes",
	Long: `Watch monitors the manuscript file and rebuilds the structural index on
every change, printing a one-line summary per rebuild. The index is a
value snapshot, so each edit produces a complete fresh index rather than
a patch. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	rebuild := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading manuscript: %w", err)
		}
		idx := index.Build(string(data), cfg.Index)
		fmt.Printf("Indexed %s: %d chapter(s), %d character(s), %d words\n",
			filepath.Base(path), len(idx.Chapters), len(idx.Characters), idx.TotalWordCount)
		return nil
	}
	if err := rebuild(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := rebuild(); err != nil {
				fmt.Fprintln(os.Stderr, "rebuild failed:", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		case <-stop:
			return nil
		}
	}
}
