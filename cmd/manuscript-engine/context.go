// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/chapctx"
	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/search"
)

var contextCmd = &cobra.Command{
	Use:   "context [manuscript]",
	Short: "Show chapter context or retrieve context chunks for a question",
	Long: `Context has two modes. With --chapter it builds the neighborhood view
around that chapter: adjacent boundaries, active characters with their
profiles, and plot-continuity hints. With --query it translates a
free-text question into structured searches and prints the top matching
text chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().Int("chapter", 0, "target chapter number")
	contextCmd.Flags().String("query", "", "free-text question to retrieve context for")
	contextCmd.Flags().Int("max-chunks", 0, "maximum context chunks for --query (0 = use config default)")

	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	chapter, _ := cmd.Flags().GetInt("chapter")
	query, _ := cmd.Flags().GetString("query")
	if (chapter == 0) == (query == "") {
		return fmt.Errorf("provide exactly one of --chapter or --query")
	}

	idx := index.Build(manuscript, cfg.Index)

	if query != "" {
		maxChunks, _ := cmd.Flags().GetInt("max-chunks")
		if maxChunks <= 0 {
			maxChunks = cfg.Search.MaxChunks
		}

		chunks := search.ContextForQuery(manuscript, idx, query, maxChunks)
		if len(chunks) == 0 {
			fmt.Println("No matching context found.")
			return nil
		}
		for i, chunk := range chunks {
			fmt.Printf("%d. %s\n", i+1, strings.TrimSpace(chunk))
		}
		return nil
	}

	cache := chapctx.NewCache(cfg.Cache)
	chapterCtx, err := cache.LoadContext(manuscript, chapter, idx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(chapterCtx)
}
