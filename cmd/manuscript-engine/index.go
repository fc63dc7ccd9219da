// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [manuscript]",
	Short: "Build the structural index for a manuscript",
	Long: `Index scans the manuscript for chapter boundaries and character
appearances and prints a summary of the resulting index. With --json the
full index is written to stdout instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("json", false, "output the full index as JSON")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	idx := index.Build(manuscript, cfg.Index)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(idx)
	}

	printIndexSummary(idx)
	return nil
}

func printIndexSummary(idx *types.ManuscriptIndex) {
	fmt.Printf("Chapters: %d  Words: %d  Average chapter length: %d\n\n",
		len(idx.Chapters), idx.TotalWordCount, idx.AverageChapterLength)

	for _, c := range idx.Chapters {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  Chapter %-3d  %-40s  %6d words  confidence %.2f\n",
			c.ChapterNumber, title, c.WordCount, c.Confidence)
	}

	if len(idx.Characters) > 0 {
		fmt.Printf("\nCharacters (%d):\n", len(idx.Characters))
		for _, ch := range idx.Characters {
			fmt.Printf("  %-20s  %4d mentions  first in chapter %d  appears in %d chapter(s)\n",
				ch.Name, ch.TotalMentions, ch.FirstMention, len(ch.Chapters))
		}
	}
}
