// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/structure"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [manuscript]",
	Short: "Derive plot threads, character arcs, pacing, and themes",
	Long: `Analyze builds the structural index and derives the book structure from
it: the main plot thread and character subplots, per-character arcs,
chapter pacing with a tension curve, and thematic elements. With --json
the full structure is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output the full book structure as JSON")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	idx := index.Build(manuscript, cfg.Index)
	bs := structure.Analyze(manuscript, idx, cfg.Analysis)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bs)
	}

	printStructureSummary(bs)
	return nil
}

func printStructureSummary(bs *types.BookStructure) {
	fmt.Printf("Plot threads (%d):\n", len(bs.PlotThreads))
	for _, t := range bs.PlotThreads {
		fmt.Printf("  %-20s  chapters %d-%d  %-9s  %d key event(s)\n",
			t.Name, t.StartChapter, t.EndChapter, t.Status, len(t.KeyEvents))
	}

	fmt.Printf("\nCharacter arcs (%d):\n", len(bs.CharacterArcs))
	for _, a := range bs.CharacterArcs {
		fmt.Printf("  %-20s  %s -> %s  consistency %.2f  %d milestone(s)\n",
			a.Character, a.StartState, a.EndState, a.Consistency, len(a.Milestones))
	}

	fmt.Printf("\nPacing: %s (action/dialogue ratio %.2f)\n",
		bs.Pacing.Overall, bs.Pacing.ActionToDialogueRatio)
	for i, cp := range bs.Pacing.ChapterPacing {
		tension := 0.0
		if i < len(bs.Pacing.TensionCurve) {
			tension = bs.Pacing.TensionCurve[i]
		}
		fmt.Printf("  Chapter %-3d  %-8s  tension %.2f\n", cp.Chapter, cp.Pace, tension)
	}

	fmt.Printf("\nThemes (%d):\n", len(bs.Themes))
	for _, th := range bs.Themes {
		fmt.Printf("  %-12s  strength %.2f  chapters %s\n",
			th.Theme, th.Strength, joinChapters(th.Chapters))
	}
}

func joinChapters(chapters []int) string {
	parts := make([]string, len(chapters))
	for i, c := range chapters {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ", ")
}
