// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/rewrite"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [manuscript]",
	Short: "Rewrite a chapter to improve its quality scores",
	Long: `Rewrite applies deterministic prose transforms to one chapter and keeps
the result only when every quality axis holds steady and the overall
score improves. Without --chapter the lowest-scoring chapter is chosen.
The rewritten manuscript goes to --output, or stdout when no output file
is given; the rewrite report always goes to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().Int("chapter", 0, "chapter number to rewrite (0 = lowest-quality chapter)")
	rewriteCmd.Flags().String("intensity", "moderate", "rewrite intensity: light, moderate, comprehensive")
	rewriteCmd.Flags().String("output", "", "write the rewritten manuscript to this file instead of stdout")
	rewriteCmd.Flags().Bool("preserve-names", false, "restore character names the rewrite dropped")
	rewriteCmd.Flags().StringSlice("preserve-dialogue", nil, "dialogue lines that must survive the rewrite verbatim")
	rewriteCmd.Flags().Int("max-iterations", 0, "maximum rewrite passes (0 = default)")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}

	chapter, _ := cmd.Flags().GetInt("chapter")
	intensity, _ := cmd.Flags().GetString("intensity")
	outputPath, _ := cmd.Flags().GetString("output")
	preserveNames, _ := cmd.Flags().GetBool("preserve-names")
	preserveDialogue, _ := cmd.Flags().GetStringSlice("preserve-dialogue")
	maxIterations, _ := cmd.Flags().GetInt("max-iterations")

	switch types.RewriteIntensity(intensity) {
	case types.RewriteLight, types.RewriteModerate, types.RewriteComprehensive:
	default:
		return fmt.Errorf("unsupported intensity %q: use light, moderate, or comprehensive", intensity)
	}

	opts := rewrite.Options{
		Chapter:       chapter,
		Intensity:     types.RewriteIntensity(intensity),
		MaxIterations: maxIterations,
	}
	if preserveNames || len(preserveDialogue) > 0 {
		opts.Preserve = &types.PreservationControls{
			PreserveCharacterNames: preserveNames,
			PreserveDialogue:       preserveDialogue,
		}
	}

	rewritten, report, err := rewrite.Rewrite(manuscript, opts)
	if err != nil {
		return err
	}

	printRewriteReport(report)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(rewritten), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Wrote", outputPath)
		return nil
	}
	fmt.Print(rewritten)
	return nil
}

func printRewriteReport(report *types.RewriteReport) {
	fmt.Fprintf(os.Stderr, "Overall quality: %.2f -> %.2f in %d iteration(s)\n",
		report.OriginalMetrics.Overall, report.FinalMetrics.Overall, report.IterationsRequired)
	for _, change := range report.ChangesMade {
		fmt.Fprintf(os.Stderr, "  changed: %s\n", change)
	}
	for _, kept := range report.PreservedElements {
		fmt.Fprintf(os.Stderr, "  preserved: %s\n", kept)
	}
}
