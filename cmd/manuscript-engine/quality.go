// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/quality"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [manuscript]",
	Short: "Score a chapter's quality and list detected problems",
	Long: `Quality runs the heuristic quality assessment over one chapter: eight
scored axes plus their mean, and a categorized problem analysis with a
severity score. Without --chapter every chapter is scored and the report
lists them in manuscript order.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuality,
}

func init() {
	qualityCmd.Flags().Int("chapter", 0, "chapter number to assess (0 = all chapters)")
	qualityCmd.Flags().Bool("json", false, "output the assessment as JSON")

	rootCmd.AddCommand(qualityCmd)
}

// chapterReport pairs a chapter's metrics with its problem analysis.
type chapterReport struct {
	Chapter  int                   `json:"chapter"`
	Metrics  types.QualityMetrics  `json:"metrics"`
	Problems types.ProblemAnalysis `json:"problems"`
}

func runQuality(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	chapter, _ := cmd.Flags().GetInt("chapter")

	idx := index.Build(manuscript, cfg.Index)

	var reports []chapterReport
	for _, c := range idx.Chapters {
		if chapter != 0 && c.ChapterNumber != chapter {
			continue
		}
		text := manuscript[c.StartPosition:c.EndPosition]
		reports = append(reports, chapterReport{
			Chapter:  c.ChapterNumber,
			Metrics:  quality.Assess(text),
			Problems: quality.Analyze(text),
		})
	}
	if len(reports) == 0 {
		return &types.ChapterNotFoundError{Chapter: chapter}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		printChapterReport(r)
	}
	return nil
}

func printChapterReport(r chapterReport) {
	m := r.Metrics
	fmt.Printf("Chapter %d  overall %.2f\n", r.Chapter, m.Overall)
	fmt.Printf("  readability %.2f  structure %.2f  characters %.2f  pacing %.2f\n",
		m.Readability, m.StoryStructure, m.CharacterConsistency, m.Pacing)
	fmt.Printf("  dialogue %.2f  flow %.2f  tension %.2f  prose %.2f\n",
		m.DialogueEffectiveness, m.NarrativeFlow, m.Tension, m.ProseQuality)

	if r.Problems.TotalIssues() == 0 {
		fmt.Println("  No problems detected.")
		return
	}

	fmt.Printf("  Problems (severity %.2f):\n", r.Problems.Severity)
	categories := []struct {
		name   string
		issues []string
	}{
		{"structural", r.Problems.StructuralIssues},
		{"narrative", r.Problems.NarrativeIssues},
		{"character", r.Problems.CharacterIssues},
		{"pacing", r.Problems.PacingIssues},
		{"dialogue", r.Problems.DialogueIssues},
		{"prose", r.Problems.ProseIssues},
	}
	for _, cat := range categories {
		for _, issue := range cat.issues {
			fmt.Printf("    [%s] %s\n", cat.name, issue)
		}
	}
}
