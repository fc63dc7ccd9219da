// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/search"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [manuscript] [query...]",
	Short: "Run a typed structured search over the manuscript",
	Long: `Search runs a typed query (character, theme, plot, dialogue, scene,
emotion, or general) against the manuscript index and prints ranked
evidence matches. The query target comes from --target or the positional
arguments after the manuscript file. An unrecognized --type falls back to
general keyword matching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("type", "general", "query type: character, theme, plot, dialogue, scene, emotion, general")
	searchCmd.Flags().String("target", "", "query target (overrides positional query terms)")
	searchCmd.Flags().IntSlice("chapters", nil, "restrict matching to these chapter numbers")
	searchCmd.Flags().Int("max-results", 0, "maximum results (0 = use config default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	if target == "" && len(args) > 1 {
		target = strings.Join(args[1:], " ")
	}
	if target == "" {
		return fmt.Errorf("query target required: provide --target or query terms after the manuscript file")
	}

	queryType, _ := cmd.Flags().GetString("type")
	chapters, _ := cmd.Flags().GetIntSlice("chapters")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}

	query := types.SearchQuery{
		Type:   types.QueryType(queryType),
		Target: target,
	}
	if len(chapters) > 0 {
		query.Context = &types.QueryContext{Chapters: chapters}
	}

	idx := index.Build(manuscript, cfg.Index)
	results := search.Search(manuscript, idx, query, maxResults)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return search.FormatJSON(results, os.Stdout)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	search.FormatTable(results, os.Stdout)
	return nil
}
