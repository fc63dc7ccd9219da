// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/chapctx"
	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/sequence"
)

var validateCmd = &cobra.Command{
	Use:   "validate [manuscript]",
	Short: "Check a chapter's continuity against its neighborhood",
	Long: `Validate checks the target chapter for sequence problems: characters
reappearing after a long absence and contradictory time references
between adjacent chapters. The command exits non-zero when issues are
found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Int("chapter", 0, "chapter number to validate (required)")
	validateCmd.Flags().Bool("json", false, "output the validation result as JSON")
	validateCmd.MarkFlagRequired("chapter")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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
	cache := chapctx.NewCache(cfg.Cache)

	result, err := sequence.Validate(manuscript, chapter, idx, cache)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Printf("Chapter %d: no sequence issues found.\n", chapter)
	} else {
		fmt.Printf("Chapter %d: %d issue(s) found.\n", chapter, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	if !result.Valid {
		return fmt.Errorf("chapter %d failed sequence validation", chapter)
	}
	return nil
}
