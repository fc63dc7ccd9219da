// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Persist and query manuscript index snapshots",
	Long: `Store keeps manuscript snapshots in a local SQLite database: the full
text, the structural index, and an FTS5 full-text index over chapter
content. Use subcommands to save a snapshot, list stored snapshots,
retrieve chapters by full-text search, or export a snapshot to YAML.`,
}

// --- save subcommand ---

var storeSaveCmd = &cobra.Command{
	Use:   "save [manuscript]",
	Short: "Index a manuscript and save the snapshot",
	Long: `Save builds the structural index for the manuscript and stores the text
and index under --id, replacing any earlier snapshot with the same id.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreSave,
}

func runStoreSave(cmd *cobra.Command, args []string) error {
	manuscript, err := readManuscript(args)
	if err != nil {
		return err
	}
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetString("id")
	if id == "" {
		base := filepath.Base(args[0])
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}
	title, _ := cmd.Flags().GetString("title")

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	idx := index.Build(manuscript, cfg.Index)
	if err := s.Save(context.Background(), id, title, manuscript, idx); err != nil {
		return err
	}

	fmt.Printf("Saved %q: %d chapter(s), %d character(s), %d words\n",
		id, len(idx.Chapters), len(idx.Characters), idx.TotalWordCount)
	return nil
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	snapshots, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No snapshots stored.")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshots)
	}

	fmt.Printf("%-20s  %-30s  %-25s  %8s  %8s\n", "ID", "Title", "Saved", "Chapters", "Words")
	fmt.Println(strings.Repeat("-", 100))
	for _, snap := range snapshots {
		fmt.Printf("%-20s  %-30s  %-25s  %8d  %8d\n",
			snap.ID, snap.Title, snap.SavedAt.Format("2006-01-02 15:04:05"),
			snap.Chapters, snap.TotalWordCount)
	}
	return nil
}

// --- retrieve subcommand ---

var storeRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Full-text search over stored chapter text",
	Long: `Retrieve searches stored chapters with FTS5 full-text search, or lists
them in order when no query is given. Use --manuscript to restrict
results to one snapshot.`,
	RunE: runStoreRetrieve,
}

func runStoreRetrieve(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	manuscriptID, _ := cmd.Flags().GetString("manuscript")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Query:        strings.Join(args, " "),
		ManuscriptID: manuscriptID,
		MaxResults:   limit,
	}

	hits, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, hit := range hits {
		fmt.Printf("%s chapter %d (%d words): %s\n",
			hit.ManuscriptID, hit.ChapterNumber, hit.WordCount, strings.TrimSpace(hit.Excerpt))
	}
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a snapshot's index to YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	cfg, err := engineConfig()
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = args[0] + ".yaml"
	}

	s, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ExportYAML(context.Background(), args[0], output); err != nil {
		return err
	}
	fmt.Println("Exported to", output)
	return nil
}

func init() {
	storeSaveCmd.Flags().String("id", "", "snapshot id (default: manuscript file name without extension)")
	storeSaveCmd.Flags().String("title", "", "manuscript title")

	storeListCmd.Flags().Bool("json", false, "output snapshots as JSON")

	storeRetrieveCmd.Flags().String("manuscript", "", "restrict results to this snapshot id")
	storeRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = default)")
	storeRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	storeExportCmd.Flags().String("output", "", "output file (default: <id>.yaml)")

	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeRetrieveCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
