// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manuscript-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manuscript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "manuscript-engine",
	Short: "Structural indexing and search for fiction manuscripts",
	Long: `manuscript-engine builds a structural index over a plain-text manuscript
(chapter boundaries, character appearances, word counts) and answers typed
structured searches, free-text context queries, and continuity checks
against it.

Each operation is a subcommand: index, analyze, search, context, validate,
quality, rewrite, watch, and store. Commands take the manuscript file as
their first argument and rebuild the index from the current text on every
run; the store subcommands persist index snapshots for later retrieval.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manuscript-engine.yaml or ~/.config/manuscript-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manuscript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manuscript-engine"))
		}
	}

	viper.SetEnvPrefix("MANUSCRIPT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig merges config-file overrides onto the defaults and
// validates the result.
func engineConfig() (types.EngineConfig, error) {
	cfg := types.DefaultEngineConfig()

	overrides := []struct {
		key string
		dst *int
	}{
		{"index.mention_threshold", &cfg.Index.MentionThreshold},
		{"cache.capacity", &cfg.Cache.Capacity},
		{"cache.window", &cfg.Cache.Window},
		{"search.max_results", &cfg.Search.MaxResults},
		{"search.max_chunks", &cfg.Search.MaxChunks},
		{"analysis.top_characters", &cfg.Analysis.TopCharacters},
		{"analysis.subplot_threshold", &cfg.Analysis.SubplotThreshold},
	}
	for _, o := range overrides {
		if viper.IsSet(o.key) {
			*o.dst = viper.GetInt(o.key)
		}
	}
	if viper.IsSet("index.extra_stop_words") {
		cfg.Index.ExtraStopWords = viper.GetStringSlice("index.extra_stop_words")
	}
	if viper.IsSet("store.index_dir") {
		cfg.Store.IndexDir = viper.GetString("store.index_dir")
	}

	if err := cfg.Validate(); err != nil {
		return types.EngineConfig{}, err
	}
	return cfg, nil
}

// readManuscript loads the manuscript file named by the first positional
// argument.
func readManuscript(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("provide a manuscript file")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading manuscript: %w", err)
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
