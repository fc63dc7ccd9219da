// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-7s  %-6s  %-10s  %-60s  %s\n",
		"Rank", "Chapter", "Score", "Type", "Content", "Related")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		content := r.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-7d  %-6.2f  %-10s  %-60s  %s\n",
			i+1, r.Chapter, r.RelevanceScore, r.ContextType, content,
			strings.Join(r.RelatedElements, ","))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
