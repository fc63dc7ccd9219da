// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QueryType routes a search query to its specialized matcher.
type QueryType string

const (
	QueryCharacter QueryType = "character"
	QueryTheme     QueryType = "theme"
	QueryPlot      QueryType = "plot"
	QueryDialogue  QueryType = "dialogue"
	QueryScene     QueryType = "scene"
	QueryEmotion   QueryType = "emotion"
	QueryGeneral   QueryType = "general"
)

// QueryContext optionally narrows a search to specific chapters,
// characters, or a timeframe description.
type QueryContext struct {
	Chapters   []int    `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Characters []string `json:"characters,omitempty" yaml:"characters,omitempty"`
	Timeframe  string   `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`
}

// SearchQuery is a typed query against the manuscript index.
type SearchQuery struct {
	Type    QueryType     `json:"type" yaml:"type"`
	Target  string        `json:"target" yaml:"target"`
	Context *QueryContext `json:"context,omitempty" yaml:"context,omitempty"`
}

// SearchResult is one ranked textual evidence match. Results are ephemeral:
// recomputed per query and deduplicated by (Chapter, Position).
type SearchResult struct {
	// Chapter is the chapter number the match falls in.
	Chapter int `json:"chapter" yaml:"chapter"`

	// Position is the byte offset of the match in the manuscript.
	Position int `json:"position" yaml:"position"`

	// Content is the sentence-level window around the match.
	Content string `json:"content" yaml:"content"`

	// RelevanceScore is the matcher's heuristic score. Scores are only
	// comparable within a single query type.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// ContextType names the matcher that produced the result.
	ContextType QueryType `json:"context_type" yaml:"context_type"`

	// RelatedElements lists names or keywords associated with the match.
	RelatedElements []string `json:"related_elements,omitempty" yaml:"related_elements,omitempty"`
}
