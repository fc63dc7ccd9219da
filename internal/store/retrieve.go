// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for snapshot retrieval.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over chapter text.
	Query string

	// ManuscriptID restricts results to one snapshot.
	ManuscriptID string

	// MaxResults limits result count (default 20).
	MaxResults int
}

// ChapterHit is one chapter matched by a retrieval query.
type ChapterHit struct {
	ManuscriptID  string  `json:"manuscript_id" yaml:"manuscript_id"`
	ChapterNumber int     `json:"chapter_number" yaml:"chapter_number"`
	Title         string  `json:"title,omitempty" yaml:"title,omitempty"`
	WordCount     int     `json:"word_count" yaml:"word_count"`
	Excerpt       string  `json:"excerpt" yaml:"excerpt"`
	Rank          float64 `json:"rank" yaml:"rank"`
}

// Retrieve queries stored chapter text, ranked by FTS relevance when a
// full-text query is present, otherwise ordered by manuscript and
// chapter number.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]ChapterHit, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.manuscript_id, c.chapter_number, c.title, c.word_count,
				snippet(chapters_fts, 0, '', '', '...', 20), chapters_fts.rank
			FROM chapters_fts
			JOIN chapters c ON c.rowid = chapters_fts.rowid
			WHERE chapters_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.manuscript_id, c.chapter_number, c.title, c.word_count,
				substr(c.content, 1, 200), 0 AS rank
			FROM chapters c
			WHERE 1=1`)
	}

	if opts.ManuscriptID != "" {
		qb.WriteString(` AND c.manuscript_id = ?`)
		args = append(args, opts.ManuscriptID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY chapters_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.manuscript_id, c.chapter_number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var hits []ChapterHit
	for rows.Next() {
		var (
			hit   ChapterHit
			title sql.NullString
		)
		if err := rows.Scan(&hit.ManuscriptID, &hit.ChapterNumber, &title, &hit.WordCount, &hit.Excerpt, &hit.Rank); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hit.Title = title.String
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
