// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists manuscript index snapshots in SQLite and serves
// full-text retrieval over the stored chapter text.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const dbFile = "manuscripts.db"

// Store manages the snapshot SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the snapshot database at
// cfg.IndexDir/manuscripts.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS manuscripts (
			id TEXT PRIMARY KEY,
			title TEXT,
			saved_at TEXT NOT NULL,
			total_word_count INTEGER NOT NULL,
			average_chapter_length INTEGER NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chapters (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			manuscript_id TEXT NOT NULL REFERENCES manuscripts(id),
			chapter_number INTEGER NOT NULL,
			start_position INTEGER NOT NULL,
			end_position INTEGER NOT NULL,
			title TEXT,
			confidence REAL NOT NULL,
			word_count INTEGER NOT NULL,
			content TEXT NOT NULL,
			UNIQUE(manuscript_id, chapter_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chapters_manuscript ON chapters(manuscript_id)`,
		`CREATE TABLE IF NOT EXISTS characters (
			manuscript_id TEXT NOT NULL REFERENCES manuscripts(id),
			name TEXT NOT NULL,
			chapters TEXT NOT NULL,
			first_mention INTEGER NOT NULL,
			total_mentions INTEGER NOT NULL,
			PRIMARY KEY (manuscript_id, name)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='chapters_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE chapters_fts USING fts5(content, content=chapters, content_rowid=rowid)`,
			`CREATE TRIGGER chapters_ai AFTER INSERT ON chapters BEGIN
				INSERT INTO chapters_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER chapters_ad AFTER DELETE ON chapters BEGIN
				INSERT INTO chapters_fts(chapters_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER chapters_au AFTER UPDATE ON chapters BEGIN
				INSERT INTO chapters_fts(chapters_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO chapters_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save stores a manuscript snapshot under the given id, replacing any
// existing snapshot with the same id.
func (s *Store) Save(ctx context.Context, id, title, manuscript string, idx *types.ManuscriptIndex) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE manuscript_id = ?`, id); err != nil {
		return fmt.Errorf("deleting old chapters: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE manuscript_id = ?`, id); err != nil {
		return fmt.Errorf("deleting old characters: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO manuscripts (id, title, saved_at, total_word_count, average_chapter_length, text)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, saved_at=excluded.saved_at,
			total_word_count=excluded.total_word_count,
			average_chapter_length=excluded.average_chapter_length,
			text=excluded.text`,
		id, title, time.Now().UTC().Format(time.RFC3339Nano),
		idx.TotalWordCount, idx.AverageChapterLength, manuscript,
	)
	if err != nil {
		return fmt.Errorf("upserting manuscript: %w", err)
	}

	chapterStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chapters (manuscript_id, chapter_number, start_position, end_position, title, confidence, word_count, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing chapter insert: %w", err)
	}
	defer chapterStmt.Close()

	for _, c := range idx.Chapters {
		content := manuscript[c.StartPosition:c.EndPosition]
		_, err := chapterStmt.ExecContext(ctx,
			id, c.ChapterNumber, c.StartPosition, c.EndPosition,
			c.Title, c.Confidence, c.WordCount, content,
		)
		if err != nil {
			return fmt.Errorf("inserting chapter %d: %w", c.ChapterNumber, err)
		}
	}

	characterStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO characters (manuscript_id, name, chapters, first_mention, total_mentions)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing character insert: %w", err)
	}
	defer characterStmt.Close()

	for _, c := range idx.Characters {
		chaptersJSON, _ := json.Marshal(c.Chapters)
		_, err := characterStmt.ExecContext(ctx,
			id, c.Name, string(chaptersJSON), c.FirstMention, c.TotalMentions,
		)
		if err != nil {
			return fmt.Errorf("inserting character %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// Load reconstructs a stored snapshot: the manuscript text and its index.
func (s *Store) Load(ctx context.Context, id string) (string, *types.ManuscriptIndex, error) {
	var (
		manuscript string
		idx        types.ManuscriptIndex
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT text, total_word_count, average_chapter_length FROM manuscripts WHERE id = ?`, id,
	).Scan(&manuscript, &idx.TotalWordCount, &idx.AverageChapterLength)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil, fmt.Errorf("manuscript %q not found", id)
		}
		return "", nil, fmt.Errorf("loading manuscript: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter_number, start_position, end_position, title, confidence, word_count
		 FROM chapters WHERE manuscript_id = ? ORDER BY chapter_number`, id)
	if err != nil {
		return "", nil, fmt.Errorf("loading chapters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c     types.ChapterBoundary
			title sql.NullString
		)
		if err := rows.Scan(&c.ChapterNumber, &c.StartPosition, &c.EndPosition, &title, &c.Confidence, &c.WordCount); err != nil {
			return "", nil, fmt.Errorf("scanning chapter: %w", err)
		}
		c.Title = title.String
		idx.Chapters = append(idx.Chapters, c)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}

	charRows, err := s.db.QueryContext(ctx,
		`SELECT name, chapters, first_mention, total_mentions
		 FROM characters WHERE manuscript_id = ?
		 ORDER BY total_mentions DESC, name`, id)
	if err != nil {
		return "", nil, fmt.Errorf("loading characters: %w", err)
	}
	defer charRows.Close()

	for charRows.Next() {
		var (
			c            types.CharacterAppearance
			chaptersJSON string
		)
		if err := charRows.Scan(&c.Name, &chaptersJSON, &c.FirstMention, &c.TotalMentions); err != nil {
			return "", nil, fmt.Errorf("scanning character: %w", err)
		}
		if err := json.Unmarshal([]byte(chaptersJSON), &c.Chapters); err != nil {
			return "", nil, fmt.Errorf("parsing chapter list for %s: %w", c.Name, err)
		}
		idx.Characters = append(idx.Characters, c)
	}
	if err := charRows.Err(); err != nil {
		return "", nil, err
	}

	return manuscript, &idx, nil
}

// Snapshot summarizes one stored manuscript.
type Snapshot struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	SavedAt        time.Time `json:"saved_at" yaml:"saved_at"`
	Chapters       int       `json:"chapters" yaml:"chapters"`
	TotalWordCount int       `json:"total_word_count" yaml:"total_word_count"`
}

// List returns summaries of every stored snapshot, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.saved_at, m.total_word_count,
			(SELECT count(*) FROM chapters c WHERE c.manuscript_id = m.id)
		 FROM manuscripts m ORDER BY m.saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing manuscripts: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var (
			snap    Snapshot
			title   sql.NullString
			savedAt string
		)
		if err := rows.Scan(&snap.ID, &title, &savedAt, &snap.TotalWordCount, &snap.Chapters); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.Title = title.String
		if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
			snap.SavedAt = t
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
