// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// ExportedSnapshot is the YAML shape of one stored manuscript snapshot.
type ExportedSnapshot struct {
	ID         string                      `yaml:"id"`
	Chapters   []types.ChapterBoundary     `yaml:"chapters"`
	Characters []types.CharacterAppearance `yaml:"characters"`

	TotalWordCount       int `yaml:"total_word_count"`
	AverageChapterLength int `yaml:"average_chapter_length"`
}

// ExportYAML writes the snapshot's index to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, id, path string) error {
	_, idx, err := s.Load(ctx, id)
	if err != nil {
		return err
	}

	snapshot := ExportedSnapshot{
		ID:                   id,
		Chapters:             idx.Chapters,
		Characters:           idx.Characters,
		TotalWordCount:       idx.TotalWordCount,
		AverageChapterLength: idx.AverageChapterLength,
	}

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
