// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ChapterNotFoundError reports a lookup for a chapter number absent from
// the index. Lookups fail fast with this type rather than returning a
// placeholder boundary.
type ChapterNotFoundError struct {
	Chapter int
}

func (e *ChapterNotFoundError) Error() string {
	return fmt.Sprintf("chapter %d not found in index", e.Chapter)
}

// CharacterNotFoundError reports a lookup for a character name absent from
// the index.
type CharacterNotFoundError struct {
	Name string
}

func (e *CharacterNotFoundError) Error() string {
	return fmt.Sprintf("character %q not found in index", e.Name)
}
