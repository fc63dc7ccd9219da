// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ThreadStatus describes whether a plot thread runs to the end of the
// manuscript.
type ThreadStatus string

const (
	ThreadActive    ThreadStatus = "active"
	ThreadResolved  ThreadStatus = "resolved"
	ThreadAbandoned ThreadStatus = "abandoned"
)

// PlotEventType classifies a key event by its position in the thread.
type PlotEventType string

const (
	EventSetup  PlotEventType = "setup"
	EventMajor  PlotEventType = "major"
	EventPayoff PlotEventType = "payoff"
)

// PlotEvent is a single key event within a plot thread.
type PlotEvent struct {
	Chapter     int           `json:"chapter" yaml:"chapter"`
	Description string        `json:"description" yaml:"description"`
	Type        PlotEventType `json:"type" yaml:"type"`
}

// PlotThread is a tracked narrative arc: the main story or a character
// subplot. Status is resolved iff the thread's end chapter is the
// manuscript's last chapter.
type PlotThread struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	StartChapter int          `json:"start_chapter" yaml:"start_chapter"`
	EndChapter   int          `json:"end_chapter" yaml:"end_chapter"`
	KeyEvents    []PlotEvent  `json:"key_events" yaml:"key_events"`
	Characters   []string     `json:"characters" yaml:"characters"`
	Status       ThreadStatus `json:"status" yaml:"status"`
}

// ArcMilestone is a growth moment for a character in a specific chapter.
type ArcMilestone struct {
	Chapter     int    `json:"chapter" yaml:"chapter"`
	Description string `json:"description" yaml:"description"`
}

// CharacterArc tracks a character's development across the manuscript.
// Consistency grows with milestone count, bounded at 1.0.
type CharacterArc struct {
	Character   string         `json:"character" yaml:"character"`
	StartState  string         `json:"start_state" yaml:"start_state"`
	EndState    string         `json:"end_state" yaml:"end_state"`
	Milestones  []ArcMilestone `json:"milestones" yaml:"milestones"`
	Consistency float64        `json:"consistency" yaml:"consistency"`
}

// Pace classifies a chapter's narrative speed.
type Pace string

const (
	PaceSlow     Pace = "slow"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
	PaceUneven   Pace = "uneven"
)

// ChapterPacing is the per-chapter pace classification.
type ChapterPacing struct {
	Chapter int  `json:"chapter" yaml:"chapter"`
	Pace    Pace `json:"pace" yaml:"pace"`
}

// PacingAnalysis summarizes narrative speed across the manuscript.
// Overall is uneven when the per-chapter pace variance exceeds the
// analyzer's threshold, overriding the mean-based classification.
// TensionCurve aligns 1:1 with the index's chapters.
type PacingAnalysis struct {
	Overall               Pace            `json:"overall" yaml:"overall"`
	ChapterPacing         []ChapterPacing `json:"chapter_pacing" yaml:"chapter_pacing"`
	TensionCurve          []float64       `json:"tension_curve" yaml:"tension_curve"`
	ActionToDialogueRatio float64         `json:"action_to_dialogue_ratio" yaml:"action_to_dialogue_ratio"`
}

// ThematicElement is a keyword-cluster-defined theme with a per-manuscript
// strength score between 0.0 and 1.0.
type ThematicElement struct {
	Theme     string   `json:"theme" yaml:"theme"`
	Chapters  []int    `json:"chapters" yaml:"chapters"`
	Strength  float64  `json:"strength" yaml:"strength"`
	Evolution []string `json:"evolution" yaml:"evolution"`
}

// BookStructure holds the higher-level structures derived from a
// ManuscriptIndex. It must be recomputed whenever the index changes.
type BookStructure struct {
	PlotThreads   []PlotThread      `json:"plot_threads" yaml:"plot_threads"`
	CharacterArcs []CharacterArc    `json:"character_arcs" yaml:"character_arcs"`
	Pacing        PacingAnalysis    `json:"pacing" yaml:"pacing"`
	Themes        []ThematicElement `json:"themes" yaml:"themes"`
}
