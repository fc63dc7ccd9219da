// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QualityMetrics is the eight-axis heuristic quality assessment of a
// chapter. All scores are between 0.0 and 1.0; Overall is their mean.
type QualityMetrics struct {
	Readability           float64 `json:"readability" yaml:"readability"`
	StoryStructure        float64 `json:"story_structure" yaml:"story_structure"`
	CharacterConsistency  float64 `json:"character_consistency" yaml:"character_consistency"`
	Pacing                float64 `json:"pacing" yaml:"pacing"`
	DialogueEffectiveness float64 `json:"dialogue_effectiveness" yaml:"dialogue_effectiveness"`
	NarrativeFlow         float64 `json:"narrative_flow" yaml:"narrative_flow"`
	Tension               float64 `json:"tension" yaml:"tension"`
	ProseQuality          float64 `json:"prose_quality" yaml:"prose_quality"`
	Overall               float64 `json:"overall" yaml:"overall"`
}

// IsBetterThan reports whether every axis is at least as good as other's
// and the overall score strictly improved.
func (m QualityMetrics) IsBetterThan(other QualityMetrics) bool {
	return m.Readability >= other.Readability &&
		m.StoryStructure >= other.StoryStructure &&
		m.CharacterConsistency >= other.CharacterConsistency &&
		m.Pacing >= other.Pacing &&
		m.DialogueEffectiveness >= other.DialogueEffectiveness &&
		m.NarrativeFlow >= other.NarrativeFlow &&
		m.Tension >= other.Tension &&
		m.ProseQuality >= other.ProseQuality &&
		m.Overall > other.Overall
}

// ProblemAnalysis lists detected problems in a chapter by category.
// Severity is min(1, totalIssues/20).
type ProblemAnalysis struct {
	StructuralIssues []string `json:"structural_issues,omitempty" yaml:"structural_issues,omitempty"`
	NarrativeIssues  []string `json:"narrative_issues,omitempty" yaml:"narrative_issues,omitempty"`
	CharacterIssues  []string `json:"character_issues,omitempty" yaml:"character_issues,omitempty"`
	PacingIssues     []string `json:"pacing_issues,omitempty" yaml:"pacing_issues,omitempty"`
	DialogueIssues   []string `json:"dialogue_issues,omitempty" yaml:"dialogue_issues,omitempty"`
	ProseIssues      []string `json:"prose_issues,omitempty" yaml:"prose_issues,omitempty"`
	Severity         float64  `json:"severity" yaml:"severity"`
}

// TotalIssues returns the count across all categories.
func (p ProblemAnalysis) TotalIssues() int {
	return len(p.StructuralIssues) + len(p.NarrativeIssues) +
		len(p.CharacterIssues) + len(p.PacingIssues) +
		len(p.DialogueIssues) + len(p.ProseIssues)
}

// RewriteIntensity selects how aggressively a chapter is rewritten.
type RewriteIntensity string

const (
	RewriteLight         RewriteIntensity = "light"
	RewriteModerate      RewriteIntensity = "moderate"
	RewriteComprehensive RewriteIntensity = "comprehensive"
)

// PreservationControls names elements the rewriter must keep intact.
type PreservationControls struct {
	PreserveDialogue       []string `json:"preserve_dialogue,omitempty" yaml:"preserve_dialogue,omitempty"`
	PreserveCharacterNames bool     `json:"preserve_character_names" yaml:"preserve_character_names"`
	PreservePlotPoints     []string `json:"preserve_plot_points,omitempty" yaml:"preserve_plot_points,omitempty"`
}

// RewriteReport summarizes a rewrite run: metrics before and after, the
// changes made, per-axis deltas, and what was preserved.
type RewriteReport struct {
	OriginalMetrics    QualityMetrics     `json:"original_metrics" yaml:"original_metrics"`
	FinalMetrics       QualityMetrics     `json:"final_metrics" yaml:"final_metrics"`
	ChangesMade        []string           `json:"changes_made,omitempty" yaml:"changes_made,omitempty"`
	Improvements       map[string]float64 `json:"improvements" yaml:"improvements"`
	IterationsRequired int                `json:"iterations_required" yaml:"iterations_required"`
	PreservedElements  []string           `json:"preserved_elements,omitempty" yaml:"preserved_elements,omitempty"`
}
