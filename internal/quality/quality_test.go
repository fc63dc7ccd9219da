// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChapter = `Alice hurried through the rain. She reached the station with a minute to spare.

"You're late," Bob said. "I thought you weren't coming."

Alice laughed and shook the water from her coat. Meanwhile the train rolled in,
and suddenly the platform filled with noise. They found a seat together and
watched the city slide past the window.`

func TestAssessScoresInRange(t *testing.T) {
	m := Assess(sampleChapter)

	for name, score := range map[string]float64{
		"readability":            m.Readability,
		"story structure":        m.StoryStructure,
		"character consistency":  m.CharacterConsistency,
		"pacing":                 m.Pacing,
		"dialogue effectiveness": m.DialogueEffectiveness,
		"narrative flow":         m.NarrativeFlow,
		"tension":                m.Tension,
		"prose quality":          m.ProseQuality,
		"overall":                m.Overall,
	} {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 1.0, name)
	}

	mean := (m.Readability + m.StoryStructure + m.CharacterConsistency +
		m.Pacing + m.DialogueEffectiveness + m.NarrativeFlow +
		m.Tension + m.ProseQuality) / 8.0
	assert.InDelta(t, mean, m.Overall, 1e-9)
}

func TestAssessEmptyText(t *testing.T) {
	m := Assess("")

	assert.Zero(t, m.Readability)
	assert.Zero(t, m.StoryStructure)
	assert.Zero(t, m.Pacing)
	assert.Zero(t, m.ProseQuality)
	// Neutral defaults when the signal is absent entirely.
	assert.Equal(t, 0.7, m.CharacterConsistency)
	assert.Equal(t, 0.6, m.DialogueEffectiveness)
	assert.Equal(t, 0.5, m.NarrativeFlow)
	assert.Equal(t, 0.5, m.Tension)
}

func TestReadabilityPenalizesLongSentences(t *testing.T) {
	long := strings.Repeat("the cat sat on a mat ", 5) // one 30-word sentence
	long = strings.TrimSpace(long) + "."

	score := assessReadability(long)
	assert.InDelta(t, 0.7, score, 1e-9, "30 words per sentence costs 0.3")
}

func TestTensionRespondsToIndicators(t *testing.T) {
	calm := assessTension("The afternoon drifted by. The kettle warmed slowly on the old stove nearby.")
	tense := assessTension("Suddenly there was danger. Panic spread. Fear gripped everyone. Run. Now.")

	assert.Greater(t, tense, calm)
}

func TestAssessDeterministic(t *testing.T) {
	assert.Equal(t, Assess(sampleChapter), Assess(sampleChapter))
}

func TestAnalyzeChoppyChapter(t *testing.T) {
	text := "The dragon came. The dragon left. The dragon slept. The dragon woke. The dragon roared. The dragon flew."

	analysis := Analyze(text)

	assert.Contains(t, analysis.StructuralIssues, "Chapter may be too short or lack proper structure")
	assert.Contains(t, analysis.PacingIssues, "Sentences are too short on average - may feel choppy")
	assert.Contains(t, analysis.PacingIssues, "Lack of sentence length variety - monotonous pacing")

	require.Len(t, analysis.ProseIssues, 1)
	assert.Equal(t, "Repetitive word usage: dragon(6)", analysis.ProseIssues[0])

	assert.Equal(t, 4, analysis.TotalIssues())
	assert.InDelta(t, 0.2, analysis.Severity, 1e-9)
}

func TestAnalyzeCleanTextHasLowSeverity(t *testing.T) {
	analysis := Analyze(sampleChapter)

	assert.LessOrEqual(t, analysis.Severity, 0.3)
	assert.Equal(t, minFloat(1.0, float64(analysis.TotalIssues())/20.0), analysis.Severity)
}

func TestSeverityCapped(t *testing.T) {
	// A paragraph-free wall of repeated weak prose trips many analyzers,
	// but severity never exceeds 1.
	text := strings.Repeat("He went quickly and sadly and went again slowly. ", 40)
	analysis := Analyze(text)

	assert.LessOrEqual(t, analysis.Severity, 1.0)
	assert.GreaterOrEqual(t, analysis.Severity, 0.0)
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := strings.Repeat("The dragon chased the knight past the castle gates. ", 8)
	assert.Equal(t, Analyze(text), Analyze(text))
}
