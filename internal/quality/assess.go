// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality scores chapter prose on eight heuristic axes and
// detects categorized writing problems. All heuristics are deterministic
// text scans; none of them consult external services.
package quality

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var (
	sentenceSplit      = regexp.MustCompile(`[.!?]+`)
	capitalizedName    = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	quotedSpan         = regexp.MustCompile(`"[^"]*"`)
	dialogueAttributed = regexp.MustCompile(`"[^"]*"\s*(?:[A-Z][a-z]+\s+said|said\s+[A-Z][a-z]+)`)
	characterAction    = regexp.MustCompile(`[A-Z][a-z]+\s+(?:walked|ran|said|looked|turned)`)
	dialogueTag        = regexp.MustCompile(`(?i)"[^"]*"\s*[a-z]+\s+said|said\s+[a-z]+`)
)

// structureTransitions mark scene changes inside a chapter.
var structureTransitions = []string{"meanwhile", "later", "suddenly", "then", "after", "before"}

// flowTransitions open paragraphs that connect to the previous one.
var flowTransitions = []string{
	"however", "meanwhile", "therefore", "consequently", "furthermore",
	"additionally", "moreover", "nevertheless", "nonetheless", "thus",
}

// tensionIndicators raise the tension score by presence, not frequency.
var tensionIndicators = []string{
	"suddenly", "urgent", "danger", "fear", "panic", "rush", "quick",
	"immediately", "emergency", "crisis", "threat", "worried", "anxious",
}

// weakVerbs flag flat prose when they dominate.
var weakVerbs = []string{"went", "said", "looked", "walked", "was", "were"}

// commonCapitalized are capitalized tokens that are never character names.
var commonCapitalized = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "Then": {}, "When": {},
	"Where": {}, "What": {}, "Who": {}, "How": {}, "But": {}, "And": {},
}

// Assess scores the text on all eight axes. Overall is the mean.
func Assess(text string) types.QualityMetrics {
	m := types.QualityMetrics{
		Readability:           assessReadability(text),
		StoryStructure:        assessStoryStructure(text),
		CharacterConsistency:  assessCharacterConsistency(text),
		Pacing:                assessPacing(text),
		DialogueEffectiveness: assessDialogueEffectiveness(text),
		NarrativeFlow:         assessNarrativeFlow(text),
		Tension:               assessTension(text),
		ProseQuality:          assessProseQuality(text),
	}
	m.Overall = (m.Readability + m.StoryStructure + m.CharacterConsistency +
		m.Pacing + m.DialogueEffectiveness + m.NarrativeFlow +
		m.Tension + m.ProseQuality) / 8.0
	return m
}

// assessReadability starts from a perfect score and penalizes long
// sentences and dense vocabulary; sentence-length variety earns it back.
func assessReadability(text string) float64 {
	words := strings.Fields(text)
	lengths := sentenceWordLengths(text)
	if len(words) == 0 || len(lengths) == 0 {
		return 0.0
	}

	avg := float64(len(words)) / float64(len(lengths))
	complexWords := 0
	for _, w := range words {
		if len(w) > 6 {
			complexWords++
		}
	}
	complexity := float64(complexWords) / float64(len(words))

	score := 1.0
	switch {
	case avg > 25:
		score -= 0.3
	case avg > 20:
		score -= 0.1
	}
	if sampleVariance(lengths) > 10 {
		score += 0.1
	}
	if complexity > 0.3 {
		score -= 0.2
	}
	return clamp(score)
}

func assessStoryStructure(text string) float64 {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return 0.0
	}

	score := 0.5
	if len(paragraphs) >= 3 {
		score += 0.2
	}

	transitions := 0
	for _, p := range paragraphs {
		lower := strings.ToLower(p)
		for _, word := range structureTransitions {
			if strings.Contains(lower, word) {
				transitions++
			}
		}
	}
	if transitions > 0 {
		score += minFloat(0.2, float64(transitions)*0.05)
	}

	var total float64
	for _, p := range paragraphs {
		total += float64(len(strings.Fields(p)))
	}
	if avg := total / float64(len(paragraphs)); avg >= 50 && avg <= 150 {
		score += 0.1
	}

	return minFloat(1.0, score)
}

// assessCharacterConsistency rewards attributed dialogue and named
// character actions. With no character names at all the score is a
// neutral 0.7.
func assessCharacterConsistency(text string) float64 {
	names := characterNames(text)
	if len(names) == 0 {
		return 0.7
	}

	score := 0.5
	if dialogueAttributed.MatchString(text) {
		score += 0.2
	}
	if characterAction.MatchString(text) {
		score += 0.2
	}
	return minFloat(1.0, score)
}

func assessPacing(text string) float64 {
	lengths := sentenceWordLengths(text)
	if len(lengths) == 0 {
		return 0.0
	}

	score := 0.5
	if len(lengths) > 1 && sampleVariance(lengths) > 20 {
		score += 0.3
	}
	if short := countShortSentences(lengths); short > 0 {
		score += minFloat(0.2, float64(short)*0.02)
	}
	return minFloat(1.0, score)
}

func assessDialogueEffectiveness(text string) float64 {
	quotes := quotedSpan.FindAllString(text, -1)
	if len(quotes) == 0 {
		return 0.6
	}

	score := 0.5

	var lengths []int
	contractions := 0
	for _, q := range quotes {
		lengths = append(lengths, len(strings.Fields(q)))
		if strings.Contains(q, "'") {
			contractions++
		}
	}
	if len(lengths) > 1 && sampleVariance(lengths) > 5 {
		score += 0.2
	}

	tags := len(dialogueTag.FindAllString(text, -1))
	ratio := float64(tags) / float64(len(quotes))
	if ratio >= 0.3 && ratio <= 0.7 {
		score += 0.2
	}

	if contractions > 0 {
		score += 0.1
	}
	return minFloat(1.0, score)
}

// assessNarrativeFlow rewards paragraphs that open with a transition
// word connecting them to the previous paragraph.
func assessNarrativeFlow(text string) float64 {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) < 2 {
		return 0.5
	}

	score := 0.5
	found := 0
	for i := 1; i < len(paragraphs); i++ {
		first := strings.ToLower(firstSentence(paragraphs[i]))
		for _, word := range flowTransitions {
			if strings.Contains(first, word) {
				found++
				break
			}
		}
	}
	if found > 0 {
		score += minFloat(0.3, float64(found)*0.1)
	}
	return minFloat(1.0, score)
}

func assessTension(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.5
	hits := 0
	for _, word := range tensionIndicators {
		if strings.Contains(lower, word) {
			hits++
		}
	}
	if hits > 0 {
		score += minFloat(0.3, float64(hits)*0.05)
	}
	if short := countShortSentences(sentenceWordLengths(text)); short > 0 {
		score += minFloat(0.2, float64(short)*0.02)
	}
	return minFloat(1.0, score)
}

func assessProseQuality(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0.0
	}

	unique := make(map[string]struct{}, len(words))
	adverbs := 0
	weak := 0
	for _, w := range words {
		lower := strings.ToLower(w)
		unique[lower] = struct{}{}
		if strings.HasSuffix(w, "ly") {
			adverbs++
		}
		for _, v := range weakVerbs {
			if lower == v {
				weak++
				break
			}
		}
	}

	score := 0.5
	if float64(len(unique))/float64(len(words)) > 0.5 {
		score += 0.2
	}

	adverbRatio := float64(adverbs) / float64(len(words))
	switch {
	case adverbRatio < 0.05:
		score += 0.1
	case adverbRatio > 0.1:
		score -= 0.1
	}

	if float64(weak)/float64(len(words)) < 0.1 {
		score += 0.2
	}
	return clamp(score)
}

// characterNames extracts probable character names: capitalized tokens
// minus common sentence-initial words.
func characterNames(text string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, token := range capitalizedName.FindAllString(text, -1) {
		if _, common := commonCapitalized[token]; common {
			continue
		}
		names[token] = struct{}{}
	}
	return names
}

// sentenceWordLengths returns the word count of every non-blank sentence.
func sentenceWordLengths(text string) []int {
	var lengths []int
	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		lengths = append(lengths, len(strings.Fields(s)))
	}
	return lengths
}

func countShortSentences(lengths []int) int {
	short := 0
	for _, n := range lengths {
		if n <= 5 {
			short++
		}
	}
	return short
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

func firstSentence(paragraph string) string {
	if i := strings.IndexByte(paragraph, '.'); i >= 0 {
		return paragraph[:i]
	}
	return paragraph
}

// sampleVariance is the n-1 variance of the lengths.
func sampleVariance(lengths []int) float64 {
	if len(lengths) < 2 {
		return 0
	}
	var mean float64
	for _, n := range lengths {
		mean += float64(n)
	}
	mean /= float64(len(lengths))

	var sum float64
	for _, n := range lengths {
		d := float64(n) - mean
		sum += d * d
	}
	return sum / float64(len(lengths)-1)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
