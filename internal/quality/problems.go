// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var attributionNearQuote = regexp.MustCompile(`(?i)"[^"]*"\s*[^"]*?(?:said|asked|replied|whispered|shouted)`)

var (
	firstPersonIndicators  = []string{"I ", "me ", "my ", "mine "}
	thirdPersonIndicators  = []string{"he ", "she ", "they ", "his ", "her ", "their "}
	pastTenseIndicators    = []string{"was", "were", "had", "did"}
	presentTenseIndicators = []string{"is", "are", "has", "does"}
)

// weakProseVerbs flag flat prose in problem analysis (a different set
// than the scoring one, matching overused generics rather than tags).
var weakProseVerbs = []string{"went", "got", "put", "look", "come", "go"}

// repetitionAllowlist holds substantial words common enough that heavy
// repetition is normal.
var repetitionAllowlist = map[string]struct{}{
	"that": {}, "with": {}, "have": {}, "this": {}, "they": {}, "were": {}, "been": {},
}

// Analyze runs every problem analyzer and normalizes the combined issue
// count into a severity between 0 and 1.
func Analyze(text string) types.ProblemAnalysis {
	analysis := types.ProblemAnalysis{
		StructuralIssues: structuralIssues(text),
		NarrativeIssues:  narrativeIssues(text),
		CharacterIssues:  characterIssues(text),
		PacingIssues:     pacingIssues(text),
		DialogueIssues:   dialogueIssues(text),
		ProseIssues:      proseIssues(text),
	}
	analysis.Severity = minFloat(1.0, float64(analysis.TotalIssues())/20.0)
	return analysis
}

func structuralIssues(text string) []string {
	var issues []string
	paragraphs := splitParagraphs(text)

	if len(paragraphs) < 3 {
		issues = append(issues, "Chapter may be too short or lack proper structure")
	}

	long := 0
	short := 0
	for _, p := range paragraphs {
		n := len(strings.Fields(p))
		if n > 200 {
			long++
		}
		if n < 10 {
			short++
		}
	}
	if long > 0 {
		issues = append(issues, fmt.Sprintf("Found %d overly long paragraphs", long))
	}
	if float64(short) > float64(len(paragraphs))*0.3 {
		issues = append(issues, "Too many very short paragraphs - may indicate choppy structure")
	}

	return issues
}

// narrativeIssues flags mixed narrative person and blended tense. Both
// checks are substring heuristics, not parsing.
func narrativeIssues(text string) []string {
	var issues []string

	if containsAnySubstring(text, firstPersonIndicators) && containsAnySubstring(text, thirdPersonIndicators) {
		issues = append(issues, "Potential POV inconsistency - mixing first and third person")
	}

	lower := strings.ToLower(text)
	past := countSubstrings(lower, pastTenseIndicators)
	present := countSubstrings(lower, presentTenseIndicators)
	if past > 0 && present > 0 && abs(past-present) < min(past, present) {
		issues = append(issues, "Potential tense inconsistency")
	}

	return issues
}

func characterIssues(text string) []string {
	var issues []string

	if len(characterNames(text)) > 10 {
		issues = append(issues, "Too many character names introduced - may confuse readers")
	}

	quotes := quotedSpan.FindAllString(text, -1)
	attributed := attributionNearQuote.FindAllString(text, -1)
	if len(quotes) > 0 && float64(len(attributed)) < float64(len(quotes))*0.3 {
		issues = append(issues, "Many dialogue lines lack clear attribution")
	}

	return issues
}

func pacingIssues(text string) []string {
	var issues []string
	lengths := sentenceWordLengths(text)
	if len(lengths) == 0 {
		return issues
	}

	var total float64
	for _, n := range lengths {
		total += float64(n)
	}
	avg := total / float64(len(lengths))

	switch {
	case avg > 25:
		issues = append(issues, "Sentences are too long on average - may slow pacing")
	case avg < 8:
		issues = append(issues, "Sentences are too short on average - may feel choppy")
	}

	if len(lengths) > 5 && sampleVariance(lengths) < 10 {
		issues = append(issues, "Lack of sentence length variety - monotonous pacing")
	}

	return issues
}

func dialogueIssues(text string) []string {
	var issues []string
	quotes := quotedSpan.FindAllString(text, -1)
	if len(quotes) == 0 {
		return issues
	}

	long := 0
	contractions := 0
	for _, q := range quotes {
		if len(strings.Fields(q)) > 50 {
			long++
		}
		if strings.Contains(q, "'") {
			contractions++
		}
	}
	if long > 0 {
		issues = append(issues, fmt.Sprintf("Found %d overly long dialogue segments", long))
	}
	if contractions == 0 && len(quotes) > 3 {
		issues = append(issues, "Dialogue lacks contractions - may sound unnatural")
	}

	saidCount := strings.Count(strings.ToLower(text), " said")
	if float64(saidCount) > float64(len(quotes))*0.8 {
		issues = append(issues, "Overuse of 'said' - dialogue tags lack variety")
	}

	return issues
}

func proseIssues(text string) []string {
	var issues []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return issues
	}

	adverbs := 0
	weak := 0
	for _, w := range words {
		if strings.HasSuffix(w, "ly") {
			adverbs++
		}
		for _, v := range weakProseVerbs {
			if w == v {
				weak++
				break
			}
		}
	}
	if float64(adverbs)/float64(len(words)) > 0.1 {
		issues = append(issues, fmt.Sprintf("Excessive use of adverbs (%d found) - consider stronger verbs", adverbs))
	}
	if float64(weak) > float64(len(words))*0.05 {
		issues = append(issues, "Overuse of weak verbs - consider more specific alternatives")
	}

	if repeated := repeatedWords(words); len(repeated) > 0 {
		issues = append(issues, "Repetitive word usage: "+strings.Join(repeated, ", "))
	}

	return issues
}

// repeatedWords lists up to three substantial words used more than five
// times, formatted as word(count), in first-occurrence order so the
// output is deterministic.
func repeatedWords(words []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		lower := strings.ToLower(w)
		if len(lower) <= 4 {
			continue
		}
		if counts[lower] == 0 {
			order = append(order, lower)
		}
		counts[lower]++
	}

	var repeated []string
	for _, w := range order {
		if counts[w] <= 5 {
			continue
		}
		if _, allowed := repetitionAllowlist[w]; allowed {
			continue
		}
		repeated = append(repeated, fmt.Sprintf("%s(%d)", w, counts[w]))
		if len(repeated) == 3 {
			break
		}
	}
	return repeated
}

func containsAnySubstring(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

func countSubstrings(text string, subs []string) int {
	total := 0
	for _, s := range subs {
		total += strings.Count(text, s)
	}
	return total
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
