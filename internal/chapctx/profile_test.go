// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chapctx

import (
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const profileManuscript = `Chapter 1

Alice was brave and curious. Alice always checked the locks before bed.
"I can handle this," Alice said. Alice discovered the hidden letter.
Alice smiled at the thought.

Chapter 2

Alice returned to the house. Alice trembled at the sound upstairs.
"Who is there?" Alice asked.

Chapter 3

The house stood empty. Alice learned the truth about her sister at last.
`

func loadProfile(t *testing.T, chapter int) types.CharacterProfile {
	t.Helper()
	idx := index.Build(profileManuscript, types.IndexConfig{})
	cache := NewCache(types.CacheConfig{})

	ctx, err := cache.LoadContext(profileManuscript, chapter, idx)
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	for _, p := range ctx.ActiveCharacters {
		if p.Name == "Alice" {
			return p
		}
	}
	t.Fatal("Alice not in active characters")
	return types.CharacterProfile{}
}

func TestProfileTraits(t *testing.T) {
	p := loadProfile(t, 1)

	has := func(trait string) bool {
		for _, tr := range p.Traits {
			if tr == trait {
				return true
			}
		}
		return false
	}
	if !has("brave") || !has("curious") {
		t.Errorf("Traits = %v, want brave and curious", p.Traits)
	}
}

func TestProfileBehaviorRules(t *testing.T) {
	p := loadProfile(t, 1)

	found := false
	for _, rule := range p.BehaviorRules {
		if strings.Contains(rule, "always checked the locks") {
			found = true
		}
	}
	if !found {
		t.Errorf("BehaviorRules = %v, want the habit sentence", p.BehaviorRules)
	}
}

func TestProfileSpeechPatterns(t *testing.T) {
	p := loadProfile(t, 1)

	if len(p.SpeechPatterns) == 0 {
		t.Fatal("expected attributed dialogue in speech patterns")
	}
	if p.SpeechPatterns[0] != "I can handle this," {
		t.Errorf("SpeechPatterns[0] = %q", p.SpeechPatterns[0])
	}
}

func TestProfileEmotionalState(t *testing.T) {
	// Window around chapter 2 includes the trembling scene.
	p := loadProfile(t, 2)
	if p.EmotionalState != "fearful" {
		t.Errorf("EmotionalState = %q, want fearful", p.EmotionalState)
	}
}

func TestProfileKnowledgeRespectsTarget(t *testing.T) {
	// At chapter 1, the chapter 3 revelation is not yet known.
	p := loadProfile(t, 1)
	for _, k := range p.KnowledgeState {
		if strings.Contains(k, "truth about her sister") {
			t.Error("knowledge state leaked from a later chapter")
		}
	}

	found := false
	for _, k := range p.KnowledgeState {
		if strings.Contains(k, "hidden letter") {
			found = true
		}
	}
	if !found {
		t.Errorf("KnowledgeState = %v, want the discovery sentence", p.KnowledgeState)
	}

	// At chapter 3, it is.
	p3 := loadProfile(t, 3)
	found = false
	for _, k := range p3.KnowledgeState {
		if strings.Contains(k, "truth about her sister") {
			found = true
		}
	}
	if !found {
		t.Errorf("KnowledgeState = %v, want the chapter 3 revelation", p3.KnowledgeState)
	}
}

func TestProfileLastAppearance(t *testing.T) {
	p := loadProfile(t, 2)
	if p.LastChapterAppearance != 2 {
		t.Errorf("LastChapterAppearance = %d, want 2", p.LastChapterAppearance)
	}
}

func TestContinuityHints(t *testing.T) {
	text := `Chapter 1

The village slept under a heavy fog. A secret waited in the old mill.
Dana swore she would return soon.

Chapter 2

Dana kept her promise to the miller. Dana crossed the bridge at dawn.
Dana paused at the mill door.
`
	idx := index.Build(text, types.IndexConfig{})
	cache := NewCache(types.CacheConfig{})

	ctx, err := cache.LoadContext(text, 2, idx)
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}

	joined := strings.Join(ctx.PlotContinuity, "\n")
	if !strings.Contains(joined, "Previous chapter ends:") {
		t.Errorf("missing trailing-sentence anchor in %v", ctx.PlotContinuity)
	}
	if !strings.Contains(joined, `"secret"`) {
		t.Errorf("missing tension hint in %v", ctx.PlotContinuity)
	}
}
