package service

import (
	"strings"
	"testing"

	"curator-llm/internal/domain"
)

func TestPromptContainsLiteralsVerbatim(t *testing.T) {
	literals := []string{"花", "夕焼けの港", "morning coffee"}
	features := domain.FeatureSummary{ItemCount: 5, ScoreTrend: domain.TrendStable}

	prompts := []string{
		DefaultPromptBuilder.BuildEmotionPrompt(features, literals),
		DefaultPromptBuilder.BuildLifestylePrompt(features, literals),
		DefaultPromptBuilder.BuildGrowthPrompt(features, literals),
		DefaultPromptBuilder.BuildCreativePrompt(features, literals),
		DefaultPromptBuilder.BuildSuggestionsPrompt(features, literals, nil),
	}

	for i, prompt := range prompts {
		for _, lit := range literals {
			if !strings.Contains(prompt, lit) {
				t.Fatalf("prompt %d missing literal %q", i, lit)
			}
		}
	}
}

func TestPromptCapsLiteralsAtThree(t *testing.T) {
	literals := []string{"uno", "dos", "tres", "cuatro"}
	prompt := DefaultPromptBuilder.BuildEmotionPrompt(domain.FeatureSummary{}, literals)

	if strings.Contains(prompt, "cuatro") {
		t.Fatalf("expected only top-3 literals in prompt")
	}
}

func TestPromptEmbedsSchema(t *testing.T) {
	prompt := DefaultPromptBuilder.BuildEmotionPrompt(domain.FeatureSummary{}, nil)

	for _, want := range []string{
		"current_mood",
		"stress_level: entero entre 0 y 100",
		"confidence: decimal entre 0 y 1",
		strings.Join(domain.Moods, "|"),
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing schema fragment %q", want)
		}
	}
}

func TestCulturalPromptUsesEmotionProfile(t *testing.T) {
	emotion := domain.EmotionProfile{CurrentMood: "melancholic", Positivity: 0.3, StressLevel: 70}
	prompt := DefaultPromptBuilder.BuildCulturalPrompt(domain.FeatureSummary{}, emotion)

	if !strings.Contains(prompt, "melancholic") {
		t.Fatalf("cultural prompt should embed the resolved mood")
	}
	if !strings.Contains(prompt, "70/100") {
		t.Fatalf("cultural prompt should embed stress level")
	}
}

func TestSuggestionsPromptIncludesSimilarTitles(t *testing.T) {
	prompt := DefaultPromptBuilder.BuildSuggestionsPrompt(domain.FeatureSummary{}, nil, []string{"old harbor at dusk"})

	if !strings.Contains(prompt, "old harbor at dusk") {
		t.Fatalf("expected similar titles in suggestions prompt")
	}
}

func TestCommentPromptCarriesStyleTuple(t *testing.T) {
	style := StyleTuple{Tone: "poetic", Focus: "detail", Persona: "critic"}
	latest := domain.ContentItem{Title: "rainy window"}
	prompt := DefaultPromptBuilder.BuildCommentPrompt(domain.PersonalityProfile{Archetype: "creator"}, latest, style)

	for _, want := range []string{"poetic", "detail", "critic", "rainy window"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("comment prompt missing %q", want)
		}
	}
}
