package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"curator-llm/internal/domain"
)

// FallbackSynthesizer produce perfiles sustitutos cuando el modelo no esta
// disponible o su salida no sirve. Respeta exactamente los mismos rangos y
// enums que ResponseParser; el resto del sistema no distingue procedencia.
// La confianza se sesga baja (0.1-0.5) para marcar la degradacion.
type FallbackSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackSynthesizer acepta un rng inyectable para tests deterministas.
func NewFallbackSynthesizer(rng *rand.Rand) *FallbackSynthesizer {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>16))
	}
	return &FallbackSynthesizer{rng: rng}
}

// rand.Rand no es seguro para uso concurrente; los dominios se sintetizan
// desde goroutines paralelas.
func (f *FallbackSynthesizer) unit(lo, hi float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo + f.rng.Float64()*(hi-lo)
}

func (f *FallbackSynthesizer) score(lo, hi int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return lo + f.rng.IntN(hi-lo+1)
}

func (f *FallbackSynthesizer) pick(allowed []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return allowed[f.rng.IntN(len(allowed))]
}

func (f *FallbackSynthesizer) pickSome(allowed []string, n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.rng.Perm(len(allowed))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, allowed[i])
	}
	return out
}

func (f *FallbackSynthesizer) confidence() float64 {
	return f.unit(0.1, 0.5)
}

func (f *FallbackSynthesizer) Emotion() domain.EmotionProfile {
	return domain.EmotionProfile{
		CurrentMood:        f.pick(domain.Moods),
		EmotionalStability: f.unit(0.4, 0.8),
		StressLevel:        f.score(20, 60),
		Positivity:         f.unit(0.4, 0.8),
		DominantEmotions:   f.pickSome(domain.Moods, 2),
		Confidence:         f.confidence(),
	}
}

func (f *FallbackSynthesizer) Lifestyle() domain.LifestyleProfile {
	return domain.LifestyleProfile{
		ActivityLevel:     f.pick(domain.ActivityLevels),
		SocialOrientation: f.pick(domain.SocialOrientations),
		RoutineRegularity: f.unit(0.3, 0.8),
		PeakPeriod:        f.pick(domain.PeakPeriods),
		WorkLifeBalance:   f.score(35, 75),
		Interests:         []string{},
		Confidence:        f.confidence(),
	}
}

func (f *FallbackSynthesizer) Growth() domain.GrowthProfile {
	return domain.GrowthProfile{
		Stage:            f.pick(domain.GrowthStages),
		GrowthRate:       f.unit(0.2, 0.7),
		Momentum:         f.score(30, 70),
		Trend:            domain.TrendStable,
		Strengths:        []string{},
		ImprovementAreas: []string{},
		Confidence:       f.confidence(),
	}
}

func (f *FallbackSynthesizer) Creative() domain.CreativeProfile {
	return domain.CreativeProfile{
		CreativityScore:   f.score(40, 80),
		PreferredStyle:    f.pick(domain.CreativeStyles),
		ColorPreference:   f.pick(domain.ColorPreferences),
		CompositionSkill:  f.unit(0.3, 0.8),
		Experimentation:   f.unit(0.2, 0.7),
		SignatureSubjects: []string{},
		Confidence:        f.confidence(),
	}
}

func (f *FallbackSynthesizer) Personality() domain.PersonalityProfile {
	return domain.PersonalityProfile{
		Openness:          f.score(30, 80),
		Conscientiousness: f.score(30, 80),
		Extraversion:      f.score(30, 80),
		Agreeableness:     f.score(30, 80),
		Neuroticism:       f.score(20, 70),
		Archetype:         f.pick(domain.Archetypes),
		Summary:           "",
		Confidence:        f.confidence(),
	}
}

func (f *FallbackSynthesizer) Cultural() domain.CulturalContext {
	return domain.CulturalContext{
		Season:            seasonFor(time.Now()),
		MoodAlignment:     f.unit(0.3, 0.7),
		RecommendedThemes: []string{},
		ContextNote:       "",
		Confidence:        f.confidence(),
	}
}

func (f *FallbackSynthesizer) Suggestions(features domain.FeatureSummary) domain.SuggestionSet {
	subjects := features.TopSubjects
	if len(subjects) > 3 {
		subjects = subjects[:3]
	}
	return domain.SuggestionSet{
		NextSubjects:    append([]string{}, subjects...),
		BestPostingHour: features.PeakHour(),
		BestPostingDay:  domain.Weekdays[features.PeakWeekday()],
		ChallengeIdea:   "",
		FocusArea:       f.pick(domain.FocusAreas),
		Confidence:      f.confidence(),
	}
}

func seasonFor(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}
