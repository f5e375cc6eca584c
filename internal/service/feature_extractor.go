package service

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"curator-llm/internal/domain"
)

const defaultTopK = 5

// FeatureExtractor agrega el historial de contenido en un FeatureSummary.
// Es puro y total: nunca falla; con input vacio devuelve el resumen centinela.
type FeatureExtractor struct {
	TopK int
}

func NewFeatureExtractor() FeatureExtractor {
	return FeatureExtractor{TopK: defaultTopK}
}

// Extract calcula tokens frecuentes, tendencia de score e histogramas de horario.
func (e FeatureExtractor) Extract(items []domain.ContentItem) domain.FeatureSummary {
	k := e.TopK
	if k <= 0 {
		k = defaultTopK
	}

	if len(items) == 0 {
		return domain.FeatureSummary{
			TopSubjects:  []string{},
			TopMoods:     []string{},
			TopTags:      []string{},
			ScoreTrend:   domain.TrendUndetermined,
			Insufficient: true,
		}
	}

	// Orden cronologico ascendente sobre una copia; el input no se muta.
	sorted := make([]domain.ContentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var subjectTexts, moodTexts, tagTexts []string
	for _, it := range sorted {
		if it.Quality != nil && it.Quality.Image != nil {
			subjectTexts = append(subjectTexts, it.Quality.Image.MainSubject)
			moodTexts = append(moodTexts, it.Quality.Image.Mood)
		}
		tagTexts = append(tagTexts, it.Tags...)
	}

	summary := domain.FeatureSummary{
		TopSubjects: topTokens(subjectTexts, k),
		TopMoods:    topTokens(moodTexts, k),
		TopTags:     topTokens(tagTexts, k),
		ItemCount:   len(sorted),
		LatestTitle: sorted[len(sorted)-1].Title,
	}

	summary.ScoreTrend, summary.PhaseMeans = scoreTrend(sorted)

	for _, it := range sorted {
		summary.HourHistogram[it.CreatedAt.Hour()]++
		summary.WeekdayHistogram[int(it.CreatedAt.Weekday())]++
	}

	return summary
}

// scoreTrend clasifica la tendencia partiendo el historial en 3 fases
// contiguas de tamano casi igual (el resto va a la ultima fase).
func scoreTrend(sorted []domain.ContentItem) (string, [3]float64) {
	var means [3]float64

	var scored []int
	for _, it := range sorted {
		if it.Quality != nil {
			scored = append(scored, it.Quality.Total)
		}
	}
	if len(scored) < 3 {
		return domain.TrendUndetermined, means
	}

	phaseSize := len(scored) / 3
	phases := [3][]int{
		scored[:phaseSize],
		scored[phaseSize : 2*phaseSize],
		scored[2*phaseSize:],
	}
	for i, p := range phases {
		sum := 0
		for _, v := range p {
			sum += v
		}
		means[i] = float64(sum) / float64(len(p))
	}

	delta := means[2] - means[0]
	switch {
	case delta > 10:
		return domain.TrendRising, means
	case delta > 5:
		return domain.TrendImproving, means
	case delta < -5:
		return domain.TrendDeclining, means
	default:
		return domain.TrendStable, means
	}
}

// topTokens cuenta tokens y devuelve los k mas frecuentes.
// Empates se resuelven por orden de primera aparicion (input ya cronologico).
func topTokens(texts []string, k int) []string {
	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		for _, tok := range tokenize(text) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > k {
		order = order[:k]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

// tokenize separa por puntuacion/espacios y descarta tokens de 2 runas o menos.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
