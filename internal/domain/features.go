package domain

const (
	TrendRising       = "rising"
	TrendImproving    = "improving"
	TrendStable       = "stable"
	TrendDeclining    = "declining"
	TrendUndetermined = "undetermined"
)

// FeatureSummary es el agregado inmutable del historial de contenido.
// Un re-analisis produce un FeatureSummary nuevo; nunca se muta uno existente.
type FeatureSummary struct {
	TopSubjects      []string   `json:"top_subjects"`
	TopMoods         []string   `json:"top_moods"`
	TopTags          []string   `json:"top_tags"`
	ScoreTrend       string     `json:"score_trend"`
	PhaseMeans       [3]float64 `json:"phase_means"`
	HourHistogram    [24]int    `json:"hour_histogram"`
	WeekdayHistogram [7]int     `json:"weekday_histogram"`
	ItemCount        int        `json:"item_count"`
	LatestTitle      string     `json:"latest_title"`
	Insufficient     bool       `json:"insufficient"`
}

// PeakHour devuelve la hora (0-23) con mas publicaciones.
func (f *FeatureSummary) PeakHour() int {
	best := 0
	for h := 1; h < len(f.HourHistogram); h++ {
		if f.HourHistogram[h] > f.HourHistogram[best] {
			best = h
		}
	}
	return best
}

// PeakWeekday devuelve el dia de la semana (0=domingo) con mas publicaciones.
func (f *FeatureSummary) PeakWeekday() int {
	best := 0
	for d := 1; d < len(f.WeekdayHistogram); d++ {
		if f.WeekdayHistogram[d] > f.WeekdayHistogram[best] {
			best = d
		}
	}
	return best
}
