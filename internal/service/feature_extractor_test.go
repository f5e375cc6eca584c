package service

import (
	"fmt"
	"testing"
	"time"

	"curator-llm/internal/domain"
)

func itemAt(t time.Time, total int, subject, mood string, tags ...string) domain.ContentItem {
	return domain.ContentItem{
		ID:        fmt.Sprintf("item-%d", t.Unix()),
		Title:     "title " + subject,
		Tags:      tags,
		CreatedAt: t,
		Quality: &domain.QualityScore{
			Technical:   total,
			Composition: total,
			Creativity:  total,
			Engagement:  total,
			Total:       total,
			Level:       domain.LevelForTotal(total),
			Image: &domain.ImageFeatures{
				MainSubject: subject,
				Mood:        mood,
			},
		},
	}
}

func TestExtractEmptyInputSentinel(t *testing.T) {
	summary := NewFeatureExtractor().Extract(nil)

	if !summary.Insufficient {
		t.Fatalf("expected insufficient summary for empty input")
	}
	if summary.ScoreTrend != domain.TrendUndetermined {
		t.Fatalf("expected undetermined trend, got %s", summary.ScoreTrend)
	}
	if summary.TopSubjects == nil || len(summary.TopSubjects) != 0 {
		t.Fatalf("expected empty (non-nil) subject list, got %v", summary.TopSubjects)
	}
}

func TestExtractTrendRising(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// Medias por fase: 50, 55, 68 → delta 18 → rising.
	totals := []int{50, 50, 55, 55, 68, 68}
	var items []domain.ContentItem
	for i, total := range totals {
		items = append(items, itemAt(base.AddDate(0, 0, i), total, "garden", "calm"))
	}

	summary := NewFeatureExtractor().Extract(items)

	if summary.ScoreTrend != domain.TrendRising {
		t.Fatalf("expected rising trend, got %s (means %v)", summary.ScoreTrend, summary.PhaseMeans)
	}
	if summary.PhaseMeans != [3]float64{50, 55, 68} {
		t.Fatalf("unexpected phase means: %v", summary.PhaseMeans)
	}
}

func TestExtractTrendStable(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// Medias por fase: 50, 52, 54 → delta 4 → stable.
	totals := []int{50, 52, 54}
	var items []domain.ContentItem
	for i, total := range totals {
		items = append(items, itemAt(base.AddDate(0, 0, i), total, "garden", "calm"))
	}

	summary := NewFeatureExtractor().Extract(items)

	if summary.ScoreTrend != domain.TrendStable {
		t.Fatalf("expected stable trend, got %s", summary.ScoreTrend)
	}
}

func TestExtractTrendDeclining(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	totals := []int{80, 70, 60}
	var items []domain.ContentItem
	for i, total := range totals {
		items = append(items, itemAt(base.AddDate(0, 0, i), total, "garden", "calm"))
	}

	if got := NewFeatureExtractor().Extract(items).ScoreTrend; got != domain.TrendDeclining {
		t.Fatalf("expected declining trend, got %s", got)
	}
}

func TestExtractTrendUndeterminedWithFewItems(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.ContentItem{
		itemAt(base, 50, "garden", "calm"),
		itemAt(base.AddDate(0, 0, 1), 60, "garden", "calm"),
	}

	if got := NewFeatureExtractor().Extract(items).ScoreTrend; got != domain.TrendUndetermined {
		t.Fatalf("expected undetermined trend for 2 scored items, got %s", got)
	}
}

func TestExtractTopTokensFrequencyAndTies(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []domain.ContentItem{
		itemAt(base, 50, "sunset harbor", "nostalgic"),
		itemAt(base.AddDate(0, 0, 1), 50, "harbor lights", "nostalgic"),
		itemAt(base.AddDate(0, 0, 2), 50, "sunset", "dreamy"),
	}

	summary := NewFeatureExtractor().Extract(items)

	// harbor y sunset empatan en 2; sunset aparece primero cronologicamente.
	if len(summary.TopSubjects) < 2 {
		t.Fatalf("expected at least 2 subjects, got %v", summary.TopSubjects)
	}
	if summary.TopSubjects[0] != "sunset" || summary.TopSubjects[1] != "harbor" {
		t.Fatalf("unexpected order: %v", summary.TopSubjects)
	}
}

func TestExtractDropsShortTokens(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	items := []domain.ContentItem{
		itemAt(base, 50, "an old lighthouse at  sea", "calm"),
	}

	summary := NewFeatureExtractor().Extract(items)

	for _, tok := range summary.TopSubjects {
		if len([]rune(tok)) <= 2 {
			t.Fatalf("short token %q should have been dropped", tok)
		}
	}
}

func TestExtractHistograms(t *testing.T) {
	items := []domain.ContentItem{
		itemAt(time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC), 50, "a", "b"), // lunes
		itemAt(time.Date(2025, 6, 3, 18, 30, 0, 0, time.UTC), 50, "a", "b"),
		itemAt(time.Date(2025, 6, 4, 7, 0, 0, 0, time.UTC), 50, "a", "b"),
	}

	summary := NewFeatureExtractor().Extract(items)

	if summary.HourHistogram[18] != 2 {
		t.Fatalf("expected 2 posts at hour 18, got %d", summary.HourHistogram[18])
	}
	if summary.HourHistogram[7] != 1 {
		t.Fatalf("expected 1 post at hour 7, got %d", summary.HourHistogram[7])
	}
	if summary.WeekdayHistogram[int(time.Monday)] != 1 {
		t.Fatalf("expected 1 post on monday, got %d", summary.WeekdayHistogram[int(time.Monday)])
	}
	if summary.PeakHour() != 18 {
		t.Fatalf("expected peak hour 18, got %d", summary.PeakHour())
	}
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.ContentItem{
		itemAt(base.AddDate(0, 0, 2), 50, "c", "x"),
		itemAt(base, 50, "a", "x"),
		itemAt(base.AddDate(0, 0, 1), 50, "b", "x"),
	}

	_ = NewFeatureExtractor().Extract(items)

	if !items[0].CreatedAt.Equal(base.AddDate(0, 0, 2)) {
		t.Fatalf("input slice was reordered")
	}
}
