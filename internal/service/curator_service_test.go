package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"curator-llm/internal/domain"
	"curator-llm/internal/llm"
)

func newTestCurator(client llm.LLMClient, cache BundleCache) *CuratorService {
	rng := rand.New(rand.NewPCG(1, 2))
	return NewCuratorService(
		client,
		cache,
		nil,
		NewFallbackSynthesizer(rng),
		NewCommentStylist(rng),
		zap.NewNop(),
		"1.4.0",
		5*time.Second,
	)
}

func testItems() []domain.ContentItem {
	base := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)
	var items []domain.ContentItem
	for i := 0; i < 6; i++ {
		items = append(items, domain.ContentItem{
			ID:        "item-" + string(rune('a'+i)),
			Title:     "walk shot",
			Tags:      []string{"daily"},
			CreatedAt: base.AddDate(0, 0, i),
			Quality: &domain.QualityScore{
				Total: 50 + i*5,
				Image: &domain.ImageFeatures{MainSubject: "harbor lights", Mood: "nostalgic"},
			},
		})
	}
	return items
}

func TestRunFullAnalysisDomainIsolation(t *testing.T) {
	// Emocion falla en transporte; lifestyle responde bien.
	client := &llm.MockClient{Response: "confidence: 0.8"}
	client.Fail("estado emocional actual", llm.ErrTransport)
	client.Respond("patron de vida", "activity_level: high\npeak_period: night\nconfidence: 0.9")

	svc := newTestCurator(client, NewMemoryBundleCache())

	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems())
	if err != nil {
		t.Fatalf("pipeline must not fail: %v", err)
	}

	if bundle.Emotion.Success {
		t.Fatalf("expected emotion to be fallback")
	}
	if bundle.Emotion.Error == "" {
		t.Fatalf("expected emotion envelope to carry the error as data")
	}
	if err := bundle.Emotion.Data.Validate(); err != nil {
		t.Fatalf("fallback emotion data invalid: %v", err)
	}
	if !strings.HasSuffix(bundle.Emotion.Meta.Version, "-fallback") {
		t.Fatalf("expected fallback suffix, got %s", bundle.Emotion.Meta.Version)
	}

	if !bundle.Lifestyle.Success {
		t.Fatalf("sibling domain must not be aborted by emotion failure")
	}
	if bundle.Lifestyle.Data.ActivityLevel != "high" {
		t.Fatalf("expected model-derived lifestyle, got %+v", bundle.Lifestyle.Data)
	}
	if !strings.HasSuffix(bundle.Lifestyle.Meta.Version, "-mock") {
		t.Fatalf("expected mock suffix, got %s", bundle.Lifestyle.Meta.Version)
	}
}

func TestRunFullAnalysisUnavailableClientIsFullFallback(t *testing.T) {
	unavailable := false
	client := &llm.MockClient{Available: &unavailable}

	svc := newTestCurator(client, NewMemoryBundleCache())

	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", nil)
	if err != nil {
		t.Fatalf("pipeline must not fail: %v", err)
	}

	envs := []struct {
		name    string
		success bool
		conf    float64
		errMsg  string
	}{
		{"emotion", bundle.Emotion.Success, bundle.Emotion.Meta.Confidence, bundle.Emotion.Error},
		{"lifestyle", bundle.Lifestyle.Success, bundle.Lifestyle.Meta.Confidence, bundle.Lifestyle.Error},
		{"growth", bundle.Growth.Success, bundle.Growth.Meta.Confidence, bundle.Growth.Error},
		{"creative", bundle.Creative.Success, bundle.Creative.Meta.Confidence, bundle.Creative.Error},
		{"suggestions", bundle.Suggestions.Success, bundle.Suggestions.Meta.Confidence, bundle.Suggestions.Error},
		{"cultural", bundle.Cultural.Success, bundle.Cultural.Meta.Confidence, bundle.Cultural.Error},
		{"personality", bundle.Personality.Success, bundle.Personality.Meta.Confidence, bundle.Personality.Error},
	}
	for _, e := range envs {
		if e.success {
			t.Fatalf("%s: expected fallback result", e.name)
		}
		if e.conf >= 0.5 {
			t.Fatalf("%s: fallback confidence must stay below 0.5, got %v", e.name, e.conf)
		}
		if e.errMsg == "" {
			t.Fatalf("%s: expected error recorded in envelope", e.name)
		}
	}

	// data nunca ausente: perfiles de fallback validan igual que los reales.
	if err := bundle.Emotion.Data.Validate(); err != nil {
		t.Fatalf("emotion data invalid: %v", err)
	}
	if err := bundle.Personality.Data.Validate(); err != nil {
		t.Fatalf("personality data invalid: %v", err)
	}

	// Ninguna llamada al modelo debe haberse hecho.
	if len(client.Prompts) != 0 {
		t.Fatalf("unavailable client must not be invoked, got %d prompts", len(client.Prompts))
	}
}

func TestRunFullAnalysisCulturalAfterEmotion(t *testing.T) {
	client := &llm.MockClient{Response: "confidence: 0.8"}
	client.Respond("estado emocional actual", "current_mood: melancholic\nconfidence: 0.9")

	svc := newTestCurator(client, NewMemoryBundleCache())

	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems())
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if bundle.Emotion.Data.CurrentMood != "melancholic" {
		t.Fatalf("expected melancholic mood, got %s", bundle.Emotion.Data.CurrentMood)
	}

	// El prompt cultural debe llevar el mood ya resuelto: prueba observable
	// de que se programo estrictamente despues de la emocion.
	var culturalPrompt string
	for _, p := range client.Prompts {
		if strings.Contains(p, "contexto cultural") {
			culturalPrompt = p
		}
	}
	if culturalPrompt == "" {
		t.Fatalf("cultural prompt was never sent")
	}
	if !strings.Contains(culturalPrompt, "melancholic") {
		t.Fatalf("cultural prompt must embed the resolved emotion profile")
	}
}

func TestRunFullAnalysisGrowthTrendFromExtractor(t *testing.T) {
	client := &llm.MockClient{Response: "confidence: 0.8"}
	client.Respond("trayectoria de crecimiento", "stage: expert\ntrend: declining\nconfidence: 0.9")

	svc := newTestCurator(client, NewMemoryBundleCache())

	// testItems sube de 50 a 75: fases 52.5 → 62.5 → 72.5, delta 20 → rising.
	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems())
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if bundle.Growth.Data.Trend != domain.TrendRising {
		t.Fatalf("trend must come from the extractor, got %s", bundle.Growth.Data.Trend)
	}
	if bundle.Growth.Data.Stage != "expert" {
		t.Fatalf("model fields must be kept, got %s", bundle.Growth.Data.Stage)
	}
}

func TestRunFullAnalysisPersistsAfterEachDomain(t *testing.T) {
	client := &llm.MockClient{Response: "confidence: 0.8"}
	cache := &countingCache{inner: NewMemoryBundleCache()}

	svc := newTestCurator(client, cache)

	if _, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	// 5 independientes + cultural + personality + comentarios.
	if cache.saves < 7 {
		t.Fatalf("expected a save per completed domain, got %d", cache.saves)
	}

	bundle, found := svc.GetCached(context.Background(), "user-1")
	if !found {
		t.Fatalf("expected cached bundle")
	}
	if bundle.UserID != "user-1" {
		t.Fatalf("unexpected bundle owner: %s", bundle.UserID)
	}
}

func TestRunFullAnalysisSurvivesCacheFailure(t *testing.T) {
	client := &llm.MockClient{Response: "confidence: 0.8"}
	cache := &countingCache{inner: NewMemoryBundleCache(), saveErr: errors.New("store down")}

	svc := newTestCurator(client, cache)

	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems())
	if err != nil {
		t.Fatalf("persistence failure must not fail the pipeline: %v", err)
	}
	if err := bundle.Emotion.Data.Validate(); err != nil {
		t.Fatalf("bundle still usable: %v", err)
	}
}

func TestGetCachedIgnoresExpiry(t *testing.T) {
	cache := NewMemoryBundleCache()
	old := sampleBundle()
	old.GeneratedAt = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := cache.Save(context.Background(), "user-1", old); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	svc := newTestCurator(&llm.MockClient{}, cache)

	got, found := svc.GetCached(context.Background(), "user-1")
	if !found {
		t.Fatalf("a bundle computed long ago is still valid")
	}
	if !got.GeneratedAt.Equal(old.GeneratedAt) {
		t.Fatalf("bundle must be restored as-is")
	}
}

func TestInvalidateClearsCache(t *testing.T) {
	cache := NewMemoryBundleCache()
	svc := newTestCurator(&llm.MockClient{Response: "confidence: 0.7"}, cache)

	if _, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems()); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if err := svc.Invalidate(context.Background(), "user-1"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, found := svc.GetCached(context.Background(), "user-1"); found {
		t.Fatalf("expected empty cache after invalidate")
	}
}

func TestDynamicCommentsDistinctStyles(t *testing.T) {
	client := &llm.MockClient{Response: "confidence: 0.7"}
	client.Respond("comentario corto", "Linda luz en esta toma.")

	svc := newTestCurator(client, NewMemoryBundleCache())

	bundle, err := svc.RunFullAnalysis(context.Background(), "user-1", testItems())
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if len(bundle.Comments) != defaultCommentCount {
		t.Fatalf("expected %d comments, got %d", defaultCommentCount, len(bundle.Comments))
	}
	seen := make(map[StyleTuple]bool)
	for _, c := range bundle.Comments {
		tuple := StyleTuple{Tone: c.Tone, Focus: c.Focus, Persona: c.Persona}
		if seen[tuple] {
			t.Fatalf("duplicate style tuple across comments: %+v", tuple)
		}
		seen[tuple] = true
	}
}

type countingCache struct {
	inner   BundleCache
	saves   int
	saveErr error
}

func (c *countingCache) Save(ctx context.Context, userID string, bundle domain.AnalysisBundle) error {
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	return c.inner.Save(ctx, userID, bundle)
}

func (c *countingCache) Load(ctx context.Context, userID string) (domain.AnalysisBundle, bool, error) {
	return c.inner.Load(ctx, userID)
}

func (c *countingCache) Invalidate(ctx context.Context, userID string) error {
	return c.inner.Invalidate(ctx, userID)
}
