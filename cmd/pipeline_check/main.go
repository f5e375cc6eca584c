package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"curator-llm/internal/config"
	"curator-llm/internal/domain"
	"curator-llm/internal/llm"
	"curator-llm/internal/service"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Dos corridas: una sobre el mock (siempre) y una contra el LLM real
	// si hay credenciales configuradas.
	runPipeline(ctx, logger, "mock", newScriptedMock(), cfg)

	real := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbedModel, log.Default())
	if real.IsAvailable() {
		runPipeline(ctx, logger, "real", real, cfg)
	} else {
		fmt.Printf("%s[skip]%s real llm run: no api key configured\n", colorYellow, colorReset)
	}
}

func runPipeline(ctx context.Context, logger *zap.Logger, label string, client llm.LLMClient, cfg *config.Config) {
	fmt.Printf("%s=== pipeline check (%s) ===%s\n", colorCyan, label, colorReset)

	rng := rand.New(rand.NewPCG(42, 1337))
	curator := service.NewCuratorService(
		client,
		service.NewMemoryBundleCache(),
		nil,
		service.NewFallbackSynthesizer(rng),
		service.NewCommentStylist(rng),
		logger,
		cfg.PipelineVersion,
		time.Duration(cfg.LLMTimeoutSec)*time.Second,
	)

	bundle, err := curator.RunFullAnalysis(ctx, "user-check", sampleItems())
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	printEnvelope("emotion", bundle.Emotion.Success, bundle.Emotion.Meta, bundle.Emotion.Data)
	printEnvelope("lifestyle", bundle.Lifestyle.Success, bundle.Lifestyle.Meta, bundle.Lifestyle.Data)
	printEnvelope("growth", bundle.Growth.Success, bundle.Growth.Meta, bundle.Growth.Data)
	printEnvelope("creative", bundle.Creative.Success, bundle.Creative.Meta, bundle.Creative.Data)
	printEnvelope("suggestions", bundle.Suggestions.Success, bundle.Suggestions.Meta, bundle.Suggestions.Data)
	printEnvelope("cultural", bundle.Cultural.Success, bundle.Cultural.Meta, bundle.Cultural.Data)
	printEnvelope("personality", bundle.Personality.Success, bundle.Personality.Meta, bundle.Personality.Data)

	for _, cm := range bundle.Comments {
		fmt.Printf("  comment [%s/%s/%s]: %s\n", cm.Tone, cm.Focus, cm.Persona, cm.Text)
	}
	fmt.Println()
}

func printEnvelope(name string, success bool, meta domain.EnvelopeMeta, data any) {
	status := colorGreen + "ok" + colorReset
	if !success {
		status = colorYellow + "fallback" + colorReset
	}
	raw, _ := json.Marshal(data)
	fmt.Printf("  %-12s %s conf=%.2f ver=%s %dms\n    %s\n", name, status, meta.Confidence, meta.Version, meta.ProcessingMS, string(raw))
}

// newScriptedMock responde por dominio segun fragmentos del prompt.
func newScriptedMock() llm.LLMClient {
	m := &llm.MockClient{Response: "confidence: 0.8"}
	m.Respond("estado emocional actual", "current_mood: excited\nemotional_stability: 0.7\nstress_level: 25\npositivity: 0.85\ndominant_emotions: joy, curiosity\nconfidence: 0.9")
	m.Respond("patron de vida", "activity_level: high\nsocial_orientation: ambivert\nroutine_regularity: 0.6\npeak_period: evening\nwork_life_balance: 65\ninterests: photography, travel\nconfidence: 0.85")
	m.Respond("trayectoria de crecimiento", "stage: intermediate\ngrowth_rate: 0.7\nmomentum: 72\ntrend: rising\nstrengths: composition\nimprovement_areas: lighting\nconfidence: 0.8")
	m.Respond("perfil creativo", "creativity_score: 78\npreferred_style: artistic\ncolor_preference: warm\ncomposition_skill: 0.7\nexperimentation: 0.6\nsignature_subjects: flowers, streets\nconfidence: 0.82")
	m.Respond("proximo contenido", "next_subjects: sunset alley, rainy window\nbest_posting_hour: 19\nbest_posting_day: saturday\nchallenge_idea: shoot only reflections for a week\nfocus_area: composition\nconfidence: 0.75")
	m.Respond("contexto cultural", "season: autumn\nmood_alignment: 0.8\nrecommended_themes: harvest, golden hour\ncontext_note: autumn light suits warm palettes\nconfidence: 0.7")
	m.Respond("Big Five", "openness: 80\nconscientiousness: 60\nextraversion: 55\nagreeableness: 70\nneuroticism: 35\narchetype: creator\nsummary: curious maker with a warm eye\nconfidence: 0.78")
	m.Respond("comentario corto", "La luz de esta toma cuenta una historia propia.")
	return m
}

func sampleItems() []domain.ContentItem {
	base := time.Now().AddDate(0, -3, 0)
	items := make([]domain.ContentItem, 0, 9)
	subjects := []string{"cherry blossoms", "street corner", "morning coffee", "harbor lights", "cherry blossoms", "old bookstore", "cherry blossoms", "rainy window", "festival night"}
	for i, subj := range subjects {
		total := 50 + i*4
		items = append(items, domain.ContentItem{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("shot %02d: %s", i+1, subj),
			Comment:   "quick capture on my walk",
			Tags:      []string{"daily", "walk"},
			CreatedAt: base.AddDate(0, 0, i*7).Add(time.Duration(18+i%3) * time.Hour),
			Quality: &domain.QualityScore{
				Technical:   total - 5,
				Composition: total,
				Creativity:  total + 5,
				Engagement:  total,
				Total:       total,
				Level:       domain.LevelForTotal(total),
				Image: &domain.ImageFeatures{
					MainSubject:      subj,
					ColorTemperature: "warm",
					Mood:             "nostalgic",
					Composition:      "rule-of-thirds",
					Lighting:         "golden",
				},
			},
		})
	}
	return items
}
