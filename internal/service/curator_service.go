package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"curator-llm/internal/domain"
	"curator-llm/internal/llm"
	"curator-llm/internal/repository"
)

const defaultCommentCount = 3

// CuratorService orquesta el pipeline completo de analisis:
// extraccion → prompt → modelo → parse-o-fallback → envelope → cache.
// Los dominios independientes corren en paralelo; la falla de uno nunca
// aborta a sus hermanos, cada uno se resuelve con fallback en su propio borde.
type CuratorService struct {
	llmClient   llm.LLMClient
	cache       BundleCache
	contentRepo repository.ContentRepository
	extractor   FeatureExtractor
	prompts     PromptBuilder
	parser      ResponseParser
	fallback    *FallbackSynthesizer
	stylist     *CommentStylist
	logger      *zap.Logger
	version     string
	llmTimeout  time.Duration
	comments    int
}

func NewCuratorService(
	llmClient llm.LLMClient,
	cache BundleCache,
	contentRepo repository.ContentRepository,
	fallback *FallbackSynthesizer,
	stylist *CommentStylist,
	logger *zap.Logger,
	version string,
	llmTimeout time.Duration,
) *CuratorService {
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	if version == "" {
		version = "1.0.0"
	}
	return &CuratorService{
		llmClient:   llmClient,
		cache:       cache,
		contentRepo: contentRepo,
		extractor:   NewFeatureExtractor(),
		fallback:    fallback,
		stylist:     stylist,
		logger:      logger,
		version:     version,
		llmTimeout:  llmTimeout,
		comments:    defaultCommentCount,
	}
}

// RunFullAnalysis ejecuta todos los dominios para un usuario y devuelve el
// bundle resultante. Nunca devuelve error por fallas del modelo: la
// degradacion total es un bundle 100% fallback con confianza baja.
func (s *CuratorService) RunFullAnalysis(ctx context.Context, userID string, items []domain.ContentItem) (domain.AnalysisBundle, error) {
	features := s.extractor.Extract(items)
	literals := topLiterals(features)

	bundle := domain.AnalysisBundle{
		UserID:      userID,
		GeneratedAt: time.Now().UTC(),
	}

	// Las escrituras al bundle y el persist van bajo el mismo mutex:
	// cada dominio escribe campos disjuntos, pero el guardado del bundle
	// completo debe ser de un solo escritor a la vez.
	var mu sync.Mutex
	commit := func(apply func(*domain.AnalysisBundle)) {
		mu.Lock()
		defer mu.Unlock()
		apply(&bundle)
		s.persist(ctx, userID, bundle)
	}

	// Fan-out de los dominios independientes.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env := analyzeDomain(gctx, s, s.prompts.BuildEmotionPrompt(features, literals),
			s.parser.ParseEmotion, s.fallback.Emotion,
			func(p domain.EmotionProfile) float64 { return p.Confidence })
		commit(func(b *domain.AnalysisBundle) { b.Emotion = env })
		return nil
	})
	g.Go(func() error {
		env := analyzeDomain(gctx, s, s.prompts.BuildLifestylePrompt(features, literals),
			s.parser.ParseLifestyle, s.fallback.Lifestyle,
			func(p domain.LifestyleProfile) float64 { return p.Confidence })
		commit(func(b *domain.AnalysisBundle) { b.Lifestyle = env })
		return nil
	})
	g.Go(func() error {
		env := analyzeDomain(gctx, s, s.prompts.BuildGrowthPrompt(features, literals),
			s.parser.ParseGrowth, s.fallback.Growth,
			func(p domain.GrowthProfile) float64 { return p.Confidence })
		// La tendencia viene del extractor, no del modelo: es determinista.
		env.Data.Trend = features.ScoreTrend
		commit(func(b *domain.AnalysisBundle) { b.Growth = env })
		return nil
	})
	g.Go(func() error {
		env := analyzeDomain(gctx, s, s.prompts.BuildCreativePrompt(features, literals),
			s.parser.ParseCreative, s.fallback.Creative,
			func(p domain.CreativeProfile) float64 { return p.Confidence })
		commit(func(b *domain.AnalysisBundle) { b.Creative = env })
		return nil
	})
	g.Go(func() error {
		similar := s.similarTitles(gctx, userID, features)
		env := analyzeDomain(gctx, s, s.prompts.BuildSuggestionsPrompt(features, literals, similar),
			s.parser.ParseSuggestions,
			func() domain.SuggestionSet { return s.fallback.Suggestions(features) },
			func(p domain.SuggestionSet) float64 { return p.Confidence })
		commit(func(b *domain.AnalysisBundle) { b.Suggestions = env })
		return nil
	})
	// Ningun dominio devuelve error; el join es solo la barrera.
	_ = g.Wait()

	// Paso dependiente: contexto cultural estrictamente despues de emocion.
	cultural := analyzeDomain(ctx, s, s.prompts.BuildCulturalPrompt(features, bundle.Emotion.Data),
		s.parser.ParseCultural, s.fallback.Cultural,
		func(p domain.CulturalContext) float64 { return p.Confidence })
	commit(func(b *domain.AnalysisBundle) { b.Cultural = cultural })

	// Sintesis profunda, best-effort: su falla no esconde lo ya completado.
	personality := analyzeDomain(ctx, s, s.prompts.BuildPersonalityPrompt(
		features, bundle.Emotion.Data, bundle.Lifestyle.Data, bundle.Creative.Data),
		s.parser.ParsePersonality, s.fallback.Personality,
		func(p domain.PersonalityProfile) float64 { return p.Confidence })
	commit(func(b *domain.AnalysisBundle) { b.Personality = personality })

	// Comentarios dinamicos, tambien best-effort.
	comments := s.dynamicComments(ctx, personality.Data, items)
	if len(comments) > 0 {
		commit(func(b *domain.AnalysisBundle) { b.Comments = comments })
	}

	return bundle, nil
}

// GetCached restaura el bundle durable del usuario si existe.
// Fallas de persistencia se loguean y se tratan como cache miss.
func (s *CuratorService) GetCached(ctx context.Context, userID string) (domain.AnalysisBundle, bool) {
	if s.cache == nil {
		return domain.AnalysisBundle{}, false
	}
	bundle, ok, err := s.cache.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("bundle load failed", zap.Error(err), zap.String("user_id", userID))
		return domain.AnalysisBundle{}, false
	}
	return bundle, ok
}

// Invalidate borra el bundle durable; el proximo analisis parte de cero.
func (s *CuratorService) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, userID)
}

// analyzeDomain corre un dominio con aislamiento de fallas: cualquier error
// del modelo se resuelve aqui mismo con fallback y queda como dato en el
// envelope, nunca como error propagado.
func analyzeDomain[T any](
	ctx context.Context,
	s *CuratorService,
	prompt string,
	parse func(string) T,
	synth func() T,
	confOf func(T) float64,
) domain.ResultEnvelope[T] {
	start := time.Now()

	fail := func(err error) domain.ResultEnvelope[T] {
		data := synth()
		return domain.ResultEnvelope[T]{
			Success: false,
			Data:    data,
			Error:   err.Error(),
			Meta: domain.EnvelopeMeta{
				ProcessingMS: time.Since(start).Milliseconds(),
				Confidence:   confOf(data),
				Version:      s.version + "-fallback",
			},
		}
	}

	if s.llmClient == nil || !s.llmClient.IsAvailable() {
		return fail(llm.ErrUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	text, err := s.llmClient.Generate(callCtx, prompt)
	if err != nil {
		s.logger.Warn("llm generate failed, using fallback", zap.Error(err))
		return fail(err)
	}

	data := parse(text)
	return domain.ResultEnvelope[T]{
		Success: true,
		Data:    data,
		Meta: domain.EnvelopeMeta{
			ProcessingMS: time.Since(start).Milliseconds(),
			Confidence:   confOf(data),
			Version:      s.version + "-" + s.provenance(),
		},
	}
}

// provenance distingue cliente real de doble de prueba para el sufijo de
// version. Es solo observabilidad; ningun consumidor parsea el sufijo.
func (s *CuratorService) provenance() string {
	if m, ok := s.llmClient.(interface{ IsMock() bool }); ok && m.IsMock() {
		return "mock"
	}
	return "model"
}

// similarTitles recupera titulos de contenido pasado parecido para enriquecer
// el prompt de sugerencias. Cualquier falla descarta el enriquecimiento.
func (s *CuratorService) similarTitles(ctx context.Context, userID string, features domain.FeatureSummary) []string {
	if s.contentRepo == nil || len(features.TopSubjects) == 0 {
		return nil
	}
	embedder, ok := s.llmClient.(llm.Embedder)
	if !ok || !s.llmClient.IsAvailable() {
		return nil
	}

	vec, err := embedder.Embed(ctx, strings.Join(features.TopSubjects, " "))
	if err != nil {
		s.logger.Debug("embed for similarity failed", zap.Error(err))
		return nil
	}
	titles, err := s.contentRepo.SearchSimilar(ctx, userID, vec, 3)
	if err != nil {
		s.logger.Debug("similar content search failed", zap.Error(err))
		return nil
	}
	return titles
}

// dynamicComments genera K variaciones estilisticas sobre el item mas reciente.
func (s *CuratorService) dynamicComments(ctx context.Context, personality domain.PersonalityProfile, items []domain.ContentItem) []domain.DynamicComment {
	if len(items) == 0 || s.stylist == nil {
		return nil
	}
	if s.llmClient == nil || !s.llmClient.IsAvailable() {
		return nil
	}

	latest := items[0]
	for _, it := range items[1:] {
		if it.CreatedAt.After(latest.CreatedAt) {
			latest = it
		}
	}

	var out []domain.DynamicComment
	for _, style := range s.stylist.DrawStyles(s.comments) {
		callCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
		text, err := s.llmClient.Generate(callCtx, s.prompts.BuildCommentPrompt(personality, latest, style))
		cancel()
		if err != nil {
			// Una variacion fallida se omite; las demas siguen.
			if !errors.Is(err, context.Canceled) {
				s.logger.Warn("dynamic comment failed", zap.Error(err))
			}
			continue
		}
		text = strings.TrimSpace(cleanModelResponse(text))
		if text == "" {
			continue
		}
		out = append(out, domain.DynamicComment{
			Text:    text,
			Tone:    style.Tone,
			Focus:   style.Focus,
			Persona: style.Persona,
		})
	}
	return out
}

func (s *CuratorService) persist(ctx context.Context, userID string, bundle domain.AnalysisBundle) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, userID, bundle); err != nil {
		s.logger.Warn("bundle save failed", zap.Error(err), zap.String("user_id", userID))
	}
}

// topLiterals junta los valores literales que los prompts citan verbatim:
// el titulo mas reciente y los sujetos mas frecuentes.
func topLiterals(features domain.FeatureSummary) []string {
	var out []string
	if features.LatestTitle != "" {
		out = append(out, features.LatestTitle)
	}
	for _, subj := range features.TopSubjects {
		if len(out) >= 3 {
			break
		}
		out = append(out, subj)
	}
	return out
}
