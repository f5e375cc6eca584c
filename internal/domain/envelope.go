package domain

import "time"

// EnvelopeMeta acompaña cada resultado de dominio con observabilidad basica.
// Version lleva un sufijo de procedencia (-model, -mock, -fallback); los
// consumidores no deben depender de parsearlo para su logica.
type EnvelopeMeta struct {
	ProcessingMS int64   `json:"processing_ms"`
	Confidence   float64 `json:"confidence"`
	Version      string  `json:"version"`
}

// ResultEnvelope envuelve el resultado de un analisis de dominio.
// Data nunca esta ausente: incluso en fallo lleva datos de fallback,
// asi el consumidor no necesita chequear nil.
type ResultEnvelope[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data"`
	Error   string       `json:"error,omitempty"`
	Meta    EnvelopeMeta `json:"metadata"`
}

// AnalysisBundle agrupa todos los perfiles de un usuario.
// Se sobreescribe completo en cache despues de cada dominio que termina;
// una interrupcion a mitad de pipeline deja durable el subconjunto ya resuelto.
type AnalysisBundle struct {
	UserID      string    `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Emotion     ResultEnvelope[EmotionProfile]     `json:"emotion"`
	Lifestyle   ResultEnvelope[LifestyleProfile]   `json:"lifestyle"`
	Growth      ResultEnvelope[GrowthProfile]      `json:"growth"`
	Creative    ResultEnvelope[CreativeProfile]    `json:"creative"`
	Suggestions ResultEnvelope[SuggestionSet]      `json:"suggestions"`
	Cultural    ResultEnvelope[CulturalContext]    `json:"cultural_context"`
	Personality ResultEnvelope[PersonalityProfile] `json:"personality"`

	Comments []DynamicComment `json:"comments,omitempty"`
}
