package service

import (
	"fmt"
	"strings"

	"curator-llm/internal/domain"
)

// PromptBuilder arma los prompts por dominio que se envian al LLM curador.
// Cada prompt lleva el esquema de salida (claves, rangos y enums permitidos)
// y sustituye literalmente los valores top del contenido del usuario.
type PromptBuilder struct{}

// DefaultPromptBuilder permite uso directo sin instanciar.
var DefaultPromptBuilder = PromptBuilder{}

const promptOutputRules = `Devuelve SOLO lineas con formato "clave: valor", una por linea, sin comentarios extra.
No uses JSON ni markdown. Las listas van separadas por comas.`

func writeLiteralsBlock(sb *strings.Builder, literals []string) {
	if len(literals) == 0 {
		return
	}
	if len(literals) > 3 {
		literals = literals[:3]
	}
	sb.WriteString("=== CONTENIDO RECIENTE DEL USUARIO (VALORES LITERALES) ===\n")
	for _, l := range literals {
		sb.WriteString("- ")
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeFeaturesBlock(sb *strings.Builder, f domain.FeatureSummary) {
	sb.WriteString("=== RESUMEN DEL HISTORIAL ===\n")
	sb.WriteString(fmt.Sprintf("- items analizados: %d\n", f.ItemCount))
	sb.WriteString(fmt.Sprintf("- tendencia de calidad: %s\n", f.ScoreTrend))
	if len(f.TopSubjects) > 0 {
		sb.WriteString(fmt.Sprintf("- sujetos frecuentes: %s\n", strings.Join(f.TopSubjects, ", ")))
	}
	if len(f.TopMoods) > 0 {
		sb.WriteString(fmt.Sprintf("- moods frecuentes: %s\n", strings.Join(f.TopMoods, ", ")))
	}
	if len(f.TopTags) > 0 {
		sb.WriteString(fmt.Sprintf("- tags frecuentes: %s\n", strings.Join(f.TopTags, ", ")))
	}
	sb.WriteString(fmt.Sprintf("- hora pico de publicacion: %d:00\n", f.PeakHour()))
	if f.Insufficient {
		sb.WriteString("- AVISO: historial insuficiente; se conservador con la confianza.\n")
	}
	sb.WriteString("\n")
}

func writeSchemaBlock(sb *strings.Builder, lines []string) {
	sb.WriteString("=== ESQUEMA DE SALIDA (OBLIGATORIO) ===\n")
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString(promptOutputRules)
	sb.WriteString("\n")
}

func enumSchema(key string, allowed []string) string {
	return fmt.Sprintf("%s: uno de [%s]", key, strings.Join(allowed, "|"))
}

// BuildEmotionPrompt arma el prompt del dominio emocional.
func (PromptBuilder) BuildEmotionPrompt(f domain.FeatureSummary, literals []string) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal que observa el historial creativo de un usuario.\n")
	sb.WriteString("Infiere su estado emocional actual a partir del contenido.\n\n")
	writeLiteralsBlock(&sb, literals)
	writeFeaturesBlock(&sb, f)
	writeSchemaBlock(&sb, []string{
		enumSchema("current_mood", domain.Moods),
		"emotional_stability: decimal entre 0 y 1",
		"stress_level: entero entre 0 y 100",
		"positivity: decimal entre 0 y 1",
		"dominant_emotions: lista de 1 a 3 emociones",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildLifestylePrompt arma el prompt del patron de vida.
func (PromptBuilder) BuildLifestylePrompt(f domain.FeatureSummary, literals []string) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal. Deduce el patron de vida del usuario\n")
	sb.WriteString("a partir de sus horarios de publicacion y temas recurrentes.\n\n")
	writeLiteralsBlock(&sb, literals)
	writeFeaturesBlock(&sb, f)
	sb.WriteString("=== HISTOGRAMA DE HORARIOS ===\n")
	sb.WriteString(fmt.Sprintf("- por hora (0-23): %v\n", f.HourHistogram))
	sb.WriteString(fmt.Sprintf("- por dia de semana (0=domingo): %v\n\n", f.WeekdayHistogram))
	writeSchemaBlock(&sb, []string{
		enumSchema("activity_level", domain.ActivityLevels),
		enumSchema("social_orientation", domain.SocialOrientations),
		"routine_regularity: decimal entre 0 y 1",
		enumSchema("peak_period", domain.PeakPeriods),
		"work_life_balance: entero entre 0 y 100",
		"interests: lista de intereses",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildGrowthPrompt arma el prompt de trayectoria de crecimiento.
func (PromptBuilder) BuildGrowthPrompt(f domain.FeatureSummary, literals []string) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal. Evalua la trayectoria de crecimiento creativo del usuario.\n\n")
	writeLiteralsBlock(&sb, literals)
	writeFeaturesBlock(&sb, f)
	sb.WriteString(fmt.Sprintf("Medias de score por fase (cronologicas): %.1f, %.1f, %.1f\n\n",
		f.PhaseMeans[0], f.PhaseMeans[1], f.PhaseMeans[2]))
	writeSchemaBlock(&sb, []string{
		enumSchema("stage", domain.GrowthStages),
		"growth_rate: decimal entre 0 y 1",
		"momentum: entero entre 0 y 100",
		enumSchema("trend", domain.Trends),
		"strengths: lista de fortalezas",
		"improvement_areas: lista de areas a mejorar",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildCreativePrompt arma el prompt del perfil creativo/fotografico.
func (PromptBuilder) BuildCreativePrompt(f domain.FeatureSummary, literals []string) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal con ojo fotografico. Describe el perfil creativo del usuario.\n\n")
	writeLiteralsBlock(&sb, literals)
	writeFeaturesBlock(&sb, f)
	writeSchemaBlock(&sb, []string{
		"creativity_score: entero entre 0 y 100",
		enumSchema("preferred_style", domain.CreativeStyles),
		enumSchema("color_preference", domain.ColorPreferences),
		"composition_skill: decimal entre 0 y 1",
		"experimentation: decimal entre 0 y 1",
		"signature_subjects: lista de sujetos caracteristicos",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildSuggestionsPrompt arma el prompt de sugerencias; similarTitles es
// enriquecimiento opcional con contenido parecido recuperado por similitud.
func (PromptBuilder) BuildSuggestionsPrompt(f domain.FeatureSummary, literals, similarTitles []string) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal. Propone el proximo contenido para el usuario.\n\n")
	writeLiteralsBlock(&sb, literals)
	writeFeaturesBlock(&sb, f)
	if len(similarTitles) > 0 {
		sb.WriteString("=== CONTENIDO PASADO SIMILAR ===\n")
		for _, t := range similarTitles {
			sb.WriteString("- ")
			sb.WriteString(t)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	writeSchemaBlock(&sb, []string{
		"next_subjects: lista de 1 a 3 sujetos sugeridos",
		"best_posting_hour: entero entre 0 y 23",
		enumSchema("best_posting_day", domain.Weekdays),
		"challenge_idea: un reto creativo en una frase",
		enumSchema("focus_area", domain.FocusAreas),
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildCulturalPrompt arma el prompt de contexto cultural.
// Depende del perfil emocional ya resuelto (real o fallback).
func (PromptBuilder) BuildCulturalPrompt(f domain.FeatureSummary, emotion domain.EmotionProfile) string {
	var sb strings.Builder
	sb.WriteString("Eres un curador personal. Sugiere temas y contexto cultural alineados\n")
	sb.WriteString("con el estado emocional del usuario y la epoca del anio.\n\n")
	writeFeaturesBlock(&sb, f)
	sb.WriteString("=== ESTADO EMOCIONAL DETECTADO ===\n")
	sb.WriteString(fmt.Sprintf("- mood actual: %s\n", emotion.CurrentMood))
	sb.WriteString(fmt.Sprintf("- positividad: %.2f\n", emotion.Positivity))
	sb.WriteString(fmt.Sprintf("- nivel de estres: %d/100\n\n", emotion.StressLevel))
	writeSchemaBlock(&sb, []string{
		enumSchema("season", domain.Seasons),
		"mood_alignment: decimal entre 0 y 1",
		"recommended_themes: lista de 2 a 4 temas",
		"context_note: una frase de contexto",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildPersonalityPrompt arma la sintesis profunda con todo lo previo.
func (PromptBuilder) BuildPersonalityPrompt(
	f domain.FeatureSummary,
	emotion domain.EmotionProfile,
	lifestyle domain.LifestyleProfile,
	creative domain.CreativeProfile,
) string {
	var sb strings.Builder
	sb.WriteString("Eres un psicologo experto. Sintetiza la personalidad del usuario (modelo Big Five)\n")
	sb.WriteString("combinando todos los analisis previos.\n\n")
	writeFeaturesBlock(&sb, f)
	sb.WriteString("=== ANALISIS PREVIOS ===\n")
	sb.WriteString(fmt.Sprintf("- emocion: mood=%s estabilidad=%.2f positividad=%.2f\n",
		emotion.CurrentMood, emotion.EmotionalStability, emotion.Positivity))
	sb.WriteString(fmt.Sprintf("- vida: actividad=%s orientacion=%s pico=%s\n",
		lifestyle.ActivityLevel, lifestyle.SocialOrientation, lifestyle.PeakPeriod))
	sb.WriteString(fmt.Sprintf("- creativo: score=%d estilo=%s experimentacion=%.2f\n\n",
		creative.CreativityScore, creative.PreferredStyle, creative.Experimentation))
	writeSchemaBlock(&sb, []string{
		"openness: entero entre 0 y 100",
		"conscientiousness: entero entre 0 y 100",
		"extraversion: entero entre 0 y 100",
		"agreeableness: entero entre 0 y 100",
		"neuroticism: entero entre 0 y 100",
		enumSchema("archetype", domain.Archetypes),
		"summary: una frase que resuma la personalidad",
		"confidence: decimal entre 0 y 1",
	})
	return sb.String()
}

// BuildCommentPrompt arma el prompt de una variacion de comentario dinamico.
func (PromptBuilder) BuildCommentPrompt(p domain.PersonalityProfile, latest domain.ContentItem, style StyleTuple) string {
	var sb strings.Builder
	sb.WriteString("Escribe UN comentario corto (1-2 frases) sobre el contenido mas reciente del usuario.\n\n")
	sb.WriteString("=== CONTENIDO ===\n")
	sb.WriteString(fmt.Sprintf("- titulo: %s\n", latest.Title))
	if latest.Comment != "" {
		sb.WriteString(fmt.Sprintf("- comentario del autor: %s\n", latest.Comment))
	}
	sb.WriteString("\n=== PERFIL DEL USUARIO ===\n")
	sb.WriteString(fmt.Sprintf("- arquetipo: %s\n", p.Archetype))
	if p.Summary != "" {
		sb.WriteString(fmt.Sprintf("- resumen: %s\n", p.Summary))
	}
	sb.WriteString("\n=== ESTILO PEDIDO ===\n")
	sb.WriteString(fmt.Sprintf("- tono: %s\n", style.Tone))
	sb.WriteString(fmt.Sprintf("- foco: %s\n", style.Focus))
	sb.WriteString(fmt.Sprintf("- persona: %s\n", style.Persona))
	sb.WriteString("\nDevuelve SOLO el texto del comentario, sin comillas ni prefijos.\n")
	return sb.String()
}
