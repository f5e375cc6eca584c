package service

import (
	"strconv"
	"strings"

	"curator-llm/internal/domain"
)

// ResponseParser decodifica el texto libre del LLM en perfiles tipados.
// Es total: ningun input produce error. Cada campo se decodifica de forma
// independiente; un campo malformado degrada solo ese campo a su default.
type ResponseParser struct{}

// DefaultResponseParser permite uso directo sin instanciar.
var DefaultResponseParser = ResponseParser{}

// parseKeyValues tokeniza el texto linea por linea en un mapa clave→valor.
// Si una clave se repite, la ultima ocurrencia gana.
func parseKeyValues(text string) map[string]string {
	kv := make(map[string]string)
	for _, line := range strings.Split(cleanModelResponse(text), "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := normalizeKey(line[:idx])
		if key == "" {
			continue
		}
		// Tolera salidas con forma JSON: quita comillas y comas colgantes.
		val := strings.TrimSpace(line[idx+1:])
		val = strings.TrimSpace(strings.Trim(val, `",`))
		kv[key] = val
	}
	return kv
}

func normalizeKey(raw string) string {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.TrimLeft(k, "-*• \t")
	k = strings.Trim(k, `"'`)
	k = strings.ReplaceAll(strings.TrimSpace(k), " ", "_")
	return k
}

// clampedFloat decodifica un float: quita todo salvo digitos y punto,
// parsea y acota en [min,max]; ante ausencia o fallo devuelve def.
func clampedFloat(kv map[string]string, key string, def, min, max float64) float64 {
	raw, ok := kv[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(stripNonNumeric(raw), 64)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampedInt es la variante entera de clampedFloat.
func clampedInt(kv map[string]string, key string, def, min, max int) int {
	raw, ok := kv[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(stripNonNumeric(raw), 64)
	if err != nil {
		return def
	}
	n := int(v)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// enumValue acepta el valor solo si pertenece al conjunto permitido.
func enumValue(kv map[string]string, key string, allowed []string, def string) string {
	raw, ok := kv[key]
	if !ok {
		return def
	}
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if v == a {
			return a
		}
	}
	return def
}

// stringList separa un valor tipo lista: quita corchetes, separa por coma,
// recorta cada elemento y descarta vacios.
func stringList(kv map[string]string, key string) []string {
	raw, ok := kv[key]
	if !ok {
		return []string{}
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
	}
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"'`))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseEmotion decodifica el perfil emocional.
func (ResponseParser) ParseEmotion(text string) domain.EmotionProfile {
	kv := parseKeyValues(text)
	return domain.EmotionProfile{
		CurrentMood:        enumValue(kv, "current_mood", domain.Moods, "calm"),
		EmotionalStability: clampedFloat(kv, "emotional_stability", 0.5, 0, 1),
		StressLevel:        clampedInt(kv, "stress_level", 30, 0, 100),
		Positivity:         clampedFloat(kv, "positivity", 0.6, 0, 1),
		DominantEmotions:   stringList(kv, "dominant_emotions"),
		Confidence:         clampedFloat(kv, "confidence", 0.6, 0, 1),
	}
}

// ParseLifestyle decodifica el patron de vida.
func (ResponseParser) ParseLifestyle(text string) domain.LifestyleProfile {
	kv := parseKeyValues(text)
	return domain.LifestyleProfile{
		ActivityLevel:     enumValue(kv, "activity_level", domain.ActivityLevels, "moderate"),
		SocialOrientation: enumValue(kv, "social_orientation", domain.SocialOrientations, "ambivert"),
		RoutineRegularity: clampedFloat(kv, "routine_regularity", 0.5, 0, 1),
		PeakPeriod:        enumValue(kv, "peak_period", domain.PeakPeriods, "evening"),
		WorkLifeBalance:   clampedInt(kv, "work_life_balance", 50, 0, 100),
		Interests:         stringList(kv, "interests"),
		Confidence:        clampedFloat(kv, "confidence", 0.6, 0, 1),
	}
}

// ParseGrowth decodifica la trayectoria de crecimiento.
func (ResponseParser) ParseGrowth(text string) domain.GrowthProfile {
	kv := parseKeyValues(text)
	return domain.GrowthProfile{
		Stage:            enumValue(kv, "stage", domain.GrowthStages, "developing"),
		GrowthRate:       clampedFloat(kv, "growth_rate", 0.5, 0, 1),
		Momentum:         clampedInt(kv, "momentum", 50, 0, 100),
		Trend:            enumValue(kv, "trend", domain.Trends, domain.TrendStable),
		Strengths:        stringList(kv, "strengths"),
		ImprovementAreas: stringList(kv, "improvement_areas"),
		Confidence:       clampedFloat(kv, "confidence", 0.5, 0, 1),
	}
}

// ParseCreative decodifica el perfil creativo.
func (ResponseParser) ParseCreative(text string) domain.CreativeProfile {
	kv := parseKeyValues(text)
	return domain.CreativeProfile{
		CreativityScore:   clampedInt(kv, "creativity_score", 50, 0, 100),
		PreferredStyle:    enumValue(kv, "preferred_style", domain.CreativeStyles, "casual"),
		ColorPreference:   enumValue(kv, "color_preference", domain.ColorPreferences, "mixed"),
		CompositionSkill:  clampedFloat(kv, "composition_skill", 0.5, 0, 1),
		Experimentation:   clampedFloat(kv, "experimentation", 0.5, 0, 1),
		SignatureSubjects: stringList(kv, "signature_subjects"),
		Confidence:        clampedFloat(kv, "confidence", 0.65, 0, 1),
	}
}

// ParsePersonality decodifica la sintesis Big Five.
func (ResponseParser) ParsePersonality(text string) domain.PersonalityProfile {
	kv := parseKeyValues(text)
	return domain.PersonalityProfile{
		Openness:          clampedInt(kv, "openness", 50, 0, 100),
		Conscientiousness: clampedInt(kv, "conscientiousness", 50, 0, 100),
		Extraversion:      clampedInt(kv, "extraversion", 50, 0, 100),
		Agreeableness:     clampedInt(kv, "agreeableness", 50, 0, 100),
		Neuroticism:       clampedInt(kv, "neuroticism", 50, 0, 100),
		Archetype:         enumValue(kv, "archetype", domain.Archetypes, "explorer"),
		Summary:           stringValue(kv, "summary"),
		Confidence:        clampedFloat(kv, "confidence", 0.5, 0, 1),
	}
}

// ParseCultural decodifica las recomendaciones contextuales.
func (ResponseParser) ParseCultural(text string) domain.CulturalContext {
	kv := parseKeyValues(text)
	return domain.CulturalContext{
		Season:            enumValue(kv, "season", domain.Seasons, "spring"),
		MoodAlignment:     clampedFloat(kv, "mood_alignment", 0.5, 0, 1),
		RecommendedThemes: stringList(kv, "recommended_themes"),
		ContextNote:       stringValue(kv, "context_note"),
		Confidence:        clampedFloat(kv, "confidence", 0.55, 0, 1),
	}
}

// ParseSuggestions decodifica las sugerencias de proximo contenido.
func (ResponseParser) ParseSuggestions(text string) domain.SuggestionSet {
	kv := parseKeyValues(text)
	return domain.SuggestionSet{
		NextSubjects:    stringList(kv, "next_subjects"),
		BestPostingHour: clampedInt(kv, "best_posting_hour", 18, 0, 23),
		BestPostingDay:  enumValue(kv, "best_posting_day", domain.Weekdays, "sunday"),
		ChallengeIdea:   stringValue(kv, "challenge_idea"),
		FocusArea:       enumValue(kv, "focus_area", domain.FocusAreas, "creativity"),
		Confidence:      clampedFloat(kv, "confidence", 0.5, 0, 1),
	}
}

func stringValue(kv map[string]string, key string) string {
	return strings.TrimSpace(kv[key])
}
