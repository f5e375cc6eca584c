package domain

// Enumeraciones permitidas por dominio. Parser y fallback respetan
// exactamente los mismos conjuntos; cualquier valor fuera cae al default.
var (
	Moods = []string{"happy", "calm", "excited", "melancholic", "anxious", "content", "energetic", "peaceful"}

	ActivityLevels     = []string{"low", "moderate", "high"}
	SocialOrientations = []string{"introvert", "ambivert", "extrovert"}
	PeakPeriods        = []string{"morning", "afternoon", "evening", "night"}

	GrowthStages = []string{"beginner", "developing", "intermediate", "advanced", "expert"}
	Trends       = []string{TrendRising, TrendImproving, TrendStable, TrendDeclining, TrendUndetermined}

	CreativeStyles   = []string{"minimalist", "vivid", "documentary", "artistic", "casual"}
	ColorPreferences = []string{"warm", "cool", "neutral", "mixed"}

	Archetypes = []string{"creator", "explorer", "sage", "caregiver", "everyman", "hero"}

	Seasons  = []string{"spring", "summer", "autumn", "winter"}
	Weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

	FocusAreas = []string{"technical", "composition", "creativity", "engagement"}
)

// EmotionProfile captura el estado emocional inferido del historial.
type EmotionProfile struct {
	CurrentMood        string   `json:"current_mood"`
	EmotionalStability float64  `json:"emotional_stability"`
	StressLevel        int      `json:"stress_level"`
	Positivity         float64  `json:"positivity"`
	DominantEmotions   []string `json:"dominant_emotions"`
	Confidence         float64  `json:"confidence"`
}

// LifestyleProfile captura patrones de vida deducidos de horarios y temas.
type LifestyleProfile struct {
	ActivityLevel     string   `json:"activity_level"`
	SocialOrientation string   `json:"social_orientation"`
	RoutineRegularity float64  `json:"routine_regularity"`
	PeakPeriod        string   `json:"peak_period"`
	WorkLifeBalance   int      `json:"work_life_balance"`
	Interests         []string `json:"interests"`
	Confidence        float64  `json:"confidence"`
}

// GrowthProfile captura la trayectoria de crecimiento del usuario.
type GrowthProfile struct {
	Stage            string   `json:"stage"`
	GrowthRate       float64  `json:"growth_rate"`
	Momentum         int      `json:"momentum"`
	Trend            string   `json:"trend"`
	Strengths        []string `json:"strengths"`
	ImprovementAreas []string `json:"improvement_areas"`
	Confidence       float64  `json:"confidence"`
}

// CreativeProfile captura el perfil creativo/fotografico.
type CreativeProfile struct {
	CreativityScore   int      `json:"creativity_score"`
	PreferredStyle    string   `json:"preferred_style"`
	ColorPreference   string   `json:"color_preference"`
	CompositionSkill  float64  `json:"composition_skill"`
	Experimentation   float64  `json:"experimentation"`
	SignatureSubjects []string `json:"signature_subjects"`
	Confidence        float64  `json:"confidence"`
}

// PersonalityProfile es la sintesis profunda sobre el modelo Big Five.
type PersonalityProfile struct {
	Openness          int     `json:"openness"`
	Conscientiousness int     `json:"conscientiousness"`
	Extraversion      int     `json:"extraversion"`
	Agreeableness     int     `json:"agreeableness"`
	Neuroticism       int     `json:"neuroticism"`
	Archetype         string  `json:"archetype"`
	Summary           string  `json:"summary"`
	Confidence        float64 `json:"confidence"`
}

// CulturalContext son las recomendaciones contextuales dependientes de la emocion.
type CulturalContext struct {
	Season            string   `json:"season"`
	MoodAlignment     float64  `json:"mood_alignment"`
	RecommendedThemes []string `json:"recommended_themes"`
	ContextNote       string   `json:"context_note"`
	Confidence        float64  `json:"confidence"`
}

// SuggestionSet son sugerencias accionables para el proximo contenido.
type SuggestionSet struct {
	NextSubjects    []string `json:"next_subjects"`
	BestPostingHour int      `json:"best_posting_hour"`
	BestPostingDay  string   `json:"best_posting_day"`
	ChallengeIdea   string   `json:"challenge_idea"`
	FocusArea       string   `json:"focus_area"`
	Confidence      float64  `json:"confidence"`
}

// DynamicComment es una variacion estilistica de comentario generada
// a partir del perfil de personalidad y el item mas reciente.
type DynamicComment struct {
	Text    string `json:"text"`
	Tone    string `json:"tone"`
	Focus   string `json:"focus"`
	Persona string `json:"persona"`
}
