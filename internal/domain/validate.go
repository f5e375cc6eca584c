package domain

import "fmt"

// Validaciones estructurales compartidas: la salida del parser y la del
// fallback deben pasar exactamente los mismos chequeos de rango y enum.

func checkUnit(field string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s out of range [0,1]: %v", field, v)
	}
	return nil
}

func checkScore(field string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%s out of range [0,100]: %d", field, v)
	}
	return nil
}

func checkEnum(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s not in allowed set: %q", field, v)
}

func (p EmotionProfile) Validate() error {
	if err := checkEnum("current_mood", p.CurrentMood, Moods); err != nil {
		return err
	}
	if err := checkUnit("emotional_stability", p.EmotionalStability); err != nil {
		return err
	}
	if err := checkScore("stress_level", p.StressLevel); err != nil {
		return err
	}
	if err := checkUnit("positivity", p.Positivity); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p LifestyleProfile) Validate() error {
	if err := checkEnum("activity_level", p.ActivityLevel, ActivityLevels); err != nil {
		return err
	}
	if err := checkEnum("social_orientation", p.SocialOrientation, SocialOrientations); err != nil {
		return err
	}
	if err := checkUnit("routine_regularity", p.RoutineRegularity); err != nil {
		return err
	}
	if err := checkEnum("peak_period", p.PeakPeriod, PeakPeriods); err != nil {
		return err
	}
	if err := checkScore("work_life_balance", p.WorkLifeBalance); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p GrowthProfile) Validate() error {
	if err := checkEnum("stage", p.Stage, GrowthStages); err != nil {
		return err
	}
	if err := checkUnit("growth_rate", p.GrowthRate); err != nil {
		return err
	}
	if err := checkScore("momentum", p.Momentum); err != nil {
		return err
	}
	if err := checkEnum("trend", p.Trend, Trends); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p CreativeProfile) Validate() error {
	if err := checkScore("creativity_score", p.CreativityScore); err != nil {
		return err
	}
	if err := checkEnum("preferred_style", p.PreferredStyle, CreativeStyles); err != nil {
		return err
	}
	if err := checkEnum("color_preference", p.ColorPreference, ColorPreferences); err != nil {
		return err
	}
	if err := checkUnit("composition_skill", p.CompositionSkill); err != nil {
		return err
	}
	if err := checkUnit("experimentation", p.Experimentation); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p PersonalityProfile) Validate() error {
	for field, v := range map[string]int{
		"openness":          p.Openness,
		"conscientiousness": p.Conscientiousness,
		"extraversion":      p.Extraversion,
		"agreeableness":     p.Agreeableness,
		"neuroticism":       p.Neuroticism,
	} {
		if err := checkScore(field, v); err != nil {
			return err
		}
	}
	if err := checkEnum("archetype", p.Archetype, Archetypes); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p CulturalContext) Validate() error {
	if err := checkEnum("season", p.Season, Seasons); err != nil {
		return err
	}
	if err := checkUnit("mood_alignment", p.MoodAlignment); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}

func (p SuggestionSet) Validate() error {
	if p.BestPostingHour < 0 || p.BestPostingHour > 23 {
		return fmt.Errorf("best_posting_hour out of range [0,23]: %d", p.BestPostingHour)
	}
	if err := checkEnum("best_posting_day", p.BestPostingDay, Weekdays); err != nil {
		return err
	}
	if err := checkEnum("focus_area", p.FocusArea, FocusAreas); err != nil {
		return err
	}
	return checkUnit("confidence", p.Confidence)
}
