package domain

import "time"

const (
	QualityLevelBeginner     = "beginner"
	QualityLevelIntermediate = "intermediate"
	QualityLevelAdvanced     = "advanced"
	QualityLevelProfessional = "professional"
)

// ContentItem es una unidad del historial de contenido del usuario.
// El pipeline solo lee estos registros; nunca los modifica.
type ContentItem struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Comment   string        `json:"comment,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Quality   *QualityScore `json:"quality,omitempty"`
}

// QualityScore agrupa los sub-scores de calidad de un item (0-100 cada uno).
type QualityScore struct {
	Technical   int            `json:"technical"`
	Composition int            `json:"composition"`
	Creativity  int            `json:"creativity"`
	Engagement  int            `json:"engagement"`
	Total       int            `json:"total"`
	Level       string         `json:"level"`
	Image       *ImageFeatures `json:"image,omitempty"`
}

// ImageFeatures describe la imagen con categorias de texto libre acotado.
type ImageFeatures struct {
	MainSubject      string `json:"main_subject"`
	ColorTemperature string `json:"color_temperature"`
	Mood             string `json:"mood"`
	Composition      string `json:"composition"`
	Lighting         string `json:"lighting"`
}

// LevelForTotal traduce el score total a una etiqueta discreta de nivel.
func LevelForTotal(total int) string {
	switch {
	case total >= 85:
		return QualityLevelProfessional
	case total >= 70:
		return QualityLevelAdvanced
	case total >= 50:
		return QualityLevelIntermediate
	default:
		return QualityLevelBeginner
	}
}
