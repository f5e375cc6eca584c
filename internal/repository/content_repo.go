package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"curator-llm/internal/domain"
)

// ContentRepository es la interfaz de solo lectura sobre el historial de
// contenido. El pipeline nunca escribe en el store de contenido.
type ContentRepository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.ContentItem, error)
	SearchSimilar(ctx context.Context, userID string, queryEmbedding []float32, k int) ([]string, error)
}

type PgContentRepository struct {
	pool *pgxpool.Pool
}

func NewPgContentRepository(pool *pgxpool.Pool) *PgContentRepository {
	return &PgContentRepository{pool: pool}
}

// ListByUser devuelve el historial del usuario, mas reciente primero,
// con sub-scores de calidad y descriptores de imagen si existen.
func (r *PgContentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ContentItem, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT c.id, c.title, c.comment, c.tags, c.created_at,
		       q.technical, q.composition, q.creativity, q.engagement, q.total, q.level,
		       i.main_subject, i.color_temperature, i.mood, i.composition_type, i.lighting
		FROM content_items c
		LEFT JOIN quality_scores q ON q.content_id = c.id
		LEFT JOIN image_features i ON i.content_id = c.id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		var (
			it          domain.ContentItem
			comment     sql.NullString
			technical   sql.NullInt64
			composition sql.NullInt64
			creativity  sql.NullInt64
			engagement  sql.NullInt64
			total       sql.NullInt64
			level       sql.NullString
			subject     sql.NullString
			colorTemp   sql.NullString
			mood        sql.NullString
			compType    sql.NullString
			lighting    sql.NullString
		)

		if err := rows.Scan(
			&it.ID,
			&it.Title,
			&comment,
			&it.Tags,
			&it.CreatedAt,
			&technical,
			&composition,
			&creativity,
			&engagement,
			&total,
			&level,
			&subject,
			&colorTemp,
			&mood,
			&compType,
			&lighting,
		); err != nil {
			return nil, err
		}

		it.Comment = comment.String

		if total.Valid {
			score := &domain.QualityScore{
				Technical:   int(technical.Int64),
				Composition: int(composition.Int64),
				Creativity:  int(creativity.Int64),
				Engagement:  int(engagement.Int64),
				Total:       int(total.Int64),
				Level:       level.String,
			}
			if score.Level == "" {
				score.Level = domain.LevelForTotal(score.Total)
			}
			if subject.Valid {
				score.Image = &domain.ImageFeatures{
					MainSubject:      subject.String,
					ColorTemperature: colorTemp.String,
					Mood:             mood.String,
					Composition:      compType.String,
					Lighting:         lighting.String,
				}
			}
			it.Quality = score
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// SearchSimilar devuelve titulos de contenido del usuario ordenados por
// cercania del embedding. Se usa solo como enriquecimiento de prompts.
func (r *PgContentRepository) SearchSimilar(ctx context.Context, userID string, queryEmbedding []float32, k int) ([]string, error) {
	if k <= 0 {
		k = 3
	}
	const query = `
		SELECT c.title
		FROM content_items c
		JOIN content_embeddings e ON e.content_id = c.id
		WHERE c.user_id = $1
		ORDER BY e.embedding <-> $2
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, pgvector.NewVector(queryEmbedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return titles, nil
}
