package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

type lessonResourceRepository struct {
	db *sql.DB
}

// NewLessonResourceRepository creates a new lesson resource repository
func NewLessonResourceRepository(db *sql.DB) *lessonResourceRepository {
	return &lessonResourceRepository{
		db: db,
	}
}

// GetByLessonID retrieves the resources of a lesson sorted by order
func (r *lessonResourceRepository) GetByLessonID(ctx context.Context, lessonID string) ([]models.LessonResource, error) {
	query := `
		SELECT id, lesson_id, title, type, size_text, url, ` + "`order`" + `
		FROM lesson_resources
		WHERE lesson_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson resources: %w", err)
	}
	defer rows.Close()

	resources := []models.LessonResource{}
	for rows.Next() {
		var resource models.LessonResource
		var sizeText sql.NullString
		err := rows.Scan(
			&resource.ID,
			&resource.LessonID,
			&resource.Title,
			&resource.Type,
			&sizeText,
			&resource.URL,
			&resource.Order,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson resource: %w", err)
		}
		resource.SizeText = stringPtr(sizeText)
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return resources, nil
}

// Create inserts a resource, shifting later resources of the lesson when the order is taken
func (r *lessonResourceRepository) Create(ctx context.Context, resource *models.LessonResource) error {
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var taken bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM lesson_resources WHERE lesson_id = ? AND ` + "`order`" + ` = ?)`
		if err := tx.QueryRowContext(ctx, existsQuery, resource.LessonID, resource.Order).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check resource order existence: %w", err)
		}

		if taken {
			shiftQuery := `
				UPDATE lesson_resources
				SET ` + "`order`" + ` = ` + "`order`" + ` + 1
				WHERE lesson_id = ? AND ` + "`order`" + ` >= ?
				ORDER BY ` + "`order`" + ` DESC
			`
			if _, err := tx.ExecContext(ctx, shiftQuery, resource.LessonID, resource.Order); err != nil {
				return fmt.Errorf("failed to increment resource order: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO lesson_resources (id, lesson_id, title, type, size_text, url, ` + "`order`" + `)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, insertQuery,
			resource.ID,
			resource.LessonID,
			resource.Title,
			resource.Type,
			nullString(resource.SizeText),
			resource.URL,
			resource.Order,
		)
		if err != nil {
			return fmt.Errorf("failed to create lesson resource: %w", err)
		}
		return nil
	})
}
