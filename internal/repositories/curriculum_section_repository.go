package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

type curriculumSectionRepository struct {
	db *sql.DB
}

// NewCurriculumSectionRepository creates a new curriculum section repository
func NewCurriculumSectionRepository(db *sql.DB) *curriculumSectionRepository {
	return &curriculumSectionRepository{
		db: db,
	}
}

// GetByCourseID retrieves the sections of a course sorted by order
func (r *curriculumSectionRepository) GetByCourseID(ctx context.Context, courseID string) ([]models.CurriculumSection, error) {
	query := `
		SELECT id, course_id, title, ` + "`order`" + `
		FROM curriculum_sections
		WHERE course_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query curriculum sections: %w", err)
	}
	defer rows.Close()

	sections := []models.CurriculumSection{}
	for rows.Next() {
		var section models.CurriculumSection
		if err := rows.Scan(&section.ID, &section.CourseID, &section.Title, &section.Order); err != nil {
			return nil, fmt.Errorf("failed to scan curriculum section: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

// GetByID retrieves a section by its ID
func (r *curriculumSectionRepository) GetByID(ctx context.Context, id string) (*models.CurriculumSection, error) {
	query := `SELECT id, course_id, title, ` + "`order`" + ` FROM curriculum_sections WHERE id = ? LIMIT 1`

	var section models.CurriculumSection
	err := r.db.QueryRowContext(ctx, query, id).Scan(&section.ID, &section.CourseID, &section.Title, &section.Order)
	if err == sql.ErrNoRows {
		return nil, models.ErrSectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get curriculum section by id: %w", err)
	}

	return &section, nil
}

// Create inserts a section. When the order is taken, the section is inserted
// before the current holder and every later section moves down by one.
func (r *curriculumSectionRepository) Create(ctx context.Context, section *models.CurriculumSection) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var taken bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM curriculum_sections WHERE course_id = ? AND ` + "`order`" + ` = ?)`
		if err := tx.QueryRowContext(ctx, existsQuery, section.CourseID, section.Order).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check section order existence: %w", err)
		}

		if taken {
			shiftQuery := `
				UPDATE curriculum_sections
				SET ` + "`order`" + ` = ` + "`order`" + ` + 1
				WHERE course_id = ? AND ` + "`order`" + ` >= ?
				ORDER BY ` + "`order`" + ` DESC
			`
			if _, err := tx.ExecContext(ctx, shiftQuery, section.CourseID, section.Order); err != nil {
				return fmt.Errorf("failed to increment section order: %w", err)
			}
		}

		insertQuery := `INSERT INTO curriculum_sections (id, course_id, title, ` + "`order`" + `) VALUES (?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, insertQuery, section.ID, section.CourseID, section.Title, section.Order); err != nil {
			return fmt.Errorf("failed to create curriculum section: %w", err)
		}
		return nil
	})
}
