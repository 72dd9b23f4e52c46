package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetOutlineByCourseID retrieves the lessons of a course without their content, sorted by order
func (r *lessonRepository) GetOutlineByCourseID(ctx context.Context, courseID string) ([]models.Lesson, error) {
	query := `
		SELECT id, course_id, curriculum_section_id, title, duration, ` + "`order`" + `, type
		FROM lessons
		WHERE course_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var lesson models.Lesson
		var sectionID sql.NullString
		var lessonType string
		err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&sectionID,
			&lesson.Title,
			&lesson.Duration,
			&lesson.Order,
			&lessonType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.CurriculumSectionID = stringPtr(sectionID)
		lesson.Type = models.ParseLessonType(lessonType)
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetWithContext retrieves a lesson together with its course title and section title
func (r *lessonRepository) GetWithContext(ctx context.Context, id string) (*models.LessonWithContext, error) {
	query := `
		SELECT
			l.id,
			l.course_id,
			l.curriculum_section_id,
			l.title,
			l.description,
			l.content,
			l.video_url,
			l.duration,
			l.` + "`order`" + `,
			l.type,
			l.notes,
			c.title,
			cs.title
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		LEFT JOIN curriculum_sections cs ON cs.id = l.curriculum_section_id
		WHERE l.id = ?
		LIMIT 1
	`

	var lesson models.LessonWithContext
	var sectionID, description, sectionTitle sql.NullString
	var lessonType string
	var notes []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&sectionID,
		&lesson.Title,
		&description,
		&lesson.Content,
		&lesson.VideoURL,
		&lesson.Duration,
		&lesson.Order,
		&lessonType,
		&notes,
		&lesson.CourseTitle,
		&sectionTitle,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson with context: %w", err)
	}

	lesson.CurriculumSectionID = stringPtr(sectionID)
	lesson.Description = stringPtr(description)
	lesson.SectionTitle = stringPtr(sectionTitle)
	lesson.Type = models.ParseLessonType(lessonType)
	if lesson.Notes, err = decodeList(notes); err != nil {
		return nil, fmt.Errorf("failed to decode lesson notes: %w", err)
	}

	return &lesson, nil
}

// GetSiblings retrieves the navigation keys of every lesson in a course, sorted by order
func (r *lessonRepository) GetSiblings(ctx context.Context, courseID string) ([]models.LessonSibling, error) {
	query := `
		SELECT id, ` + "`order`" + `
		FROM lessons
		WHERE course_id = ?
		ORDER BY ` + "`order`" + ` ASC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sibling lessons: %w", err)
	}
	defer rows.Close()

	siblings := []models.LessonSibling{}
	for rows.Next() {
		var sibling models.LessonSibling
		if err := rows.Scan(&sibling.ID, &sibling.Order); err != nil {
			return nil, fmt.Errorf("failed to scan sibling lesson: %w", err)
		}
		siblings = append(siblings, sibling)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return siblings, nil
}

// GetCourseID returns the course a lesson belongs to
func (r *lessonRepository) GetCourseID(ctx context.Context, id string) (string, error) {
	query := `SELECT course_id FROM lessons WHERE id = ? LIMIT 1`

	var courseID string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&courseID)
	if err == sql.ErrNoRows {
		return "", models.ErrLessonNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get lesson course: %w", err)
	}

	return courseID, nil
}

// Create inserts a lesson. When the order is taken within the course, the lesson
// is inserted before the current holder and every later lesson moves down by one.
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	notes, err := encodeList(lesson.Notes)
	if err != nil {
		return fmt.Errorf("failed to encode lesson notes: %w", err)
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var taken bool
		existsQuery := `SELECT EXISTS(SELECT 1 FROM lessons WHERE course_id = ? AND ` + "`order`" + ` = ?)`
		if err := tx.QueryRowContext(ctx, existsQuery, lesson.CourseID, lesson.Order).Scan(&taken); err != nil {
			return fmt.Errorf("failed to check lesson order existence: %w", err)
		}

		if taken {
			shiftQuery := `
				UPDATE lessons
				SET ` + "`order`" + ` = ` + "`order`" + ` + 1
				WHERE course_id = ? AND ` + "`order`" + ` >= ?
				ORDER BY ` + "`order`" + ` DESC
			`
			if _, err := tx.ExecContext(ctx, shiftQuery, lesson.CourseID, lesson.Order); err != nil {
				return fmt.Errorf("failed to increment lesson order: %w", err)
			}
		}

		insertQuery := `
			INSERT INTO lessons (id, course_id, curriculum_section_id, title, description, content,
				video_url, duration, ` + "`order`" + `, type, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.ExecContext(ctx, insertQuery,
			lesson.ID,
			lesson.CourseID,
			nullString(lesson.CurriculumSectionID),
			lesson.Title,
			nullString(lesson.Description),
			lesson.Content,
			lesson.VideoURL,
			lesson.Duration,
			lesson.Order,
			string(lesson.Type),
			notes,
		)
		if err != nil {
			return fmt.Errorf("failed to create lesson: %w", err)
		}
		return nil
	})
}

// Delete deletes a lesson by ID
func (r *lessonRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrLessonNotFound
	}

	return nil
}
