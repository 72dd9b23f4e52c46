package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

type lessonProgressRepository struct {
	db *sql.DB
}

// NewLessonProgressRepository creates a new lesson progress repository
func NewLessonProgressRepository(db *sql.DB) *lessonProgressRepository {
	return &lessonProgressRepository{
		db: db,
	}
}

// Upsert records that a user watched a lesson.
// A nil completed keeps the stored flag (false for a new record).
func (r *lessonProgressRepository) Upsert(ctx context.Context, userID, lessonID, courseID string, completed *bool) (*models.LessonProgress, error) {
	progress := &models.LessonProgress{
		ID:        uuid.NewString(),
		UserID:    userID,
		LessonID:  lessonID,
		CourseID:  courseID,
		WatchedAt: time.Now().UTC(),
	}

	var query string
	var args []any
	if completed == nil {
		query = `
			INSERT INTO lesson_progress (id, user_id, lesson_id, course_id, completed, watched_at)
			VALUES (?, ?, ?, ?, FALSE, ?)
			ON DUPLICATE KEY UPDATE watched_at = VALUES(watched_at)
		`
		args = []any{progress.ID, userID, lessonID, courseID, progress.WatchedAt}
	} else {
		query = `
			INSERT INTO lesson_progress (id, user_id, lesson_id, course_id, completed, watched_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE completed = VALUES(completed), watched_at = VALUES(watched_at)
		`
		args = []any{progress.ID, userID, lessonID, courseID, *completed, progress.WatchedAt}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert lesson progress: %w", err)
	}

	selectQuery := `
		SELECT id, completed, watched_at
		FROM lesson_progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, selectQuery, userID, lessonID).Scan(&progress.ID, &progress.Completed, &progress.WatchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson progress: %w", err)
	}

	return progress, nil
}

// GetByUserID retrieves every progress record of a user, most recently watched first
func (r *lessonProgressRepository) GetByUserID(ctx context.Context, userID string) ([]models.LessonProgressItem, error) {
	query := `
		SELECT lp.lesson_id, l.title, lp.course_id, c.title, lp.completed, lp.watched_at
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		JOIN courses c ON c.id = lp.course_id
		WHERE lp.user_id = ?
		ORDER BY lp.watched_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson progress: %w", err)
	}
	defer rows.Close()

	items := []models.LessonProgressItem{}
	for rows.Next() {
		var item models.LessonProgressItem
		err := rows.Scan(
			&item.LessonID,
			&item.LessonTitle,
			&item.CourseID,
			&item.CourseTitle,
			&item.Completed,
			&item.WatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// GetCompletedLessonIDs returns the lessons of a course a user has completed
func (r *lessonProgressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error) {
	query := `
		SELECT lesson_id
		FROM lesson_progress
		WHERE user_id = ? AND course_id = ? AND completed = TRUE
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan completed lesson: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
