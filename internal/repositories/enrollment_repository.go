package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists checks if a user is enrolled in a course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	return exists, nil
}

// Create inserts an enrollment. A concurrent duplicate is reported as ErrAlreadyEnrolled.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}

	query := `INSERT INTO enrollments (id, user_id, course_id, enrolled_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, enrollment.ID, enrollment.UserID, enrollment.CourseID, enrollment.EnrolledAt)
	if isDuplicateKey(err) {
		return models.ErrAlreadyEnrolled
	}
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

// Delete removes a user's enrollment in a course
func (r *enrollmentRepository) Delete(ctx context.Context, userID, courseID string) error {
	query := `DELETE FROM enrollments WHERE user_id = ? AND course_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEnrollmentNotFound
	}

	return nil
}

// GetByUserID retrieves a user's enrollments with course summaries, newest first
func (r *enrollmentRepository) GetByUserID(ctx context.Context, userID string) ([]models.EnrollmentListItem, error) {
	query := `
		SELECT e.id, e.course_id, c.title, c.image, e.enrolled_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	items := []models.EnrollmentListItem{}
	for rows.Next() {
		var item models.EnrollmentListItem
		if err := rows.Scan(&item.ID, &item.CourseID, &item.CourseTitle, &item.CourseImage, &item.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
