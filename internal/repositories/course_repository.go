package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

const courseColumns = `id, code, title, description, instructor, rating, students, category, level,
	duration, price, original_price, image, video_url, requirements, outcomes, lessons_count,
	is_active, created_at, updated_at`

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	var level string
	var originalPrice sql.NullFloat64
	var requirements, outcomes []byte

	err := row.Scan(
		&course.ID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Instructor,
		&course.Rating,
		&course.Students,
		&course.Category,
		&level,
		&course.Duration,
		&course.Price,
		&originalPrice,
		&course.Image,
		&course.VideoURL,
		&requirements,
		&outcomes,
		&course.LessonsCount,
		&course.IsActive,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.Level = models.Level(level)
	if originalPrice.Valid {
		price := originalPrice.Float64
		course.OriginalPrice = &price
	}
	if course.Requirements, err = decodeList(requirements); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	if course.Outcomes, err = decodeList(outcomes); err != nil {
		return nil, fmt.Errorf("failed to decode outcomes: %w", err)
	}
	return &course, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ? LIMIT 1`

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// GetAll retrieves a page of courses together with the total number of matching courses.
// A nil isActive returns both active and inactive courses.
func (r *courseRepository) GetAll(ctx context.Context, isActive *bool, page, count int) ([]models.Course, int, error) {
	whereClause := ""
	var args []any
	if isActive != nil {
		whereClause = "WHERE is_active = ?"
		args = append(args, *isActive)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM courses ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	offset := (page - 1) * count
	query := fmt.Sprintf(`
		SELECT %s
		FROM courses
		%s
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, courseColumns, whereClause)
	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, total, nil
}

// ExistsByCode checks if another course already uses the code. excludeID may be empty.
func (r *courseRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE code = ? AND id <> ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course code existence: %w", err)
	}

	return exists, nil
}

// Exists checks if a course exists
func (r *courseRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new course, assigning an ID when empty
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	requirements, err := encodeList(course.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}
	outcomes, err := encodeList(course.Outcomes)
	if err != nil {
		return fmt.Errorf("failed to encode outcomes: %w", err)
	}

	query := `
		INSERT INTO courses (id, code, title, description, instructor, category, level, duration,
			price, original_price, image, video_url, requirements, outcomes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var originalPrice sql.NullFloat64
	if course.OriginalPrice != nil {
		originalPrice = sql.NullFloat64{Float64: *course.OriginalPrice, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		course.ID,
		course.Code,
		course.Title,
		course.Description,
		course.Instructor,
		course.Category,
		string(course.Level),
		course.Duration,
		course.Price,
		originalPrice,
		course.Image,
		course.VideoURL,
		requirements,
		outcomes,
		course.IsActive,
	)
	if isDuplicateKey(err) {
		return models.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// Update applies the non-empty fields of req to a course
func (r *courseRepository) Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error {
	var setParts []string
	var args []any

	addString := func(column, value string) {
		if value != "" {
			setParts = append(setParts, column+" = ?")
			args = append(args, value)
		}
	}
	addString("code", req.Code)
	addString("title", req.Title)
	addString("description", req.Description)
	addString("instructor", req.Instructor)
	addString("category", req.Category)
	addString("level", string(req.Level))
	addString("image", req.Image)
	addString("video_url", req.VideoURL)

	if req.Duration != nil {
		setParts = append(setParts, "duration = ?")
		args = append(args, *req.Duration)
	}
	if req.Price != nil {
		setParts = append(setParts, "price = ?")
		args = append(args, *req.Price)
	}
	if req.OriginalPrice != nil {
		setParts = append(setParts, "original_price = ?")
		args = append(args, *req.OriginalPrice)
	}
	if req.IsActive != nil {
		setParts = append(setParts, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if req.Requirements != nil {
		encoded, err := encodeList(req.Requirements)
		if err != nil {
			return fmt.Errorf("failed to encode requirements: %w", err)
		}
		setParts = append(setParts, "requirements = ?")
		args = append(args, encoded)
	}
	if req.Outcomes != nil {
		encoded, err := encodeList(req.Outcomes)
		if err != nil {
			return fmt.Errorf("failed to encode outcomes: %w", err)
		}
		setParts = append(setParts, "outcomes = ?")
		args = append(args, encoded)
	}

	if len(setParts) == 0 {
		return models.ErrNoFieldsToUpdate
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if isDuplicateKey(err) {
		return models.ErrDuplicateCode
	}
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// MySQL reports 0 for rows whose values did not change, so confirm the row exists
	if rowsAffected == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return models.ErrCourseNotFound
		}
	}

	return nil
}

// Delete deletes a course by ID
func (r *courseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCourseNotFound
	}

	return nil
}

// SyncLessonsCount rewrites lessons_count from the lessons table.
// An empty courseID syncs every course. It returns the number of courses whose count changed.
func (r *courseRepository) SyncLessonsCount(ctx context.Context, courseID string) (int64, error) {
	query := `
		UPDATE courses c
		SET c.lessons_count = (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)
	`
	var args []any
	if courseID != "" {
		query += " WHERE c.id = ?"
		args = append(args, courseID)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to sync lessons count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// GetIDs returns the IDs of every course
func (r *courseRepository) GetIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query course ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan course id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
