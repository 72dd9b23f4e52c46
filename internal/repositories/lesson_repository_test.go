package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewLessonRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestLessonRepository_GetOutlineByCourseID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedLen   int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "course_id", "curriculum_section_id", "title", "duration", "order", "type"}).
					AddRow("l1", "c1", "s1", "Intro", 10, 1, "VIDEO").
					AddRow("l2", "c1", nil, "Quiz", 5, 2, "quiz").
					AddRow("l3", "c1", nil, "Legacy", 5, 3, "")
				mock.ExpectQuery(`SELECT .* FROM lessons WHERE course_id = \? ORDER BY`).
					WithArgs("c1").
					WillReturnRows(rows)
			},
			expectedLen: 3,
		},
		{
			name: "empty course",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons WHERE course_id = \?`).
					WithArgs("c1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "curriculum_section_id", "title", "duration", "order", "type"}))
			},
			expectedLen: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons WHERE course_id = \?`).
					WithArgs("c1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetOutlineByCourseID(context.Background(), "c1")

			if tt.expectedError {
				assert.ErrorContains(t, err, "failed to query lessons")
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Len(t, result, tt.expectedLen)
				assert.NotNil(t, result)
				if tt.expectedLen == 3 {
					require.NotNil(t, result[0].CurriculumSectionID)
					assert.Equal(t, "s1", *result[0].CurriculumSectionID)
					assert.Nil(t, result[1].CurriculumSectionID)
					assert.Equal(t, models.LessonTypeQuiz, result[1].Type)
					assert.Equal(t, models.LessonTypeVideo, result[2].Type)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetWithContext(t *testing.T) {
	columns := []string{"id", "course_id", "curriculum_section_id", "title", "description", "content", "video_url",
		"duration", "order", "type", "notes", "course_title", "section_title"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		errorContains string
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("l2", "c1", "s1", "Variables", "About vars", "body", "https://v/2", 90, 2, "TEXT",
						[]byte(`["remember :="]`), "Go Basics", "Intro")
				mock.ExpectQuery(`SELECT .* FROM lessons l JOIN courses c ON c.id = l.course_id LEFT JOIN curriculum_sections cs .* WHERE l.id = \?`).
					WithArgs("l2").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons l`).
					WithArgs("l2").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrLessonNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lessons l`).
					WithArgs("l2").
					WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to get lesson with context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetWithContext(context.Background(), "l2")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.errorContains != "":
				assert.ErrorContains(t, err, tt.errorContains)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				assert.Equal(t, "l2", result.ID)
				assert.Equal(t, "c1", result.CourseID)
				assert.Equal(t, "Go Basics", result.CourseTitle)
				require.NotNil(t, result.SectionTitle)
				assert.Equal(t, "Intro", *result.SectionTitle)
				require.NotNil(t, result.Description)
				assert.Equal(t, "About vars", *result.Description)
				assert.Equal(t, models.LessonTypeText, result.Type)
				assert.Equal(t, []string{"remember :="}, result.Notes)
				assert.Equal(t, 2, result.Order)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetSiblings(t *testing.T) {
	repo, mock, cleanup := setupLessonTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "order"}).
		AddRow("l1", 1).
		AddRow("l2", 2).
		AddRow("l3", 5)
	mock.ExpectQuery(`SELECT id, .order. FROM lessons WHERE course_id = \? ORDER BY .order. ASC`).
		WithArgs("c1").
		WillReturnRows(rows)

	siblings, err := repo.GetSiblings(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, []models.LessonSibling{{ID: "l1", Order: 1}, {ID: "l2", Order: 2}, {ID: "l3", Order: 5}}, siblings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_GetCourseID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT course_id FROM lessons WHERE id = \?`).
			WithArgs("l1").
			WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow("c1"))

		courseID, err := repo.GetCourseID(context.Background(), "l1")

		require.NoError(t, err)
		assert.Equal(t, "c1", courseID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupLessonTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT course_id FROM lessons WHERE id = \?`).
			WithArgs("l1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCourseID(context.Background(), "l1")

		assert.ErrorIs(t, err, models.ErrLessonNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonRepository_Create(t *testing.T) {
	section := "s1"

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "free order",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lessons WHERE course_id = \? AND .order. = \?\)`).
					WithArgs("c1", 2).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(`INSERT INTO lessons`).
					WithArgs(sqlmock.AnyArg(), "c1", "s1", "Variables", nil, "body", "https://v/2", 30, 2, "VIDEO", `["tip"]`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "taken order shifts later lessons",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("c1", 2).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectExec(`UPDATE lessons SET .order. = .order. \+ 1 WHERE course_id = \? AND .order. >= \? ORDER BY .order. DESC`).
					WithArgs("c1", 2).
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectExec(`INSERT INTO lessons`).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "shift failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectExec(`UPDATE lessons`).
					WillReturnError(errors.New("lock wait timeout"))
				mock.ExpectRollback()
			},
			expectedError: true,
			errorContains: "failed to increment lesson order",
		},
		{
			name: "insert failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT EXISTS`).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec(`INSERT INTO lessons`).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
			errorContains: "failed to create lesson",
		},
		{
			name: "begin failure",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
			},
			expectedError: true,
			errorContains: "failed to begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lesson := &models.Lesson{
				CourseID:            "c1",
				CurriculumSectionID: &section,
				Title:               "Variables",
				Content:             "body",
				VideoURL:            "https://v/2",
				Duration:            30,
				Order:               2,
				Type:                models.LessonTypeVideo,
				Notes:               []string{"tip"},
			}
			err := repo.Create(context.Background(), lesson)

			if tt.expectedError {
				assert.ErrorContains(t, err, tt.errorContains)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, lesson.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM lessons WHERE id = \?`).
					WithArgs("l1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM lessons WHERE id = \?`).
					WithArgs("l1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: models.ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), "l1")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
