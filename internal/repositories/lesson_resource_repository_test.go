package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupResourceTestRepository creates a lesson resource repository with a mock database
func setupResourceTestRepository(t *testing.T) (*lessonResourceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonResourceRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestLessonResourceRepository_GetByLessonID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedLen   int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "lesson_id", "title", "type", "size_text", "url", "order"}).
					AddRow("r1", "l1", "Slides", "PDF", "2 MB", "https://x/1", 1).
					AddRow("r2", "l1", "Code", "ZIP", nil, "https://x/2", 2)
				mock.ExpectQuery(`SELECT .* FROM lesson_resources WHERE lesson_id = \? ORDER BY .order.`).
					WithArgs("l1").
					WillReturnRows(rows)
			},
			expectedLen: 2,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM lesson_resources`).
					WithArgs("l1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupResourceTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByLessonID(context.Background(), "l1")

			if tt.expectedError {
				assert.ErrorContains(t, err, "failed to query lesson resources")
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.Len(t, result, tt.expectedLen)
				require.NotNil(t, result[0].SizeText)
				assert.Equal(t, "2 MB", *result[0].SizeText)
				assert.Nil(t, result[1].SizeText)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonResourceRepository_Create(t *testing.T) {
	t.Run("free order", func(t *testing.T) {
		repo, mock, cleanup := setupResourceTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lesson_resources WHERE lesson_id = \? AND .order. = \?\)`).
			WithArgs("l1", 3).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`INSERT INTO lesson_resources`).
			WithArgs(sqlmock.AnyArg(), "l1", "Slides", "PDF", nil, "https://x/1", 3).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		resource := &models.LessonResource{LessonID: "l1", Title: "Slides", Type: "PDF", URL: "https://x/1", Order: 3}
		err := repo.Create(context.Background(), resource)

		require.NoError(t, err)
		assert.NotEmpty(t, resource.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken order shifts later resources", func(t *testing.T) {
		repo, mock, cleanup := setupResourceTestRepository(t)
		defer cleanup()

		size := "1 KB"
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("l1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`UPDATE lesson_resources SET .order. = .order. \+ 1 WHERE lesson_id = \? AND .order. >= \?`).
			WithArgs("l1", 1).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO lesson_resources`).
			WithArgs(sqlmock.AnyArg(), "l1", "Cheatsheet", "PDF", "1 KB", "https://x/0", 1).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), &models.LessonResource{
			LessonID: "l1", Title: "Cheatsheet", Type: "PDF", SizeText: &size, URL: "https://x/0", Order: 1,
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
