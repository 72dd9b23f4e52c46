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

// setupSectionTestRepository creates a curriculum section repository with a mock database
func setupSectionTestRepository(t *testing.T) (*curriculumSectionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCurriculumSectionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCurriculumSectionRepository_GetByCourseID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "course_id", "title", "order"}).
			AddRow("s1", "c1", "Intro", 1).
			AddRow("s2", "c1", "Deep dive", 2)
		mock.ExpectQuery(`SELECT id, course_id, title, .order. FROM curriculum_sections WHERE course_id = \? ORDER BY .order.`).
			WithArgs("c1").
			WillReturnRows(rows)

		sections, err := repo.GetByCourseID(context.Background(), "c1")

		require.NoError(t, err)
		assert.Equal(t, []models.CurriculumSection{
			{ID: "s1", CourseID: "c1", Title: "Intro", Order: 1},
			{ID: "s2", CourseID: "c1", Title: "Deep dive", Order: 2},
		}, sections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM curriculum_sections`).
			WillReturnError(errors.New("database error"))

		sections, err := repo.GetByCourseID(context.Background(), "c1")

		assert.ErrorContains(t, err, "failed to query curriculum sections")
		assert.Nil(t, sections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan error", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "course_id", "title", "order"}).
			AddRow("s1", "c1", "Intro", "not-a-number")
		mock.ExpectQuery(`SELECT .* FROM curriculum_sections`).
			WillReturnRows(rows)

		_, err := repo.GetByCourseID(context.Background(), "c1")

		assert.ErrorContains(t, err, "failed to scan curriculum section")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCurriculumSectionRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM curriculum_sections WHERE id = \?`).
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "order"}).AddRow("s1", "c1", "Intro", 1))

		section, err := repo.GetByID(context.Background(), "s1")

		require.NoError(t, err)
		assert.Equal(t, "c1", section.CourseID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM curriculum_sections WHERE id = \?`).
			WithArgs("s1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "s1")

		assert.ErrorIs(t, err, models.ErrSectionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCurriculumSectionRepository_Create(t *testing.T) {
	t.Run("taken order shifts later sections", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM curriculum_sections WHERE course_id = \? AND .order. = \?\)`).
			WithArgs("c1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`UPDATE curriculum_sections SET .order. = .order. \+ 1 WHERE course_id = \? AND .order. >= \? ORDER BY .order. DESC`).
			WithArgs("c1", 1).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO curriculum_sections`).
			WithArgs(sqlmock.AnyArg(), "c1", "Intro", 1).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		section := &models.CurriculumSection{CourseID: "c1", Title: "Intro", Order: 1}
		err := repo.Create(context.Background(), section)

		require.NoError(t, err)
		assert.NotEmpty(t, section.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exists check failure", func(t *testing.T) {
		repo, mock, cleanup := setupSectionTestRepository(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(errors.New("database error"))
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.CurriculumSection{CourseID: "c1", Title: "Intro", Order: 1})

		assert.ErrorContains(t, err, "failed to check section order existence")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
