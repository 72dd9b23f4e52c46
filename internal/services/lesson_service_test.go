package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/coursehub/backend/internal/curriculum"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestLessonWithContext(id string, order int) *models.LessonWithContext {
	return &models.LessonWithContext{
		Lesson: models.Lesson{
			ID:       id,
			CourseID: "c1",
			Title:    "Lesson " + id,
			Duration: 90,
			Order:    order,
			Type:     models.LessonTypeVideo,
		},
		CourseTitle: "Go Basics",
	}
}

func TestLessonService_GetLessonContext(t *testing.T) {
	siblings := []models.LessonSibling{{ID: "l1", Order: 1}, {ID: "l2", Order: 2}, {ID: "l3", Order: 3}}

	tests := []struct {
		name          string
		lessonRepo    *mockLessonRepository
		resourceRepo  *mockResourceRepository
		expectedError error
		errorContains string
		check         func(t *testing.T, data *models.LessonDataResponse)
	}{
		{
			name:         "middle lesson",
			lessonRepo:   &mockLessonRepository{lesson: newTestLessonWithContext("l2", 2), siblings: siblings},
			resourceRepo: &mockResourceRepository{resources: []models.LessonResource{{ID: "r2", Order: 2}, {ID: "r1", Order: 1}}},
			check: func(t *testing.T, data *models.LessonDataResponse) {
				assert.Equal(t, 1, data.Index)
				assert.Equal(t, 3, data.TotalLessons)
				assert.Equal(t, 67, data.ProgressPercent)
				assert.Equal(t, "l1", *data.PrevLessonID)
				assert.Equal(t, "l3", *data.NextLessonID)
				assert.Equal(t, "1h 30m", data.Duration)
				require.Len(t, data.Resources, 2)
				assert.Equal(t, "r1", data.Resources[0].ID)
			},
		},
		{
			name:          "lesson not found",
			lessonRepo:    &mockLessonRepository{lessonErr: fmt.Errorf("failed to get lesson: %w", models.ErrLessonNotFound)},
			resourceRepo:  &mockResourceRepository{},
			expectedError: curriculum.ErrLessonNotFound,
		},
		{
			name:          "siblings error",
			lessonRepo:    &mockLessonRepository{lesson: newTestLessonWithContext("l2", 2), siblingsErr: errors.New("db down")},
			resourceRepo:  &mockResourceRepository{},
			errorContains: "failed to get lesson siblings",
		},
		{
			name:          "resources error",
			lessonRepo:    &mockLessonRepository{lesson: newTestLessonWithContext("l2", 2), siblings: siblings},
			resourceRepo:  &mockResourceRepository{listErr: errors.New("db down")},
			errorContains: "failed to get lesson resources",
		},
		{
			name:          "lesson missing from siblings",
			lessonRepo:    &mockLessonRepository{lesson: newTestLessonWithContext("l9", 9), siblings: siblings},
			resourceRepo:  &mockResourceRepository{},
			expectedError: curriculum.ErrInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.lessonRepo, tt.resourceRepo, zap.NewNop())

			data, err := svc.GetLessonContext(context.Background(), "l2")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, data)
			case tt.errorContains != "":
				assert.ErrorContains(t, err, tt.errorContains)
				assert.Nil(t, data)
			default:
				require.NoError(t, err)
				tt.check(t, data)
			}
		})
	}
}

func TestLessonService_GetLessonContext_LogsInvariantViolation(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewLessonService(
		&mockLessonRepository{
			lesson:   newTestLessonWithContext("l1", 1),
			siblings: []models.LessonSibling{{ID: "l2", Order: 2}, {ID: "l1", Order: 1}},
		},
		&mockResourceRepository{},
		zap.New(core),
	)

	_, err := svc.GetLessonContext(context.Background(), "l1")

	assert.ErrorIs(t, err, curriculum.ErrInvariantViolation)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "inconsistent lesson ordering", logs.All()[0].Message)
}
