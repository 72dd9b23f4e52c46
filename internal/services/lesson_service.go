package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/coursehub/backend/internal/curriculum"
	"github.com/coursehub/backend/internal/models"
	"go.uber.org/zap"
)

// LessonRepository defines methods for reading a lesson and its navigation context
type LessonRepository interface {
	// GetWithContext retrieves a lesson joined with its course and section titles
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson, or an error wrapping models.ErrLessonNotFound when it does not exist.
	GetWithContext(ctx context.Context, id string) (*models.LessonWithContext, error)
	// GetSiblings retrieves the ID and order of every lesson in a course, ascending by order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of siblings and an error if any.
	GetSiblings(ctx context.Context, courseID string) ([]models.LessonSibling, error)
}

// LessonResourceRepository defines methods for reading lesson resources
type LessonResourceRepository interface {
	// GetByLessonID retrieves the resources attached to a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of resources and an error if any.
	GetByLessonID(ctx context.Context, lessonID string) ([]models.LessonResource, error)
}

type lessonService struct {
	lessonRepo   LessonRepository
	resourceRepo LessonResourceRepository
	logger       *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(lessonRepo LessonRepository, resourceRepo LessonResourceRepository, logger *zap.Logger) *lessonService {
	return &lessonService{
		lessonRepo:   lessonRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// GetLessonContext returns a lesson with its position among the course lessons and its resources
func (s *lessonService) GetLessonContext(ctx context.Context, id string) (*models.LessonDataResponse, error) {
	lesson, err := s.lessonRepo.GetWithContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	siblings, err := s.lessonRepo.GetSiblings(ctx, lesson.CourseID)
	if err != nil {
		s.logger.Error("failed to get lesson siblings", zap.String("course_id", lesson.CourseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson siblings: %w", err)
	}

	resources, err := s.resourceRepo.GetByLessonID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get lesson resources", zap.String("lesson_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson resources: %w", err)
	}

	data, err := curriculum.BuildLessonContext(lesson, siblings, resources)
	if err != nil {
		if errors.Is(err, curriculum.ErrInvariantViolation) {
			s.logger.Error("inconsistent lesson ordering",
				zap.String("lesson_id", id),
				zap.String("course_id", lesson.CourseID),
				zap.Int("siblings", len(siblings)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	return data, nil
}
