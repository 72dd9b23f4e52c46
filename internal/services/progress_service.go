package services

import (
	"context"
	"fmt"

	"github.com/coursehub/backend/internal/curriculum"
	"github.com/coursehub/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ProgressLessonRepository defines the lesson lookups needed to record progress
type ProgressLessonRepository interface {
	// GetCourseID retrieves the ID of the course a lesson belongs to
	//
	// Returns the course ID, or an error wrapping models.ErrLessonNotFound when the lesson does not exist.
	GetCourseID(ctx context.Context, id string) (string, error)
	// GetSiblings retrieves the ID and order of every lesson in a course, ascending by order
	GetSiblings(ctx context.Context, courseID string) ([]models.LessonSibling, error)
}

// CourseExistenceChecker reports whether a course exists
type CourseExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// EnrollmentChecker reports whether a user is enrolled in a course
type EnrollmentChecker interface {
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}

// LessonProgressRepository defines methods for lesson progress data access
type LessonProgressRepository interface {
	// Upsert records that a user watched a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	// "courseID" is the ID of the course the lesson belongs to.
	// "completed" sets the completion flag; nil keeps the stored value (false for a new record).
	//
	// Returns the stored progress record and an error if any.
	Upsert(ctx context.Context, userID, lessonID, courseID string, completed *bool) (*models.LessonProgress, error)
	// GetByUserID retrieves every progress record of a user, most recently watched first
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of progress records and an error if any.
	GetByUserID(ctx context.Context, userID string) ([]models.LessonProgressItem, error)
	// GetCompletedLessonIDs retrieves the IDs of the lessons a user completed in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a list of lesson IDs and an error if any.
	GetCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error)
}

type progressService struct {
	courseRepo     CourseExistenceChecker
	lessonRepo     ProgressLessonRepository
	enrollmentRepo EnrollmentChecker
	progressRepo   LessonProgressRepository
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewProgressService creates a new lesson progress service
func NewProgressService(
	courseRepo CourseExistenceChecker,
	lessonRepo ProgressLessonRepository,
	enrollmentRepo EnrollmentChecker,
	progressRepo LessonProgressRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		validate:       validate,
		logger:         logger,
	}
}

// UpdateProgress records progress on a lesson. The user must be enrolled in the lesson's course.
func (s *progressService) UpdateProgress(ctx context.Context, userID string, req *models.UpdateProgressRequest) (*models.LessonProgress, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	courseID, err := s.lessonRepo.GetCourseID(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.Upsert(ctx, userID, req.LessonID, courseID, req.Completed)
	if err != nil {
		s.logger.Error("failed to update lesson progress",
			zap.String("user_id", userID),
			zap.String("lesson_id", req.LessonID),
			zap.Error(err),
		)
		return nil, err
	}

	return progress, nil
}

// GetProgress lists every progress record of a user
func (s *progressService) GetProgress(ctx context.Context, userID string) ([]models.LessonProgressItem, error) {
	items, err := s.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get lesson progress", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}
	return items, nil
}

// GetCourseProgress summarises the lessons a user completed in a course.
// An unknown course is reported as not found before enrollment is checked.
func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID string) (*models.CourseProgressResponse, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to get course progress: %w", models.ErrCourseNotFound)
	}

	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	siblings, err := s.lessonRepo.GetSiblings(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course lessons: %w", err)
	}

	completed, err := s.progressRepo.GetCompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed lessons: %w", err)
	}

	return curriculum.BuildCourseProgress(courseID, siblings, completed), nil
}

func (s *progressService) requireEnrollment(ctx context.Context, userID, courseID string) error {
	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return models.ErrNotEnrolled
	}
	return nil
}
