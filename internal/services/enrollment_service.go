package services

import (
	"context"
	"fmt"

	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/tasks"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// EnrollmentRepository defines methods for enrollment data access
type EnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	// Create creates a new enrollment and assigns its ID and enrollment time
	//
	// "ctx" is the context for the request.
	// "enrollment" is the enrollment to create.
	//
	// Returns models.ErrAlreadyEnrolled on a concurrent duplicate, or another error if any.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// Delete removes the enrollment of a user in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns models.ErrEnrollmentNotFound when the user is not enrolled, or another error if any.
	Delete(ctx context.Context, userID, courseID string) error
	// GetByUserID retrieves the enrollments of a user, newest first
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of enrollments and an error if any.
	GetByUserID(ctx context.Context, userID string) ([]models.EnrollmentListItem, error)
}

// WelcomeEnqueuer schedules enrollment welcome emails
type WelcomeEnqueuer interface {
	EnqueueEnrollmentWelcome(ctx context.Context, p tasks.EnrollmentWelcomePayload) error
}

type enrollmentService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	enqueuer       WelcomeEnqueuer
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	courseRepo CourseRepository,
	enrollmentRepo EnrollmentRepository,
	enqueuer WelcomeEnqueuer,
	validate *validator.Validate,
	logger *zap.Logger,
) *enrollmentService {
	return &enrollmentService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		enqueuer:       enqueuer,
		validate:       validate,
		logger:         logger,
	}
}

// Enroll enrolls a user in an active course and schedules a welcome email to "email" when it is set
func (s *enrollmentService) Enroll(ctx context.Context, userID, email string, req *models.EnrollRequest) (*models.Enrollment, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if !course.IsActive {
		return nil, models.ErrCourseInactive
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, course.ID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, models.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	if email != "" {
		err = s.enqueuer.EnqueueEnrollmentWelcome(ctx, tasks.EnrollmentWelcomePayload{
			Email:       email,
			CourseID:    course.ID,
			CourseTitle: course.Title,
		})
		if err != nil {
			s.logger.Warn("failed to enqueue welcome email",
				zap.String("user_id", userID),
				zap.String("course_id", course.ID),
				zap.Error(err),
			)
		}
	}

	return enrollment, nil
}

// Unenroll removes a user's enrollment in a course
func (s *enrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	return s.enrollmentRepo.Delete(ctx, userID, courseID)
}

// GetEnrollments lists the courses a user is enrolled in
func (s *enrollmentService) GetEnrollments(ctx context.Context, userID string) ([]models.EnrollmentListItem, error) {
	items, err := s.enrollmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get enrollments", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get enrollments: %w", err)
	}
	return items, nil
}
