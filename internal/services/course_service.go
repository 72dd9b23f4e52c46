package services

import (
	"context"
	"fmt"

	"github.com/coursehub/backend/internal/cache"
	"github.com/coursehub/backend/internal/curriculum"
	"github.com/coursehub/backend/internal/models"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CourseRepository defines methods for reading course data
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course, or an error wrapping models.ErrCourseNotFound when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// GetAll retrieves a page of courses
	//
	// "ctx" is the context for the request.
	// "isActive" filters by the active flag (nil for every course).
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the courses of the page, the total number of matching courses and an error if any.
	GetAll(ctx context.Context, isActive *bool, page, count int) ([]models.Course, int, error)
}

// SectionRepository defines methods for reading curriculum sections
type SectionRepository interface {
	// GetByCourseID retrieves all sections of a course ordered by "order"
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of sections and an error if any.
	GetByCourseID(ctx context.Context, courseID string) ([]models.CurriculumSection, error)
}

// LessonOutlineRepository defines methods for reading the lesson outline of a course
type LessonOutlineRepository interface {
	// GetOutlineByCourseID retrieves the lessons of a course ordered by "order"
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of lessons and an error if any.
	GetOutlineByCourseID(ctx context.Context, courseID string) ([]models.Lesson, error)
}

// CourseDetailCache stores assembled course details.
// Set must receive the generation returned by the Get that missed.
type CourseDetailCache interface {
	Get(ctx context.Context, courseID string) (*models.CourseDetailResponse, cache.Generation, bool)
	Set(ctx context.Context, courseID string, gen cache.Generation, detail *models.CourseDetailResponse)
	Invalidate(ctx context.Context, courseID string)
}

type courseService struct {
	courseRepo  CourseRepository
	sectionRepo SectionRepository
	lessonRepo  LessonOutlineRepository
	cache       CourseDetailCache
	logger      *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo CourseRepository,
	sectionRepo SectionRepository,
	lessonRepo LessonOutlineRepository,
	cache CourseDetailCache,
	logger *zap.Logger,
) *courseService {
	return &courseService{
		courseRepo:  courseRepo,
		sectionRepo: sectionRepo,
		lessonRepo:  lessonRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetCourses retrieves a page of courses.
//
// page below 1 is treated as 1, count below 1 falls back to the default page size and
// count above the maximum page size is clamped.
func (s *courseService) GetCourses(ctx context.Context, isActive *bool, page, count int) (*models.CourseListResponse, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = defaultPageSize
	}
	if count > maxPageSize {
		count = maxPageSize
	}

	courses, total, err := s.courseRepo.GetAll(ctx, isActive, page, count)
	if err != nil {
		s.logger.Error("failed to get courses", zap.Error(err))
		return nil, fmt.Errorf("failed to get courses: %w", err)
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, models.CourseListItem{
			ID:            c.ID,
			Code:          c.Code,
			Title:         c.Title,
			Instructor:    c.Instructor,
			Rating:        c.Rating,
			Students:      c.Students,
			Category:      c.Category,
			Level:         curriculum.FormatLevel(c.Level),
			Duration:      curriculum.FormatDuration(c.Duration),
			Lessons:       c.LessonsCount,
			Price:         c.Price,
			OriginalPrice: c.OriginalPrice,
			Image:         c.Image,
		})
	}

	return &models.CourseListResponse{
		Courses:    items,
		Page:       page,
		Count:      count,
		Total:      total,
		TotalPages: (total + count - 1) / count,
	}, nil
}

// GetCourse retrieves a plain course by ID
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// GetCourseDetail returns the nested curriculum of a course, serving it from the cache when possible
func (s *courseService) GetCourseDetail(ctx context.Context, id string) (*models.CourseDetailResponse, error) {
	detail, gen, ok := s.cache.Get(ctx, id)
	if ok {
		return detail, nil
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.lessonRepo.GetOutlineByCourseID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get course lessons", zap.String("course_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get course lessons: %w", err)
	}

	sections, err := s.sectionRepo.GetByCourseID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get course sections", zap.String("course_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get course sections: %w", err)
	}

	detail, err = curriculum.BuildCourseDetail(course, lessons, sections)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, id, gen, detail)
	return detail, nil
}
