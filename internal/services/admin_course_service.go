package services

import (
	"context"
	"fmt"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AdminCourseRepository defines methods for course data management
type AdminCourseRepository interface {
	// Exists checks if a course with the given ID exists
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, id string) (bool, error)
	// ExistsByCode checks if a course with the given code exists
	//
	// "ctx" is the context for the request.
	// "code" is the code of the course.
	// "excludeID" is the ID of a course to ignore (empty to check every course).
	//
	// Returns a boolean and an error if any.
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	// Create creates a new course and assigns its ID
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns models.ErrDuplicateCode when the code is taken, or another error if any.
	Create(ctx context.Context, course *models.Course) error
	// Update applies the set fields of a request to a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "req" is the partial update.
	//
	// Returns models.ErrNoFieldsToUpdate for an empty request, an error wrapping
	// models.ErrCourseNotFound when the course does not exist, or another error if any.
	Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error
	// Delete deletes a course together with its curriculum
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error wrapping models.ErrCourseNotFound when the course does not exist, or another error if any.
	Delete(ctx context.Context, id string) error
}

// AdminSectionRepository defines methods for curriculum section management
type AdminSectionRepository interface {
	// GetByID retrieves a section by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the section.
	//
	// Returns the section, or an error wrapping models.ErrSectionNotFound when it does not exist.
	GetByID(ctx context.Context, id string) (*models.CurriculumSection, error)
	// Create creates a new section, shifting sections at or after its order up by one
	//
	// "ctx" is the context for the request.
	// "section" is the section to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, section *models.CurriculumSection) error
}

// AdminLessonRepository defines methods for lesson management
type AdminLessonRepository interface {
	// GetCourseID retrieves the ID of the course a lesson belongs to
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the course ID, or an error wrapping models.ErrLessonNotFound when the lesson does not exist.
	GetCourseID(ctx context.Context, id string) (string, error)
	// Create creates a new lesson, shifting lessons at or after its order up by one
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Delete deletes a lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns an error wrapping models.ErrLessonNotFound when the lesson does not exist, or another error if any.
	Delete(ctx context.Context, id string) error
}

// AdminResourceRepository defines methods for lesson resource management
type AdminResourceRepository interface {
	// Create creates a new resource, shifting resources at or after its order up by one
	//
	// "ctx" is the context for the request.
	// "resource" is the resource to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, resource *models.LessonResource) error
}

// LessonsCountSyncer schedules reconciliation of the denormalized lessons count
type LessonsCountSyncer interface {
	EnqueueLessonsCountSync(ctx context.Context, courseID string) error
}

// CacheInvalidator drops cached course details
type CacheInvalidator interface {
	Invalidate(ctx context.Context, courseID string)
}

type adminCourseService struct {
	courseRepo   AdminCourseRepository
	sectionRepo  AdminSectionRepository
	lessonRepo   AdminLessonRepository
	resourceRepo AdminResourceRepository
	cache        CacheInvalidator
	syncer       LessonsCountSyncer
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewAdminCourseService creates a new admin course service
func NewAdminCourseService(
	courseRepo AdminCourseRepository,
	sectionRepo AdminSectionRepository,
	lessonRepo AdminLessonRepository,
	resourceRepo AdminResourceRepository,
	cache CacheInvalidator,
	syncer LessonsCountSyncer,
	validate *validator.Validate,
	logger *zap.Logger,
) *adminCourseService {
	return &adminCourseService{
		courseRepo:   courseRepo,
		sectionRepo:  sectionRepo,
		lessonRepo:   lessonRepo,
		resourceRepo: resourceRepo,
		cache:        cache,
		syncer:       syncer,
		validate:     validate,
		logger:       logger,
	}
}

// CreateCourse creates a course. New courses are active unless the request says otherwise.
func (s *adminCourseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateCode
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	course := &models.Course{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Instructor:    req.Instructor,
		Category:      req.Category,
		Level:         req.Level,
		Duration:      req.Duration,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		VideoURL:      req.VideoURL,
		Requirements:  req.Requirements,
		Outcomes:      req.Outcomes,
		IsActive:      isActive,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("code", course.Code))
	return course, nil
}

// UpdateCourse applies a partial update to a course
func (s *adminCourseService) UpdateCourse(ctx context.Context, id string, req *models.UpdateCourseRequest) error {
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}

	if req.Code != "" {
		exists, err := s.courseRepo.ExistsByCode(ctx, req.Code, id)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicateCode
		}
	}

	if err := s.courseRepo.Update(ctx, id, req); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// DeleteCourse deletes a course
func (s *adminCourseService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)
	return nil
}

// CreateSection adds a curriculum section to a course
func (s *adminCourseService) CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.CurriculumSection, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	if err := s.requireCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	section := &models.CurriculumSection{
		CourseID: req.CourseID,
		Title:    req.Title,
		Order:    req.Order,
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.CourseID)
	return section, nil
}

// CreateLesson adds a lesson to a course.
//
// When a section is given it must belong to the same course. An empty type defaults to VIDEO.
func (s *adminCourseService) CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	if err := s.requireCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	if req.CurriculumSectionID != nil {
		section, err := s.sectionRepo.GetByID(ctx, *req.CurriculumSectionID)
		if err != nil {
			return nil, err
		}
		if section.CourseID != req.CourseID {
			return nil, fmt.Errorf("%w: section %s belongs to another course", models.ErrInvalidRequest, section.ID)
		}
	}

	lesson := &models.Lesson{
		CourseID:            req.CourseID,
		CurriculumSectionID: req.CurriculumSectionID,
		Title:               req.Title,
		Description:         req.Description,
		Content:             req.Content,
		VideoURL:            req.VideoURL,
		Duration:            req.Duration,
		Order:               req.Order,
		Type:                models.ParseLessonType(string(req.Type)),
		Notes:               req.Notes,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	s.afterLessonsChanged(ctx, req.CourseID)
	return lesson, nil
}

// DeleteLesson removes a lesson from its course
func (s *adminCourseService) DeleteLesson(ctx context.Context, id string) error {
	courseID, err := s.lessonRepo.GetCourseID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterLessonsChanged(ctx, courseID)
	return nil
}

// CreateResource attaches a resource to a lesson
func (s *adminCourseService) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.LessonResource, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	courseID, err := s.lessonRepo.GetCourseID(ctx, req.LessonID)
	if err != nil {
		return nil, err
	}

	resource := &models.LessonResource{
		LessonID: req.LessonID,
		Title:    req.Title,
		Type:     req.Type,
		SizeText: req.SizeText,
		URL:      req.URL,
		Order:    req.Order,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, courseID)
	return resource, nil
}

func (s *adminCourseService) requireCourse(ctx context.Context, courseID string) error {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrCourseNotFound
	}
	return nil
}

// afterLessonsChanged drops the cached detail and schedules a lessons count sync.
// A failed enqueue is only logged: the scheduled full sync repairs the count later.
func (s *adminCourseService) afterLessonsChanged(ctx context.Context, courseID string) {
	s.cache.Invalidate(ctx, courseID)
	if err := s.syncer.EnqueueLessonsCountSync(ctx, courseID); err != nil {
		s.logger.Warn("failed to enqueue lessons count sync", zap.String("course_id", courseID), zap.Error(err))
	}
}
