package services

import (
	"context"

	"github.com/coursehub/backend/internal/cache"
	"github.com/coursehub/backend/internal/models"
	"github.com/coursehub/backend/internal/tasks"
)

// mockCourseRepository is a mock implementation of CourseRepository and AdminCourseRepository
type mockCourseRepository struct {
	course    *models.Course
	getErr    error
	courses   []models.Course
	total     int
	listErr   error
	lastPage  int
	lastCount int
	exists    bool
	existsErr error
	codeTaken bool
	codeErr   error
	created   *models.Course
	createErr error
	updated   *models.UpdateCourseRequest
	updateErr error
	deleteErr error
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, isActive *bool, page, count int) ([]models.Course, int, error) {
	m.lastPage, m.lastCount = page, count
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.courses, m.total, nil
}

func (m *mockCourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockCourseRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	return m.codeTaken, m.codeErr
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = "new-course"
	m.created = course
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, id string, req *models.UpdateCourseRequest) error {
	m.updated = req
	return m.updateErr
}

func (m *mockCourseRepository) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

// mockSectionRepository is a mock implementation of SectionRepository and AdminSectionRepository
type mockSectionRepository struct {
	sections  []models.CurriculumSection
	listErr   error
	section   *models.CurriculumSection
	getErr    error
	created   *models.CurriculumSection
	createErr error
}

func (m *mockSectionRepository) GetByCourseID(ctx context.Context, courseID string) ([]models.CurriculumSection, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sections, nil
}

func (m *mockSectionRepository) GetByID(ctx context.Context, id string) (*models.CurriculumSection, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.section, nil
}

func (m *mockSectionRepository) Create(ctx context.Context, section *models.CurriculumSection) error {
	if m.createErr != nil {
		return m.createErr
	}
	section.ID = "new-section"
	m.created = section
	return nil
}

// mockLessonRepository is a mock implementation of every lesson repository interface
type mockLessonRepository struct {
	outline     []models.Lesson
	outlineErr  error
	lesson      *models.LessonWithContext
	lessonErr   error
	siblings    []models.LessonSibling
	siblingsErr error
	courseID    string
	courseIDErr error
	created     *models.Lesson
	createErr   error
	deleted     string
	deleteErr   error
}

func (m *mockLessonRepository) GetOutlineByCourseID(ctx context.Context, courseID string) ([]models.Lesson, error) {
	if m.outlineErr != nil {
		return nil, m.outlineErr
	}
	return m.outline, nil
}

func (m *mockLessonRepository) GetWithContext(ctx context.Context, id string) (*models.LessonWithContext, error) {
	if m.lessonErr != nil {
		return nil, m.lessonErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetSiblings(ctx context.Context, courseID string) ([]models.LessonSibling, error) {
	if m.siblingsErr != nil {
		return nil, m.siblingsErr
	}
	return m.siblings, nil
}

func (m *mockLessonRepository) GetCourseID(ctx context.Context, id string) (string, error) {
	if m.courseIDErr != nil {
		return "", m.courseIDErr
	}
	return m.courseID, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	lesson.ID = "new-lesson"
	m.created = lesson
	return nil
}

func (m *mockLessonRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = id
	return nil
}

// mockResourceRepository is a mock implementation of LessonResourceRepository and AdminResourceRepository
type mockResourceRepository struct {
	resources []models.LessonResource
	listErr   error
	created   *models.LessonResource
	createErr error
}

func (m *mockResourceRepository) GetByLessonID(ctx context.Context, lessonID string) ([]models.LessonResource, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.resources, nil
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *models.LessonResource) error {
	if m.createErr != nil {
		return m.createErr
	}
	resource.ID = "new-resource"
	m.created = resource
	return nil
}

// mockCache is an in-memory CourseDetailCache
type mockCache struct {
	entries     map[string]*models.CourseDetailResponse
	generation  cache.Generation
	setGens     []cache.Generation
	invalidated []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]*models.CourseDetailResponse{}}
}

func (m *mockCache) Get(ctx context.Context, courseID string) (*models.CourseDetailResponse, cache.Generation, bool) {
	detail, ok := m.entries[courseID]
	return detail, m.generation, ok
}

func (m *mockCache) Set(ctx context.Context, courseID string, gen cache.Generation, detail *models.CourseDetailResponse) {
	m.setGens = append(m.setGens, gen)
	m.entries[courseID] = detail
}

func (m *mockCache) Invalidate(ctx context.Context, courseID string) {
	m.invalidated = append(m.invalidated, courseID)
	delete(m.entries, courseID)
}

// mockEnqueuer records the tasks it was asked to publish
type mockEnqueuer struct {
	syncs    []string
	welcomes []tasks.EnrollmentWelcomePayload
	err      error
}

func (m *mockEnqueuer) EnqueueLessonsCountSync(ctx context.Context, courseID string) error {
	m.syncs = append(m.syncs, courseID)
	return m.err
}

func (m *mockEnqueuer) EnqueueEnrollmentWelcome(ctx context.Context, p tasks.EnrollmentWelcomePayload) error {
	m.welcomes = append(m.welcomes, p)
	return m.err
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	exists    bool
	existsErr error
	created   *models.Enrollment
	createErr error
	deleteErr error
	items     []models.EnrollmentListItem
	listErr   error
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	enrollment.ID = "new-enrollment"
	m.created = enrollment
	return nil
}

func (m *mockEnrollmentRepository) Delete(ctx context.Context, userID, courseID string) error {
	return m.deleteErr
}

func (m *mockEnrollmentRepository) GetByUserID(ctx context.Context, userID string) ([]models.EnrollmentListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

// mockProgressRepository is a mock implementation of LessonProgressRepository
type mockProgressRepository struct {
	progress      *models.LessonProgress
	upsertErr     error
	lastCompleted *bool
	upserted      bool
	items         []models.LessonProgressItem
	listErr       error
	completed     []string
	completedErr  error
}

func (m *mockProgressRepository) Upsert(ctx context.Context, userID, lessonID, courseID string, completed *bool) (*models.LessonProgress, error) {
	m.upserted = true
	m.lastCompleted = completed
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return m.progress, nil
}

func (m *mockProgressRepository) GetByUserID(ctx context.Context, userID string) ([]models.LessonProgressItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.items, nil
}

func (m *mockProgressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID string) ([]string, error) {
	if m.completedErr != nil {
		return nil, m.completedErr
	}
	return m.completed, nil
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
