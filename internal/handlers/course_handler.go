package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CourseService defines methods for the public course catalogue
type CourseService interface {
	// GetCourses retrieves a page of courses
	//
	// "ctx" is the context for the request.
	// "isActive" filters by the active flag (nil for every course).
	// "page" is the page number to retrieve (values below 1 mean 1).
	// "count" is the number of items per page (values below 1 mean the default size).
	//
	// Returns the page of courses with pagination info and an error if any.
	GetCourses(ctx context.Context, isActive *bool, page, count int) (*models.CourseListResponse, error)
	// GetCourse retrieves a plain course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course, or an error wrapping models.ErrCourseNotFound.
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	// GetCourseDetail retrieves the nested curriculum view of a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course detail, or an error wrapping models.ErrCourseNotFound.
	GetCourseDetail(ctx context.Context, id string) (*models.CourseDetailResponse, error)
}

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/courses", h.GetCourses)
	r.Get("/courses/{id}", h.GetCourse)
	r.Get("/courses/{id}/detail", h.GetCourseDetail)
}

// GetCourses handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses, optionally filtered by the active flag
// @Tags courses
// @Produce json
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10, max: 100)"
// @Success 200 {object} models.CourseListResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var isActive *bool
	if activeStr := query.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "active must be true or false")
			return
		}
		isActive = &active
	}

	// Invalid pagination values fall back to the service defaults
	page, _ := strconv.Atoi(query.Get("page"))
	count, _ := strconv.Atoi(query.Get("count"))

	courses, err := h.service.GetCourses(r.Context(), isActive, page, count)
	if err != nil {
		h.RespondServiceError(w, r, err, "get courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id}
// @Summary Get course
// @Description Get a course by ID
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get course")
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// GetCourseDetail handles GET /courses/{id}/detail
// @Summary Get course curriculum
// @Description Get a course with its curriculum grouped into sections
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseDetailResponse
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/detail [get]
func (h *CourseHandler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetCourseDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get course detail")
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}
