package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminCourseService defines methods for managing courses and their curriculum
type AdminCourseService interface {
	// CreateCourse creates a course
	//
	// Returns the created course, models.ErrDuplicateCode or a validation error.
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	// UpdateCourse applies a partial update to a course
	//
	// Returns models.ErrNoFieldsToUpdate, models.ErrDuplicateCode, an error wrapping
	// models.ErrCourseNotFound or a validation error.
	UpdateCourse(ctx context.Context, id string, req *models.UpdateCourseRequest) error
	// DeleteCourse deletes a course with its curriculum
	DeleteCourse(ctx context.Context, id string) error
	// CreateSection adds a curriculum section to a course
	CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.CurriculumSection, error)
	// CreateLesson adds a lesson to a course, shifting lessons at or after its order
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error)
	// DeleteLesson removes a lesson
	DeleteLesson(ctx context.Context, id string) error
	// CreateResource attaches a resource to a lesson, shifting resources at or after its order
	CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.LessonResource, error)
}

// AdminHandler handles HTTP requests for course administration
type AdminHandler struct {
	BaseHandler
	service AdminCourseService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminCourseService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes behind adminMiddleware
func (h *AdminHandler) RegisterRoutes(r chi.Router, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/courses", h.CreateCourse)
		r.Put("/courses/{id}", h.UpdateCourse)
		r.Delete("/courses/{id}", h.DeleteCourse)
		r.Post("/sections", h.CreateSection)
		r.Post("/lessons", h.CreateLesson)
		r.Delete("/lessons/{id}", h.DeleteLesson)
		r.Post("/resources", h.CreateResource)
	})
}

// CreateCourse handles POST /admin/courses
// @Summary Create course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Code already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [post]
func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create course")
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PUT /admin/courses/{id}
// @Summary Update course
// @Description Update the given fields of a course
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to update"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Code already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [put]
func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCourseRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateCourse(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		h.RespondServiceError(w, r, err, "update course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /admin/courses/{id}
// @Summary Delete course
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCourse(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondServiceError(w, r, err, "delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateSection handles POST /admin/sections
// @Summary Create curriculum section
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateSectionRequest true "Section"
// @Success 201 {object} models.CurriculumSection
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/sections [post]
func (h *AdminHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSectionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	section, err := h.service.CreateSection(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create section")
		return
	}

	h.RespondJSON(w, http.StatusCreated, section)
}

// CreateLesson handles POST /admin/lessons
// @Summary Create lesson
// @Description Create a lesson; lessons at or after the given order are shifted by one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateLessonRequest true "Lesson"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course or section not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons [post]
func (h *AdminHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create lesson")
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// DeleteLesson handles DELETE /admin/lessons/{id}
// @Summary Delete lesson
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons/{id} [delete]
func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLesson(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondServiceError(w, r, err, "delete lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateResource handles POST /admin/resources
// @Summary Create lesson resource
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateResourceRequest true "Resource"
// @Success 201 {object} models.LessonResource
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/resources [post]
func (h *AdminHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req models.CreateResourceRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resource, err := h.service.CreateResource(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create resource")
		return
	}

	h.RespondJSON(w, http.StatusCreated, resource)
}
