package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EnrollmentService defines methods for course enrollments
type EnrollmentService interface {
	// Enroll enrolls a user in an active course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "email" is where the welcome email is sent (empty to skip it).
	// "req" holds the course to enroll in.
	//
	// Returns the enrollment, or models.ErrCourseNotFound, models.ErrCourseInactive,
	// models.ErrAlreadyEnrolled or a validation error.
	Enroll(ctx context.Context, userID, email string, req *models.EnrollRequest) (*models.Enrollment, error)
	// Unenroll removes a user's enrollment in a course
	//
	// Returns models.ErrEnrollmentNotFound when the user is not enrolled.
	Unenroll(ctx context.Context, userID, courseID string) error
	// GetEnrollments lists the courses a user is enrolled in, newest first
	GetEnrollments(ctx context.Context, userID string) ([]models.EnrollmentListItem, error)
}

// ProgressService defines methods for lesson progress tracking
type ProgressService interface {
	// UpdateProgress records that a user watched or completed a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "req" holds the lesson and the optional completion flag.
	//
	// Returns the stored record, models.ErrNotEnrolled when the user is not enrolled in the
	// lesson's course, or an error wrapping models.ErrLessonNotFound.
	UpdateProgress(ctx context.Context, userID string, req *models.UpdateProgressRequest) (*models.LessonProgress, error)
	// GetProgress lists every progress record of a user
	GetProgress(ctx context.Context, userID string) ([]models.LessonProgressItem, error)
	// GetCourseProgress summarises the lessons a user completed in a course
	//
	// Returns an error wrapping models.ErrCourseNotFound for an unknown course, or
	// models.ErrNotEnrolled when the user is not enrolled in it.
	GetCourseProgress(ctx context.Context, userID, courseID string) (*models.CourseProgressResponse, error)
}

// EnrollmentHandler handles HTTP requests for enrollments and lesson progress
type EnrollmentHandler struct {
	BaseHandler
	enrollments EnrollmentService
	progress    ProgressService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(enrollments EnrollmentService, progress ProgressService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		progress:    progress,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all enrollment handler routes behind authMiddleware
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/enrollments", h.Enroll)
		r.Get("/enrollments", h.GetEnrollments)
		r.Delete("/enrollments/{courseId}", h.Unenroll)
		r.Post("/progress", h.UpdateProgress)
		r.Get("/progress", h.GetProgress)
		r.Get("/courses/{id}/progress", h.GetCourseProgress)
	})
}

// Enroll handles POST /enrollments
// @Summary Enroll in a course
// @Description Enroll the current user in an active course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.EnrollRequest true "Course to enroll in"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.EnrollRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	enrollment, err := h.enrollments.Enroll(r.Context(), claims.UserID, claims.Email, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "enroll")
		return
	}

	h.RespondJSON(w, http.StatusCreated, enrollment)
}

// Unenroll handles DELETE /enrollments/{courseId}
// @Summary Leave a course
// @Tags enrollments
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Enrollment not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments/{courseId} [delete]
func (h *EnrollmentHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.enrollments.Unenroll(r.Context(), userID, chi.URLParam(r, "courseId")); err != nil {
		h.RespondServiceError(w, r, err, "unenroll")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEnrollments handles GET /enrollments
// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EnrollmentListItem
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /enrollments [get]
func (h *EnrollmentHandler) GetEnrollments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	items, err := h.enrollments.GetEnrollments(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "get enrollments")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// UpdateProgress handles POST /progress
// @Summary Record lesson progress
// @Description Mark a lesson as watched, optionally setting its completion flag
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProgressRequest true "Lesson progress"
// @Success 200 {object} models.LessonProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress [post]
func (h *EnrollmentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateProgressRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.progress.UpdateProgress(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "update progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetProgress handles GET /progress
// @Summary List lesson progress
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LessonProgressItem
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress [get]
func (h *EnrollmentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	items, err := h.progress.GetProgress(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "get progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// GetCourseProgress handles GET /courses/{id}/progress
// @Summary Get course progress
// @Description Get the number of completed lessons and the next lesson to resume
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseProgressResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/progress [get]
func (h *EnrollmentHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	summary, err := h.progress.GetCourseProgress(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get course progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, summary)
}
