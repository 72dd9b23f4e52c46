package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coursehub/backend/internal/curriculum"
	"github.com/coursehub/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to its HTTP status.
// Unknown errors are logged and reported as 500 without leaking their text.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("failed to "+action,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.RespondError(w, status, "internal server error")
		return
	}
	h.RespondError(w, status, err.Error())
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields
func (h *BaseHandler) DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, curriculum.ErrInvariantViolation):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrCourseNotFound),
		errors.Is(err, models.ErrLessonNotFound),
		errors.Is(err, models.ErrSectionNotFound),
		errors.Is(err, models.ErrEnrollmentNotFound),
		errors.Is(err, models.ErrBlogPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, models.ErrNoFieldsToUpdate),
		errors.Is(err, models.ErrCourseInactive):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotEnrolled),
		errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrAlreadyEnrolled),
		errors.Is(err, models.ErrDuplicateCode):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
