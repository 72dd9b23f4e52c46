package handlers

import (
	"context"
	"net/http"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LessonService defines methods for reading lessons
type LessonService interface {
	// GetLessonContext retrieves a lesson with previous/next navigation, position and resources
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson view, an error wrapping models.ErrLessonNotFound, or
	// curriculum.ErrInvariantViolation when the stored lesson order is inconsistent.
	GetLessonContext(ctx context.Context, id string) (*models.LessonDataResponse, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Get("/lessons/{id}", h.GetLesson)
}

// GetLesson handles GET /lessons/{id}
// @Summary Get lesson
// @Description Get a lesson with previous/next lesson, position in the course and resources
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} models.LessonDataResponse
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetLessonContext(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, data)
}
