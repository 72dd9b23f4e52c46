package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/coursehub/backend/internal/auth"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BlogService defines methods for blog posts and their comments
type BlogService interface {
	// GetPosts retrieves a page of published posts, newest first
	//
	// "ctx" is the context for the request.
	// "filter" narrows the listing by category and tag.
	// "page" is the page number to retrieve (values below 1 mean 1).
	// "limit" is the number of posts per page (values below 1 mean the default size).
	//
	// Returns the page of posts with pagination info and an error if any.
	GetPosts(ctx context.Context, filter models.BlogPostFilter, page, limit int) (*models.BlogPostListResponse, error)
	// GetPost retrieves a published post
	//
	// Returns models.ErrBlogPostNotFound for unknown posts and drafts.
	GetPost(ctx context.Context, id string) (*models.BlogPostDetailResponse, error)
	// CreatePost writes a new post authored by actor
	CreatePost(ctx context.Context, actor models.BlogActor, req *models.CreateBlogPostRequest) (*models.BlogPost, error)
	// UpdatePost applies a partial update to a post
	//
	// Returns models.ErrForbidden when actor is neither the author nor an admin.
	UpdatePost(ctx context.Context, actor models.BlogActor, id string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error)
	// DeletePost deletes a post
	//
	// Returns models.ErrForbidden when actor is neither the author nor an admin.
	DeletePost(ctx context.Context, actor models.BlogActor, id string) error
	// GetComments lists the comments of a published post, newest first
	GetComments(ctx context.Context, postID string) ([]models.BlogComment, error)
	// AddComment adds a comment by actor to a published post
	AddComment(ctx context.Context, actor models.BlogActor, postID string, req *models.CreateBlogCommentRequest) (*models.BlogComment, error)
}

// BlogHandler handles HTTP requests for the blog
type BlogHandler struct {
	BaseHandler
	service BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(svc BlogService, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the public blog routes and the authoring routes behind authMiddleware
func (h *BlogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/blog/posts", func(r chi.Router) {
		r.Get("/", h.GetPosts)
		r.Get("/{id}", h.GetPost)
		r.Get("/{id}/comments", h.GetComments)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.CreatePost)
			r.Put("/{id}", h.UpdatePost)
			r.Delete("/{id}", h.DeletePost)
			r.Post("/{id}/comments", h.AddComment)
		})
	})
}

// GetPosts handles GET /blog/posts
// @Summary List blog posts
// @Description Get a paginated list of published posts, optionally filtered by category and tag
// @Tags blog
// @Produce json
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by tag"
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Posts per page (default: 10, max: 100)"
// @Success 200 {object} models.BlogPostListResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts [get]
func (h *BlogHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.BlogPostFilter{
		Category: query.Get("category"),
		Tag:      query.Get("tag"),
	}
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	posts, err := h.service.GetPosts(r.Context(), filter, page, limit)
	if err != nil {
		h.RespondServiceError(w, r, err, "get blog posts")
		return
	}

	h.RespondJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /blog/posts/{id}
// @Summary Get blog post
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.BlogPostDetailResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts/{id} [get]
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get blog post")
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /blog/posts
// @Summary Write a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateBlogPostRequest true "Post data"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts [post]
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := blogActor(r)
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.CreateBlogPostRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.service.CreatePost(r.Context(), actor, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create blog post")
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}

// UpdatePost handles PUT /blog/posts/{id}
// @Summary Update a blog post
// @Description Only the author or an admin may update a post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body models.UpdateBlogPostRequest true "Fields to update"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts/{id} [put]
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := blogActor(r)
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateBlogPostRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.service.UpdatePost(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "update blog post")
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /blog/posts/{id}
// @Summary Delete a blog post
// @Description Only the author or an admin may delete a post
// @Tags blog
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts/{id} [delete]
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := blogActor(r)
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.service.DeletePost(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		h.RespondServiceError(w, r, err, "delete blog post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetComments handles GET /blog/posts/{id}/comments
// @Summary List comments of a blog post
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.BlogComment
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts/{id}/comments [get]
func (h *BlogHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "get blog comments")
		return
	}

	h.RespondJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /blog/posts/{id}/comments
// @Summary Comment on a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body models.CreateBlogCommentRequest true "Comment"
// @Success 201 {object} models.BlogComment
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blog/posts/{id}/comments [post]
func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := blogActor(r)
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.CreateBlogCommentRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.service.AddComment(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "add blog comment")
		return
	}

	h.RespondJSON(w, http.StatusCreated, comment)
}

func blogActor(r *http.Request) (models.BlogActor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return models.BlogActor{}, false
	}
	return models.BlogActor{
		UserID:  claims.UserID,
		Name:    claims.Name,
		IsAdmin: claims.Role >= auth.RoleAdmin,
	}, true
}
