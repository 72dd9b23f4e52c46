package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const unknownBlogAuthor = "Unknown"

// BlogPostRepository defines methods for blog post data access
type BlogPostRepository interface {
	// GetPublished retrieves a page of published posts, newest first
	//
	// "ctx" is the context for the request.
	// "filter" narrows the listing by category and tag.
	// "page" is the page number to retrieve.
	// "limit" is the number of posts per page.
	//
	// Returns the posts of the page, the total number of matching posts and an error if any.
	GetPublished(ctx context.Context, filter models.BlogPostFilter, page, limit int) ([]models.BlogPost, int, error)
	// GetByID retrieves a post by ID, published or not
	//
	// Returns models.ErrBlogPostNotFound when it does not exist.
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	// Create inserts a new post and assigns its ID
	Create(ctx context.Context, post *models.BlogPost) error
	// Update applies the set fields of req to a post
	//
	// Returns models.ErrNoFieldsToUpdate when req sets nothing.
	Update(ctx context.Context, id string, req *models.UpdateBlogPostRequest) error
	// Delete deletes a post together with its comments
	//
	// Returns models.ErrBlogPostNotFound when it does not exist.
	Delete(ctx context.Context, id string) error
	// CreateComment inserts a comment and assigns its ID and creation time
	CreateComment(ctx context.Context, comment *models.BlogComment) error
	// GetComments retrieves the comments of a post, newest first
	GetComments(ctx context.Context, postID string) ([]models.BlogComment, error)
}

type blogService struct {
	repo     BlogPostRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(repo BlogPostRepository, validate *validator.Validate, logger *zap.Logger) *blogService {
	return &blogService{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// GetPosts retrieves a page of published posts.
// Pagination values are clamped the same way as the course catalogue.
func (s *blogService) GetPosts(ctx context.Context, filter models.BlogPostFilter, page, limit int) (*models.BlogPostListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	posts, total, err := s.repo.GetPublished(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error("failed to get blog posts", zap.Error(err))
		return nil, fmt.Errorf("failed to get blog posts: %w", err)
	}

	return &models.BlogPostListResponse{
		Posts: posts,
		Pagination: models.BlogPagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

// GetPost retrieves the public view of a published post
func (s *blogService) GetPost(ctx context.Context, id string) (*models.BlogPostDetailResponse, error) {
	post, err := s.getPublished(ctx, id)
	if err != nil {
		return nil, err
	}

	authorName := post.Author.Name
	if authorName == "" {
		authorName = unknownBlogAuthor
	}

	detail := &models.BlogPostDetailResponse{
		ID:       post.ID,
		Title:    post.Title,
		Excerpt:  post.Excerpt,
		Content:  post.Content,
		Author:   models.BlogPostAuthorDetail{Name: authorName},
		Category: post.Category,
		Tags:     post.Tags,
		Image:    post.FeaturedImage,
		Featured: post.Featured,
		Views:    post.Views,
		Likes:    post.Likes,
		Comments: post.CommentsCount,
	}
	if post.PublishedAt != nil {
		published := post.PublishedAt.Format("2006-01-02")
		detail.PublishedAt = &published
	}
	if post.ReadTime != nil {
		detail.ReadTime = fmt.Sprintf("%d min read", *post.ReadTime)
	}
	return detail, nil
}

// CreatePost writes a new post authored by actor
func (s *blogService) CreatePost(ctx context.Context, actor models.BlogActor, req *models.CreateBlogPostRequest) (*models.BlogPost, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        models.BlogAuthor{ID: actor.UserID, Name: actor.Name},
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		IsPublished:   req.IsPublished,
		Featured:      req.Featured,
		ReadTime:      req.ReadTime,
	}
	if post.IsPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create blog post", zap.String("author_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	return s.repo.GetByID(ctx, post.ID)
}

// UpdatePost applies a partial update to a post owned by actor.
// Only the author or an admin may change a post.
func (s *blogService) UpdatePost(ctx context.Context, actor models.BlogActor, id string, req *models.UpdateBlogPostRequest) (*models.BlogPost, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEditBlogPost(actor, post) {
		return nil, fmt.Errorf("update blog post %s: %w", id, models.ErrForbidden)
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// DeletePost deletes a post owned by actor
func (s *blogService) DeletePost(ctx context.Context, actor models.BlogActor, id string) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEditBlogPost(actor, post) {
		return fmt.Errorf("delete blog post %s: %w", id, models.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog post deleted", zap.String("post_id", id), zap.String("user_id", actor.UserID))
	return nil
}

// GetComments lists the comments of a published post
func (s *blogService) GetComments(ctx context.Context, postID string) ([]models.BlogComment, error) {
	if _, err := s.getPublished(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.GetComments(ctx, postID)
}

// AddComment adds a comment by actor to a published post
func (s *blogService) AddComment(ctx context.Context, actor models.BlogActor, postID string, req *models.CreateBlogCommentRequest) (*models.BlogComment, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	if _, err := s.getPublished(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.BlogComment{
		PostID:  postID,
		Author:  models.BlogAuthor{ID: actor.UserID, Name: actor.Name},
		Content: req.Content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// getPublished hides drafts behind models.ErrBlogPostNotFound
func (s *blogService) getPublished(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished {
		return nil, models.ErrBlogPostNotFound
	}
	return post, nil
}

func canEditBlogPost(actor models.BlogActor, post *models.BlogPost) bool {
	return actor.IsAdmin || (actor.UserID != "" && actor.UserID == post.Author.ID)
}
