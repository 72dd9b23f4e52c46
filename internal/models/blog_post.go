package models

import "time"

// BlogAuthor identifies who wrote a post or comment
type BlogAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BlogActor is the signed-in user performing a blog operation
type BlogActor struct {
	UserID  string
	Name    string
	IsAdmin bool
}

// BlogPost represents a blog post row together with its comment count
type BlogPost struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Author        BlogAuthor `json:"author"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	FeaturedImage *string    `json:"featuredImage,omitempty"`
	IsPublished   bool       `json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Featured      bool       `json:"featured"`
	Views         int        `json:"views"`
	ReadTime      *int       `json:"readTime,omitempty"`
	Likes         int        `json:"likes"`
	CommentsCount int        `json:"commentsCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BlogPostFilter narrows the published post listing
type BlogPostFilter struct {
	Category string
	Tag      string
}

// BlogPagination describes one page of a post listing
type BlogPagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BlogPostListResponse is a page of published posts
type BlogPostListResponse struct {
	Posts      []BlogPost     `json:"posts"`
	Pagination BlogPagination `json:"pagination"`
}

// BlogPostAuthorDetail is the author block of a post page
type BlogPostAuthorDetail struct {
	Name string `json:"name"`
}

// BlogPostDetailResponse is the public view of a single post
type BlogPostDetailResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Excerpt     string               `json:"excerpt"`
	Content     string               `json:"content"`
	Author      BlogPostAuthorDetail `json:"author"`
	Category    string               `json:"category"`
	Tags        []string             `json:"tags"`
	PublishedAt *string              `json:"publishedAt"`
	ReadTime    string               `json:"readTime,omitempty"`
	Image       *string              `json:"image,omitempty"`
	Featured    bool                 `json:"featured"`
	Views       int                  `json:"views"`
	Likes       int                  `json:"likes"`
	Comments    int                  `json:"comments"`
}

// CreateBlogPostRequest represents a request to write a blog post
type CreateBlogPostRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Excerpt       string   `json:"excerpt" validate:"required,max=500"`
	Content       string   `json:"content" validate:"required"`
	Category      string   `json:"category" validate:"required,max=100"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
	FeaturedImage *string  `json:"featuredImage,omitempty" validate:"omitempty,url"`
	IsPublished   bool     `json:"isPublished"`
	Featured      bool     `json:"featured"`
	ReadTime      *int     `json:"readTime,omitempty" validate:"omitempty,gt=0"`
}

// UpdateBlogPostRequest represents a partial update of a blog post
type UpdateBlogPostRequest struct {
	Title         string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Excerpt       string   `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content       string   `json:"content,omitempty"`
	Category      string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
	FeaturedImage *string  `json:"featuredImage,omitempty" validate:"omitempty,url"`
	IsPublished   *bool    `json:"isPublished,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	ReadTime      *int     `json:"readTime,omitempty" validate:"omitempty,gt=0"`
}

// BlogComment represents a reader comment on a post
type BlogComment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"postId"`
	Author    BlogAuthor `json:"author"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateBlogCommentRequest represents a request to comment on a post
type CreateBlogCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
