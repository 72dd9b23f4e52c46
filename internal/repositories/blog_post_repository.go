package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/google/uuid"
)

const blogPostColumns = `p.id, p.title, p.excerpt, p.content, p.author_id, p.author_name, p.category, p.tags,
	p.featured_image, p.is_published, p.published_at, p.featured, p.views, p.read_time, p.likes,
	(SELECT COUNT(*) FROM blog_comments c WHERE c.post_id = p.id) AS comments_count,
	p.created_at, p.updated_at`

type blogPostRepository struct {
	db *sql.DB
}

// NewBlogPostRepository creates a new blog post repository
func NewBlogPostRepository(db *sql.DB) *blogPostRepository {
	return &blogPostRepository{
		db: db,
	}
}

func scanBlogPost(row rowScanner) (*models.BlogPost, error) {
	var post models.BlogPost
	var tags []byte
	var featuredImage sql.NullString
	var publishedAt sql.NullTime
	var readTime sql.NullInt64

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Excerpt,
		&post.Content,
		&post.Author.ID,
		&post.Author.Name,
		&post.Category,
		&tags,
		&featuredImage,
		&post.IsPublished,
		&publishedAt,
		&post.Featured,
		&post.Views,
		&readTime,
		&post.Likes,
		&post.CommentsCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.FeaturedImage = stringPtr(featuredImage)
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	if readTime.Valid {
		minutes := int(readTime.Int64)
		post.ReadTime = &minutes
	}
	if post.Tags, err = decodeList(tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return &post, nil
}

// GetPublished retrieves a page of published posts, newest first, together with the
// total number of matching posts
func (r *blogPostRepository) GetPublished(ctx context.Context, filter models.BlogPostFilter, page, limit int) ([]models.BlogPost, int, error) {
	conditions := []string{"p.is_published = TRUE"}
	var args []any
	if filter.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Tag != "" {
		conditions = append(conditions, "JSON_CONTAINS(p.tags, JSON_QUOTE(?))")
		args = append(args, filter.Tag)
	}
	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM blog_posts p ` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM blog_posts p
		%s
		ORDER BY p.published_at DESC, p.id
		LIMIT ? OFFSET ?
	`, blogPostColumns, whereClause)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, total, nil
}

// GetByID retrieves a post by ID, published or not
func (r *blogPostRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts p WHERE p.id = ? LIMIT 1`

	post, err := scanBlogPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrBlogPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog post by id: %w", err)
	}

	return post, nil
}

// Create inserts a new post, assigning an ID when empty
func (r *blogPostRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	tags, err := encodeList(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	var publishedAt sql.NullTime
	if post.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *post.PublishedAt, Valid: true}
	}
	var readTime sql.NullInt64
	if post.ReadTime != nil {
		readTime = sql.NullInt64{Int64: int64(*post.ReadTime), Valid: true}
	}

	query := `
		INSERT INTO blog_posts (id, title, excerpt, content, author_id, author_name, category, tags,
			featured_image, is_published, published_at, featured, read_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Excerpt,
		post.Content,
		post.Author.ID,
		post.Author.Name,
		post.Category,
		tags,
		nullString(post.FeaturedImage),
		post.IsPublished,
		publishedAt,
		post.Featured,
		readTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}

	return nil
}

// Update applies the set fields of req to a post.
// Publishing a post that was never published stamps published_at with the current time.
func (r *blogPostRepository) Update(ctx context.Context, id string, req *models.UpdateBlogPostRequest) error {
	var setParts []string
	var args []any

	addString := func(column, value string) {
		if value != "" {
			setParts = append(setParts, column+" = ?")
			args = append(args, value)
		}
	}
	addString("title", req.Title)
	addString("excerpt", req.Excerpt)
	addString("content", req.Content)
	addString("category", req.Category)

	if req.Tags != nil {
		encoded, err := encodeList(req.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		setParts = append(setParts, "tags = ?")
		args = append(args, encoded)
	}
	if req.FeaturedImage != nil {
		setParts = append(setParts, "featured_image = ?")
		args = append(args, *req.FeaturedImage)
	}
	if req.IsPublished != nil {
		setParts = append(setParts, "is_published = ?")
		args = append(args, *req.IsPublished)
		if *req.IsPublished {
			setParts = append(setParts, "published_at = COALESCE(published_at, ?)")
			args = append(args, time.Now().UTC())
		}
	}
	if req.Featured != nil {
		setParts = append(setParts, "featured = ?")
		args = append(args, *req.Featured)
	}
	if req.ReadTime != nil {
		setParts = append(setParts, "read_time = ?")
		args = append(args, *req.ReadTime)
	}

	if len(setParts) == 0 {
		return models.ErrNoFieldsToUpdate
	}

	query := fmt.Sprintf(`
		UPDATE blog_posts
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	return nil
}

// Delete deletes a post by ID; its comments are removed by the foreign key
func (r *blogPostRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blog_posts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrBlogPostNotFound
	}

	return nil
}

// CreateComment inserts a comment, assigning an ID and creation time when empty
func (r *blogPostRepository) CreateComment(ctx context.Context, comment *models.BlogComment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO blog_comments (id, post_id, author_id, author_name, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID,
		comment.PostID,
		comment.Author.ID,
		comment.Author.Name,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog comment: %w", err)
	}

	return nil
}

// GetComments retrieves the comments of a post, newest first
func (r *blogPostRepository) GetComments(ctx context.Context, postID string) ([]models.BlogComment, error) {
	query := `
		SELECT id, post_id, author_id, author_name, content, created_at
		FROM blog_comments
		WHERE post_id = ?
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog comments: %w", err)
	}
	defer rows.Close()

	comments := []models.BlogComment{}
	for rows.Next() {
		var comment models.BlogComment
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.Author.ID,
			&comment.Author.Name,
			&comment.Content,
			&comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return comments, nil
}
