package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var blogPostRowColumns = []string{
	"id", "title", "excerpt", "content", "author_id", "author_name", "category", "tags",
	"featured_image", "is_published", "published_at", "featured", "views", "read_time", "likes",
	"comments_count", "created_at", "updated_at",
}

var blogTestTime = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func addBlogPostRow(rows *sqlmock.Rows, id string, publishedAt, readTime any) *sqlmock.Rows {
	return rows.AddRow(id, "React Hooks", "Learn hooks", "Hooks body", "u1", "John Smith", "React",
		[]byte(`["React","Frontend"]`), "https://cdn/hooks.png", true, publishedAt, true, 1250, readTime, 89,
		4, blogTestTime, blogTestTime)
}

// setupBlogPostTestRepository creates a blog post repository with a mock database
func setupBlogPostTestRepository(t *testing.T) (*blogPostRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewBlogPostRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestBlogPostRepository_GetPublished(t *testing.T) {
	tests := []struct {
		name          string
		filter        models.BlogPostFilter
		page          int
		limit         int
		setupMock     func(sqlmock.Sqlmock)
		expectedLen   int
		expectedTotal int
		errorContains string
	}{
		{
			name:  "no filters",
			page:  1,
			limit: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blog_posts p WHERE p.is_published = TRUE$`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				rows := sqlmock.NewRows(blogPostRowColumns)
				addBlogPostRow(rows, "p1", blogTestTime, 8)
				addBlogPostRow(rows, "p2", blogTestTime.Add(-time.Hour), nil)
				mock.ExpectQuery(`SELECT .* FROM blog_posts p\s+WHERE p.is_published = TRUE\s+ORDER BY p.published_at DESC, p.id\s+LIMIT \? OFFSET \?`).
					WithArgs(10, 0).
					WillReturnRows(rows)
			},
			expectedLen:   2,
			expectedTotal: 2,
		},
		{
			name:   "category and tag",
			filter: models.BlogPostFilter{Category: "React", Tag: "Frontend"},
			page:   3,
			limit:  5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blog_posts p WHERE p.is_published = TRUE AND p.category = \? AND JSON_CONTAINS\(p.tags, JSON_QUOTE\(\?\)\)`).
					WithArgs("React", "Frontend").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
				mock.ExpectQuery(`SELECT .* FROM blog_posts p`).
					WithArgs("React", "Frontend", 5, 10).
					WillReturnRows(addBlogPostRow(sqlmock.NewRows(blogPostRowColumns), "p11", blogTestTime, 3))
			},
			expectedLen:   1,
			expectedTotal: 11,
		},
		{
			name:  "count error",
			page:  1,
			limit: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blog_posts p`).
					WillReturnError(errors.New("database error"))
			},
			errorContains: "failed to count blog posts",
		},
		{
			name:  "corrupt tags",
			page:  1,
			limit: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM blog_posts p`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				rows := sqlmock.NewRows(blogPostRowColumns).AddRow("p1", "t", "e", "c", "u1", "", "React",
					[]byte(`{bad`), nil, true, blogTestTime, false, 0, nil, 0, 0, blogTestTime, blogTestTime)
				mock.ExpectQuery(`SELECT .* FROM blog_posts p`).
					WithArgs(10, 0).
					WillReturnRows(rows)
			},
			errorContains: "failed to decode tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupBlogPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			posts, total, err := repo.GetPublished(context.Background(), tt.filter, tt.page, tt.limit)

			if tt.errorContains != "" {
				assert.ErrorContains(t, err, tt.errorContains)
				assert.Nil(t, posts)
			} else {
				require.NoError(t, err)
				assert.Len(t, posts, tt.expectedLen)
				assert.Equal(t, tt.expectedTotal, total)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlogPostRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM blog_posts p WHERE p.id = \?`).
			WithArgs("p1").
			WillReturnRows(addBlogPostRow(sqlmock.NewRows(blogPostRowColumns), "p1", blogTestTime, 8))

		post, err := repo.GetByID(context.Background(), "p1")

		require.NoError(t, err)
		assert.Equal(t, models.BlogAuthor{ID: "u1", Name: "John Smith"}, post.Author)
		assert.Equal(t, []string{"React", "Frontend"}, post.Tags)
		require.NotNil(t, post.FeaturedImage)
		assert.Equal(t, "https://cdn/hooks.png", *post.FeaturedImage)
		require.NotNil(t, post.PublishedAt)
		assert.True(t, blogTestTime.Equal(*post.PublishedAt))
		require.NotNil(t, post.ReadTime)
		assert.Equal(t, 8, *post.ReadTime)
		assert.Equal(t, 4, post.CommentsCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("draft without optional fields", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(blogPostRowColumns).AddRow("p2", "Draft", "e", "c", "u1", "", "Go",
			nil, nil, false, nil, false, 0, nil, 0, 0, blogTestTime, blogTestTime)
		mock.ExpectQuery(`SELECT .* FROM blog_posts p WHERE p.id = \?`).
			WithArgs("p2").
			WillReturnRows(rows)

		post, err := repo.GetByID(context.Background(), "p2")

		require.NoError(t, err)
		assert.False(t, post.IsPublished)
		assert.Nil(t, post.PublishedAt)
		assert.Nil(t, post.ReadTime)
		assert.Nil(t, post.FeaturedImage)
		assert.Equal(t, []string{}, post.Tags)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT .* FROM blog_posts p WHERE p.id = \?`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(context.Background(), "missing")

		assert.ErrorIs(t, err, models.ErrBlogPostNotFound)
		assert.Nil(t, post)
	})
}

func TestBlogPostRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupBlogPostTestRepository(t)
	defer cleanup()

	readTime := 8
	post := &models.BlogPost{
		Title:       "React Hooks",
		Excerpt:     "Learn hooks",
		Content:     "Hooks body",
		Author:      models.BlogAuthor{ID: "u1", Name: "John Smith"},
		Category:    "React",
		IsPublished: true,
		PublishedAt: &blogTestTime,
		ReadTime:    &readTime,
	}

	mock.ExpectExec(`INSERT INTO blog_posts`).
		WithArgs(sqlmock.AnyArg(), "React Hooks", "Learn hooks", "Hooks body", "u1", "John Smith", "React",
			"[]", nil, true, blogTestTime, false, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), post)

	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogPostRepository_Update(t *testing.T) {
	published := true
	tests := []struct {
		name          string
		req           *models.UpdateBlogPostRequest
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "title and tags",
			req:  &models.UpdateBlogPostRequest{Title: "New", Tags: []string{"Go"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE blog_posts\s+SET title = \?, tags = \?\s+WHERE id = \?`).
					WithArgs("New", `["Go"]`, "p1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "publishing keeps the first publication time",
			req:  &models.UpdateBlogPostRequest{IsPublished: &published},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE blog_posts\s+SET is_published = \?, published_at = COALESCE\(published_at, \?\)\s+WHERE id = \?`).
					WithArgs(true, sqlmock.AnyArg(), "p1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:          "nothing to update",
			req:           &models.UpdateBlogPostRequest{},
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: models.ErrNoFieldsToUpdate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupBlogPostTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), "p1", tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlogPostRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM blog_posts WHERE id = \?`).
			WithArgs("p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "p1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM blog_posts WHERE id = \?`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), models.ErrBlogPostNotFound)
	})
}

func TestBlogPostRepository_Comments(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		comment := &models.BlogComment{PostID: "p1", Author: models.BlogAuthor{ID: "u2", Name: "Ann"}, Content: "Great post"}
		mock.ExpectExec(`INSERT INTO blog_comments`).
			WithArgs(sqlmock.AnyArg(), "p1", "u2", "Ann", "Great post", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateComment(context.Background(), comment))
		assert.NotEmpty(t, comment.ID)
		assert.False(t, comment.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "post_id", "author_id", "author_name", "content", "created_at"}).
			AddRow("cm2", "p1", "u3", "Bob", "Second", blogTestTime.Add(time.Hour)).
			AddRow("cm1", "p1", "u2", "Ann", "First", blogTestTime)
		mock.ExpectQuery(`SELECT id, post_id, author_id, author_name, content, created_at\s+FROM blog_comments\s+WHERE post_id = \?\s+ORDER BY created_at DESC`).
			WithArgs("p1").
			WillReturnRows(rows)

		comments, err := repo.GetComments(context.Background(), "p1")

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "cm2", comments[0].ID)
		assert.Equal(t, "Ann", comments[1].Author.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := setupBlogPostTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`FROM blog_comments`).
			WithArgs("p1").
			WillReturnError(errors.New("database error"))

		_, err := repo.GetComments(context.Background(), "p1")

		assert.ErrorContains(t, err, "failed to query blog comments")
	})
}
