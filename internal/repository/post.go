// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"likeme/internal/models"
	"likeme/internal/observability"

	"gorm.io/gorm"
)

// ErrPostNotFound is returned when no post matches the requested id.
var ErrPostNotFound = errors.New("post not found")

// postColumns is the projection used by every query that returns posts.
// Column names match the gorm tags on models.Post, which map img to url.
// Legacy rows may hold a NULL like counter; it reads as zero.
const postColumns = "id, titulo, img, descripcion, COALESCE(likes, 0) AS likes"

// PostRepository defines the interface for post data operations. Every method
// is a single statement against the database.
type PostRepository interface {
	List(ctx context.Context) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Like(ctx context.Context, id uint) (*models.Post, error)
	Delete(ctx context.Context, id uint) (*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// List returns every post, newest first.
func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	posts := make([]*models.Post, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postColumns).
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create inserts post with a zero like count and fills in the generated id.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	post.ID = 0
	post.Likes = 0
	return r.db.WithContext(ctx).Create(post).Error
}

// Like increments the counter in one UPDATE ... RETURNING statement, so
// concurrent likes on the same row are serialized by the database.
func (r *postRepository) Like(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("like", "posts")()

	return r.returningOne(ctx,
		"UPDATE posts SET likes = COALESCE(likes, 0) + 1 WHERE id = ? RETURNING "+postColumns, id)
}

// Delete removes the post and returns its contents prior to deletion.
func (r *postRepository) Delete(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("delete", "posts")()

	return r.returningOne(ctx, "DELETE FROM posts WHERE id = ? RETURNING "+postColumns, id)
}

func (r *postRepository) returningOne(ctx context.Context, sql string, id uint) (*models.Post, error) {
	var post models.Post
	result := r.db.WithContext(ctx).Raw(sql, id).Scan(&post)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return &post, nil
}
