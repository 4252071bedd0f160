// Package service holds the post use cases between HTTP handlers and storage.
package service

import (
	"context"
	"errors"

	"likeme/internal/models"
	"likeme/internal/observability"
	"likeme/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the client-provided fields of a new post.
type CreatePostInput struct {
	Titulo      string
	URL         string
	Descripcion string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post, newest first. The slice is never nil.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// CreatePost stores a new post with zero likes. All three fields are required;
// their contents are not otherwise validated.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Titulo == "" || in.URL == "" || in.Descripcion == "" {
		return nil, models.NewValidationError(models.MsgFieldsRequired)
	}

	post := &models.Post{
		Titulo:      in.Titulo,
		URL:         in.URL,
		Descripcion: in.Descripcion,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.PostsCreated.Inc()
	return post, nil
}

// LikePost adds one like to the post and returns the updated record.
func (s *PostService) LikePost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.Like(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	observability.PostLikes.Inc()
	return post, nil
}

// DeletePost removes the post and returns what it contained.
func (s *PostService) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}

	observability.PostsDeleted.Inc()
	return post, nil
}

func mapRepoError(err error, id uint) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return models.NewNotFoundError(id)
	}
	return models.NewInternalError(err)
}
