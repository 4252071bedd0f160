package service

import (
	"context"
	"errors"
	"testing"

	"likeme/internal/models"
	"likeme/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn   func(context.Context) ([]*models.Post, error)
	createFn func(context.Context, *models.Post) error
	likeFn   func(context.Context, uint) (*models.Post, error)
	deleteFn func(context.Context, uint) (*models.Post, error)
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Like(ctx context.Context, id uint) (*models.Post, error) {
	return s.likeFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) (*models.Post, error) {
	return s.deleteFn(ctx, id)
}

func failingRepo(t *testing.T) *postRepoStub {
	return &postRepoStub{
		listFn: func(context.Context) ([]*models.Post, error) {
			t.Fatal("unexpected List call")
			return nil, nil
		},
		createFn: func(context.Context, *models.Post) error {
			t.Fatal("unexpected Create call")
			return nil
		},
		likeFn: func(context.Context, uint) (*models.Post, error) {
			t.Fatal("unexpected Like call")
			return nil, nil
		},
		deleteFn: func(context.Context, uint) (*models.Post, error) {
			t.Fatal("unexpected Delete call")
			return nil, nil
		},
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestPostService_CreatePost(t *testing.T) {
	tests := []struct {
		name    string
		input   CreatePostInput
		wantErr string
	}{
		{"Valid", CreatePostInput{Titulo: "A", URL: "http://x", Descripcion: "d"}, ""},
		{"Whitespace Is Present", CreatePostInput{Titulo: " ", URL: "x", Descripcion: "d"}, ""},
		{"Missing Titulo", CreatePostInput{URL: "http://x", Descripcion: "d"}, models.CodeValidation},
		{"Missing URL", CreatePostInput{Titulo: "A", Descripcion: "d"}, models.CodeValidation},
		{"Missing Descripcion", CreatePostInput{Titulo: "A", URL: "http://x"}, models.CodeValidation},
		{"All Missing", CreatePostInput{}, models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := failingRepo(t)
			created := 0
			repo.createFn = func(_ context.Context, p *models.Post) error {
				created++
				p.ID = 1
				return nil
			}
			svc := NewPostService(repo)

			post, err := svc.CreatePost(context.Background(), tt.input)
			if tt.wantErr != "" {
				assertAppErrorCode(t, err, tt.wantErr)
				assert.Equal(t, models.MsgFieldsRequired, err.(*models.AppError).Message)
				assert.Zero(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, created)
			assert.Equal(t, uint(1), post.ID)
			assert.Equal(t, tt.input.URL, post.URL)
			assert.Equal(t, 0, post.Likes)
		})
	}
}

func TestPostService_CreatePost_StorageError(t *testing.T) {
	repo := failingRepo(t)
	repo.createFn = func(context.Context, *models.Post) error { return errors.New("insert failed") }

	_, err := NewPostService(repo).CreatePost(context.Background(),
		CreatePostInput{Titulo: "A", URL: "http://x", Descripcion: "d"})
	assertAppErrorCode(t, err, models.CodeInternal)
}

func TestPostService_ListPosts(t *testing.T) {
	t.Run("Nil Becomes Empty", func(t *testing.T) {
		repo := failingRepo(t)
		repo.listFn = func(context.Context) ([]*models.Post, error) { return nil, nil }

		posts, err := NewPostService(repo).ListPosts(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("Storage Error", func(t *testing.T) {
		repo := failingRepo(t)
		repo.listFn = func(context.Context) ([]*models.Post, error) { return nil, errors.New("timeout") }

		posts, err := NewPostService(repo).ListPosts(context.Background())
		assert.Nil(t, posts)
		assertAppErrorCode(t, err, models.CodeInternal)
	})
}

func TestPostService_LikeAndDelete_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"Not Found", repository.ErrPostNotFound, models.CodeNotFound},
		{"Storage Error", errors.New("connection refused"), models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := failingRepo(t)
			repo.likeFn = func(context.Context, uint) (*models.Post, error) { return nil, tt.repoErr }
			repo.deleteFn = func(context.Context, uint) (*models.Post, error) { return nil, tt.repoErr }
			svc := NewPostService(repo)

			_, err := svc.LikePost(context.Background(), 9)
			assertAppErrorCode(t, err, tt.wantCode)

			_, err = svc.DeletePost(context.Background(), 9)
			assertAppErrorCode(t, err, tt.wantCode)
		})
	}
}

func TestPostService_LikePost(t *testing.T) {
	repo := failingRepo(t)
	repo.likeFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, Likes: 1}, nil
	}

	post, err := NewPostService(repo).LikePost(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), post.ID)
	assert.Equal(t, 1, post.Likes)
}
