package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"likeme/internal/database"
	"likeme/internal/models"
	"likeme/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestBuildPost_FillsRequiredFields(t *testing.T) {
	post := BuildPost(gofakeit.New(42))

	assert.NotEmpty(t, post.Titulo)
	assert.True(t, strings.HasPrefix(post.URL, "https://picsum.photos/seed/"))
	assert.NotEmpty(t, post.Descripcion)
	assert.Zero(t, post.Likes)
	assert.Zero(t, post.ID)
}

func TestPosts_InsertsThroughRepository(t *testing.T) {
	ctx := context.Background()
	db := setupSQLiteDB(t)
	repo := repository.NewPostRepository(db)

	created, err := Posts(ctx, repo, 5, gofakeit.New(7))
	require.NoError(t, err)
	require.Len(t, created, 5)
	for i, p := range created {
		assert.Equal(t, uint(i+1), p.ID)
	}

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 5)
	assert.Equal(t, created[4].Titulo, listed[0].Titulo)

	removed, err := Clear(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(5), removed)

	listed, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

type failAfterRepo struct {
	repository.PostRepository
	ok int
}

func (r *failAfterRepo) Create(ctx context.Context, post *models.Post) error {
	if r.ok == 0 {
		return errors.New("disk full")
	}
	r.ok--
	post.ID = uint(100 + r.ok)
	return nil
}

func TestPosts_StopsOnFirstError(t *testing.T) {
	created, err := Posts(context.Background(), &failAfterRepo{ok: 2}, 5, gofakeit.New(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed post 3")
	assert.Len(t, created, 2)
}
