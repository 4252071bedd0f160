// Package seed fills the posts table with fake data for local development.
package seed

import (
	"context"
	"fmt"

	"likeme/internal/models"
	"likeme/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// BuildPost returns an unsaved post with fake contents.
func BuildPost(faker *gofakeit.Faker) *models.Post {
	return &models.Post{
		Titulo:      faker.Sentence(4),
		URL:         fmt.Sprintf("https://picsum.photos/seed/%s/800/800", faker.UUID()),
		Descripcion: faker.Paragraph(1, 2, 12, " "),
	}
}

// Posts inserts n fake posts through the repository, one INSERT each, and
// returns them in creation order.
func Posts(ctx context.Context, repo repository.PostRepository, n int, faker *gofakeit.Faker) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := BuildPost(faker)
		if err := repo.Create(ctx, post); err != nil {
			return posts, fmt.Errorf("seed post %d: %w", i+1, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Clear removes every post.
func Clear(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Post{})
	if result.Error != nil {
		return 0, fmt.Errorf("clear posts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
