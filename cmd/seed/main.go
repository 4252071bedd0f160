// Command seed inserts fake posts for local development.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"likeme/internal/config"
	"likeme/internal/database"
	"likeme/internal/repository"
	"likeme/internal/seed"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	numPosts := flag.Int("n", 20, "Number of posts to create")
	shouldClean := flag.Bool("clean", false, "Delete existing posts before seeding")
	flag.Parse()

	log.Printf("Target: %d posts, clean=%v", *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *shouldClean {
		removed, err := seed.Clear(ctx, db)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Printf("Removed %d existing posts", removed)
	}

	posts, err := seed.Posts(ctx, repository.NewPostRepository(db), *numPosts, gofakeit.New(time.Now().UnixNano()))
	if err != nil {
		log.Fatalf("Seeding failed after %d posts: %v", len(posts), err)
	}

	log.Printf("Created %d posts", len(posts))
}
