// Package server contains the HTTP handlers and wiring for the posts API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"likeme/internal/cache"
	"likeme/internal/config"
	"likeme/internal/database"
	"likeme/internal/middleware"
	"likeme/internal/observability"
	"likeme/internal/repository"
	"likeme/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "likeme-api"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	postRepo       repository.PostRepository
	postService    *service.PostService
}

// NewServer connects to the database and, when configured, Redis, then builds
// a server with HTTP metrics enabled.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient, err := cache.NewClient(context.Background(), cfg.RedisURL)
	if err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing without rate limiting",
			slog.String("error", err.Error()))
	} else if redisClient != nil {
		middleware.Logger.Info("Redis connected successfully")
	}

	s := NewServerWithDeps(cfg, db, redisClient)
	s.promMiddleware = observability.HTTPMetrics(serviceName)
	return s, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	postRepo := repository.NewPostRepository(db)
	return &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		postRepo:    postRepo,
		postService: service.NewPostService(postRepo),
	}
}

// NewApp builds the Fiber application with middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Like Me API",
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	limit := s.config.RateLimitPerMinute
	if limit <= 0 {
		limit = 60
	}

	posts := app.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", s.rateLimit(limit, "create_post"), s.CreatePost)
	posts.Put("/like/:id", s.rateLimit(limit, "like_post"), s.LikePost)
	posts.Delete("/:id", s.DeletePost)
}

// rateLimit returns the per-minute limiter for resource, or a pass-through
// handler when the configured environment does not limit requests.
func (s *Server) rateLimit(limit int, resource string) fiber.Handler {
	if !s.config.RateLimitEnabled() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return middleware.RateLimit(s.redis, limit, time.Minute, resource)
}

// Start blocks serving on the configured port, building the app first if
// NewApp has not been called.
func (s *Server) Start() error {
	if s.app == nil {
		s.NewApp()
	}
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests and releases Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			middleware.Logger.Error("error closing database pool", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
