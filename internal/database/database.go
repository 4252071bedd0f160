// Package database owns the process-wide PostgreSQL connection pool.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"likeme/internal/config"
	"likeme/internal/middleware"
	"likeme/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DSN builds the PostgreSQL connection string for cfg.
func DSN(cfg *config.Config) string {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)
}

// GormConfig is shared by every dialector. Each repository call is a single
// statement, so GORM's implicit BEGIN/COMMIT around writes is turned off.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 NewSlogGormLogger(middleware.Logger),
		SkipDefaultTransaction: true,
	}
}

// Connect opens the connection pool once at startup. Outside production the
// posts table is created or updated with AutoMigrate.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	middleware.Logger.Info("Database connected successfully",
		slog.String("host", cfg.DBHost),
		slog.String("database", cfg.DBName),
	)

	if !cfg.IsProduction() {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		middleware.Logger.Info("Database migration completed")
	}

	return db, nil
}

// Migrate creates the posts table if needed. Legacy tables may hold NULL like
// counters; those are zeroed first so likes can become NOT NULL.
func Migrate(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.Post{}) && db.Migrator().HasColumn(&models.Post{}, "likes") {
		result := db.Exec("UPDATE posts SET likes = 0 WHERE likes IS NULL")
		if result.Error != nil {
			return fmt.Errorf("failed to backfill post likes: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			middleware.Logger.Info("Backfilled NULL post likes", slog.Int64("rows", result.RowsAffected))
		}
	}

	if err := db.AutoMigrate(&models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime())
	return nil
}

// Ping verifies that the pool can reach the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ErrorAttrs extracts PostgreSQL diagnostics from err for server-side logs.
func ErrorAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs,
			slog.String("pg_code", pgErr.Code),
			slog.String("pg_severity", pgErr.Severity),
		)
		if pgErr.TableName != "" {
			attrs = append(attrs, slog.String("pg_table", pgErr.TableName))
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		attrs = append(attrs, slog.Bool("pg_connect_error", true))
	}
	return attrs
}
