package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pentlavallir/Landscaping-US/internal/config"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *sql.DB
}

func NewApp(cfg *config.Config) (*App, error) {
	var (
		db      *sql.DB
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		db, err = openDB(ctx, cfg.DBPath)
		cancel()
		if err == nil {
			utils.Logger.Infof("Opened database %s on attempt %d", cfg.DBPath, i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed to open database on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to open database after %d attempts: %w", maxRetries, err)
		}

		time.Sleep(backoff)
		backoff *= 2
	}

	return &App{
		Config: cfg,
		DB:     db,
	}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
}

// openDB opens the single-file SQLite database with foreign keys enforced,
// WAL journaling for concurrent readers and a busy timeout so overlapping
// request writes queue instead of failing.
func openDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
