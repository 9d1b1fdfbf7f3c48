package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/lingodesk/internal/infrastructure/config"
)

// NewConnection opens the embedded SQLite database. SQLite handles one
// writer at a time, so the pool is pinned to a single connection.
func NewConnection(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", cfg.DatabaseDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	return db, func() { _ = db.Close() }, nil
}
