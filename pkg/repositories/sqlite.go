package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/snake/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database file at path, creating it if needed,
// and applies migrations.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	err = runMigrations(ctx, "sqlite", func(ctx context.Context, query string) error {
		_, err := db.ExecContext(ctx, query)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveScore(ctx context.Context, record *models.ScoreRecord) error {
	q := `
	INSERT INTO scores (score, timestamp) VALUES (?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, record.Score, record.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert score: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) HighScore(ctx context.Context) (*models.ScoreRecord, error) {
	q := `
	SELECT score, timestamp FROM scores ORDER BY score DESC, timestamp ASC LIMIT 1;
	`
	var score int
	var timestamp int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&score, &timestamp); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan high score: %v", err)
	}

	return &models.ScoreRecord{
		Score:     score,
		Timestamp: time.UnixMilli(timestamp),
	}, nil
}
