package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database at connStr and applies migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	err = runMigrations(ctx, "postgres", func(ctx context.Context, query string) error {
		_, err := pool.Exec(ctx, query)
		return err
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveScore(ctx context.Context, record *models.ScoreRecord) error {
	q := `
	INSERT INTO scores (score, timestamp) VALUES ($1, $2);
	`
	_, err := r.pool.Exec(ctx, q, record.Score, record.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert score: %v", err)
	}

	return nil
}

func (r *PostgresRepository) HighScore(ctx context.Context) (*models.ScoreRecord, error) {
	q := `
	SELECT score, timestamp FROM scores ORDER BY score DESC, timestamp ASC LIMIT 1;
	`
	var score int
	var timestamp int64
	if err := r.pool.QueryRow(ctx, q).Scan(&score, &timestamp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan high score: %v", err)
	}

	return &models.ScoreRecord{
		Score:     score,
		Timestamp: time.UnixMilli(timestamp),
	}, nil
}
