package repositories

import (
	"context"

	"github.com/cbodonnell/snake/pkg/repositories/models"
)

// Repository is an append-only store of score records.
type Repository interface {
	Close(ctx context.Context) error
	// SaveScore appends a record.
	SaveScore(ctx context.Context, record *models.ScoreRecord) error
	// HighScore returns the record with the highest score.
	// It returns *ErrNotFound when no record has been saved.
	HighScore(ctx context.Context) (*models.ScoreRecord, error)
}
