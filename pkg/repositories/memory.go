package repositories

import (
	"context"
	"sync"

	"github.com/cbodonnell/snake/pkg/repositories/models"
)

var _ Repository = &InMemoryRepository{}

// InMemoryRepository keeps records for the lifetime of the process.
type InMemoryRepository struct {
	lock    sync.RWMutex
	records []models.ScoreRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) SaveScore(ctx context.Context, record *models.ScoreRecord) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *InMemoryRepository) HighScore(ctx context.Context) (*models.ScoreRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.records) == 0 {
		return nil, &ErrNotFound{}
	}

	best := r.records[0]
	for _, record := range r.records[1:] {
		if record.Score > best.Score {
			best = record
		}
	}
	return &best, nil
}
