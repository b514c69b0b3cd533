package scores

import (
	"context"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories/models"
	"github.com/cbodonnell/snake/pkg/workers"
)

const (
	// DefaultFetchTimeout bounds a high score lookup.
	DefaultFetchTimeout = 5 * time.Second
)

// Store is the boundary between the game and score persistence.
// None of its methods return errors: failures are logged and degrade
// to the default high score or a dropped submission.
type Store struct {
	repository    repositories.Repository
	saveScoreChan chan<- workers.SaveScoreRequest
	fetchTimeout  time.Duration
}

type NewStoreOptions struct {
	Repository repositories.Repository
	// SaveScoreChan is consumed by a workers.SaveScoreWorker.
	SaveScoreChan chan<- workers.SaveScoreRequest
	// FetchTimeout defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration
}

func NewStore(opts NewStoreOptions) *Store {
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Store{
		repository:    opts.Repository,
		saveScoreChan: opts.SaveScoreChan,
		fetchTimeout:  fetchTimeout,
	}
}

// FetchHighScore returns the best recorded score, or constants.DefaultHighScore
// if nothing has been recorded or the repository cannot be reached.
func (s *Store) FetchHighScore(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	record, err := s.repository.HighScore(ctx)
	if err != nil {
		if repositories.IsNotFound(err) {
			log.Debug("No high score recorded yet")
		} else {
			log.Error("Error fetching high score: %v", err)
		}
		return constants.DefaultHighScore
	}
	return record.Score
}

// SubmitScore hands a new record to the save worker without waiting for it.
// The request is dropped with a warning if the worker is backed up.
func (s *Store) SubmitScore(score int) {
	saveRequest := workers.SaveScoreRequest{
		Record: models.NewScoreRecord(score),
	}
	select {
	case s.saveScoreChan <- saveRequest:
		log.Debug("Queued score %d for saving", score)
	default:
		log.Warn("Dropped score %d: save queue is full", score)
	}
}
