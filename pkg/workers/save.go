package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories/models"
)

const (
	// DefaultSaveTimeout bounds a single repository write.
	DefaultSaveTimeout = 5 * time.Second
)

// SaveScoreRequest asks the worker to append a score record.
type SaveScoreRequest struct {
	Record *models.ScoreRecord
}

type SaveScoreWorker struct {
	repository    repositories.Repository
	saveScoreChan <-chan SaveScoreRequest
	timeout       time.Duration
}

type NewSaveScoreWorkerOptions struct {
	Repository    repositories.Repository
	SaveScoreChan <-chan SaveScoreRequest
	// Timeout defaults to DefaultSaveTimeout.
	Timeout time.Duration
}

// NewSaveScoreWorker creates a new SaveScoreWorker.
// The worker writes score records sent by the game loop to the repository.
// Failures are logged and never retried.
func NewSaveScoreWorker(opts NewSaveScoreWorkerOptions) *SaveScoreWorker {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &SaveScoreWorker{
		repository:    opts.Repository,
		saveScoreChan: opts.SaveScoreChan,
		timeout:       timeout,
	}
}

// Start processes save requests until ctx is done.
// Requests still buffered at that point are saved before Start returns.
func (w *SaveScoreWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case saveRequest, ok := <-w.saveScoreChan:
			if !ok {
				return
			}
			w.saveScore(ctx, saveRequest)
		}
	}
}

func (w *SaveScoreWorker) drain() {
	for {
		select {
		case saveRequest, ok := <-w.saveScoreChan:
			if !ok {
				return
			}
			w.saveScore(context.Background(), saveRequest)
		default:
			return
		}
	}
}

func (w *SaveScoreWorker) saveScore(ctx context.Context, saveRequest SaveScoreRequest) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.repository.SaveScore(ctx, saveRequest.Record); err != nil {
		log.Error("Failed to save score %d: %v", saveRequest.Record.Score, err)
		return
	}
	log.Debug("Saved score %d", saveRequest.Record.Score)
}
