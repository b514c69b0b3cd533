package local

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/snake/pkg/game"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/cbodonnell/snake/pkg/workers"
)

const (
	// DefaultSaveScoreBuffer is the number of pending score submissions
	// held before new ones are dropped.
	DefaultSaveScoreBuffer = 8
	// DefaultEventQueueSize is the number of pending engine events.
	DefaultEventQueueSize = 16
)

// Client bundles an engine with the components a presentation layer reads:
// the shared snapshot and the game over event queue.
type Client struct {
	Engine       *game.Engine
	StateManager state.StateManager
	EventQueue   queue.Queue

	repository repositories.Repository
	cancel     context.CancelFunc
	done       chan struct{}
}

type NewClientOptions struct {
	Repository repositories.Repository
	// TickInterval defaults to constants.TickInterval.
	TickInterval time.Duration
	// Seed seeds food placement. Zero seeds from the clock.
	Seed int64
}

// NewClient starts the save score worker and creates the engine.
// The high score is fetched in the background.
// Close must be called to flush pending submissions.
func NewClient(ctx context.Context, opts NewClientOptions) (*Client, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = constants.TickInterval
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(ctx)
	saveScoreChan := make(chan workers.SaveScoreRequest, DefaultSaveScoreBuffer)
	worker := workers.NewSaveScoreWorker(workers.NewSaveScoreWorkerOptions{
		Repository:    opts.Repository,
		SaveScoreChan: saveScoreChan,
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Start(ctx)
	}()

	store := scores.NewStore(scores.NewStoreOptions{
		Repository:    opts.Repository,
		SaveScoreChan: saveScoreChan,
	})
	stateManager := state.NewInMemoryStateManager()
	eventQueue := queue.NewInMemoryQueue(DefaultEventQueueSize)
	engine := game.NewEngine(game.NewEngineOptions{
		TickInterval:  tickInterval,
		FoodGenerator: game.NewRandomFoodGenerator(seed),
		ScoreStore:    store,
		EventQueue:    eventQueue,
		StateManager:  stateManager,
	})
	go engine.RefreshHighScore(ctx)

	return &Client{
		Engine:       engine,
		StateManager: stateManager,
		EventQueue:   eventQueue,
		repository:   opts.Repository,
		cancel:       cancel,
		done:         done,
	}, nil
}

// Close stops the engine, waits for buffered submissions to be written
// and closes the repository.
func (c *Client) Close(ctx context.Context) error {
	c.Engine.Stop()
	c.cancel()
	select {
	case <-c.done:
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for pending scores: %v", ctx.Err())
	}
	if err := c.repository.Close(ctx); err != nil {
		return fmt.Errorf("failed to close repository: %v", err)
	}
	return nil
}
