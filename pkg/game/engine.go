package game

import (
	"context"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/google/uuid"
)

// ScoreStore is the persistence boundary used by the engine.
// Neither method may fail; SubmitScore must not block.
type ScoreStore interface {
	FetchHighScore(ctx context.Context) int
	SubmitScore(score int)
}

// Engine runs one game session at a time on a square grid.
// All methods are safe for concurrent use.
type Engine struct {
	lock sync.Mutex

	gridSize      int
	tickInterval  time.Duration
	foodGenerator FoodGenerator
	scoreStore    ScoreStore
	eventQueue    queue.Queue
	stateManager  state.StateManager
	logger        *log.Logger

	// generation increments on every StartGame so a ticker left over
	// from an earlier session cannot advance the current one.
	generation uint64
	stopTicker context.CancelFunc

	sessionID     string
	status        types.Status
	snake         []types.Position
	direction     types.Direction
	food          types.Position
	score         int
	highScore     int
	previousScore int
}

// NewEngineOptions contains options for creating a new Engine.
type NewEngineOptions struct {
	// GridSize defaults to constants.GridSize.
	GridSize int
	// TickInterval is the period of the game loop. Zero disables the
	// internal ticker and leaves calling Advance to the caller.
	TickInterval time.Duration
	// FoodGenerator defaults to a RandomFoodGenerator seeded from the clock.
	FoodGenerator FoodGenerator
	// ScoreStore receives the final score of every game. Optional.
	ScoreStore ScoreStore
	// EventQueue receives a *types.GameOverEvent for every game. Optional.
	EventQueue queue.Queue
	// StateManager receives a snapshot after every state change. Optional.
	StateManager state.StateManager
}

func NewEngine(opts NewEngineOptions) *Engine {
	gridSize := opts.GridSize
	if gridSize <= 0 {
		gridSize = constants.GridSize
	}
	foodGenerator := opts.FoodGenerator
	if foodGenerator == nil {
		foodGenerator = NewRandomFoodGenerator(time.Now().UnixNano())
	}

	e := &Engine{
		gridSize:      gridSize,
		tickInterval:  opts.TickInterval,
		foodGenerator: foodGenerator,
		scoreStore:    opts.ScoreStore,
		eventQueue:    opts.EventQueue,
		stateManager:  opts.StateManager,
		logger:        log.Default(),
		status:        types.StatusMenu,
		direction:     types.DefaultDirection,
		highScore:     constants.DefaultHighScore,
	}
	e.publish()
	return e
}

// StartGame resets the snake, direction, food and score and starts ticking.
// It may be called in any state; a running game is abandoned without
// recording its score. The ticker stops when ctx is done.
func (e *Engine) StartGame(ctx context.Context) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.cancelTicker()
	e.generation++
	e.sessionID = uuid.New().String()
	e.logger = log.Default().WithField("session", e.sessionID)

	e.snake = []types.Position{{X: constants.SnakeStartingX, Y: constants.SnakeStartingY}}
	e.direction = types.DefaultDirection
	e.food = e.foodGenerator.Next(e.gridSize)
	e.score = 0
	e.status = types.StatusRunning
	e.logger.Debug("Game started with food at %s", e.food)
	e.publish()

	if e.tickInterval > 0 {
		tickerCtx, cancel := context.WithCancel(ctx)
		e.stopTicker = cancel
		go e.runTicker(tickerCtx, e.generation)
	}
}

// Stop cancels the ticker. A running game is abandoned without recording
// its score and the engine returns to the menu.
func (e *Engine) Stop() {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.cancelTicker()
	if e.status == types.StatusRunning {
		e.logger.Debug("Game abandoned with score %d", e.score)
		e.status = types.StatusMenu
		e.publish()
	}
}

// SetDirection sets the direction applied on the next tick.
// Reversing into the body is allowed and ends the game as a collision.
func (e *Engine) SetDirection(d types.Direction) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.direction = d
}

// RefreshHighScore fetches the best recorded score from the store.
// The cached high score never decreases.
func (e *Engine) RefreshHighScore(ctx context.Context) {
	if e.scoreStore == nil {
		return
	}
	highScore := e.scoreStore.FetchHighScore(ctx)

	e.lock.Lock()
	defer e.lock.Unlock()
	if highScore > e.highScore {
		e.highScore = highScore
		e.publish()
	}
}

// Advance moves the snake one cell. It does nothing unless a game is running.
func (e *Engine) Advance() {
	e.lock.Lock()
	event := e.advance()
	e.lock.Unlock()

	if event != nil {
		e.finishGame(event)
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() *types.Snapshot {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.snapshot()
}

func (e *Engine) runTicker(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(generation)
		}
	}
}

// tick advances the game only if it still belongs to generation.
func (e *Engine) tick(generation uint64) {
	e.lock.Lock()
	if generation != e.generation {
		e.lock.Unlock()
		return
	}
	event := e.advance()
	e.lock.Unlock()

	if event != nil {
		e.finishGame(event)
	}
}

// advance applies one step and returns a game over event on collision.
// The caller must hold the lock.
func (e *Engine) advance() *types.GameOverEvent {
	if e.status != types.StatusRunning {
		return nil
	}

	head := e.snake[0].Move(e.direction)
	if e.collides(head) {
		e.status = types.StatusStopped
		e.previousScore = e.score
		if e.score > e.highScore {
			e.highScore = e.score
		}
		e.cancelTicker()
		e.logger.Info("Game over at %s with score %d", head, e.score)
		e.publish()
		return &types.GameOverEvent{
			SessionID: e.sessionID,
			Score:     e.score,
			HighScore: e.highScore,
		}
	}

	e.snake = append([]types.Position{head}, e.snake...)
	if head == e.food {
		e.score++
		e.food = e.foodGenerator.Next(e.gridSize)
		e.logger.Trace("Ate food, score %d, next food at %s", e.score, e.food)
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}
	e.publish()
	return nil
}

// collides checks head against the walls and the whole body as it was
// before this move, including the tail segment that is about to be vacated.
func (e *Engine) collides(head types.Position) bool {
	if !head.InBounds(e.gridSize) {
		return true
	}
	for _, segment := range e.snake {
		if segment == head {
			return true
		}
	}
	return false
}

// finishGame reports a finished game. It is called without the lock held.
func (e *Engine) finishGame(event *types.GameOverEvent) {
	if e.scoreStore != nil {
		e.scoreStore.SubmitScore(event.Score)
	}
	if e.eventQueue != nil {
		if err := e.eventQueue.Enqueue(event); err != nil {
			log.Warn("Failed to enqueue game over event: %v", err)
		}
	}
}

func (e *Engine) cancelTicker() {
	if e.stopTicker != nil {
		e.stopTicker()
		e.stopTicker = nil
	}
}

func (e *Engine) snapshot() *types.Snapshot {
	snake := make([]types.Position, len(e.snake))
	copy(snake, e.snake)
	return &types.Snapshot{
		SessionID:     e.sessionID,
		Status:        e.status,
		GridSize:      e.gridSize,
		Snake:         snake,
		Direction:     e.direction,
		Food:          e.food,
		Score:         e.score,
		HighScore:     e.highScore,
		PreviousScore: e.previousScore,
	}
}

// publish pushes the current state to the state manager.
// The caller must hold the lock.
func (e *Engine) publish() {
	if e.stateManager == nil {
		return
	}
	if err := e.stateManager.Set(context.Background(), e.snapshot()); err != nil {
		log.Error("Failed to publish game state: %v", err)
	}
}
