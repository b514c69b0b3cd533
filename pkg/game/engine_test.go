package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceFoodGenerator returns positions in order and then repeats the last one.
type sequenceFoodGenerator struct {
	positions []types.Position
	next      int
}

func (g *sequenceFoodGenerator) Next(gridSize int) types.Position {
	p := g.positions[g.next]
	if g.next < len(g.positions)-1 {
		g.next++
	}
	return p
}

type recordingScoreStore struct {
	lock      sync.Mutex
	highScore int
	submitted []int
}

func (s *recordingScoreStore) FetchHighScore(ctx context.Context) int {
	return s.highScore
}

func (s *recordingScoreStore) SubmitScore(score int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.submitted = append(s.submitted, score)
}

func (s *recordingScoreStore) Submitted() []int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]int(nil), s.submitted...)
}

func pos(x, y int) types.Position {
	return types.Position{X: x, Y: y}
}

type testEngine struct {
	*Engine
	store  *recordingScoreStore
	events *queue.InMemoryQueue
}

// newStartedEngine returns a running engine without a ticker whose state is
// replaced by snake, direction, food and score.
func newStartedEngine(t *testing.T, snake []types.Position, direction types.Direction, food types.Position, score int, nextFood ...types.Position) *testEngine {
	t.Helper()
	if len(nextFood) == 0 {
		nextFood = []types.Position{pos(0, 0)}
	}
	store := &recordingScoreStore{}
	events := queue.NewInMemoryQueue(8)
	e := NewEngine(NewEngineOptions{
		GridSize:      constants.GridSize,
		FoodGenerator: &sequenceFoodGenerator{positions: append([]types.Position{food}, nextFood...)},
		ScoreStore:    store,
		EventQueue:    events,
	})
	e.StartGame(context.Background())
	e.snake = append([]types.Position(nil), snake...)
	e.direction = direction
	e.score = score
	return &testEngine{Engine: e, store: store, events: events}
}

func TestEngine_initialState(t *testing.T) {
	e := NewEngine(NewEngineOptions{})

	snapshot := e.Snapshot()
	assert.Equal(t, types.StatusMenu, snapshot.Status)
	assert.Equal(t, constants.GridSize, snapshot.GridSize)
	assert.Empty(t, snapshot.Snake)
	assert.Equal(t, 0, snapshot.Score)

	// nothing happens without a running game
	e.Advance()
	assert.Equal(t, types.StatusMenu, e.Snapshot().Status)
}

func TestEngine_StartGame(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(3, 3), pos(3, 4), pos(3, 5)}, types.DirectionUp, pos(5, 5), 12)
	e.status = types.StatusStopped

	e.StartGame(context.Background())

	snapshot := e.Snapshot()
	assert.Equal(t, types.StatusRunning, snapshot.Status)
	assert.Equal(t, []types.Position{pos(constants.SnakeStartingX, constants.SnakeStartingY)}, snapshot.Snake)
	assert.Equal(t, types.DirectionRight, snapshot.Direction)
	assert.Equal(t, 0, snapshot.Score)
	assert.Equal(t, pos(0, 0), snapshot.Food)
	assert.NotEmpty(t, snapshot.SessionID)
}

func TestEngine_StartGameNewSession(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(10, 10)}, types.DirectionRight, pos(0, 0), 0)
	first := e.Snapshot().SessionID

	e.StartGame(context.Background())
	assert.NotEqual(t, first, e.Snapshot().SessionID)
}

func TestEngine_Advance(t *testing.T) {
	tests := []struct {
		name      string
		snake     []types.Position
		direction types.Direction
		food      types.Position
		score     int
		want      []types.Position
		wantScore int
		wantFood  types.Position
	}{
		{
			name:      "eats food and grows",
			snake:     []types.Position{pos(10, 10)},
			direction: types.DirectionRight,
			food:      pos(11, 10),
			want:      []types.Position{pos(11, 10), pos(10, 10)},
			wantScore: 1,
			wantFood:  pos(0, 0),
		},
		{
			name:      "moves up",
			snake:     []types.Position{pos(5, 5), pos(5, 6)},
			direction: types.DirectionUp,
			food:      pos(0, 19),
			score:     1,
			want:      []types.Position{pos(5, 4), pos(5, 5)},
			wantScore: 1,
			wantFood:  pos(0, 19),
		},
		{
			name:      "moves down",
			snake:     []types.Position{pos(5, 5)},
			direction: types.DirectionDown,
			food:      pos(0, 19),
			want:      []types.Position{pos(5, 6)},
			wantFood:  pos(0, 19),
		},
		{
			name:      "moves left",
			snake:     []types.Position{pos(5, 5), pos(6, 5), pos(7, 5)},
			direction: types.DirectionLeft,
			food:      pos(0, 19),
			score:     2,
			want:      []types.Position{pos(4, 5), pos(5, 5), pos(6, 5)},
			wantScore: 2,
			wantFood:  pos(0, 19),
		},
		{
			name:      "reaches the last cell",
			snake:     []types.Position{pos(18, 19)},
			direction: types.DirectionRight,
			food:      pos(0, 0),
			want:      []types.Position{pos(19, 19)},
			wantFood:  pos(0, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newStartedEngine(t, tt.snake, tt.direction, tt.food, tt.score)

			e.Advance()

			snapshot := e.Snapshot()
			assert.Equal(t, types.StatusRunning, snapshot.Status)
			assert.Equal(t, tt.want, snapshot.Snake)
			assert.Equal(t, tt.wantScore, snapshot.Score)
			assert.Equal(t, tt.wantFood, snapshot.Food)
			assert.Empty(t, e.store.Submitted())
		})
	}
}

func TestEngine_AdvanceCollision(t *testing.T) {
	tests := []struct {
		name      string
		snake     []types.Position
		direction types.Direction
		score     int
	}{
		{name: "left wall", snake: []types.Position{pos(0, 10)}, direction: types.DirectionLeft},
		{name: "right wall", snake: []types.Position{pos(19, 3)}, direction: types.DirectionRight, score: 4},
		{name: "top wall", snake: []types.Position{pos(7, 0)}, direction: types.DirectionUp},
		{name: "bottom wall", snake: []types.Position{pos(7, 19)}, direction: types.DirectionDown, score: 2},
		{
			name:      "reversal into the neck",
			snake:     []types.Position{pos(5, 5), pos(4, 5)},
			direction: types.DirectionLeft,
			score:     1,
		},
		{
			name:      "body",
			snake:     []types.Position{pos(5, 5), pos(5, 6), pos(6, 6), pos(6, 5), pos(7, 5)},
			direction: types.DirectionRight,
			score:     4,
		},
		{
			// the tail cell is about to be vacated but still counts
			name:      "tail",
			snake:     []types.Position{pos(5, 5), pos(5, 6), pos(6, 6), pos(6, 5)},
			direction: types.DirectionRight,
			score:     3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newStartedEngine(t, tt.snake, tt.direction, pos(15, 15), tt.score)

			e.Advance()

			snapshot := e.Snapshot()
			assert.Equal(t, types.StatusStopped, snapshot.Status)
			assert.Equal(t, tt.snake, snapshot.Snake)
			assert.Equal(t, tt.score, snapshot.Score)
			assert.Equal(t, tt.score, snapshot.PreviousScore)
			assert.Equal(t, []int{tt.score}, e.store.Submitted())

			events, err := e.events.ReadAllMessages()
			require.NoError(t, err)
			require.Len(t, events, 1)
			event, ok := events[0].(*types.GameOverEvent)
			require.True(t, ok)
			assert.Equal(t, tt.score, event.Score)
			assert.Equal(t, snapshot.SessionID, event.SessionID)

			// a stopped game does not advance or submit again
			e.Advance()
			assert.Equal(t, tt.snake, e.Snapshot().Snake)
			assert.Len(t, e.store.Submitted(), 1)
		})
	}
}

func TestEngine_collisionRaisesHighScore(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(0, 0)}, types.DirectionUp, pos(5, 5), 6)
	e.highScore = 4

	e.Advance()
	assert.Equal(t, 6, e.Snapshot().HighScore)

	e.StartGame(context.Background())
	e.snake = []types.Position{pos(0, 0)}
	e.direction = types.DirectionLeft
	e.score = 2
	e.Advance()

	snapshot := e.Snapshot()
	assert.Equal(t, 6, snapshot.HighScore)
	assert.Equal(t, 2, snapshot.PreviousScore)
}

func TestEngine_foodMaySpawnOnSnake(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(10, 10), pos(9, 10)}, types.DirectionRight, pos(11, 10), 0, pos(10, 10))

	e.Advance()

	snapshot := e.Snapshot()
	assert.Equal(t, pos(10, 10), snapshot.Food)
	assert.True(t, snapshot.Occupies(snapshot.Food))
}

func TestEngine_SetDirection(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(10, 10)}, types.DirectionRight, pos(0, 0), 0)

	e.SetDirection(types.DirectionDown)
	e.Advance()
	assert.Equal(t, []types.Position{pos(10, 11)}, e.Snapshot().Snake)

	// the latest direction before a tick wins
	e.SetDirection(types.DirectionLeft)
	e.SetDirection(types.DirectionDown)
	e.Advance()
	assert.Equal(t, []types.Position{pos(10, 12)}, e.Snapshot().Snake)
}

func TestEngine_SetDirectionOutsideRunning(t *testing.T) {
	e := NewEngine(NewEngineOptions{})

	e.SetDirection(types.DirectionUp)
	e.Advance()
	snapshot := e.Snapshot()
	assert.Equal(t, types.StatusMenu, snapshot.Status)
	assert.Equal(t, types.DirectionUp, snapshot.Direction)

	// starting a game restores the default direction
	e.StartGame(context.Background())
	assert.Equal(t, types.DefaultDirection, e.Snapshot().Direction)
}

func TestEngine_staleTickIgnored(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(10, 10)}, types.DirectionRight, pos(0, 0), 0)
	staleGeneration := e.generation

	e.StartGame(context.Background())
	e.tick(staleGeneration)
	assert.Equal(t, []types.Position{pos(10, 10)}, e.Snapshot().Snake)

	e.tick(e.generation)
	assert.Equal(t, []types.Position{pos(11, 10)}, e.Snapshot().Snake)
}

func TestEngine_Stop(t *testing.T) {
	e := newStartedEngine(t, []types.Position{pos(10, 10)}, types.DirectionRight, pos(0, 0), 3)

	e.Stop()

	snapshot := e.Snapshot()
	assert.Equal(t, types.StatusMenu, snapshot.Status)
	assert.Empty(t, e.store.Submitted())

	e.Advance()
	assert.Equal(t, []types.Position{pos(10, 10)}, e.Snapshot().Snake)
}

func TestEngine_RefreshHighScore(t *testing.T) {
	store := &recordingScoreStore{highScore: 17}
	e := NewEngine(NewEngineOptions{ScoreStore: store})

	e.RefreshHighScore(context.Background())
	assert.Equal(t, 17, e.Snapshot().HighScore)

	// a lower stored score does not lower the cached one
	store.highScore = 3
	e.RefreshHighScore(context.Background())
	assert.Equal(t, 17, e.Snapshot().HighScore)
}

func TestEngine_publishesState(t *testing.T) {
	ctx := context.Background()
	stateManager := state.NewInMemoryStateManager()
	e := NewEngine(NewEngineOptions{
		FoodGenerator: &sequenceFoodGenerator{positions: []types.Position{pos(11, 10), pos(2, 2)}},
		StateManager:  stateManager,
	})

	e.StartGame(ctx)
	e.Advance()

	snapshot, err := stateManager.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRunning, snapshot.Status)
	assert.Equal(t, []types.Position{pos(11, 10), pos(10, 10)}, snapshot.Snake)
	assert.Equal(t, 1, snapshot.Score)
	assert.Equal(t, pos(2, 2), snapshot.Food)
}

func TestEngine_ticker(t *testing.T) {
	store := &recordingScoreStore{}
	events := queue.NewInMemoryQueue(4)
	e := NewEngine(NewEngineOptions{
		TickInterval:  time.Millisecond,
		FoodGenerator: &sequenceFoodGenerator{positions: []types.Position{pos(0, 0)}},
		ScoreStore:    store,
		EventQueue:    events,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.StartGame(ctx)

	// heading right from the start the snake reaches the wall on its own
	assert.Eventually(t, func() bool {
		return events.Size() == 1
	}, 2*time.Second, time.Millisecond)

	snapshot := e.Snapshot()
	assert.Equal(t, types.StatusStopped, snapshot.Status)
	assert.Equal(t, []types.Position{pos(constants.GridSize-1, constants.SnakeStartingY)}, snapshot.Snake)
	assert.Equal(t, []int{0}, store.Submitted())

	// the ticker is gone once the game is over
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, snapshot.Snake, e.Snapshot().Snake)
	assert.Len(t, store.Submitted(), 1)
}

func TestEngine_tickerStopsWithContext(t *testing.T) {
	e := NewEngine(NewEngineOptions{
		TickInterval:  time.Hour,
		FoodGenerator: &sequenceFoodGenerator{positions: []types.Position{pos(0, 0)}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	e.StartGame(ctx)
	cancel()
	e.Stop()

	assert.Nil(t, e.stopTicker)
}

// TestEngine_randomPlay drives the engine with random input and checks the
// invariants that hold after every step.
func TestEngine_randomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	directions := []types.Direction{types.DirectionUp, types.DirectionDown, types.DirectionLeft, types.DirectionRight}

	for game := 0; game < 50; game++ {
		store := &recordingScoreStore{}
		e := NewEngine(NewEngineOptions{
			FoodGenerator: NewRandomFoodGenerator(int64(game)),
			ScoreStore:    store,
		})
		e.StartGame(context.Background())

		for step := 0; step < 500; step++ {
			before := e.Snapshot()
			if before.Status != types.StatusRunning {
				break
			}
			if rng.Intn(4) == 0 {
				e.SetDirection(directions[rng.Intn(len(directions))])
			}
			direction := e.Snapshot().Direction
			e.Advance()
			after := e.Snapshot()

			head, _ := before.Head()
			candidate := head.Move(direction)
			assert.Equal(t, 1, abs(candidate.X-head.X)+abs(candidate.Y-head.Y))

			if after.Status == types.StatusStopped {
				assert.True(t, !candidate.InBounds(before.GridSize) || before.Occupies(candidate))
				assert.Equal(t, before.Score, after.Score)
				assert.Equal(t, []int{before.Score}, store.Submitted())
				break
			}

			require.GreaterOrEqual(t, len(after.Snake), 1)
			for _, segment := range after.Snake {
				require.True(t, segment.InBounds(after.GridSize), "segment %s out of bounds", segment)
			}
			assert.Equal(t, candidate, after.Snake[0])
			if candidate == before.Food {
				assert.Equal(t, len(before.Snake)+1, len(after.Snake))
				assert.Equal(t, before.Score+1, after.Score)
			} else {
				assert.Equal(t, len(before.Snake), len(after.Snake))
				assert.Equal(t, before.Score, after.Score)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
