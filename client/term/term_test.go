package term

import (
	"context"
	"testing"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEngine struct {
	starts     int
	stops      int
	directions []gametypes.Direction
}

func (e *recordingEngine) StartGame(ctx context.Context) {
	e.starts++
}

func (e *recordingEngine) Stop() {
	e.stops++
}

func (e *recordingEngine) SetDirection(d gametypes.Direction) {
	e.directions = append(e.directions, d)
}

type recordingSounds struct {
	eats      int
	gameOvers int
}

func (s *recordingSounds) Eat() {
	s.eats++
}

func (s *recordingSounds) GameOver() {
	s.gameOvers++
}

func newTestApp(t *testing.T) (*App, *recordingEngine, queue.Queue, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	engine := &recordingEngine{}
	eventQueue := queue.NewInMemoryQueue(4)
	app, err := NewApp(NewAppOptions{
		Screen:       screen,
		Engine:       engine,
		StateManager: state.NewInMemoryStateManager(),
		EventQueue:   eventQueue,
	})
	require.NoError(t, err)
	return app, engine, eventQueue, screen
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		want  gametypes.Direction
		ok    bool
	}{
		{name: "arrow up", event: key(tcell.KeyUp), want: gametypes.DirectionUp, ok: true},
		{name: "arrow down", event: key(tcell.KeyDown), want: gametypes.DirectionDown, ok: true},
		{name: "arrow left", event: key(tcell.KeyLeft), want: gametypes.DirectionLeft, ok: true},
		{name: "arrow right", event: key(tcell.KeyRight), want: gametypes.DirectionRight, ok: true},
		{name: "w", event: runeKey('w'), want: gametypes.DirectionUp, ok: true},
		{name: "j", event: runeKey('j'), want: gametypes.DirectionDown, ok: true},
		{name: "a", event: runeKey('a'), want: gametypes.DirectionLeft, ok: true},
		{name: "l", event: runeKey('l'), want: gametypes.DirectionRight, ok: true},
		{name: "other rune", event: runeKey('x'), ok: false},
		{name: "enter", event: key(tcell.KeyEnter), ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyDirection(tt.event)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestApp_menuStartsGame(t *testing.T) {
	app, engine, _, _ := newTestApp(t)
	ctx := context.Background()

	assert.False(t, app.HandleEvent(ctx, key(tcell.KeyEnter)))
	assert.Equal(t, ModePlay, app.Mode())
	assert.Equal(t, 1, engine.starts)
}

func TestApp_menuQuits(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	assert.True(t, app.HandleEvent(context.Background(), runeKey('q')))
}

func TestApp_playForwardsDirections(t *testing.T) {
	app, engine, _, _ := newTestApp(t)
	ctx := context.Background()
	app.HandleEvent(ctx, key(tcell.KeyEnter))

	app.HandleEvent(ctx, key(tcell.KeyUp))
	app.HandleEvent(ctx, runeKey('a'))

	assert.Equal(t, []gametypes.Direction{gametypes.DirectionUp, gametypes.DirectionLeft}, engine.directions)
}

func TestApp_escapeAbandonsGame(t *testing.T) {
	app, engine, _, _ := newTestApp(t)
	ctx := context.Background()
	app.HandleEvent(ctx, key(tcell.KeyEnter))

	assert.False(t, app.HandleEvent(ctx, key(tcell.KeyEscape)))
	assert.Equal(t, ModeMenu, app.Mode())
	assert.Equal(t, 1, engine.stops)
}

func TestApp_gameOverAndRestart(t *testing.T) {
	app, engine, eventQueue, _ := newTestApp(t)
	ctx := context.Background()
	app.HandleEvent(ctx, key(tcell.KeyEnter))

	require.NoError(t, eventQueue.Enqueue(&gametypes.GameOverEvent{SessionID: "s", Score: 4, HighScore: 9}))
	require.NoError(t, app.frame())
	assert.Equal(t, ModeOver, app.Mode())

	app.HandleEvent(ctx, runeKey('r'))
	assert.Equal(t, ModePlay, app.Mode())
	assert.Equal(t, 2, engine.starts)
}

func TestApp_staleGameOverIgnoredInMenu(t *testing.T) {
	app, _, eventQueue, _ := newTestApp(t)

	require.NoError(t, eventQueue.Enqueue(&gametypes.GameOverEvent{Score: 1}))
	require.NoError(t, app.frame())
	assert.Equal(t, ModeMenu, app.Mode())
	assert.Zero(t, eventQueue.Size())
}

func TestDraw_board(t *testing.T) {
	_, _, _, screen := newTestApp(t)
	snapshot := &gametypes.Snapshot{
		Status:   gametypes.StatusRunning,
		GridSize: 5,
		Snake:    []gametypes.Position{{X: 2, Y: 1}, {X: 1, Y: 1}},
		Food:     gametypes.Position{X: 4, Y: 4},
		Score:    1,
	}

	Draw(screen, snapshot, ModePlay, nil)

	_, _, headStyle, _ := screen.GetContent(2*cellWidth, boardTop+1)
	assert.Equal(t, styleHead, headStyle)
	_, _, bodyStyle, _ := screen.GetContent(1*cellWidth+1, boardTop+1)
	assert.Equal(t, styleSnake, bodyStyle)
	_, _, foodStyle, _ := screen.GetContent(4*cellWidth, boardTop+4)
	assert.Equal(t, styleFood, foodStyle)
	r, _, emptyStyle, _ := screen.GetContent(0, boardTop)
	assert.Equal(t, '.', r)
	assert.Equal(t, styleEmpty, emptyStyle)
	first, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'S', first)
}

func TestApp_sounds(t *testing.T) {
	ctx := context.Background()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	stateManager := state.NewInMemoryStateManager()
	eventQueue := queue.NewInMemoryQueue(4)
	sounds := &recordingSounds{}
	app, err := NewApp(NewAppOptions{
		Screen:       screen,
		Engine:       &recordingEngine{},
		StateManager: stateManager,
		EventQueue:   eventQueue,
		Sounds:       sounds,
	})
	require.NoError(t, err)
	app.HandleEvent(ctx, key(tcell.KeyEnter))

	snapshot := &gametypes.Snapshot{Status: gametypes.StatusRunning, GridSize: 20, Score: 1}
	require.NoError(t, stateManager.Set(ctx, snapshot))
	require.NoError(t, app.frame())
	require.NoError(t, app.frame())
	assert.Equal(t, 1, sounds.eats)

	require.NoError(t, eventQueue.Enqueue(&gametypes.GameOverEvent{Score: 1}))
	require.NoError(t, app.frame())
	assert.Equal(t, 1, sounds.gameOvers)
}
