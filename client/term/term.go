package term

import (
	"context"
	"fmt"
	"time"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultFrameInterval is the redraw period of the terminal.
	DefaultFrameInterval = 50 * time.Millisecond
)

// Engine is the game engine as seen by the terminal client.
type Engine interface {
	StartGame(ctx context.Context)
	Stop()
	SetDirection(d gametypes.Direction)
}

type Mode int

const (
	ModeMenu Mode = iota
	ModePlay
	ModeOver
)

// App renders the game to a terminal screen and feeds key presses to the engine.
type App struct {
	screen        tcell.Screen
	engine        Engine
	stateManager  state.StateManager
	eventQueue    queue.Queue
	sounds        Sounds
	frameInterval time.Duration

	mode     Mode
	gameOver *gametypes.GameOverEvent

	// lastScore is the score drawn on the previous frame.
	lastScore int
}

type NewAppOptions struct {
	// Screen must already be initialized. App does not finalize it.
	Screen       tcell.Screen
	Engine       Engine
	StateManager state.StateManager
	EventQueue   queue.Queue
	// Sounds defaults to NoSounds.
	Sounds       Sounds

	// FrameInterval defaults to DefaultFrameInterval.
	FrameInterval time.Duration
}

func NewApp(opts NewAppOptions) (*App, error) {
	if opts.Screen == nil {
		return nil, fmt.Errorf("screen is required")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if opts.StateManager == nil {
		return nil, fmt.Errorf("state manager is required")
	}
	if opts.EventQueue == nil {
		return nil, fmt.Errorf("event queue is required")
	}
	frameInterval := opts.FrameInterval
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	sounds := opts.Sounds
	if sounds == nil {
		sounds = NoSounds{}
	}
	return &App{
		screen:        opts.Screen,
		sounds:        sounds,
		engine:        opts.Engine,
		stateManager:  opts.StateManager,
		eventQueue:    opts.EventQueue,
		frameInterval: frameInterval,
	}, nil
}

func (a *App) Mode() Mode {
	return a.mode
}

// Run draws frames and handles input until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(a.frameInterval)
	defer ticker.Stop()

	if err := a.frame(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if done := a.HandleEvent(ctx, ev); done {
				return nil
			}
			if err := a.frame(); err != nil {
				return err
			}
		case <-ticker.C:
			if err := a.frame(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies a terminal event and reports whether the app should exit.
func (a *App) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	}
	return false
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		a.engine.Stop()
		return true
	}

	switch a.mode {
	case ModeMenu:
		switch {
		case ev.Key() == tcell.KeyEnter || ev.Rune() == ' ':
			a.startGame(ctx)
		case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
			return true
		}
	case ModePlay:
		if d, ok := KeyDirection(ev); ok {
			a.engine.SetDirection(d)
			return false
		}
		switch {
		case ev.Key() == tcell.KeyEscape:
			a.engine.Stop()
			a.mode = ModeMenu
		case ev.Rune() == 'r':
			a.startGame(ctx)
		}
	case ModeOver:
		switch {
		case ev.Rune() == 'r':
			a.startGame(ctx)
		case ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape:
			a.mode = ModeMenu
		case ev.Rune() == 'q':
			return true
		}
	}
	return false
}

func (a *App) startGame(ctx context.Context) {
	a.eventQueue.ClearQueue()
	a.gameOver = nil
	a.lastScore = 0
	a.engine.StartGame(ctx)
	a.mode = ModePlay
}

// processEvents moves to the game over screen when the engine reports one.
func (a *App) processEvents() error {
	items, err := a.eventQueue.ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read events: %v", err)
	}
	for _, item := range items {
		event, ok := item.(*gametypes.GameOverEvent)
		if !ok {
			log.Warn("Unhandled event type: %T", item)
			continue
		}
		if a.mode == ModePlay {
			log.Debug("Game over for session %s with score %d", event.SessionID, event.Score)
			a.gameOver = event
			a.mode = ModeOver
			a.sounds.GameOver()
		}
	}
	return nil
}

func (a *App) frame() error {
	if err := a.processEvents(); err != nil {
		return err
	}
	snapshot, err := a.stateManager.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get game state: %v", err)
	}
	if a.mode == ModePlay && snapshot.Score > a.lastScore {
		a.sounds.Eat()
	}
	a.lastScore = snapshot.Score
	a.screen.Clear()
	Draw(a.screen, snapshot, a.mode, a.gameOver)
	a.screen.Show()
	return nil
}

// KeyDirection maps arrow keys, WASD and hjkl to directions.
func KeyDirection(ev *tcell.EventKey) (gametypes.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return gametypes.DirectionUp, true
	case tcell.KeyDown:
		return gametypes.DirectionDown, true
	case tcell.KeyLeft:
		return gametypes.DirectionLeft, true
	case tcell.KeyRight:
		return gametypes.DirectionRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return gametypes.DirectionUp, true
		case 's', 'j':
			return gametypes.DirectionDown, true
		case 'a', 'h':
			return gametypes.DirectionLeft, true
		case 'd', 'l':
			return gametypes.DirectionRight, true
		}
	}
	return gametypes.DirectionUp, false
}
