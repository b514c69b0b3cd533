package game

import (
	"context"
	"fmt"

	"github.com/cbodonnell/snake/client/input"
	"github.com/cbodonnell/snake/client/scenes"
	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/queue"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Engine is the game engine as seen by the presentation layer.
type Engine interface {
	StartGame(ctx context.Context)
	Stop()
	SetDirection(d gametypes.Direction)
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// ctx bounds the lifetime of every game session started by the client.
	ctx context.Context
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// engine runs the game sessions.
	engine Engine
	// eventQueue receives game over events from the engine.
	eventQueue queue.Queue
	// stateManager holds the latest engine snapshot.
	stateManager state.StateManager
	// mode is the current game mode.
	mode GameMode
	// scene is the current scene.
	scene scenes.Scene
}

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModePlay
	GameModeOver
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModePlay:
		return "Play"
	case GameModeOver:
		return "Over"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Ctx          context.Context
	Debug        bool
	Engine       Engine
	EventQueue   queue.Queue
	StateManager state.StateManager
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if opts.EventQueue == nil {
		return nil, fmt.Errorf("event queue is required")
	}
	if opts.StateManager == nil {
		return nil, fmt.Errorf("state manager is required")
	}
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	g := &Game{
		ctx:          ctx,
		debug:        opts.Debug,
		engine:       opts.Engine,
		eventQueue:   opts.EventQueue,
		stateManager: opts.StateManager,
	}

	if err := g.loadMenu(); err != nil {
		return nil, fmt.Errorf("failed to load menu scene: %v", err)
	}

	return g, nil
}

func (g *Game) Mode() GameMode {
	return g.mode
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadMenu() error {
	menu, err := scenes.NewMenuScene(scenes.MenuSceneOptions{
		OnStart: func() {
			if err := g.loadGame(); err != nil {
				log.Error("Failed to start game: %v", err)
			}
		},
		StateManager: g.stateManager,
	})
	if err != nil {
		return fmt.Errorf("failed to create menu scene: %v", err)
	}
	if err := g.SetScene(menu); err != nil {
		return fmt.Errorf("failed to set menu scene: %v", err)
	}
	g.mode = GameModeMenu
	return nil
}

// loadGame starts a new session and switches to the play scene.
func (g *Game) loadGame() error {
	gameScene, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Controller:   g.engine,
		StateManager: g.stateManager,
		ScreenWidth:  DefaultScreenWidth,
		ScreenHeight: DefaultScreenHeight,
	})
	if err != nil {
		return fmt.Errorf("failed to create game scene: %v", err)
	}
	// events from an abandoned session must not end the new one
	g.eventQueue.ClearQueue()
	g.engine.StartGame(g.ctx)
	if err := g.SetScene(gameScene); err != nil {
		return fmt.Errorf("failed to set game scene: %v", err)
	}
	g.mode = GameModePlay
	return nil
}

func (g *Game) loadGameOver(event *gametypes.GameOverEvent) error {
	gameOver, err := scenes.NewGameOverScene(event.Score, event.HighScore)
	if err != nil {
		return fmt.Errorf("failed to create game over scene: %v", err)
	}
	if err := g.SetScene(gameOver); err != nil {
		return fmt.Errorf("failed to set game over scene: %v", err)
	}
	g.mode = GameModeOver
	return nil
}

func (g *Game) Update() error {
	// Handle engine events
	if err := g.processEvents(); err != nil {
		return fmt.Errorf("failed to process events: %v", err)
	}

	// Handle input
	if err := g.handleInput(); err != nil {
		return fmt.Errorf("failed to handle input: %v", err)
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

// processEvents drains the event queue and shows the game over scene
// for the last finished game.
func (g *Game) processEvents() error {
	items, err := g.eventQueue.ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read events: %v", err)
	}

	var gameOver *gametypes.GameOverEvent
	for _, item := range items {
		switch event := item.(type) {
		case *gametypes.GameOverEvent:
			gameOver = event
		default:
			log.Warn("Unhandled event type: %T", item)
		}
	}

	if gameOver == nil || g.mode != GameModePlay {
		return nil
	}
	log.Debug("Game over for session %s with score %d", gameOver.SessionID, gameOver.Score)
	return g.loadGameOver(gameOver)
}

func (g *Game) handleInput() error {
	switch g.mode {
	case GameModeMenu:
		if input.IsStartKeyJustPressed() {
			if err := g.loadGame(); err != nil {
				return fmt.Errorf("failed to load game scene: %v", err)
			}
		}
	case GameModePlay:
		if input.IsNegativeJustPressed() {
			g.engine.Stop()
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
			break
		}
		if input.IsRestartJustPressed() {
			if err := g.loadGame(); err != nil {
				return fmt.Errorf("failed to load game scene: %v", err)
			}
		}
	case GameModeOver:
		if input.IsRestartJustPressed() {
			if err := g.loadGame(); err != nil {
				return fmt.Errorf("failed to load game scene: %v", err)
			}
			break
		}
		if input.IsPositiveJustPressed() || input.IsNegativeJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Mode: %s", g.mode))
}

const (
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
)

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
