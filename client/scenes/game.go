package scenes

import (
	"fmt"

	"github.com/cbodonnell/snake/client/input"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/game/constants"
	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/state"
)

// Controller is the subset of the engine a play scene drives.
type Controller interface {
	SetDirection(d gametypes.Direction)
}

type GameScene struct {
	*BaseScene

	controller Controller
}

type GameSceneOptions struct {
	Controller   Controller
	StateManager state.StateManager
	// ScreenWidth and ScreenHeight are used to center the board.
	ScreenWidth  int
	ScreenHeight int
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (Scene, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	if opts.StateManager == nil {
		return nil, fmt.Errorf("state manager is required")
	}

	boardX, boardY := BoardOrigin(opts.ScreenWidth, opts.ScreenHeight)
	root := objects.NewBaseObject("game-root")
	root.AddChild(objects.NewBoardObject("board", opts.StateManager, float32(boardX), float32(boardY)))
	root.AddChild(objects.NewHUDObject("hud", opts.StateManager, boardX, boardY-8))

	return &GameScene{
		BaseScene:  NewBaseScene(root),
		controller: opts.Controller,
	}, nil
}

// BoardOrigin returns the top left corner of a board centered on the screen.
func BoardOrigin(screenWidth, screenHeight int) (int, int) {
	boardSize := BoardPixels()
	return (screenWidth - boardSize) / 2, (screenHeight - boardSize) / 2
}

// BoardPixels is the width and height of the board in pixels.
func BoardPixels() int {
	return constants.GridSize * objects.CellSize
}

func (s *GameScene) Update() error {
	if d, ok := input.JustPressedDirection(); ok {
		s.controller.SetDirection(d)
	}
	return s.BaseScene.Update()
}
