package objects

import (
	"context"
	"fmt"
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// HUDObject shows the current and best score above the board.
type HUDObject struct {
	*BaseObject

	stateManager state.StateManager
	line         string
	x            int
	y            int
}

func NewHUDObject(id string, stateManager state.StateManager, x, y int) *HUDObject {
	return &HUDObject{
		BaseObject:   NewBaseObject(id),
		stateManager: stateManager,
		x:            x,
		y:            y,
	}
}

func (o *HUDObject) Update() error {
	snapshot, err := o.stateManager.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get game state: %v", err)
	}
	o.line = FormatScoreLine(snapshot.Score, snapshot.HighScore)
	return nil
}

func (o *HUDObject) Draw(screen *ebiten.Image) {
	text.Draw(screen, o.line, fonts.TTFSmallFont, o.x, o.y, color.White)
}

func FormatScoreLine(score, highScore int) string {
	return fmt.Sprintf("Score: %d   Best: %d", score, highScore)
}
