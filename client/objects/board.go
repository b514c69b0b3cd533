package objects

import (
	"context"
	"fmt"
	"image/color"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// CellSize is the width and height of one grid cell in pixels.
	CellSize = 20
	// cellGap is the space left between neighboring cells.
	cellGap = 1
)

var (
	cellColor  = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	snakeColor = color.NRGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff}
	headColor  = color.NRGBA{R: 0x00, G: 0x60, B: 0x00, A: 0xff}
	foodColor  = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
)

// BoardObject draws the grid, the snake and the food from the latest snapshot.
type BoardObject struct {
	*BaseObject

	stateManager state.StateManager
	snapshot     *gametypes.Snapshot
	offsetX      float32
	offsetY      float32
}

func NewBoardObject(id string, stateManager state.StateManager, offsetX, offsetY float32) *BoardObject {
	return &BoardObject{
		BaseObject:   NewBaseObject(id),
		stateManager: stateManager,
		offsetX:      offsetX,
		offsetY:      offsetY,
	}
}

func (o *BoardObject) Update() error {
	snapshot, err := o.stateManager.Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get game state: %v", err)
	}
	o.snapshot = snapshot
	return nil
}

// Snapshot returns the snapshot drawn on the last frame.
func (o *BoardObject) Snapshot() *gametypes.Snapshot {
	return o.snapshot
}

func (o *BoardObject) Draw(screen *ebiten.Image) {
	if o.snapshot == nil {
		return
	}

	for y := 0; y < o.snapshot.GridSize; y++ {
		for x := 0; x < o.snapshot.GridSize; x++ {
			o.drawCell(screen, gametypes.Position{X: x, Y: y}, cellColor)
		}
	}

	if o.snapshot.Status == gametypes.StatusMenu {
		return
	}

	o.drawCell(screen, o.snapshot.Food, foodColor)
	for i, segment := range o.snapshot.Snake {
		c := snakeColor
		if i == 0 {
			c = headColor
		}
		o.drawCell(screen, segment, c)
	}
}

func (o *BoardObject) drawCell(screen *ebiten.Image, p gametypes.Position, c color.Color) {
	x := o.offsetX + float32(p.X*CellSize)
	y := o.offsetY + float32(p.Y*CellSize)
	vector.DrawFilledRect(screen, x, y, CellSize-cellGap, CellSize-cellGap, c, false)
}
