package scenes

import (
	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/client/objects"
)

type GameOverScene struct {
	*BaseScene
}

var _ Scene = &GameOverScene{}

func NewGameOverScene(score, highScore int) (Scene, error) {
	root := objects.NewBaseObject("gameover-root")
	root.AddChild(objects.NewTextOverlayObject("overlay-gameover", "Game Over!", fonts.TTFLargeFont, -40))
	root.AddChild(objects.NewTextOverlayObject("overlay-score", objects.FormatScoreLine(score, highScore), fonts.TTFNormalFont, 10))
	root.AddChild(objects.NewTextOverlayObject("overlay-hint", "Enter: menu   R: play again", fonts.TTFSmallFont, 50))
	return &GameOverScene{
		BaseScene: NewBaseScene(root),
	}, nil
}
