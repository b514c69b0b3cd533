package term

import (
	"fmt"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
	"github.com/gdamore/tcell/v2"
)

const (
	// cellWidth is the number of columns per grid cell; terminal glyphs
	// are about twice as tall as they are wide.
	cellWidth = 2
	// boardTop is the first row of the board, below the score line.
	boardTop = 2
)

var (
	styleDefault = tcell.StyleDefault
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSnake   = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleHead    = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	styleFood    = tcell.StyleDefault.Background(tcell.ColorRed)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// Draw renders one frame. The board is drawn in every mode so the final
// position stays visible behind the game over text.
func Draw(screen tcell.Screen, snapshot *gametypes.Snapshot, mode Mode, gameOver *gametypes.GameOverEvent) {
	switch mode {
	case ModeMenu:
		drawText(screen, 0, 0, styleTitle, "SNAKE")
		drawText(screen, 0, 2, styleDefault, fmt.Sprintf("Best score: %d", snapshot.HighScore))
		drawText(screen, 0, 3, styleDefault, fmt.Sprintf("Previous score: %d", snapshot.PreviousScore))
		drawText(screen, 0, 5, styleDefault, "Enter: start   q: quit")
		return
	case ModePlay:
		drawText(screen, 0, 0, styleDefault, scoreLine(snapshot.Score, snapshot.HighScore))
	case ModeOver:
		score, highScore := snapshot.Score, snapshot.HighScore
		if gameOver != nil {
			score, highScore = gameOver.Score, gameOver.HighScore
		}
		drawText(screen, 0, 0, styleTitle, "GAME OVER  "+scoreLine(score, highScore))
	}

	drawBoard(screen, snapshot)

	hint := "arrows/wasd: steer   r: restart   esc: menu"
	if mode == ModeOver {
		hint = "r: play again   enter: menu   q: quit"
	}
	drawText(screen, 0, boardTop+snapshot.GridSize+1, styleDefault, hint)
}

func drawBoard(screen tcell.Screen, snapshot *gametypes.Snapshot) {
	for y := 0; y < snapshot.GridSize; y++ {
		for x := 0; x < snapshot.GridSize; x++ {
			drawCell(screen, gametypes.Position{X: x, Y: y}, '.', styleEmpty)
		}
	}
	drawCell(screen, snapshot.Food, ' ', styleFood)
	for i, segment := range snapshot.Snake {
		style := styleSnake
		if i == 0 {
			style = styleHead
		}
		drawCell(screen, segment, ' ', style)
	}
}

func drawCell(screen tcell.Screen, p gametypes.Position, r rune, style tcell.Style) {
	for i := 0; i < cellWidth; i++ {
		screen.SetContent(p.X*cellWidth+i, boardTop+p.Y, r, nil, style)
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func scoreLine(score, highScore int) string {
	return fmt.Sprintf("Score: %d   Best: %d", score, highScore)
}
