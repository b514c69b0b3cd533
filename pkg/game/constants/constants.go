package constants

import "time"

const (
	// GridSize is the number of cells along each side of the square grid
	GridSize int = 20
	// SnakeStartingX is the column of the single segment a new snake starts with
	SnakeStartingX int = 10
	// SnakeStartingY is the row of the single segment a new snake starts with
	SnakeStartingY int = 10

	// TickInterval is the period of the game loop
	TickInterval time.Duration = 100 * time.Millisecond // 10 ticks per second

	// ScoresCollection is the name of the collection that holds score records
	ScoresCollection string = "snake_scores"
	// DefaultHighScore is reported when no score has been recorded or the store is unreachable
	DefaultHighScore int = 0
)
