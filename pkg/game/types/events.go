package types

// GameOverEvent is emitted once per session when the snake collides.
type GameOverEvent struct {
	SessionID string
	Score     int
	HighScore int
}
