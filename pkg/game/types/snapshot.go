package types

// Snapshot is a point-in-time copy of the engine state for presentation.
// It shares no memory with the engine.
type Snapshot struct {
	// SessionID identifies the game the snapshot belongs to.
	// It is empty before the first game starts.
	SessionID     string     `json:"sessionId"`
	Status        Status     `json:"status"`
	GridSize      int        `json:"gridSize"`
	Snake         []Position `json:"snake"`
	Direction     Direction  `json:"direction"`
	Food          Position   `json:"food"`
	Score         int        `json:"score"`
	HighScore     int        `json:"highScore"`
	PreviousScore int        `json:"previousScore"`
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	c := *s
	c.Snake = make([]Position, len(s.Snake))
	copy(c.Snake, s.Snake)
	return &c
}

// Head returns the first segment of the snake.
// It returns false if the snake is empty.
func (s *Snapshot) Head() (Position, bool) {
	if len(s.Snake) == 0 {
		return Position{}, false
	}
	return s.Snake[0], true
}

// Occupies reports whether any snake segment is at p.
func (s *Snapshot) Occupies(p Position) bool {
	for _, segment := range s.Snake {
		if segment == p {
			return true
		}
	}
	return false
}
