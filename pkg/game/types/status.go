package types

// Status is the lifecycle state of a game engine.
type Status int

const (
	// StatusMenu is the initial state, before any game has been started.
	StatusMenu Status = iota
	// StatusRunning means the game loop is ticking.
	StatusRunning
	// StatusStopped means the last game ended in a collision.
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "Menu"
	case StatusRunning:
		return "Running"
	case StatusStopped:
		return "Stopped"
	}
	return "Unknown"
}
