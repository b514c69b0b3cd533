package term

// Sounds plays feedback for game events. Implementations must not block.
type Sounds interface {
	Eat()
	GameOver()
}

// NoSounds is used when audio is disabled or unavailable.
type NoSounds struct{}

func (NoSounds) Eat()      {}
func (NoSounds) GameOver() {}
