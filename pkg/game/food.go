package game

import (
	"math/rand"

	"github.com/cbodonnell/snake/pkg/game/types"
)

// FoodGenerator chooses where food appears.
type FoodGenerator interface {
	// Next returns a cell inside a gridSize x gridSize grid.
	Next(gridSize int) types.Position
}

var _ FoodGenerator = &RandomFoodGenerator{}

// RandomFoodGenerator picks a cell uniformly at random over the whole grid.
// It does not avoid cells occupied by the snake.
// It is not safe for concurrent use; the engine calls it under its lock.
type RandomFoodGenerator struct {
	rng *rand.Rand
}

func NewRandomFoodGenerator(seed int64) *RandomFoodGenerator {
	return &RandomFoodGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (g *RandomFoodGenerator) Next(gridSize int) types.Position {
	return types.Position{
		X: g.rng.Intn(gridSize),
		Y: g.rng.Intn(gridSize),
	}
}
