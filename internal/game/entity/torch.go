package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// TorchChar is the glyph of a placed torch.
const TorchChar = '!'

// Torch is a light source placed on the map.
type Torch struct {
	ID     string
	X, Y   int
	Radius int
}

// NewTorch places a torch at (x, y).
func NewTorch(x, y, radius int) *Torch {
	return &Torch{ID: uuid.New().String(), X: x, Y: y, Radius: radius}
}

// Describe returns the torch's description block.
func (t *Torch) Describe() []string {
	return []string{"Torch", fmt.Sprintf("Radius: %d", t.Radius)}
}
