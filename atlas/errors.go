package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFit is matched by every *NoFitError.
	ErrNoFit = errors.New("sprite does not fit into the atlas")
	// ErrInvalidSprite reports a sprite with a non-positive width or height.
	ErrInvalidSprite = errors.New("invalid sprite")
	// ErrInvalidSettings reports settings that cannot describe a bin.
	ErrInvalidSettings = errors.New("invalid atlas settings")
	// ErrNoSprites is returned when there is nothing to pack.
	ErrNoSprites = errors.New("no sprites to pack")
)

// NoFitError identifies the sprite that could not be placed. Packing the same input with the
// same settings fails the same way, so the only remedy is a larger maximum size, less padding
// or fewer sprites.
type NoFitError struct {
	Sprite    Sprite
	MaxWidth  int
	MaxHeight int
	Padding   int
}

func (e *NoFitError) Error() string {
	return fmt.Sprintf("sprite %q (%dx%d, padding %d) does not fit into %dx%d: increase the maximum size, reduce padding or remove sprites",
		e.Sprite.Name, e.Sprite.Width, e.Sprite.Height, e.Padding, e.MaxWidth, e.MaxHeight)
}

// Is makes errors.Is(err, ErrNoFit) report true.
func (e *NoFitError) Is(target error) bool {
	return target == ErrNoFit
}
