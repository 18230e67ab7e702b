package state

import (
	"fmt"

	"StampBoard/internal/geom"

	"github.com/google/uuid"
)

// StampID names the image a stamp refers to. The engine never resolves it.
type StampID string

// Placement is one stamp at a position on the canvas.
type Placement struct {
	Stamp    StampID
	Position geom.Point
}

// Stroke is every placement made by one pointer down → up gesture. A stored
// stroke is never empty. Strokes are what Undo removes.
type Stroke struct {
	ID         uuid.UUID
	Placements []Placement
}

// Len returns the number of placements in the stroke.
func (s Stroke) Len() int { return len(s.Placements) }

// Config is fixed for the lifetime of an Engine.
type Config struct {
	// StampSize is the display size of a stamp, nil to use the image's own size.
	StampSize *geom.Size
	// MinSpacing is the centre-to-centre distance between consecutive stamps
	// of a stroke.
	MinSpacing float64
	// MaxPlacements caps the placements across the whole history.
	MaxPlacements int
}

const (
	DefaultMinSpacing    = 35
	DefaultMaxPlacements = 100
)

// DefaultConfig returns auto-sized stamps, 35 units apart, at most 100 of them.
func DefaultConfig() Config {
	return Config{
		MinSpacing:    DefaultMinSpacing,
		MaxPlacements: DefaultMaxPlacements,
	}
}

// Validate checks the config can drive an Engine.
func (c Config) Validate() error {
	if !(c.MinSpacing > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSpacing, c.MinSpacing)
	}
	if c.MaxPlacements <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPlacements, c.MaxPlacements)
	}
	if c.StampSize != nil && c.StampSize.Empty() {
		return fmt.Errorf("%w: %vx%v", ErrInvalidStampSize, c.StampSize.Width, c.StampSize.Height)
	}
	return nil
}
