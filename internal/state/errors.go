package state

import "errors"

var (
	// ErrStrokeActive is returned by operations that are only valid between strokes.
	ErrStrokeActive = errors.New("stroke in progress")

	ErrInvalidSpacing       = errors.New("min spacing must be positive")
	ErrInvalidMaxPlacements = errors.New("max placements must be positive")
	ErrInvalidStampSize     = errors.New("stamp size must be positive")
)
