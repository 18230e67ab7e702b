package record

import (
	"fmt"
	"math"

	"StampBoard/internal/geom"
)

// Codec converts between logical units and the integer pixel unit a Record
// stores. Density is the number of pixels per logical unit, e.g. a display
// scale of 2 or 3.
type Codec struct {
	Density float64
}

// NewCodec returns a codec for density, which must be positive and finite.
func NewCodec(density float64) (Codec, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return Codec{}, fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	return Codec{Density: density}, nil
}

// RoundHalfUp rounds a non-negative value to the nearest integer, with .5
// going up. The integer part is truncated toward zero first, so the rule does
// not hold for negative input; callers only pass canvas coordinates.
func RoundHalfUp(v float64) int {
	i := int(v)
	if v-float64(i) >= 0.5 {
		return i + 1
	}
	return i
}

// Encode converts a logical length to pixels.
func (c Codec) Encode(v float64) int {
	return RoundHalfUp(v * c.Density)
}

// Decode converts pixels back to a logical length. Sub-pixel precision lost by
// Encode is not recovered.
func (c Codec) Decode(px int) float64 {
	return float64(px) / c.Density
}

// EncodePoint converts a logical point to pixel coordinates.
func (c Codec) EncodePoint(p geom.Point) (x, y int) {
	return c.Encode(p.X), c.Encode(p.Y)
}

// DecodePoint converts pixel coordinates to a logical point.
func (c Codec) DecodePoint(x, y int) geom.Point {
	return geom.Pt(c.Decode(x), c.Decode(y))
}

// EncodeSize converts a logical size to pixels.
func (c Codec) EncodeSize(s geom.Size) (w, h int) {
	return c.Encode(s.Width), c.Encode(s.Height)
}

// DecodeSize converts a pixel size to logical units.
func (c Codec) DecodeSize(w, h int) geom.Size {
	return geom.Sz(c.Decode(w), c.Decode(h))
}
