// Package geom holds the small amount of plane geometry the stamp board needs.
// Positions are logical units, measured from the top-left corner of a canvas.
package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in logical units.
type Point = r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Size is a width and height in logical units.
type Size struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Contains reports whether p lies in the half-open box [0,Width)×[0,Height).
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Insets are margins taken off each edge of a viewport.
type Insets struct {
	Top    float64 `yaml:"top" json:"top"`
	Left   float64 `yaml:"left" json:"left"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Right  float64 `yaml:"right" json:"right"`
}

// Rect is an axis aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point
	Size   Size
}
