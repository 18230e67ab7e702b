package ui

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

const stampPixels = 96

// Stamp is one brush the toolbar offers.
type Stamp struct {
	ID    string
	Name  string
	Image image.Image
}

// DefaultStamps draws the built-in brushes.
func DefaultStamps() []Stamp {
	return []Stamp{
		{ID: "heart", Name: "Heart", Image: drawStamp(heartPath, color.NRGBA{R: 230, G: 50, B: 80, A: 255})},
		{ID: "star", Name: "Star", Image: drawStamp(starPath, color.NRGBA{R: 250, G: 190, B: 30, A: 255})},
		{ID: "drop", Name: "Drop", Image: drawStamp(dropPath, color.NRGBA{R: 40, G: 140, B: 230, A: 255})},
		{ID: "leaf", Name: "Leaf", Image: drawStamp(leafPath, color.NRGBA{R: 60, G: 180, B: 90, A: 255})},
	}
}

// StampImages indexes stamps by id for replay.
func StampImages(stamps []Stamp) map[string]image.Image {
	m := make(map[string]image.Image, len(stamps))
	for _, s := range stamps {
		m[s.ID] = s.Image
	}
	return m
}

func drawStamp(path func(z *vector.Rasterizer, s float32), c color.Color) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, stampPixels, stampPixels))
	z := vector.NewRasterizer(stampPixels, stampPixels)
	path(z, stampPixels)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}

func heartPath(z *vector.Rasterizer, s float32) {
	z.MoveTo(s*0.5, s*0.9)
	z.CubeTo(s*0.1, s*0.6, s*0.0, s*0.35, s*0.2, s*0.18)
	z.CubeTo(s*0.35, s*0.05, s*0.48, s*0.15, s*0.5, s*0.28)
	z.CubeTo(s*0.52, s*0.15, s*0.65, s*0.05, s*0.8, s*0.18)
	z.CubeTo(s*1.0, s*0.35, s*0.9, s*0.6, s*0.5, s*0.9)
	z.ClosePath()
}

func starPath(z *vector.Rasterizer, s float32) {
	cx, cy := float64(s)/2, float64(s)/2
	outer, inner := float64(s)*0.48, float64(s)*0.2
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func dropPath(z *vector.Rasterizer, s float32) {
	z.MoveTo(s*0.5, s*0.05)
	z.CubeTo(s*0.65, s*0.3, s*0.85, s*0.5, s*0.85, s*0.65)
	z.CubeTo(s*0.85, s*0.85, s*0.68, s*0.95, s*0.5, s*0.95)
	z.CubeTo(s*0.32, s*0.95, s*0.15, s*0.85, s*0.15, s*0.65)
	z.CubeTo(s*0.15, s*0.5, s*0.35, s*0.3, s*0.5, s*0.05)
	z.ClosePath()
}

func leafPath(z *vector.Rasterizer, s float32) {
	z.MoveTo(s*0.1, s*0.9)
	z.QuadTo(s*0.05, s*0.1, s*0.9, s*0.1)
	z.QuadTo(s*0.95, s*0.9, s*0.1, s*0.9)
	z.ClosePath()
}
