package replay

import (
	"fmt"

	"StampBoard/internal/geom"
)

// Layout places a recorded canvas inside a viewport.
type Layout struct {
	// Frame is where the recorded canvas lands, in viewport coordinates.
	Frame geom.Rect
	// Scale converts record pixels to viewport units.
	Scale float64
}

// Fit scales a canvas of the given size uniformly into the viewport minus its
// insets. A canvas relatively wider than the available area fills its width
// and is centred vertically in the whole viewport; otherwise it fills the
// height and is centred horizontally.
func Fit(canvas, viewport geom.Size, insets geom.Insets) (Layout, error) {
	if canvas.Empty() {
		return Layout{}, fmt.Errorf("%w: %vx%v", ErrEmptyCanvas, canvas.Width, canvas.Height)
	}
	maxW := viewport.Width - insets.Left - insets.Right
	maxH := viewport.Height - insets.Top - insets.Bottom
	if maxW <= 0 || maxH <= 0 {
		return Layout{}, fmt.Errorf("%w: %vx%v after insets", ErrEmptyViewport, maxW, maxH)
	}

	if canvas.Width/canvas.Height > maxW/maxH {
		h := maxW / canvas.Width * canvas.Height
		return Layout{
			Frame: geom.Rect{Origin: geom.Pt(insets.Left, (viewport.Height-h)/2), Size: geom.Sz(maxW, h)},
			Scale: maxW / canvas.Width,
		}, nil
	}
	w := maxH / canvas.Height * canvas.Width
	return Layout{
		Frame: geom.Rect{Origin: geom.Pt((viewport.Width-w)/2, insets.Top), Size: geom.Sz(w, maxH)},
		Scale: maxH / canvas.Height,
	}, nil
}

// Map converts a record pixel position to viewport coordinates.
func (l Layout) Map(x, y int) geom.Point {
	return geom.Pt(l.Frame.Origin.X+float64(x)*l.Scale, l.Frame.Origin.Y+float64(y)*l.Scale)
}
