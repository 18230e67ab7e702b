package replay

import "fmt"

// Easing names the progress curve of an animated step. Renderers map it to
// their own animation curves.
type Easing int

const (
	EaseLinear Easing = iota
	// EaseInOut starts and ends slowly. Used for the appear animation.
	EaseInOut
)

func (e Easing) String() string {
	switch e {
	case EaseLinear:
		return "linear"
	case EaseInOut:
		return "ease-in-out"
	default:
		return fmt.Sprintf("Easing(%d)", int(e))
	}
}
