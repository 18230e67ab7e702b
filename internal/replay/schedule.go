// Package replay turns a placement record into a timed animation: stamps
// appear one after another in drawing order, stay for a moment, then all fade
// out together.
package replay

import (
	"fmt"
	"time"

	"StampBoard/internal/geom"
	"StampBoard/internal/logging"
	"StampBoard/internal/record"
)

// Timing splits the animation budget. The appear phase is Total minus Hold and
// is shared equally by the stamps; the dismiss phase follows the hold.
type Timing struct {
	Total   time.Duration
	Hold    time.Duration
	Dismiss time.Duration
}

// DefaultTiming is 3s of appearing, 1s of holding and 0.5s of dismissing.
func DefaultTiming() Timing {
	return Timing{Total: 4 * time.Second, Hold: time.Second, Dismiss: 500 * time.Millisecond}
}

// Appear returns the length of the appear phase.
func (t Timing) Appear() time.Duration { return t.Total - t.Hold }

// Validate checks every phase has a positive length.
func (t Timing) Validate() error {
	if t.Hold <= 0 || t.Dismiss <= 0 || t.Appear() <= 0 {
		return fmt.Errorf("%w: total %v hold %v dismiss %v", ErrInvalidTiming, t.Total, t.Hold, t.Dismiss)
	}
	return nil
}

// Transform is the visual state of a stamp.
type Transform struct {
	Scale float64
	Alpha float64
}

var (
	// Hidden is where a stamp starts before its appear animation.
	Hidden = Transform{Scale: 0.3, Alpha: 0}
	// Shown is the resting state.
	Shown = Transform{Scale: 1, Alpha: 1}
	// Gone is where every stamp ends up after the dismiss animation.
	Gone = Transform{Scale: 2, Alpha: 0}
)

// StepKind identifies a step of the replay timeline.
type StepKind int

const (
	StepAppear StepKind = iota
	StepHold
	StepDismiss
	StepComplete
)

func (k StepKind) String() string {
	switch k {
	case StepAppear:
		return "appear"
	case StepHold:
		return "hold"
	case StepDismiss:
		return "dismiss"
	case StepComplete:
		return "complete"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is one entry of the timeline. Item is the index into Plan.Items for
// appear steps and -1 for steps that cover every item.
type Step struct {
	Kind     StepKind
	Item     int
	Start    time.Duration
	Duration time.Duration
	From, To Transform
	Ease     Easing
}

// Item is a stamp ready to draw.
type Item[H any] struct {
	// Index is the placement's position in the record.
	Index    int
	ID       string
	Image    H
	Position geom.Point
	// Size is the display size, nil for the image's own size.
	Size *geom.Size
}

// Options describe where and how a record is replayed.
type Options struct {
	Viewport  geom.Size
	Insets    geom.Insets
	StampSize *geom.Size
	Timing    Timing
}

// Plan is a fully computed replay.
type Plan[H any] struct {
	Layout Layout
	Items  []Item[H]
	Steps  []Step
	// Slice is each stamp's share of the appear phase.
	Slice time.Duration
	// Skipped counts placements whose id had no image.
	Skipped int
}

// Duration returns when the timeline completes.
func (p *Plan[H]) Duration() time.Duration {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].Start
}

// Schedule lays the record out in the viewport and builds its timeline.
// Placements whose id is missing from images are skipped. With nothing left
// the timeline holds a single complete step at zero.
func Schedule[H any](rec record.Record, images map[string]H, opts Options) (*Plan[H], error) {
	if err := opts.Timing.Validate(); err != nil {
		return nil, err
	}
	layout, err := Fit(rec.PixelSize(), opts.Viewport, opts.Insets)
	if err != nil {
		return nil, err
	}

	plan := &Plan[H]{Layout: layout}
	for i, p := range rec.Points {
		img, ok := images[p.ID]
		if !ok {
			plan.Skipped++
			continue
		}
		plan.Items = append(plan.Items, Item[H]{
			Index:    i,
			ID:       p.ID,
			Image:    img,
			Position: layout.Map(p.X, p.Y),
			Size:     opts.StampSize,
		})
	}
	if plan.Skipped > 0 {
		logging.Logger().Warn("replay skipped unknown stamps", "skipped", plan.Skipped)
	}

	n := len(plan.Items)
	if n == 0 {
		plan.Steps = []Step{{Kind: StepComplete, Item: -1}}
		return plan, nil
	}

	t := opts.Timing
	plan.Slice = t.Appear() / time.Duration(n)
	plan.Steps = make([]Step, 0, n+3)
	var at time.Duration
	for i := range plan.Items {
		plan.Steps = append(plan.Steps, Step{
			Kind: StepAppear, Item: i, Start: at, Duration: plan.Slice,
			From: Hidden, To: Shown, Ease: EaseInOut,
		})
		at += plan.Slice
	}
	plan.Steps = append(plan.Steps,
		Step{Kind: StepHold, Item: -1, Start: at, Duration: t.Hold, From: Shown, To: Shown, Ease: EaseLinear},
		Step{Kind: StepDismiss, Item: -1, Start: at + t.Hold, Duration: t.Dismiss, From: Shown, To: Gone, Ease: EaseLinear},
		Step{Kind: StepComplete, Item: -1, Start: at + t.Hold + t.Dismiss},
	)
	return plan, nil
}
