package replay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StampBoard/internal/logging"
)

// Clock supplies the waits between timeline steps. Tests replace it to run a
// replay without sleeping.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Renderer draws a replay. Show and Animate start work and return at once;
// the player does the waiting.
type Renderer[H any] interface {
	// Show adds items to the scene in the given state.
	Show(items []Item[H], t Transform)
	// Animate moves items from step.From to step.To over step.Duration.
	Animate(items []Item[H], step Step)
	// Release removes items from the scene and frees what they hold.
	Release(items []Item[H])
}

// Status is the lifecycle of a Player.
//
//	Idle ──Run──► Running ──► Completed
//	  │              │
//	  └──Cancel──────┴──────► Cancelled
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Player steps through a Plan. A player runs once; a cancelled player cannot
// be restarted.
type Player[H any] struct {
	clock Clock

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// NewPlayer returns an idle player. A nil clock uses wall time.
func NewPlayer[H any](clock Clock) *Player[H] {
	if clock == nil {
		clock = realClock{}
	}
	return &Player[H]{clock: clock}
}

// Status reports where the player is.
func (p *Player[H]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Cancel stops a running replay, or prevents an idle one from starting.
// Items already shown are released by Run before it returns.
func (p *Player[H]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status == StatusIdle {
		p.status = StatusCancelled
	}
	if p.cancel != nil {
		p.cancel()
	}
}

// Run plays plan on r and blocks until it completes or ctx is cancelled.
// onComplete is called once, after the last item is released, only when the
// replay finishes. A cancelled replay returns an error wrapping ErrCancelled.
func (p *Player[H]) Run(ctx context.Context, plan *Plan[H], r Renderer[H], onComplete func()) error {
	p.mu.Lock()
	switch p.status {
	case StatusIdle:
	case StatusCancelled:
		p.mu.Unlock()
		return ErrCancelled
	default:
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.cancel = cancel
	p.status = StatusRunning
	p.mu.Unlock()

	log := logging.Logger()
	log.Info("replay started", "items", len(plan.Items), "skipped", plan.Skipped, "duration", plan.Duration())

	shown := false
	for _, st := range plan.Steps {
		switch st.Kind {
		case StepAppear:
			if !shown {
				r.Show(plan.Items, Hidden)
				shown = true
			}
			r.Animate(plan.Items[st.Item:st.Item+1], st)
		case StepDismiss:
			r.Animate(plan.Items, st)
		case StepComplete:
			if shown {
				r.Release(plan.Items)
			}
			p.finish(StatusCompleted)
			log.Info("replay completed")
			if onComplete != nil {
				onComplete()
			}
			return nil
		}
		if err := p.wait(ctx, st.Duration); err != nil {
			if shown {
				r.Release(plan.Items)
			}
			p.finish(StatusCancelled)
			log.Info("replay cancelled", "step", st.Kind, "item", st.Item)
			return err
		}
	}
	// A plan always ends with StepComplete; reaching here means it was built by hand.
	p.finish(StatusCompleted)
	if onComplete != nil {
		onComplete()
	}
	return nil
}

func (p *Player[H]) finish(s Status) {
	p.mu.Lock()
	p.status = s
	p.cancel = nil
	p.mu.Unlock()
}

func (p *Player[H]) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case <-p.clock.After(d):
		return nil
	}
}
