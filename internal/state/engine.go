// Package state turns a raw pointer trajectory into evenly spaced stamp
// placements and keeps the stroke history of a drawing session.
//
// The Engine is not safe for concurrent use. Pointer events must reach it in
// order from a single goroutine.
package state

import (
	"fmt"

	"StampBoard/internal/geom"
	"StampBoard/internal/logging"

	"github.com/google/uuid"
)

type phase int

const (
	phaseIdle phase = iota
	phaseActive
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseActive:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Engine is the stamp placement state machine.
//
//	        Begin
//	Idle ──────────► Active ──┐ Extend
//	  ▲                │  ▲───┘
//	  └── End/Cancel ──┘
//
// Undo and Clear are only accepted while Idle.
type Engine struct {
	cfg     Config
	canvas  geom.Size
	stamp   StampID
	history History
	seq     sequencer

	phase         phase
	stroke        uuid.UUID
	anchor        geom.Point // centre of the newest stamp in the open stroke
	last          geom.Point // previous raw pointer position
	limitReported bool
}

// NewEngine returns an idle engine with an empty history and no canvas.
// Call SetCanvas and SetActiveStamp before the first Begin.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.StampSize != nil {
		sz := *cfg.StampSize
		cfg.StampSize = &sz
	}
	return &Engine{cfg: cfg, seq: newSequencer()}, nil
}

// SessionID identifies this drawing session.
func (e *Engine) SessionID() uuid.UUID { return e.seq.session }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	cfg := e.cfg
	if cfg.StampSize != nil {
		sz := *cfg.StampSize
		cfg.StampSize = &sz
	}
	return cfg
}

// SetCanvas sets the drawing bounds. Placements are accepted inside
// [0,Width)×[0,Height).
func (e *Engine) SetCanvas(size geom.Size) error {
	if e.phase == phaseActive {
		return ErrStrokeActive
	}
	e.canvas = size
	return nil
}

// Canvas returns the current drawing bounds.
func (e *Engine) Canvas() geom.Size { return e.canvas }

// SetActiveStamp selects the stamp used by the next stroke. An empty id
// unsets it. A stroke in progress keeps the stamp it started with.
func (e *Engine) SetActiveStamp(id StampID) { e.stamp = id }

// ActiveStamp returns the selected stamp, ok is false when none is set.
func (e *Engine) ActiveStamp() (id StampID, ok bool) { return e.stamp, e.stamp != "" }

// Active reports whether a stroke is in progress.
func (e *Engine) Active() bool { return e.phase == phaseActive }

// Count returns the total number of placements.
func (e *Engine) Count() int { return e.history.Count() }

// IsEmpty reports whether nothing has been placed.
func (e *Engine) IsEmpty() bool { return e.history.Len() == 0 }

// Strokes returns a copy of the history.
func (e *Engine) Strokes() []Stroke { return e.history.Strokes() }

// Placements returns the history flattened in drawing order.
func (e *Engine) Placements() []Placement { return e.history.Placements() }

// Begin handles pointer down. The first stamp of a stroke goes exactly at p
// with no spacing check. Nothing happens when no stamp is selected or p is
// outside the canvas; otherwise a full history yields a single LimitReached.
func (e *Engine) Begin(p geom.Point) []Event {
	log := logging.Logger()
	if e.phase != phaseIdle {
		log.Warn("begin ignored", "phase", e.phase)
		return nil
	}
	if e.stamp == "" {
		log.Debug("begin ignored, no active stamp")
		return nil
	}
	if !e.canvas.Contains(p) {
		log.Debug("begin outside canvas", "x", p.X, "y", p.Y)
		return nil
	}
	if e.history.Count() >= e.cfg.MaxPlacements {
		return []Event{e.limitReached()}
	}

	pl := Placement{Stamp: e.stamp, Position: p}
	e.stroke = e.history.open(pl)
	e.phase = phaseActive
	e.anchor = p
	e.last = p
	e.limitReported = false
	log.Info("stroke started", "stroke", e.stroke, "stamp", e.stamp)
	return []Event{e.added(pl)}
}

// Extend handles pointer move. Every point on the segment from the previous
// pointer position to p that lies MinSpacing away from the newest stamp gets a
// stamp, so a fast swipe between two samples can yield several placements.
func (e *Engine) Extend(p geom.Point) []Event {
	if e.phase != phaseActive {
		return nil
	}
	if p == e.last {
		return nil
	}

	r := e.cfg.MinSpacing
	start := e.last
	e.last = p
	// Every pass either places a stamp or leaves the loop, so the room left
	// under the cap bounds it, plus one pass to report the limit.
	steps := e.cfg.MaxPlacements - e.history.Count() + 1

	stamp := e.history.strokes[e.history.Len()-1].Placements[0].Stamp
	var events []Event
	for ; steps > 0; steps-- {
		q, ok := geom.IntersectCircleSegment(e.anchor, r, start, p)
		if !ok {
			break
		}
		if !e.canvas.Contains(q) {
			break
		}
		if e.history.Count() >= e.cfg.MaxPlacements {
			if !e.limitReported {
				e.limitReported = true
				events = append(events, e.limitReached())
			}
			break
		}
		pl := Placement{Stamp: stamp, Position: q}
		e.history.extend(pl)
		events = append(events, e.added(pl))
		e.anchor = q
		start = q
	}
	return events
}

// End handles pointer up. The stroke stays in the history.
func (e *Engine) End() {
	e.finish("ended")
}

// Cancel handles a cancelled pointer. Placements already made are kept.
func (e *Engine) Cancel() {
	e.finish("cancelled")
}

func (e *Engine) finish(how string) {
	if e.phase != phaseActive {
		logging.Logger().Debug("stroke " + how + " while idle, ignored")
		return
	}
	logging.Logger().Info("stroke "+how, "stroke", e.stroke, "total", e.history.Count())
	e.phase = phaseIdle
	e.stroke = uuid.Nil
	e.anchor = geom.Point{}
	e.last = geom.Point{}
	e.limitReported = false
}

// Undo removes the newest stroke and returns how many placements went with it.
// It fails with ErrStrokeActive during a stroke and is a no-op on an empty history.
func (e *Engine) Undo() (removed int, events []Event, err error) {
	if e.phase == phaseActive {
		logging.Logger().Warn("undo rejected during stroke", "stroke", e.stroke)
		return 0, nil, ErrStrokeActive
	}
	s, ok := e.history.pop()
	if !ok {
		return 0, nil, nil
	}
	logging.Logger().Info("stroke undone", "stroke", s.ID, "removed", s.Len(), "total", e.history.Count())
	events = []Event{
		StrokeRemoved{Seq: e.seq.next(), StrokeID: s.ID, Count: s.Len()},
		CountChanged{Seq: e.seq.next(), Total: e.history.Count()},
	}
	return s.Len(), events, nil
}

// Clear empties the history and returns the number of placements it held.
func (e *Engine) Clear() (removed int, events []Event, err error) {
	if e.phase == phaseActive {
		logging.Logger().Warn("clear rejected during stroke", "stroke", e.stroke)
		return 0, nil, ErrStrokeActive
	}
	n := e.history.clear()
	if n == 0 {
		return 0, nil, nil
	}
	logging.Logger().Info("history cleared", "removed", n)
	return n, []Event{CountChanged{Seq: e.seq.next(), Total: 0}}, nil
}

func (e *Engine) added(pl Placement) Event {
	ev := PlacementAdded{
		Seq:       e.seq.next(),
		Index:     e.history.Count() - 1,
		StrokeID:  e.stroke,
		Placement: pl,
	}
	logging.Logger().Debug("placement added", "index", ev.Index, "stamp", pl.Stamp, "x", pl.Position.X, "y", pl.Position.Y)
	return ev
}

func (e *Engine) limitReached() Event {
	logging.Logger().Info("placement limit reached", "max", e.cfg.MaxPlacements)
	return LimitReached{Seq: e.seq.next(), Max: e.cfg.MaxPlacements}
}
