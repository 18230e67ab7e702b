package state

import (
	"github.com/google/uuid"
)

// Event is a message the Engine hands back to its caller. The caller type
// switches on the concrete value:
//
//	PlacementAdded  a stamp should be drawn
//	StrokeRemoved   the views of a stroke should go (undo)
//	CountChanged    the total shrank (undo, clear)
//	LimitReached    a placement was refused because the cap is reached
//
// Seq orders every event an engine ever produced.
type Event interface {
	Sequence() uint64
}

// PlacementAdded reports an accepted placement. Index is its position in the
// flattened history.
type PlacementAdded struct {
	Seq       uint64
	Index     int
	StrokeID  uuid.UUID
	Placement Placement
}

// StrokeRemoved reports a stroke taken off the end of the history.
type StrokeRemoved struct {
	Seq      uint64
	StrokeID uuid.UUID
	Count    int
}

// CountChanged carries the new total after a removal.
type CountChanged struct {
	Seq   uint64
	Total int
}

// LimitReached is emitted at most once per stroke attempt.
type LimitReached struct {
	Seq uint64
	Max int
}

func (e PlacementAdded) Sequence() uint64 { return e.Seq }
func (e StrokeRemoved) Sequence() uint64  { return e.Seq }
func (e CountChanged) Sequence() uint64   { return e.Seq }
func (e LimitReached) Sequence() uint64   { return e.Seq }

// sequencer hands out event numbers for one drawing session.
type sequencer struct {
	session uuid.UUID
	n       uint64
}

func newSequencer() sequencer {
	return sequencer{session: uuid.New()}
}

func (s *sequencer) next() uint64 {
	s.n++
	return s.n
}
