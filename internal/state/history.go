package state

import (
	"github.com/google/uuid"
)

// History is the ordered list of strokes of a session. Order is both
// chronological and drawing order.
type History struct {
	strokes []Stroke
	count   int
}

// Len returns the number of strokes.
func (h *History) Len() int { return len(h.strokes) }

// Count returns the number of placements across all strokes.
func (h *History) Count() int { return h.count }

// Strokes returns a deep copy of the strokes.
func (h *History) Strokes() []Stroke {
	out := make([]Stroke, len(h.strokes))
	for i, s := range h.strokes {
		out[i] = Stroke{ID: s.ID, Placements: append([]Placement(nil), s.Placements...)}
	}
	return out
}

// Placements flattens the history into a single ordered slice.
func (h *History) Placements() []Placement {
	out := make([]Placement, 0, h.count)
	for _, s := range h.strokes {
		out = append(out, s.Placements...)
	}
	return out
}

// open starts a new stroke holding p and returns its id.
func (h *History) open(p Placement) uuid.UUID {
	id := uuid.New()
	h.strokes = append(h.strokes, Stroke{ID: id, Placements: []Placement{p}})
	h.count++
	return id
}

// extend appends p to the newest stroke.
func (h *History) extend(p Placement) {
	last := &h.strokes[len(h.strokes)-1]
	last.Placements = append(last.Placements, p)
	h.count++
}

func (h *History) pop() (Stroke, bool) {
	if len(h.strokes) == 0 {
		return Stroke{}, false
	}
	s := h.strokes[len(h.strokes)-1]
	h.strokes = h.strokes[:len(h.strokes)-1]
	h.count -= len(s.Placements)
	return s, true
}

func (h *History) clear() int {
	n := h.count
	h.strokes = nil
	h.count = 0
	return n
}
