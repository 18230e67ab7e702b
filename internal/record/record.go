// Package record encodes a drawing session into the portable placement record
// and back. Records store integer pixels, so a drawing made on one display
// density replays at the same relative positions on another.
//
// The text form is JSON with snake_case keys:
//
//	{"version":1,"points":[{"id":"heart","x":20,"y":40}],"original_width":750,"original_height":1000}
//
// Stroke boundaries are not stored.
package record

import (
	"encoding/json"
	"fmt"

	"StampBoard/internal/geom"
	"StampBoard/internal/logging"
	"StampBoard/internal/state"
)

// Version is written into every record. Records without a version field are
// read as the original, unversioned format.
const Version = 1

// Point is one placement in pixels.
type Point struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// Record is a full drawing session in pixels.
type Record struct {
	Version        int     `json:"version,omitempty"`
	Points         []Point `json:"points"`
	OriginalWidth  int     `json:"original_width"`
	OriginalHeight int     `json:"original_height"`
}

// FromHistory flattens strokes in order and converts them, with the canvas
// size, to pixels.
func FromHistory(strokes []state.Stroke, canvas geom.Size, c Codec) (Record, error) {
	var pls []state.Placement
	for _, s := range strokes {
		pls = append(pls, s.Placements...)
	}
	return FromPlacements(pls, canvas, c)
}

// FromPlacements converts an already flattened placement list.
func FromPlacements(pls []state.Placement, canvas geom.Size, c Codec) (Record, error) {
	if !(c.Density > 0) {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidDensity, c.Density)
	}
	if canvas.Width < 0 || canvas.Height < 0 {
		return Record{}, fmt.Errorf("%w: canvas %vx%v", ErrNegativeCoordinate, canvas.Width, canvas.Height)
	}
	r := Record{Version: Version, Points: make([]Point, 0, len(pls))}
	for i, pl := range pls {
		if pl.Position.X < 0 || pl.Position.Y < 0 {
			return Record{}, fmt.Errorf("%w: placement %d at %v", ErrNegativeCoordinate, i, pl.Position)
		}
		x, y := c.EncodePoint(pl.Position)
		r.Points = append(r.Points, Point{ID: string(pl.Stamp), X: x, Y: y})
	}
	r.OriginalWidth, r.OriginalHeight = c.EncodeSize(canvas)
	return r, nil
}

// Placements converts the record back to logical placements.
func (r Record) Placements(c Codec) []state.Placement {
	out := make([]state.Placement, len(r.Points))
	for i, p := range r.Points {
		out[i] = state.Placement{Stamp: state.StampID(p.ID), Position: c.DecodePoint(p.X, p.Y)}
	}
	return out
}

// Size returns the original canvas in logical units.
func (r Record) Size(c Codec) geom.Size {
	return c.DecodeSize(r.OriginalWidth, r.OriginalHeight)
}

// PixelSize returns the original canvas in pixels.
func (r Record) PixelSize() geom.Size {
	return geom.Sz(float64(r.OriginalWidth), float64(r.OriginalHeight))
}

// Marshal returns the compact JSON form of r.
func Marshal(r Record) ([]byte, error) {
	if r.Points == nil {
		r.Points = []Point{}
	}
	return json.Marshal(r)
}

type wirePoint struct {
	ID *string `json:"id"`
	X  *int    `json:"x"`
	Y  *int    `json:"y"`
}

type wireRecord struct {
	Version        *int         `json:"version"`
	Points         *[]wirePoint `json:"points"`
	OriginalWidth  *int         `json:"original_width"`
	OriginalHeight *int         `json:"original_height"`
}

// Unmarshal parses a record. Any structural problem yields a *DecodeError and
// no record. Stamp ids are not checked against anything.
func Unmarshal(data []byte) (Record, error) {
	r, err := unmarshal(data)
	if err != nil {
		logging.Logger().Warn("record rejected", "err", err)
		return Record{}, err
	}
	return r, nil
}

func unmarshal(data []byte) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return Record{}, &DecodeError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	r := Record{Version: Version}
	if w.Version != nil {
		if *w.Version < 0 || *w.Version > Version {
			return Record{}, &DecodeError{Field: "version", Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, *w.Version)}
		}
	}

	var err error
	if r.OriginalWidth, err = required(w.OriginalWidth, "original_width"); err != nil {
		return Record{}, err
	}
	if r.OriginalHeight, err = required(w.OriginalHeight, "original_height"); err != nil {
		return Record{}, err
	}
	if w.Points == nil {
		return Record{}, &DecodeError{Field: "points", Err: ErrMissingField}
	}

	r.Points = make([]Point, len(*w.Points))
	for i, wp := range *w.Points {
		if wp.ID == nil {
			return Record{}, &DecodeError{Field: fmt.Sprintf("points[%d].id", i), Err: ErrMissingField}
		}
		x, err := required(wp.X, fmt.Sprintf("points[%d].x", i))
		if err != nil {
			return Record{}, err
		}
		y, err := required(wp.Y, fmt.Sprintf("points[%d].y", i))
		if err != nil {
			return Record{}, err
		}
		r.Points[i] = Point{ID: *wp.ID, X: x, Y: y}
	}
	return r, nil
}

func required(v *int, field string) (int, error) {
	if v == nil {
		return 0, &DecodeError{Field: field, Err: ErrMissingField}
	}
	if *v < 0 {
		return 0, &DecodeError{Field: field, Err: fmt.Errorf("%w: %d", ErrNegativeValue, *v)}
	}
	return *v, nil
}
