package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// IntersectCircleSegment returns a point where the circle of the given radius
// around center crosses the directed segment start→end.
//
// The segment is parametrised as P(u) = start + u·(end-start) and substituted
// into the circle equation, giving A·u² + B·u + C = 0. The root
// u1 = (-B+√Δ)/2A is tried before u2 = (-B-√Δ)/2A; the first one inside [0,1]
// wins. When start lies inside the circle (the usual case while stamping, where
// start is the last stamp) only u1 is in range and the result moves forward
// along the segment.
//
// ok is false when start == end, when the discriminant is negative, or when
// neither root lies on the segment.
func IntersectCircleSegment(center Point, radius float64, start, end Point) (p Point, ok bool) {
	if start == end {
		return Point{}, false
	}
	d := r2.Sub(end, start)
	a := r2.Dot(d, d)
	b := 2 * r2.Dot(d, r2.Sub(start, center))
	c := r2.Dot(center, center) + r2.Dot(start, start) - 2*r2.Dot(center, start) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Point{}, false
	}
	sq := math.Sqrt(disc)
	for _, u := range [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if u >= 0 && u <= 1 {
			return r2.Add(start, r2.Scale(u, d)), true
		}
	}
	return Point{}, false
}
