package geo

import (
	"math"

	"github.com/udisondev/wayfinder/internal/model"
)

// Distance returns the Euclidean distance between a and b (floor ids ignored).
func Distance(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DistanceSquared returns the squared distance between a and b.
func DistanceSquared(a, b model.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// ProjectOntoSegment returns the point of segment [a,b] closest to p and the
// projection parameter t clamped to [0,1]. Degenerate segments project onto a.
func ProjectOntoSegment(p, a, b model.Point) (model.Point, float64) {
	l2 := DistanceSquared(a, b)
	if l2 == 0 {
		return model.Point{X: a.X, Y: a.Y}, 0
	}
	t := ((p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)) / l2
	t = math.Max(0, math.Min(1, t))
	return model.Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}, t
}

// DistanceToSegment returns the minimum distance from p to segment [a,b].
func DistanceToSegment(p, a, b model.Point) float64 {
	proj, _ := ProjectOntoSegment(p, a, b)
	return Distance(p, proj)
}

// SegmentsIntersect reports whether segments [p1,p2] and [q1,q2] share at least
// one point. Touching endpoints and collinear overlaps count as intersections.
func SegmentsIntersect(p1, p2, q1, q2 model.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases: an endpoint lies on the other segment.
	switch {
	case d1 == 0 && onSegment(q1, q2, p1):
		return true
	case d2 == 0 && onSegment(q1, q2, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, q1):
		return true
	case d4 == 0 && onSegment(p1, p2, q2):
		return true
	}
	return false
}

// Bearing returns the heading from a to b in degrees, in (-180, 180].
// Angles follow the floor plan axes: 0° points along +X, 90° along +Y.
func Bearing(a, b model.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// NormalizeAngle maps deg into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// orientation is the cross product (b-a)×(c-a): >0 counter-clockwise, <0 clockwise, 0 collinear.
func orientation(a, b, c model.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment assumes p is collinear with [a,b].
func onSegment(a, b, p model.Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
