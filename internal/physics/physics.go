// Package physics provides the vector and circle geometry used by the simulation.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap. Touching circles do not overlap.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// Normal returns the unit vector pointing from `from` to `to` together with
// the distance between them. ok is false when the points coincide, in which
// case no direction exists.
func Normal(from, to Vec2) (n Vec2, dist float64, ok bool) {
	d := to.Sub(from)
	dist = d.Len()
	if dist == 0 {
		return Vec2{}, 0, false
	}
	return d.Scale(1 / dist), dist, true
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
