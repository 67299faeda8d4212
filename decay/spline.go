// Package decay provides the pure math that maps a wake sample's age, travel
// distance, and owning-vessel weight to a dimensionless intensity in [0, 1].
// All functions are total over non-negative real inputs and never extrapolate
// past the configured control-point range.
package decay

import "log"

// A ControlPoint is one knot of a wake-strength envelope. Position is a
// normalized trail distance. Tangent is supplied explicitly, never estimated.
type ControlPoint struct {
	Position float64
	Value    float64
	Tangent  float64
}

// ControlPointsMustBeValid panics unless the points are strictly increasing
// in position and cover the full [0, 1] range. Malformed envelopes are a
// fatal configuration error.
func ControlPointsMustBeValid(points []ControlPoint) {
	if len(points) < 2 {
		log.Panic("decay envelope needs at least two control points")
	}

	if points[0].Position != 0 {
		log.Panic("decay envelope must start at position 0")
	}

	if points[len(points)-1].Position != 1 {
		log.Panic("decay envelope must end at position 1")
	}

	for i := 1; i < len(points); i++ {
		if points[i].Position <= points[i-1].Position {
			log.Panic("decay envelope control points must be " +
				"strictly increasing in position")
		}
	}
}

// EvalSpline evaluates the envelope at a normalized trail distance using
// cubic Hermite interpolation between the two bracketing control points.
// Inputs outside the knot range clamp to the nearest boundary value. The
// result is clamped to [0, 1].
func EvalSpline(points []ControlPoint, frac float64) float64 {
	first := points[0]
	last := points[len(points)-1]

	if frac <= first.Position {
		return clamp01(first.Value)
	}

	if frac >= last.Position {
		return clamp01(last.Value)
	}

	hi := 1
	for points[hi].Position < frac {
		hi++
	}
	p0 := points[hi-1]
	p1 := points[hi]

	span := p1.Position - p0.Position
	u := (frac - p0.Position) / span

	u2 := u * u
	u3 := u2 * u

	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	v := h00*p0.Value +
		h10*span*p0.Tangent +
		h01*p1.Value +
		h11*span*p1.Tangent

	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
