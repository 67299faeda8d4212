package decay

import "math"

// minSustainedWeight keeps the wavelet exponent finite for weightless
// vessels.
const minSustainedWeight = 0.05

// WaveletEnvelope combines the spline envelope with an exponential term keyed
// to vessel weight. At equal distance, a heavier vessel always sustains a
// larger value than a lighter one.
func WaveletEnvelope(
	points []ControlPoint,
	frac, weight, falloff float64,
) float64 {
	if frac < 0 {
		frac = 0
	}

	w := math.Max(weight, minSustainedWeight)
	sustain := math.Exp(-falloff * frac / w)

	return clamp01(EvalSpline(points, frac) * sustain)
}

// ShearFactor grows monotonically with distance from the vessel, saturating
// at 1. Downstream code uses it to progressively curl the wake shape.
func ShearFactor(distance, shearRate float64) float64 {
	if distance < 0 || shearRate < 0 {
		return 0
	}

	return clamp01(1 - math.Exp(-distance*shearRate))
}

// TimeDecay falls linearly from 1 at age 0 to 0 at maxAge.
func TimeDecay(age, maxAge float64) float64 {
	if maxAge <= 0 {
		return 0
	}

	if age < 0 {
		age = 0
	}

	return clamp01(1 - age/maxAge)
}

// Composite multiplies time decay with the distance envelope, the canonical
// intensity of a wake sample of a given age and travel distance.
func Composite(
	points []ControlPoint,
	age, maxAge, distance, maxDistance, weight, falloff float64,
) float64 {
	if maxDistance <= 0 {
		return 0
	}

	frac := distance / maxDistance
	d := WaveletEnvelope(points, frac, weight, falloff)

	return clamp01(TimeDecay(age, maxAge) * d)
}
