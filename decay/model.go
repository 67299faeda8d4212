package decay

// A Model maps wake-sample age, travel distance, and vessel weight to an
// intensity in [0, 1]. The engine holds exactly one model, selected at
// construction; earlier drafts of the decay shape survive as alternative
// implementations.
type Model interface {
	// Intensity returns the composite time+distance decay for a sample.
	Intensity(age, maxAge, distance, maxDistance, weight float64) float64

	// TrailWeight returns the distance envelope alone, used as the initial
	// intensity of a freshly emitted sample.
	TrailWeight(frac, weight float64) float64

	// Shear returns the scalar curl factor at a distance from the vessel.
	Shear(distance float64) float64
}

// DefaultFalloff is the wavelet falloff used when a model is built without an
// explicit one.
const DefaultFalloff = 0.8

type splineWaveletModel struct {
	points    []ControlPoint
	shearRate float64
	falloff   float64
}

// NewSplineWaveletModel builds the canonical decay model: Hermite spline
// envelope shaped by a weight-keyed wavelet term, with exponential shear.
// It panics if the control points do not cover [0, 1] in strictly increasing
// order.
func NewSplineWaveletModel(
	points []ControlPoint,
	shearRate, falloff float64,
) Model {
	ControlPointsMustBeValid(points)

	if falloff <= 0 {
		falloff = DefaultFalloff
	}

	owned := make([]ControlPoint, len(points))
	copy(owned, points)

	return &splineWaveletModel{
		points:    owned,
		shearRate: shearRate,
		falloff:   falloff,
	}
}

func (m *splineWaveletModel) Intensity(
	age, maxAge, distance, maxDistance, weight float64,
) float64 {
	return Composite(
		m.points, age, maxAge, distance, maxDistance, weight, m.falloff)
}

func (m *splineWaveletModel) TrailWeight(frac, weight float64) float64 {
	return WaveletEnvelope(m.points, frac, weight, m.falloff)
}

func (m *splineWaveletModel) Shear(distance float64) float64 {
	return ShearFactor(distance, m.shearRate)
}

type linearAgeModel struct {
	shearRate float64
}

// NewLinearAgeModel builds the simple linear-age decay model. It ignores
// travel distance and vessel weight, matching the first draft of the wake
// shader.
func NewLinearAgeModel(shearRate float64) Model {
	return &linearAgeModel{shearRate: shearRate}
}

func (m *linearAgeModel) Intensity(
	age, maxAge, _, _, _ float64,
) float64 {
	return TimeDecay(age, maxAge)
}

func (m *linearAgeModel) TrailWeight(frac, _ float64) float64 {
	return clamp01(1 - frac)
}

func (m *linearAgeModel) Shear(distance float64) float64 {
	return ShearFactor(distance, m.shearRate)
}
