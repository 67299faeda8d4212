package wake

import (
	"log"

	"github.com/driftlab/wakesim/decay"
)

// Config is the immutable engine configuration. All durations are in
// simulated seconds and all lengths in simulation units.
type Config struct {
	MaxVessels     int
	SpawnInterval  Seconds
	VesselLifetime Seconds

	// MinSpeed and MaxSpeed bound spawn speeds for classes without a speed
	// range of their own.
	MinSpeed float64
	MaxSpeed float64

	Bounds       Bounds
	BoundsMargin float64

	MaxTrailLength   int
	SampleRate       float64
	WakeDecayTime    Seconds
	MaxTrailDistance float64
	MaxWakePoints    int

	OrphanLifetime Seconds
	GhostDuration  Seconds
	FadeDuration   Seconds

	ShearRate        float64
	WaveletFalloff   float64
	IntensityEpsilon float64
}

// Builder can be used to build a wake engine.
type Builder struct {
	cfg    Config
	points []decay.ControlPoint
	model  decay.Model
	linear bool
	rng    Rand
	ids    IDGenerator
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg: Config{
			MaxVessels:       8,
			SpawnInterval:    6,
			VesselLifetime:   45,
			MinSpeed:         1.5,
			MaxSpeed:         12,
			Bounds:           Bounds{MinX: -60, MaxX: 60, MinZ: -60, MaxZ: 60},
			BoundsMargin:     4,
			MaxTrailLength:   64,
			SampleRate:       10,
			WakeDecayTime:    20,
			MaxTrailDistance: 80,
			MaxWakePoints:    512,
			OrphanLifetime:   12,
			GhostDuration:    2,
			FadeDuration:     3,
			ShearRate:        0.08,
			WaveletFalloff:   decay.DefaultFalloff,
			IntensityEpsilon: 0.02,
		},
		points: []decay.ControlPoint{
			{Position: 0, Value: 1, Tangent: -0.2},
			{Position: 0.35, Value: 0.8, Tangent: -1.2},
			{Position: 1, Value: 0, Tangent: -0.6},
		},
	}
}

// WithMaxVessels caps the number of simultaneously live vessels.
func (b Builder) WithMaxVessels(n int) Builder {
	b.cfg.MaxVessels = n
	return b
}

// WithSpawnInterval sets the minimum time between two spawns.
func (b Builder) WithSpawnInterval(d Seconds) Builder {
	b.cfg.SpawnInterval = d
	return b
}

// WithVesselLifetime sets each vessel's lifetime budget.
func (b Builder) WithVesselLifetime(d Seconds) Builder {
	b.cfg.VesselLifetime = d
	return b
}

// WithSpeedRange sets the fallback spawn speed range.
func (b Builder) WithSpeedRange(minSpeed, maxSpeed float64) Builder {
	b.cfg.MinSpeed = minSpeed
	b.cfg.MaxSpeed = maxSpeed

	return b
}

// WithBounds sets the simulated patch of water.
func (b Builder) WithBounds(bounds Bounds) Builder {
	b.cfg.Bounds = bounds
	return b
}

// WithBoundsMargin sets how far past the bounds a vessel may drift before it
// turns into a ghost.
func (b Builder) WithBoundsMargin(margin float64) Builder {
	b.cfg.BoundsMargin = margin
	return b
}

// WithMaxTrailLength caps the per-vessel trail buffer.
func (b Builder) WithMaxTrailLength(n int) Builder {
	b.cfg.MaxTrailLength = n
	return b
}

// WithSampleRate sets the per-vessel wake sample rate in samples per second.
func (b Builder) WithSampleRate(rate float64) Builder {
	b.cfg.SampleRate = rate
	return b
}

// WithWakeDecayTime sets the maximum age of an active wake sample.
func (b Builder) WithWakeDecayTime(d Seconds) Builder {
	b.cfg.WakeDecayTime = d
	return b
}

// WithMaxTrailDistance sets the trail distance over which wake strength
// decays to zero.
func (b Builder) WithMaxTrailDistance(d float64) Builder {
	b.cfg.MaxTrailDistance = d
	return b
}

// WithMaxWakePoints sets the global wake pool capacity.
func (b Builder) WithMaxWakePoints(n int) Builder {
	b.cfg.MaxWakePoints = n
	return b
}

// WithOrphanLifetime sets how long orphaned wakes keep fading before they are
// discarded.
func (b Builder) WithOrphanLifetime(d Seconds) Builder {
	b.cfg.OrphanLifetime = d
	return b
}

// WithGhostDuration sets how long an off-bounds vessel lingers before it
// starts fading.
func (b Builder) WithGhostDuration(d Seconds) Builder {
	b.cfg.GhostDuration = d
	return b
}

// WithFadeDuration sets how long a fading vessel takes to disappear.
func (b Builder) WithFadeDuration(d Seconds) Builder {
	b.cfg.FadeDuration = d
	return b
}

// WithShearRate sets the rate at which the shear factor grows with distance.
func (b Builder) WithShearRate(rate float64) Builder {
	b.cfg.ShearRate = rate
	return b
}

// WithIntensityEpsilon sets the intensity below which a wake sample expires.
func (b Builder) WithIntensityEpsilon(eps float64) Builder {
	b.cfg.IntensityEpsilon = eps
	return b
}

// WithControlPoints sets the spline envelope of the canonical decay model.
func (b Builder) WithControlPoints(points []decay.ControlPoint) Builder {
	b.points = points
	return b
}

// WithLinearAgeDecay selects the simple linear-age decay model instead of the
// canonical spline-wavelet one.
func (b Builder) WithLinearAgeDecay() Builder {
	b.linear = true
	return b
}

// WithDecayModel injects a custom decay model, overriding both built-in
// variants.
func (b Builder) WithDecayModel(m decay.Model) Builder {
	b.model = m
	return b
}

// WithRand injects the random source used for spawning.
func (b Builder) WithRand(rng Rand) Builder {
	b.rng = rng
	return b
}

// WithIDGenerator injects the vessel ID generator.
func (b Builder) WithIDGenerator(ids IDGenerator) Builder {
	b.ids = ids
	return b
}

func (b Builder) parametersMustBeValid() {
	c := b.cfg

	if c.MaxVessels <= 0 {
		log.Panic("max vessel count must be positive")
	}

	if c.SpawnInterval <= 0 {
		log.Panic("spawn interval must be positive")
	}

	if c.VesselLifetime <= 0 {
		log.Panic("vessel lifetime must be positive")
	}

	if c.MinSpeed <= 0 || c.MaxSpeed < c.MinSpeed {
		log.Panic("speed range must satisfy 0 < min <= max")
	}

	if c.Bounds.Width() <= 0 || c.Bounds.Depth() <= 0 {
		log.Panic("bounds must have positive extent")
	}

	if c.MaxTrailLength <= 0 {
		log.Panic("max trail length must be positive")
	}

	if c.SampleRate <= 0 {
		log.Panic("sample rate must be positive")
	}

	if c.WakeDecayTime <= 0 || c.OrphanLifetime <= 0 {
		log.Panic("decay times must be positive")
	}

	if c.MaxTrailDistance <= 0 {
		log.Panic("max trail distance must be positive")
	}

	if c.MaxWakePoints <= 0 {
		log.Panic("wake pool capacity must be positive")
	}

	if c.GhostDuration < 0 || c.FadeDuration < 0 {
		log.Panic("ghost and fade durations cannot be negative")
	}

	if c.IntensityEpsilon <= 0 || c.IntensityEpsilon >= 1 {
		log.Panic("intensity epsilon must be in (0, 1)")
	}

	if b.model == nil && !b.linear {
		decay.ControlPointsMustBeValid(b.points)
	}
}

// Build builds the engine.
func (b Builder) Build() *Engine {
	b.parametersMustBeValid()

	model := b.model
	if model == nil {
		if b.linear {
			model = decay.NewLinearAgeModel(b.cfg.ShearRate)
		} else {
			model = decay.NewSplineWaveletModel(
				b.points, b.cfg.ShearRate, b.cfg.WaveletFalloff)
		}
	}

	rng := b.rng
	if rng == nil {
		rng = defaultRand()
	}

	ids := b.ids
	if ids == nil {
		ids = NewXIDGenerator()
	}

	return &Engine{
		cfg:     b.cfg,
		model:   model,
		rng:     rng,
		ids:     ids,
		vessels: make([]*Vessel, 0, b.cfg.MaxVessels),
		pool:    NewPool(b.cfg.MaxWakePoints),
		orphans: make(map[string]*OrphanedWakeTrail),
	}
}
