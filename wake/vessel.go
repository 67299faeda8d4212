package wake

// VesselState is a vessel's lifecycle state. Transitions are one-directional:
// VesselActive, then VesselGhost once off bounds, then VesselFading, then
// removal. No transition skips or reverses.
type VesselState int

// Vessel lifecycle states.
const (
	VesselActive VesselState = iota
	VesselGhost
	VesselFading
)

// String returns the state name.
func (s VesselState) String() string {
	switch s {
	case VesselActive:
		return "active"
	case VesselGhost:
		return "ghost"
	case VesselFading:
		return "fading"
	}

	return "unknown"
}

// A Vessel is one moving wake source. The lifecycle manager owns it: spawned
// at a bounds edge, advanced in a straight line every tick, retired when its
// lifetime budget runs out or it drifts off bounds.
type Vessel struct {
	ID       string
	Class    Class
	Position Vec3
	Velocity Vec3
	Speed    float64

	SpawnTime Seconds
	Lifetime  Seconds
	State     VesselState

	ghostSince Seconds
	fadeSince  Seconds

	lastSample Seconds
	hasSample  bool
	traveled   float64

	trail []WakePoint
}

// Weight returns the vessel's class weight.
func (v *Vessel) Weight() float64 {
	return v.Class.Profile().Weight
}

// Trail returns the vessel's own recent wake samples, oldest first. The slice
// is owned by the vessel and must not be retained across ticks.
func (v *Vessel) Trail() []WakePoint {
	return v.trail
}

// FadeProgress reports how far through the fade-out the vessel is, in [0, 1].
// It is 0 before the vessel starts fading.
func (v *Vessel) FadeProgress(now, fadeDuration Seconds) float64 {
	if v.State != VesselFading || fadeDuration <= 0 {
		return 0
	}

	p := float64(now-v.fadeSince) / float64(fadeDuration)
	if p < 0 {
		return 0
	}

	if p > 1 {
		return 1
	}

	return p
}

// appendTrailPoint records a sample on the vessel's own trail, dropping the
// oldest sample once the trail is at capacity.
func (v *Vessel) appendTrailPoint(pt WakePoint, maxLen int) {
	if maxLen > 0 && len(v.trail) >= maxLen {
		copy(v.trail, v.trail[1:])
		v.trail = v.trail[:len(v.trail)-1]
	}

	v.trail = append(v.trail, pt)
}
