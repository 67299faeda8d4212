package wake

// WakeState is the lifecycle tag of a pooled wake sample.
type WakeState int

// Wake sample lifecycle states. A sample is Active while its vessel lives,
// Orphaned once the vessel is gone, and Expired when its intensity has
// decayed away and it awaits the sweep.
const (
	WakeActive WakeState = iota
	WakeOrphaned
	WakeExpired
)

// A WakePoint is one timestamped sample of a vessel's trailing disturbance.
type WakePoint struct {
	Position Vec3
	Velocity Vec3

	// Intensity starts at the spline weight and only ever decreases.
	Intensity float64

	Timestamp Seconds

	// DistanceFromVessel is the trail distance traveled by the vessel up to
	// the moment of emission.
	DistanceFromVessel float64

	// ShearFactor drives progressive curling of the wake shape downstream.
	ShearFactor float64

	// SplineWeight is the distance envelope value at emission.
	SplineWeight float64
}

// A GlobalWakePoint is a wake sample in the global pool. VesselID is a
// non-owning back-reference: it identifies the emitting vessel for lookup but
// never extends its lifetime, and the vessel may be long gone. VesselWeight
// is snapshotted at emission so orphaned decay needs no live vessel.
type GlobalWakePoint struct {
	WakePoint

	VesselID     string
	VesselWeight float64
	State        WakeState

	// OrphanedAt is meaningful only once State leaves WakeActive.
	OrphanedAt Seconds
}

// An OrphanedWakeTrail is the lightweight record kept when a vessel despawns
// while its wake still lives. It snapshots everything orphan aging needs,
// since the vessel record itself is destroyed.
type OrphanedWakeTrail struct {
	VesselID     string
	LastPosition Vec3
	LastVelocity Vec3
	Weight       float64
	Class        Class
	OrphanStart  Seconds
}
