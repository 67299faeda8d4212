package wake

// VesselArrays packs vessel state into flat, uniform-ready arrays. Positions
// and Velocities hold three floats per slot; every array is fully sized to
// the requested count and zero-filled past the live data, so a renderer never
// reads uninitialized memory. States encodes the lifecycle as a single
// scalar: 0 active, 1 ghost, 2 plus fade progress while fading.
type VesselArrays struct {
	Count int

	Positions   []float32
	Velocities  []float32
	Weights     []float32
	ClassTags   []float32
	HullLengths []float32
	States      []float32
}

func (a *VesselArrays) reset(maxCount int) {
	if len(a.Weights) != maxCount {
		a.Positions = make([]float32, 3*maxCount)
		a.Velocities = make([]float32, 3*maxCount)
		a.Weights = make([]float32, maxCount)
		a.ClassTags = make([]float32, maxCount)
		a.HullLengths = make([]float32, maxCount)
		a.States = make([]float32, maxCount)
	} else {
		clear(a.Positions)
		clear(a.Velocities)
		clear(a.Weights)
		clear(a.ClassTags)
		clear(a.HullLengths)
		clear(a.States)
	}

	a.Count = 0
}

// WakeArrays packs wake samples the same way. Orphaned is 0 for active and 1
// for orphaned samples; OrphanTimes is zero for samples that still have a
// live vessel.
type WakeArrays struct {
	Count int

	Positions   []float32
	Velocities  []float32
	Intensities []float32
	Orphaned    []float32
	OrphanTimes []float32
	Weights     []float32
}

func (a *WakeArrays) reset(maxCount int) {
	if len(a.Intensities) != maxCount {
		a.Positions = make([]float32, 3*maxCount)
		a.Velocities = make([]float32, 3*maxCount)
		a.Intensities = make([]float32, maxCount)
		a.Orphaned = make([]float32, maxCount)
		a.OrphanTimes = make([]float32, maxCount)
		a.Weights = make([]float32, maxCount)
	} else {
		clear(a.Positions)
		clear(a.Velocities)
		clear(a.Intensities)
		clear(a.Orphaned)
		clear(a.OrphanTimes)
		clear(a.Weights)
	}

	a.Count = 0
}

func packVec3(dst []float32, slot int, v Vec3) {
	dst[3*slot] = float32(v.X)
	dst[3*slot+1] = float32(v.Y)
	dst[3*slot+2] = float32(v.Z)
}

// VesselArrays exports up to maxCount live vessels in stable spawn order.
// The returned arrays are reused by the next call and must not be retained
// across ticks.
func (e *Engine) VesselArrays(maxCount int) *VesselArrays {
	if maxCount < 0 {
		maxCount = 0
	}

	a := &e.vesselArrays
	a.reset(maxCount)

	for _, v := range e.vessels {
		if a.Count >= maxCount {
			break
		}

		slot := a.Count
		profile := v.Class.Profile()

		packVec3(a.Positions, slot, v.Position)
		packVec3(a.Velocities, slot, v.Velocity)
		a.Weights[slot] = float32(profile.Weight)
		a.ClassTags[slot] = float32(v.Class)
		a.HullLengths[slot] = float32(profile.HullLength)
		a.States[slot] = encodeState(v, e.now, e.cfg.FadeDuration)

		a.Count++
	}

	return a
}

func encodeState(v *Vessel, now, fadeDuration Seconds) float32 {
	switch v.State {
	case VesselGhost:
		return 1
	case VesselFading:
		return float32(2 + v.FadeProgress(now, fadeDuration))
	}

	return 0
}

// WakeArrays exports up to maxCount non-expired wake samples in the pool's
// oldest-to-newest order. When the pool holds more than maxCount samples the
// oldest are dropped first. The returned arrays are reused by the next call
// and must not be retained across ticks.
func (e *Engine) WakeArrays(maxCount int) *WakeArrays {
	if maxCount < 0 {
		maxCount = 0
	}

	a := &e.wakeArrays
	a.reset(maxCount)

	skip := e.pool.Size() - maxCount
	e.pool.ForEach(func(pt *GlobalWakePoint) {
		if skip > 0 {
			skip--
			return
		}

		if pt.State == WakeExpired || a.Count >= maxCount {
			return
		}

		slot := a.Count

		packVec3(a.Positions, slot, pt.Position)
		packVec3(a.Velocities, slot, pt.Velocity)
		a.Intensities[slot] = float32(pt.Intensity)
		a.Weights[slot] = float32(pt.VesselWeight)

		if pt.State == WakeOrphaned {
			a.Orphaned[slot] = 1
			a.OrphanTimes[slot] = float32(pt.OrphanedAt)
		}

		a.Count++
	})

	return a
}
