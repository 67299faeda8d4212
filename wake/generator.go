package wake

import "math"

// emitWakePoints samples every on-bounds vessel into the global pool. A
// per-vessel governor caps emission at the configured sample rate so memory
// pressure stays independent of the host frame rate.
func (e *Engine) emitWakePoints(now Seconds) {
	minGap := Seconds(1 / e.cfg.SampleRate)

	for _, v := range e.vessels {
		if v.State != VesselActive {
			continue
		}

		if v.hasSample && now-v.lastSample < minGap {
			continue
		}

		e.emitWakePoint(v, now)
	}
}

func (e *Engine) emitWakePoint(v *Vessel, now Seconds) {
	frac := v.traveled / e.cfg.MaxTrailDistance
	weight := v.Weight()

	pt := WakePoint{
		Position:           v.Position,
		Velocity:           v.Velocity,
		Timestamp:          now,
		DistanceFromVessel: v.traveled,
		ShearFactor:        e.model.Shear(v.traveled),
		SplineWeight:       e.model.TrailWeight(frac, weight),
	}
	pt.Intensity = pt.SplineWeight

	v.appendTrailPoint(pt, e.cfg.MaxTrailLength)
	v.lastSample = now
	v.hasSample = true

	global := GlobalWakePoint{
		WakePoint:    pt,
		VesselID:     v.ID,
		VesselWeight: weight,
		State:        WakeActive,
	}

	old, evicted := e.pool.Push(global)

	if e.NumHooks() > 0 {
		if evicted {
			e.InvokeHook(HookCtx{
				Domain: e,
				Now:    now,
				Pos:    HookPosWakeEvict,
				Item:   old,
			})
		}

		e.InvokeHook(HookCtx{
			Domain: e,
			Now:    now,
			Pos:    HookPosWakeEmit,
			Item:   global,
			Detail: v,
		})
	}
}

// updateActiveWakes re-derives the intensity of every active pool sample from
// its own age and emission distance. Intensity never rises along a sample's
// timeline; samples that decay under the epsilon or outlive the decay window
// are marked expired for the sweep.
func (e *Engine) updateActiveWakes(now Seconds) {
	e.pool.ForEach(func(pt *GlobalWakePoint) {
		if pt.State != WakeActive {
			return
		}

		// A vessel can despawn and orphan its wake in the same tick; a
		// sample still claiming a vanished vessel is a stale straggler.
		if _, found := e.FindVessel(pt.VesselID); !found {
			e.orphanPoint(pt, now)
			return
		}

		age := now - pt.Timestamp
		intensity := e.model.Intensity(
			float64(age), float64(e.cfg.WakeDecayTime),
			pt.DistanceFromVessel, e.cfg.MaxTrailDistance,
			pt.VesselWeight)

		pt.Intensity = math.Min(pt.Intensity, intensity)

		if pt.Intensity < e.cfg.IntensityEpsilon ||
			age > e.cfg.WakeDecayTime ||
			pt.DistanceFromVessel > e.cfg.MaxTrailDistance {
			pt.State = WakeExpired
		}
	})
}
