package wake

import (
	"math"
	"sort"
)

// orphanWakesOf re-homes a despawning vessel's wake. Its active pool samples
// become orphaned with the current time stamped on each, and a lightweight
// trail snapshot keeps the weight and class available after the vessel record
// is destroyed. The snapshot is recorded on every despawn, even when all of
// the vessel's samples have already been evicted, so diagnostics always see
// the departure.
func (e *Engine) orphanWakesOf(v *Vessel, now Seconds) {
	e.pool.ForEach(func(pt *GlobalWakePoint) {
		if pt.State != WakeActive || pt.VesselID != v.ID {
			return
		}

		e.orphanPoint(pt, now)
	})

	e.orphans[v.ID] = &OrphanedWakeTrail{
		VesselID:     v.ID,
		LastPosition: v.Position,
		LastVelocity: v.Velocity,
		Weight:       v.Weight(),
		Class:        v.Class,
		OrphanStart:  now,
	}
}

func (e *Engine) orphanPoint(pt *GlobalWakePoint, now Seconds) {
	pt.State = WakeOrphaned
	pt.OrphanedAt = now

	if e.NumHooks() > 0 {
		e.InvokeHook(HookCtx{
			Domain: e,
			Now:    now,
			Pos:    HookPosWakeOrphan,
			Item:   *pt,
		})
	}
}

// updateOrphanedWakes runs the independent fade timeline of every orphaned
// sample. Intensity derives from age-since-orphaned and the weight
// snapshotted at emission; the vessel no longer exists to query. Trails past
// the orphan lifetime are discarded.
func (e *Engine) updateOrphanedWakes(now Seconds) {
	e.pool.ForEach(func(pt *GlobalWakePoint) {
		if pt.State != WakeOrphaned {
			return
		}

		age := now - pt.OrphanedAt
		intensity := e.model.Intensity(
			float64(age), float64(e.cfg.OrphanLifetime),
			pt.DistanceFromVessel, e.cfg.MaxTrailDistance,
			pt.VesselWeight)

		pt.Intensity = math.Min(pt.Intensity, intensity)

		if pt.Intensity < e.cfg.IntensityEpsilon ||
			age > e.cfg.OrphanLifetime {
			pt.State = WakeExpired
		}
	})

	for id, trail := range e.orphans {
		if now-trail.OrphanStart > e.cfg.OrphanLifetime {
			delete(e.orphans, id)
		}
	}
}

// sweepExpiredWakes compacts every expired sample out of the pool.
func (e *Engine) sweepExpiredWakes(now Seconds) {
	hooked := e.NumHooks() > 0

	e.pool.RemoveExpired(func(pt *GlobalWakePoint) bool {
		if pt.State != WakeExpired {
			return false
		}

		if hooked {
			e.InvokeHook(HookCtx{
				Domain: e,
				Now:    now,
				Pos:    HookPosWakeExpire,
				Item:   *pt,
			})
		}

		return true
	})
}

// OrphanedTrails returns the surviving trail snapshots ordered by orphan
// time, then vessel ID. The result is a fresh slice safe to retain.
func (e *Engine) OrphanedTrails() []OrphanedWakeTrail {
	trails := make([]OrphanedWakeTrail, 0, len(e.orphans))
	for _, t := range e.orphans {
		trails = append(trails, *t)
	}

	sort.Slice(trails, func(i, j int) bool {
		if trails[i].OrphanStart != trails[j].OrphanStart {
			return trails[i].OrphanStart < trails[j].OrphanStart
		}

		return trails[i].VesselID < trails[j].VesselID
	})

	return trails
}
