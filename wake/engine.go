package wake

import (
	"github.com/driftlab/wakesim/decay"
)

// Stats is the engine's diagnostic summary.
type Stats struct {
	ActiveVesselCount   int
	TotalWakePointCount int
	OrphanedTrailCount  int
}

// An Engine simulates vessels crossing a bounded patch of water and the wake
// trails they leave behind. It owns all simulation state exclusively; the
// single mutating entry point is Update, called once per host frame. The
// engine renders nothing and knows nothing about screen space.
type Engine struct {
	HookableBase

	cfg   Config
	model decay.Model
	rng   Rand
	ids   IDGenerator

	vessels []*Vessel
	pool    *Pool
	orphans map[string]*OrphanedWakeTrail

	now         Seconds
	lastSpawn   Seconds
	everSpawned bool

	vesselArrays VesselArrays
	wakeArrays   WakeArrays
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Now returns the timestamp of the last Update call.
func (e *Engine) Now() Seconds {
	return e.now
}

// Update advances the simulation by one tick. now is the host's monotonic
// clock and dt the time since the previous tick. Every internal collection
// has a hard capacity, so Update completes in bounded time.
func (e *Engine) Update(now, dt Seconds) {
	e.now = now

	e.spawnIfDue(now)
	e.advance(dt)
	e.emitWakePoints(now)
	e.transitionStates(now)
	e.retireVessels(now)
	e.updateActiveWakes(now)
	e.updateOrphanedWakes(now)
	e.sweepExpiredWakes(now)
}

// Stats returns the current diagnostic summary.
func (e *Engine) Stats() Stats {
	return Stats{
		ActiveVesselCount:   len(e.vessels),
		TotalWakePointCount: e.pool.Size(),
		OrphanedTrailCount:  len(e.orphans),
	}
}

// A VesselSummary is a read-only view of one live vessel for observers
// outside the engine.
type VesselSummary struct {
	ID           string
	Class        string
	Position     Vec3
	Velocity     Vec3
	Speed        float64
	State        string
	FadeProgress float64
	TrailLength  int
}

// VesselSummaries returns a view of every live vessel in spawn order. The
// result is a fresh slice safe to retain.
func (e *Engine) VesselSummaries() []VesselSummary {
	summaries := make([]VesselSummary, 0, len(e.vessels))
	for _, v := range e.vessels {
		summaries = append(summaries, VesselSummary{
			ID:           v.ID,
			Class:        v.Class.String(),
			Position:     v.Position,
			Velocity:     v.Velocity,
			Speed:        v.Speed,
			State:        v.State.String(),
			FadeProgress: v.FadeProgress(e.now, e.cfg.FadeDuration),
			TrailLength:  len(v.trail),
		})
	}

	return summaries
}

// WakeSamples returns a copy of the global pool oldest to newest. The result
// is a fresh slice safe to retain.
func (e *Engine) WakeSamples() []GlobalWakePoint {
	all := e.pool.GetAll()
	samples := make([]GlobalWakePoint, len(all))
	copy(samples, all)

	return samples
}

// FindVessel looks a live vessel up by ID. Wake samples hold vessel IDs as
// non-owning back-references, so a lookup may legitimately find nothing.
func (e *Engine) FindVessel(id string) (*Vessel, bool) {
	for _, v := range e.vessels {
		if v.ID == id {
			return v, true
		}
	}

	return nil, false
}

// spawnIfDue creates at most one vessel per spawn interval, up to the
// capacity cap. Spawning never fails; at capacity or before the interval it
// is a no-op. The very first call spawns immediately.
func (e *Engine) spawnIfDue(now Seconds) {
	if len(e.vessels) >= e.cfg.MaxVessels {
		return
	}

	if e.everSpawned && now-e.lastSpawn < e.cfg.SpawnInterval {
		return
	}

	v := e.spawnVessel(now)
	e.vessels = append(e.vessels, v)
	e.lastSpawn = now
	e.everSpawned = true

	if e.NumHooks() > 0 {
		e.InvokeHook(HookCtx{
			Domain: e,
			Now:    now,
			Pos:    HookPosVesselSpawn,
			Item:   v,
		})
	}
}

// spawnVessel places a new vessel on a random bounds edge with an
// inward-pointing velocity and a class drawn from the weighted distribution.
func (e *Engine) spawnVessel(now Seconds) *Vessel {
	class := drawClass(e.rng)
	profile := class.Profile()

	minSpeed, maxSpeed := profile.MinSpeed, profile.MaxSpeed
	if minSpeed <= 0 || maxSpeed < minSpeed {
		minSpeed, maxSpeed = e.cfg.MinSpeed, e.cfg.MaxSpeed
	}
	speed := minSpeed + e.rng.Float64()*(maxSpeed-minSpeed)

	bounds := e.cfg.Bounds
	alongX := bounds.MinX + e.rng.Float64()*bounds.Width()
	alongZ := bounds.MinZ + e.rng.Float64()*bounds.Depth()
	lateral := (e.rng.Float64() - 0.5) * 0.8

	var position, direction Vec3
	switch e.rng.Intn(4) {
	case 0: // west edge, heading east
		position = Vec3{X: bounds.MinX, Z: alongZ}
		direction = Vec3{X: 1, Z: lateral}
	case 1: // east edge, heading west
		position = Vec3{X: bounds.MaxX, Z: alongZ}
		direction = Vec3{X: -1, Z: lateral}
	case 2: // near edge, heading far
		position = Vec3{X: alongX, Z: bounds.MinZ}
		direction = Vec3{X: lateral, Z: 1}
	case 3: // far edge, heading near
		position = Vec3{X: alongX, Z: bounds.MaxZ}
		direction = Vec3{X: lateral, Z: -1}
	}

	return &Vessel{
		ID:        e.ids.Generate(),
		Class:     class,
		Position:  position,
		Velocity:  direction.Normalized().Scale(speed),
		Speed:     speed,
		SpawnTime: now,
		Lifetime:  e.cfg.VesselLifetime,
		State:     VesselActive,
		trail:     make([]WakePoint, 0, e.cfg.MaxTrailLength),
	}
}

// advance applies straight-line motion to every vessel.
func (e *Engine) advance(dt Seconds) {
	for _, v := range e.vessels {
		v.Position = v.Position.Add(v.Velocity.Scale(float64(dt)))
		v.traveled += v.Speed * float64(dt)
	}
}

// transitionStates walks each vessel through the one-directional lifecycle.
// Staged retirement lets the renderer fade a vessel out instead of popping
// it.
func (e *Engine) transitionStates(now Seconds) {
	for _, v := range e.vessels {
		switch v.State {
		case VesselActive:
			if !e.cfg.Bounds.Contains(v.Position, e.cfg.BoundsMargin) {
				e.moveVessel(v, VesselGhost, now)
				v.ghostSince = now
			}
		case VesselGhost:
			if now-v.ghostSince >= e.cfg.GhostDuration {
				e.moveVessel(v, VesselFading, now)
				v.fadeSince = now
			}
		case VesselFading:
			// Removal happens in retireVessels.
		}
	}
}

func (e *Engine) moveVessel(v *Vessel, state VesselState, now Seconds) {
	prev := v.State
	v.State = state

	if e.NumHooks() > 0 {
		e.InvokeHook(HookCtx{
			Domain: e,
			Now:    now,
			Pos:    HookPosVesselStateChange,
			Item:   v,
			Detail: prev,
		})
	}
}

// retireVessels removes vessels whose lifetime budget ran out or whose fade
// completed, orphaning their surviving wake samples in the same tick.
func (e *Engine) retireVessels(now Seconds) {
	kept := e.vessels[:0]
	for _, v := range e.vessels {
		expired := now-v.SpawnTime > v.Lifetime
		faded := v.State == VesselFading &&
			now-v.fadeSince >= e.cfg.FadeDuration

		if !expired && !faded {
			kept = append(kept, v)
			continue
		}

		e.orphanWakesOf(v, now)

		if e.NumHooks() > 0 {
			e.InvokeHook(HookCtx{
				Domain: e,
				Now:    now,
				Pos:    HookPosVesselRetire,
				Item:   v,
			})
		}
	}

	for i := len(kept); i < len(e.vessels); i++ {
		e.vessels[i] = nil
	}
	e.vessels = kept
}
