package datarecording

import (
	"github.com/driftlab/wakesim/wake"
)

// A VesselEventEntry is one row of the vessel_events table.
type VesselEventEntry struct {
	Time     float64
	Event    string
	VesselID string
	Class    string
	State    string
	X        float64
	Z        float64
	Speed    float64
}

// A WakeEventEntry is one row of the wake_events table.
type WakeEventEntry struct {
	Time      float64
	Event     string
	VesselID  string
	Intensity float64
	Distance  float64
}

// A PoolSnapshotEntry is one row of the pool_snapshots table.
type PoolSnapshotEntry struct {
	Time         float64
	Vessels      int
	WakePoints   int
	OrphanTrails int
}

// A WakeLogger records engine lifecycle events and pool snapshots through a
// DataRecorder. Attach it to an engine with AcceptHook.
type WakeLogger struct {
	recorder DataRecorder
}

// NewWakeLogger creates a logger and its tables on the recorder.
func NewWakeLogger(recorder DataRecorder) *WakeLogger {
	recorder.CreateTable("vessel_events", VesselEventEntry{})
	recorder.CreateTable("wake_events", WakeEventEntry{})
	recorder.CreateTable("pool_snapshots", PoolSnapshotEntry{})

	return &WakeLogger{recorder: recorder}
}

// Func records hook invocations. Wake emissions are not logged row by row;
// they arrive at the sample rate times the vessel count and would dwarf the
// lifecycle signal.
func (l *WakeLogger) Func(ctx wake.HookCtx) {
	switch ctx.Pos {
	case wake.HookPosVesselSpawn,
		wake.HookPosVesselStateChange,
		wake.HookPosVesselRetire:
		l.recordVessel(ctx)
	case wake.HookPosWakeOrphan,
		wake.HookPosWakeEvict,
		wake.HookPosWakeExpire:
		l.recordWake(ctx)
	}
}

func (l *WakeLogger) recordVessel(ctx wake.HookCtx) {
	v := ctx.Item.(*wake.Vessel)

	l.recorder.InsertData("vessel_events", VesselEventEntry{
		Time:     float64(ctx.Now),
		Event:    ctx.Pos.Name,
		VesselID: v.ID,
		Class:    v.Class.String(),
		State:    v.State.String(),
		X:        v.Position.X,
		Z:        v.Position.Z,
		Speed:    v.Speed,
	})
}

func (l *WakeLogger) recordWake(ctx wake.HookCtx) {
	pt := ctx.Item.(wake.GlobalWakePoint)

	l.recorder.InsertData("wake_events", WakeEventEntry{
		Time:      float64(ctx.Now),
		Event:     ctx.Pos.Name,
		VesselID:  pt.VesselID,
		Intensity: pt.Intensity,
		Distance:  pt.DistanceFromVessel,
	})
}

// Snapshot records the engine's summary statistics at one tick.
func (l *WakeLogger) Snapshot(now wake.Seconds, stats wake.Stats) {
	l.recorder.InsertData("pool_snapshots", PoolSnapshotEntry{
		Time:         float64(now),
		Vessels:      stats.ActiveVesselCount,
		WakePoints:   stats.TotalWakePointCount,
		OrphanTrails: stats.OrphanedTrailCount,
	})
}
