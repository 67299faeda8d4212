package wake

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	Domain Hookable
	Now    Seconds
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// HookPosVesselSpawn triggers after a vessel enters the simulation.
var HookPosVesselSpawn = &HookPos{Name: "VesselSpawn"}

// HookPosVesselStateChange triggers after a vessel moves to a later lifecycle
// state. Detail carries the previous state.
var HookPosVesselStateChange = &HookPos{Name: "VesselStateChange"}

// HookPosVesselRetire triggers after a vessel is removed from the simulation.
var HookPosVesselRetire = &HookPos{Name: "VesselRetire"}

// HookPosWakeEmit triggers after a wake sample is pushed into the global
// pool.
var HookPosWakeEmit = &HookPos{Name: "WakeEmit"}

// HookPosWakeEvict triggers when pushing into a full pool overwrites the
// oldest sample.
var HookPosWakeEvict = &HookPos{Name: "WakeEvict"}

// HookPosWakeOrphan triggers when a wake sample outlives its vessel.
var HookPosWakeOrphan = &HookPos{Name: "WakeOrphan"}

// HookPosWakeExpire triggers when a decayed wake sample is swept from the
// pool.
var HookPosWakeExpire = &HookPos{Name: "WakeExpire"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
