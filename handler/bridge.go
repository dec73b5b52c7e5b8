// Package handler connects a host application to a tickblend.System without the
// core depending on host types. The host registers a set of optional callbacks
// once at startup and then drives the bridge from its simulation and render
// loops; every dispatch is synchronous and inline on the calling goroutine.
package handler

import (
	"io"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/tickblend/tickblend"
	"github.com/tickblend/tickblend/pose"
)

// Callbacks holds the optional handler slots a host may register. A nil slot
// leaves that hook inert.
type Callbacks struct {
	// Capture is invoked once per tracked actor per logic tick. The host is
	// responsible for deciding which actors to track and for feeding their raw
	// pose data into System.Capture.
	Capture func(id uint32)
	// LogicTick is invoked once per simulation step, before any Capture calls of
	// that step, so System.LogicTick is driven at the correct cadence.
	LogicTick func()
	// Update is invoked once per presentation step with the chosen interpolation
	// factor.
	Update func(alpha float32)
	// MapChange is invoked when the simulated world is torn down or reloaded. The
	// bridge flushes the system afterwards regardless, so recycled entity handles
	// never alias stale pose data.
	MapChange func()
	// PoseWriteback may substitute a custom blend for a single actor. When it
	// fills out and returns true, the written values are used verbatim and the
	// system's own blended snapshot is bypassed for that actor.
	PoseWriteback func(id uint32, out *pose.Snapshot) bool
}

// Bridge dispatches host-registered callbacks around a System. It performs no
// queuing and spawns no goroutines; a disabled bridge leaves every hook inert
// without losing the registrations.
type Bridge struct {
	sys *tickblend.System
	log *logrus.Logger

	cbs     Callbacks
	enabled bool

	// scratch receives writeback poses. Like System.Pose results, it is only valid
	// until the next FinalPose call.
	scratch pose.Snapshot
}

// NewBridge creates an enabled bridge around the given system. A nil logger
// suppresses all log output.
func NewBridge(sys *tickblend.System, log *logrus.Logger) *Bridge {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Bridge{sys: sys, log: log, enabled: true}
}

// SetCallbacks replaces the registered callback set.
func (b *Bridge) SetCallbacks(cbs Callbacks) {
	b.cbs = cbs
}

// SetEnabled gates all hooks at once without losing their registrations.
func (b *Bridge) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Enabled reports whether hooks are currently dispatched.
func (b *Bridge) Enabled() bool {
	return b.enabled
}

// System returns the system the bridge drives.
func (b *Bridge) System() *tickblend.System {
	return b.sys
}

// LogicTick dispatches the logic-tick hook. Hosts call this once per simulation
// step before capturing any actors.
func (b *Bridge) LogicTick() {
	if !b.enabled || b.cbs.LogicTick == nil {
		return
	}
	defer b.recoverHook("logic-tick")
	b.cbs.LogicTick()
}

// CaptureActor dispatches the capture hook for a single actor.
func (b *Bridge) CaptureActor(id uint32) {
	if !b.enabled || b.cbs.Capture == nil {
		return
	}
	defer b.recoverHook("capture")
	b.cbs.Capture(id)
}

// Update dispatches the per-presentation-step hook with the chosen interpolation
// factor.
func (b *Bridge) Update(alpha float32) {
	if !b.enabled || b.cbs.Update == nil {
		return
	}
	defer b.recoverHook("update")
	b.cbs.Update(alpha)
}

// MapChange dispatches the map-change hook and then flushes the system. The flush
// happens even with no hook registered or the bridge disabled: entity handles may
// be recycled by the host across reloads, and stale slots would blend two
// unrelated actors' poses.
func (b *Bridge) MapChange() {
	if b.enabled && b.cbs.MapChange != nil {
		func() {
			defer b.recoverHook("map-change")
			b.cbs.MapChange()
		}()
	}
	b.sys.RemoveAll()
}

// FinalPose resolves the pose to write back for an actor. A registered writeback
// hook that reports handled supplies the pose verbatim; otherwise the system's own
// blended snapshot is used. The returned snapshot is only valid until the next
// FinalPose or Update call.
func (b *Bridge) FinalPose(id uint32) (*pose.Snapshot, bool) {
	if b.enabled && b.cbs.PoseWriteback != nil && b.writeback(id) {
		return &b.scratch, true
	}
	return b.sys.Pose(id)
}

func (b *Bridge) writeback(id uint32) (handled bool) {
	defer b.recoverHook("pose-writeback")
	return b.cbs.PoseWriteback(id, &b.scratch)
}

// recoverHook contains a panicking host callback. The panic is reported and the
// host loop keeps running; no failure in this layer is fatal to the host process.
func (b *Bridge) recoverHook(hook string) {
	if v := recover(); v != nil {
		b.log.Errorf("tickblend: recovered panic in %s handler: %v", hook, v)
		sentry.CurrentHub().Recover(v)
	}
}
