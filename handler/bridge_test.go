package handler

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tickblend/tickblend"
	"github.com/tickblend/tickblend/pose"
)

func newBridge(t *testing.T) *Bridge {
	t.Helper()
	sys := tickblend.New(nil)
	if !sys.Init() {
		t.Fatal("init failed")
	}
	return NewBridge(sys, nil)
}

func feed(sys *tickblend.System, id uint32, x float32) {
	sys.Capture(id, 0, nil, mgl32.Vec3{x, 0, 0}, pose.Angles{})
}

func TestHooksDriveSystem(t *testing.T) {
	b := newBridge(t)
	sys := b.System()

	tracked := []uint32{1, 2}
	b.SetCallbacks(Callbacks{
		LogicTick: sys.LogicTick,
		Capture: func(id uint32) {
			feed(sys, id, float32(sys.Tick()))
		},
		Update: sys.Update,
	})

	for step := 0; step < 2; step++ {
		b.LogicTick()
		for _, id := range tracked {
			b.CaptureActor(id)
		}
	}
	b.Update(0.5)

	if sys.Tick() != 2 {
		t.Fatalf("expected 2 logic ticks, got %d", sys.Tick())
	}
	snap, ok := b.FinalPose(1)
	if !ok {
		t.Fatal("pose unavailable after two bridged captures")
	}
	if snap.RootPosition != (mgl32.Vec3{1.5, 0, 0}) {
		t.Fatalf("expected bridged midpoint (1.5,0,0), got %v", snap.RootPosition)
	}
}

func TestDisabledBridgeIsInert(t *testing.T) {
	b := newBridge(t)
	sys := b.System()

	called := false
	b.SetCallbacks(Callbacks{
		LogicTick: func() { called = true },
		Capture:   func(uint32) { called = true },
		Update:    func(float32) { called = true },
		MapChange: func() { called = true },
	})
	b.SetEnabled(false)

	b.LogicTick()
	b.CaptureActor(1)
	b.Update(0.5)
	b.MapChange()

	if called {
		t.Fatal("disabled bridge must not dispatch any hook")
	}
	if sys.Tick() != 0 {
		t.Fatalf("disabled bridge must not advance the system, tick %d", sys.Tick())
	}

	// Registrations survive the disable.
	b.SetEnabled(true)
	b.LogicTick()
	if !called {
		t.Fatal("re-enabled bridge must dispatch the surviving registrations")
	}
}

func TestMapChangeFlushes(t *testing.T) {
	b := newBridge(t)
	sys := b.System()

	feed(sys, 1, 0)
	feed(sys, 1, 1)
	sys.Update(1)

	// The flush happens with no map-change callback registered at all.
	b.MapChange()
	if sys.EntityCount() != 0 {
		t.Fatalf("map change must flush tracked entities, got %d", sys.EntityCount())
	}
	if _, ok := sys.Pose(1); ok {
		t.Fatal("stale id must be unavailable after map change")
	}
}

func TestPoseWriteback(t *testing.T) {
	b := newBridge(t)
	sys := b.System()

	feed(sys, 1, 0)
	feed(sys, 1, 10)
	feed(sys, 2, 0)
	feed(sys, 2, 10)
	sys.Update(0.5)

	b.SetCallbacks(Callbacks{
		PoseWriteback: func(id uint32, out *pose.Snapshot) bool {
			if id != 1 {
				return false
			}
			out.RootPosition = mgl32.Vec3{99, 0, 0}
			return true
		},
	})

	snap, ok := b.FinalPose(1)
	if !ok {
		t.Fatal("handled writeback must yield a pose")
	}
	if snap.RootPosition != (mgl32.Vec3{99, 0, 0}) {
		t.Fatalf("handled writeback must be used verbatim, got %v", snap.RootPosition)
	}

	snap, ok = b.FinalPose(2)
	if !ok {
		t.Fatal("unhandled writeback must fall back to the system pose")
	}
	if snap.RootPosition != (mgl32.Vec3{5, 0, 0}) {
		t.Fatalf("expected the system's blended pose, got %v", snap.RootPosition)
	}
}

func TestHookPanicIsContained(t *testing.T) {
	b := newBridge(t)
	sys := b.System()

	b.SetCallbacks(Callbacks{
		LogicTick: func() { panic("host bug") },
		Capture:   func(id uint32) { feed(sys, id, 1) },
		PoseWriteback: func(uint32, *pose.Snapshot) bool {
			panic("host bug")
		},
	})

	b.LogicTick()
	b.CaptureActor(1)
	b.CaptureActor(1)
	sys.Update(1)

	snap, ok := b.FinalPose(1)
	if !ok {
		t.Fatal("a panicking writeback must fall back to the system pose")
	}
	if snap.RootPosition != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected system pose after contained panic, got %v", snap.RootPosition)
	}
}
