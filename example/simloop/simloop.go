package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/tickblend/tickblend"
	"github.com/tickblend/tickblend/handler"
	"github.com/tickblend/tickblend/pose"
)

const (
	simRate    = 25 // logic ticks per second
	renderRate = 60 // presentation frames per second

	actorID = 0xA0000001
)

// degrees converts an angle in degrees to fixed-point angle units.
func degrees(deg float32) uint16 {
	return uint16(int32(deg/360*pose.AngleUnits) & 0xFFFF)
}

// swing ping-pongs a value between two bounds with a gween tween, rebuilding the
// tween in the opposite direction whenever it completes.
type swing struct {
	tw       *gween.Tween
	from, to float32
	duration float32
	easing   ease.TweenFunc
}

func newSwing(from, to, duration float32, easing ease.TweenFunc) *swing {
	return &swing{
		tw:       gween.New(from, to, duration, easing),
		from:     from,
		to:       to,
		duration: duration,
		easing:   easing,
	}
}

func (s *swing) update(dt float32) float32 {
	value, done := s.tw.Update(dt)
	if done {
		s.from, s.to = s.to, s.from
		s.tw = gween.New(s.from, s.to, s.duration, s.easing)
	}
	return value
}

// The following program drives a two-bone skeleton through a fixed 25 Hz
// simulation while rendering at 60 Hz, and prints the interpolated poses the
// renderer would consume. Both clocks are stepped synthetically so the output is
// deterministic.
func main() {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	sys := tickblend.New(log)
	if !sys.Init() {
		log.Fatal("interpolation system failed to initialize")
	}
	defer sys.Shutdown()

	// The simulated actor walks forward while swinging its arm: one tween swings
	// the shoulder yaw, another bends the elbow. Each tween ping-pongs by being
	// rebuilt in the opposite direction when it finishes.
	shoulder := newSwing(-60, 60, 2, ease.InOutSine)
	elbow := newSwing(0, 35, 0.5, ease.OutQuad)

	var walked float32
	bones := make([]pose.BoneTransform, 2)

	bridge := handler.NewBridge(sys, log)
	bridge.SetCallbacks(handler.Callbacks{
		LogicTick: sys.LogicTick,
		Capture: func(id uint32) {
			const dt = 1.0 / simRate
			shoulderDeg := shoulder.update(dt)
			elbowDeg := elbow.update(dt)
			walked += 1.5 * dt

			bones[0] = pose.BoneTransform{
				Position: mgl32.Vec3{0, 1.4, 0},
				Rotation: pose.Angles{0, degrees(shoulderDeg), 0},
				Scale:    mgl32.Vec3{1, 1, 1},
			}
			bones[1] = pose.BoneTransform{
				Position: mgl32.Vec3{0, 1.1, 0.3},
				Rotation: pose.Angles{degrees(elbowDeg), 0, 0},
				Scale:    mgl32.Vec3{1, 1, 1},
			}
			sys.Capture(id, len(bones), bones, mgl32.Vec3{walked, 0, 0}, pose.Angles{})
		},
		Update: sys.Update,
	})

	// Two seconds of decoupled loops: the render clock runs ahead of the sim
	// clock, and alpha is the fraction of the current tick already elapsed.
	simStep := 1.0 / float64(simRate)
	var simClock, renderClock float64
	for frame := 0; frame < 2*renderRate; frame++ {
		renderClock = float64(frame) / renderRate
		for simClock+simStep <= renderClock {
			simClock += simStep
			bridge.LogicTick()
			bridge.CaptureActor(actorID)
		}

		alpha := float32((renderClock - simClock) / simStep)
		bridge.Update(alpha)

		if frame%20 == 0 {
			if snap, ok := bridge.FinalPose(actorID); ok {
				log.Infof("frame %3d alpha %.2f root %.3f shoulder %#04x elbow %#04x",
					frame, alpha, snap.RootPosition.X(), snap.Bones[0].Rotation[1], snap.Bones[1].Rotation[0])
			}
		}
	}

	// A world reload recycles actor handles, so the bridge flushes everything.
	bridge.MapChange()
	log.Infof("after map change: %d tracked entities", sys.EntityCount())
}
