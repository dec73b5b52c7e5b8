// Package tickblend buffers per-entity skeletal poses from a fixed-rate
// simulation and produces smoothly blended poses for a presentation layer
// running at an arbitrary, higher rate. Interpolation is strictly a
// presentation-time concern: the simulation's timing and determinism are never
// touched.
package tickblend

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/tickblend/tickblend/entity"
	"github.com/tickblend/tickblend/pose"
	"github.com/tickblend/tickblend/settings"
)

// System owns all interpolation state: the entity tracking table, the logic tick
// counter and the active settings. A System starts uninitialized; every operation
// before Init or after Shutdown is a safe no-op returning unavailable results.
// Multiple systems may coexist, each with an independent timeline.
type System struct {
	log   *logrus.Logger
	cfg   settings.Settings
	table *entity.Table
	tick  int64

	// scratch stages an incoming capture before it is shifted into a slot, keeping
	// the capture path free of per-call allocation.
	scratch pose.Snapshot

	initialized bool
}

// New returns an uninitialized System. A nil logger suppresses all log output.
func New(log *logrus.Logger) *System {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &System{log: log}
}

// Init allocates the entity table and resets settings to defaults. Calling Init on
// an already initialized system resets it. It reports whether the system is ready
// for use.
func (s *System) Init() bool {
	s.table = entity.NewTable()
	s.cfg = settings.Default()
	s.tick = 0
	s.initialized = true

	s.log.Infof("tickblend: initialized with capacity for %d entities", entity.MaxEntities)
	return true
}

// Shutdown releases all tracked state. The system returns to the uninitialized
// state and may be re-initialized later.
func (s *System) Shutdown() {
	if !s.initialized {
		return
	}
	s.table = nil
	s.initialized = false
	s.log.Info("tickblend: shut down")
}

// Config returns the mutable settings of the system, or nil if the system is not
// initialized. Changes take effect on the next Update.
func (s *System) Config() *settings.Settings {
	if !s.initialized {
		return nil
	}
	return &s.cfg
}

// LogicTick advances the logic tick counter. Hosts call this exactly once per
// simulation step, before capturing any entities for that step.
func (s *System) LogicTick() {
	if !s.initialized {
		return
	}
	s.tick++
}

// Tick returns the current logic tick index.
func (s *System) Tick() int64 {
	if !s.initialized {
		return 0
	}
	return s.tick
}

// Capture records the pose of an entity for the current logic tick. The snapshot
// previously held as current becomes the previous one. Bone counts beyond the
// snapshot capacity or the supplied slice are truncated rather than rejected, so a
// malformed call cannot dislodge a healthy tracking slot. Captures for new
// entities are silently dropped when the table is full; smoothing is a soft
// degradation, never a fatal condition.
func (s *System) Capture(id uint32, boneCount int, bones []pose.BoneTransform, rootPos mgl32.Vec3, rootRot pose.Angles) {
	if !s.initialized {
		return
	}

	slot, ok := s.table.Insert(id)
	if !ok {
		s.log.Debugf("tickblend: capture for entity %#x dropped, table full", id)
		return
	}

	if boneCount < 0 || bones == nil {
		boneCount = 0
	}
	if boneCount > len(bones) {
		boneCount = len(bones)
	}
	if boneCount > pose.MaxBones {
		boneCount = pose.MaxBones
	}

	s.scratch.RootPosition = rootPos
	s.scratch.RootRotation = rootRot
	s.scratch.BoneCount = boneCount
	copy(s.scratch.Bones[:boneCount], bones[:boneCount])

	slot.Shift(&s.scratch, s.tick)
}

// Update computes the blended output pose of every active, valid entity at the
// given interpolation factor. Alpha of zero yields the previous tick's pose and
// one yields the current tick's; out-of-range values extrapolate linearly. The
// factor is eased by the configured blend sharpness before use.
func (s *System) Update(alpha float32) {
	if !s.initialized || !s.cfg.Enabled {
		return
	}

	eased := pose.Ease(alpha, s.cfg.BlendSharpness)
	opt := pose.Options{
		Position: s.cfg.InterpPosition,
		Rotation: s.cfg.InterpRotation,
		Scale:    s.cfg.InterpScale,
	}

	s.table.All(func(slot *entity.Slot) bool {
		if slot.Valid {
			pose.Blend(&slot.Rendered, &slot.Prev, &slot.Curr, eased, opt)
		}
		return true
	})
}

// Pose returns the last blended pose of the given entity. The returned snapshot is
// only valid until the next Update call. It reports false while the entity has
// received fewer than two captures, is not tracked, or the system is disabled or
// uninitialized.
func (s *System) Pose(id uint32) (*pose.Snapshot, bool) {
	if !s.initialized || !s.cfg.Enabled {
		return nil, false
	}
	slot, ok := s.table.Find(id)
	if !ok || !slot.Valid {
		return nil, false
	}
	return &slot.Rendered, true
}

// RemoveEntity stops tracking the given entity and frees its slot for reuse.
func (s *System) RemoveEntity(id uint32) {
	if !s.initialized {
		return
	}
	s.table.Remove(id)
}

// RemoveAll stops tracking every entity. Hosts must call this at world-teardown
// boundaries: entity handles may be recycled across reloads, and the system has no
// way to tell a recycled handle from a long-lived one.
func (s *System) RemoveAll() {
	if !s.initialized {
		return
	}
	s.table.RemoveAll()
}

// EntityCount returns the amount of entities currently tracked.
func (s *System) EntityCount() uint32 {
	if !s.initialized {
		return 0
	}
	return uint32(s.table.Count())
}
