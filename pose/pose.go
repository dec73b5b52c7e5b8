package pose

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxBones is the maximum amount of bones a skeleton snapshot can hold. Bones past
	// this index are truncated on capture.
	MaxBones = 64
	// AngleUnits is the amount of fixed-point angle units in one full turn. All angular
	// arithmetic wraps modulo this value.
	AngleUnits = 65536
	// HalfTurn is half of a full turn in fixed-point angle units.
	HalfTurn = 32768
)

// Angles is a fixed-point Euler rotation. Each component is measured in units of
// 1/65536th of a full turn, and wraps naturally through uint16 arithmetic.
type Angles [3]uint16

// BoneTransform is the local transform of a single bone: position, fixed-point
// rotation, and scale. It is a plain value with no ownership semantics.
type BoneTransform struct {
	Position mgl32.Vec3
	Rotation Angles
	Scale    mgl32.Vec3
}

// Snapshot is a complete skeleton pose captured at one logic tick, or computed as a
// blend of two. Bones past BoneCount are undefined and must not be read.
type Snapshot struct {
	RootPosition mgl32.Vec3
	RootRotation Angles
	BoneCount    int
	Bones        [MaxBones]BoneTransform
}
