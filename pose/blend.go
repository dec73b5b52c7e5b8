package pose

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Options determines which channels of a snapshot are blended. A disabled channel
// passes the current pose through unchanged.
type Options struct {
	Position bool
	Rotation bool
	Scale    bool
}

// AngleDelta returns the shortest signed angular difference between two fixed-point
// angles. The two's-complement wrap of the uint16 subtraction lands the result in
// [-32768, 32767], so a delta across the 0/65536 boundary never takes the long way
// around.
func AngleDelta(prev, curr uint16) int16 {
	return int16(curr - prev)
}

// LerpAngle interpolates between two fixed-point angles along the shortest angular
// path, wrapping modulo 65536.
func LerpAngle(prev, curr uint16, alpha float32) uint16 {
	d := AngleDelta(prev, curr)
	return prev + uint16(int16(math32.Round(float32(d)*alpha)))
}

// LerpAngles interpolates all three components of a fixed-point Euler rotation.
func LerpAngles(prev, curr Angles, alpha float32) Angles {
	return Angles{
		LerpAngle(prev[0], curr[0], alpha),
		LerpAngle(prev[1], curr[1], alpha),
		LerpAngle(prev[2], curr[2], alpha),
	}
}

// LerpVec3 linearly interpolates between two vectors component-wise.
func LerpVec3(prev, curr mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return prev.Add(curr.Sub(prev).Mul(alpha))
}

// Ease biases an interpolation factor toward a snap. A sharpness of zero leaves
// alpha untouched, while a sharpness of one collapses the blend onto the current
// pose. Intermediate values apply alpha^(1-sharpness).
func Ease(alpha, sharpness float32) float32 {
	if sharpness <= 0 {
		return alpha
	}
	if sharpness >= 1 {
		return 1
	}
	return math32.Pow(alpha, 1-sharpness)
}

// Blend writes into dst the interpolation of prev and curr at the given factor.
// Alpha of zero yields prev and alpha of one yields curr for every enabled
// channel; out-of-range alpha extrapolates linearly. The destination bone count
// follows curr, and bones prev never captured are copied from curr as-is.
func Blend(dst, prev, curr *Snapshot, alpha float32, opt Options) {
	if opt.Position {
		dst.RootPosition = LerpVec3(prev.RootPosition, curr.RootPosition, alpha)
	} else {
		dst.RootPosition = curr.RootPosition
	}
	if opt.Rotation {
		dst.RootRotation = LerpAngles(prev.RootRotation, curr.RootRotation, alpha)
	} else {
		dst.RootRotation = curr.RootRotation
	}

	dst.BoneCount = curr.BoneCount
	shared := curr.BoneCount
	if prev.BoneCount < shared {
		shared = prev.BoneCount
	}

	for i := 0; i < shared; i++ {
		pb, cb := &prev.Bones[i], &curr.Bones[i]
		out := &dst.Bones[i]
		if opt.Position {
			out.Position = LerpVec3(pb.Position, cb.Position, alpha)
		} else {
			out.Position = cb.Position
		}
		if opt.Rotation {
			out.Rotation = LerpAngles(pb.Rotation, cb.Rotation, alpha)
		} else {
			out.Rotation = cb.Rotation
		}
		if opt.Scale {
			out.Scale = LerpVec3(pb.Scale, cb.Scale, alpha)
		} else {
			out.Scale = cb.Scale
		}
	}
	for i := shared; i < curr.BoneCount; i++ {
		dst.Bones[i] = curr.Bones[i]
	}
}
