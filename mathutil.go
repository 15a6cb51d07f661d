package orbital

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// The reference frame against which inclination and the ascending node
// are measured: a left-handed XZ orbital plane with +Y up. Load-bearing
// for the Ω/ω disambiguation rules in computeElements; do not change
// casually.
var (
	kReferenceX      = mgl32.Vec3{1, 0, 0}
	kReferenceY      = mgl32.Vec3{0, 0, -1}
	kReferenceNormal = mgl32.Vec3{0, 1, 0}
)

const pi2 = float32(2 * math.Pi)

func to64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func to32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// wrapf wraps x into [0, max).
func wrapf(x, max float32) float32 {
	r := float32(math.Mod(float64(x), float64(max)))
	if r < 0 {
		r += max
	}
	return r
}

// angleBetweenUnitVectors returns the unsigned angle, in radians, between
// two unit vectors. The dot product is clamped to [-1, 1] to guard
// against acos domain errors from floating-point overshoot.
func angleBetweenUnitVectors(a, b mgl32.Vec3) float32 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return float32(math.Acos(float64(d)))
}

func acosClampedf(d float32) float32 {
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return float32(math.Acos(float64(d)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
