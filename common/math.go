package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SmallNumber is the threshold below which lengths and speeds count as zero.
const SmallNumber = 1e-4

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec3 interpolates component-wise; t is not clamped.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// NormalizeToRange maps v from [lo, hi] to [0, 1] without clamping. A
// degenerate range yields 0 below lo and 1 otherwise.
func NormalizeToRange(v, lo, hi float64) float64 {
	if lo == hi {
		if v < lo {
			return 0
		}
		return 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return (v - lo) / (hi - lo)
}

// HorizontalDirection drops the vertical (Z) component and normalizes what
// is left. ok is false when nothing horizontal remains.
func HorizontalDirection(v mgl64.Vec3) (dir mgl64.Vec3, ok bool) {
	flat := mgl64.Vec3{v.X(), v.Y(), 0}
	l := flat.Len()
	if l <= SmallNumber {
		return mgl64.Vec3{}, false
	}
	return flat.Mul(1 / l), true
}

// SafeNormal normalizes v, returning the zero vector for tiny inputs.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l <= SmallNumber {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// DirectionVector returns the unit forward vector for yaw and pitch in
// degrees, X forward at zero yaw, Z up.
func DirectionVector(yaw, pitch float64) mgl64.Vec3 {
	yawRad, pitchRad := mgl64.DegToRad(yaw), mgl64.DegToRad(pitch)
	c := math.Cos(pitchRad)
	return mgl64.Vec3{
		c * math.Cos(yawRad),
		c * math.Sin(yawRad),
		math.Sin(pitchRad),
	}
}

// RightVector returns the horizontal right vector for yaw in degrees.
func RightVector(yaw float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{-math.Sin(yawRad), math.Cos(yawRad), 0}
}
