package common

import "github.com/jakecoffman/cp"

// Logical screen size. The window is scaled to fit.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3 is a world-space position or velocity. Z is the billboard depth and
// never changes during play.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// XY drops the depth component.
func (v Vec3) XY() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// WithXY returns v with X and Y replaced by p.
func (v Vec3) WithXY(p cp.Vector) Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: v.Z}
}
