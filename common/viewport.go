package common

import "math"

// Viewport maps world units (y up, origin at screen centre) to logical screen
// pixels using a pinhole camera on the z axis looking toward -z.
type Viewport struct {
	Width   float64 // logical pixels
	Height  float64 // logical pixels
	FOV     float64 // vertical field of view in degrees
	CameraZ float64
}

// DefaultViewport matches a 45 degree camera sitting at z=20.
func DefaultViewport() Viewport {
	return Viewport{Width: BaseWidth, Height: BaseHeight, FOV: 45, CameraZ: 20}
}

func (v Viewport) distance(z float64) float64 {
	d := v.CameraZ - z
	if d <= 0 {
		return 1e-6
	}
	return d
}

// VisibleHeight returns the world-space height covered by the screen at depth z.
func (v Viewport) VisibleHeight(z float64) float64 {
	return 2 * math.Tan(v.FOV*math.Pi/360) * v.distance(z)
}

// VisibleWidth returns the world-space width covered by the screen at depth z.
func (v Viewport) VisibleWidth(z float64) float64 {
	if v.Height <= 0 {
		return 0
	}
	return v.VisibleHeight(z) * v.Width / v.Height
}

// PixelsPerUnit is the screen scale of one world unit at depth z.
func (v Viewport) PixelsPerUnit(z float64) float64 {
	h := v.VisibleHeight(z)
	if h <= 0 {
		return 0
	}
	return v.Height / h
}

// WorldToScreen projects a world position to logical screen pixels.
func (v Viewport) WorldToScreen(p Vec3) (float64, float64) {
	ppu := v.PixelsPerUnit(p.Z)
	return v.Width/2 + p.X*ppu, v.Height/2 - p.Y*ppu
}

// ScreenToWorld is the inverse of WorldToScreen on the plane at depth z.
func (v Viewport) ScreenToWorld(sx, sy, z float64) Vec3 {
	ppu := v.PixelsPerUnit(z)
	if ppu == 0 {
		return Vec3{Z: z}
	}
	return Vec3{X: (sx - v.Width/2) / ppu, Y: (v.Height/2 - sy) / ppu, Z: z}
}
