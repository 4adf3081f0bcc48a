package obj

import (
	"math"

	"github.com/milk9111/floorknight/common"
)

// Camera projects the world onto the logical screen. It is fixed on the z
// axis; depth only changes the scale at which a plane is drawn.
type Camera struct {
	vp common.Viewport
}

// NewCamera creates a camera for the given viewport.
func NewCamera(vp common.Viewport) *Camera {
	return &Camera{vp: vp}
}

func (c *Camera) Viewport() common.Viewport {
	return c.vp
}

// WorldToScreen returns the logical pixel position of p.
func (c *Camera) WorldToScreen(p common.Vec3) (float64, float64) {
	return c.vp.WorldToScreen(p)
}

// ScreenToWorld un-projects a logical pixel onto the plane at depth z.
func (c *Camera) ScreenToWorld(sx, sy, z float64) common.Vec3 {
	return c.vp.ScreenToWorld(sx, sy, z)
}

// Scale returns the number of logical pixels per world unit at depth z.
func (c *Camera) Scale(z float64) float64 {
	return c.vp.PixelsPerUnit(z)
}

// ScreenDeltaToWorld converts a pointer movement in pixels into a world
// delta on the plane at depth z. Screen y grows downward.
func (c *Camera) ScreenDeltaToWorld(dx, dy, z float64) (float64, float64) {
	s := c.Scale(z)
	if s == 0 {
		return 0, 0
	}
	return dx / s, -dy / s
}

// RectOnScreen returns the top-left corner and size in pixels of a world
// rectangle of w by h centred on center.
func (c *Camera) RectOnScreen(center common.Vec3, w, h float64) (x, y, sw, sh float64) {
	cx, cy := c.WorldToScreen(center)
	s := c.Scale(center.Z)
	sw, sh = w*s, h*s
	return cx - sw/2, cy - sh/2, sw, sh
}

// Visible reports whether a screen rectangle overlaps the logical screen.
func (c *Camera) Visible(x, y, w, h float64) bool {
	return x+w >= 0 && y+h >= 0 && x <= c.vp.Width && y <= c.vp.Height
}

// CoverScale returns the uniform scale that makes an image of iw by ih
// pixels cover the whole screen.
func (c *Camera) CoverScale(iw, ih int) float64 {
	if iw <= 0 || ih <= 0 {
		return 0
	}
	return math.Max(c.vp.Width/float64(iw), c.vp.Height/float64(ih))
}
