package common

import (
	"math"
	"testing"
	"time"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := DefaultViewport()
	cases := []struct {
		name string
		p    Vec3
	}{
		{"origin", Vec3{Z: -5}},
		{"spawn", Vec3{X: 0, Y: 2, Z: -5}},
		{"left_low", Vec3{X: -12.5, Y: -9, Z: -5}},
		{"camera_plane", Vec3{X: 3, Y: 1, Z: 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sx, sy := vp.WorldToScreen(c.p)
			back := vp.ScreenToWorld(sx, sy, c.p.Z)
			if math.Abs(back.X-c.p.X) > 1e-9 || math.Abs(back.Y-c.p.Y) > 1e-9 {
				t.Fatalf("round trip mismatch: %v -> (%f,%f) -> %v", c.p, sx, sy, back)
			}
		})
	}
}

func TestViewportOriginAtCentre(t *testing.T) {
	vp := DefaultViewport()
	sx, sy := vp.WorldToScreen(Vec3{Z: -5})
	if sx != vp.Width/2 || sy != vp.Height/2 {
		t.Fatalf("expected screen centre, got (%f,%f)", sx, sy)
	}
	// y up in world is y down on screen
	_, upY := vp.WorldToScreen(Vec3{Y: 1, Z: -5})
	if upY >= sy {
		t.Fatalf("expected world +y above centre, got %f >= %f", upY, sy)
	}
}

func TestViewportVisibleSize(t *testing.T) {
	vp := DefaultViewport()
	h := vp.VisibleHeight(0)
	want := 2 * math.Tan(22.5*math.Pi/180) * 20
	if math.Abs(h-want) > 1e-9 {
		t.Fatalf("visible height at z=0: got %f want %f", h, want)
	}
	if w := vp.VisibleWidth(0); math.Abs(w-h*16/9) > 1e-9 {
		t.Fatalf("visible width should follow aspect ratio, got %f", w)
	}
	if vp.VisibleHeight(-5) <= h {
		t.Fatalf("farther planes should cover more world")
	}
}

func TestClockDelta(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClockWithSource(func() time.Time { return now })

	now = now.Add(100 * time.Millisecond)
	if d := c.Delta(); math.Abs(d-0.1) > 1e-9 {
		t.Fatalf("expected 0.1, got %f", d)
	}

	now = now.Add(5 * time.Second)
	if d := c.Delta(); d != MaxFrameDelta {
		t.Fatalf("expected clamp to %f, got %f", MaxFrameDelta, d)
	}

	now = now.Add(time.Second)
	c.Start()
	if d := c.Delta(); d != 0 {
		t.Fatalf("expected 0 right after Start, got %f", d)
	}
}
