package obj

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/floorknight/common"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(common.DefaultViewport())
	p := common.Vec3{X: 3.5, Y: -2, Z: -5}

	sx, sy := cam.WorldToScreen(p)
	got := cam.ScreenToWorld(sx, sy, p.Z)
	if !approx(got.X, p.X) || !approx(got.Y, p.Y) {
		t.Fatalf("round trip = %v, want %v", got, p)
	}
}

func TestCameraScreenDeltaFlipsY(t *testing.T) {
	cam := NewCamera(common.DefaultViewport())
	s := cam.Scale(-5)

	dx, dy := cam.ScreenDeltaToWorld(s, s, -5)
	if !approx(dx, 1) || !approx(dy, -1) {
		t.Fatalf("delta = (%v, %v), want (1, -1)", dx, dy)
	}
}

func TestCameraRectOnScreen(t *testing.T) {
	cam := NewCamera(common.DefaultViewport())
	s := cam.Scale(0)

	x, y, w, h := cam.RectOnScreen(common.Vec3{}, 2, 4)
	if !approx(w, 2*s) || !approx(h, 4*s) {
		t.Fatalf("size = %vx%v, want %vx%v", w, h, 2*s, 4*s)
	}
	if !approx(x+w/2, common.BaseWidth/2) || !approx(y+h/2, common.BaseHeight/2) {
		t.Fatalf("rect not centred: x=%v y=%v", x, y)
	}
}

func TestCameraVisible(t *testing.T) {
	cam := NewCamera(common.DefaultViewport())

	tests := []struct {
		name       string
		x, y, w, h float64
		want       bool
	}{
		{"inside", 10, 10, 5, 5, true},
		{"overlaps left edge", -4, 10, 5, 5, true},
		{"left of screen", -20, 10, 5, 5, false},
		{"below screen", 10, common.BaseHeight + 1, 5, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.Visible(tt.x, tt.y, tt.w, tt.h); got != tt.want {
				t.Fatalf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraCoverScale(t *testing.T) {
	cam := NewCamera(common.DefaultViewport())

	if got := cam.CoverScale(640, 720); !approx(got, 2) {
		t.Fatalf("CoverScale(640, 720) = %v, want 2", got)
	}
	if got := cam.CoverScale(1280, 360); !approx(got, 2) {
		t.Fatalf("CoverScale(1280, 360) = %v, want 2", got)
	}
	if got := cam.CoverScale(0, 10); got != 0 {
		t.Fatalf("CoverScale of empty image = %v, want 0", got)
	}
}

func TestOutlineImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5, 5))
	src.Set(2, 2, color.White)
	red := color.RGBA{R: 0xff, A: 0xff}

	out := OutlineImage(src, 1, red)

	if _, _, _, a := out.At(2, 2).RGBA(); a != 0 {
		t.Fatalf("opaque source pixel was outlined")
	}
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if x == 2 && y == 2 {
				continue
			}
			if got := out.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want outline", x, y, got)
			}
		}
	}
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("pixel outside thickness was outlined")
	}
}
