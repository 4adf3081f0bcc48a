package floor

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestNewCoversVisibleWidth(t *testing.T) {
	widths := []float64{0.5, 1, 7.3, 16.57, 29.46, 36.8, 100, 1234.5}
	segs := []float64{0.1, 1, 2, 3, 4.75, 50}
	for _, w := range widths {
		for _, s := range segs {
			cfg := DefaultConfig()
			cfg.SegmentWidth = s
			f, err := New(cfg, w, 10)
			if err != nil {
				t.Fatalf("w=%g s=%g: %v", w, s, err)
			}
			if got := float64(f.Len()) * s; got < w {
				t.Fatalf("w=%g s=%g: %d segments cover %g", w, s, f.Len(), got)
			}
			segments := f.Segments()
			left := segments[0].Bounds().L
			right := segments[len(segments)-1].Bounds().R
			if left > -w/2 || right < w/2 {
				t.Fatalf("w=%g s=%g: row [%g,%g] does not span visible area", w, s, left, right)
			}
			for i := 1; i < len(segments); i++ {
				gap := segments[i].Bounds().L - segments[i-1].Bounds().R
				if math.Abs(gap) > 1e-9 {
					t.Fatalf("w=%g s=%g: gap %g between %d and %d", w, s, gap, i-1, i)
				}
			}
		}
	}
}

func TestNewSegmentCount(t *testing.T) {
	cfg := DefaultConfig()
	f, err := New(cfg, 30, 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := 10 + cfg.Margin; f.Len() != want {
		t.Fatalf("expected %d segments, got %d", want, f.Len())
	}

	cfg.Margin = 0
	f, err = New(cfg, 30, 16)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 11 {
		t.Fatalf("margin below 1 should be raised to 1, got %d segments", f.Len())
	}
}

func TestNewInvalid(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		w    float64
	}{
		{"zero_width", Config{SegmentWidth: 0, SegmentHeight: 1, Margin: 1}, 10},
		{"negative_height", Config{SegmentWidth: 1, SegmentHeight: -1, Margin: 1}, 10},
		{"zero_visible", DefaultConfig(), 0},
		{"nan_visible", DefaultConfig(), math.NaN()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.cfg, c.w, 10)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDefaultPlacement(t *testing.T) {
	cfg := DefaultConfig()
	f, err := New(cfg, 20, 16)
	if err != nil {
		t.Fatal(err)
	}
	off := f.Offset()
	if off.X != -10 {
		t.Fatalf("first centre x: got %g want -10", off.X)
	}
	wantY := -8 - cfg.BottomInset + cfg.SegmentHeight/2
	if off.Y != wantY {
		t.Fatalf("centre y: got %g want %g", off.Y, wantY)
	}
}

func TestPersistedPlacement(t *testing.T) {
	cfg := DefaultConfig()
	f, err := New(cfg, 20, 16, WithOffsetX(4), WithOffsetY(-3))
	if err != nil {
		t.Fatal(err)
	}
	segs := f.Segments()
	if segs[0].Center != (cp.Vector{X: 4, Y: -3}) {
		t.Fatalf("unexpected first centre %v", segs[0].Center)
	}
	if segs[2].Center.X != 4+2*cfg.SegmentWidth {
		t.Fatalf("spacing not preserved: %v", segs[2].Center)
	}

	onlyY, err := New(cfg, 20, 16, WithOffsetY(1))
	if err != nil {
		t.Fatal(err)
	}
	if onlyY.Offset().X != -10 || onlyY.Offset().Y != 1 {
		t.Fatalf("offsets should apply independently, got %v", onlyY.Offset())
	}
}

func TestCheckCollision(t *testing.T) {
	cfg := Config{SegmentWidth: 2, SegmentHeight: 1, Margin: 1}
	f, err := New(cfg, 4, 10, WithOffsetX(0), WithOffsetY(0))
	if err != nil {
		t.Fatal(err)
	}
	// segments centred at x=0,2,4 covering [-1,5] x [-0.5,0.5]
	cases := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"centre", cp.Vector{X: 0, Y: 0}, true},
		{"left_edge", cp.Vector{X: -1, Y: 0}, true},
		{"top_edge", cp.Vector{X: 0.3, Y: 0.5}, true},
		{"bottom_right_corner", cp.Vector{X: 5, Y: -0.5}, true},
		{"shared_edge", cp.Vector{X: 1, Y: 0.2}, true},
		{"just_above", cp.Vector{X: 0, Y: 0.5000001}, false},
		{"just_left", cp.Vector{X: -1.0000001, Y: 0}, false},
		{"beyond_right", cp.Vector{X: 5.1, Y: 0}, false},
		{"far_below", cp.Vector{X: 2, Y: -4}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f.CheckCollision(c.p, cp.Vector{Y: -3}); got != c.want {
				t.Fatalf("CheckCollision(%v) = %v want %v", c.p, got, c.want)
			}
			// velocity never influences the result
			if got := f.CheckCollision(c.p, cp.Vector{Y: 50}); got != c.want {
				t.Fatalf("velocity changed result at %v", c.p)
			}
		})
	}
}

func TestTranslatePreservesSpacing(t *testing.T) {
	f, err := New(DefaultConfig(), 20, 16)
	if err != nil {
		t.Fatal(err)
	}
	before := f.Segments()
	f.Translate(1.5, -0.75)
	after := f.Segments()
	for i := range before {
		want := before[i].Center.Add(cp.Vector{X: 1.5, Y: -0.75})
		if after[i].Center != want {
			t.Fatalf("segment %d: got %v want %v", i, after[i].Center, want)
		}
	}
	if f.Offset() != after[0].Center {
		t.Fatalf("offset should track the first segment")
	}
	if !f.Near(after[0].Center.Y+2.9, 3) || f.Near(after[0].Center.Y+3.1, 3) {
		t.Fatalf("near test should follow the translated row")
	}
}

func TestOutlineIsPresentational(t *testing.T) {
	f, err := New(DefaultConfig(), 20, 16)
	if err != nil {
		t.Fatal(err)
	}
	p := f.Offset()
	f.SetOutline(true)
	if !f.OutlineVisible() || !f.CheckCollision(p, cp.Vector{}) {
		t.Fatalf("outline toggle must not affect collision")
	}
	f.SetOutline(false)
	if f.OutlineVisible() {
		t.Fatalf("outline should be hidden")
	}
}
