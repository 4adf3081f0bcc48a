// Package floor models the tiled ground the player stands on.
package floor

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

var ErrInvalidConfig = errors.New("floor: invalid config")

// Config controls segment size and default placement.
type Config struct {
	SegmentWidth  float64
	SegmentHeight float64
	// Margin is the number of extra segments beyond what the visible width
	// needs, so lateral panning never exposes a gap. Raised to 1 if lower.
	Margin int
	// BottomInset is how far the bottom edge of the row sits below the bottom
	// of the visible area when no vertical offset was persisted.
	BottomInset float64
	// Z is the render depth of the row.
	Z float64
}

// DefaultConfig returns the shipped stone floor layout.
func DefaultConfig() Config {
	return Config{
		SegmentWidth:  3,
		SegmentHeight: 2.5,
		Margin:        6,
		BottomInset:   1,
		Z:             -5,
	}
}

// Segment is one rectangular tile, positioned by its centre.
type Segment struct {
	Center cp.Vector
	Width  float64
	Height float64
}

// Bounds returns the closed rectangle covered by the segment.
func (s Segment) Bounds() cp.BB {
	return cp.NewBBForExtents(s.Center, s.Width/2, s.Height/2)
}

// Contains reports whether p lies inside the segment, edges included.
func (s Segment) Contains(p cp.Vector) bool {
	return s.Bounds().ContainsVect(p)
}

// Option overrides the computed placement, typically from persisted settings.
type Option func(*placement)

type placement struct {
	x, y       float64
	hasX, hasY bool
}

// WithOffsetX places the centre of the first segment at x.
func WithOffsetX(x float64) Option {
	return func(p *placement) {
		p.x = x
		p.hasX = true
	}
}

// WithOffsetY places the centre of every segment at y.
func WithOffsetY(y float64) Option {
	return func(p *placement) {
		p.y = y
		p.hasY = true
	}
}

// Floor is a contiguous left-to-right row of equal segments.
type Floor struct {
	cfg         Config
	segments    []Segment
	showOutline bool
}

// New lays out enough segments to cover visibleWidth plus the configured
// margin. visibleWidth and visibleHeight are in world units at cfg.Z.
func New(cfg Config, visibleWidth, visibleHeight float64, opts ...Option) (*Floor, error) {
	if cfg.SegmentWidth <= 0 || cfg.SegmentHeight <= 0 {
		return nil, fmt.Errorf("%w: segment size %gx%g", ErrInvalidConfig, cfg.SegmentWidth, cfg.SegmentHeight)
	}
	if visibleWidth <= 0 || math.IsInf(visibleWidth, 0) || math.IsNaN(visibleWidth) {
		return nil, fmt.Errorf("%w: visible width %g", ErrInvalidConfig, visibleWidth)
	}
	if cfg.Margin < 1 {
		cfg.Margin = 1
	}

	p := placement{
		x: -visibleWidth / 2,
		y: -visibleHeight/2 - cfg.BottomInset + cfg.SegmentHeight/2,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}

	count := int(math.Ceil(visibleWidth/cfg.SegmentWidth)) + cfg.Margin
	f := &Floor{cfg: cfg, segments: make([]Segment, count)}
	for i := range f.segments {
		f.segments[i] = Segment{
			Center: cp.Vector{X: p.x + float64(i)*cfg.SegmentWidth, Y: p.y},
			Width:  cfg.SegmentWidth,
			Height: cfg.SegmentHeight,
		}
	}
	return f, nil
}

// CheckCollision reports whether position lies within any segment. Velocity
// is part of the calling contract only; the test is a presence test.
func (f *Floor) CheckCollision(position, velocity cp.Vector) bool {
	if f == nil {
		return false
	}
	for _, s := range f.segments {
		if s.Contains(position) {
			return true
		}
	}
	return false
}

// Translate moves every segment by the same delta.
func (f *Floor) Translate(dx, dy float64) {
	if f == nil {
		return
	}
	d := cp.Vector{X: dx, Y: dy}
	for i := range f.segments {
		f.segments[i].Center = f.segments[i].Center.Add(d)
	}
}

// Offset is the centre of the first segment, the single value persisted after an edit.
func (f *Floor) Offset() cp.Vector {
	if f == nil || len(f.segments) == 0 {
		return cp.Vector{}
	}
	return f.segments[0].Center
}

// Near reports whether world y is within tolerance of the row's centre line.
func (f *Floor) Near(y, tolerance float64) bool {
	if f == nil || len(f.segments) == 0 {
		return false
	}
	return math.Abs(y-f.segments[0].Center.Y) < tolerance
}

// Segments returns a copy of the segments, left to right.
func (f *Floor) Segments() []Segment {
	if f == nil {
		return nil
	}
	out := make([]Segment, len(f.segments))
	copy(out, f.segments)
	return out
}

func (f *Floor) Len() int {
	if f == nil {
		return 0
	}
	return len(f.segments)
}

// Coverage is the total width spanned by the row.
func (f *Floor) Coverage() float64 {
	if f == nil {
		return 0
	}
	return float64(len(f.segments)) * f.cfg.SegmentWidth
}

func (f *Floor) Z() float64 {
	if f == nil {
		return 0
	}
	return f.cfg.Z
}

// SetOutline toggles the debug outline overlay. It has no physical effect.
func (f *Floor) SetOutline(show bool) {
	if f == nil {
		return
	}
	f.showOutline = show
}

func (f *Floor) OutlineVisible() bool {
	return f != nil && f.showOutline
}
