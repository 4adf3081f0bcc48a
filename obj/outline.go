package obj

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/floorknight/floor"
)

// StrokeSegments draws the edit-mode outline around every floor segment.
func StrokeSegments(screen *ebiten.Image, cam *Camera, f *floor.Floor, clr color.Color) {
	if screen == nil || !f.OutlineVisible() {
		return
	}
	z := f.Z()
	for _, seg := range f.Segments() {
		x, y, w, h := cam.RectOnScreen(blockCenter(seg, z), seg.Width, seg.Height)
		if !cam.Visible(x, y, w, h) {
			continue
		}
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, clr, false)
	}
}

// Outliner generates and caches silhouette outlines of sprite frames.
type Outliner struct {
	Thickness int
	Color     color.Color
	cache     map[image.Image]*ebiten.Image
}

func NewOutliner(thickness int, clr color.Color) *Outliner {
	return &Outliner{Thickness: thickness, Color: clr, cache: map[image.Image]*ebiten.Image{}}
}

// Outline returns the outline image for src, generating it on first use.
func (o *Outliner) Outline(src image.Image) *ebiten.Image {
	if o == nil || src == nil {
		return nil
	}
	if img, ok := o.cache[src]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(OutlineImage(src, o.Thickness, o.Color))
	o.cache[src] = img
	return img
}

// Reset drops every cached outline.
func (o *Outliner) Reset() {
	for k, img := range o.cache {
		img.Deallocate()
		delete(o.cache, k)
	}
}

// OutlineImage marks every transparent pixel of src that lies within
// thickness pixels of an opaque one.
func OutlineImage(src image.Image, thickness int, outlineCol color.Color) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOpaque(x, y) {
				continue
			}
			found := false
			ymin := max(y-thickness, 0)
			ymax := min(y+thickness, h-1)
			xmin := max(x-thickness, 0)
			xmax := min(x+thickness, w-1)
			for yy := ymin; yy <= ymax && !found; yy++ {
				for xx := xmin; xx <= xmax; xx++ {
					if isOpaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(x, y, outlineCol)
			}
		}
	}

	return out
}
