package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/component"
	"github.com/milk9111/floorknight/floor"
)

// PlayerSprite is the player's billboard. Its position is the player's
// collision point; the image is drawn with its bottom edge centred on it.
type PlayerSprite struct {
	Pos    common.Vec3
	Frame  component.Frame
	Width  float64
	Height float64
}

func (s *PlayerSprite) SetPosition(p common.Vec3)  { s.Pos = p }
func (s *PlayerSprite) SetFrame(f component.Frame) { s.Frame = f }

// Center is the middle of the drawn image in world space.
func (s *PlayerSprite) Center() common.Vec3 {
	return common.Vec3{X: s.Pos.X, Y: s.Pos.Y + s.Height/2, Z: s.Pos.Z}
}

// Draw renders img, mirrored when facing left, or a filled placeholder when
// the frame has not loaded.
func (s *PlayerSprite) Draw(screen *ebiten.Image, cam *Camera, img *ebiten.Image, placeholder color.Color) {
	x, y, w, h := cam.RectOnScreen(s.Center(), s.Width, s.Height)
	if img == nil {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), placeholder, false)
		return
	}
	drawStretched(screen, img, x, y, w, h, s.Frame.Facing == component.FacingLeft)
}

// Block is one floor segment's drawable.
type Block struct {
	Pos    common.Vec3
	Width  float64
	Height float64
}

func NewBlock(seg floor.Segment, z float64) *Block {
	return &Block{Pos: blockCenter(seg, z), Width: seg.Width, Height: seg.Height}
}

func (b *Block) SetPosition(p common.Vec3) { b.Pos = p }

func (b *Block) Draw(screen *ebiten.Image, cam *Camera, tex *ebiten.Image, placeholder color.Color) {
	x, y, w, h := cam.RectOnScreen(b.Pos, b.Width, b.Height)
	if !cam.Visible(x, y, w, h) {
		return
	}
	if tex == nil {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), placeholder, false)
		return
	}
	drawStretched(screen, tex, x, y, w, h, false)
}

func blockCenter(seg floor.Segment, z float64) common.Vec3 {
	return common.Vec3{X: seg.Center.X, Y: seg.Center.Y, Z: z}
}

func drawStretched(screen, img *ebiten.Image, x, y, w, h float64, mirror bool) {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	sx, sy := w/float64(iw), h/float64(ih)
	if mirror {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(x+w, y)
	} else {
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x, y)
	}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
