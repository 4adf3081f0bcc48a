package obj

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/floorknight/assets"
	"github.com/milk9111/floorknight/component"
	"github.com/milk9111/floorknight/floor"
	"github.com/milk9111/floorknight/session"
	"golang.org/x/image/colornames"
)

// Style holds the sizes and fallback colours of the scene.
type Style struct {
	PlayerWidth  float64
	PlayerHeight float64

	PlayerPlaceholder color.Color
	FloorPlaceholder  color.Color
	FloorOutline      color.Color
	Sky               color.Color
}

func DefaultStyle() Style {
	return Style{
		PlayerWidth:       2,
		PlayerHeight:      2,
		PlayerPlaceholder: colornames.Crimson,
		FloorPlaceholder:  color.NRGBA{R: 0x4b, G: 0x36, B: 0x21, A: 0xff},
		FloorOutline:      colornames.Yellow,
		Sky:               colornames.Midnightblue,
	}
}

// AssetPaths names what the scene loads from the asset library.
type AssetPaths struct {
	Frames     map[component.Action]string
	Floor      string
	Background string
}

// Scene implements session.Scene over ebiten. Textures load in the
// background; until they arrive the placeholders are drawn.
type Scene struct {
	cam   *Camera
	style Style

	sprite *PlayerSprite
	blocks []*Block

	frames     map[component.Action][]*ebiten.Image
	decoded    assets.Frames
	floorTex   *ebiten.Image
	background *ebiten.Image
	outliner   *Outliner

	framesTask *assets.Task[assets.Frames]
	floorTask  *assets.Task[image.Image]
	bgTask     *assets.Task[image.Image]
}

func NewScene(cam *Camera, style Style) *Scene {
	return &Scene{
		cam:      cam,
		style:    style,
		frames:   map[component.Action][]*ebiten.Image{},
		outliner: NewOutliner(1, style.FloorOutline),
	}
}

// Load starts decoding every texture. It returns immediately.
func (s *Scene) Load(lib *assets.Library, paths AssetPaths, clips component.ClipSet) {
	if len(paths.Frames) > 0 {
		s.framesTask = lib.LoadFrames(paths.Frames, clips)
	}
	if paths.Floor != "" {
		s.floorTask = lib.LoadImage(paths.Floor)
	}
	if paths.Background != "" {
		s.bgTask = lib.LoadImage(paths.Background)
	}
}

// Poll moves finished loads onto the GPU. Call it from the game loop.
func (s *Scene) Poll() {
	if frames, ok, err := s.framesTask.Take(); ok {
		if err != nil {
			log.Printf("assets: player frames: %v", err)
		}
		s.decoded = frames
		for a, imgs := range frames {
			out := make([]*ebiten.Image, len(imgs))
			for i, img := range imgs {
				if img != nil {
					out[i] = ebiten.NewImageFromImage(img)
				}
			}
			s.frames[a] = out
		}
		s.framesTask = nil
	}
	s.floorTex = takeImage(&s.floorTask, "floor texture", s.floorTex)
	s.background = takeImage(&s.bgTask, "background", s.background)
}

// Loading reports whether any texture is still decoding.
func (s *Scene) Loading() bool {
	return s.framesTask != nil || s.floorTask != nil || s.bgTask != nil
}

func takeImage(task **assets.Task[image.Image], what string, cur *ebiten.Image) *ebiten.Image {
	img, ok, err := (*task).Take()
	if !ok {
		return cur
	}
	*task = nil
	if err != nil {
		log.Printf("assets: %s: %v", what, err)
		return cur
	}
	return ebiten.NewImageFromImage(img)
}

func (s *Scene) Reset() {
	s.sprite = nil
	s.blocks = s.blocks[:0]
}

func (s *Scene) NewPlayerSprite() session.Sprite {
	s.sprite = &PlayerSprite{Width: s.style.PlayerWidth, Height: s.style.PlayerHeight}
	return s.sprite
}

func (s *Scene) NewBlock(seg floor.Segment) session.Block {
	b := NewBlock(seg, 0)
	s.blocks = append(s.blocks, b)
	return b
}

func (s *Scene) frameImage(f component.Frame) *ebiten.Image {
	imgs := s.frames[f.Action]
	if f.Index < 0 || f.Index >= len(imgs) {
		return nil
	}
	return imgs[f.Index]
}

// Draw renders background, floor and player, then the edit outline. With
// debug on the player's silhouette is outlined as well.
func (s *Scene) Draw(screen *ebiten.Image, f *floor.Floor, debug bool) {
	s.drawBackground(screen)
	for _, b := range s.blocks {
		b.Draw(screen, s.cam, s.floorTex, s.style.FloorPlaceholder)
	}
	if s.sprite != nil {
		s.sprite.Draw(screen, s.cam, s.frameImage(s.sprite.Frame), s.style.PlayerPlaceholder)
		if debug {
			s.drawSpriteOutline(screen)
		}
	}
	StrokeSegments(screen, s.cam, f, s.style.FloorOutline)
}

func (s *Scene) drawBackground(screen *ebiten.Image) {
	if s.background == nil {
		screen.Fill(s.style.Sky)
		return
	}
	b := s.background.Bounds()
	scale := s.cam.CoverScale(b.Dx(), b.Dy())
	vp := s.cam.Viewport()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((vp.Width-float64(b.Dx())*scale)/2, (vp.Height-float64(b.Dy())*scale)/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.background, op)
}

func (s *Scene) drawSpriteOutline(screen *ebiten.Image) {
	src := s.decoded.Frame(s.sprite.Frame)
	if src == nil {
		return
	}
	outline := s.outliner.Outline(src)
	x, y, w, h := s.cam.RectOnScreen(s.sprite.Center(), s.sprite.Width, s.sprite.Height)
	drawStretched(screen, outline, x, y, w, h, s.sprite.Frame.Facing == component.FacingLeft)
}

// Dispose releases every GPU texture.
func (s *Scene) Dispose() {
	s.outliner.Reset()
	for _, imgs := range s.frames {
		for _, img := range imgs {
			if img != nil {
				img.Deallocate()
			}
		}
	}
	s.frames = map[component.Action][]*ebiten.Image{}
	if s.floorTex != nil {
		s.floorTex.Deallocate()
		s.floorTex = nil
	}
	if s.background != nil {
		s.background.Deallocate()
		s.background = nil
	}
}
