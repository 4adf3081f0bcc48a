// Command clips previews the player's animation clips as described by
// prefabs/player.yaml, at the cadence the game plays them.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/floorknight/assets"
	"github.com/milk9111/floorknight/component"
	"github.com/milk9111/floorknight/player"
	"github.com/milk9111/floorknight/prefabs"
)

const size = 512

type previewGame struct {
	tuning  player.Tuning
	frames  map[component.Action][]*ebiten.Image
	task    *assets.Task[assets.Frames]
	actions []component.Action

	current int
	index   int
	facing  component.Facing
	timer   component.FrameTimer
}

func (g *previewGame) action() component.Action {
	return g.actions[g.current]
}

func (g *previewGame) cadence() float64 {
	switch g.action() {
	case component.ActionAttack, component.ActionJumpAttack:
		return g.tuning.AttackCadence
	case component.ActionDead:
		return g.tuning.DeathCadence
	}
	return g.tuning.AnimationCadence
}

func (g *previewGame) Update() error {
	if frames, ok, err := g.task.Take(); ok {
		if err != nil {
			log.Printf("clips: %v", err)
		}
		for a, imgs := range frames {
			out := make([]*ebiten.Image, len(imgs))
			for i, img := range imgs {
				if img != nil {
					out[i] = ebiten.NewImageFromImage(img)
				}
			}
			g.frames[a] = out
		}
		g.task = nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.current = (g.current + 1) % len(g.actions)
		g.index = 0
		g.timer.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.current = (g.current + len(g.actions) - 1) % len(g.actions)
		g.index = 0
		g.timer.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if g.facing == component.FacingLeft {
			g.facing = component.FacingRight
		} else {
			g.facing = component.FacingLeft
		}
	}

	if g.timer.Step(1.0/float64(ebiten.TPS()), g.cadence()) {
		g.index, _ = g.tuning.Clips.Next(g.action(), g.index)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  facing %s\nLeft/Right: clip  F: flip",
		g.action(), g.index+1, g.tuning.Clips.Len(g.action()), g.facing))

	imgs := g.frames[g.action()]
	if g.index >= len(imgs) || imgs[g.index] == nil {
		return
	}
	img := imgs[g.index]
	fw := float64(img.Bounds().Dx())
	fh := float64(img.Bounds().Dy())
	op := &ebiten.DrawImageOptions{}
	if g.facing == component.FacingLeft {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(fw, 0)
	}
	op.GeoM.Translate((size-fw)/2, (size-fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return size, size
}

func main() {
	assetsDir := flag.String("assets", "assets", "asset directory")
	prefabsDir := flag.String("prefabs", "", "prefabs directory (defaults to the embedded ones)")
	flag.Parse()

	if *prefabsDir != "" {
		prefabs.SetDir(*prefabsDir)
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	tuning, err := spec.Tuning()
	if err != nil {
		log.Fatal(err)
	}

	g := &previewGame{
		tuning:  tuning,
		frames:  map[component.Action][]*ebiten.Image{},
		task:    assets.NewLibrary(*assetsDir).LoadFrames(spec.FramePatterns(), tuning.Clips),
		actions: component.Actions(),
		facing:  component.FacingRight,
	}
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle("floorknight clips")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
