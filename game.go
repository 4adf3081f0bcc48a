package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/floorknight/assets"
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/obj"
	"github.com/milk9111/floorknight/player"
	"github.com/milk9111/floorknight/prefabs"
	"github.com/milk9111/floorknight/script"
	"github.com/milk9111/floorknight/session"
	"github.com/milk9111/floorknight/settings"
)

const backgroundImage = "images/medieval-background.png"

// Options is everything main resolves from flags and specs before the
// window opens.
type Options struct {
	Game   *prefabs.GameSpec
	Player *prefabs.PlayerSpec
	Floor  *prefabs.FloorSpec
	Store  settings.Store

	AssetsDir string
	// Demo names a tengo script under prefabs/scripts that drives the player.
	Demo string
	// WatchDir enables hot reload of the prefabs found there.
	WatchDir string
	Debug    bool
}

type Game struct {
	frames int

	clock     *common.Clock
	input     *obj.Input
	cam       *obj.Camera
	scene     *obj.Scene
	session   *session.Session
	editor    *Editor
	collision *obj.CollisionDebug
	autopilot *script.Autopilot
	watcher   *prefabs.Watcher

	demo    string
	started bool
	debug   bool
	quit    bool
	resumed bool

	startUI *ebitenui.UI
	pauseUI *ebitenui.UI
	deathUI *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	tuning, err := opts.Player.Tuning()
	if err != nil {
		return nil, err
	}

	cfg := session.Config{
		Viewport:      opts.Game.ViewportConfig(),
		Floor:         opts.Floor.Config(),
		Tuning:        tuning,
		DragTolerance: opts.Floor.DragTolerance,
	}
	if cfg.DragTolerance <= 0 {
		cfg.DragTolerance = session.DefaultDragTolerance
	}

	cam := obj.NewCamera(cfg.Viewport)
	scene := obj.NewScene(cam, sceneStyle(opts.Player, opts.Floor))

	sess, err := session.New(cfg, opts.Store, scene, cam)
	if err != nil {
		return nil, err
	}

	assetsDir := opts.AssetsDir
	if assetsDir == "" {
		assetsDir = opts.Game.Assets
	}
	scene.Load(assets.NewLibrary(assetsDir), obj.AssetPaths{
		Frames:     opts.Player.FramePatterns(),
		Floor:      opts.Floor.Texture,
		Background: backgroundImage,
	}, tuning.Clips)

	g := &Game{
		clock:     common.NewClock(),
		input:     obj.NewInput(),
		cam:       cam,
		scene:     scene,
		session:   sess,
		editor:    NewEditor(sess, cam),
		collision: obj.NewCollisionDebug(),
		demo:      opts.Demo,
		debug:     opts.Debug || opts.Game.Debug,
	}

	if opts.Demo != "" {
		if err := g.loadAutopilot(); err != nil {
			return nil, err
		}
		// the demo plays without waiting for the start menu
		g.started = true
	}

	if opts.WatchDir != "" {
		dirs := []string{opts.WatchDir}
		if fi, err := os.Stat(filepath.Join(opts.WatchDir, "scripts")); err == nil && fi.IsDir() {
			dirs = append(dirs, filepath.Join(opts.WatchDir, "scripts"))
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.startUI = NewStartUI(g)
	g.pauseUI = NewPauseUI(g)
	g.deathUI = NewDeathUI(g)
	return g, nil
}

func sceneStyle(ps *prefabs.PlayerSpec, fs *prefabs.FloorSpec) obj.Style {
	style := obj.DefaultStyle()
	if ps.Sprite.Width > 0 {
		style.PlayerWidth = ps.Sprite.Width
	}
	if ps.Sprite.Height > 0 {
		style.PlayerHeight = ps.Sprite.Height
	}
	style.PlayerPlaceholder = ps.Sprite.Placeholder.ColorOr(style.PlayerPlaceholder)
	style.FloorPlaceholder = fs.Placeholder.ColorOr(style.FloorPlaceholder)
	style.FloorOutline = fs.OutlineColor.ColorOr(style.FloorOutline)
	return style
}

func (g *Game) loadAutopilot() error {
	src, err := prefabs.LoadScript(g.demo)
	if err != nil {
		return fmt.Errorf("demo %q: %w", g.demo, err)
	}
	ap, err := script.New(src)
	if err != nil {
		return fmt.Errorf("demo %q: %w", g.demo, err)
	}
	g.autopilot = ap
	return nil
}

func (g *Game) start() {
	g.started = true
	g.clock.Start()
}

func (g *Game) restart() {
	if err := g.session.Restart(); err != nil {
		log.Printf("restart: %v", err)
	}
	g.resumed = true
}

func (g *Game) setPaused(p bool) {
	if g.session.Paused() && !p {
		g.resumed = true
	}
	g.session.SetPaused(p)
}

// die kills the player from the pause menu and lets the death play out.
func (g *Game) die() {
	g.session.Kill()
	g.setPaused(false)
}

func (g *Game) requestQuit() {
	g.quit = true
}

func (g *Game) Update() error {
	g.frames++
	dt := g.clock.Delta()

	g.input.Update()
	g.scene.Poll()
	g.reload()

	if g.quit || g.input.QuitPressed {
		return ebiten.Termination
	}
	if g.input.DebugToggled {
		g.debug = !g.debug
	}

	if !g.started {
		g.startUI.Update()
		return nil
	}

	switch {
	case g.session.Over():
		if g.input.RestartPressed {
			g.restart()
		}
	case g.input.PausePressed:
		g.setPaused(!g.session.Paused())
	}
	if g.input.EditToggled {
		g.session.SetEditMode(!g.session.Editing())
	}

	pointerUsed := g.editor.Update(g.input)

	if !g.session.Paused() {
		g.session.Tick(dt, g.frame(dt, pointerUsed))
	}

	switch {
	case g.session.Over():
		g.deathUI.Update()
	case g.session.Paused():
		g.pauseUI.Update()
	}

	if g.debug {
		g.collision.Sync(g.session.Floor(), g.session.Player())
	}
	return nil
}

// frame assembles the input for this tick from the devices and, in demo
// mode, the autopilot.
func (g *Game) frame(dt float64, pointerUsed bool) player.InputFrame {
	in := g.input.Frame
	if pointerUsed && !g.input.GamepadAttack {
		in.AttackPressed = false
	}

	p := g.session.Player()
	if g.input.GamepadAttack {
		sx, _ := g.session.PlayerScreen()
		in.CursorX = sx + p.Facing().Sign()
	}

	if g.resumed && g.autopilot == nil {
		// edges that happened while the session was not ticking never
		// reached the player
		intent := p.Intent()
		left, right := g.input.Held()
		in.LeftPressed = in.LeftPressed || (left && !intent.Left)
		in.LeftReleased = in.LeftReleased || (!left && intent.Left)
		in.RightPressed = in.RightPressed || (right && !intent.Right)
		in.RightReleased = in.RightReleased || (!right && intent.Right)
	}
	g.resumed = false

	if g.autopilot != nil {
		sx, sy := g.session.PlayerScreen()
		pos := p.Position()
		scripted, err := g.autopilot.Next(dt, script.Observation{
			X:        pos.X,
			Y:        pos.Y,
			ScreenX:  sx,
			ScreenY:  sy,
			Grounded: p.Grounded(),
			Dead:     p.Dead(),
			State:    p.State().String(),
		})
		if err != nil {
			log.Printf("demo: %v; autopilot stopped", err)
			g.autopilot = nil
		} else {
			in = in.Merge(scripted)
		}
	}
	return in
}

// reload applies prefab files changed on disk.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.DrainErrors() {
		log.Printf("prefabs: watcher: %v", err)
	}
	for _, name := range g.watcher.Drain() {
		switch name {
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
				continue
			}
			t, err := spec.Tuning()
			if err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
				continue
			}
			g.session.SetTuning(t)
			log.Printf("prefabs: reloaded %s", name)
		case "floor.yaml":
			spec, err := prefabs.LoadFloorSpec()
			if err != nil {
				log.Printf("prefabs: reload %s: %v", name, err)
				continue
			}
			g.session.SetFloorConfig(spec.Config())
			log.Printf("prefabs: reloaded %s, applies on restart", name)
		default:
			if g.demo != "" && strings.TrimSuffix(name, ".tengo") == strings.TrimSuffix(filepath.Base(g.demo), ".tengo") {
				if err := g.loadAutopilot(); err != nil {
					log.Printf("prefabs: reload %s: %v", name, err)
					continue
				}
				log.Printf("prefabs: reloaded %s", name)
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen, g.session.Floor(), g.debug)

	if g.debug {
		g.collision.Draw(screen, g.cam)
		p := g.session.Player()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"Frames: %d    FPS: %.2f\nsession %s  tick %d\nstate %s  facing %s  frame %d\npos %v  vel %v\nfloor offset %v  editing %v",
			g.frames, ebiten.ActualFPS(), g.session.ID(), g.session.Ticks(),
			p.State(), p.Facing(), p.Frame().Index,
			p.Position().XY(), p.Velocity(),
			g.session.Floor().Offset(), g.session.Editing(),
		))
	} else if g.session.Editing() {
		ebitenutil.DebugPrint(screen, "EDIT: drag the floor, C copies offsets, E leaves")
	}
	if g.scene.Loading() {
		ebitenutil.DebugPrintAt(screen, "loading...", 8, common.BaseHeight-20)
	}

	switch {
	case !g.started:
		g.startUI.Draw(screen)
	case g.session.Over():
		g.deathUI.Draw(screen)
	case g.session.Paused():
		g.pauseUI.Draw(screen)
	}
}

// Close releases the watcher, GPU textures and the settings store.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
	g.scene.Dispose()
	if err := g.session.Store().Close(); err != nil {
		log.Printf("settings: close: %v", err)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
