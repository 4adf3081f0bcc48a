// Package session owns one play-through: the floor, the player and the
// per-tick order in which input, collision and animation are applied.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/floor"
	"github.com/milk9111/floorknight/player"
	"github.com/milk9111/floorknight/settings"
)

// DefaultDragTolerance is how close, in world units, a press must be to the
// floor row to start dragging it.
const DefaultDragTolerance = 3

type Config struct {
	Viewport      common.Viewport
	Floor         floor.Config
	Tuning        player.Tuning
	DragTolerance float64
}

func DefaultConfig() Config {
	return Config{
		Viewport:      common.DefaultViewport(),
		Floor:         floor.DefaultConfig(),
		Tuning:        player.DefaultTuning(),
		DragTolerance: DefaultDragTolerance,
	}
}

type Session struct {
	id    uuid.UUID
	cfg   Config
	store settings.Store
	scene Scene
	proj  Projector

	floor  *floor.Floor
	player *player.Player
	sprite Sprite
	blocks []Block

	paused     bool
	over       bool
	editing    bool
	dragging   bool
	floorDirty bool
	ticks      uint64
}

// New builds the floor (placed from persisted offsets when present) and a
// player at the spawn point. A nil store keeps edits in memory only.
func New(cfg Config, store settings.Store, scene Scene, proj Projector) (*Session, error) {
	if scene == nil || proj == nil {
		return nil, errors.New("session: scene and projector are required")
	}
	if store == nil {
		store = settings.NewMemoryStore()
	}
	if cfg.DragTolerance <= 0 {
		cfg.DragTolerance = DefaultDragTolerance
	}
	s := &Session{cfg: cfg, store: store, scene: scene, proj: proj}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build() error {
	vw := s.cfg.Viewport.VisibleWidth(s.cfg.Floor.Z)
	vh := s.cfg.Viewport.VisibleHeight(s.cfg.Floor.Z)
	f, err := floor.New(s.cfg.Floor, vw, vh, s.persistedOffsets()...)
	if err != nil {
		return fmt.Errorf("session: build floor: %w", err)
	}
	f.SetOutline(s.editing)

	s.scene.Reset()
	s.id = uuid.New()
	s.floor = f
	s.player = player.New(s.cfg.Tuning)
	s.sprite = s.scene.NewPlayerSprite()
	s.blocks = s.blocks[:0]
	for _, seg := range f.Segments() {
		s.blocks = append(s.blocks, s.scene.NewBlock(seg))
	}
	s.paused = false
	s.over = false
	s.dragging = false
	s.ticks = 0
	s.floorDirty = true
	s.sync()

	log.Printf("session %s: started with %d floor segments at %v", s.id, f.Len(), f.Offset())
	return nil
}

func (s *Session) persistedOffsets() []floor.Option {
	var opts []floor.Option
	if x, ok, err := s.store.Get(settings.KeyFloorPositionX); err != nil {
		log.Printf("session: read %s: %v", settings.KeyFloorPositionX, err)
	} else if ok {
		opts = append(opts, floor.WithOffsetX(x))
	}
	if y, ok, err := s.store.Get(settings.KeyFloorPositionY); err != nil {
		log.Printf("session: read %s: %v", settings.KeyFloorPositionY, err)
	} else if ok {
		opts = append(opts, floor.WithOffsetY(y))
	}
	return opts
}

// Tick runs one frame: input, collision, player update, drawable writes.
// A paused session does nothing.
func (s *Session) Tick(dt float64, in player.InputFrame) player.Events {
	if s.paused {
		return 0
	}
	s.ticks++

	screenX, _ := s.proj.WorldToScreen(s.player.Position())
	s.player.Apply(in, screenX)

	pos := s.player.Position()
	onFloor := s.floor.CheckCollision(pos.XY(), s.player.Velocity().XY())
	ev := s.player.Update(dt, onFloor)
	s.sync()

	if ev.Has(player.EventDeathComplete) {
		s.paused = true
		s.over = true
		log.Printf("session %s: player died after %d ticks", s.id, s.ticks)
	}
	return ev
}

func (s *Session) sync() {
	s.sprite.SetPosition(s.player.Position())
	s.sprite.SetFrame(s.player.Frame())
	if !s.floorDirty {
		return
	}
	z := s.floor.Z()
	for i, seg := range s.floor.Segments() {
		s.blocks[i].SetPosition(common.Vec3{X: seg.Center.X, Y: seg.Center.Y, Z: z})
	}
	s.floorDirty = false
}

// Restart discards the floor and player and builds fresh ones. The new
// floor reads the persisted offsets again.
func (s *Session) Restart() error {
	prev := s.id
	if err := s.build(); err != nil {
		return err
	}
	log.Printf("session %s: restarted from %s", s.id, prev)
	return nil
}

// Kill asks the player to die.
func (s *Session) Kill() {
	s.player.Die()
}

// SetPaused toggles the manual pause. It has no effect once the game is over.
func (s *Session) SetPaused(p bool) {
	if s.over {
		return
	}
	s.paused = p
}

func (s *Session) Paused() bool { return s.paused }

// Over reports whether the death sequence has completed.
func (s *Session) Over() bool { return s.over }

func (s *Session) ID() string                { return s.id.String() }
func (s *Session) Player() *player.Player    { return s.player }
func (s *Session) Floor() *floor.Floor       { return s.floor }
func (s *Session) Config() Config            { return s.cfg }
func (s *Session) Editing() bool             { return s.editing }
func (s *Session) Dragging() bool            { return s.dragging }
func (s *Session) Ticks() uint64             { return s.ticks }
func (s *Session) Store() settings.Store     { return s.store }
func (s *Session) Viewport() common.Viewport { return s.cfg.Viewport }

// PlayerScreen is the player's projected position in logical pixels.
func (s *Session) PlayerScreen() (float64, float64) {
	return s.proj.WorldToScreen(s.player.Position())
}

// SetTuning replaces the controller constants for the live player and for
// every later restart.
func (s *Session) SetTuning(t player.Tuning) {
	s.cfg.Tuning = t
	s.player.SetTuning(t)
}

// SetFloorConfig takes effect on the next restart.
func (s *Session) SetFloorConfig(c floor.Config) {
	s.cfg.Floor = c
}

// SetEditMode shows or hides the floor outline. Leaving edit mode ends any
// drag in progress.
func (s *Session) SetEditMode(on bool) {
	if !on && s.dragging {
		if err := s.EndFloorDrag(); err != nil {
			log.Printf("session %s: %v", s.id, err)
		}
	}
	s.editing = on
	s.floor.SetOutline(on)
}

// BeginFloorDrag starts a drag if edit mode is on and worldY is close to the floor row.
func (s *Session) BeginFloorDrag(worldY float64) bool {
	if !s.editing || !s.floor.Near(worldY, s.cfg.DragTolerance) {
		return false
	}
	s.dragging = true
	return true
}

// DragFloor moves the whole floor by a world-space delta.
func (s *Session) DragFloor(dx, dy float64) {
	if !s.dragging {
		return
	}
	s.floor.Translate(dx, dy)
	s.floorDirty = true
	s.sync()
}

// EndFloorDrag finishes the drag and persists the floor offset.
func (s *Session) EndFloorDrag() error {
	if !s.dragging {
		return nil
	}
	s.dragging = false
	off := s.floor.Offset()
	if err := s.store.Set(settings.KeyFloorPositionX, off.X); err != nil {
		return fmt.Errorf("session: persist floor x: %w", err)
	}
	if err := s.store.Set(settings.KeyFloorPositionY, off.Y); err != nil {
		return fmt.Errorf("session: persist floor y: %w", err)
	}
	log.Printf("session %s: floor moved to %v", s.id, off)
	return nil
}
