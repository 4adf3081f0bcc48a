package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/floor"
	"github.com/milk9111/floorknight/player"
)

const debugPointRadius = 0.15

// CollisionDebug mirrors the floor and the player's collision point into a
// chipmunk space so they can be drawn with cp.DrawSpace. The space is only
// used for drawing; collision is answered by the floor itself.
type CollisionDebug struct {
	space      *cp.Space
	playerBody *cp.Body
	floor      *floor.Floor
	offset     cp.Vector
}

func NewCollisionDebug() *CollisionDebug {
	return &CollisionDebug{}
}

// Sync rebuilds the floor shapes when the floor was replaced or moved and
// places the player point.
func (d *CollisionDebug) Sync(f *floor.Floor, p *player.Player) {
	if f == nil || p == nil {
		return
	}
	if d.space == nil || d.floor != f || d.offset != f.Offset() {
		d.space = cp.NewSpace()
		for _, seg := range f.Segments() {
			d.space.AddShape(cp.NewBox2(d.space.StaticBody, seg.Bounds(), 0))
		}
		d.playerBody = d.space.AddBody(cp.NewKinematicBody())
		shape := d.space.AddShape(cp.NewCircle(d.playerBody, debugPointRadius, cp.Vector{}))
		shape.SetSensor(true)
		d.floor = f
		d.offset = f.Offset()
	}
	d.playerBody.SetPosition(p.Position().XY())
	d.playerBody.SetVelocityVector(p.Velocity().XY())
}

// Draw renders the space and the player's velocity.
func (d *CollisionDebug) Draw(screen *ebiten.Image, cam *Camera) {
	if d == nil || d.space == nil || screen == nil {
		return
	}
	drawer := &chipmunkDrawer{screen: screen, cam: cam, z: d.floor.Z()}
	cp.DrawSpace(d.space, drawer)

	pos := d.playerBody.Position()
	vel := d.playerBody.Velocity()
	drawer.DrawSegment(pos, pos.Add(vel.Mult(0.25)), drawer.CollisionPointColor(), nil)
}

type chipmunkDrawer struct {
	screen *ebiten.Image
	cam    *Camera
	z      float64
}

func (d *chipmunkDrawer) project(v cp.Vector) (float32, float32) {
	x, y := d.cam.WorldToScreen(common.Vec3{X: v.X, Y: v.Y, Z: d.z})
	return float32(x), float32(y)
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := d.project(a)
	bx, by := d.project(b)
	vector.StrokeLine(d.screen, ax, ay, bx, by, 1, c, true)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	// angle indicator
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	d.line(a, b, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil || count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	x, y := d.project(pos)
	l := float32(size / 2)
	c := fcolorToRGBA(fill)
	vector.StrokeLine(d.screen, x-l, y, x+l, y, 1, c, true)
	vector.StrokeLine(d.screen, x, y-l, x, y+l, 1, c, true)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
