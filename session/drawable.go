package session

import (
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/component"
	"github.com/milk9111/floorknight/floor"
)

// Scene creates the presentation handles the session writes to. Reset drops
// every handle created so far.
type Scene interface {
	Reset()
	NewPlayerSprite() Sprite
	NewBlock(seg floor.Segment) Block
}

type Sprite interface {
	SetPosition(p common.Vec3)
	SetFrame(f component.Frame)
}

type Block interface {
	SetPosition(p common.Vec3)
}

// Projector maps world positions to logical screen pixels.
type Projector interface {
	WorldToScreen(p common.Vec3) (x, y float64)
}
