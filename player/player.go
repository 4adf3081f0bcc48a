// Package player implements the player controller: movement intent, jump,
// attack and death, a point-mass physics step and clip/frame selection.
package player

import (
	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/component"
)

// Tuning holds every gameplay constant of the controller.
type Tuning struct {
	Gravity       float64 // units/s², negative is down
	BaseSpeed     float64 // units/s
	RunMultiplier float64
	JumpSpeed     float64 // units/s

	AnimationCadence float64 // seconds per locomotion frame
	AttackCadence    float64 // seconds per attack frame
	DeathCadence     float64 // seconds per death frame

	Spawn common.Vec3
	Clips component.ClipSet
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:          -20,
		BaseSpeed:        3,
		RunMultiplier:    1.3,
		JumpSpeed:        10,
		AnimationCadence: 0.1,
		AttackCadence:    0.05,
		DeathCadence:     0.15,
		Spawn:            common.Vec3{X: 0, Y: 2, Z: -5},
		Clips:            component.NewClipSet(),
	}
}

// Intent is the requested horizontal movement. Both flags may be set at once.
type Intent struct {
	Left  bool
	Right bool
}

// Player is owned by a single session and only mutated through its methods.
type Player struct {
	tuning Tuning

	position common.Vec3
	velocity common.Vec3

	facing       component.Facing
	attackFacing component.Facing
	intent       Intent
	runHeld      bool

	grounded bool
	airborne bool
	jumping  bool

	attacking      bool
	attackAirborne bool
	attackFrame    int

	currentFrame int
	timer        component.FrameTimer

	dead          bool
	deathFrame    int
	deathComplete bool

	state State
}

// New creates a player at t.Spawn, at rest, facing right and idle.
func New(t Tuning) *Player {
	return &Player{
		tuning:   t,
		position: t.Spawn,
		facing:   component.FacingRight,
		state:    StateIdle,
	}
}

// SetTuning swaps the constants of a live player. Spawn only matters on the next restart.
func (p *Player) SetTuning(t Tuning) {
	p.tuning = t
}

func (p *Player) Tuning() Tuning {
	return p.tuning
}

func (p *Player) SetPosition(pos common.Vec3) {
	p.position = pos
}

func (p *Player) Position() common.Vec3 { return p.position }
func (p *Player) Velocity() common.Vec3 { return p.velocity }
func (p *Player) Intent() Intent        { return p.intent }
func (p *Player) Grounded() bool        { return p.grounded }
func (p *Player) Airborne() bool        { return p.airborne }
func (p *Player) Jumping() bool         { return p.jumping }
func (p *Player) Attacking() bool       { return p.attacking }
func (p *Player) Dead() bool            { return p.dead }
func (p *Player) DeathComplete() bool   { return p.deathComplete }
func (p *Player) RunHeld() bool         { return p.runHeld }
func (p *Player) State() State          { return p.state }

// Facing is the last horizontal input direction.
func (p *Player) Facing() component.Facing { return p.facing }

// DisplayFacing is the direction the sprite is mirrored to: the attack
// direction while attacking, otherwise the last moved direction.
func (p *Player) DisplayFacing() component.Facing {
	if p.attacking {
		return p.attackFacing
	}
	return p.facing
}

// Frame returns the clip frame to display for the current state.
func (p *Player) Frame() component.Frame {
	clips := p.tuning.Clips
	action := p.state.Action()
	f := component.Frame{Action: action, Facing: p.DisplayFacing()}
	switch {
	case p.state == StateDead:
		f.Index = clips.Clamp(action, p.deathFrame)
	case p.state.IsAttack():
		f.Index = clips.Clamp(action, p.attackFrame)
	default:
		f.Index = p.currentFrame % clips.Len(action)
	}
	return f
}

// StartMoving sets the intent flag for dir. The other flag is left alone.
func (p *Player) StartMoving(dir component.Facing) {
	if p.dead {
		return
	}
	if dir == component.FacingLeft {
		p.intent.Left = true
	} else {
		p.intent.Right = true
	}
	p.facing = dir
	p.state = p.resolveState()
}

// StopMoving clears the intent flag for dir.
func (p *Player) StopMoving(dir component.Facing) {
	if dir == component.FacingLeft {
		p.intent.Left = false
	} else {
		p.intent.Right = false
	}
	p.state = p.resolveState()
}

// SetRunHeld records the run modifier.
func (p *Player) SetRunHeld(held bool) {
	p.runHeld = held
}

// Jump launches the player if grounded. It reports whether the jump happened.
func (p *Player) Jump() bool {
	if p.dead || !p.grounded {
		return false
	}
	p.velocity.Y = p.tuning.JumpSpeed
	p.grounded = false
	p.airborne = true
	p.jumping = true
	p.currentFrame = 0
	p.timer.Reset()
	p.state = p.resolveState()
	return true
}

// Attack starts an attack toward dir unless one is already running. Whether
// the attack is airborne is fixed here for its whole duration.
func (p *Player) Attack(dir component.Facing) bool {
	if p.dead || p.attacking {
		return false
	}
	p.attacking = true
	p.attackAirborne = p.airborne
	p.attackFacing = dir
	p.facing = dir
	p.attackFrame = 0
	p.timer.Reset()
	p.state = p.resolveState()
	return true
}

// Die starts the death sequence. A second call does nothing.
func (p *Player) Die() bool {
	if p.dead {
		return false
	}
	p.dead = true
	p.deathFrame = 0
	p.deathComplete = false
	p.velocity = common.Vec3{}
	p.timer.Reset()
	p.state = StateDead
	return true
}

func (p *Player) moveSpeed() float64 {
	if p.runHeld {
		return p.tuning.BaseSpeed * p.tuning.RunMultiplier
	}
	return p.tuning.BaseSpeed
}

// Update advances the controller by dt seconds. onFloor is the result of the
// floor collision query for the current position.
func (p *Player) Update(dt float64, onFloor bool) Events {
	if p.dead {
		return p.updateDeath(dt)
	}

	var ev Events
	p.airborne = p.jumping || !onFloor

	p.velocity.X = 0
	if !p.attacking || p.attackAirborne {
		speed := p.moveSpeed()
		if p.intent.Left {
			p.velocity.X -= speed
		}
		if p.intent.Right {
			p.velocity.X += speed
		}
	}
	if !p.attacking {
		switch {
		case p.intent.Left && !p.intent.Right:
			p.facing = component.FacingLeft
		case p.intent.Right && !p.intent.Left:
			p.facing = component.FacingRight
		}
	}

	if !onFloor {
		p.velocity.Y += p.tuning.Gravity * dt
		p.grounded = false
	} else if p.velocity.Y <= 0 {
		p.velocity.Y = 0
		if !p.grounded {
			ev |= EventLanded
		}
		p.grounded = true
		p.jumping = false
		p.airborne = false
	}

	p.position = p.position.Add(p.velocity.Scale(dt))

	p.state = p.resolveState()
	cadence := p.tuning.AnimationCadence
	if p.attacking {
		cadence = p.tuning.AttackCadence
	}
	if p.timer.Step(dt, cadence) {
		if p.attacking {
			p.attackFrame++
			if p.attackFrame >= p.tuning.Clips.Len(p.state.Action()) {
				p.attacking = false
				p.attackFrame = 0
				ev |= EventAttackEnded
			}
		} else {
			p.currentFrame, _ = p.tuning.Clips.Next(p.state.Action(), p.currentFrame)
		}
	}
	p.state = p.resolveState()
	return ev
}

func (p *Player) updateDeath(dt float64) Events {
	if p.deathComplete {
		return 0
	}
	if !p.timer.Step(dt, p.tuning.DeathCadence) {
		return 0
	}
	// a looping death clip still plays only once: wrapping counts as the end
	next, done := p.tuning.Clips.Next(component.ActionDead, p.deathFrame)
	if !done && next > p.deathFrame {
		p.deathFrame = next
		return 0
	}
	p.deathFrame = p.tuning.Clips.Len(component.ActionDead) - 1
	p.deathComplete = true
	return EventDeathComplete
}
