package player

import (
	"strings"

	"github.com/milk9111/floorknight/component"
)

// State is the single active animation state. The order of the checks in
// resolveState is the display precedence.
type State int

const (
	StateIdle State = iota
	StateWalking
	StateRunning
	StateJumping
	StateAttacking
	StateJumpAttacking
	StateDead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateAttacking:
		return "attacking"
	case StateJumpAttacking:
		return "jump_attacking"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// Action is the clip shown for the state.
func (s State) Action() component.Action {
	switch s {
	case StateWalking:
		return component.ActionWalk
	case StateRunning:
		return component.ActionRun
	case StateJumping:
		return component.ActionJump
	case StateAttacking:
		return component.ActionAttack
	case StateJumpAttacking:
		return component.ActionJumpAttack
	case StateDead:
		return component.ActionDead
	}
	return component.ActionIdle
}

// IsAttack reports whether s is either attack sub-mode.
func (s State) IsAttack() bool {
	return s == StateAttacking || s == StateJumpAttacking
}

// resolveState applies the fixed precedence:
// dead > attack (air or ground) > jump > run/walk with intent > idle.
func (p *Player) resolveState() State {
	switch {
	case p.dead:
		return StateDead
	case p.attacking && p.attackAirborne:
		return StateJumpAttacking
	case p.attacking:
		return StateAttacking
	case p.jumping:
		return StateJumping
	case p.intent.Left || p.intent.Right:
		if p.runHeld {
			return StateRunning
		}
		return StateWalking
	}
	return StateIdle
}

// Events is a set of edge-triggered notifications returned by Update.
type Events uint8

const (
	EventLanded Events = 1 << iota
	EventAttackEnded
	EventDeathComplete
)

func (e Events) Has(flag Events) bool {
	return e&flag != 0
}

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	var parts []string
	if e.Has(EventLanded) {
		parts = append(parts, "landed")
	}
	if e.Has(EventAttackEnded) {
		parts = append(parts, "attack_ended")
	}
	if e.Has(EventDeathComplete) {
		parts = append(parts, "death_complete")
	}
	return strings.Join(parts, "|")
}
