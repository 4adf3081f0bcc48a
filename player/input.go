package player

import "github.com/milk9111/floorknight/component"

// InputFrame is the discrete input gathered for one tick. The session applies
// it to the player before the physics step; nothing writes player fields
// from outside a frame.
type InputFrame struct {
	LeftPressed   bool
	LeftReleased  bool
	RightPressed  bool
	RightReleased bool
	JumpPressed   bool
	// RunHeld is the current state of the run modifier, not an edge.
	RunHeld       bool
	AttackPressed bool
	// CursorX/CursorY are the pointer position in logical screen pixels at the
	// time of the attack click.
	CursorX    float64
	CursorY    float64
	DiePressed bool
}

// Merge combines two frames. Edges are OR'd; the cursor of the frame that
// carries an attack wins.
func (in InputFrame) Merge(o InputFrame) InputFrame {
	out := InputFrame{
		LeftPressed:   in.LeftPressed || o.LeftPressed,
		LeftReleased:  in.LeftReleased || o.LeftReleased,
		RightPressed:  in.RightPressed || o.RightPressed,
		RightReleased: in.RightReleased || o.RightReleased,
		JumpPressed:   in.JumpPressed || o.JumpPressed,
		RunHeld:       in.RunHeld || o.RunHeld,
		AttackPressed: in.AttackPressed || o.AttackPressed,
		CursorX:       in.CursorX,
		CursorY:       in.CursorY,
		DiePressed:    in.DiePressed || o.DiePressed,
	}
	if o.AttackPressed && !in.AttackPressed {
		out.CursorX, out.CursorY = o.CursorX, o.CursorY
	}
	return out
}

// AttackDirection picks the attack facing from the cursor position relative
// to the player's projected screen position.
func AttackDirection(cursorX, playerScreenX float64) component.Facing {
	if cursorX < playerScreenX {
		return component.FacingLeft
	}
	return component.FacingRight
}

// Apply feeds one input frame into the controller. Death is applied first so
// that anything else in the same frame is frozen out.
func (p *Player) Apply(in InputFrame, playerScreenX float64) {
	p.SetRunHeld(in.RunHeld)
	if in.DiePressed {
		p.Die()
	}
	if in.LeftReleased {
		p.StopMoving(component.FacingLeft)
	}
	if in.RightReleased {
		p.StopMoving(component.FacingRight)
	}
	if in.LeftPressed {
		p.StartMoving(component.FacingLeft)
	}
	if in.RightPressed {
		p.StartMoving(component.FacingRight)
	}
	if in.JumpPressed {
		p.Jump()
	}
	if in.AttackPressed {
		p.Attack(AttackDirection(in.CursorX, playerScreenX))
	}
}
