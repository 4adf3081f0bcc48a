package component

import "fmt"

// Action names one animated character action. Each action has a clip per facing.
type Action int

const (
	ActionIdle Action = iota
	ActionWalk
	ActionRun
	ActionJump
	ActionAttack
	ActionJumpAttack
	ActionDead
)

var actionNames = [...]string{
	ActionIdle:       "idle",
	ActionWalk:       "walk",
	ActionRun:        "run",
	ActionJump:       "jump",
	ActionAttack:     "attack",
	ActionJumpAttack: "jump_attack",
	ActionDead:       "dead",
}

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionIdle, ActionWalk, ActionRun, ActionJump, ActionAttack, ActionJumpAttack, ActionDead}
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return 0, false
}

// Facing is the horizontal direction a clip is drawn for.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Sign is -1 for left and +1 for right.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Frame identifies one displayable image: the clip (action and facing) and the
// index within it.
type Frame struct {
	Action Action
	Facing Facing
	Index  int
}

// DefaultClipLength is the number of frames in every shipped clip.
const DefaultClipLength = 10

// Clip describes an ordered frame sequence. Non-looping clips halt on the last frame.
type Clip struct {
	FrameCount int
	Loop       bool
}

// ClipSet holds the clip definition for every action. Left and right clips
// share a definition; only the drawn image is mirrored.
type ClipSet struct {
	clips map[Action]Clip
}

// NewClipSet builds a set where every action has a clip of DefaultClipLength
// frames. Death is the only non-looping clip.
func NewClipSet() ClipSet {
	cs := ClipSet{clips: make(map[Action]Clip, len(actionNames))}
	for _, a := range Actions() {
		cs.clips[a] = Clip{FrameCount: DefaultClipLength, Loop: a != ActionDead}
	}
	return cs
}

// With returns a copy of the set with a's clip replaced. Frame counts below 1 are raised to 1.
func (cs ClipSet) With(a Action, c Clip) ClipSet {
	if c.FrameCount < 1 {
		c.FrameCount = 1
	}
	out := ClipSet{clips: make(map[Action]Clip, len(cs.clips)+1)}
	for k, v := range cs.clips {
		out.clips[k] = v
	}
	out.clips[a] = c
	return out
}

// Clip returns the definition for a. Unknown actions get a single looping frame.
func (cs ClipSet) Clip(a Action) Clip {
	if c, ok := cs.clips[a]; ok {
		return c
	}
	return Clip{FrameCount: 1, Loop: true}
}

// Len is the frame count of a's clip.
func (cs ClipSet) Len(a Action) int {
	return cs.Clip(a).FrameCount
}

// Next advances index within a's clip. Looping clips wrap; others stay on the
// last frame. done reports that a non-looping clip is on (or past) its last frame.
func (cs ClipSet) Next(a Action, index int) (next int, done bool) {
	c := cs.Clip(a)
	next = index + 1
	if next >= c.FrameCount {
		if c.Loop {
			return 0, false
		}
		return c.FrameCount - 1, true
	}
	return next, false
}

// Clamp keeps index inside a's clip.
func (cs ClipSet) Clamp(a Action, index int) int {
	n := cs.Len(a)
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

// FrameTimer accumulates elapsed seconds and fires once each time the
// accumulated time reaches the cadence. Firing resets the accumulator to zero.
type FrameTimer struct {
	Elapsed float64
}

// Step adds dt and reports whether the cadence was reached.
func (t *FrameTimer) Step(dt, cadence float64) bool {
	t.Elapsed += dt
	if t.Elapsed >= cadence {
		t.Elapsed = 0
		return true
	}
	return false
}

// Reset sets the timer back to zero.
func (t *FrameTimer) Reset() {
	t.Elapsed = 0
}
