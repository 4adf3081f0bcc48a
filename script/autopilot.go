// Package script drives the player from a tengo script instead of the
// keyboard, for attract mode and scripted playtests.
package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/floorknight/player"
)

const dispatchScript = `
think(__engine, __state)
`

// cursorReach is how far from the player, in screen pixels, a scripted
// attack places the virtual cursor.
const cursorReach = 64

// Observation is the read-only view of the world a script sees each tick.
type Observation struct {
	X, Y     float64
	ScreenX  float64
	ScreenY  float64
	Grounded bool
	Dead     bool
	State    string
}

// Autopilot runs the script's think(engine, state) once per tick and turns
// the calls it makes into an input frame.
type Autopilot struct {
	compiled *tengo.Compiled
	state    *tengo.Map
	elapsed  float64

	heldLeft  bool
	heldRight bool
	runHeld   bool
}

// New compiles src. The script must define a function named think.
func New(src []byte) (*Autopilot, error) {
	s := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Autopilot{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Elapsed is the script clock in seconds.
func (a *Autopilot) Elapsed() float64 {
	return a.elapsed
}

// Next advances the script clock by dt and runs one think call.
func (a *Autopilot) Next(dt float64, obs Observation) (player.InputFrame, error) {
	a.elapsed += dt
	in := player.InputFrame{}
	engine := a.engine(obs, &in)

	if err := a.compiled.Set("__engine", engine); err != nil {
		return player.InputFrame{}, err
	}
	if err := a.compiled.Set("__state", a.state); err != nil {
		return player.InputFrame{}, err
	}
	if err := a.compiled.Run(); err != nil {
		return player.InputFrame{}, fmt.Errorf("script: think: %w", err)
	}
	in.RunHeld = a.runHeld
	return in, nil
}

func (a *Autopilot) engine(obs Observation, in *player.InputFrame) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: a.elapsed}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: obs.X}, &tengo.Float{Value: obs.Y}}}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(obs.Grounded), nil
	}}

	values["dead"] = &tengo.UserFunction{Name: "dead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(obs.Dead), nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: obs.State}, nil
	}}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		switch objectAsString(args[0]) {
		case "left":
			if !a.heldLeft {
				a.heldLeft = true
				in.LeftPressed = true
			}
		case "right":
			if !a.heldRight {
				a.heldRight = true
				in.RightPressed = true
			}
		default:
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["release"] = &tengo.UserFunction{Name: "release", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		switch objectAsString(args[0]) {
		case "left":
			if a.heldLeft {
				a.heldLeft = false
				in.LeftReleased = true
			}
		case "right":
			if a.heldRight {
				a.heldRight = false
				in.RightReleased = true
			}
		default:
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["run"] = &tengo.UserFunction{Name: "run", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a.runHeld = len(args) > 0 && !args[0].IsFalsy()
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		in.JumpPressed = true
		return tengo.TrueValue, nil
	}}

	values["attack"] = &tengo.UserFunction{Name: "attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		dir := 1.0
		if len(args) > 0 && objectAsFloat(args[0]) < 0 {
			dir = -1
		}
		in.AttackPressed = true
		in.CursorX = obs.ScreenX + dir*cursorReach
		in.CursorY = obs.ScreenY
		return tengo.TrueValue, nil
	}}

	values["die"] = &tengo.UserFunction{Name: "die", Value: func(args ...tengo.Object) (tengo.Object, error) {
		in.DiePressed = true
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Int:
		return float64(v.Value)
	case *tengo.Float:
		return v.Value
	}
	return 0
}
