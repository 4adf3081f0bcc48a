package prefabs

import (
	"fmt"
	"sort"

	"github.com/milk9111/floorknight/component"
)

// AnimationDefSpec overrides one clip. Loop is a pointer so that an omitted
// key keeps the default looping behaviour of the action.
type AnimationDefSpec struct {
	FrameCount int    `yaml:"frame_count"`
	Loop       *bool  `yaml:"loop"`
	Files      string `yaml:"files"`
}

// BuildClipSet applies defs on top of the default clip set. Keys are action
// names ("idle", "jump_attack", ...); an unknown key is an error.
func BuildClipSet(defs map[string]AnimationDefSpec) (component.ClipSet, error) {
	clips := component.NewClipSet()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := component.ParseAction(name)
		if !ok {
			return component.ClipSet{}, fmt.Errorf("unknown animation %q", name)
		}
		def := defs[name]
		clip := clips.Clip(action)
		if def.FrameCount != 0 {
			if def.FrameCount < 0 {
				return component.ClipSet{}, fmt.Errorf("animation %q: negative frame count %d", name, def.FrameCount)
			}
			clip.FrameCount = def.FrameCount
		}
		if def.Loop != nil {
			clip.Loop = *def.Loop
		}
		clips = clips.With(action, clip)
	}
	return clips, nil
}

// FramePatterns maps each action to the file name prefix its frames use on
// disk, e.g. "Idle" for "Idle (1).png". Actions without an override use
// DefaultFramePattern.
func (s *PlayerSpec) FramePatterns() map[component.Action]string {
	out := make(map[component.Action]string, len(component.Actions()))
	for _, a := range component.Actions() {
		out[a] = DefaultFramePattern(a)
	}
	for name, def := range s.Animation {
		if a, ok := component.ParseAction(name); ok && def.Files != "" {
			out[a] = def.Files
		}
	}
	return out
}

func DefaultFramePattern(a component.Action) string {
	switch a {
	case component.ActionWalk:
		return "Walk"
	case component.ActionRun:
		return "Run"
	case component.ActionJump:
		return "Jump"
	case component.ActionAttack:
		return "Attack"
	case component.ActionJumpAttack:
		return "JumpAttack"
	case component.ActionDead:
		return "Dead"
	}
	return "Idle"
}
