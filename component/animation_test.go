package component

import "testing"

func TestClipSetDefaults(t *testing.T) {
	cs := NewClipSet()
	for _, a := range Actions() {
		t.Run(a.String(), func(t *testing.T) {
			c := cs.Clip(a)
			if c.FrameCount != DefaultClipLength {
				t.Fatalf("expected %d frames, got %d", DefaultClipLength, c.FrameCount)
			}
			if want := a != ActionDead; c.Loop != want {
				t.Fatalf("loop: got %v want %v", c.Loop, want)
			}
		})
	}
}

func TestClipSetNext(t *testing.T) {
	cs := NewClipSet()
	cases := []struct {
		name     string
		action   Action
		index    int
		wantNext int
		wantDone bool
	}{
		{"walk_mid", ActionWalk, 3, 4, false},
		{"walk_wraps", ActionWalk, 9, 0, false},
		{"dead_mid", ActionDead, 7, 8, false},
		{"dead_reaches_last", ActionDead, 8, 9, false},
		{"dead_holds_last", ActionDead, 9, 9, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			next, done := cs.Next(c.action, c.index)
			if next != c.wantNext || done != c.wantDone {
				t.Fatalf("got (%d,%v) want (%d,%v)", next, done, c.wantNext, c.wantDone)
			}
		})
	}
}

func TestClipSetWith(t *testing.T) {
	base := NewClipSet()
	cs := base.With(ActionAttack, Clip{FrameCount: 4, Loop: true})
	if cs.Len(ActionAttack) != 4 {
		t.Fatalf("expected override to apply")
	}
	if base.Len(ActionAttack) != DefaultClipLength {
		t.Fatalf("With must not mutate the original set")
	}
	if cs.Clamp(ActionAttack, 10) != 3 || cs.Clamp(ActionAttack, -2) != 0 {
		t.Fatalf("clamp out of range")
	}
	if got := base.With(ActionIdle, Clip{}).Len(ActionIdle); got != 1 {
		t.Fatalf("zero frame count should be raised to 1, got %d", got)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Fatalf("parse %q: got %v ok=%v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("swim"); ok {
		t.Fatalf("unknown action should not parse")
	}
}

func TestFrameTimer(t *testing.T) {
	var ft FrameTimer
	if ft.Step(0.04, 0.1) {
		t.Fatalf("should not fire before cadence")
	}
	if ft.Step(0.04, 0.1) {
		t.Fatalf("should not fire before cadence")
	}
	if !ft.Step(0.04, 0.1) {
		t.Fatalf("should fire once cadence is reached")
	}
	if ft.Elapsed != 0 {
		t.Fatalf("firing should reset the accumulator, got %f", ft.Elapsed)
	}
	if !ft.Step(0.15, 0.15) {
		t.Fatalf("exact cadence should fire")
	}
}
