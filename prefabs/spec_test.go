package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/floorknight/component"
	"github.com/milk9111/floorknight/floor"
	"github.com/milk9111/floorknight/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPlayerSpecMatchesDefaults(t *testing.T) {
	spec, err := LoadPlayerSpec()
	require.NoError(t, err)

	tun, err := spec.Tuning()
	require.NoError(t, err)

	def := player.DefaultTuning()
	assert.Equal(t, def.Gravity, tun.Gravity)
	assert.Equal(t, def.BaseSpeed, tun.BaseSpeed)
	assert.Equal(t, def.RunMultiplier, tun.RunMultiplier)
	assert.Equal(t, def.JumpSpeed, tun.JumpSpeed)
	assert.Equal(t, def.Spawn, tun.Spawn)
	for _, a := range component.Actions() {
		assert.Equal(t, def.Clips.Clip(a), tun.Clips.Clip(a), a.String())
	}
	assert.Equal(t, color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}, spec.Sprite.Placeholder.Color)
}

func TestEmbeddedFloorAndGameSpecs(t *testing.T) {
	fs, err := LoadFloorSpec()
	require.NoError(t, err)
	assert.Equal(t, floor.DefaultConfig(), fs.Config())
	assert.Equal(t, "floor/stone.png", fs.Texture)

	gs, err := LoadGameSpec()
	require.NoError(t, err)
	vp := gs.ViewportConfig()
	assert.Equal(t, 45.0, vp.FOV)
	assert.Equal(t, 20.0, vp.CameraZ)
	assert.Equal(t, "yaml", gs.Settings.Store)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := Dir()
	SetDir(dir)
	t.Cleanup(func() { SetDir(prev) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("name: fast\nbase_speed: 5\n"), 0o644))

	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	tun, err := spec.Tuning()
	require.NoError(t, err)
	assert.Equal(t, 5.0, tun.BaseSpeed)
	assert.Equal(t, -20.0, tun.Gravity, "unset fields keep defaults")

	_, ok := ModTime("player.yaml")
	assert.True(t, ok)
	_, ok = ModTime("floor.yaml")
	assert.False(t, ok)
}

func TestBuildClipSet(t *testing.T) {
	no := false
	clips, err := BuildClipSet(map[string]AnimationDefSpec{
		"walk":   {FrameCount: 8},
		"attack": {Loop: &no},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, clips.Len(component.ActionWalk))
	assert.False(t, clips.Clip(component.ActionAttack).Loop)
	assert.Equal(t, component.DefaultClipLength, clips.Len(component.ActionRun))

	_, err = BuildClipSet(map[string]AnimationDefSpec{"fly": {FrameCount: 3}})
	assert.Error(t, err)

	_, err = BuildClipSet(map[string]AnimationDefSpec{"idle": {FrameCount: -2}})
	assert.Error(t, err)
}

func TestFramePatterns(t *testing.T) {
	spec := &PlayerSpec{Animation: map[string]AnimationDefSpec{"jump_attack": {Files: "AirSlash"}}}
	p := spec.FramePatterns()
	assert.Equal(t, "AirSlash", p[component.ActionJumpAttack])
	assert.Equal(t, "Idle", p[component.ActionIdle])
	assert.Equal(t, "Dead", p[component.ActionDead])
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"\"#ffff00\"", color.NRGBA{R: 255, G: 255, A: 255}, false},
		{"\"4b362180\"", color.NRGBA{R: 0x4b, G: 0x36, B: 0x21, A: 0x80}, false},
		{"\"#fff\"", nil, true},
		{"[1, 2]", nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte("placeholder: "+c.in+"\n"), 0o644))
			spec, err := LoadSpecFile[FloorSpec](path)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, spec.Placeholder.Color)
		})
	}
	var unset *YAMLColor
	assert.Equal(t, color.White, unset.ColorOr(color.White))
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"demo", "demo.tengo", "scripts/demo.tengo", "prefabs/scripts/demo.tengo"} {
		b, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(b), "think")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "floor.yaml"), []byte("margin: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "floor.yaml", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherDrainErrors(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.DrainErrors())

	first := errors.New("first")
	second := errors.New("second")
	w.Errors <- first
	w.Errors <- second

	got := w.DrainErrors()
	require.Len(t, got, 2)
	assert.ErrorIs(t, got[0], first)
	assert.ErrorIs(t, got[1], second)
	assert.Empty(t, w.DrainErrors())
}
