package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/milk9111/floorknight/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, c)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func waitDone[T any](t *testing.T, task *Task[T]) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !task.Done() {
		if time.Now().After(deadline) {
			t.Fatal("task never finished")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDecodeImage(t *testing.T) {
	fsys := fstest.MapFS{
		"floor/stone.png": {Data: pngBytes(t, color.White)},
		"broken.png":      {Data: []byte("not a png")},
	}
	lib := NewLibraryFS(fsys)

	for _, name := range []string{"floor/stone.png", "assets/floor/stone.png", "/assets/floor/stone.png"} {
		img, err := lib.DecodeImage(name)
		require.NoError(t, err, name)
		assert.Equal(t, 2, img.Bounds().Dx())
	}

	_, err := lib.DecodeImage("missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = lib.DecodeImage("broken.png")
	assert.Error(t, err)
}

func TestLoadImageAsync(t *testing.T) {
	lib := NewLibraryFS(fstest.MapFS{"bg.png": {Data: pngBytes(t, color.Black)}})
	task := lib.LoadImage("bg.png")
	waitDone(t, task)

	img, ok, err := task.Take()
	require.True(t, ok)
	require.NoError(t, err)
	assert.NotNil(t, img)

	_, ok, _ = task.Take()
	assert.False(t, ok, "result is handed out once")
}

func TestLoadFramesPartial(t *testing.T) {
	fsys := fstest.MapFS{}
	clips := component.NewClipSet().With(component.ActionIdle, component.Clip{FrameCount: 3, Loop: true})
	for i := 0; i < 3; i++ {
		fsys[FramePath("Idle", i)] = &fstest.MapFile{Data: pngBytes(t, color.White)}
	}
	// walk is missing its second frame
	fsys[FramePath("Walk", 0)] = &fstest.MapFile{Data: pngBytes(t, color.White)}

	lib := NewLibraryFS(fsys)
	task := lib.LoadFrames(map[component.Action]string{
		component.ActionIdle: "Idle",
		component.ActionWalk: "Walk",
	}, clips)
	waitDone(t, task)

	frames, err := task.Result()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.Len(t, frames[component.ActionIdle], 3)
	for _, img := range frames[component.ActionIdle] {
		assert.NotNil(t, img)
	}
	walk := frames[component.ActionWalk]
	require.Len(t, walk, component.DefaultClipLength)
	assert.NotNil(t, walk[0])
	assert.Nil(t, walk[1])

	assert.NotNil(t, frames.Frame(component.Frame{Action: component.ActionIdle, Index: 2}))
	assert.Nil(t, frames.Frame(component.Frame{Action: component.ActionIdle, Index: 3}))
	assert.Nil(t, frames.Frame(component.Frame{Action: component.ActionDead}))
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, "character/Idle (1).png", FramePath("Idle", 0))
	assert.Equal(t, "character/JumpAttack (10).png", FramePath("JumpAttack", 9))
}

func TestTaskError(t *testing.T) {
	boom := errors.New("boom")
	task := Go(func() (int, error) { return 0, boom })
	_, err := task.Result()
	assert.ErrorIs(t, err, boom)
	assert.True(t, task.Done())

	var nilTask *Task[int]
	assert.False(t, nilTask.Done())
}
