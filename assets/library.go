// Package assets decodes textures from the asset directory off the game
// goroutine.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/floorknight/component"
)

const characterDir = "character"

// Library reads assets from a filesystem rooted at the asset directory.
type Library struct {
	fsys fs.FS
}

func NewLibrary(dir string) *Library {
	return &Library{fsys: os.DirFS(dir)}
}

func NewLibraryFS(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// DecodeImage reads and decodes one image by asset-relative path.
func (l *Library) DecodeImage(name string) (image.Image, error) {
	clean := cleanAssetPath(name)
	f, err := l.fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", clean, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", clean, err)
	}
	return img, nil
}

// LoadImage decodes name on a background goroutine.
func (l *Library) LoadImage(name string) *Task[image.Image] {
	return Go(func() (image.Image, error) {
		return l.DecodeImage(name)
	})
}

// Frames holds the decoded frames of every clip. A nil entry is a frame that
// failed to load.
type Frames map[component.Action][]image.Image

// Frame returns the decoded image for f, or nil.
func (fr Frames) Frame(f component.Frame) image.Image {
	imgs := fr[f.Action]
	if f.Index < 0 || f.Index >= len(imgs) {
		return nil
	}
	return imgs[f.Index]
}

// FramePath is the asset path of frame index (zero based) for a clip whose
// files are named "<pattern> (<n>).png".
func FramePath(pattern string, index int) string {
	return path.Join(characterDir, fmt.Sprintf("%s (%d).png", pattern, index+1))
}

// LoadFrames decodes every frame of every clip on a background goroutine.
// Missing frames do not stop the load; their errors are joined into the
// task error while the frames that did decode are still returned.
func (l *Library) LoadFrames(patterns map[component.Action]string, clips component.ClipSet) *Task[Frames] {
	return Go(func() (Frames, error) {
		out := make(Frames, len(patterns))
		var errs []error
		for _, a := range component.Actions() {
			pattern, ok := patterns[a]
			if !ok {
				continue
			}
			imgs := make([]image.Image, clips.Len(a))
			for i := range imgs {
				img, err := l.DecodeImage(FramePath(pattern, i))
				if err != nil {
					errs = append(errs, err)
					continue
				}
				imgs[i] = img
			}
			out[a] = imgs
		}
		return out, errors.Join(errs...)
	})
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "/")
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return s
}
