package main

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floorknight/obj"
	"github.com/milk9111/floorknight/session"
	"github.com/milk9111/floorknight/settings"
	"golang.design/x/clipboard"
)

// Editor turns mouse gestures into floor drags while edit mode is on.
type Editor struct {
	session *session.Session
	cam     *obj.Camera

	lastX, lastY float64
	clipboardOK  bool
}

func NewEditor(s *session.Session, cam *obj.Camera) *Editor {
	e := &Editor{session: s, cam: cam}
	if err := clipboard.Init(); err != nil {
		log.Printf("editor: clipboard unavailable: %v", err)
	} else {
		e.clipboardOK = true
	}
	return e
}

// Update handles one frame of pointer input. It reports whether the pointer
// was used by the editor, in which case it must not also attack.
func (e *Editor) Update(in *obj.Input) bool {
	if !e.session.Editing() {
		return false
	}
	if in.CopyPressed {
		e.Copy()
	}

	z := e.session.Floor().Z()
	switch {
	case in.MousePressed:
		w := e.cam.ScreenToWorld(in.CursorX, in.CursorY, z)
		if !e.session.BeginFloorDrag(w.Y) {
			return false
		}
		e.lastX, e.lastY = in.CursorX, in.CursorY
		return true
	case e.session.Dragging() && in.MouseHeld:
		dx, dy := e.cam.ScreenDeltaToWorld(in.CursorX-e.lastX, in.CursorY-e.lastY, z)
		if dx != 0 || dy != 0 {
			e.session.DragFloor(dx, dy)
		}
		e.lastX, e.lastY = in.CursorX, in.CursorY
		return true
	case e.session.Dragging():
		if err := e.session.EndFloorDrag(); err != nil {
			log.Printf("editor: %v", err)
		}
		return true
	}
	return false
}

// Copy puts the current floor offsets on the clipboard in the same shape the
// yaml settings file uses.
func (e *Editor) Copy() {
	text := OffsetsText(e.session.Floor().Offset())
	if !e.clipboardOK {
		log.Printf("editor: floor offsets\n%s", text)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("editor: copied floor offsets %v", e.session.Floor().Offset())
}

func OffsetsText(off cp.Vector) string {
	return fmt.Sprintf("%s: %.3f\n%s: %.3f\n", settings.KeyFloorPositionX, off.X, settings.KeyFloorPositionY, off.Y)
}
