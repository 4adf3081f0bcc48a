package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/floorknight/player"
)

// Input holds the polled state of keyboard, mouse and the first gamepad for
// one frame.
type Input struct {
	// Frame is the gameplay input for the session.
	Frame player.InputFrame

	// CursorX/CursorY are the pointer position in logical pixels.
	CursorX float64
	CursorY float64
	// MousePressed/MouseReleased are the left button edges; MouseHeld is its level.
	MousePressed  bool
	MouseHeld     bool
	MouseReleased bool

	PausePressed   bool
	RestartPressed bool
	EditToggled    bool
	CopyPressed    bool
	DebugToggled   bool
	QuitPressed    bool
	// GamepadAttack marks an attack that has no meaningful cursor; the
	// caller aims it along the player's facing.
	GamepadAttack bool

	prevLeft  bool
	prevRight bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls ebiten. Movement edges are derived from the combined held
// state so that holding both A and Left and releasing one does not stop.
func (i *Input) Update() {
	mx, my := ebiten.CursorPosition()
	i.CursorX = float64(mx)
	i.CursorY = float64(my)

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	run := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	var gpJump, gpAttack, gpPause bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			left = true
		} else if leftX > 0.3 {
			right = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			left = true
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			right = true
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpAttack = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		run = run || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	i.MousePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.MouseHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	i.MouseReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	i.Frame = player.InputFrame{
		LeftPressed:   left && !i.prevLeft,
		LeftReleased:  !left && i.prevLeft,
		RightPressed:  right && !i.prevRight,
		RightReleased: !right && i.prevRight,
		JumpPressed:   inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJump,
		RunHeld:       run,
		AttackPressed: i.MousePressed || gpAttack,
		CursorX:       i.CursorX,
		CursorY:       i.CursorY,
		DiePressed:    inpututil.IsKeyJustPressed(ebiten.KeyK),
	}
	i.GamepadAttack = gpAttack && !i.MousePressed
	i.prevLeft = left
	i.prevRight = right

	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.EditToggled = inpututil.IsKeyJustPressed(ebiten.KeyE)
	i.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.DebugToggled = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	i.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}

// Held reports the current movement levels.
func (i *Input) Held() (left, right bool) {
	return i.prevLeft, i.prevRight
}
