package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/echorift/internal/core"
)

// InputState holds the keys that matter for one frame
type InputState struct {
	Jump    bool
	Dash    bool
	Focus   bool
	Pause   bool
	Restart bool
	Quit    bool
}

// readInput polls the keyboard. Jump and dash are level-triggered so holding
// the key retriggers as soon as the simulation allows; the rest are edges.
func readInput() InputState {
	return InputState{
		Jump:    ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Dash:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Focus:   inpututil.IsKeyJustPressed(ebiten.KeyF),
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}

// Frame converts the key state to the actions a game step consumes.
func (in InputState) Frame() core.InputFrame {
	f := core.NewInputFrame()
	if in.Jump {
		f.Set(core.ActionJump)
	}
	if in.Dash {
		f.Set(core.ActionDash)
	}
	if in.Focus {
		f.Set(core.ActionFocus)
	}
	if in.Pause {
		f.Set(core.ActionPause)
	}
	return f
}
