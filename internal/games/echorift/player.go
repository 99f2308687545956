package echorift

import (
	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// Player is Elae, the controlled runner. Y is the top edge of the hitbox.
type Player struct {
	X, Y          float64
	VY            float64
	Width, Height float64

	Jumping             bool
	Dashing             bool
	DashCooldownFrames  int
	DashRemainingFrames int
	SpeedX              float64

	ShieldActive          bool
	ShieldRemainingFrames int // 0 with an active shield means it lasts until consumed

	FocusActive          bool
	FocusRemainingFrames int
}

func newPlayer(cfg config.RiftConfig) Player {
	return Player{
		X:      cfg.Player.X,
		Y:      cfg.World.GroundY(),
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	}
}

// Box returns the player's hitbox.
func (p Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Grounded reports whether the player stands on the ground.
func (p Player) Grounded() bool {
	return !p.Jumping
}

// DashReady reports whether a dash could start this frame, ignoring the airborne rule.
func (p Player) DashReady() bool {
	return !p.Dashing && p.DashCooldownFrames == 0
}

// grantShield activates the shield for the given number of frames (0 = until consumed).
func (p *Player) grantShield(frames int) {
	p.ShieldActive = true
	p.ShieldRemainingFrames = frames
}

func (p *Player) dropShield() {
	p.ShieldActive = false
	p.ShieldRemainingFrames = 0
}
