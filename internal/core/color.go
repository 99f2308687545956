package core

// Color is a semantic palette slot for a screen cell.
// The platform layer decides how each slot looks on the terminal.
type Color uint8

// Palette slots used by the renderer.
const (
	ColorDefault Color = iota
	ColorPlayer
	ColorShield
	ColorObstacle
	ColorCrystal
	ColorGround
	ColorHUD
	ColorDash
	ColorFocus
	ColorStory
	ColorWarning
	ColorDim
)

// String returns the palette slot name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorPlayer:
		return "player"
	case ColorShield:
		return "shield"
	case ColorObstacle:
		return "obstacle"
	case ColorCrystal:
		return "crystal"
	case ColorGround:
		return "ground"
	case ColorHUD:
		return "hud"
	case ColorDash:
		return "dash"
	case ColorFocus:
		return "focus"
	case ColorStory:
		return "story"
	case ColorWarning:
		return "warning"
	case ColorDim:
		return "dim"
	default:
		return "unknown"
	}
}
