package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/echorift/internal/core"
)

// palette maps semantic slots to terminal colors.
var palette = map[core.Color]lipgloss.Color{
	core.ColorDefault:  lipgloss.Color("252"),
	core.ColorPlayer:   lipgloss.Color("#f5d76e"),
	core.ColorShield:   lipgloss.Color("#7fdbff"),
	core.ColorObstacle: lipgloss.Color("#e94f64"),
	core.ColorCrystal:  lipgloss.Color("#8ef6ff"),
	core.ColorGround:   lipgloss.Color("#9b86bd"),
	core.ColorHUD:      lipgloss.Color("#e0e0e0"),
	core.ColorDash:     lipgloss.Color("#ffb347"),
	core.ColorFocus:    lipgloss.Color("#b388ff"),
	core.ColorStory:    lipgloss.Color("#ffe4a1"),
	core.ColorWarning:  lipgloss.Color("#ff6b6b"),
	core.ColorDim:      lipgloss.Color("240"),
}

// styleSet holds one style per palette slot for a given background.
type styleSet map[core.Color]lipgloss.Style

func newStyleSet(background string) styleSet {
	set := make(styleSet, len(palette))
	bg, hasBG := parseBackground(background)
	for slot, fg := range palette {
		style := lipgloss.NewStyle().Foreground(fg)
		if hasBG {
			style = style.Background(lipgloss.Color(bg.Hex()))
		}
		set[slot] = style
	}
	if hasBG {
		// Empty bar cells read better as a lighter shade of the backdrop
		dim := bg.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.25).Clamped()
		set[core.ColorDim] = set[core.ColorDim].Foreground(lipgloss.Color(dim.Hex()))
	}
	return set
}

func parseBackground(hex string) (colorful.Color, bool) {
	if hex == "" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	styles := newStyleSet(s.Background())

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
