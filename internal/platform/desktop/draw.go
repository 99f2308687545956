package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/echorift/internal/games/echorift"
)

// Colors for rendering
var (
	colorFallbackBG = color.RGBA{11, 26, 51, 255}
	colorGround     = color.RGBA{155, 134, 189, 255}
	colorPlayer     = color.RGBA{245, 215, 110, 255}
	colorDash       = color.RGBA{255, 179, 71, 255}
	colorFocus      = color.RGBA{179, 136, 255, 255}
	colorShield     = color.RGBA{127, 219, 255, 200}
	colorObstacle   = color.RGBA{233, 79, 100, 255}
	colorCrystal    = color.RGBA{142, 246, 255, 255}
	colorBarBG      = color.RGBA{60, 60, 60, 255}
	colorOverlay    = color.RGBA{10, 10, 10, 160}
)

const (
	debugCharW = 6 // Width of a debug font glyph in pixels
	barW       = 80
	barH       = 6
)

// stageBackground parses a stage color, falling back to deep blue.
func stageBackground(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorFallbackBG
	}
	return c.Clamped()
}

func playerColor(p echorift.Player) color.Color {
	switch {
	case p.Dashing:
		return colorDash
	case p.FocusActive:
		return colorFocus
	default:
		return colorPlayer
	}
}

func hudLines(snap echorift.Snapshot) []string {
	return []string{
		fmt.Sprintf("Score: %d  Shards: %d  Rift: %s", snap.Score, snap.Shards, snap.StageName),
		fmt.Sprintf("Speed: %.1f", snap.GameSpeed),
	}
}

// Draw renders the world.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	world := g.game.World()
	if world == nil {
		return
	}
	snap := world.Snapshot()
	cfg := world.Config()
	w, h := float32(cfg.World.Width), float32(cfg.World.Height)

	screen.Fill(stageBackground(snap.StageHex))

	groundY := float32(cfg.World.GroundY() + cfg.Player.Height)
	vector.DrawFilledRect(screen, 0, groundY, w, h-groundY, colorGround, false)

	for _, o := range snap.Obstacles {
		vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.Width), float32(o.Height), colorObstacle, false)
	}
	for _, c := range snap.Crystals {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), colorCrystal, true)
	}

	p := snap.Player
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), playerColor(p), false)
	if p.ShieldActive {
		cx, cy := float32(p.X+p.Width/2), float32(p.Y+p.Height/2)
		r := float32(max(p.Width, p.Height)) * 0.75
		vector.StrokeCircle(screen, cx, cy, r, 2, colorShield, true)
	}

	g.drawHUD(screen, snap)

	if story := g.game.StoryText(); story != "" {
		drawCentered(screen, story, int(w), 72)
	}

	switch {
	case !snap.Running:
		g.drawOverlay(screen, "GAME OVER",
			fmt.Sprintf("Score: %d  Shards: %d  |  R to restart, Q to quit", snap.Score, snap.Shards))
	case g.state.Paused:
		g.drawOverlay(screen, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap echorift.Snapshot) {
	for i, line := range hudLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, 8, 6+i*16)
	}

	drawBar(screen, 8, 42, snap.DashCharge, colorDash)
	ebitenutil.DebugPrintAt(screen, "Dash", 8+barW+6, 36)
	drawBar(screen, 140, 42, snap.FocusCharge, colorFocus)
	ebitenutil.DebugPrintAt(screen, "Focus", 140+barW+6, 36)

	if snap.Player.ShieldActive {
		ebitenutil.DebugPrintAt(screen, "SHIELD", 272, 36)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, title, subtitle string) {
	w, h := g.worldSize()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), colorOverlay, false)
	drawCentered(screen, title, w, h/2-20)
	drawCentered(screen, subtitle, w, h/2)
}

func drawBar(screen *ebiten.Image, x, y float32, ratio float64, c color.Color) {
	ratio = min(max(ratio, 0), 1)
	vector.DrawFilledRect(screen, x, y, barW, barH, colorBarBG, false)
	vector.DrawFilledRect(screen, x, y, barW*float32(ratio), barH, c, false)
}

func drawCentered(screen *ebiten.Image, text string, width, y int) {
	x := max((width-len(text)*debugCharW)/2, 0)
	ebitenutil.DebugPrintAt(screen, text, x, y)
}
