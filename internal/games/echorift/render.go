package echorift

import (
	"fmt"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ShieldChar   = '▒'
	ObstacleChar = '▓'
	CrystalChar  = '◆'
	GroundChar   = '═'
)

// hudRows is the number of screen rows reserved above the playfield.
const hudRows = 2

// viewport maps world units onto screen cells below the HUD.
type viewport struct {
	world  config.RiftWorld
	width  int
	height int
}

func newViewport(w config.RiftWorld, screenW, screenH int) viewport {
	return viewport{world: w, width: screenW, height: max(screenH-hudRows, 1)}
}

func (v viewport) x(wx float64) int {
	return int(wx / v.world.Width * float64(v.width))
}

func (v viewport) y(wy float64) int {
	return hudRows + int(wy/v.world.Height*float64(v.height))
}

// rect converts a world box to a cell rectangle at least one cell in size.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.x(b.X), v.y(b.Y)
	x1, y1 := v.x(b.Right()), v.y(b.Bottom())
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	snap := g.world.Snapshot()
	cfg := g.world.cfg
	v := newViewport(cfg.World, dst.Width(), dst.Height())

	dst.SetBackground(snap.StageHex)

	groundRow := v.y(cfg.World.GroundY() + cfg.Player.Height)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGround)

	for _, o := range snap.Obstacles {
		dst.DrawRect(v.rect(o.Box()), ObstacleChar, core.ColorObstacle)
	}
	for _, c := range snap.Crystals {
		dst.SetColored(v.x(c.X), v.y(c.Y), CrystalChar, core.ColorCrystal)
	}

	g.drawPlayer(dst, v, snap.Player)
	g.drawHUD(dst, snap)

	if story := g.StoryText(); story != "" {
		dst.DrawTextCentered(hudRows+1, story, core.ColorStory)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if !snap.Running {
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Shards: %d  |  Press R to restart", snap.Score, snap.Shards))
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport, p Player) {
	r := v.rect(p.Box())
	color := core.ColorPlayer
	switch {
	case p.Dashing:
		color = core.ColorDash
	case p.FocusActive:
		color = core.ColorFocus
	}
	dst.DrawRect(r, PlayerChar, color)

	if p.ShieldActive {
		// Outline one cell around the body
		halo := core.NewRect(r.X-1, r.Y-1, r.W+2, r.H+2)
		for x := halo.X; x < halo.Right(); x++ {
			dst.SetColored(x, halo.Y, ShieldChar, core.ColorShield)
		}
		for y := halo.Y; y < halo.Bottom(); y++ {
			dst.SetColored(halo.X, y, ShieldChar, core.ColorShield)
			dst.SetColored(halo.Right()-1, y, ShieldChar, core.ColorShield)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0,
		fmt.Sprintf("Score: %d  Shards: %d  Rift: %s", snap.Score, snap.Shards, snap.StageName),
		core.ColorHUD)

	dst.DrawTextColored(1, 1, "Dash", core.ColorHUD)
	dst.DrawBar(6, 1, 10, snap.DashCharge, core.ColorDash)

	dst.DrawTextColored(18, 1, "Focus", core.ColorHUD)
	dst.DrawBar(24, 1, 10, snap.FocusCharge, core.ColorFocus)

	if snap.Player.ShieldActive {
		dst.DrawTextColored(36, 1, "SHIELD", core.ColorShield)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWarning)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorWarning)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorHUD)
}
