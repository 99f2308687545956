package echorift

// Snapshot is a read-only copy of the world for renderers and tests.
type Snapshot struct {
	Player    Player
	Obstacles []Obstacle
	Crystals  []Crystal

	Score     int
	Shards    int
	Frame     int
	Stage     int
	StageName string
	StageHex  string // Background color of the stage
	GameSpeed float64
	Running   bool
	Story     string // Last story fragment, empty until the first one

	// Ratios for HUD bars, 0..1
	DashCharge  float64
	FocusCharge float64
}

// Snapshot returns a copy of the current state. Mutating it does not affect the world.
func (w *World) Snapshot() Snapshot {
	st := w.cfg.Stages.List[w.stage]
	return Snapshot{
		Player:      w.player,
		Obstacles:   append([]Obstacle(nil), w.obstacles...),
		Crystals:    append([]Crystal(nil), w.crystals...),
		Score:       w.score,
		Shards:      w.shards,
		Frame:       w.frame,
		Stage:       w.stage,
		StageName:   st.Name,
		StageHex:    st.Color,
		GameSpeed:   w.gameSpeed,
		Running:     w.running,
		Story:       w.story,
		DashCharge:  w.dashCharge(),
		FocusCharge: w.focusCharge(),
	}
}

// dashCharge is 1 when a dash is available, falling to 0 right after one ends.
func (w *World) dashCharge() float64 {
	p := w.player
	if p.Dashing {
		return 0
	}
	if w.cfg.Dash.Cooldown == 0 {
		return 1
	}
	return 1 - float64(p.DashCooldownFrames)/float64(w.cfg.Dash.Cooldown)
}

func (w *World) focusCharge() float64 {
	if !w.player.FocusActive {
		return 0
	}
	return float64(w.player.FocusRemainingFrames) / float64(w.cfg.Focus.Duration)
}
