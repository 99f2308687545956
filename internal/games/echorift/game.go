package echorift

import (
	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
	"github.com/vovakirdan/echorift/internal/registry"
)

// storySeconds is how long a story fragment stays on screen.
const storySeconds = 4

// options set via CLI, shared by every variant
var options = Options{StartStage: -1}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	options.ConfigPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	options.Preset = config.ParsePreset(preset)
}

// SetStartStage sets the starting Rift stage (0-based). -1 uses the configured start.
func SetStartStage(stage int) {
	options.StartStage = stage
}

// CurrentOptions returns the options the next Reset will use.
func CurrentOptions() Options {
	return options
}

// Game adapts a World to the registry.Game interface.
type Game struct {
	variant  Variant
	world    *World
	runtime  core.RuntimeConfig
	paused   bool
	storyTTL int
	preset   config.DifficultyPreset // Overrides the shared preset when set
	err      error                   // Config problem that forced a fallback to defaults
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title
}

// Description returns the variant's one-line pitch for menus.
func (g *Game) Description() string {
	return g.variant.Blurb
}

// Variant returns the rule set this game runs.
func (g *Game) Variant() Variant {
	return g.variant
}

// SetPreset picks a difficulty for this game only, taking effect on the next Reset.
// Frontends serving several players at once use it instead of SetDifficultyPreset.
func (g *Game) SetPreset(preset config.DifficultyPreset) {
	g.preset = preset
}

// Reset initializes or restarts the game.
// A configuration that fails to load or validate falls back to the defaults; Err reports why.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.storyTTL = 0
	g.err = nil

	opts := options
	if g.preset != "" {
		opts.Preset = g.preset
	}

	cfg, err := BuildConfig(g.variant, opts)
	if err != nil {
		g.err = err
		cfg = config.DefaultRiftConfig()
		g.variant.Apply(&cfg)
	}

	w, err := NewWorld(cfg, runtime.Seed)
	if err != nil {
		g.err = err
		w, _ = NewWorld(config.DefaultRiftConfig(), runtime.Seed)
	}
	g.world = w
}

// Err returns the configuration error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// World exposes the simulation for frontends that draw in world coordinates.
func (g *Game) World() *World {
	return g.world
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || !g.world.Running() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// dt is always 1 here, so Advance cannot fail
	res, _ := g.world.Advance(Input{
		Jump:  in.Has(core.ActionJump),
		Dash:  in.Has(core.ActionDash),
		Focus: in.Has(core.ActionFocus),
	}, 1)

	if g.storyTTL > 0 {
		g.storyTTL--
	}
	if core.CountEvents(res.Events, core.EventStory) > 0 {
		g.storyTTL = storySeconds * max(g.runtime.TickRate, 1)
	}

	return core.StepResult{State: g.State(), Events: res.Events}
}

// StoryText returns the story fragment to display, or "" once it has faded.
func (g *Game) StoryText() string {
	if g.world == nil || g.storyTTL == 0 {
		return ""
	}
	return g.world.story
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:    g.world.score,
		Shards:   g.world.shards,
		Stage:    g.world.Stage().Name,
		Frames:   g.world.frame,
		GameOver: !g.world.running,
		Paused:   g.paused,
	}
}

// Register every variant with the registry
func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
