// Package desktop runs EchoRift in an Ebitengine window.
// The world is drawn in its own coordinates; Ebitengine scales it to the window.
package desktop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/echorift/internal/core"
	"github.com/vovakirdan/echorift/internal/games/echorift"
	"github.com/vovakirdan/echorift/internal/storage"
)

// CueSink receives the events of every simulated frame.
type CueSink interface {
	Play(events []core.Event)
}

// Options wires the optional collaborators of a desktop session.
type Options struct {
	Store     *storage.Store
	Cues      CueSink
	SessionID string
	Logger    *log.Logger
	Scale     int  // Window size multiplier, at least 1
	FixedSeed bool // Restarts replay the same seed
}

// Game implements ebiten.Game around an EchoRift game.
type Game struct {
	game     *echorift.Game
	runtime  core.RuntimeConfig
	opts     Options
	recorder *storage.Recorder
	state    core.GameState
	input    func() InputState
}

// New creates a desktop game and resets it.
func New(game *echorift.Game, runtime core.RuntimeConfig, opts Options) *Game {
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	g := &Game{
		game:     game,
		runtime:  runtime,
		opts:     opts,
		recorder: storage.NewRecorder(opts.Store, opts.SessionID),
		input:    readInput,
	}
	g.game.Reset(runtime)
	if err := g.game.Err(); err != nil {
		opts.Logger.Warn("using default configuration", "error", err)
	}
	g.state = g.game.State()
	return g
}

// Update advances the simulation by one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	in := g.input()
	if in.Quit {
		return ebiten.Termination
	}

	if in.Restart && g.state.GameOver {
		g.restart()
		return nil
	}

	res := g.game.Step(in.Frame())
	g.state = res.State

	if g.opts.Cues != nil && len(res.Events) > 0 {
		g.opts.Cues.Play(res.Events)
	}

	run, err := g.recorder.Observe(g.game.ID(), g.state)
	switch {
	case err != nil:
		g.opts.Logger.Warn("could not save run", "game", g.game.ID(), "error", err)
	case run != nil:
		g.opts.Logger.Info("run saved", "game", run.Variant, "score", run.Score, "shards", run.Shards, "stage", run.Stage)
	}
	return nil
}

func (g *Game) restart() {
	if !g.opts.FixedSeed {
		g.runtime.Seed = time.Now().UnixNano()
	}
	g.game.Reset(g.runtime)
	g.state = g.game.State()
	g.recorder.Rearm()
}

// Layout returns the world dimensions as the logical screen.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.worldSize()
}

func (g *Game) worldSize() (int, int) {
	w := g.game.World().Config().World
	return int(w.Width), int(w.Height)
}

// State returns the game state after the last update.
func (g *Game) State() core.GameState {
	return g.state
}

// Run opens the window and blocks until it is closed.
func Run(game *echorift.Game, runtime core.RuntimeConfig, opts Options) error {
	g := New(game, runtime, opts)

	w, h := g.worldSize()
	ebiten.SetWindowSize(w*g.opts.Scale, h*g.opts.Scale)
	ebiten.SetWindowTitle(game.Title())
	tps := runtime.TickRate
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
