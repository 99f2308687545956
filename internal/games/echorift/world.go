// Package echorift implements the EchoRift runner: a deterministic frame-update
// loop (World) and the registry adapter that drives it from the platform layer.
//
// The World owns every piece of simulation state. Frontends read it through
// Snapshot and react to the event stream returned by Advance.
package echorift

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// ErrNegativeStep is returned by Advance for a negative frame count.
var ErrNegativeStep = errors.New("echorift: negative step")

// Input is the set of logical actions active for a frame.
// Focus is edge-triggered: the caller sets it only on the frame the key went down.
type Input struct {
	Jump  bool
	Dash  bool
	Focus bool
}

// Result is what Advance reports back to the scheduler.
type Result struct {
	Continue bool
	Events   []core.Event
}

// World is the simulation context.
type World struct {
	cfg   config.RiftConfig
	seed  int64
	rng   *rand.Rand
	speed *config.DifficultyManager

	player    Player
	obstacles []Obstacle
	crystals  []Crystal

	score     int
	shards    int
	frame     int
	stage     int
	gameSpeed float64
	running   bool
	story     string

	events []core.Event
}

// NewWorld validates cfg and returns a world ready to run.
func NewWorld(cfg config.RiftConfig, seed int64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("echorift: %w", err)
	}
	w := &World{
		cfg:   cfg.Clone(),
		seed:  seed,
		speed: config.NewDifficultyManager(cfg.Physics),
	}
	w.Reset()
	return w, nil
}

// Reset reinitialises all owned state. The RNG restarts from the seed,
// so a reset run replays identically for identical input.
func (w *World) Reset() {
	w.rng = rand.New(rand.NewSource(w.seed))
	w.player = newPlayer(w.cfg)
	w.obstacles = w.obstacles[:0]
	w.crystals = w.crystals[:0]
	w.score = 0
	w.shards = 0
	w.frame = 0
	w.stage = w.cfg.Stages.Start
	w.running = true
	w.story = ""
	w.events = nil
	w.gameSpeed = w.deriveSpeed()
}

// Reseed changes the seed and resets the world.
func (w *World) Reseed(seed int64) {
	w.seed = seed
	w.Reset()
}

// Config returns a copy of the world's configuration.
func (w *World) Config() config.RiftConfig {
	return w.cfg.Clone()
}

// Running reports whether the run is still in progress.
func (w *World) Running() bool {
	return w.running
}

// Advance runs dt frames. Focus is applied on the first frame only.
// Once the run is over Advance returns Continue=false and leaves the world untouched.
func (w *World) Advance(in Input, dt int) (Result, error) {
	if dt < 0 {
		return Result{Continue: w.running}, fmt.Errorf("%w: dt=%d", ErrNegativeStep, dt)
	}
	if !w.running {
		return Result{}, nil
	}

	for i := 0; i < dt && w.running; i++ {
		frameIn := in
		if i > 0 {
			frameIn.Focus = false
		}
		w.step(frameIn)
	}

	events := w.events
	w.events = nil
	return Result{Continue: w.running, Events: events}, nil
}

func (w *World) step(in Input) {
	cfg := &w.cfg
	p := &w.player

	w.frame++
	w.gameSpeed = w.deriveSpeed()

	w.resolveDash(in.Dash)

	if in.Jump && p.Grounded() && !(cfg.Jump.BlockWhileDashing && p.Dashing) {
		p.VY = cfg.Jump.Velocity
		p.Jumping = true
	}

	w.tickTimers(in.Focus)

	// Explicit Euler, one gravity accumulator
	ground := cfg.World.GroundY()
	p.VY += cfg.Physics.Gravity
	p.Y += p.VY
	if p.Y >= ground {
		p.Y = ground
		p.VY = 0
		p.Jumping = false
	}

	p.X = core.ClampF(p.X+p.SpeedX, 0, cfg.World.Width-p.Width)

	w.spawn()

	if !w.updateObstacles() {
		return
	}
	w.updateCrystals()
}

func (w *World) resolveDash(pressed bool) {
	cfg := w.cfg.Dash
	p := &w.player

	if p.DashRemainingFrames > 0 {
		p.DashRemainingFrames--
		p.SpeedX = cfg.Impulse
		if p.DashRemainingFrames == 0 {
			p.Dashing = false
			p.DashCooldownFrames = cfg.Cooldown
		}
	} else {
		p.SpeedX = 0
		if p.DashCooldownFrames > 0 {
			p.DashCooldownFrames--
		}
	}

	if pressed && p.DashReady() && (cfg.AllowAirborne || p.Grounded()) {
		p.Dashing = true
		p.DashRemainingFrames = cfg.Duration
		w.emit(core.EventDashStarted, "")
	}
}

func (w *World) tickTimers(focusPressed bool) {
	p := &w.player

	if p.FocusActive {
		p.FocusRemainingFrames--
		if p.FocusRemainingFrames <= 0 {
			p.FocusActive = false
			p.FocusRemainingFrames = 0
			w.emit(core.EventFocusEnded, "")
		}
	} else if focusPressed {
		p.FocusActive = true
		p.FocusRemainingFrames = w.cfg.Focus.Duration
		w.emit(core.EventFocusStarted, "")
	}

	if p.ShieldActive && p.ShieldRemainingFrames > 0 {
		p.ShieldRemainingFrames--
		if p.ShieldRemainingFrames == 0 {
			p.dropShield()
			w.emit(core.EventShieldExpired, "")
		}
	}
}

// deriveSpeed returns the score ramp scaled by the stage multiplier.
func (w *World) deriveSpeed() float64 {
	return w.speed.Speed(w.score) * w.cfg.Stages.List[w.stage].SpeedMultiplier
}

// focusFactor is the slow-down applied to scrolling and spawn cadence.
func (w *World) focusFactor() float64 {
	if w.player.FocusActive {
		return w.cfg.Focus.SlowFactor
	}
	return 1
}

// spawnInterval is floor(base / multiplier / focus), never below one frame.
func (w *World) spawnInterval(base int) int {
	mult := w.cfg.Stages.List[w.stage].SpeedMultiplier
	return max(1, int(math.Floor(float64(base)/mult/w.focusFactor())))
}

func (w *World) spawn() {
	cfg := &w.cfg
	ground := cfg.World.GroundY()

	if w.frame%w.spawnInterval(cfg.Obstacles.Interval) == 0 {
		w.obstacles = append(w.obstacles, Obstacle{
			X:      cfg.World.Width,
			Y:      ground + cfg.Obstacles.OffsetY,
			Width:  cfg.Obstacles.Width,
			Height: cfg.Obstacles.Height,
		})
	}
	if w.frame%w.spawnInterval(cfg.Crystals.Interval) == 0 {
		w.crystals = append(w.crystals, Crystal{
			X:      cfg.World.Width,
			Y:      ground + cfg.Crystals.OffsetY,
			Radius: cfg.Crystals.Radius,
		})
	}
}

// updateObstacles scans last to first so removal never skips an element.
// It returns false when the run ended this frame.
func (w *World) updateObstacles() bool {
	dx := w.gameSpeed * w.focusFactor()
	pbox := w.player.Box()

	for i := len(w.obstacles) - 1; i >= 0; i-- {
		o := &w.obstacles[i]
		o.X -= dx

		if o.Box().Overlaps(pbox) {
			if w.player.ShieldActive {
				w.player.dropShield()
				w.removeObstacle(i)
				w.emit(core.EventShieldConsumed, "")
				continue
			}
			w.running = false
			w.emit(core.EventGameOver, "")
			return false
		}

		if o.OffScreen() && !o.Scored {
			o.Scored = true
			w.removeObstacle(i)
			w.score++
			w.emit(core.EventObstacleAvoided, "")
			w.gameSpeed = w.deriveSpeed()
			w.checkStage()
		}
	}
	return true
}

func (w *World) updateCrystals() {
	dx := w.gameSpeed * w.focusFactor()
	pbox := w.player.Box()

	for i := len(w.crystals) - 1; i >= 0; i-- {
		c := &w.crystals[i]
		c.X -= dx

		if w.touches(*c, pbox) {
			w.removeCrystal(i)
			w.collect()
			continue
		}
		if c.OffScreen() {
			w.removeCrystal(i)
		}
	}
}

func (w *World) touches(c Crystal, pbox core.Box) bool {
	if w.cfg.Crystals.Collision == config.CollisionCircle {
		return core.CircleHitsBox(c.X, c.Y, c.Radius, pbox)
	}
	return c.Box().Overlaps(pbox)
}

func (w *World) collect() {
	w.shards++
	w.emit(core.EventShardCollected, "")

	if prob := w.cfg.Shield.GrantProbability; prob > 0 && w.rng.Float64() < prob {
		if w.player.ShieldActive {
			w.player.dropShield()
			w.score = max(0, w.score-w.cfg.Shield.Penalty)
			w.emit(core.EventShieldLost, "")
		} else {
			w.player.grantShield(w.cfg.Shield.Duration)
			w.emit(core.EventShieldGranted, "")
		}
	}

	if every := w.cfg.Story.Every; every > 0 && len(w.cfg.Story.Fragments) > 0 && w.shards%every == 0 {
		frags := w.cfg.Story.Fragments
		w.story = frags[(w.shards/every-1)%len(frags)]
		w.emit(core.EventStory, w.story)
	}

	if w.cfg.Stages.Metric == config.MetricShards {
		w.checkStage()
	}
}

func (w *World) removeObstacle(i int) {
	w.obstacles = append(w.obstacles[:i], w.obstacles[i+1:]...)
}

func (w *World) removeCrystal(i int) {
	w.crystals = append(w.crystals[:i], w.crystals[i+1:]...)
}

// emit records an event stamped with the counters as they are now.
func (w *World) emit(kind core.EventKind, text string) {
	w.events = append(w.events, core.Event{
		Kind:   kind,
		Frame:  w.frame,
		Score:  w.score,
		Shards: w.shards,
		Stage:  w.stage,
		Text:   text,
	})
}
