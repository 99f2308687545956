package echorift

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// quietConfig never spawns anything on its own.
func quietConfig() config.RiftConfig {
	cfg := config.DefaultRiftConfig()
	cfg.Obstacles.Interval = 1_000_000
	cfg.Crystals.Interval = 1_000_000
	return cfg
}

func newTestWorld(t *testing.T, cfg config.RiftConfig) *World {
	t.Helper()
	w, err := NewWorld(cfg, 42)
	require.NoError(t, err)
	return w
}

func advance(t *testing.T, w *World, in Input, dt int) Result {
	t.Helper()
	res, err := w.Advance(in, dt)
	require.NoError(t, err)
	return res
}

// placeObstacleOnPlayer puts an obstacle that overlaps the player after one frame of scrolling.
func placeObstacleOnPlayer(w *World) {
	w.obstacles = append(w.obstacles, Obstacle{
		X: w.player.X, Y: w.player.Y,
		Width: w.cfg.Obstacles.Width, Height: w.cfg.Obstacles.Height,
	})
}

func placeCrystalOnPlayer(w *World) {
	cx, cy := w.player.Box().Center()
	w.crystals = append(w.crystals, Crystal{X: cx + w.gameSpeed, Y: cy, Radius: w.cfg.Crystals.Radius})
}

func TestNewWorldInitialState(t *testing.T) {
	w := newTestWorld(t, config.DefaultRiftConfig())
	s := w.Snapshot()

	assert.InDelta(t, 340.0, s.Player.Y, 1e-9)
	assert.InDelta(t, 60.0, s.Player.X, 1e-9)
	assert.False(t, s.Player.Jumping)
	assert.Empty(t, s.Obstacles)
	assert.Empty(t, s.Crystals)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 0, s.Stage)
	assert.Equal(t, "Stable", s.StageName)
	assert.Equal(t, "#0b1a33", s.StageHex)
	assert.InDelta(t, 5.0, s.GameSpeed, 1e-9)
	assert.True(t, s.Running)
}

func TestNewWorldRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultRiftConfig()
	cfg.Stages.Start = 7
	_, err := NewWorld(cfg, 1)
	assert.ErrorIs(t, err, config.ErrStageOutOfRange)

	cfg = config.DefaultRiftConfig()
	cfg.Obstacles.Interval = 0
	_, err = NewWorld(cfg, 1)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestStartStage(t *testing.T) {
	cfg := config.DefaultRiftConfig()
	cfg.Stages.Start = 2
	w := newTestWorld(t, cfg)

	s := w.Snapshot()
	assert.Equal(t, "Unraveling", s.StageName)
	assert.InDelta(t, 8.0, s.GameSpeed, 1e-9)
}

func TestAdvanceStepValidation(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	res, err := w.Advance(Input{}, -1)
	assert.ErrorIs(t, err, ErrNegativeStep)
	assert.True(t, res.Continue)
	assert.Equal(t, 0, w.Snapshot().Frame)

	res = advance(t, w, Input{}, 0)
	assert.True(t, res.Continue)
	assert.Empty(t, res.Events)
	assert.Equal(t, 0, w.Snapshot().Frame)

	advance(t, w, Input{}, 5)
	assert.Equal(t, 5, w.Snapshot().Frame)
}

func TestAdvanceAppliesFocusOnFirstFrameOnly(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	// Focus expires on frame 181; a repeated press would restart it on frame 182
	res := advance(t, w, Input{Focus: true}, 182)
	assert.False(t, w.Snapshot().Player.FocusActive)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventFocusStarted))
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventFocusEnded))
}

func TestIdleRunSpawnsAndScores(t *testing.T) {
	cfg := config.DefaultRiftConfig()
	cfg.Obstacles.OffsetY = -100 // overhead lane, the idle player never touches it
	w := newTestWorld(t, cfg)

	var events []core.Event
	res := advance(t, w, Input{}, 200)
	events = append(events, res.Events...)

	s := w.Snapshot()
	require.True(t, res.Continue)
	assert.Len(t, s.Obstacles, 2, "obstacles spawn on frames 80 and 160")
	assert.Len(t, s.Crystals, 1, "a crystal spawns on frame 140")
	assert.Equal(t, 0, s.Score, "nothing has left the screen yet")
	assert.Zero(t, core.CountEvents(events, core.EventGameOver))

	for range 200 {
		res = advance(t, w, Input{}, 1)
		events = append(events, res.Events...)
	}

	s = w.Snapshot()
	assert.True(t, s.Running)
	assert.Equal(t, 2, s.Score, "obstacles from frames 80 and 160 exit on 246 and 326")
	assert.Equal(t, s.Score, core.CountEvents(events, core.EventObstacleAvoided))
	assert.Equal(t, 0, s.Shards)
}

func TestObstacleScoredExactlyOnce(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.obstacles = append(w.obstacles, Obstacle{X: -40, Y: 0, Width: 30, Height: 30})

	res := advance(t, w, Input{}, 1)
	assert.Equal(t, 1, w.score)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventObstacleAvoided))
	assert.Empty(t, w.obstacles)

	res = advance(t, w, Input{}, 10)
	assert.Equal(t, 1, w.score)
	assert.Zero(t, core.CountEvents(res.Events, core.EventObstacleAvoided))
}

func TestCollisionWithoutShieldEndsRun(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.score = 7
	w.shards = 3
	placeObstacleOnPlayer(w)

	res := advance(t, w, Input{}, 1)
	assert.False(t, res.Continue)
	require.Equal(t, 1, core.CountEvents(res.Events, core.EventGameOver))

	last := res.Events[len(res.Events)-1]
	assert.Equal(t, core.EventGameOver, last.Kind)
	assert.Equal(t, 7, last.Score)
	assert.Equal(t, 3, last.Shards)

	before := w.Snapshot()
	res = advance(t, w, Input{Jump: true, Dash: true, Focus: true}, 10)
	assert.False(t, res.Continue)
	assert.Empty(t, res.Events)
	assert.Equal(t, before, w.Snapshot())
}

func TestCollisionStopsFrameProcessing(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	placeObstacleOnPlayer(w)
	placeCrystalOnPlayer(w)

	res := advance(t, w, Input{}, 1)
	assert.False(t, res.Continue)
	assert.Zero(t, core.CountEvents(res.Events, core.EventShardCollected))
	assert.Equal(t, 0, w.shards)
}

func TestCollisionWithShieldConsumesIt(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.player.grantShield(0)
	placeObstacleOnPlayer(w)

	res := advance(t, w, Input{}, 1)
	assert.True(t, res.Continue)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventShieldConsumed))
	assert.Zero(t, core.CountEvents(res.Events, core.EventGameOver))
	assert.False(t, w.player.ShieldActive)
	assert.Empty(t, w.obstacles)

	// A second hit is fatal
	placeObstacleOnPlayer(w)
	res = advance(t, w, Input{}, 1)
	assert.False(t, res.Continue)
}

func TestShieldExpires(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.player.grantShield(3)

	res := advance(t, w, Input{}, 2)
	assert.True(t, w.player.ShieldActive)
	assert.Empty(t, res.Events)

	res = advance(t, w, Input{}, 1)
	assert.False(t, w.player.ShieldActive)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventShieldExpired))
}

func TestJumpLandsOnGround(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	ground := w.cfg.World.GroundY()

	advance(t, w, Input{Jump: true}, 1)
	require.True(t, w.player.Jumping)

	peak := ground
	for range 100 {
		advance(t, w, Input{}, 1)
		assert.LessOrEqual(t, w.player.Y, ground)
		assert.Equal(t, w.player.Y < ground, w.player.Jumping)
		peak = min(peak, w.player.Y)
	}

	assert.InDelta(t, ground, w.player.Y, 1e-9)
	assert.Zero(t, w.player.VY)
	assert.False(t, w.player.Jumping)
	assert.Less(t, peak, ground-100)
}

func TestJumpIgnoredWhileAirborne(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	advance(t, w, Input{Jump: true}, 1)
	vy := w.player.VY

	advance(t, w, Input{Jump: true}, 1)
	assert.InDelta(t, vy+w.cfg.Physics.Gravity, w.player.VY, 1e-9)
}

func TestDashRetriggerRules(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	var started []int
	for range 200 {
		res := advance(t, w, Input{Dash: true}, 1)
		for _, e := range res.Events {
			if e.Kind == core.EventDashStarted {
				started = append(started, e.Frame)
			}
		}
		if w.player.DashRemainingFrames > 0 {
			assert.True(t, w.player.Dashing)
		}
	}

	// 15 frames of dash, then 90 frames of cooldown counted from expiry
	assert.Equal(t, []int{1, 106}, started)
}

func TestDashMovesPlayer(t *testing.T) {
	w := newTestWorld(t, quietConfig())

	advance(t, w, Input{Dash: true}, 1)
	assert.InDelta(t, 60.0, w.player.X, 1e-9)

	advance(t, w, Input{}, 15)
	assert.False(t, w.player.Dashing)
	assert.Equal(t, 90, w.player.DashCooldownFrames)
	assert.InDelta(t, 60.0+15*15, w.player.X, 1e-9)

	advance(t, w, Input{}, 5)
	assert.InDelta(t, 285.0, w.player.X, 1e-9)
}

func TestDashClampedToWorld(t *testing.T) {
	cfg := quietConfig()
	cfg.Dash.Impulse = 200
	w := newTestWorld(t, cfg)

	advance(t, w, Input{Dash: true}, 16)
	assert.InDelta(t, cfg.World.Width-cfg.Player.Width, w.player.X, 1e-9)
}

func TestDashAirborneRule(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	advance(t, w, Input{Jump: true}, 1)
	res := advance(t, w, Input{Dash: true}, 1)
	assert.False(t, w.player.Dashing)
	assert.Zero(t, core.CountEvents(res.Events, core.EventDashStarted))

	cfg := quietConfig()
	cfg.Dash.AllowAirborne = true
	w = newTestWorld(t, cfg)
	advance(t, w, Input{Jump: true}, 1)
	advance(t, w, Input{Dash: true}, 1)
	assert.True(t, w.player.Dashing)
}

func TestJumpBlockedWhileDashing(t *testing.T) {
	cfg := quietConfig()
	cfg.Jump.BlockWhileDashing = true
	w := newTestWorld(t, cfg)

	advance(t, w, Input{Dash: true}, 1)
	advance(t, w, Input{Jump: true}, 1)
	assert.False(t, w.player.Jumping)

	cfg.Jump.BlockWhileDashing = false
	w = newTestWorld(t, cfg)
	advance(t, w, Input{Dash: true}, 1)
	advance(t, w, Input{Jump: true}, 1)
	assert.True(t, w.player.Jumping)
}

func TestFocusActivationAndExpiry(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	duration := w.cfg.Focus.Duration

	res := advance(t, w, Input{Focus: true}, 1)
	assert.True(t, w.player.FocusActive)
	assert.Equal(t, duration, w.player.FocusRemainingFrames)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventFocusStarted))

	advance(t, w, Input{}, duration-1)
	assert.True(t, w.player.FocusActive)

	res = advance(t, w, Input{}, 1)
	assert.False(t, w.player.FocusActive)
	assert.Equal(t, 0, w.player.FocusRemainingFrames)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventFocusEnded))
}

func TestFocusSlowsScrollAndSpawns(t *testing.T) {
	w := newTestWorld(t, config.DefaultRiftConfig())
	assert.Equal(t, 80, w.spawnInterval(80))

	advance(t, w, Input{Focus: true}, 1)
	assert.Equal(t, 160, w.spawnInterval(80))

	w.obstacles = append(w.obstacles, Obstacle{X: 500, Y: 0, Width: 30, Height: 30})
	advance(t, w, Input{}, 1)
	assert.InDelta(t, 497.5, w.obstacles[0].X, 1e-9)

	w.stage = 3
	assert.Equal(t, 80, w.spawnInterval(80))
}

func TestSpawnIntervalNeverZero(t *testing.T) {
	cfg := config.DefaultRiftConfig()
	cfg.Obstacles.Interval = 1
	cfg.Stages.Start = 3
	w := newTestWorld(t, cfg)
	assert.Equal(t, 1, w.spawnInterval(1))
}

func TestStageAdvancesOneStepPerCheck(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	for range 25 {
		w.obstacles = append(w.obstacles, Obstacle{X: -100, Y: 0, Width: 30, Height: 30})
	}

	res := advance(t, w, Input{}, 1)
	assert.Equal(t, 25, w.score)
	assert.Equal(t, 2, w.stage)
	assert.Equal(t, 2, core.CountEvents(res.Events, core.EventStageAdvanced))
	assert.InDelta(t, 5*1.6, w.gameSpeed, 1e-9)

	var names []string
	for _, e := range res.Events {
		if e.Kind == core.EventStageAdvanced {
			names = append(names, e.Text)
		}
	}
	assert.Equal(t, []string{"Shifting", "Unraveling"}, names)
}

func TestNextStage(t *testing.T) {
	stages := config.DefaultRiftConfig().Stages

	next, ok := nextStage(stages, 0, 9)
	assert.False(t, ok)
	assert.Equal(t, 0, next)

	next, ok = nextStage(stages, 0, 35)
	assert.True(t, ok)
	assert.Equal(t, 1, next, "never skips stages")

	next, ok = nextStage(stages, 3, 1000)
	assert.False(t, ok)
	assert.Equal(t, 3, next, "last stage is absorbing")

	stages.Start = 2
	_, ok = nextStage(stages, 2, 9)
	assert.False(t, ok)
	next, ok = nextStage(stages, 2, 10)
	assert.True(t, ok)
	assert.Equal(t, 3, next)
}

func TestShardStageMetric(t *testing.T) {
	cfg := quietConfig()
	cfg.Stages.Metric = config.MetricShards
	cfg.Stages.AdvanceEvery = 2
	w := newTestWorld(t, cfg)

	placeCrystalOnPlayer(w)
	advance(t, w, Input{}, 1)
	assert.Equal(t, 0, w.stage)

	placeCrystalOnPlayer(w)
	res := advance(t, w, Input{}, 1)
	assert.Equal(t, 2, w.shards)
	assert.Equal(t, 1, w.stage)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventStageAdvanced))
}

func TestCrystalCollectionModels(t *testing.T) {
	for _, model := range []string{config.CollisionBox, config.CollisionCircle} {
		t.Run(model, func(t *testing.T) {
			cfg := quietConfig()
			cfg.Crystals.Collision = model
			w := newTestWorld(t, cfg)

			placeCrystalOnPlayer(w)
			res := advance(t, w, Input{}, 1)
			assert.Equal(t, 1, w.shards)
			assert.Empty(t, w.crystals)
			assert.Equal(t, 1, core.CountEvents(res.Events, core.EventShardCollected))
		})
	}
}

func TestCrystalOffScreenRemovedSilently(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.crystals = append(w.crystals, Crystal{X: -10, Y: 100, Radius: 12})

	res := advance(t, w, Input{}, 1)
	assert.Empty(t, w.crystals)
	assert.Empty(t, res.Events)
	assert.Equal(t, 0, w.shards)
	assert.Equal(t, 0, w.score)
}

func TestShieldRollGrantsThenRevokesWithFlooredPenalty(t *testing.T) {
	cfg := quietConfig()
	cfg.Shield.GrantProbability = 1
	cfg.Shield.Penalty = 3
	w := newTestWorld(t, cfg)

	placeCrystalOnPlayer(w)
	res := advance(t, w, Input{}, 1)
	assert.True(t, w.player.ShieldActive)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventShieldGranted))

	w.score = 1
	placeCrystalOnPlayer(w)
	res = advance(t, w, Input{}, 1)
	assert.False(t, w.player.ShieldActive)
	assert.Equal(t, 0, w.score)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventShieldLost))

	w.score = 10
	placeCrystalOnPlayer(w)
	advance(t, w, Input{}, 1)
	placeCrystalOnPlayer(w)
	advance(t, w, Input{}, 1)
	assert.Equal(t, 7, w.score)
}

func TestStoryFragments(t *testing.T) {
	cfg := quietConfig()
	cfg.Story.Every = 1
	cfg.Story.Fragments = []string{"first", "second"}
	w := newTestWorld(t, cfg)

	var texts []string
	for range 3 {
		placeCrystalOnPlayer(w)
		res := advance(t, w, Input{}, 1)
		for _, e := range res.Events {
			if e.Kind == core.EventStory {
				texts = append(texts, e.Text)
			}
		}
	}
	assert.Equal(t, []string{"first", "second", "first"}, texts)
	assert.Equal(t, "first", w.Snapshot().Story)
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWorld(t, quietConfig())
	w.obstacles = append(w.obstacles, Obstacle{X: 400, Y: 0, Width: 30, Height: 30})

	s := w.Snapshot()
	s.Obstacles[0].X = 0
	s.Player.X = 0

	assert.InDelta(t, 400.0, w.obstacles[0].X, 1e-9)
	assert.InDelta(t, 60.0, w.player.X, 1e-9)
}

func TestResetClearsEverything(t *testing.T) {
	w := newTestWorld(t, config.DefaultRiftConfig())
	advance(t, w, Input{Jump: true, Focus: true}, 1)
	advance(t, w, Input{}, 150)
	w.player.grantShield(0)

	w.Reset()
	s := w.Snapshot()
	assert.Equal(t, 0, s.Frame)
	assert.Empty(t, s.Obstacles)
	assert.Empty(t, s.Crystals)
	assert.Equal(t, newPlayer(w.cfg), s.Player)
	assert.True(t, s.Running)
}

// randomInputs produces a deterministic input script.
func randomInputs(seed int64, n int) []Input {
	rng := rand.New(rand.NewSource(seed))
	inputs := make([]Input, n)
	for i := range inputs {
		inputs[i] = Input{
			Jump:  rng.Intn(12) == 0,
			Dash:  rng.Intn(40) == 0,
			Focus: rng.Intn(200) == 0,
		}
	}
	return inputs
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultRiftConfig()
	cfg.Shield.GrantProbability = 0.25
	inputs := randomInputs(7, 3000)

	run := func(w *World) Snapshot {
		for _, in := range inputs {
			if _, err := w.Advance(in, 1); err != nil || !w.Running() {
				break
			}
		}
		return w.Snapshot()
	}

	w1 := newTestWorld(t, cfg)
	w2 := newTestWorld(t, cfg)
	first := run(w1)
	assert.Equal(t, first, run(w2))

	w1.Reset()
	assert.Equal(t, first, run(w1), "a reset world replays identically")
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.ID, func(t *testing.T) {
			cfg := config.DefaultRiftConfig()
			v.Apply(&cfg)
			cfg.Shield.GrantProbability = 0.5
			w := newTestWorld(t, cfg)
			ground := cfg.World.GroundY()
			last := len(cfg.Stages.List) - 1

			prev := w.Snapshot()
			for _, in := range randomInputs(99, 20000) {
				res := advance(t, w, in, 1)
				s := w.Snapshot()

				assert.GreaterOrEqual(t, s.Score, 0)
				assert.GreaterOrEqual(t, s.Shards, prev.Shards)
				assert.GreaterOrEqual(t, s.Stage, prev.Stage)
				assert.LessOrEqual(t, s.Stage, last)
				assert.LessOrEqual(t, s.Player.Y, ground)
				assert.Equal(t, s.Player.Y < ground, s.Player.Jumping)
				if s.Player.DashRemainingFrames > 0 {
					assert.True(t, s.Player.Dashing)
				}
				assert.LessOrEqual(t, core.CountEvents(res.Events, core.EventGameOver), 1)

				if !res.Continue {
					w.Reset()
					s = w.Snapshot()
				}
				prev = s
			}
		})
	}
}
