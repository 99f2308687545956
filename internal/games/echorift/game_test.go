package echorift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
	"github.com/vovakirdan/echorift/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

// withOptions swaps the package options for one test.
func withOptions(t *testing.T, opts Options) {
	t.Helper()
	saved := options
	options = opts
	t.Cleanup(func() { options = saved })
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		g, err := registry.Create(v.ID)
		require.NoError(t, err, v.ID)
		assert.Equal(t, v.Title, g.Title())
	}
}

func TestLookupVariant(t *testing.T) {
	v, err := LookupVariant("echorift_surge")
	require.NoError(t, err)
	assert.Equal(t, "EchoRift: Surge", v.Title)

	_, err = LookupVariant("echorift_deluxe")
	assert.Error(t, err)
}

func TestVariantRules(t *testing.T) {
	withOptions(t, Options{StartStage: -1, ConfigPath: ""})
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	shards, _ := LookupVariant("echorift_shards")
	cfg, err := BuildConfig(shards, options)
	require.NoError(t, err)
	assert.Equal(t, config.MetricShards, cfg.Stages.Metric)
	assert.Equal(t, 15, cfg.Stages.AdvanceEvery)
	assert.Equal(t, config.CollisionCircle, cfg.Crystals.Collision)
	assert.InDelta(t, 0.25, cfg.Shield.GrantProbability, 1e-9)
	assert.True(t, cfg.Jump.BlockWhileDashing)

	surge, _ := LookupVariant("echorift_surge")
	cfg, err = BuildConfig(surge, options)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Stages.AdvanceEvery)
	assert.InDelta(t, 12.0, cfg.Physics.MaxSpeed, 1e-9)
	assert.True(t, cfg.Dash.AllowAirborne)

	classic, _ := LookupVariant("echorift")
	cfg, err = BuildConfig(classic, options)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRiftConfig(), cfg)
}

func TestBuildConfigStartStage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	classic, _ := LookupVariant("echorift")

	cfg, err := BuildConfig(classic, Options{StartStage: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Stages.Start)

	_, err = BuildConfig(classic, Options{StartStage: 4})
	assert.ErrorIs(t, err, config.ErrStageOutOfRange)
}

func TestGameFallsBackOnBadStartStage(t *testing.T) {
	withOptions(t, Options{StartStage: 9})
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	g := New(Variants[0])
	g.Reset(testRuntime())
	assert.ErrorIs(t, g.Err(), config.ErrStageOutOfRange)
	assert.Equal(t, "Stable", g.State().Stage)
}

func TestGamePauseToggle(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())

	g.Step(core.NewInputFrame())
	assert.Equal(t, 1, g.State().Frames)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	assert.True(t, res.State.Paused)

	g.Step(core.NewInputFrame())
	assert.Equal(t, 1, g.State().Frames)

	g.Step(pause)
	assert.False(t, g.State().Paused)
	assert.Equal(t, 2, g.State().Frames)
}

func TestGameMapsActions(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	in.Set(core.ActionFocus)
	res := g.Step(in)

	p := g.World().Snapshot().Player
	assert.True(t, p.Jumping)
	assert.True(t, p.FocusActive)
	assert.Equal(t, 1, core.CountEvents(res.Events, core.EventFocusStarted))
}

func TestGameDeterminism(t *testing.T) {
	script := randomInputs(3, 1500)
	run := func() core.GameState {
		g := New(Variants[1])
		g.Reset(testRuntime())
		var state core.GameState
		for _, in := range script {
			frame := core.NewInputFrame()
			if in.Jump {
				frame.Set(core.ActionJump)
			}
			if in.Dash {
				frame.Set(core.ActionDash)
			}
			state = g.Step(frame).State
			if state.GameOver {
				break
			}
		}
		return state
	}
	assert.Equal(t, run(), run())
}

func TestGameRender(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "Rift: Stable")
	assert.Contains(t, screen.Row(1), "Dash")
	assert.Equal(t, "#0b1a33", screen.Background())

	// Player occupies cells around x=60/800*80 on the ground rows
	v := newViewport(g.World().cfg.World, 80, 24)
	assert.Equal(t, PlayerChar, screen.Get(v.x(61), v.y(341)))
	assert.Equal(t, GroundChar, screen.Get(0, v.y(372)))
}

func TestGameRenderGameOver(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	placeObstacleOnPlayer(g.World())
	res := g.Step(core.NewInputFrame())
	require.True(t, res.State.GameOver)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestGamePresetOverridesSharedOptions(t *testing.T) {
	withOptions(t, Options{StartStage: -1})

	g := New(Variants[0])
	g.SetPreset(config.DifficultyHard)
	g.Reset(testRuntime())
	require.NoError(t, g.Err())

	base := config.DefaultRiftConfig().Physics.BaseSpeed
	assert.InDelta(t, base*1.2, g.World().Config().Physics.BaseSpeed, 1e-9)

	other := New(Variants[0])
	other.Reset(testRuntime())
	assert.InDelta(t, base, other.World().Config().Physics.BaseSpeed, 1e-9)
}
