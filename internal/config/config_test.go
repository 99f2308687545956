package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	assert.Equal(t, DefaultRiftConfig(), embeddedDefault())
	require.NoError(t, DefaultRiftConfig().Validate())
}

func TestGroundY(t *testing.T) {
	cfg := DefaultRiftConfig()
	assert.InDelta(t, 340.0, cfg.World.GroundY(), 1e-9)
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultRiftConfig()
	cp := cfg.Clone()
	cp.Stages.List[0].Name = "Changed"
	cp.Story.Fragments[0] = "changed"

	assert.Equal(t, "Stable", cfg.Stages.List[0].Name)
	assert.NotEqual(t, "changed", cfg.Story.Fragments[0])
}

func TestLoadRiftCustomYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rift.yaml")
	data := "physics:\n  base_speed: 7\n  max_speed: 7\ncrystals:\n  collision: circle\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadRift(path)
	require.NoError(t, err)

	assert.InDelta(t, 7.0, cfg.Physics.BaseSpeed, 1e-9)
	assert.InDelta(t, 0.8, cfg.Physics.Gravity, 1e-9)
	assert.Equal(t, CollisionCircle, cfg.Crystals.Collision)
	assert.Equal(t, 140, cfg.Crystals.Interval)
	assert.Len(t, cfg.Stages.List, 4)
}

func TestLoadRiftCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rift.toml")
	data := "[dash]\nduration = 20\ncooldown = 60\n\n[stages]\nmetric = \"shards\"\nadvance_every = 15\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadRift(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Dash.Duration)
	assert.Equal(t, 60, cfg.Dash.Cooldown)
	assert.Equal(t, MetricShards, cfg.Stages.Metric)
	assert.Equal(t, 15, cfg.Stages.AdvanceEvery)
	assert.InDelta(t, 15.0, cfg.Dash.Impulse, 1e-9)
}

func TestLoadRiftErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRift(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "rift.json")
	require.NoError(t, os.WriteFile(unknown, []byte("{}"), 0o644))
	_, err = LoadRift(unknown)
	assert.ErrorContains(t, err, "unsupported config format")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("obstacles:\n  interval: 0\n"), 0o644))
	_, err = LoadRift(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRiftSearchPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	cfg, err := LoadRift("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRiftConfig(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	local := filepath.Join(work, "configs", ConfigFileName)
	require.NoError(t, os.WriteFile(local, []byte("focus:\n  duration: 90\n"), 0o644))

	cfg, err = LoadRift("")
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Focus.Duration)

	// Broken files in the search path fall back to the default
	require.NoError(t, os.WriteFile(local, []byte("focus: [\n"), 0o644))
	cfg, err = LoadRift("")
	require.NoError(t, err)
	assert.Equal(t, 180, cfg.Focus.Duration)
}

func TestParseRift(t *testing.T) {
	cfg, err := ParseRift("toml", []byte("[shield]\ngrant_probability = 0.25\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.Shield.GrantProbability, 1e-9)

	_, err = ParseRift("yaml", []byte("shield:\n  grant_probability: 2\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RiftConfig)
	}{
		{"zero obstacle interval", func(c *RiftConfig) { c.Obstacles.Interval = 0 }},
		{"zero crystal interval", func(c *RiftConfig) { c.Crystals.Interval = 0 }},
		{"zero dash duration", func(c *RiftConfig) { c.Dash.Duration = 0 }},
		{"zero focus duration", func(c *RiftConfig) { c.Focus.Duration = 0 }},
		{"focus factor above one", func(c *RiftConfig) { c.Focus.SlowFactor = 1.5 }},
		{"downward jump", func(c *RiftConfig) { c.Jump.Velocity = 3 }},
		{"negative probability", func(c *RiftConfig) { c.Shield.GrantProbability = -0.1 }},
		{"unknown metric", func(c *RiftConfig) { c.Stages.Metric = "time" }},
		{"unknown collision", func(c *RiftConfig) { c.Crystals.Collision = "sphere" }},
		{"empty stages", func(c *RiftConfig) { c.Stages.List = nil }},
		{"bad stage color", func(c *RiftConfig) { c.Stages.List[1].Color = "purple" }},
		{"max below base", func(c *RiftConfig) { c.Physics.MaxSpeed = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRiftConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateStartStage(t *testing.T) {
	cfg := DefaultRiftConfig()
	cfg.Stages.Start = 3
	assert.NoError(t, cfg.Validate())

	cfg.Stages.Start = 4
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrStageOutOfRange)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.Stages.Start = -1
	assert.ErrorIs(t, cfg.Validate(), ErrStageOutOfRange)
}

func TestStageColor(t *testing.T) {
	c, err := StageColor(StageConfig{Color: "#ff0000"})
	require.NoError(t, err)
	r, g, b := c.RGB255()
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})
}

func TestApplyRiftPreset(t *testing.T) {
	base := DefaultRiftConfig()

	normal := base.Clone()
	ApplyRiftPreset(&normal, DifficultyNormal)
	assert.Equal(t, base, normal)

	easy := base.Clone()
	ApplyRiftPreset(&easy, DifficultyEasy)
	assert.Less(t, easy.Physics.BaseSpeed, base.Physics.BaseSpeed)
	assert.Greater(t, easy.Obstacles.Interval, base.Obstacles.Interval)
	assert.NoError(t, easy.Validate())

	hard := base.Clone()
	ApplyRiftPreset(&hard, DifficultyHard)
	assert.Greater(t, hard.Physics.BaseSpeed, base.Physics.BaseSpeed)
	assert.Less(t, hard.Obstacles.Interval, base.Obstacles.Interval)
	assert.NoError(t, hard.Validate())
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParsePreset("hard"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset("nightmare"))
}

func TestDifficultyManager(t *testing.T) {
	flat := NewDifficultyManager(RiftPhysics{BaseSpeed: 5, MaxSpeed: 5, SpeedRampPerPoint: 0.1})
	assert.False(t, flat.IsRamping())
	assert.InDelta(t, 5.0, flat.Speed(100), 1e-9)
	assert.InDelta(t, 0.0, flat.Level(100), 1e-9)

	ramp := NewDifficultyManager(RiftPhysics{BaseSpeed: 5, MaxSpeed: 12, SpeedRampPerPoint: 0.1})
	assert.True(t, ramp.IsRamping())
	assert.InDelta(t, 5.0, ramp.Speed(0), 1e-9)
	assert.InDelta(t, 5.0, ramp.Speed(-3), 1e-9)
	assert.InDelta(t, 6.0, ramp.Speed(10), 1e-9)
	assert.InDelta(t, 12.0, ramp.Speed(70), 1e-9)
	assert.InDelta(t, 12.0, ramp.Speed(500), 1e-9)
	assert.InDelta(t, 0.5, ramp.Level(35), 1e-9)
	assert.InDelta(t, 1.0, ramp.Level(500), 1e-9)
}
