package config

import (
	_ "embed"
)

//go:embed defaults/echorift.yaml
var defaultRiftYAML []byte

// DefaultRiftConfig returns the built-in configuration.
// It mirrors defaults/echorift.yaml and is used when the embedded file cannot be parsed.
func DefaultRiftConfig() RiftConfig {
	return RiftConfig{
		World: RiftWorld{
			Width:        800,
			Height:       400,
			GroundOffset: 60,
		},
		Physics: RiftPhysics{
			Gravity:           0.8,
			BaseSpeed:         5,
			MaxSpeed:          5,
			SpeedRampPerPoint: 0,
		},
		Jump: RiftJump{
			Velocity: -14,
		},
		Player: RiftPlayer{
			X:      60,
			Width:  32,
			Height: 32,
		},
		Dash: RiftDash{
			Duration: 15,
			Cooldown: 90,
			Impulse:  15,
		},
		Focus: RiftFocus{
			Duration:   180,
			SlowFactor: 0.5,
		},
		Shield: RiftShield{
			Duration:         600,
			GrantProbability: 0,
			Penalty:          3,
		},
		Obstacles: RiftObstacles{
			Interval: 80,
			Width:    30,
			Height:   30,
			OffsetY:  5,
		},
		Crystals: RiftCrystals{
			Interval:  140,
			Radius:    12,
			OffsetY:   -18,
			Collision: CollisionBox,
		},
		Stages: RiftStages{
			Metric:       MetricScore,
			AdvanceEvery: 10,
			Start:        0,
			List: []StageConfig{
				{Name: "Stable", SpeedMultiplier: 1, Color: "#0b1a33"},
				{Name: "Shifting", SpeedMultiplier: 1.25, Color: "#2b1a3d"},
				{Name: "Unraveling", SpeedMultiplier: 1.6, Color: "#4b134d"},
				{Name: "Fractured", SpeedMultiplier: 2, Color: "#6b0f5a"},
			},
		},
		Story: RiftStory{
			Every: 5,
			Fragments: []string{
				"A soft glow warms your paws, a shard close by.",
				"You feel a distant purr... a friend or foe?",
				"The Rift shifts; reality blurs and bends.",
				"Each shard you gather sings a forgotten tune.",
				"Echoes whisper secrets of hope and loss.",
				"Your heart races. Freedom feels close.",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRiftYAML
}
