package echorift

import (
	"fmt"

	"github.com/vovakirdan/echorift/internal/config"
)

// Variant is a named rule set layered over the loaded configuration.
type Variant struct {
	ID    string
	Title string
	Blurb string
	Apply func(cfg *config.RiftConfig)
}

// Variants lists the registered rule sets in menu order.
var Variants = []Variant{
	{
		ID:    "echorift",
		Title: "EchoRift",
		Blurb: "Dodge the shadows. The Rift shifts every 10 points.",
		Apply: func(cfg *config.RiftConfig) {},
	},
	{
		ID:    "echorift_shards",
		Title: "EchoRift: Shard Hunt",
		Blurb: "Shards drive the Rift. Crystals may grant or steal a shield.",
		Apply: func(cfg *config.RiftConfig) {
			cfg.Stages.Metric = config.MetricShards
			cfg.Stages.AdvanceEvery = 15
			cfg.Crystals.Collision = config.CollisionCircle
			cfg.Shield.GrantProbability = 0.25
			cfg.Shield.Penalty = 3
			cfg.Jump.BlockWhileDashing = true
		},
	},
	{
		ID:    "echorift_surge",
		Title: "EchoRift: Surge",
		Blurb: "Speed climbs with every point. Dash in mid-air.",
		Apply: func(cfg *config.RiftConfig) {
			cfg.Stages.AdvanceEvery = 30
			cfg.Physics.SpeedRampPerPoint = 0.1
			cfg.Physics.MaxSpeed = max(cfg.Physics.MaxSpeed, 12)
			cfg.Dash.AllowAirborne = true
			cfg.Shield.GrantProbability = 0.25
		},
	},
}

// LookupVariant finds a variant by ID.
func LookupVariant(id string) (Variant, error) {
	for _, v := range Variants {
		if v.ID == id {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("echorift: unknown variant %q", id)
}

// Options are the CLI-level settings applied on top of a variant.
type Options struct {
	ConfigPath string
	Preset     config.DifficultyPreset
	StartStage int // -1 keeps the configured start stage
}

// BuildConfig loads the configuration and applies the variant, the preset and the start stage.
// The result is validated, so an out-of-range start stage is reported here.
func BuildConfig(v Variant, opts Options) (config.RiftConfig, error) {
	cfg, err := config.LoadRift(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	v.Apply(&cfg)
	if opts.Preset != "" {
		config.ApplyRiftPreset(&cfg, opts.Preset)
	}
	if opts.StartStage >= 0 {
		cfg.Stages.Start = opts.StartStage
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("echorift: variant %s: %w", v.ID, err)
	}
	return cfg, nil
}
