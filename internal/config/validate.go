package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrStageOutOfRange is returned for a start stage outside the stage list.
	ErrStageOutOfRange = errors.New("stage index out of range")
)

// Validate checks the configuration for values the simulation cannot run with.
func (c RiftConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	check(c.World.GroundOffset >= 0 && c.World.GroundOffset < c.World.Height, "ground_offset %v outside world height", c.World.GroundOffset)
	check(c.Physics.Gravity > 0, "gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.BaseSpeed > 0, "base_speed must be positive, got %v", c.Physics.BaseSpeed)
	check(c.Physics.MaxSpeed >= c.Physics.BaseSpeed, "max_speed %v below base_speed %v", c.Physics.MaxSpeed, c.Physics.BaseSpeed)
	check(c.Physics.SpeedRampPerPoint >= 0, "speed_ramp_per_point must not be negative")
	check(c.Jump.Velocity < 0, "jump velocity must be negative (upward), got %v", c.Jump.Velocity)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive")
	check(c.Player.X >= 0 && c.Player.X+c.Player.Width <= c.World.Width, "player x %v outside the world", c.Player.X)
	check(c.Dash.Duration > 0, "dash duration must be positive, got %d", c.Dash.Duration)
	check(c.Dash.Cooldown >= 0, "dash cooldown must not be negative")
	check(c.Focus.Duration > 0, "focus duration must be positive, got %d", c.Focus.Duration)
	check(c.Focus.SlowFactor > 0 && c.Focus.SlowFactor <= 1, "focus slow_factor must be in (0, 1], got %v", c.Focus.SlowFactor)
	check(c.Shield.Duration >= 0, "shield duration must not be negative")
	check(c.Shield.GrantProbability >= 0 && c.Shield.GrantProbability <= 1, "shield grant_probability must be in [0, 1], got %v", c.Shield.GrantProbability)
	check(c.Shield.Penalty >= 0, "shield penalty must not be negative")
	check(c.Obstacles.Interval > 0, "obstacle interval must be positive, got %d", c.Obstacles.Interval)
	check(c.Obstacles.Width > 0 && c.Obstacles.Height > 0, "obstacle size must be positive")
	check(c.Crystals.Interval > 0, "crystal interval must be positive, got %d", c.Crystals.Interval)
	check(c.Crystals.Radius > 0, "crystal radius must be positive")
	check(c.Crystals.Collision == CollisionBox || c.Crystals.Collision == CollisionCircle,
		"crystal collision must be %q or %q, got %q", CollisionBox, CollisionCircle, c.Crystals.Collision)
	check(c.Stages.Metric == MetricScore || c.Stages.Metric == MetricShards,
		"stage metric must be %q or %q, got %q", MetricScore, MetricShards, c.Stages.Metric)
	check(c.Stages.AdvanceEvery > 0, "stage advance_every must be positive, got %d", c.Stages.AdvanceEvery)
	check(c.Story.Every >= 0, "story every must not be negative")

	if len(c.Stages.List) == 0 {
		errs = append(errs, errors.New("at least one stage is required"))
	} else if c.Stages.Start < 0 || c.Stages.Start >= len(c.Stages.List) {
		errs = append(errs, fmt.Errorf("%w: start %d not in [0, %d]", ErrStageOutOfRange, c.Stages.Start, len(c.Stages.List)-1))
	}
	for i, s := range c.Stages.List {
		check(s.Name != "", "stage %d has no name", i)
		check(s.SpeedMultiplier > 0, "stage %q speed_multiplier must be positive", s.Name)
		if _, err := colorful.Hex(s.Color); err != nil {
			errs = append(errs, fmt.Errorf("stage %q color %q: %w", s.Name, s.Color, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// StageColor parses a stage's hex color.
func StageColor(s StageConfig) (colorful.Color, error) {
	return colorful.Hex(s.Color)
}
