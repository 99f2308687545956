// Package config provides YAML/TOML game configuration loading, validation
// and difficulty management for EchoRift.
package config

// RiftConfig is the single configuration structure for the simulation.
// Every tunable constant of the run lives here; nothing is a scattered literal.
type RiftConfig struct {
	World     RiftWorld     `yaml:"world" toml:"world"`
	Physics   RiftPhysics   `yaml:"physics" toml:"physics"`
	Jump      RiftJump      `yaml:"jump" toml:"jump"`
	Player    RiftPlayer    `yaml:"player" toml:"player"`
	Dash      RiftDash      `yaml:"dash" toml:"dash"`
	Focus     RiftFocus     `yaml:"focus" toml:"focus"`
	Shield    RiftShield    `yaml:"shield" toml:"shield"`
	Obstacles RiftObstacles `yaml:"obstacles" toml:"obstacles"`
	Crystals  RiftCrystals  `yaml:"crystals" toml:"crystals"`
	Stages    RiftStages    `yaml:"stages" toml:"stages"`
	Story     RiftStory     `yaml:"story" toml:"story"`
}

// RiftWorld defines the playfield in world units.
type RiftWorld struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	GroundOffset float64 `yaml:"ground_offset" toml:"ground_offset"` // Ground level is Height - GroundOffset
}

// GroundY returns the resting Y (top edge) of the player.
func (w RiftWorld) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// RiftPhysics defines gravity and scroll speed.
type RiftPhysics struct {
	Gravity           float64 `yaml:"gravity" toml:"gravity"`
	BaseSpeed         float64 `yaml:"base_speed" toml:"base_speed"`
	MaxSpeed          float64 `yaml:"max_speed" toml:"max_speed"`
	SpeedRampPerPoint float64 `yaml:"speed_ramp_per_point" toml:"speed_ramp_per_point"`
}

// RiftJump defines the jump launch.
type RiftJump struct {
	Velocity          float64 `yaml:"velocity" toml:"velocity"` // Negative is upward
	BlockWhileDashing bool    `yaml:"block_while_dashing" toml:"block_while_dashing"`
}

// RiftPlayer defines the player's start column and size.
type RiftPlayer struct {
	X      float64 `yaml:"x" toml:"x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// RiftDash defines the dash ability.
type RiftDash struct {
	Duration      int     `yaml:"duration" toml:"duration"` // Frames of impulse
	Cooldown      int     `yaml:"cooldown" toml:"cooldown"` // Recovery frames after the dash ends
	Impulse       float64 `yaml:"impulse" toml:"impulse"`   // Horizontal units per frame
	AllowAirborne bool    `yaml:"allow_airborne" toml:"allow_airborne"`
}

// RiftFocus defines the focus ability.
type RiftFocus struct {
	Duration   int     `yaml:"duration" toml:"duration"`
	SlowFactor float64 `yaml:"slow_factor" toml:"slow_factor"` // Applied to scrolling and spawn cadence
}

// RiftShield defines the shield roll on crystal pickup.
type RiftShield struct {
	Duration         int     `yaml:"duration" toml:"duration"` // 0 = lasts until consumed
	GrantProbability float64 `yaml:"grant_probability" toml:"grant_probability"`
	Penalty          int     `yaml:"penalty" toml:"penalty"` // Score lost when a roll revokes the shield
}

// RiftObstacles defines obstacle spawning.
type RiftObstacles struct {
	Interval int     `yaml:"interval" toml:"interval"` // Base frames between spawns
	Width    float64 `yaml:"width" toml:"width"`
	Height   float64 `yaml:"height" toml:"height"`
	OffsetY  float64 `yaml:"offset_y" toml:"offset_y"` // Relative to ground level
}

// Crystal collision models.
const (
	CollisionBox    = "box"
	CollisionCircle = "circle"
)

// RiftCrystals defines crystal spawning and pickup geometry.
type RiftCrystals struct {
	Interval  int     `yaml:"interval" toml:"interval"`
	Radius    float64 `yaml:"radius" toml:"radius"`
	OffsetY   float64 `yaml:"offset_y" toml:"offset_y"`   // Center relative to ground level
	Collision string  `yaml:"collision" toml:"collision"` // "box" or "circle"
}

// Stage advance metrics.
const (
	MetricScore  = "score"
	MetricShards = "shards"
)

// StageConfig is one Rift stage.
type StageConfig struct {
	Name            string  `yaml:"name" toml:"name"`
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	Color           string  `yaml:"color" toml:"color"` // Hex background color
}

// RiftStages defines the ordered stage list and how it advances.
type RiftStages struct {
	Metric       string        `yaml:"metric" toml:"metric"`               // "score" or "shards"
	AdvanceEvery int           `yaml:"advance_every" toml:"advance_every"` // Metric units per stage
	Start        int           `yaml:"start" toml:"start"`
	List         []StageConfig `yaml:"list" toml:"list"`
}

// RiftStory defines the narrative fragments surfaced on shard milestones.
type RiftStory struct {
	Every     int      `yaml:"every" toml:"every"` // 0 disables fragments
	Fragments []string `yaml:"fragments" toml:"fragments"`
}

// Clone returns a deep copy so variants can mutate slices safely.
func (c RiftConfig) Clone() RiftConfig {
	out := c
	out.Stages.List = append([]StageConfig(nil), c.Stages.List...)
	out.Story.Fragments = append([]string(nil), c.Story.Fragments...)
	return out
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
