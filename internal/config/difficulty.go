package config

import "math"

// DifficultyManager derives the scroll speed from the score.
type DifficultyManager struct {
	cfg RiftPhysics
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg RiftPhysics) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsRamping reports whether the speed grows with the score.
func (d *DifficultyManager) IsRamping() bool {
	return d.cfg.SpeedRampPerPoint > 0 && d.cfg.MaxSpeed > d.cfg.BaseSpeed
}

// Speed returns min(base + score*ramp, max), never below the base speed.
func (d *DifficultyManager) Speed(score int) float64 {
	if !d.IsRamping() {
		return d.cfg.BaseSpeed
	}
	speed := d.cfg.BaseSpeed + float64(max(score, 0))*d.cfg.SpeedRampPerPoint
	return math.Min(speed, d.cfg.MaxSpeed)
}

// Level returns how far the ramp has progressed, from 0.0 to 1.0.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsRamping() {
		return 0
	}
	return clampF((d.Speed(score)-d.cfg.BaseSpeed)/(d.cfg.MaxSpeed-d.cfg.BaseSpeed), 0, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
