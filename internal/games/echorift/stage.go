package echorift

import (
	"github.com/vovakirdan/echorift/internal/config"
	"github.com/vovakirdan/echorift/internal/core"
)

// stageTarget returns the index the metric entitles the run to, before the one-step limit.
func stageTarget(cfg config.RiftStages, metric int) int {
	if cfg.AdvanceEvery <= 0 {
		return cfg.Start
	}
	return cfg.Start + metric/cfg.AdvanceEvery
}

// nextStage advances cur by at most one stage toward the metric's target.
// The last stage is absorbing and the index never decreases.
func nextStage(cfg config.RiftStages, cur, metric int) (int, bool) {
	last := len(cfg.List) - 1
	if cur >= last {
		return cur, false
	}
	if stageTarget(cfg, metric) > cur {
		return cur + 1, true
	}
	return cur, false
}

// stageMetric picks the counter that drives stage advancement.
func (w *World) stageMetric() int {
	if w.cfg.Stages.Metric == config.MetricShards {
		return w.shards
	}
	return w.score
}

func (w *World) checkStage() {
	next, ok := nextStage(w.cfg.Stages, w.stage, w.stageMetric())
	if !ok {
		return
	}
	w.stage = next
	w.gameSpeed = w.deriveSpeed()
	w.emit(core.EventStageAdvanced, w.cfg.Stages.List[next].Name)
}

// Stage returns the current stage definition.
func (w *World) Stage() config.StageConfig {
	return w.cfg.Stages.List[w.stage]
}
