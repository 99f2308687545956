package main

import (
	"testing"

	"github.com/vovakirdan/echorift/internal/config"
)

func TestReachedAt(t *testing.T) {
	st := config.RiftStages{Metric: config.MetricScore, AdvanceEvery: 10, Start: 1}
	tests := []struct {
		stage int
		want  string
	}{
		{0, "-"},
		{1, "start"},
		{2, "score 10"},
		{3, "score 20"},
	}
	for _, tt := range tests {
		if got := reachedAt(st, tt.stage); got != tt.want {
			t.Errorf("reachedAt(%d) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestRunDuration(t *testing.T) {
	saved := flagFPS
	t.Cleanup(func() { flagFPS = saved })

	flagFPS = 60
	if got := runDuration(60 * 75); got != "1:15" {
		t.Errorf("runDuration = %q, want 1:15", got)
	}
	flagFPS = 0
	if got := runDuration(59); got != "0:59" {
		t.Errorf("runDuration with fps 0 = %q, want 0:59", got)
	}
}

func TestPortOf(t *testing.T) {
	for addr, want := range map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:2200":     "2200",
		"no-port-at-all": "no-port-at-all",
	} {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}
