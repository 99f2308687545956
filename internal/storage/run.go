package storage

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/echorift/internal/core"
)

// NewRun builds a run record from the final game state with a fresh run ID.
func NewRun(variant, sessionID string, st core.GameState) Run {
	return Run{
		RunID:     uuid.NewString(),
		SessionID: sessionID,
		Variant:   variant,
		Score:     st.Score,
		Shards:    st.Shards,
		Stage:     st.Stage,
		Frames:    st.Frames,
	}
}

// Recorder saves each finished run exactly once.
type Recorder struct {
	store     *Store
	sessionID string
	saved     bool
}

// NewRecorder creates a recorder. A nil store records nothing.
func NewRecorder(store *Store, sessionID string) *Recorder {
	return &Recorder{store: store, sessionID: sessionID}
}

// Observe saves the run the first time st reports game over.
// It returns the saved run, or nil when nothing was written.
func (r *Recorder) Observe(variant string, st core.GameState) (*Run, error) {
	if !st.GameOver || r.saved {
		return nil, nil
	}
	r.saved = true
	if r.store == nil || st.Frames == 0 {
		return nil, nil
	}

	run := NewRun(variant, r.sessionID, st)
	id, err := r.store.SaveRun(run)
	if err != nil {
		return nil, err
	}
	run.ID = id
	return &run, nil
}

// Rearm allows the next game over to be saved, after a restart.
func (r *Recorder) Rearm() {
	r.saved = false
}
