package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames advanced per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary a game reports to the platform after every frame.
type GameState struct {
	Score    int    // Obstacles avoided, minus penalties
	Shards   int    // Crystals collected
	Stage    string // Current Rift stage name
	Frames   int    // Frames simulated in this run
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each frame.
// Events are in the order they happened during the frame.
type StepResult struct {
	State  GameState
	Events []Event
}
