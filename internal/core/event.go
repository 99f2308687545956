package core

// EventKind identifies a discrete simulation event.
type EventKind int

const (
	EventNone EventKind = iota
	EventObstacleAvoided
	EventShardCollected
	EventStageAdvanced
	EventShieldConsumed
	EventGameOver
	EventShieldGranted
	EventShieldLost
	EventShieldExpired
	EventFocusStarted
	EventFocusEnded
	EventDashStarted
	EventStory
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventObstacleAvoided:
		return "obstacle-avoided"
	case EventShardCollected:
		return "shard-collected"
	case EventStageAdvanced:
		return "stage-advanced"
	case EventShieldConsumed:
		return "shield-consumed"
	case EventGameOver:
		return "game-over"
	case EventShieldGranted:
		return "shield-granted"
	case EventShieldLost:
		return "shield-lost"
	case EventShieldExpired:
		return "shield-expired"
	case EventFocusStarted:
		return "focus-started"
	case EventFocusEnded:
		return "focus-ended"
	case EventDashStarted:
		return "dash-started"
	case EventStory:
		return "story"
	default:
		return "unknown"
	}
}

// Event is a single entry of the per-frame event stream.
// Counters are captured after the event was applied.
type Event struct {
	Kind   EventKind
	Frame  int
	Score  int
	Shards int
	Stage  int
	Text   string // Stage name for stage-advanced, fragment for story
}

// CountEvents returns how many events of the given kind are in the slice.
func CountEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
