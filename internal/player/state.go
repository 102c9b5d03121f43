package player

// State represents the playback state.
type State int

const (
	Idle    State = iota // No track playing
	Playing              // Chained advance in progress
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}
