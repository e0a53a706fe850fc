package domain

// State is the request lifecycle state of a single view.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

func (s State) String() string { return string(s) }

func (s State) IsValid() bool {
	switch s {
	case StateIdle, StatePending, StateSucceeded, StateFailed:
		return true
	}
	return false
}

// CanSubmit reports whether a new request may start from this state.
func (s State) CanSubmit() bool {
	return s != StatePending
}
