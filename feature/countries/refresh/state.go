package refresh

import "fmt"

// State is a step of one refresh run.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateReconciling
	StatePersisting
	StateSummarizing
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:        "idle",
	StateFetching:    "fetching",
	StateReconciling: "reconciling",
	StatePersisting:  "persisting",
	StateSummarizing: "summarizing",
	StateDone:        "done",
	StateFailed:      "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// transitions lists the legal successors of each state. Reconciling and
// Summarizing have no path to Failed.
var transitions = map[State][]State{
	StateIdle:        {StateFetching},
	StateFetching:    {StateReconciling, StateFailed},
	StateReconciling: {StatePersisting},
	StatePersisting:  {StateSummarizing, StateFailed},
	StateSummarizing: {StateDone},
}

// CanTransition reports whether a run may move from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
