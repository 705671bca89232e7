package workflows

// StateMachine enforces entity status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from a transition table. Keys are
// source statuses, values the statuses reachable from them; a status with no
// entry (or an empty list) is terminal.
func NewStateMachine(transitions map[string][]string) *StateMachine {
	return &StateMachine{allowedTransitions: transitions}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
