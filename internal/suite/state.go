package suite

// State represents the lifecycle phase of a Suite.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons. The String() method provides human-readable
// output for logs and errors.
type State int

const (
	// StateUninitialized is a freshly constructed Suite. No checks are
	// registered and no context exists yet. Reset must be called before
	// any other operation.
	StateUninitialized State = iota

	// StateReset means the context is empty and the check list is open
	// for registration.
	StateReset

	// StateVerified means required inputs have been checked and the
	// suite is ready to run.
	StateVerified

	// StateRunning means checks are being computed. A suite that stays
	// in this state after Run returned hit a computation failure and
	// must be Reset before reuse.
	StateRunning

	// StateComplete means every registered check has a result. The
	// suite is read-only until the next Reset.
	StateComplete
)

// String returns a human-readable representation of the suite state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateReset:
		return "RESET"
	case StateVerified:
		return "VERIFIED"
	case StateRunning:
		return "RUNNING"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}
