package lifecycle

import (
	"github.com/polder-ide/lahost/src/lahost/entity"
)

// Action is the reconciler's verdict on a workspace topology change.
type Action int

const (
	// ActionNone means the running server, if any, can keep serving.
	ActionNone Action = iota
	// ActionRestart means the server must be replaced to pick up the new
	// topology.
	ActionRestart
	// ActionStop means the server has nothing left to analyze.
	ActionStop
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRestart:
		return "restart"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Reconcile decides what to do with the server when the workspace moves from
// prev to next. A stopped server is never started here; the new topology is
// simply recorded and used on the next explicit start.
func Reconcile(prev, next entity.Workspace, running bool) Action {
	if !running {
		return ActionNone
	}
	if next.Kind == entity.WorkspaceEmpty {
		return ActionStop
	}
	if prev.Equal(next) {
		return ActionNone
	}
	return ActionRestart
}
