package domain

import "time"

// State is the lifecycle state of an entity record.
//
// Recipes, shelves, and users are soft-deleted: the row is retained with a
// deletion timestamp and excluded from default reads. Profiles, tags,
// communities, and association rows are hard-deleted. Both paths are terminal;
// there is no un-delete.
type State uint8

const (
	// StateActive is a live record visible to default reads.
	StateActive State = iota
	// StateSoftDeleted is a retained row with DeletedAt set.
	StateSoftDeleted
	// StateRemoved is a physically deleted row. A record in this state no
	// longer exists in the store; the value is used when reporting the
	// outcome of a hard delete.
	StateRemoved
)

// String returns the lifecycle state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSoftDeleted:
		return "soft_deleted"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// stateOf derives the lifecycle state for a soft-deletable record.
func stateOf(deletedAt *time.Time) State {
	if deletedAt != nil {
		return StateSoftDeleted
	}
	return StateActive
}
