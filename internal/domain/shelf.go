package domain

import "time"

// Shelf is a user-curated list of recipes for personal organization.
// Each shelf belongs to one user; the label is unique per user among live
// shelves, so a label can be reused after its shelf is soft-deleted.
type Shelf struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Label     string     `json:"label"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// OwnerID implements Owned.
func (s *Shelf) OwnerID() int64 {
	return s.UserID
}

// State returns the shelf's lifecycle state.
func (s *Shelf) State() State {
	return stateOf(s.DeletedAt)
}
