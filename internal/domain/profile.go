package domain

// Profile holds a user's public-facing profile text. At most one profile
// exists per user. Profiles are created explicitly after first login and are
// hard-deleted by their owner.
type Profile struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Bio    string `json:"bio,omitempty"`
}

// OwnerID implements Owned.
func (p *Profile) OwnerID() int64 {
	return p.UserID
}
