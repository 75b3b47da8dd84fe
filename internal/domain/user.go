package domain

import "time"

// User represents an account in the system. Accounts are created on first
// federated sign-in or explicit registration and are soft-deleted, never
// physically removed.
type User struct {
	ID         int64      `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"` // unique, matched case-sensitively
	ExternalID string     `json:"external_id,omitempty"` // identity from federated login
	AvatarURL  string     `json:"avatar_url,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// State returns the user's lifecycle state.
func (u *User) State() State {
	return stateOf(u.DeletedAt)
}

// FullName returns the user's full name composed from first and last names.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Session represents an active refresh-token session for a user.
// The refresh token itself is never stored, only its hash.
type Session struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
}

// IsExpired checks if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch updates the session's last seen timestamp.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}
