package domain

import "time"

// Community is an admin-managed group for recipes. Community names are
// globally unique. Communities are hard-deleted by their admin.
type Community struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Image         string    `json:"image,omitempty"`
	AdminID       int64     `json:"admin_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// OwnerID implements Owned.
func (c *Community) OwnerID() int64 {
	return c.AdminID
}
