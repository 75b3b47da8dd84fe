package domain

import "time"

// Visibility is the access level controlling where a recipe appears.
// The numeric values are part of the API contract (`visibility_id`).
type Visibility int

const (
	// VisibilityPublic recipes appear in public listings.
	VisibilityPublic Visibility = 1
	// VisibilityCommunity recipes are visible to community members.
	VisibilityCommunity Visibility = 2
	// VisibilityPrivate recipes are visible to their author only.
	VisibilityPrivate Visibility = 3
)

// Valid reports whether v is one of the defined visibility levels.
func (v Visibility) Valid() bool {
	return v >= VisibilityPublic && v <= VisibilityPrivate
}

// String returns the visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityCommunity:
		return "community"
	case VisibilityPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Recipe is a user-authored recipe. Recipes are mutable only by their author
// and soft-deleted; every default read filters deleted rows.
type Recipe struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ImageURL      string     `json:"image,omitempty"`
	AuthorID      int64      `json:"author_id"`
	Visibility    Visibility `json:"visibility_id"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	LastUpdatedAt time.Time  `json:"last_updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// OwnerID implements Owned.
func (r *Recipe) OwnerID() int64 {
	return r.AuthorID
}

// State returns the recipe's lifecycle state.
func (r *Recipe) State() State {
	return stateOf(r.DeletedAt)
}

// IsPublic reports whether the recipe appears in public listings.
func (r *Recipe) IsPublic() bool {
	return r.Visibility == VisibilityPublic
}
