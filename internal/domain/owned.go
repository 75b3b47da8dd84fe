package domain

import "github.com/platefulapp/plateful-server/internal/errors"

// Owned is implemented by resources with a single owning user.
// Recipes are owned by their author, shelves by their user, communities by
// their admin.
type Owned interface {
	OwnerID() int64
}

// RequireOwner verifies that the principal owns the resource.
// Callers must fetch the resource fresh from the store before checking;
// ownership is never trusted from a request body. Returns Forbidden when the
// principal is not the owner.
func RequireOwner(principalID int64, resource Owned) error {
	if resource.OwnerID() != principalID {
		return errors.Forbidden("you do not have permission to access this resource")
	}
	return nil
}
