package auth

import "github.com/todoapp/todo-api/internal/core/domain"

// OwnerOnly permits access iff the identity owns the resource.
func OwnerOnly(id domain.Identity, ownerID uint64) error {
	if id.UserID == 0 || id.UserID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly permits access iff the identity carries the admin role.
func AdminOnly(id domain.Identity) error {
	if !id.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
