package auth

import "github.com/Malek-bh/agrical-api/internal/models"

// CanModify is the single ownership rule for user-owned resources:
// the owner may modify, and admins override. Every mutating handler on
// posts, comments and services goes through this predicate.
func CanModify(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || user.ID == ownerID
}
