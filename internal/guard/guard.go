// Package guard decides whether an identity may touch a resource.
package guard

import (
	"inkblog/internal/apperr"
	"inkblog/internal/models"
)

// Resource permits access only when identity owns the resource. A mismatch
// reports NotFound so callers cannot probe for other users' posts.
func Resource(identity *models.Identity, ownerID string) error {
	if identity == nil || identity.UserID == "" {
		return apperr.Unauthenticated()
	}
	if identity.UserID != ownerID {
		return apperr.New(apperr.KindNotFound, "Blog not found")
	}
	return nil
}

// Self permits account-level operations only on the caller's own account.
func Self(identity *models.Identity, userID string) error {
	if identity == nil || identity.UserID == "" {
		return apperr.Unauthenticated()
	}
	if identity.UserID != userID {
		return apperr.New(apperr.KindUnauthorized, "Forbidden")
	}
	return nil
}

// Require reports Unauthenticated when no identity was resolved.
func Require(identity *models.Identity) error {
	if identity == nil || identity.UserID == "" {
		return apperr.Unauthenticated()
	}
	return nil
}
