package ports

import (
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

// SessionStorage is the durable client-side store for the current session.
// Two keys exist: the opaque access token and the serialised user profile.
// Mutation happens only on discrete auth transitions (login fulfilled,
// profile refresh, logout, forced teardown), never concurrently.
type SessionStorage interface {
	// SaveSession persists token and user together (login fulfilled).
	SaveSession(token string, user *domain.UserProfile) error
	// SaveUser replaces only the stored profile (profile refresh).
	SaveUser(user *domain.UserProfile) error
	// Token returns the stored access token, if any.
	Token() (string, bool)
	// User returns the stored profile, if any.
	User() (*domain.UserProfile, bool)
	// Clear removes both keys. Clearing an empty store is a no-op.
	Clear() error
}
