package domain

const (
	RoleGuest = "guest"
	RoleHost  = "host"
)

// UserProfile models the signed-in marketplace user. Immutable once fetched
// except via an explicit profile refresh.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Clone returns an independent copy, nil-safe.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Session holds the authenticated identity and access token for the current
// user.
type Session struct {
	User        *UserProfile `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Authenticated reports whether the session carries both a user profile and
// an access token. Either one alone is not enough.
func (s Session) Authenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

// ValidRole reports whether role is one of the recognised marketplace roles.
func ValidRole(role string) bool {
	return role == RoleGuest || role == RoleHost
}
