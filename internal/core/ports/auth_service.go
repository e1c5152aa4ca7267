package ports

import (
	"context"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

// RegisterInput carries the sign-up form. FirstName and LastName are joined
// into the single name the API expects; Role defaults to guest.
type RegisterInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Role      string `validate:"omitempty,oneof=guest host"`
}

// LoginInput carries the sign-in credentials.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginResult is the payload of a successful authentication.
type LoginResult struct {
	User        *domain.UserProfile
	AccessToken string
}

// AuthService maps the authentication operations onto the backend API.
type AuthService interface {
	// Register creates an unverified account and returns the server message.
	// It never authenticates the session.
	Register(ctx context.Context, in RegisterInput) (string, error)
	// Login exchanges credentials for a session. A transport-level success
	// whose payload signals an unverified email is returned as an error.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// VerifyEmail redeems an emailed verification token.
	VerifyEmail(ctx context.Context, token string) (string, error)
	// ResendVerification requests a fresh verification email.
	ResendVerification(ctx context.Context, email string) (string, error)
	// ForgotPassword requests a reset link.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// ResetPassword redeems a reset token with the new password.
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	// CurrentUser fetches the profile of the session owner.
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)
}
