package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// AuthState is a point-in-time snapshot of the auth subtree.
type AuthState struct {
	User          *domain.UserProfile
	Token         string
	Authenticated bool
	IsLoading     bool
	Error         string

	EmailVerificationSent bool
	EmailVerified         bool
	PasswordResetSent     bool
	PasswordResetSuccess  bool
}

// AuthSlice owns the session and the transient auth flow flags.
type AuthSlice struct {
	mu       sync.Mutex
	svc      ports.AuthService
	sessions ports.SessionStorage
	events   *notify.Dispatcher
	log      zerolog.Logger

	op            lifecycle
	user          *domain.UserProfile
	token         string
	authenticated bool

	emailVerificationSent bool
	emailVerified         bool
	passwordResetSent     bool
	passwordResetSuccess  bool
}

func newAuthSlice(svc ports.AuthService, sessions ports.SessionStorage, events *notify.Dispatcher, log zerolog.Logger) *AuthSlice {
	s := &AuthSlice{svc: svc, sessions: sessions, events: events, log: log}
	s.restore()
	return s
}

// restore loads the persisted session. The slice only comes up authenticated
// when both token and profile are present, and an expired JWT is discarded
// rather than replayed into requests.
func (s *AuthSlice) restore() {
	token, ok := s.sessions.Token()
	if !ok {
		return
	}
	if tokenExpired(token, time.Now()) {
		s.log.Info().Msg("stored access token has expired, clearing session")
		if err := s.sessions.Clear(); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear expired session")
		}
		return
	}
	user, _ := s.sessions.User()
	s.user = user
	s.token = token
	s.authenticated = user != nil
}

// State returns a copy of the auth subtree.
func (s *AuthSlice) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AuthState{
		User:                  s.user.Clone(),
		Token:                 s.token,
		Authenticated:         s.authenticated,
		IsLoading:             s.op.loading(),
		Error:                 s.op.errMessage(),
		EmailVerificationSent: s.emailVerificationSent,
		EmailVerified:         s.emailVerified,
		PasswordResetSent:     s.passwordResetSent,
		PasswordResetSuccess:  s.passwordResetSuccess,
	}
}

// Session returns the current identity pair as a domain session.
func (s *AuthSlice) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Session{User: s.user.Clone(), AccessToken: s.token}
}

// Register submits a sign-up. Success only means a verification email went
// out; the session stays unauthenticated until login.
func (s *AuthSlice) Register(ctx context.Context, in ports.RegisterInput) error {
	s.begin()

	_, err := s.svc.Register(ctx, in)
	if err != nil {
		msg := transport.Message(err, "Registration failed")
		s.mu.Lock()
		s.op.reject(msg)
		s.authenticated = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.emailVerificationSent = true
	s.mu.Unlock()
	s.events.Success("Check your email to verify your account.")
	return nil
}

// Login authenticates and persists the session. An unverified-email answer
// rejects even when the transport call succeeded.
func (s *AuthSlice) Login(ctx context.Context, in ports.LoginInput) error {
	s.begin()

	res, err := s.svc.Login(ctx, in)
	if err != nil {
		msg := transport.Message(err, "Login failed")
		s.mu.Lock()
		s.op.reject(msg)
		s.authenticated = false
		s.mu.Unlock()
		if strings.Contains(msg, "verify") || strings.Contains(msg, "verification") {
			s.events.Error("Please verify your email before logging in.")
		} else {
			s.events.Error(msg)
		}
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.user = res.User.Clone()
	s.token = res.AccessToken
	s.authenticated = res.User != nil && res.AccessToken != ""
	s.mu.Unlock()

	if err := s.sessions.SaveSession(res.AccessToken, res.User); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
	s.events.Success("Login successful!")
	return nil
}

// VerifyEmail redeems an emailed verification token. It does not by itself
// authenticate.
func (s *AuthSlice) VerifyEmail(ctx context.Context, token string) error {
	s.begin()

	_, err := s.svc.VerifyEmail(ctx, token)
	if err != nil {
		msg := transport.Message(err, "Email verification failed")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.emailVerified = true
	s.mu.Unlock()
	s.events.Success("Email verified successfully! You can now log in.")
	return nil
}

// ResendVerification requests a fresh verification email. No state beyond
// the lifecycle changes.
func (s *AuthSlice) ResendVerification(ctx context.Context, email string) error {
	s.begin()

	_, err := s.svc.ResendVerification(ctx, email)
	if err != nil {
		msg := transport.Message(err, "Failed to resend verification email")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.mu.Unlock()
	s.events.Success("Verification email resent.")
	return nil
}

// ForgotPassword requests a reset link.
func (s *AuthSlice) ForgotPassword(ctx context.Context, email string) error {
	s.mu.Lock()
	s.op.start()
	s.passwordResetSent = false
	s.mu.Unlock()

	_, err := s.svc.ForgotPassword(ctx, email)
	if err != nil {
		msg := transport.Message(err, "Failed to send reset link")
		s.mu.Lock()
		s.op.reject(msg)
		s.passwordResetSent = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.passwordResetSent = true
	s.mu.Unlock()
	s.events.Success("Reset link sent to your email.")
	return nil
}

// ResetPassword redeems a reset token with the new password.
func (s *AuthSlice) ResetPassword(ctx context.Context, token, newPassword string) error {
	s.mu.Lock()
	s.op.start()
	s.passwordResetSuccess = false
	s.mu.Unlock()

	_, err := s.svc.ResetPassword(ctx, token, newPassword)
	if err != nil {
		msg := transport.Message(err, "Failed to reset password")
		s.mu.Lock()
		s.op.reject(msg)
		s.passwordResetSuccess = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.passwordResetSuccess = true
	s.mu.Unlock()
	s.events.Success("Password updated successfully!")
	return nil
}

// GetCurrentUser refreshes the profile only. It never touches the lifecycle
// flags or the authenticated bit, and failures leave the slice untouched.
func (s *AuthSlice) GetCurrentUser(ctx context.Context) error {
	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user.Clone()
	s.mu.Unlock()

	if err := s.sessions.SaveUser(user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist refreshed profile")
	}
	return nil
}

// Logout clears the session, all transient flags, and durable storage. It
// always succeeds from the caller's point of view; persistence failures are
// logged and swallowed.
func (s *AuthSlice) Logout() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear durable session")
	}
	s.events.Success("Logged out successfully")
}

// ClearError drops the stored error message.
func (s *AuthSlice) ClearError() {
	s.mu.Lock()
	s.op.clearError()
	s.mu.Unlock()
}

// SetCredentials installs a session directly (e.g. restored by an embedder)
// and persists it.
func (s *AuthSlice) SetCredentials(user *domain.UserProfile, token string) {
	s.mu.Lock()
	s.user = user.Clone()
	s.token = token
	s.authenticated = user != nil && token != ""
	s.mu.Unlock()

	if err := s.sessions.SaveSession(token, user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}

// ClearCredentials drops the session and flags without the logout toast.
func (s *AuthSlice) ClearCredentials() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear durable session")
	}
}

// SetEmailVerificationSent overrides the flag (used by views that arrive on
// the verification screen out of band).
func (s *AuthSlice) SetEmailVerificationSent(v bool) {
	s.mu.Lock()
	s.emailVerificationSent = v
	s.mu.Unlock()
}

// clearForUnauthorized tears the session down after a 401 and reports
// whether there was a session to tear down.
func (s *AuthSlice) clearForUnauthorized() bool {
	s.mu.Lock()
	was := s.authenticated
	s.resetLocked()
	s.mu.Unlock()

	if err := s.sessions.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear durable session")
	}
	return was
}

func (s *AuthSlice) begin() {
	s.mu.Lock()
	s.op.start()
	s.mu.Unlock()
}

func (s *AuthSlice) reject(msg string) {
	s.mu.Lock()
	s.op.reject(msg)
	s.mu.Unlock()
}

// resetLocked zeroes the session and every transient flag. Callers hold mu.
func (s *AuthSlice) resetLocked() {
	s.op = lifecycle{}
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.emailVerificationSent = false
	s.emailVerified = false
	s.passwordResetSent = false
	s.passwordResetSuccess = false
}

// tokenExpired reports whether raw is a JWT whose expiry has passed. Opaque
// tokens and JWTs without an exp claim are never considered expired.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
