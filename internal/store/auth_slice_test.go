package store

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/infrastructure/storage"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestStoreRestoresPersistedSession(t *testing.T) {
	sessions := storage.NewMemoryStore()
	user := &domain.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleGuest}
	require.NoError(t, sessions.SaveSession("opaque-token", user))

	st, _ := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})

	state := st.Auth.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "opaque-token", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
}

func TestStoreRestoreDiscardsExpiredToken(t *testing.T) {
	sessions := storage.NewMemoryStore()
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, sessions.SaveSession(expired, &domain.UserProfile{ID: "u1"}))

	st, _ := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})

	state := st.Auth.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Token)
	assert.Nil(t, state.User)

	_, ok := sessions.Token()
	assert.False(t, ok, "expired token should be purged from storage")
}

func TestStoreRestoreKeepsUnexpiredJWT(t *testing.T) {
	sessions := storage.NewMemoryStore()
	valid := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, sessions.SaveSession(valid, &domain.UserProfile{ID: "u1"}))

	st, _ := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})
	assert.True(t, st.Auth.State().Authenticated)
}

func TestStoreRestoreTokenWithoutUser(t *testing.T) {
	sessions := storage.NewMemoryStore()
	require.NoError(t, sessions.SaveSession("opaque-token", nil))

	st, _ := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})

	state := st.Auth.State()
	assert.False(t, state.Authenticated, "token alone must not authenticate")
	assert.Equal(t, "opaque-token", state.Token)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Minute)), now))
	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Minute)), now))
	assert.False(t, tokenExpired("opaque-session-token", now), "opaque tokens never expire client-side")
}

func TestRegisterSetsVerificationSentOnly(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{
		register: func(in ports.RegisterInput) (string, error) {
			return "Registered. Check your email.", nil
		},
	}})

	err := st.Auth.Register(context.Background(), ports.RegisterInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	state := st.Auth.State()
	assert.True(t, state.EmailVerificationSent)
	assert.False(t, state.Authenticated, "registration never signs the user in")
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
	assert.Equal(t, "Check your email to verify your account.", rec.Last().Message)
	assert.Equal(t, notify.LevelSuccess, rec.Last().Level)
}

func TestRegisterRejected(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{
		register: func(ports.RegisterInput) (string, error) {
			return "", &transport.APIError{Kind: transport.KindValidation, Status: 400, Message: "email already registered"}
		},
	}})

	err := st.Auth.Register(context.Background(), ports.RegisterInput{Email: "ada@example.com"})
	require.Error(t, err)

	state := st.Auth.State()
	assert.False(t, state.Authenticated)
	assert.False(t, state.EmailVerificationSent)
	assert.Equal(t, "email already registered", state.Error)
	assert.Equal(t, notify.LevelError, rec.Last().Level)
	assert.Equal(t, "email already registered", rec.Last().Message)
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	sessions := storage.NewMemoryStore()
	user := &domain.UserProfile{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleHost}
	st, rec := newTestStore(t, Deps{
		Auth: &stubAuthService{
			login: func(in ports.LoginInput) (*ports.LoginResult, error) {
				return &ports.LoginResult{User: user, AccessToken: "jwt-abc"}, nil
			},
		},
		Sessions: sessions,
	})

	err := st.Auth.Login(context.Background(), ports.LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	state := st.Auth.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "jwt-abc", state.Token)
	require.NotNil(t, state.User)
	assert.Equal(t, domain.RoleHost, state.User.Role)
	assert.True(t, st.Auth.Session().Authenticated())

	storedToken, ok := sessions.Token()
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", storedToken)
	storedUser, ok := sessions.User()
	require.True(t, ok)
	assert.Equal(t, "u1", storedUser.ID)

	assert.Equal(t, "Login successful!", rec.Last().Message)
}

func TestLoginInvalidCredentials(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{
		login: func(ports.LoginInput) (*ports.LoginResult, error) {
			return nil, &transport.APIError{Kind: transport.KindUnauthorized, Status: 401, Message: "Invalid credentials"}
		},
	}})

	err := st.Auth.Login(context.Background(), ports.LoginInput{Email: "ada@example.com", Password: "wrong1"})
	require.Error(t, err)

	state := st.Auth.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Token)
	assert.Equal(t, "Invalid credentials", state.Error)
	assert.Equal(t, "Invalid credentials", rec.Last().Message)
}

func TestLoginUnverifiedEmailToast(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{
		login: func(ports.LoginInput) (*ports.LoginResult, error) {
			return nil, &transport.APIError{Kind: transport.KindBusinessRule, Status: 200, Message: "Please verify your email before logging in."}
		},
	}})

	err := st.Auth.Login(context.Background(), ports.LoginInput{Email: "ada@example.com", Password: "secret1"})
	require.Error(t, err)

	assert.Equal(t, "Please verify your email before logging in.", rec.Last().Message)
	assert.False(t, st.Auth.State().Authenticated)
}

func TestVerifyEmail(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{}})

	require.NoError(t, st.Auth.VerifyEmail(context.Background(), "tok"))

	state := st.Auth.State()
	assert.True(t, state.EmailVerified)
	assert.False(t, state.Authenticated, "verification does not authenticate")
	assert.Equal(t, "Email verified successfully! You can now log in.", rec.Last().Message)
}

func TestForgotAndResetPasswordFlags(t *testing.T) {
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{}})

	require.NoError(t, st.Auth.ForgotPassword(context.Background(), "ada@example.com"))
	assert.True(t, st.Auth.State().PasswordResetSent)
	assert.Equal(t, "Reset link sent to your email.", rec.Last().Message)

	require.NoError(t, st.Auth.ResetPassword(context.Background(), "tok", "newsecret"))
	assert.True(t, st.Auth.State().PasswordResetSuccess)
	assert.Equal(t, "Password updated successfully!", rec.Last().Message)
}

func TestGetCurrentUserRefreshesProfileOnly(t *testing.T) {
	sessions := storage.NewMemoryStore()
	require.NoError(t, sessions.SaveSession("opaque-token", &domain.UserProfile{ID: "u1", Name: "Ada"}))

	st, rec := newTestStore(t, Deps{
		Auth: &stubAuthService{
			current: func() (*domain.UserProfile, error) {
				return &domain.UserProfile{ID: "u1", Name: "Ada L.", Email: "ada@example.com", Role: domain.RoleGuest}, nil
			},
		},
		Sessions: sessions,
	})

	require.NoError(t, st.Auth.GetCurrentUser(context.Background()))

	state := st.Auth.State()
	assert.Equal(t, "Ada L.", state.User.Name)
	assert.True(t, state.Authenticated)
	assert.False(t, state.IsLoading, "profile refresh must not toggle the loading flag")
	assert.Empty(t, state.Error)
	assert.Empty(t, rec.Events(), "profile refresh is silent")

	stored, ok := sessions.User()
	require.True(t, ok)
	assert.Equal(t, "Ada L.", stored.Name)
}

func TestLogoutClearsEverything(t *testing.T) {
	sessions := storage.NewMemoryStore()
	require.NoError(t, sessions.SaveSession("opaque-token", &domain.UserProfile{ID: "u1"}))

	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})
	require.True(t, st.Auth.State().Authenticated)

	st.Auth.Logout()

	state := st.Auth.State()
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)
	assert.False(t, state.EmailVerificationSent)

	_, ok := sessions.Token()
	assert.False(t, ok)
	assert.Equal(t, "Logged out successfully", rec.Last().Message)
	assert.Equal(t, notify.LevelSuccess, rec.Last().Level)
}

func TestHandleUnauthorizedFiresOnce(t *testing.T) {
	sessions := storage.NewMemoryStore()
	require.NoError(t, sessions.SaveSession("opaque-token", &domain.UserProfile{ID: "u1"}))

	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})

	st.HandleUnauthorized()
	st.HandleUnauthorized()

	events := rec.Events()
	require.Len(t, events, 1, "already signed out: no second session-expired event")
	assert.Equal(t, notify.TypeSessionExpired, events[0].Type)
	assert.Equal(t, "Your session has expired. Please log in again.", events[0].Message)
	assert.False(t, st.Auth.State().Authenticated)
	_, ok := sessions.Token()
	assert.False(t, ok)
}

func TestSetAndClearCredentials(t *testing.T) {
	sessions := storage.NewMemoryStore()
	st, rec := newTestStore(t, Deps{Auth: &stubAuthService{}, Sessions: sessions})

	st.Auth.SetCredentials(&domain.UserProfile{ID: "u2"}, "tok-2")
	assert.True(t, st.Auth.State().Authenticated)
	storedToken, ok := sessions.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-2", storedToken)

	st.Auth.ClearCredentials()
	assert.False(t, st.Auth.State().Authenticated)
	_, ok = sessions.Token()
	assert.False(t, ok)
	assert.Empty(t, rec.Events(), "credential management is silent")
}
