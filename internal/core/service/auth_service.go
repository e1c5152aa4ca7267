package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// unverifiedLoginMessage is what callers see when the backend answers a login
// with a transport-level success but an unverified account.
const unverifiedLoginMessage = "Please verify your email before logging in."

// AuthService implements ports.AuthService against the REST backend.
type AuthService struct {
	client *transport.Client
	log    zerolog.Logger
}

func NewAuthService(client *transport.Client, log zerolog.Logger) *AuthService {
	return &AuthService{client: client, log: log}
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	User        *domain.UserProfile `json:"user"`
	AccessToken string              `json:"access_token"`
	Message     string              `json:"message"`
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleGuest
	}
	payload := map[string]string{
		"name":     strings.TrimSpace(in.FirstName + " " + in.LastName),
		"email":    in.Email,
		"password": in.Password,
		"role":     role,
	}

	var resp messageResponse
	if err := s.client.JSON(ctx, http.MethodPost, "/auth/register", payload, &resp); err != nil {
		return "", err
	}
	s.log.Info().Str("email", in.Email).Str("role", role).Msg("registration submitted")
	return resp.Message, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	payload := map[string]string{"email": in.Email, "password": in.Password}

	var resp loginResponse
	if err := s.client.JSON(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return nil, err
	}

	// Business-rule override: the backend signals an unverified account
	// through the message of an otherwise successful response.
	if strings.Contains(resp.Message, "verify your email") {
		return nil, &transport.APIError{
			Kind:    transport.KindBusinessRule,
			Status:  http.StatusOK,
			Message: unverifiedLoginMessage,
		}
	}

	s.log.Info().Str("email", in.Email).Msg("login succeeded")
	return &ports.LoginResult{User: resp.User, AccessToken: resp.AccessToken}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	var resp messageResponse
	path := "/auth/verify-email?token=" + url.QueryEscape(token)
	if err := s.client.JSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	payload := map[string]string{"email": email}
	if err := s.client.JSON(ctx, http.MethodPost, "/auth/resend-verification", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	payload := map[string]string{"email": email}
	if err := s.client.JSON(ctx, http.MethodPost, "/auth/forgot-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var resp messageResponse
	payload := map[string]string{"token": token, "newPassword": newPassword}
	if err := s.client.JSON(ctx, http.MethodPost, "/auth/reset-password", payload, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := s.client.JSON(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
