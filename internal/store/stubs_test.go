package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/infrastructure/storage"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// stubAuthService lets each test inject only the calls it exercises.
type stubAuthService struct {
	register func(ports.RegisterInput) (string, error)
	login    func(ports.LoginInput) (*ports.LoginResult, error)
	verify   func(string) (string, error)
	resend   func(string) (string, error)
	forgot   func(string) (string, error)
	reset    func(string, string) (string, error)
	current  func() (*domain.UserProfile, error)
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (string, error) {
	if s.register == nil {
		return "registered", nil
	}
	return s.register(in)
}

func (s *stubAuthService) Login(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if s.login == nil {
		return &ports.LoginResult{}, nil
	}
	return s.login(in)
}

func (s *stubAuthService) VerifyEmail(_ context.Context, token string) (string, error) {
	if s.verify == nil {
		return "verified", nil
	}
	return s.verify(token)
}

func (s *stubAuthService) ResendVerification(_ context.Context, email string) (string, error) {
	if s.resend == nil {
		return "resent", nil
	}
	return s.resend(email)
}

func (s *stubAuthService) ForgotPassword(_ context.Context, email string) (string, error) {
	if s.forgot == nil {
		return "sent", nil
	}
	return s.forgot(email)
}

func (s *stubAuthService) ResetPassword(_ context.Context, token, newPassword string) (string, error) {
	if s.reset == nil {
		return "reset", nil
	}
	return s.reset(token, newPassword)
}

func (s *stubAuthService) CurrentUser(_ context.Context) (*domain.UserProfile, error) {
	if s.current == nil {
		return &domain.UserProfile{}, nil
	}
	return s.current()
}

type stubRoomService struct {
	create func(ports.CreateRoomInput) (*domain.Room, error)
	list   func(domain.RoomFilters) ([]domain.Room, error)
	get    func(string) (*domain.Room, error)
	update func(string, ports.UpdateRoomInput) (*domain.Room, error)
	del    func(string) error
	upload func(string, []transport.Upload) ([]string, error)
}

func (s *stubRoomService) Create(_ context.Context, in ports.CreateRoomInput) (*domain.Room, error) {
	return s.create(in)
}

func (s *stubRoomService) List(_ context.Context, filters domain.RoomFilters) ([]domain.Room, error) {
	return s.list(filters)
}

func (s *stubRoomService) Get(_ context.Context, id string) (*domain.Room, error) {
	return s.get(id)
}

func (s *stubRoomService) Update(_ context.Context, id string, in ports.UpdateRoomInput) (*domain.Room, error) {
	return s.update(id, in)
}

func (s *stubRoomService) Delete(_ context.Context, id string) error {
	return s.del(id)
}

func (s *stubRoomService) UploadImages(_ context.Context, id string, files []transport.Upload) ([]string, error) {
	return s.upload(id, files)
}

type stubBookingService struct {
	create       func(ports.CreateBookingInput) (*domain.Booking, error)
	get          func(string) (*domain.Booking, error)
	list         func() ([]domain.Booking, error)
	updateStatus func(string, domain.BookingStatus) (*domain.Booking, error)
	cancel       func(string) error
}

func (s *stubBookingService) Create(_ context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	return s.create(in)
}

func (s *stubBookingService) Get(_ context.Context, id string) (*domain.Booking, error) {
	return s.get(id)
}

func (s *stubBookingService) ListForUser(_ context.Context) ([]domain.Booking, error) {
	return s.list()
}

func (s *stubBookingService) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	return s.updateStatus(id, status)
}

func (s *stubBookingService) Cancel(_ context.Context, id string) error {
	return s.cancel(id)
}

// newTestStore wires a store with a memory session store (unless the test
// seeds its own) and records every published notification.
func newTestStore(t *testing.T, deps Deps) (*Store, *notify.Recorder) {
	t.Helper()
	if deps.Sessions == nil {
		deps.Sessions = storage.NewMemoryStore()
	}
	rec := &notify.Recorder{}
	events := notify.NewDispatcher()
	events.SubscribeAll(rec.Handle)
	deps.Events = events
	deps.Logger = zerolog.Nop()
	return New(deps), rec
}
