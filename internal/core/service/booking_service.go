package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// BookingService implements ports.BookingService against the REST backend.
type BookingService struct {
	client *transport.Client
	log    zerolog.Logger
}

func NewBookingService(client *transport.Client, log zerolog.Logger) *BookingService {
	return &BookingService{client: client, log: log}
}

func (s *BookingService) Create(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var booking domain.Booking
	if err := s.client.JSON(ctx, http.MethodPost, "/bookings", in, &booking); err != nil {
		return nil, err
	}
	s.log.Info().Str("booking_id", booking.ID).Str("room_id", in.RoomID).Msg("booking created")
	return &booking, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := s.client.JSON(ctx, http.MethodGet, "/bookings/"+id, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := s.client.JSON(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, &transport.APIError{
			Kind:    transport.KindValidation,
			Message: "status must be one of: pending confirmed cancelled",
		}
	}
	payload := map[string]string{"status": string(status)}
	var booking domain.Booking
	if err := s.client.JSON(ctx, http.MethodPut, "/bookings/"+id, payload, &booking); err != nil {
		return nil, err
	}
	s.log.Info().Str("booking_id", id).Str("status", string(status)).Msg("booking status updated")
	return &booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) error {
	if err := s.client.JSON(ctx, http.MethodDelete, "/bookings/"+id, nil, nil); err != nil {
		return err
	}
	s.log.Info().Str("booking_id", id).Msg("booking cancelled")
	return nil
}
