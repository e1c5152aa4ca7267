package ports

import (
	"context"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
)

// CreateBookingInput is the reservation form. Dates are ISO-8601 day strings
// as the API expects them.
type CreateBookingInput struct {
	RoomID       string  `json:"roomId"       validate:"required"`
	CheckInDate  string  `json:"checkInDate"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	TotalPrice   float64 `json:"totalPrice"   validate:"gt=0"`
}

// BookingService maps the booking operations onto the backend API.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	// ListForUser returns every booking of the session owner.
	ListForUser(ctx context.Context) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) error
}
