package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// BookingsState is a point-in-time snapshot of the bookings subtree.
type BookingsState struct {
	Bookings       []domain.Booking
	CurrentBooking *domain.Booking
	IsLoading      bool
	Error          string
	Success        bool
}

// BookingSlice owns the session owner's bookings.
type BookingSlice struct {
	mu     sync.Mutex
	svc    ports.BookingService
	events *notify.Dispatcher
	log    zerolog.Logger

	op             lifecycle
	bookings       []domain.Booking
	currentBooking *domain.Booking
	success        bool
}

func newBookingSlice(svc ports.BookingService, events *notify.Dispatcher, log zerolog.Logger) *BookingSlice {
	return &BookingSlice{svc: svc, events: events, log: log}
}

// State returns a copy of the bookings subtree.
func (s *BookingSlice) State() BookingsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current *domain.Booking
	if s.currentBooking != nil {
		clone := *s.currentBooking
		current = &clone
	}
	return BookingsState{
		Bookings:       append([]domain.Booking(nil), s.bookings...),
		CurrentBooking: current,
		IsLoading:      s.op.loading(),
		Error:          s.op.errMessage(),
		Success:        s.success,
	}
}

// Create reserves a room, appends the server's booking to the collection and
// makes it current.
func (s *BookingSlice) Create(ctx context.Context, in ports.CreateBookingInput) error {
	s.mu.Lock()
	s.op.start()
	s.success = false
	s.mu.Unlock()

	booking, err := s.svc.Create(ctx, in)
	if err != nil {
		msg := transport.Message(err, "Failed to create booking")
		s.mu.Lock()
		s.op.reject(msg)
		s.success = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.bookings = append(s.bookings, *booking)
	s.currentBooking = booking
	s.success = true
	s.mu.Unlock()
	s.events.Success("Booking created successfully!")
	return nil
}

// GetByID loads one booking into the detail view slot.
func (s *BookingSlice) GetByID(ctx context.Context, id string) error {
	s.begin()

	booking, err := s.svc.Get(ctx, id)
	if err != nil {
		msg := transport.Message(err, "Failed to fetch booking details")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.currentBooking = booking
	s.mu.Unlock()
	return nil
}

// ListForUser replaces the whole collection with the server's result. No
// merge, no pagination cursor.
func (s *BookingSlice) ListForUser(ctx context.Context) error {
	s.begin()

	bookings, err := s.svc.ListForUser(ctx)
	if err != nil {
		msg := transport.Message(err, "Failed to fetch bookings")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.bookings = bookings
	s.mu.Unlock()
	return nil
}

// UpdateStatus replaces the matching element by id; the detail view slot is
// refreshed only when it holds the same booking.
func (s *BookingSlice) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	s.begin()

	booking, err := s.svc.UpdateStatus(ctx, id, status)
	if err != nil {
		msg := transport.Message(err, "Failed to update booking status")
		s.mu.Lock()
		s.op.reject(msg)
		s.success = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	for i := range s.bookings {
		if s.bookings[i].ID == booking.ID {
			s.bookings[i] = *booking
			break
		}
	}
	if s.currentBooking != nil && s.currentBooking.ID == booking.ID {
		s.currentBooking = booking
	}
	s.success = true
	s.mu.Unlock()
	s.events.Success(fmt.Sprintf("Booking %s successfully!", status))
	return nil
}

// Cancel removes the matching element and empties the detail view slot
// regardless of which booking it held.
func (s *BookingSlice) Cancel(ctx context.Context, id string) error {
	s.begin()

	if err := s.svc.Cancel(ctx, id); err != nil {
		msg := transport.Message(err, "Failed to cancel booking")
		s.mu.Lock()
		s.op.reject(msg)
		s.success = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.bookings = kept
	s.currentBooking = nil
	s.success = true
	s.mu.Unlock()
	s.events.Success("Booking cancelled successfully!")
	return nil
}

// ClearError drops the stored error message.
func (s *BookingSlice) ClearError() {
	s.mu.Lock()
	s.op.clearError()
	s.mu.Unlock()
}

// ClearSuccess resets the post-action navigation flag.
func (s *BookingSlice) ClearSuccess() {
	s.mu.Lock()
	s.success = false
	s.mu.Unlock()
}

// ClearCurrentBooking empties the detail view slot.
func (s *BookingSlice) ClearCurrentBooking() {
	s.mu.Lock()
	s.currentBooking = nil
	s.mu.Unlock()
}

func (s *BookingSlice) begin() {
	s.mu.Lock()
	s.op.start()
	s.mu.Unlock()
}

func (s *BookingSlice) reject(msg string) {
	s.mu.Lock()
	s.op.reject(msg)
	s.mu.Unlock()
}
