// Package store is the typed client-side state container: one slice per
// resource family (auth, rooms, bookings), each owning its subtree and
// exposing explicit pending/fulfilled/rejected transitions around the domain
// services. Views read snapshots and dispatch operations; they never mutate
// state directly.
//
// Concurrency model: every slice guards its subtree with its own mutex, and
// the lock is released while a request is in flight, so independent slices
// can have outstanding requests concurrently. Two in-flight instances of the
// same operation resolve last-write-wins; there is no fencing and no
// cancellation beyond the caller's context.
package store

import (
	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/metrics"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
)

// Deps are the collaborators a Store composes.
type Deps struct {
	Auth     ports.AuthService
	Rooms    ports.RoomService
	Bookings ports.BookingService
	Sessions ports.SessionStorage
	Events   *notify.Dispatcher
	Logger   zerolog.Logger
}

// Store is the composition root handed to views by reference. There is no
// ambient global.
type Store struct {
	Auth     *AuthSlice
	Rooms    *RoomSlice
	Bookings *BookingSlice

	events *notify.Dispatcher
	log    zerolog.Logger
}

// New builds the store and restores any persisted session.
func New(deps Deps) *Store {
	events := deps.Events
	if events == nil {
		events = notify.NewDispatcher()
	}
	return &Store{
		Auth:     newAuthSlice(deps.Auth, deps.Sessions, events, deps.Logger),
		Rooms:    newRoomSlice(deps.Rooms, events, deps.Logger),
		Bookings: newBookingSlice(deps.Bookings, events, deps.Logger),
		events:   events,
		log:      deps.Logger,
	}
}

// Events exposes the dispatcher so notification renderers can subscribe.
func (s *Store) Events() *notify.Dispatcher {
	return s.events
}

// HandleUnauthorized is the global 401 reaction, registered as the transport
// client's unauthorized hook: tear the session down and tell the view layer
// to route to sign-in. It fires only once, not again when already signed out.
func (s *Store) HandleUnauthorized() {
	if s.Auth.clearForUnauthorized() {
		metrics.SessionClearsTotal.Inc()
		s.events.SessionExpired("Your session has expired. Please log in again.")
	}
}
