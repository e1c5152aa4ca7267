package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/notify"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// RoomsState is a point-in-time snapshot of the catalog subtree.
type RoomsState struct {
	Rooms       []domain.Room
	CurrentRoom *domain.Room
	IsLoading   bool
	Error       string
	Success     bool
}

// RoomSlice owns the room catalog: the listing collection plus the room
// currently in detail view.
type RoomSlice struct {
	mu     sync.Mutex
	svc    ports.RoomService
	events *notify.Dispatcher
	log    zerolog.Logger

	op          lifecycle
	rooms       []domain.Room
	currentRoom *domain.Room
	success     bool
}

func newRoomSlice(svc ports.RoomService, events *notify.Dispatcher, log zerolog.Logger) *RoomSlice {
	return &RoomSlice{svc: svc, events: events, log: log}
}

// State returns a copy of the catalog subtree.
func (s *RoomSlice) State() RoomsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current *domain.Room
	if s.currentRoom != nil {
		clone := *s.currentRoom
		current = &clone
	}
	return RoomsState{
		Rooms:       append([]domain.Room(nil), s.rooms...),
		CurrentRoom: current,
		IsLoading:   s.op.loading(),
		Error:       s.op.errMessage(),
		Success:     s.success,
	}
}

// Create submits a new listing and appends the server's representation to
// the collection, never a locally fabricated one.
func (s *RoomSlice) Create(ctx context.Context, in ports.CreateRoomInput) error {
	s.mu.Lock()
	s.op.start()
	s.success = false
	s.mu.Unlock()

	room, err := s.svc.Create(ctx, in)
	if err != nil {
		msg := transport.Message(err, "Failed to create room")
		s.mu.Lock()
		s.op.reject(msg)
		s.success = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.rooms = append(s.rooms, *room)
	s.success = true
	s.mu.Unlock()
	s.events.Success("Room created successfully!")
	return nil
}

// List replaces the collection with the server's filtered result. No merge:
// whatever was held before is gone.
func (s *RoomSlice) List(ctx context.Context, filters domain.RoomFilters) error {
	s.begin()

	rooms, err := s.svc.List(ctx, filters)
	if err != nil {
		msg := transport.Message(err, "Failed to fetch rooms")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.rooms = rooms
	s.mu.Unlock()
	return nil
}

// GetByID loads one listing into the detail view slot.
func (s *RoomSlice) GetByID(ctx context.Context, id string) error {
	s.begin()

	room, err := s.svc.Get(ctx, id)
	if err != nil {
		msg := transport.Message(err, "Failed to fetch room details")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	s.currentRoom = room
	s.mu.Unlock()
	return nil
}

// Update replaces the matching element in place. When no element matches the
// id, the collection is deliberately left unchanged. The detail view slot is
// refreshed either way.
func (s *RoomSlice) Update(ctx context.Context, id string, in ports.UpdateRoomInput) error {
	s.mu.Lock()
	s.op.start()
	s.success = false
	s.mu.Unlock()

	room, err := s.svc.Update(ctx, id, in)
	if err != nil {
		msg := transport.Message(err, "Failed to update room")
		s.mu.Lock()
		s.op.reject(msg)
		s.success = false
		s.mu.Unlock()
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	for i := range s.rooms {
		if s.rooms[i].ID == room.ID {
			s.rooms[i] = *room
			break
		}
	}
	s.currentRoom = room
	s.success = true
	s.mu.Unlock()
	s.events.Success("Room updated successfully!")
	return nil
}

// Delete removes the matching element from the collection.
func (s *RoomSlice) Delete(ctx context.Context, id string) error {
	s.begin()

	if err := s.svc.Delete(ctx, id); err != nil {
		msg := transport.Message(err, "Failed to delete room")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	kept := s.rooms[:0]
	for _, r := range s.rooms {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rooms = kept
	s.success = true
	s.mu.Unlock()
	s.events.Success("Room deleted successfully!")
	return nil
}

// UploadImages appends the returned references to the loaded detail view.
// With no room in detail view the references are dropped from client state;
// the server keeps them either way.
func (s *RoomSlice) UploadImages(ctx context.Context, id string, files []transport.Upload) error {
	s.begin()

	images, err := s.svc.UploadImages(ctx, id, files)
	if err != nil {
		msg := transport.Message(err, "Failed to upload images")
		s.reject(msg)
		s.events.Error(msg)
		return err
	}

	s.mu.Lock()
	s.op.fulfill()
	if s.currentRoom != nil {
		clone := *s.currentRoom
		clone.Images = append(append([]string(nil), clone.Images...), images...)
		s.currentRoom = &clone
	}
	s.mu.Unlock()
	s.events.Success("Images uploaded successfully!")
	return nil
}

// ClearError drops the stored error message.
func (s *RoomSlice) ClearError() {
	s.mu.Lock()
	s.op.clearError()
	s.mu.Unlock()
}

// ClearSuccess resets the post-action navigation flag.
func (s *RoomSlice) ClearSuccess() {
	s.mu.Lock()
	s.success = false
	s.mu.Unlock()
}

// ClearCurrentRoom empties the detail view slot.
func (s *RoomSlice) ClearCurrentRoom() {
	s.mu.Lock()
	s.currentRoom = nil
	s.mu.Unlock()
}

func (s *RoomSlice) begin() {
	s.mu.Lock()
	s.op.start()
	s.mu.Unlock()
}

func (s *RoomSlice) reject(msg string) {
	s.mu.Lock()
	s.op.reject(msg)
	s.mu.Unlock()
}
