package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/core/ports"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// RoomService implements ports.RoomService against the REST backend.
type RoomService struct {
	client *transport.Client
	log    zerolog.Logger
}

func NewRoomService(client *transport.Client, log zerolog.Logger) *RoomService {
	return &RoomService{client: client, log: log}
}

type uploadImagesResponse struct {
	Images []string `json:"images"`
}

func (s *RoomService) Create(ctx context.Context, in ports.CreateRoomInput) (*domain.Room, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var room domain.Room
	if err := s.client.JSON(ctx, http.MethodPost, "/rooms", in, &room); err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", room.ID).Str("location", room.Location).Msg("room created")
	return &room, nil
}

func (s *RoomService) List(ctx context.Context, filters domain.RoomFilters) ([]domain.Room, error) {
	path := "/rooms"
	if !filters.Empty() {
		path += "?" + filters.Query().Encode()
	}
	var rooms []domain.Room
	if err := s.client.JSON(ctx, http.MethodGet, path, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := s.client.JSON(ctx, http.MethodGet, "/rooms/"+id, nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, in ports.UpdateRoomInput) (*domain.Room, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var room domain.Room
	if err := s.client.JSON(ctx, http.MethodPut, "/rooms/"+id, in, &room); err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", id).Msg("room updated")
	return &room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.client.JSON(ctx, http.MethodDelete, "/rooms/"+id, nil, nil); err != nil {
		return err
	}
	s.log.Info().Str("room_id", id).Msg("room deleted")
	return nil
}

func (s *RoomService) UploadImages(ctx context.Context, id string, files []transport.Upload) ([]string, error) {
	var resp uploadImagesResponse
	if err := s.client.PostMultipart(ctx, "/rooms/"+id+"/images", "images", files, &resp); err != nil {
		return nil, err
	}
	s.log.Info().Str("room_id", id).Int("count", len(resp.Images)).Msg("room images uploaded")
	return resp.Images, nil
}
