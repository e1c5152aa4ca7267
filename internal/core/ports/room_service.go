package ports

import (
	"context"

	"github.com/AbdulAhadaa/stayfinder-client/internal/core/domain"
	"github.com/AbdulAhadaa/stayfinder-client/internal/transport"
)

// CreateRoomInput is the listing creation form.
type CreateRoomInput struct {
	Title         string   `json:"title"         validate:"required"`
	Description   string   `json:"description"   validate:"required"`
	Location      string   `json:"location"      validate:"required"`
	PricePerNight float64  `json:"pricePerNight" validate:"gt=0"`
	Capacity      int      `json:"capacity"      validate:"min=1"`
	Amenities     []string `json:"amenities,omitempty"`
	IsAvailable   bool     `json:"isAvailable"`
}

// UpdateRoomInput is a partial replace; nil fields are left untouched
// server-side and omitted from the payload.
type UpdateRoomInput struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Location      *string  `json:"location,omitempty"`
	PricePerNight *float64 `json:"pricePerNight,omitempty" validate:"omitempty,gt=0"`
	Capacity      *int     `json:"capacity,omitempty"      validate:"omitempty,min=1"`
	Amenities     []string `json:"amenities,omitempty"`
	IsAvailable   *bool    `json:"isAvailable,omitempty"`
}

// RoomService maps the catalog operations onto the backend API.
type RoomService interface {
	Create(ctx context.Context, in CreateRoomInput) (*domain.Room, error)
	// List returns the server's filtered catalog; callers replace, never merge.
	List(ctx context.Context, filters domain.RoomFilters) ([]domain.Room, error)
	Get(ctx context.Context, id string) (*domain.Room, error)
	Update(ctx context.Context, id string, in UpdateRoomInput) (*domain.Room, error)
	Delete(ctx context.Context, id string) error
	// UploadImages posts the files and returns the stored image references.
	UploadImages(ctx context.Context, id string, files []transport.Upload) ([]string, error)
}
