package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Room is a bookable listing in the catalog. The collection order is whatever
// the server returned; no sort is implied.
type Room struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"pricePerNight"`
	Capacity      int      `json:"capacity"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsAvailable   bool     `json:"isAvailable"`
	Rating        float64  `json:"rating"`
	HostID        string   `json:"hostId"`
}

// RoomFilters narrows a catalog listing. Zero-valued fields are omitted from
// the outgoing query; filtering happens server-side.
type RoomFilters struct {
	Location  string
	MinPrice  float64
	MaxPrice  float64
	Capacity  int
	Amenities []string
}

// Query encodes the filter set as URL query parameters. Amenities are
// comma-joined into a single parameter.
func (f RoomFilters) Query() url.Values {
	q := url.Values{}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Capacity > 0 {
		q.Set("capacity", strconv.Itoa(f.Capacity))
	}
	if len(f.Amenities) > 0 {
		q.Set("amenities", strings.Join(f.Amenities, ","))
	}
	return q
}

// Empty reports whether no filter field is set.
func (f RoomFilters) Empty() bool {
	return f.Location == "" && f.MinPrice <= 0 && f.MaxPrice <= 0 &&
		f.Capacity <= 0 && len(f.Amenities) == 0
}
