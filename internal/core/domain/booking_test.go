package domain

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestSessionAuthenticated(t *testing.T) {
	user := &UserProfile{ID: "u1", Name: "Alice", Email: "a@x.com", Role: RoleGuest}

	if (Session{}).Authenticated() {
		t.Fatalf("empty session must not be authenticated")
	}
	if (Session{AccessToken: "tok"}).Authenticated() {
		t.Fatalf("token without user must not be authenticated")
	}
	if (Session{User: user}).Authenticated() {
		t.Fatalf("user without token must not be authenticated")
	}
	if !(Session{User: user, AccessToken: "tok"}).Authenticated() {
		t.Fatalf("user plus token must be authenticated")
	}
}

func TestRoomFiltersQuery(t *testing.T) {
	q := RoomFilters{}.Query()
	if len(q) != 0 {
		t.Fatalf("empty filters must encode to no params, got %v", q)
	}

	f := RoomFilters{
		Location:  "Lisbon",
		MinPrice:  50,
		MaxPrice:  120.5,
		Capacity:  3,
		Amenities: []string{"wifi", "pool"},
	}
	q = f.Query()
	if q.Get("location") != "Lisbon" {
		t.Errorf("location = %q", q.Get("location"))
	}
	if q.Get("minPrice") != "50" {
		t.Errorf("minPrice = %q", q.Get("minPrice"))
	}
	if q.Get("maxPrice") != "120.5" {
		t.Errorf("maxPrice = %q", q.Get("maxPrice"))
	}
	if q.Get("capacity") != "3" {
		t.Errorf("capacity = %q", q.Get("capacity"))
	}
	if q.Get("amenities") != "wifi,pool" {
		t.Errorf("amenities = %q", q.Get("amenities"))
	}

	if !(RoomFilters{}).Empty() {
		t.Errorf("zero filters should be empty")
	}
	if f.Empty() {
		t.Errorf("populated filters should not be empty")
	}
}
