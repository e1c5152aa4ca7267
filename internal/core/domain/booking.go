package domain

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. The server
// is authoritative; this table only gives callers early feedback.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a recognised booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking is a guest's reservation of a room for a date range.
type Booking struct {
	ID           string        `json:"id"`
	RoomID       string        `json:"roomId"`
	GuestID      string        `json:"guestId"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	TotalPrice   float64       `json:"totalPrice"`
	Status       BookingStatus `json:"status"`
}
