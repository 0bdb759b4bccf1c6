package model

// Seat preference values accepted from the conversation.  Anything else is
// rejected by the seat validator.
const (
	SeatWindow = "window"
	SeatAisle  = "aisle"
	SeatMiddle = "middle"
)

// Passenger holds the details collected for one traveller during the
// per-passenger loop.  A Passenger is immutable once appended to the
// accumulator; copies are persisted alongside the booking at submit time.
type Passenger struct {
	Name           string `json:"name"`            // passengers.name
	Phone          string `json:"phone"`           // passengers.phone
	Email          string `json:"email"`           // passengers.email
	SeatPreference string `json:"seat_preference"` // passengers.seat_preference
}

// ValidSeat reports whether s is one of the supported seat preferences.
// Comparison is done on the already-lowercased value.
func ValidSeat(s string) bool {
	switch s {
	case SeatWindow, SeatAisle, SeatMiddle:
		return true
	}
	return false
}
