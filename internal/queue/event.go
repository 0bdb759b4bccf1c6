// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking is successfully
// persisted.  It carries enough information for downstream consumers to
// log, notify or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID      int64  `json:"booking_id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TravelDate     string `json:"travel_date"`
	ReturnDate     string `json:"return_date"`
	ClassSelection string `json:"class_selection"`
	PrimaryContact string `json:"primary_contact"`
	TravelerCount  int    `json:"traveler_count"`
	PassengerCount int    `json:"passenger_count"`
	CreatedAt      string `json:"created_at"`
}
