package model

import "time"

// NotAvailable is stored in place of any optional booking field the
// conversation never collected.  Persisting an explicit sentinel keeps the
// bookings table free of NULL-vs-empty ambiguity.
const NotAvailable = "N/A"

// Booking is a completed reservation assembled from the dialogue snapshot
// at submission time.  It is written once and never mutated afterwards.
//
// Fields:
//  ID                 – primary key identifier (set after persistence).
//  Origin             – departure place as collected from the user.
//  Destination        – arrival place as collected from the user.
//  TravelDate         – outbound date in DD/MM/YYYY conversational form.
//  ReturnDate         – optional return date, NotAvailable when one-way.
//  ClassSelection     – cabin class (Economy, Business, First).
//  PrimaryContactName – name of the person who made the booking.
//  TravelerCount      – number of passengers travelling.
//  Passengers         – ordered per-passenger details.
//  CreatedAt          – persistence timestamp in UTC.
type Booking struct {
	ID                 int64       // bookings.id
	Origin             string      // bookings.origin
	Destination        string      // bookings.destination
	TravelDate         string      // bookings.travel_date
	ReturnDate         string      // bookings.return_date
	ClassSelection     string      // bookings.class_selection
	PrimaryContactName string      // bookings.primary_contact_name
	TravelerCount      int         // bookings.traveler_count
	Passengers         []Passenger // passengers rows for this booking
	CreatedAt          time.Time   // bookings.created_at
}
