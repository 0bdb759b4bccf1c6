// Package engine assembles the final booking from the accumulated slots,
// drives persistence and renders the confirmation.  It owns the submit and
// reset actions on the external control surface; per-field validation
// lives in the validation package.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/flightexpert/booking-engine/internal/model"
	"github.com/flightexpert/booking-engine/internal/queue"
	"github.com/flightexpert/booking-engine/internal/repository"
	"github.com/flightexpert/booking-engine/internal/slots"
	"github.com/flightexpert/booking-engine/internal/validation"
)

// BookingStore is the persistence surface the orchestrator depends on.
// *repository.BookingRepo satisfies it; tests substitute fakes.
type BookingStore interface {
	EnsureSchema(ctx context.Context) error
	SaveBooking(ctx context.Context, rec repository.BookingRecord) (int64, error)
	SavePassengers(ctx context.Context, bookingID int64, passengers []model.Passenger) error
}

// EventPublisher pushes a confirmation event to the broker.  Publish
// failures are logged and ignored; the booking is already durable by the
// time the event is emitted.
type EventPublisher func(ctx context.Context, event queue.BookingConfirmedEvent) error

// Orchestrator performs the submit and reset actions.  Now is a hook for
// tests; it defaults to time.Now.
type Orchestrator struct {
	Store   BookingStore
	Publish EventPublisher
	Now     func() time.Time
}

// NewOrchestrator constructs an Orchestrator.  The store must be non-nil;
// publish may be nil to disable event emission.
func NewOrchestrator(store BookingStore, publish EventPublisher) *Orchestrator {
	if store == nil {
		panic("nil store passed to NewOrchestrator")
	}
	return &Orchestrator{Store: store, Publish: publish, Now: time.Now}
}

// Submit finalizes the conversation.  With no_flights set it apologizes and
// resets without persisting anything.  Otherwise it assembles the booking
// from the snapshot, persists it, publishes the confirmation event and
// renders a full confirmation; a persistence failure degrades to a warning
// folded into the confirmation text rather than failing the turn.  Every
// field this flow owns is cleared afterwards so the next booking starts
// from a clean snapshot.
func (o *Orchestrator) Submit(ctx context.Context, snap slots.Snapshot) validation.Result {
	res := validation.Result{Patch: slots.ClearAll()}

	if snap.Bool(slots.FieldNoFlights) {
		res.Messages = append(res.Messages, fmt.Sprintf(
			"Sorry, we couldn't find any flights from %s to %s on %s. Please try another route or date.",
			orNotAvailable(snap.String(slots.FieldOrigin)),
			orNotAvailable(snap.String(slots.FieldDestination)),
			orNotAvailable(snap.String(slots.FieldTravelDate)),
		))
		return res
	}

	booking := o.assemble(snap)
	rec := repository.BookingRecord{
		Origin:             booking.Origin,
		Destination:        booking.Destination,
		TravelDate:         booking.TravelDate,
		ReturnDate:         booking.ReturnDate,
		ClassSelection:     booking.ClassSelection,
		PrimaryContactName: booking.PrimaryContactName,
		TravelerCount:      booking.TravelerCount,
		CreatedAt:          booking.CreatedAt.Format(time.RFC3339),
	}

	warning := ""
	bookingID, err := o.persist(ctx, rec, booking.Passengers)
	if err != nil {
		log.Printf("orchestrator: persist booking failed: %v", err)
		warning = "\n\nWarning: we could not save your booking details. Please contact support with this confirmation."
	} else if o.Publish != nil {
		_ = o.Publish(ctx, queue.BookingConfirmedEvent{
			BookingID:      bookingID,
			Origin:         rec.Origin,
			Destination:    rec.Destination,
			TravelDate:     rec.TravelDate,
			ReturnDate:     rec.ReturnDate,
			ClassSelection: rec.ClassSelection,
			PrimaryContact: rec.PrimaryContactName,
			TravelerCount:  rec.TravelerCount,
			PassengerCount: len(booking.Passengers),
			CreatedAt:      rec.CreatedAt,
		})
	}

	res.Messages = append(res.Messages, confirmationText(booking)+warning)
	return res
}

// assemble builds the domain Booking from the snapshot, defaulting any
// uncollected optional field to the explicit not-available sentinel.
func (o *Orchestrator) assemble(snap slots.Snapshot) model.Booking {
	return model.Booking{
		Origin:             orNotAvailable(snap.String(slots.FieldOrigin)),
		Destination:        orNotAvailable(snap.String(slots.FieldDestination)),
		TravelDate:         orNotAvailable(snap.String(slots.FieldTravelDate)),
		ReturnDate:         orNotAvailable(snap.String(slots.FieldReturnDate)),
		ClassSelection:     orNotAvailable(snap.String(slots.FieldClassSelection)),
		PrimaryContactName: orNotAvailable(snap.String(slots.FieldPassengerName)),
		TravelerCount:      snap.Int(slots.FieldTravelCount),
		Passengers:         slots.DecodePassengers(snap.String(slots.FieldPassengers)),
		CreatedAt:          o.Now().UTC(),
	}
}

// Reset clears transient session state independently of submit; the
// handler layer adds the restart-at-greeting signal.
func (o *Orchestrator) Reset() validation.Result {
	return validation.Result{
		Patch:    slots.ClearAll(),
		Messages: []string{"Okay, starting over. How can I help you with your booking?"},
	}
}

func (o *Orchestrator) persist(ctx context.Context, rec repository.BookingRecord, passengers []model.Passenger) (int64, error) {
	if err := o.Store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	bookingID, err := o.Store.SaveBooking(ctx, rec)
	if err != nil {
		return 0, err
	}
	if err := o.Store.SavePassengers(ctx, bookingID, passengers); err != nil {
		return bookingID, err
	}
	return bookingID, nil
}

func confirmationText(booking model.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your flight from %s to %s on %s is confirmed!\n", booking.Origin, booking.Destination, booking.TravelDate)
	fmt.Fprintf(&b, "Return date: %s\n", booking.ReturnDate)
	fmt.Fprintf(&b, "Class: %s\n", booking.ClassSelection)
	fmt.Fprintf(&b, "Primary contact: %s\n", booking.PrimaryContactName)
	fmt.Fprintf(&b, "Travelers: %d", booking.TravelerCount)
	for i, p := range booking.Passengers {
		fmt.Fprintf(&b, "\nPassenger %d: %s, %s, %s, %s seat", i+1, p.Name, p.Phone, p.Email, p.SeatPreference)
	}
	b.WriteString("\nThank you for choosing Flight Expert!")
	return b.String()
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return s
}
