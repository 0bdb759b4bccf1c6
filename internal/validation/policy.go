package validation

import "github.com/flightexpert/booking-engine/internal/slots"

// fieldOrder is the declared collection sequence for the outer form.  The
// per-passenger working fields are appended dynamically while the inner
// loop runs.
var fieldOrder = []string{
	slots.FieldOrigin,
	slots.FieldDestination,
	slots.FieldTravelDate,
	slots.FieldReturnDate,
	slots.FieldClassSelection,
	slots.FieldPassengerName,
	slots.FieldTravelCount,
}

var loopOrder = []string{
	slots.FieldCurrentName,
	slots.FieldCurrentPhone,
	slots.FieldCurrentEmail,
	slots.FieldCurrentSeat,
}

// RequiredFields returns the ordered list of fields still to be collected.
// The list is state-dependent and must be reevaluated after every patch:
// once no_flights is set the remaining list is empty, ending the
// field-collection flow immediately regardless of how many fields were
// declared.
func RequiredFields(snap slots.Snapshot) []string {
	if snap.Bool(slots.FieldNoFlights) {
		return []string{}
	}

	required := []string{}
	for _, f := range fieldOrder {
		if !snap.Has(f) {
			required = append(required, f)
		}
	}

	// The inner loop only opens once a travel count initialized it, and
	// closes when the completion sentinel is visible.
	if snap.Has(slots.FieldTravelCount) && snap.Int(slots.FieldExpectedPassengers) > 0 && !LoopComplete(snap) {
		for _, f := range loopOrder {
			if !snap.Has(f) {
				required = append(required, f)
			}
		}
	}
	return required
}

// LoopComplete reports whether the per-passenger loop has finished: the
// index has reached the expected count, the seat working field is still
// populated (the completion sentinel) and the accumulator holds a record
// for every expected passenger.
func LoopComplete(snap slots.Snapshot) bool {
	n := snap.Int(slots.FieldExpectedPassengers)
	if n <= 0 {
		return false
	}
	if snap.Int(slots.FieldPassengerIndex) < n {
		return false
	}
	if !snap.Has(slots.FieldCurrentSeat) {
		return false
	}
	return len(slots.DecodePassengers(snap.String(slots.FieldPassengers))) >= n
}
