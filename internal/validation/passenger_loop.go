package validation

import (
	"regexp"
	"strings"

	"github.com/flightexpert/booking-engine/internal/model"
	"github.com/flightexpert/booking-engine/internal/slots"
	"github.com/flightexpert/booking-engine/internal/utils"
)

// The per-passenger sub-form collects name, phone, email and seat for
// passenger i, driven by the expected_passengers / current_passenger_index
// pair that validateTravelCount initializes.  A valid seat value is the
// completion trigger for the current cycle.

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func validName(s string) bool {
	return s != "" && namePattern.MatchString(s)
}

func validPhone(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// loopIndex returns the 1-based index of the passenger currently being
// collected, defaulting to 1 when the loop state is missing so that
// prompts stay sensible.
func loopIndex(snap slots.Snapshot) int {
	if i := snap.Int(slots.FieldPassengerIndex); i > 0 {
		return i
	}
	return 1
}

func (e *Engine) validateLoopName(raw string, snap slots.Snapshot) Result {
	var res Result
	name := utils.TitleCase(raw)
	if !validName(name) {
		res.patch(slots.FieldCurrentName, nil)
		res.say("Please give passenger %d's full name.", loopIndex(snap))
		return res
	}
	res.patch(slots.FieldCurrentName, name)
	return res
}

func (e *Engine) validateLoopPhone(raw string, snap slots.Snapshot) Result {
	var res Result
	phone := strings.TrimSpace(raw)
	if !validPhone(phone) {
		res.patch(slots.FieldCurrentPhone, nil)
		res.say("That phone number doesn't look right. Please give passenger %d's phone number.", loopIndex(snap))
		return res
	}
	res.patch(slots.FieldCurrentPhone, phone)
	return res
}

func (e *Engine) validateLoopEmail(raw string, snap slots.Snapshot) Result {
	var res Result
	email := strings.TrimSpace(raw)
	if !emailPattern.MatchString(email) {
		res.patch(slots.FieldCurrentEmail, nil)
		res.say("That email doesn't look right. Please give passenger %d's email address.", loopIndex(snap))
		return res
	}
	res.patch(slots.FieldCurrentEmail, email)
	return res
}

// validateLoopSeat checks the seat preference and, when valid, runs the
// completion step: append the finished passenger to the accumulator, then
// either restart the inner loop for the next passenger or leave the seat
// field populated as the loop-complete sentinel the outer flow watches for.
func (e *Engine) validateLoopSeat(raw string, snap slots.Snapshot) Result {
	var res Result
	seat := strings.ToLower(strings.TrimSpace(raw))
	if !model.ValidSeat(seat) {
		res.patch(slots.FieldCurrentSeat, nil)
		res.say("Please choose a seat for passenger %d: window, aisle or middle.", loopIndex(snap))
		return res
	}

	name := snap.String(slots.FieldCurrentName)
	phone := snap.String(slots.FieldCurrentPhone)
	email := snap.String(slots.FieldCurrentEmail)
	if name == "" || phone == "" || email == "" {
		// Completion needs all four working fields; keep the seat and let
		// the policy re-ask whichever field is missing.
		res.patch(slots.FieldCurrentSeat, seat)
		return res
	}

	accumulated := slots.DecodePassengers(snap.String(slots.FieldPassengers))
	accumulated = append(accumulated, model.Passenger{
		Name:           name,
		Phone:          phone,
		Email:          email,
		SeatPreference: seat,
	})

	i := loopIndex(snap)
	n := snap.Int(slots.FieldExpectedPassengers)

	if i < n {
		// Restart the inner loop for the next passenger without disturbing
		// the advanced index.
		res.patch(slots.FieldPassengers, slots.EncodePassengers(accumulated))
		res.patch(slots.FieldPassengerIndex, i+1)
		res.patch(slots.FieldCurrentName, nil)
		res.patch(slots.FieldCurrentPhone, nil)
		res.patch(slots.FieldCurrentEmail, nil)
		res.patch(slots.FieldCurrentSeat, nil)
		res.say("Passenger %d recorded. Now for passenger %d.", i, i+1)
		return res
	}

	// Last passenger: the populated seat field is the sentinel the outer
	// flow uses to detect loop completion, so it is deliberately not
	// cleared and the index is not advanced further.
	res.patch(slots.FieldPassengers, slots.EncodePassengers(accumulated))
	res.patch(slots.FieldCurrentSeat, seat)
	res.say("All passenger details recorded.")
	return res
}
