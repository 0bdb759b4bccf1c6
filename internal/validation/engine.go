// Package validation implements the per-field slot validators, the nested
// per-passenger collection loop and the dynamic required-field policy that
// together drive the booking conversation.  Every validator is pure given
// the raw value and the relevant subset of the snapshot: it returns an
// accepted patch or a rejection message plus a field-clearing patch, and
// never propagates a fault past its own boundary.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flightexpert/booking-engine/internal/dates"
	"github.com/flightexpert/booking-engine/internal/location"
	"github.com/flightexpert/booking-engine/internal/model"
	"github.com/flightexpert/booking-engine/internal/routetext"
	"github.com/flightexpert/booking-engine/internal/slots"
	"github.com/flightexpert/booking-engine/internal/utils"
)

// FlightFinder looks up matching flights for a route and a conversational
// DD/MM/YYYY date.  An empty result is not an error; it becomes the soft
// no_flights signal.
type FlightFinder interface {
	Find(ctx context.Context, origin, destination, travelDate string) ([]model.FlightOffer, error)
}

// Result is the outcome of one per-field call: a partial snapshot patch and
// zero or more user-facing messages.
type Result struct {
	Patch    slots.Patch
	Messages []string
}

func (r *Result) patch(field string, value any) {
	if r.Patch == nil {
		r.Patch = slots.Patch{}
	}
	r.Patch[field] = value
}

func (r *Result) say(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Engine validates one field per turn against the current snapshot.  Its
// dependencies are the three leaf services plus the flight lookup; the Now
// hook exists so tests can pin today's date.
type Engine struct {
	Locations *location.Resolver
	Dates     *dates.Normalizer
	Flights   FlightFinder
	Now       func() time.Time
}

// NewEngine constructs an Engine.  All dependencies must be non-nil.
func NewEngine(loc *location.Resolver, norm *dates.Normalizer, flights FlightFinder) *Engine {
	if loc == nil || norm == nil || flights == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{Locations: loc, Dates: norm, Flights: flights, Now: time.Now}
}

// Validate dispatches the raw user text for one field to its validator.
// Unknown fields yield an empty result so a misconfigured dialogue manager
// cannot crash a turn.
func (e *Engine) Validate(ctx context.Context, field, raw string, snap slots.Snapshot) Result {
	switch field {
	case slots.FieldOrigin:
		return e.validateOrigin(raw, snap)
	case slots.FieldDestination:
		return e.validateDestination(raw, snap)
	case slots.FieldTravelDate:
		return e.validateTravelDate(ctx, raw, snap)
	case slots.FieldReturnDate:
		return e.validateReturnDate(raw, snap)
	case slots.FieldClassSelection:
		return e.validateClassSelection(raw)
	case slots.FieldPassengerName:
		return e.validatePassengerName(raw)
	case slots.FieldTravelCount:
		return e.validateTravelCount(raw)
	case slots.FieldCurrentName:
		return e.validateLoopName(raw, snap)
	case slots.FieldCurrentPhone:
		return e.validateLoopPhone(raw, snap)
	case slots.FieldCurrentEmail:
		return e.validateLoopEmail(raw, snap)
	case slots.FieldCurrentSeat:
		return e.validateLoopSeat(raw, snap)
	}
	return Result{}
}

// tryRoutePair checks whether the raw text carries a full "from A to B"
// route.  A parse hit is only a candidate: both parts must resolve as
// supported locations and differ before the pair is accepted.  When it is,
// origin and destination are patched in one step, short-circuiting the
// remaining prompt.
func (e *Engine) tryRoutePair(raw string) (Result, bool) {
	o, d, ok := routetext.ParseRoute(raw)
	if !ok {
		return Result{}, false
	}
	if !e.Locations.IsSupported(o) || !e.Locations.IsSupported(d) || o == d {
		return Result{}, false
	}
	var res Result
	res.patch(slots.FieldOrigin, o)
	res.patch(slots.FieldDestination, d)
	res.say("Great, flying from %s to %s.", o, d)
	return res, true
}

func (e *Engine) validateOrigin(raw string, snap slots.Snapshot) Result {
	if res, ok := e.tryRoutePair(raw); ok {
		return res
	}
	var res Result
	name := utils.TitleCase(raw)
	if !e.Locations.IsSupported(name) {
		res.patch(slots.FieldOrigin, nil)
		res.say("Sorry, we don't support flights from '%s'.\nSupported locations are:\n%s",
			strings.TrimSpace(raw), e.supportedList())
		return res
	}
	if dest := snap.String(slots.FieldDestination); dest != "" && utils.TitleCase(dest) == name {
		res.patch(slots.FieldOrigin, nil)
		res.say("Origin and destination can't both be %s. Where are you flying from?", name)
		return res
	}
	res.patch(slots.FieldOrigin, name)
	res.say("Got it, flying from %s.", name)
	return res
}

func (e *Engine) validateDestination(raw string, snap slots.Snapshot) Result {
	// A route-pair answer takes priority even when only the destination was
	// asked for; users often reply "from A to B" to the destination prompt.
	if res, ok := e.tryRoutePair(raw); ok {
		return res
	}
	var res Result
	name := utils.TitleCase(raw)
	if !e.Locations.IsSupported(name) {
		res.patch(slots.FieldDestination, nil)
		res.say("Sorry, we don't support flights to '%s'.\nSupported locations are:\n%s",
			strings.TrimSpace(raw), e.supportedList())
		return res
	}
	if origin := snap.String(slots.FieldOrigin); origin != "" && utils.TitleCase(origin) == name {
		res.patch(slots.FieldDestination, nil)
		res.say("Origin and destination can't both be %s. Where are you flying to?", name)
		return res
	}
	res.patch(slots.FieldDestination, name)
	res.say("Great choice! We have flights to %s.", name)
	return res
}

func (e *Engine) validateTravelDate(ctx context.Context, raw string, snap slots.Snapshot) Result {
	var res Result
	_, err := e.Dates.ValidateConversationalDate(raw, e.Now())
	if err != nil {
		res.patch(slots.FieldTravelDate, nil)
		res.say("%s", dateErrorMessage(err))
		return res
	}
	value := strings.TrimSpace(raw)

	origin := snap.String(slots.FieldOrigin)
	destination := snap.String(slots.FieldDestination)
	if origin == "" || destination == "" {
		// Route not complete yet; store the date and let the policy keep
		// asking for the missing half.
		res.patch(slots.FieldTravelDate, value)
		return res
	}

	offers, err := e.Flights.Find(ctx, origin, destination, value)
	if err != nil {
		// Lookup failures never abort the conversation; keep the date and
		// tell the user availability could not be checked.
		res.patch(slots.FieldTravelDate, value)
		res.patch(slots.FieldNoFlights, false)
		res.say("We couldn't check flight availability right now, but your date %s is noted.", value)
		return res
	}
	if len(offers) == 0 {
		// Soft terminal signal: the dynamic required-field policy ends the
		// collection flow when no_flights is set.
		res.patch(slots.FieldTravelDate, value)
		res.patch(slots.FieldNoFlights, true)
		return res
	}
	res.patch(slots.FieldTravelDate, value)
	res.patch(slots.FieldNoFlights, false)
	res.say("%s", formatOffers(origin, destination, value, offers))
	return res
}

func (e *Engine) validateReturnDate(raw string, snap slots.Snapshot) Result {
	var res Result
	travelISO := ""
	if travelRaw := snap.String(slots.FieldTravelDate); travelRaw != "" {
		// The stored travel date is already-validated DD/MM/YYYY; re-parse
		// it with the fixed conversational layout so the range check is
		// independent of the general normalizer's day-first preference.
		if iso, err := dates.ParseConversational(travelRaw); err == nil {
			travelISO = iso
		}
	}
	_, err := e.Dates.ValidateReturnDate(raw, e.Now(), travelISO)
	if err != nil {
		res.patch(slots.FieldReturnDate, nil)
		res.say("%s", dateErrorMessage(err))
		return res
	}
	res.patch(slots.FieldReturnDate, strings.TrimSpace(raw))
	return res
}

// Cabin classes offered on every route.
var cabinClasses = []string{"Economy", "Business", "First"}

func (e *Engine) validateClassSelection(raw string) Result {
	var res Result
	want := utils.TitleCase(raw)
	for _, class := range cabinClasses {
		if class == want {
			res.patch(slots.FieldClassSelection, class)
			res.say("%s class it is.", class)
			return res
		}
	}
	res.patch(slots.FieldClassSelection, nil)
	res.say("Please choose a class: %s.", strings.Join(cabinClasses, ", "))
	return res
}

func (e *Engine) validatePassengerName(raw string) Result {
	var res Result
	name := utils.TitleCase(raw)
	if !validName(name) {
		res.patch(slots.FieldPassengerName, nil)
		res.say("Please tell us the primary contact's full name.")
		return res
	}
	res.patch(slots.FieldPassengerName, name)
	return res
}

// maxTravelers caps a single conversational booking; larger groups go
// through the group-sales channel.
const maxTravelers = 9

func (e *Engine) validateTravelCount(raw string) Result {
	var res Result
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > maxTravelers {
		res.patch(slots.FieldTravelCount, nil)
		res.say("How many passengers are travelling? Please give a number between 1 and %d.", maxTravelers)
		return res
	}
	// A valid count initializes the passenger loop: expected count, a
	// 1-based index, a fresh accumulator and cleared working fields.
	res.patch(slots.FieldTravelCount, n)
	res.patch(slots.FieldExpectedPassengers, n)
	res.patch(slots.FieldPassengerIndex, 1)
	res.patch(slots.FieldPassengers, slots.EmptyPassengerList)
	res.patch(slots.FieldCurrentName, nil)
	res.patch(slots.FieldCurrentPhone, nil)
	res.patch(slots.FieldCurrentEmail, nil)
	res.patch(slots.FieldCurrentSeat, nil)
	if n == 1 {
		res.say("Collecting details for 1 passenger.")
	} else {
		res.say("Collecting details for %d passengers, one at a time.", n)
	}
	return res
}

func (e *Engine) supportedList() string {
	names := e.Locations.SupportedNames()
	var b strings.Builder
	for _, n := range names {
		b.WriteString("• ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// dateErrorMessage maps the normalizer's error kinds to re-prompts.
func dateErrorMessage(err error) string {
	switch {
	case errors.Is(err, dates.ErrInvalidCalendarDate):
		return "That date doesn't exist on the calendar. Please use DD/MM/YYYY."
	case errors.Is(err, dates.ErrPastDate):
		return "That date is in the past. Please pick a future date as DD/MM/YYYY."
	case errors.Is(err, dates.ErrReturnBeforeTravel):
		return "The return date can't be earlier than the travel date."
	default:
		return "Please give the date as DD/MM/YYYY."
	}
}

// formatOffers renders the availability list shown after a successful
// travel-date validation.
func formatOffers(origin, destination, date string, offers []model.FlightOffer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flights from %s to %s on %s:", origin, destination, date)
	for _, o := range offers {
		dep, arr := "unknown", "unknown"
		if o.DepartureTime != nil && *o.DepartureTime != "" {
			dep = *o.DepartureTime
		}
		if o.ArrivalTime != nil && *o.ArrivalTime != "" {
			arr = *o.ArrivalTime
		}
		fmt.Fprintf(&b, "\n• %s — departs %s, arrives %s", o.FlightName, dep, arr)
	}
	return b.String()
}
