// Package slots defines the field vocabulary of the booking conversation
// and the snapshot/patch types exchanged with the dialogue manager on every
// turn.  The snapshot is owned by the dialogue session; this engine only
// reads it and hands back partial patches.
package slots

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names collected across the dialogue.  The dialogue manager and this
// engine must agree on these keys exactly.
const (
	FieldOrigin             = "origin"
	FieldDestination        = "destination"
	FieldTravelDate         = "travel_date"
	FieldReturnDate         = "return_date"
	FieldClassSelection     = "class_selection"
	FieldPassengerName      = "passenger_name"
	FieldTravelCount        = "travel_count"
	FieldExpectedPassengers = "expected_passengers"
	FieldPassengerIndex     = "current_passenger_index"
	FieldCurrentName        = "current_passenger_name"
	FieldCurrentPhone       = "current_passenger_phone"
	FieldCurrentEmail       = "current_passenger_email"
	FieldCurrentSeat        = "current_passenger_seat"
	FieldPassengers         = "passengers"
	FieldNoFlights          = "no_flights"
)

// Snapshot is the current value of every slot the session carries.  Values
// arrive as decoded JSON, so numbers may be float64 and anything may be
// missing or nil.  Accessors below normalize those cases.
type Snapshot map[string]any

// Patch is a partial update to the snapshot produced by a validator or by
// the orchestrator.  A nil value clears the slot.
type Patch map[string]any

// Owned lists every field this engine writes.  The reset path clears all of
// them so a subsequent booking starts from a clean snapshot.
func Owned() []string {
	return []string{
		FieldOrigin, FieldDestination, FieldTravelDate, FieldReturnDate,
		FieldClassSelection, FieldPassengerName, FieldTravelCount,
		FieldExpectedPassengers, FieldPassengerIndex,
		FieldCurrentName, FieldCurrentPhone, FieldCurrentEmail, FieldCurrentSeat,
		FieldPassengers, FieldNoFlights,
	}
}

// ClearAll returns a patch that unsets every owned field.
func ClearAll() Patch {
	p := Patch{}
	for _, f := range Owned() {
		p[f] = nil
	}
	return p
}

// String returns the slot as a trimmed string, or "" when the slot is
// unset, nil or not representable as text.
func (s Snapshot) String(name string) string {
	v, ok := s[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// integral JSON numbers round-trip as float64
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return fmt.Sprintf("%v", t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// Int returns the slot as an integer, or 0 when unset or malformed.
func (s Snapshot) Int(name string) int {
	v, ok := s[name]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

// Bool returns the slot as a boolean.  Unset, nil and anything that is not
// a bool or "true" string read as false.
func (s Snapshot) Bool(name string) bool {
	v, ok := s[name]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	}
	return false
}

// Has reports whether the slot holds a usable value.  Empty strings count
// as unset so that a cleared slot re-enters the required list.
func (s Snapshot) Has(name string) bool {
	v, ok := s[name]
	if !ok || v == nil {
		return false
	}
	if str, isStr := v.(string); isStr {
		return strings.TrimSpace(str) != ""
	}
	return true
}
