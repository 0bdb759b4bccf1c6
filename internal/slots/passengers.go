package slots

import (
	"encoding/json"

	"github.com/flightexpert/booking-engine/internal/model"
)

// EmptyPassengerList is the serialized form of a fresh accumulator.
const EmptyPassengerList = "[]"

// DecodePassengers deserializes the passenger accumulator carried in the
// passengers slot.  Malformed content is treated as an empty list rather
// than surfaced as an error; a broken accumulator must never block the
// conversation.
func DecodePassengers(raw string) []model.Passenger {
	if raw == "" {
		return []model.Passenger{}
	}
	var out []model.Passenger
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []model.Passenger{}
	}
	if out == nil {
		return []model.Passenger{}
	}
	return out
}

// EncodePassengers serializes the accumulator back into its slot form.
func EncodePassengers(ps []model.Passenger) string {
	if len(ps) == 0 {
		return EmptyPassengerList
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return EmptyPassengerList
	}
	return string(b)
}
