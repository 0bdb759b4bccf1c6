package model

// FlightOffer is a single row returned from the flight store for a route
// and date.  Departure and arrival times come straight from the schedule
// feed and may be absent, hence the pointers.
type FlightOffer struct {
	FlightName    string  `json:"flight_name"`    // flights.flight_name
	DepartureTime *string `json:"departure_time"` // flights.departure_time (nullable)
	ArrivalTime   *string `json:"arrival_time"`   // flights.arrival_time (nullable)
}
