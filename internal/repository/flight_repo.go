package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/flightexpert/booking-engine/internal/model"
)

// FlightRepo reads the flight schedule store and accepts bulk upserts from
// the offline ingester.  The store is read-only from the conversation's
// point of view.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// FlightRecord mirrors the flights table as populated by the ingester.
// Departure and arrival times are optional in the upstream feed.
type FlightRecord struct {
	FlightName    string
	TravelDate    string // YYYY-MM-DD, normalized
	Origin        string // route code, uppercased
	Destination   string // route code, uppercased
	DepartureTime *string
	ArrivalTime   *string
}

// The unique key mirrors the upstream feed's identity so re-running the
// ingester never duplicates rows.
const flightSchema = `CREATE TABLE IF NOT EXISTS flights (
  id BIGINT PRIMARY KEY AUTO_INCREMENT,
  flight_name VARCHAR(255) NOT NULL,
  travel_date VARCHAR(16) NOT NULL,
  origin VARCHAR(8) NOT NULL,
  destination VARCHAR(8) NOT NULL,
  departure_time VARCHAR(40) NULL,
  arrival_time VARCHAR(40) NULL,
  UNIQUE KEY uq_flights_identity (flight_name, travel_date, departure_time),
  KEY idx_flights_route_date (origin, destination, travel_date),
  KEY idx_flights_date (travel_date)
)`

// EnsureSchema creates the flights table and its indexes when missing.
func (r *FlightRepo) EnsureSchema(ctx context.Context) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %v", ErrPersistence, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, flightSchema); err != nil {
		return fmt.Errorf("%w: ensure flights schema: %v", ErrPersistence, err)
	}
	return nil
}

// FindOffers returns flights on the given normalized date whose origin and
// destination fall inside the respective candidate sets, ordered by
// departure time ascending with unknown departure times last, capped at
// limit rows.  An empty result is returned as-is; it is not an error.
func (r *FlightRepo) FindOffers(ctx context.Context, travelDate string, origins, destinations []string, limit int) ([]model.FlightOffer, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return []model.FlightOffer{}, nil
	}

	query := `SELECT flight_name, departure_time, arrival_time
	  FROM flights
	  WHERE travel_date = ?
	    AND origin IN (` + placeholders(len(origins)) + `)
	    AND destination IN (` + placeholders(len(destinations)) + `)
	  ORDER BY departure_time IS NULL, departure_time ASC
	  LIMIT ?`

	args := make([]interface{}, 0, len(origins)+len(destinations)+2)
	args = append(args, travelDate)
	for _, o := range origins {
		args = append(args, o)
	}
	for _, d := range destinations {
		args = append(args, d)
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query flights: %v", ErrPersistence, err)
	}
	defer rows.Close()

	offers := make([]model.FlightOffer, 0, limit)
	for rows.Next() {
		var name string
		var dep, arr sql.NullString
		if err := rows.Scan(&name, &dep, &arr); err != nil {
			return nil, fmt.Errorf("%w: scan flight: %v", ErrPersistence, err)
		}
		offer := model.FlightOffer{FlightName: name}
		if dep.Valid {
			v := dep.String
			offer.DepartureTime = &v
		}
		if arr.Valid {
			v := arr.String
			offer.ArrivalTime = &v
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate flights: %v", ErrPersistence, err)
	}
	return offers, nil
}

// UpsertIgnore inserts a schedule row, silently skipping duplicates of the
// (flight_name, travel_date, departure_time) identity.  It reports whether
// a new row was actually written.
func (r *FlightRepo) UpsertIgnore(ctx context.Context, rec FlightRecord) (bool, error) {
	const q = `INSERT IGNORE INTO flights
	  (flight_name, travel_date, origin, destination, departure_time, arrival_time)
	  VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		rec.FlightName, rec.TravelDate, rec.Origin, rec.Destination,
		rec.DepartureTime, rec.ArrivalTime,
	)
	if err != nil {
		return false, fmt.Errorf("%w: insert flight: %v", ErrPersistence, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
