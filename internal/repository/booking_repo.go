package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flightexpert/booking-engine/internal/model"
)

// BookingRepo persists completed bookings and their passengers.  Each call
// checks a connection out of the pool and releases it on every exit path,
// so independent conversations write concurrently without any in-process
// locking; correctness relies on the storage engine's own transactional
// guarantees.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingRecord mirrors the schema of the bookings table.  CreatedAt is
// stored as an ISO-8601 UTC string, matching what the orchestrator renders
// into the confirmation.
type BookingRecord struct {
	ID                 int64
	Origin             string
	Destination        string
	TravelDate         string
	ReturnDate         string
	ClassSelection     string
	PrimaryContactName string
	TravelerCount      int
	CreatedAt          string
}

const bookingSchema = `CREATE TABLE IF NOT EXISTS bookings (
  id BIGINT PRIMARY KEY AUTO_INCREMENT,
  origin VARCHAR(128) NOT NULL,
  destination VARCHAR(128) NOT NULL,
  travel_date VARCHAR(32) NOT NULL,
  return_date VARCHAR(32) NOT NULL,
  class_selection VARCHAR(32) NOT NULL,
  primary_contact_name VARCHAR(255) NOT NULL,
  traveler_count INT NOT NULL,
  created_at VARCHAR(40) NOT NULL
)`

const passengerSchema = `CREATE TABLE IF NOT EXISTS passengers (
  id BIGINT PRIMARY KEY AUTO_INCREMENT,
  booking_id BIGINT NOT NULL,
  name VARCHAR(255) NOT NULL,
  phone VARCHAR(64) NOT NULL,
  email VARCHAR(255) NOT NULL,
  seat_preference VARCHAR(16) NOT NULL,
  KEY idx_passengers_booking (booking_id)
)`

// EnsureSchema creates the bookings and passengers tables when missing.
// It is idempotent and safe to call before every write.
func (r *BookingRepo) EnsureSchema(ctx context.Context) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %v", ErrPersistence, err)
	}
	defer conn.Close()

	for _, ddl := range []string{bookingSchema, passengerSchema} {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: ensure schema: %v", ErrPersistence, err)
		}
	}
	return nil
}

// SaveBooking inserts a booking row and returns the generated id.
func (r *BookingRepo) SaveBooking(ctx context.Context, rec BookingRecord) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: acquire connection: %v", ErrPersistence, err)
	}
	defer conn.Close()

	const q = `INSERT INTO bookings
	  (origin, destination, travel_date, return_date, class_selection, primary_contact_name, traveler_count, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := conn.ExecContext(ctx, q,
		rec.Origin, rec.Destination, rec.TravelDate, rec.ReturnDate,
		rec.ClassSelection, rec.PrimaryContactName, rec.TravelerCount, rec.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert booking: %v", ErrPersistence, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: booking id: %v", ErrPersistence, err)
	}
	return id, nil
}

// SavePassengers bulk-inserts one row per passenger, each referencing the
// booking id.  An empty list is a no-op.
func (r *BookingRepo) SavePassengers(ctx context.Context, bookingID int64, passengers []model.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquire connection: %v", ErrPersistence, err)
	}
	defer conn.Close()

	query := `INSERT INTO passengers (booking_id, name, phone, email, seat_preference) VALUES `
	args := make([]interface{}, 0, len(passengers)*5)
	for i, p := range passengers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, bookingID, p.Name, p.Phone, p.Email, p.SeatPreference)
	}
	if _, err := conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert passengers: %v", ErrPersistence, err)
	}
	return nil
}
