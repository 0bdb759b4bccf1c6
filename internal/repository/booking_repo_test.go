package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/flightexpert/booking-engine/internal/model"
)

func sampleBooking() BookingRecord {
	return BookingRecord{
		Origin:             "Bangladesh",
		Destination:        "Canada",
		TravelDate:         "20/06/2025",
		ReturnDate:         "25/06/2025",
		ClassSelection:     "Economy",
		PrimaryContactName: "Alice Smith",
		TravelerCount:      2,
		CreatedAt:          "2025-06-15T09:00:00Z",
	}
}

func TestEnsureSchemaCreatesBothTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS passengers").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepo(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveBookingReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rec := sampleBooking()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(rec.Origin, rec.Destination, rec.TravelDate, rec.ReturnDate,
			rec.ClassSelection, rec.PrimaryContactName, rec.TravelerCount, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := NewBookingRepo(db)
	id, err := repo.SaveBooking(context.Background(), rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveBookingWrapsPersistenceError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("disk full"))

	repo := NewBookingRepo(db)
	_, err = repo.SaveBooking(context.Background(), sampleBooking())
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("error should wrap ErrPersistence, got %v", err)
	}
}

func TestSavePassengersBulkInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	passengers := []model.Passenger{
		{Name: "Alice Smith", Phone: "01711111111", Email: "alice@example.com", SeatPreference: "window"},
		{Name: "Bob Jones", Phone: "01722222222", Email: "bob@example.com", SeatPreference: "aisle"},
	}
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(
			int64(7), "Alice Smith", "01711111111", "alice@example.com", "window",
			int64(7), "Bob Jones", "01722222222", "bob@example.com", "aisle",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewBookingRepo(db)
	if err := repo.SavePassengers(context.Background(), 7, passengers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSavePassengersEmptyListIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewBookingRepo(db)
	if err := repo.SavePassengers(context.Background(), 7, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No statements expected, none should have run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
