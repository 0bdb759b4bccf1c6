package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFindOffersExpandsCandidateSets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"flight_name", "departure_time", "arrival_time"}).
		AddRow("Biman BG-101", "08:30", "17:45").
		AddRow("Emirates EK-585", nil, nil)
	mock.ExpectQuery("SELECT flight_name, departure_time, arrival_time").
		WithArgs("2025-06-20", "JFK", "EWR", "LGA", "LHR", 5).
		WillReturnRows(rows)

	repo := NewFlightRepo(db)
	offers, err := repo.FindOffers(context.Background(), "2025-06-20",
		[]string{"JFK", "EWR", "LGA"}, []string{"LHR"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("got %d offers", len(offers))
	}
	if offers[0].FlightName != "Biman BG-101" || offers[0].DepartureTime == nil || *offers[0].DepartureTime != "08:30" {
		t.Fatalf("offer[0] = %+v", offers[0])
	}
	// NULL times come back as nil pointers, not empty strings.
	if offers[1].DepartureTime != nil || offers[1].ArrivalTime != nil {
		t.Fatalf("offer[1] = %+v", offers[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindOffersEmptyCandidateSetShortCircuits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewFlightRepo(db)
	offers, err := repo.FindOffers(context.Background(), "2025-06-20", nil, []string{"LHR"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 0 {
		t.Fatalf("got %d offers, want 0", len(offers))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query should have run: %v", err)
	}
}

func TestFindOffersWrapsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT flight_name").WillReturnError(errors.New("timeout"))

	repo := NewFlightRepo(db)
	_, err = repo.FindOffers(context.Background(), "2025-06-20", []string{"DAC"}, []string{"YYZ"}, 5)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("error should wrap ErrPersistence, got %v", err)
	}
}

func TestUpsertIgnoreReportsInsertion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	dep := "08:30"
	rec := FlightRecord{
		FlightName:    "Biman BG-101",
		TravelDate:    "2025-06-20",
		Origin:        "DAC",
		Destination:   "YYZ",
		DepartureTime: &dep,
	}

	mock.ExpectExec("INSERT IGNORE INTO flights").
		WithArgs(rec.FlightName, rec.TravelDate, rec.Origin, rec.Destination, rec.DepartureTime, rec.ArrivalTime).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT IGNORE INTO flights").
		WithArgs(rec.FlightName, rec.TravelDate, rec.Origin, rec.Destination, rec.DepartureTime, rec.ArrivalTime).
		WillReturnResult(sqlmock.NewResult(0, 0)) // duplicate ignored

	repo := NewFlightRepo(db)
	added, err := repo.UpsertIgnore(context.Background(), rec)
	if err != nil || !added {
		t.Fatalf("first insert: added=%v err=%v", added, err)
	}
	added, err = repo.UpsertIgnore(context.Background(), rec)
	if err != nil || added {
		t.Fatalf("duplicate insert: added=%v err=%v", added, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
