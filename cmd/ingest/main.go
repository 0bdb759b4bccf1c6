// Command ingest loads a flight-schedule JSON dump (aviationstack response
// shape) into the flights table.  Dates arrive in a mix of notations, so
// every row passes through the general date normalizer before storage.
// Duplicate rows are ignored via the table's unique key, making re-runs
// safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/flightexpert/booking-engine/internal/config"
	"github.com/flightexpert/booking-engine/internal/database"
	"github.com/flightexpert/booking-engine/internal/dates"
	"github.com/flightexpert/booking-engine/internal/repository"
	"github.com/flightexpert/booking-engine/internal/utils"
)

// feed mirrors the parts of the upstream response the ingester reads.
type feed struct {
	Data []feedFlight `json:"data"`
}

type feedFlight struct {
	FlightDate string       `json:"flight_date"`
	Airline    feedAirline  `json:"airline"`
	Flight     feedNumber   `json:"flight"`
	Departure  feedEndpoint `json:"departure"`
	Arrival    feedEndpoint `json:"arrival"`
}

type feedAirline struct {
	Name string `json:"name"`
}

type feedNumber struct {
	IATA   string `json:"iata"`
	Number string `json:"number"`
}

type feedEndpoint struct {
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
}

func main() {
	file := flag.String("file", "flight_data.json", "path to the schedule JSON dump")
	flag.Parse()

	_ = godotenv.Load()
	db, err := database.Open(config.LoadDB())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	var f feed
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}
	if len(f.Data) == 0 {
		log.Println("no flights in feed; nothing to do")
		return
	}

	ctx := context.Background()
	repo := repository.NewFlightRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	normalizer := dates.New()
	inserted, skipped := 0, 0
	for _, item := range f.Data {
		rec, ok := recordFromFeed(normalizer, item)
		if !ok {
			skipped++ // incomplete rows are dropped, not fatal
			continue
		}
		added, err := repo.UpsertIgnore(ctx, rec)
		if err != nil {
			log.Fatalf("insert flight: %v", err)
		}
		if added {
			inserted++
		}
	}
	log.Printf("inserted %d/%d flights (%d incomplete rows skipped, duplicates ignored)",
		inserted, len(f.Data), skipped)
}

// recordFromFeed converts one feed item into a FlightRecord.  Rows missing
// either endpoint code or a parseable date are reported as not ok.
func recordFromFeed(n *dates.Normalizer, item feedFlight) (repository.FlightRecord, bool) {
	origin := strings.ToUpper(strings.TrimSpace(item.Departure.IATA))
	destination := strings.ToUpper(strings.TrimSpace(item.Arrival.IATA))

	// Prefer the explicit flight date, then derive from the departure
	// schedule, matching the upstream feed's own precedence.
	dateRaw := utils.FirstNonEmpty(item.FlightDate, item.Departure.Scheduled, item.Departure.Estimated)
	travelDate, err := n.NormalizeGeneral(dateRaw)
	if origin == "" || destination == "" || err != nil {
		return repository.FlightRecord{}, false
	}

	rec := repository.FlightRecord{
		FlightName:  flightName(item),
		TravelDate:  travelDate,
		Origin:      origin,
		Destination: destination,
	}
	if dep := utils.FirstNonEmpty(item.Departure.Scheduled, item.Departure.Estimated); dep != "" {
		rec.DepartureTime = &dep
	}
	if arr := utils.FirstNonEmpty(item.Arrival.Scheduled, item.Arrival.Estimated); arr != "" {
		rec.ArrivalTime = &arr
	}
	return rec, true
}

// flightName joins the airline name with the flight's IATA code or bare
// number, defaulting to "Unknown" when the feed omits the airline.
func flightName(item feedFlight) string {
	airline := strings.TrimSpace(item.Airline.Name)
	if airline == "" {
		airline = "Unknown"
	}
	number := utils.FirstNonEmpty(item.Flight.IATA, item.Flight.Number)
	if number == "" {
		return airline
	}
	return airline + " " + number
}
