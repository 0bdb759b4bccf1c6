package main // Entry point package

import (
	"context"
	"log" // Logging library
	"os"

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/flightexpert/booking-engine/internal/config"
	"github.com/flightexpert/booking-engine/internal/database"
	"github.com/flightexpert/booking-engine/internal/dates"
	"github.com/flightexpert/booking-engine/internal/engine"
	"github.com/flightexpert/booking-engine/internal/flights"
	"github.com/flightexpert/booking-engine/internal/handler"
	"github.com/flightexpert/booking-engine/internal/location"
	"github.com/flightexpert/booking-engine/internal/queue"
	"github.com/flightexpert/booking-engine/internal/repository"
	"github.com/flightexpert/booking-engine/internal/router"
	queuepublisher "github.com/flightexpert/booking-engine/internal/service"
	"github.com/flightexpert/booking-engine/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Static reference data, loaded once and immutable for the process
	// lifetime.
	index, err := config.LoadLocationIndex(cfg.LocationIndexPath)
	if err != nil {
		log.Fatalf("locations: %v", err)
	}
	nearby, err := config.LoadNearbyCodes(cfg.NearbyCodesPath)
	if err != nil {
		log.Fatalf("locations: %v", err)
	}
	resolver := location.NewResolver(index, nearby)

	normalizer := &dates.Normalizer{DayFirst: cfg.DateDayFirst}

	bookingRepo := repository.NewBookingRepo(db)
	flightRepo := repository.NewFlightRepo(db)

	// Create the storage structures up front; the repositories re-check
	// before every write, so this is belt only.
	ctx := context.Background()
	if err := bookingRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := flightRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis is optional; a nil client disables availability caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; flight availability caching disabled")
	}
	query := flights.NewQuery(flightRepo, resolver, rdb, cfg.FlightCacheTTL)

	eng := validation.NewEngine(resolver, normalizer, query)
	orch := engine.NewOrchestrator(bookingRepo, queuepublisher.PublishBookingConfirmed)

	// The confirmation-log consumer only runs when a broker is configured.
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go func() {
			if err := queue.StartBookingConsumer(); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterWebhook(e, handler.NewWebhookHandler(eng, orch), cfg.WebhookJWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
