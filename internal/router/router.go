package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/flightexpert/booking-engine/internal/handler"    // import the handlers that implement business logic
	"github.com/flightexpert/booking-engine/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The GET request at "/healthz" can be used by load balancers or
	// monitoring systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterWebhook registers the per-field dialogue webhook and applies the
// JWT middleware.  Every route in the group requires a Bearer token signed
// with jwtSecret; the dialogue manager is the only expected caller.
func RegisterWebhook(e *echo.Echo, h *handler.WebhookHandler, jwtSecret string) {
	g := e.Group("/v1/webhook")
	g.Use(middleware.JWTAuth(jwtSecret))

	// Validate one field against the current snapshot and return a patch.
	g.POST("/validate", h.Validate)
	// Report which fields remain to be collected; the list is
	// state-dependent, so the dialogue manager calls this after every patch.
	g.POST("/required", h.Required)
	// Finalize the booking: persist, confirm and clear the snapshot.
	g.POST("/submit", h.Submit)
	// Clear transient session state and signal a restart at the greeting.
	g.POST("/reset", h.Reset)
}
