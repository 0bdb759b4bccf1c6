package handler

import (
	"fmt"      // rendering non-string slot values back to text
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/flightexpert/booking-engine/internal/engine"
	"github.com/flightexpert/booking-engine/internal/slots"
	"github.com/flightexpert/booking-engine/internal/validation"
)

// WebhookHandler exposes the per-field call contract to the hosting
// dialogue runtime.  Every request carries the full current snapshot;
// every response carries a partial patch plus zero or more user-facing
// messages.  No other coupling with the dialogue manager exists.
type WebhookHandler struct {
	Engine       *validation.Engine
	Orchestrator *engine.Orchestrator
}

// NewWebhookHandler constructs a WebhookHandler.  Both dependencies must
// be non-nil.
func NewWebhookHandler(eng *validation.Engine, orch *engine.Orchestrator) *WebhookHandler {
	if eng == nil || orch == nil {
		panic("nil dependency passed to NewWebhookHandler")
	}
	return &WebhookHandler{Engine: eng, Orchestrator: orch}
}

// validateRequest is the body of POST /v1/webhook/validate.  Value is
// declared as any because the dialogue manager may forward numbers or
// booleans for fields it already coerced.
type validateRequest struct {
	Field string         `json:"field"`
	Value any            `json:"value"`
	Slots slots.Snapshot `json:"slots"`
}

type snapshotRequest struct {
	Slots slots.Snapshot `json:"slots"`
}

// Validate handles POST /v1/webhook/validate: one field, one turn.
func (h *WebhookHandler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Field == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "field is required"})
	}
	if req.Slots == nil {
		req.Slots = slots.Snapshot{}
	}
	res := h.Engine.Validate(c.Request().Context(), req.Field, rawValue(req.Value), req.Slots)
	return c.JSON(http.StatusOK, resultResponse(res))
}

// Required handles POST /v1/webhook/required, exposing the dynamic
// required-field policy so the dialogue manager knows what to ask next.
// The policy is state-dependent and must be requested after every patch.
func (h *WebhookHandler) Required(c echo.Context) error {
	var req snapshotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Slots == nil {
		req.Slots = slots.Snapshot{}
	}
	return c.JSON(http.StatusOK, echo.Map{"required": validation.RequiredFields(req.Slots)})
}

// Submit handles POST /v1/webhook/submit, running the booking
// orchestrator over the accumulated snapshot.
func (h *WebhookHandler) Submit(c echo.Context) error {
	var req snapshotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Slots == nil {
		req.Slots = slots.Snapshot{}
	}
	res := h.Orchestrator.Submit(c.Request().Context(), req.Slots)
	return c.JSON(http.StatusOK, resultResponse(res))
}

// Reset handles POST /v1/webhook/reset.  Besides the clearing patch it
// sets restart=true, signalling the dialogue to start over at its
// greeting.
func (h *WebhookHandler) Reset(c echo.Context) error {
	res := h.Orchestrator.Reset()
	body := resultResponse(res)
	body["restart"] = true
	return c.JSON(http.StatusOK, body)
}

func resultResponse(res validation.Result) echo.Map {
	patch := res.Patch
	if patch == nil {
		patch = slots.Patch{}
	}
	messages := res.Messages
	if messages == nil {
		messages = []string{}
	}
	return echo.Map{"patch": patch, "messages": messages}
}

// rawValue renders whatever the dialogue manager sent back into the text
// form the validators expect.
func rawValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
