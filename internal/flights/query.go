// Package flights implements the availability lookup used by the
// travel-date validator: route candidate expansion through the location
// resolver, a capped ordered query against the flight store and a short
// Redis cache in front of it.
package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flightexpert/booking-engine/internal/dates"
	"github.com/flightexpert/booking-engine/internal/location"
	"github.com/flightexpert/booking-engine/internal/model"
)

// maxOffers caps the rendered availability list so the chat message stays
// short.
const maxOffers = 5

// OfferStore is the read side of the flight schedule store.
type OfferStore interface {
	FindOffers(ctx context.Context, travelDate string, origins, destinations []string, limit int) ([]model.FlightOffer, error)
}

// Query looks up matching flights for a resolved route and a validated
// conversational date.  Cache may be nil, in which case every lookup goes
// to the store; cache errors are ignored so Redis outages never surface
// into the conversation.
type Query struct {
	Store     OfferStore
	Locations *location.Resolver
	Cache     *redis.Client
	CacheTTL  time.Duration
}

// NewQuery constructs a Query.  Store and locations must be non-nil; cache
// is optional.
func NewQuery(store OfferStore, loc *location.Resolver, cache *redis.Client, ttl time.Duration) *Query {
	if store == nil || loc == nil {
		panic("nil dependency passed to flights.NewQuery")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Query{Store: store, Locations: loc, Cache: cache, CacheTTL: ttl}
}

// Find resolves both endpoints to their candidate code sets, normalizes the
// conversational date and queries the store.  The caller guarantees the
// date already passed conversational validation, so only the fixed
// DD/MM/YYYY layout is re-applied here; no clock is consulted, keeping the
// result stable across the midnight boundary.  A date that fails even the
// layout check yields an empty result rather than an error.
func (q *Query) Find(ctx context.Context, origin, destination, travelDate string) ([]model.FlightOffer, error) {
	iso, err := dates.ParseConversational(travelDate)
	if err != nil {
		return []model.FlightOffer{}, nil
	}

	origins := q.Locations.ExpandCandidates(q.Locations.Resolve(origin))
	destinations := q.Locations.ExpandCandidates(q.Locations.Resolve(destination))
	if len(origins) == 0 || len(destinations) == 0 {
		return []model.FlightOffer{}, nil
	}

	key := cacheKey(origins[0], destinations[0], iso)
	if cached, ok := q.cacheGet(ctx, key); ok {
		return cached, nil
	}

	offers, err := q.Store.FindOffers(ctx, iso, origins, destinations, maxOffers)
	if err != nil {
		return nil, err
	}
	q.cacheSet(ctx, key, offers)
	return offers, nil
}

func cacheKey(origin, destination, iso string) string {
	return fmt.Sprintf("flights:%s:%s:%s", strings.ToUpper(origin), strings.ToUpper(destination), iso)
}

func (q *Query) cacheGet(ctx context.Context, key string) ([]model.FlightOffer, bool) {
	if q.Cache == nil {
		return nil, false
	}
	raw, err := q.Cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var offers []model.FlightOffer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (q *Query) cacheSet(ctx context.Context, key string, offers []model.FlightOffer) {
	if q.Cache == nil {
		return
	}
	raw, err := json.Marshal(offers)
	if err != nil {
		return
	}
	_ = q.Cache.Set(ctx, key, raw, q.CacheTTL).Err()
}
