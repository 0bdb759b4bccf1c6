package flights

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/flightexpert/booking-engine/internal/location"
	"github.com/flightexpert/booking-engine/internal/model"
)

type fakeStore struct {
	offers     []model.FlightOffer
	err        error
	calls      int
	gotDate    string
	gotOrigins []string
	gotDests   []string
	gotLimit   int
}

func (f *fakeStore) FindOffers(_ context.Context, travelDate string, origins, destinations []string, limit int) ([]model.FlightOffer, error) {
	f.calls++
	f.gotDate = travelDate
	f.gotOrigins = origins
	f.gotDests = destinations
	f.gotLimit = limit
	return f.offers, f.err
}

func newTestQuery(store OfferStore) *Query {
	return NewQuery(store,
		location.NewResolver(location.DefaultIndex(), location.DefaultNearby()),
		nil, 0)
}

// Conversational dates are day-first; keep the fixture well in the future so
// the past-date check never trips.
const futureDate = "20/06/2031"

func TestFindExpandsAlternateAirports(t *testing.T) {
	store := &fakeStore{offers: []model.FlightOffer{{FlightName: "BA 100"}}}
	q := newTestQuery(store)

	offers, err := q.Find(context.Background(), "United States", "United Kingdom", futureDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || offers[0].FlightName != "BA 100" {
		t.Fatalf("offers = %+v", offers)
	}
	if store.gotDate != "2031-06-20" {
		t.Fatalf("store must receive the normalized date, got %q", store.gotDate)
	}
	if !reflect.DeepEqual(store.gotOrigins, []string{"JFK", "EWR", "LGA"}) {
		t.Fatalf("origins = %v", store.gotOrigins)
	}
	if !reflect.DeepEqual(store.gotDests, []string{"LHR", "LGW", "STN"}) {
		t.Fatalf("destinations = %v", store.gotDests)
	}
	if store.gotLimit != maxOffers {
		t.Fatalf("limit = %d", store.gotLimit)
	}
}

func TestFindUnverifiedCodeStillQueries(t *testing.T) {
	// An unsupported place degrades to its uppercased text; the lookup still
	// runs and simply finds nothing.
	store := &fakeStore{}
	q := newTestQuery(store)

	offers, err := q.Find(context.Background(), "narnia", "Canada", futureDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 0 {
		t.Fatalf("offers = %+v", offers)
	}
	if !reflect.DeepEqual(store.gotOrigins, []string{"NARNIA"}) {
		t.Fatalf("origins = %v", store.gotOrigins)
	}
}

func TestFindInvalidDateSkipsStore(t *testing.T) {
	store := &fakeStore{}
	q := newTestQuery(store)

	for _, raw := range []string{"2031-06-20", "31/02/2031", "someday"} {
		offers, err := q.Find(context.Background(), "Canada", "Japan", raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if len(offers) != 0 {
			t.Fatalf("%q: offers = %+v", raw, offers)
		}
	}
	if store.calls != 0 {
		t.Fatalf("store must not be queried for invalid dates")
	}
}

func TestFindTrustsCallerValidatedDate(t *testing.T) {
	// No clock is consulted here: a date that was valid when the validator
	// accepted it still queries, even once the wall clock has moved past it.
	store := &fakeStore{}
	q := newTestQuery(store)

	if _, err := q.Find(context.Background(), "Canada", "Japan", "05/06/2020"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.calls != 1 || store.gotDate != "2020-06-05" {
		t.Fatalf("store called %d times with %q", store.calls, store.gotDate)
	}
}

func TestFindPropagatesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	q := newTestQuery(store)

	if _, err := q.Find(context.Background(), "Canada", "Japan", futureDate); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestCacheKeyShape(t *testing.T) {
	if got := cacheKey("dac", "yyz", "2031-06-20"); got != "flights:DAC:YYZ:2031-06-20" {
		t.Fatalf("got %q", got)
	}
}
