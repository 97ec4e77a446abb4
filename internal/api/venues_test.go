package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/matchup-app/matchup/internal/domain"
)

const venueListJSON = `{"places":[
	{"id":"v1","name":"North Court","latitude":1,"longitude":2,"status":"1"},
	{"id":"v2","name":"Old Hall","latitude":3,"longitude":4,"status":"0"},
	{"id":"v3","name":"River Park","latitude":5,"longitude":6,"status":"1"}
]}`

func TestListVenues(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, venueListJSON))

	venues, err := c.ListVenues(t.Context())
	if err != nil {
		t.Fatalf("listing venues: %v", err)
	}
	if len(venues) != 3 {
		t.Fatalf("got %d venues, want 3", len(venues))
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 request, got %d", calls.Load())
	}
}

func TestActiveVenuesOrderPreserved(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, venueListJSON))

	active, err := c.ActiveVenues(t.Context())
	if err != nil {
		t.Fatalf("listing active venues: %v", err)
	}
	if len(active) != 2 || active[0].ID != "v1" || active[1].ID != "v3" {
		t.Errorf("active venues = %+v, want [v1 v3] in order", active)
	}
}

func TestFilterVenuesByStatus(t *testing.T) {
	venues := []domain.Venue{
		{ID: "a", Status: "1"},
		{ID: "b", Status: "2"},
		{ID: "c", Status: "1"},
	}
	got := FilterVenuesByStatus(venues, "1")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("filtered = %+v", got)
	}
	if got := FilterVenuesByStatus(venues, "9"); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestGetVenueEmptyID(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, `{}`))

	_, err := c.GetVenue(t.Context(), "  ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("validation failure must not hit the network, got %d calls", calls.Load())
	}
}

func TestListVenuesMalformedPayload(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"places":"nope"}`))

	_, err := c.ListVenues(t.Context())
	if err == nil {
		t.Fatal("expected decode error for non-array places")
	}
	if got := Classify(err); got.Kind != KindUnknown {
		t.Errorf("malformed payload classified as %q, want unknown", got.Kind)
	}
}
