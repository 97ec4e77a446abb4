package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/matchup-app/matchup/internal/domain"
)

// ListVenues fetches every venue.
func (c *Client) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	data, err := c.do(ctx, http.MethodGet, "/places", nil)
	if err != nil {
		return nil, err
	}
	return c.dec.VenueList(data)
}

// GetVenue fetches a single venue by id.
func (c *Client) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Venue{}, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	data, err := c.do(ctx, http.MethodGet, "/places/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Venue{}, err
	}
	return c.dec.Venue(data)
}

// VenuesByStatus fetches all venues and keeps those matching the status code.
// The filter is client-side; there is no per-status endpoint. Order is
// preserved.
func (c *Client) VenuesByStatus(ctx context.Context, status string) ([]domain.Venue, error) {
	venues, err := c.ListVenues(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVenuesByStatus(venues, status), nil
}

// ActiveVenues returns the venues open for activity (status "1").
func (c *Client) ActiveVenues(ctx context.Context) ([]domain.Venue, error) {
	return c.VenuesByStatus(ctx, domain.VenueStatusOpen)
}

// FilterVenuesByStatus filters an already-fetched venue list, preserving
// order. Useful when the caller holds the collection from the store.
func FilterVenuesByStatus(venues []domain.Venue, status string) []domain.Venue {
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out
}
