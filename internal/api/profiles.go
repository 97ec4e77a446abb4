package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/matchup-app/matchup/internal/domain"
)

// ProfileUpdate is a partial update of the active profile. Only non-nil
// fields are validated and sent.
type ProfileUpdate struct {
	Name      *string
	Expertise *string
	Score     *int
}

func (u ProfileUpdate) validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if u.Expertise != nil && !domain.KnownExpertise(*u.Expertise) {
		return &ValidationError{Field: "expertise", Message: "must be one of BEGINNER, INTERMEDIATE, EXPERT"}
	}
	if u.Score != nil && *u.Score < 0 {
		return &ValidationError{Field: "score", Message: "must not be negative"}
	}
	return nil
}

// ActiveProfile fetches the local user's profile by its id.
func (c *Client) ActiveProfile(ctx context.Context, activeID string) (domain.Profile, error) {
	return c.GetProfile(ctx, activeID)
}

// GetProfile fetches a profile by id.
func (c *Client) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Profile{}, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	data, err := c.do(ctx, http.MethodGet, "/players/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Profile{}, err
	}
	return c.dec.Profile(data)
}

// UpdateActiveProfile sends a partial update for the active profile and
// returns the server's resulting profile.
func (c *Client) UpdateActiveProfile(ctx context.Context, u ProfileUpdate) (domain.Profile, error) {
	if err := u.validate(); err != nil {
		return domain.Profile{}, err
	}
	body := map[string]any{}
	if u.Name != nil {
		body["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Expertise != nil {
		body["expertise"] = string(domain.NormalizeExpertise(*u.Expertise))
	}
	if u.Score != nil {
		body["score"] = *u.Score
	}
	data, err := c.do(ctx, http.MethodPut, "/players/me", body)
	if err != nil {
		return domain.Profile{}, err
	}
	return c.dec.Profile(data)
}

// ProfilesByExpertise fetches the profiles at a given tier.
func (c *Client) ProfilesByExpertise(ctx context.Context, tier string) ([]domain.Profile, error) {
	if !domain.KnownExpertise(tier) {
		return nil, &ValidationError{Field: "expertise", Message: "must be one of BEGINNER, INTERMEDIATE, EXPERT"}
	}
	canonical := string(domain.NormalizeExpertise(tier))
	data, err := c.do(ctx, http.MethodGet, "/players?expertise="+url.QueryEscape(canonical), nil)
	if err != nil {
		return nil, err
	}
	return c.dec.ProfileList(data)
}

// TopProfiles fetches the n highest-scoring profiles. Zero means the default
// of 10; a negative n is a validation error.
func (c *Client) TopProfiles(ctx context.Context, n int) ([]domain.Profile, error) {
	if n < 0 {
		return nil, &ValidationError{Field: "limit", Message: "must be a positive integer"}
	}
	if n == 0 {
		n = 10
	}
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/players/top?limit=%d", n), nil)
	if err != nil {
		return nil, err
	}
	return c.dec.ProfileList(data)
}

// AdjustScore applies a signed delta to a profile's score.
func (c *Client) AdjustScore(ctx context.Context, id string, delta int) (domain.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Profile{}, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	body := map[string]int{"points": delta}
	data, err := c.do(ctx, http.MethodPost, "/players/"+url.PathEscape(id)+"/points", body)
	if err != nil {
		return domain.Profile{}, err
	}
	return c.dec.Profile(data)
}

// SetExpertise sets a profile's tier directly.
func (c *Client) SetExpertise(ctx context.Context, id, tier string) (domain.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Profile{}, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if !domain.KnownExpertise(tier) {
		return domain.Profile{}, &ValidationError{Field: "expertise", Message: "must be one of BEGINNER, INTERMEDIATE, EXPERT"}
	}
	body := map[string]string{"expertise": string(domain.NormalizeExpertise(tier))}
	data, err := c.do(ctx, http.MethodPost, "/players/"+url.PathEscape(id)+"/expertise", body)
	if err != nil {
		return domain.Profile{}, err
	}
	return c.dec.Profile(data)
}
