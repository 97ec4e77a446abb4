package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/matchup-app/matchup/internal/domain"
)

// CreateChallengeParams is the caller input for a new challenge. Every field
// is validated before a request is issued.
type CreateChallengeParams struct {
	Name    string
	PlaceID string
	Date    string
	Time    string
	OwnerID string
}

func (p CreateChallengeParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(p.PlaceID) == "" {
		return &ValidationError{Field: "placeId", Message: "must not be empty"}
	}
	if strings.TrimSpace(p.Date) == "" {
		return &ValidationError{Field: "date", Message: "must not be empty"}
	}
	if !domain.KnownTimeSlot(p.Time) {
		return &ValidationError{Field: "time", Message: "must be one of MORNING, AFTERNOON, EVENING, NIGHT"}
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		return &ValidationError{Field: "ownerId", Message: "must not be empty"}
	}
	return nil
}

// ListChallenges fetches every challenge.
func (c *Client) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	data, err := c.do(ctx, http.MethodGet, "/challenges", nil)
	if err != nil {
		return nil, err
	}
	return c.dec.ChallengeList(data)
}

// GetChallenge fetches a single challenge by id.
func (c *Client) GetChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Challenge{}, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	data, err := c.do(ctx, http.MethodGet, "/challenges/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.Challenge{}, err
	}
	return c.dec.Challenge(data)
}

// CreateChallenge validates params, posts the new challenge, and returns the
// server's version of it. Status is whatever the server assigned.
func (c *Client) CreateChallenge(ctx context.Context, p CreateChallengeParams) (domain.Challenge, error) {
	if err := p.validate(); err != nil {
		return domain.Challenge{}, err
	}
	body := map[string]string{
		"name":    strings.TrimSpace(p.Name),
		"placeId": strings.TrimSpace(p.PlaceID),
		"date":    strings.TrimSpace(p.Date),
		"time":    string(domain.NormalizeTimeSlot(p.Time)),
		"ownerId": strings.TrimSpace(p.OwnerID),
	}
	data, err := c.do(ctx, http.MethodPost, "/challenges", body)
	if err != nil {
		return domain.Challenge{}, err
	}
	return c.dec.Challenge(data)
}

// JoinChallenge adds a profile to a challenge's participants. No client-side
// deduplication happens here; calling twice sends two requests. The sync
// orchestrator guards against concurrent duplicates.
func (c *Client) JoinChallenge(ctx context.Context, challengeID, profileID string) (domain.Challenge, error) {
	if strings.TrimSpace(challengeID) == "" {
		return domain.Challenge{}, &ValidationError{Field: "challengeId", Message: "must not be empty"}
	}
	if strings.TrimSpace(profileID) == "" {
		return domain.Challenge{}, &ValidationError{Field: "playerId", Message: "must not be empty"}
	}
	body := map[string]string{
		"challengeId": challengeID,
		"playerId":    profileID,
	}
	data, err := c.do(ctx, http.MethodPost, "/challenges/"+url.PathEscape(challengeID)+"/join", body)
	if err != nil {
		return domain.Challenge{}, err
	}
	return c.dec.Challenge(data)
}

// ChallengesByPlace fetches all challenges and keeps those at the venue.
func (c *Client) ChallengesByPlace(ctx context.Context, placeID string) ([]domain.Challenge, error) {
	challenges, err := c.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Challenge, 0, len(challenges))
	for _, ch := range challenges {
		if ch.Place.ID == placeID {
			out = append(out, ch)
		}
	}
	return out, nil
}

// ChallengesByStatus fetches all challenges and keeps those whose status
// matches, case-insensitively.
func (c *Client) ChallengesByStatus(ctx context.Context, status string) ([]domain.Challenge, error) {
	challenges, err := c.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}
	return FilterChallengesByStatus(challenges, status), nil
}

// OpenChallenges returns the challenges still accepting participants.
func (c *Client) OpenChallenges(ctx context.Context) ([]domain.Challenge, error) {
	return c.ChallengesByStatus(ctx, string(domain.ChallengeOpen))
}

// FilterChallengesByStatus filters an already-fetched list by status,
// case-insensitively, preserving order.
func FilterChallengesByStatus(challenges []domain.Challenge, status string) []domain.Challenge {
	out := make([]domain.Challenge, 0, len(challenges))
	for _, ch := range challenges {
		if strings.EqualFold(string(ch.Status), status) {
			out = append(out, ch)
		}
	}
	return out
}
