// Package wire validates and decodes raw API payloads into domain values.
// The remote API is inconsistent about enum casing and about the challenge
// list envelope, so decoding is structural and lenient where the server is
// known to be sloppy, and strict everywhere else. No payload reaches the rest
// of the app without passing through here.
package wire

import (
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/matchup-app/matchup/internal/domain"
)

// DecodeError reports a payload that does not have the expected shape.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response: field %q %s", e.Field, e.Reason)
}

func errMissing(field string) error {
	return &DecodeError{Field: field, Reason: "is missing"}
}

func errKind(field, want string) error {
	return &DecodeError{Field: field, Reason: "is not of kind " + want}
}

// Decoder decodes payloads. Logger, when set, receives a warning whenever an
// unrecognized expertise value is normalized to the beginner fallback.
type Decoder struct {
	Logger *slog.Logger
}

func (d Decoder) warn(msg string, args ...any) {
	if d.Logger != nil {
		d.Logger.Warn(msg, args...)
	}
}

func requireString(r gjson.Result, field string) (string, error) {
	v := r.Get(field)
	if !v.Exists() {
		return "", errMissing(field)
	}
	if v.Type != gjson.String {
		return "", errKind(field, "string")
	}
	return v.String(), nil
}

func requireNumber(r gjson.Result, field string) (float64, error) {
	v := r.Get(field)
	if !v.Exists() {
		return 0, errMissing(field)
	}
	if v.Type != gjson.Number {
		return 0, errKind(field, "number")
	}
	return v.Float(), nil
}

func (d Decoder) venue(r gjson.Result, path string) (domain.Venue, error) {
	var v domain.Venue
	if !r.IsObject() {
		return v, errKind(path, "object")
	}
	var err error
	if v.ID, err = requireString(r, "id"); err != nil {
		return v, err
	}
	if v.Name, err = requireString(r, "name"); err != nil {
		return v, err
	}
	if v.Latitude, err = requireNumber(r, "latitude"); err != nil {
		return v, err
	}
	if v.Longitude, err = requireNumber(r, "longitude"); err != nil {
		return v, err
	}
	if v.Status, err = requireString(r, "status"); err != nil {
		return v, err
	}
	return v, nil
}

func (d Decoder) profile(r gjson.Result, path string) (domain.Profile, error) {
	var p domain.Profile
	if !r.IsObject() {
		return p, errKind(path, "object")
	}
	var err error
	if p.ID, err = requireString(r, "id"); err != nil {
		return p, err
	}
	if p.Name, err = requireString(r, "name"); err != nil {
		return p, err
	}
	raw, err := requireString(r, "expertise")
	if err != nil {
		return p, err
	}
	if !domain.KnownExpertise(raw) {
		// Fallback kept for wire compatibility, but worth noticing.
		d.warn("unrecognized expertise value, falling back to beginner",
			"profile_id", p.ID, "expertise", raw)
	}
	p.Expertise = domain.NormalizeExpertise(raw)

	score, err := requireNumber(r, "score")
	if err != nil {
		return p, err
	}
	if score < 0 {
		return p, &DecodeError{Field: "score", Reason: "is negative"}
	}
	p.Score = int(score)
	return p, nil
}

func (d Decoder) challenge(r gjson.Result, path string) (domain.Challenge, error) {
	var c domain.Challenge
	if !r.IsObject() {
		return c, errKind(path, "object")
	}
	var err error
	if c.ID, err = requireString(r, "id"); err != nil {
		return c, err
	}
	if c.Name, err = requireString(r, "name"); err != nil {
		return c, err
	}
	if c.Place, err = d.venue(r.Get("place"), "place"); err != nil {
		return c, err
	}
	if c.Date, err = requireString(r, "date"); err != nil {
		return c, err
	}

	rawTime, err := requireString(r, "time")
	if err != nil {
		return c, err
	}
	if !domain.KnownTimeSlot(rawTime) {
		return c, &DecodeError{Field: "time", Reason: "is not a known time slot"}
	}
	c.Time = domain.NormalizeTimeSlot(rawTime)

	// Status is server-authoritative; keep it verbatim, no default.
	status, err := requireString(r, "status")
	if err != nil {
		return c, err
	}
	c.Status = domain.ChallengeStatus(status)

	if c.Owner, err = d.profile(r.Get("owner"), "owner"); err != nil {
		return c, err
	}

	parts := r.Get("participants")
	if parts.Exists() {
		if !parts.IsArray() {
			return c, errKind("participants", "array")
		}
		for i, pr := range parts.Array() {
			p, err := d.profile(pr, fmt.Sprintf("participants[%d]", i))
			if err != nil {
				return c, err
			}
			c.Participants = append(c.Participants, p)
		}
	}
	return c, nil
}

// Venue decodes a single venue payload.
func (d Decoder) Venue(data []byte) (domain.Venue, error) {
	return d.venue(gjson.ParseBytes(data), "venue")
}

// VenueList decodes the {"places": [...]} list envelope.
func (d Decoder) VenueList(data []byte) ([]domain.Venue, error) {
	root := gjson.ParseBytes(data)
	places := root.Get("places")
	if !places.Exists() {
		return nil, errMissing("places")
	}
	if !places.IsArray() {
		return nil, errKind("places", "array")
	}
	venues := make([]domain.Venue, 0, len(places.Array()))
	for i, vr := range places.Array() {
		v, err := d.venue(vr, fmt.Sprintf("places[%d]", i))
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, nil
}

// Profile decodes a single profile payload.
func (d Decoder) Profile(data []byte) (domain.Profile, error) {
	return d.profile(gjson.ParseBytes(data), "profile")
}

// ProfileList decodes a bare profile array.
func (d Decoder) ProfileList(data []byte) ([]domain.Profile, error) {
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errKind("profiles", "array")
	}
	profiles := make([]domain.Profile, 0, len(root.Array()))
	for i, pr := range root.Array() {
		p, err := d.profile(pr, fmt.Sprintf("profiles[%d]", i))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Challenge decodes a single challenge payload.
func (d Decoder) Challenge(data []byte) (domain.Challenge, error) {
	return d.challenge(gjson.ParseBytes(data), "challenge")
}

// ChallengeList decodes the {"challenges": [...]} envelope. Older deployments
// return a bare array; both shapes are accepted.
func (d Decoder) ChallengeList(data []byte) ([]domain.Challenge, error) {
	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("challenges")
		if !list.Exists() {
			return nil, errMissing("challenges")
		}
	}
	if !list.IsArray() {
		return nil, errKind("challenges", "array")
	}
	challenges := make([]domain.Challenge, 0, len(list.Array()))
	for i, cr := range list.Array() {
		c, err := d.challenge(cr, fmt.Sprintf("challenges[%d]", i))
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, nil
}
