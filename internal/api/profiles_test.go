package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/matchup-app/matchup/internal/domain"
)

const profileJSON = `{"id":"p1","name":"Ana","expertise":"EXPERT","score":90}`

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func TestUpdateActiveProfileBlankNameRejected(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, profileJSON))

	_, err := c.UpdateActiveProfile(t.Context(), ProfileUpdate{Name: strptr("   ")})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "name" {
		t.Errorf("field = %q, want name", vErr.Field)
	}
	if calls.Load() != 0 {
		t.Errorf("blank name issued %d network calls, want 0", calls.Load())
	}
}

func TestUpdateActiveProfilePartialBody(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/players/me" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(profileJSON))
	})
	c, _ := newTestClient(t, handler)

	_, err := c.UpdateActiveProfile(t.Context(), ProfileUpdate{Expertise: strptr("Intermediate")})
	if err != nil {
		t.Fatalf("updating profile: %v", err)
	}
	if len(gotBody) != 1 {
		t.Errorf("body = %v, want only the supplied field", gotBody)
	}
	if gotBody["expertise"] != "INTERMEDIATE" {
		t.Errorf("expertise sent as %v, want canonical INTERMEDIATE", gotBody["expertise"])
	}
}

func TestUpdateActiveProfileValidation(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, profileJSON))

	if _, err := c.UpdateActiveProfile(t.Context(), ProfileUpdate{Expertise: strptr("GURU")}); err == nil {
		t.Error("expected error for unknown tier")
	}
	if _, err := c.UpdateActiveProfile(t.Context(), ProfileUpdate{Score: intptr(-1)}); err == nil {
		t.Error("expected error for negative score")
	}
	if calls.Load() != 0 {
		t.Errorf("validation failures issued %d network calls", calls.Load())
	}
}

func TestProfilesByExpertise(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[` + profileJSON + `]`))
	})
	c, _ := newTestClient(t, handler)

	profiles, err := c.ProfilesByExpertise(t.Context(), "expert")
	if err != nil {
		t.Fatalf("filtering profiles: %v", err)
	}
	if gotQuery != "expertise=EXPERT" {
		t.Errorf("query = %q, want canonical tier", gotQuery)
	}
	if len(profiles) != 1 || profiles[0].Expertise != domain.ExpertiseExpert {
		t.Errorf("profiles = %+v", profiles)
	}
}

func TestTopProfiles(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[` + profileJSON + `]`))
	})
	c, calls := newTestClient(t, handler)

	if _, err := c.TopProfiles(t.Context(), 0); err != nil {
		t.Fatalf("top profiles with default limit: %v", err)
	}
	if gotQuery != "limit=10" {
		t.Errorf("query = %q, want the default limit of 10", gotQuery)
	}

	if _, err := c.TopProfiles(t.Context(), 3); err != nil {
		t.Fatalf("top profiles: %v", err)
	}
	if gotQuery != "limit=3" {
		t.Errorf("query = %q", gotQuery)
	}

	before := calls.Load()
	if _, err := c.TopProfiles(t.Context(), -1); err == nil {
		t.Error("expected error for negative limit")
	}
	if calls.Load() != before {
		t.Error("negative limit must not hit the network")
	}
}

func TestAdjustScore(t *testing.T) {
	var gotBody map[string]int
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(profileJSON))
	})
	c, _ := newTestClient(t, handler)

	if _, err := c.AdjustScore(t.Context(), "p1", -5); err != nil {
		t.Fatalf("adjusting score: %v", err)
	}
	if gotPath != "/players/p1/points" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["points"] != -5 {
		t.Errorf("body = %v, want points -5", gotBody)
	}
}

func TestSetExpertise(t *testing.T) {
	c, calls := newTestClient(t, jsonHandler(http.StatusOK, profileJSON))

	if _, err := c.SetExpertise(t.Context(), "p1", "Beginner"); err != nil {
		t.Fatalf("setting expertise: %v", err)
	}

	before := calls.Load()
	if _, err := c.SetExpertise(t.Context(), "p1", "LEGEND"); err == nil {
		t.Error("expected error for unknown tier")
	}
	if calls.Load() != before {
		t.Error("invalid tier must not hit the network")
	}
}
