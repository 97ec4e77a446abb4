package api

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newTestClient points a Client at an httptest server and counts requests.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c, &calls
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestDoServerErrorMessage(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusBadRequest,
		`{"message":"date is in the past","details":{"date":"2020-01-01"}}`))

	_, err := c.ListVenues(t.Context())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "date is in the past" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Details["date"] != "2020-01-01" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestDoUnparseableErrorBodyFallsBack(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusServiceUnavailable, `<html>down</html>`))

	_, err := c.ListVenues(t.Context())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "HTTP 503: Service Unavailable" {
		t.Errorf("message = %q, want generic fallback", apiErr.Message)
	}
}

func TestDoUnreachableServerIsStatusZero(t *testing.T) {
	// Port 1 refuses connections immediately.
	c, err := New(Config{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	_, err = c.ListVenues(t.Context())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d, want 0 for unreachable server", apiErr.Status)
	}
}
