// Package stubserver is a local fake of the remote matchup API. It serves
// every endpoint of the boundary contract over SQLite with seeded demo data,
// so the client can be developed and exercised without the real backend.
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"
)

type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

func New(addr string, logger *slog.Logger, store *Store, activeID string) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, store, activeID)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func addRoutes(r chi.Router, store *Store, activeID string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Matchup API (stub)", "/openapi.json", "/docs"))

	r.Get("/places", handleListPlaces(store))
	r.Get("/places/{id}", handleGetPlace(store))

	r.Get("/challenges", handleListChallenges(store))
	r.Post("/challenges", handleCreateChallenge(store))
	r.Get("/challenges/{id}", handleGetChallenge(store))
	r.Post("/challenges/{id}/join", handleJoinChallenge(store))

	r.Get("/players", handleListPlayers(store))
	r.Get("/players/top", handleTopPlayers(store))
	r.Put("/players/me", handleUpdateMe(store, activeID))
	r.Get("/players/{id}", handleGetPlayer(store))
	r.Post("/players/{id}/points", handleAdjustScore(store))
	r.Post("/players/{id}/expertise", handleSetExpertise(store))
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
