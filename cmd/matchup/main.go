// Command matchup exercises the sync layer end to end against a running API
// (the stub server by default): it bootstraps the store and prints what the
// app would render on its home screen.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/matchup-app/matchup/internal/api"
	"github.com/matchup-app/matchup/internal/appsync"
	"github.com/matchup-app/matchup/internal/config"
	"github.com/matchup-app/matchup/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	client, err := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	st := store.New()
	orch := appsync.New(client, st, logger, cfg.ActivePlayerID)

	orch.Bootstrap(ctx)

	s := st.GetState()
	fmt.Fprintf(stdout, "venues: %d (%d active)\n",
		len(s.Venues), len(api.FilterVenuesByStatus(s.Venues, "1")))
	fmt.Fprintf(stdout, "open challenges: %d\n", len(s.Challenges))
	for _, c := range s.Challenges {
		fmt.Fprintf(stdout, "  - %s at %s on %s (%s), %d joined\n",
			c.Name, c.Place.Name, c.Date, c.Time, len(c.Participants))
	}
	if s.ActiveProfile != nil {
		fmt.Fprintf(stdout, "signed in as %s (%s, %d pts)\n",
			s.ActiveProfile.Name, s.ActiveProfile.Expertise, s.ActiveProfile.Score)
	} else {
		fmt.Fprintln(stdout, "not signed in")
	}
	return nil
}
