package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/matchup-app/matchup/internal/config"
	"github.com/matchup-app/matchup/internal/database"
	"github.com/matchup-app/matchup/internal/stubserver"
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

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	store, err := stubserver.NewStore(ctx, db)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	if err := stubserver.Seed(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	srv := stubserver.New(cfg.HTTPAddr, logger, store, stubserver.ActivePlayerID)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting stub api", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down stub api")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
