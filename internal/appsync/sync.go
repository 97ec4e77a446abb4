// Package appsync coordinates the gateways and the store: the concurrent
// startup load and the write-then-refresh pattern for create, join, and
// profile updates.
package appsync

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matchup-app/matchup/internal/api"
	"github.com/matchup-app/matchup/internal/domain"
	"github.com/matchup-app/matchup/internal/store"
)

type Orchestrator struct {
	client   *api.Client
	store    *store.Store
	logger   *slog.Logger
	activeID string

	mu   sync.Mutex
	busy map[string]struct{} // challenge ids with a join in flight
}

// New builds an orchestrator for the given active profile id.
func New(client *api.Client, st *store.Store, logger *slog.Logger, activeProfileID string) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		client:   client,
		store:    st,
		logger:   logger,
		activeID: activeProfileID,
		busy:     make(map[string]struct{}),
	}
}

// Bootstrap runs the initial bulk load: venues, open challenges, and the
// active profile, fetched concurrently. Each fetch is independently
// fault-tolerant: a failed collection commits as empty, a failed profile
// fetch leaves the active profile unset (a valid logged-out state). The
// loading flag is raised before dispatch and lowered once all three have
// settled. The shared error slot is never written here.
func (o *Orchestrator) Bootstrap(ctx context.Context) {
	o.store.Dispatch(store.SetLoading{Loading: true})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		venues, err := o.client.ListVenues(ctx)
		if err != nil {
			o.logger.Warn("bootstrap: venues failed", "error", err)
			venues = nil
		}
		o.store.Dispatch(store.ReplaceVenues{Venues: venues})
		return nil
	})

	g.Go(func() error {
		challenges, err := o.client.OpenChallenges(ctx)
		if err != nil {
			o.logger.Warn("bootstrap: challenges failed", "error", err)
			challenges = nil
		}
		o.store.Dispatch(store.ReplaceChallenges{Challenges: challenges})
		return nil
	})

	g.Go(func() error {
		profile, err := o.client.ActiveProfile(ctx, o.activeID)
		if err != nil {
			// Logged-out state, not an error state.
			o.logger.Warn("bootstrap: profile failed", "error", err)
			return nil
		}
		o.store.Dispatch(store.SetActiveProfile{Profile: profile})
		return nil
	})

	g.Wait()
	o.store.Dispatch(store.SetLoading{Loading: false})
}

// CreateChallenge validates and sends the create, then reconciles the
// challenge collection with a full refetch rather than patching locally, so
// server-computed fields never drift. Input-validation failures return to the
// caller untouched; remote failures are classified and committed to the
// shared error slot.
func (o *Orchestrator) CreateChallenge(ctx context.Context, p api.CreateChallengeParams) (domain.Challenge, error) {
	created, err := o.client.CreateChallenge(ctx, p)
	if err != nil {
		return domain.Challenge{}, o.fail(err)
	}
	o.refreshChallenges(ctx)
	return created, nil
}

// JoinChallenge sends a join for the active challenge and refetches the
// collection on success. While a join for the same challenge id is
// outstanding, further joins for that id are ignored: not queued, not
// errored.
func (o *Orchestrator) JoinChallenge(ctx context.Context, challengeID, profileID string) error {
	if !o.beginJoin(challengeID) {
		return nil
	}
	defer o.endJoin(challengeID)

	if _, err := o.client.JoinChallenge(ctx, challengeID, profileID); err != nil {
		return o.fail(err)
	}
	o.refreshChallenges(ctx)
	return nil
}

// UpdateProfile sends a partial update of the active profile and replaces the
// stored profile with the server's result.
func (o *Orchestrator) UpdateProfile(ctx context.Context, u api.ProfileUpdate) error {
	profile, err := o.client.UpdateActiveProfile(ctx, u)
	if err != nil {
		return o.fail(err)
	}
	o.store.Dispatch(store.UpdateActiveProfile{Profile: profile})
	return nil
}

func (o *Orchestrator) refreshChallenges(ctx context.Context) {
	challenges, err := o.client.OpenChallenges(ctx)
	if err != nil {
		o.fail(err)
		return
	}
	o.store.Dispatch(store.ReplaceChallenges{Challenges: challenges})
}

// fail routes a gateway failure: input-validation errors go straight back to
// the caller (a form renders them), everything else is classified and becomes
// the single shared error record. Collections are never touched on failure.
func (o *Orchestrator) fail(err error) error {
	var vErr *api.ValidationError
	if errors.As(err, &vErr) {
		return err
	}
	classified := api.Classify(err)
	o.store.Dispatch(store.SetError{Err: &classified})
	return err
}

func (o *Orchestrator) beginJoin(challengeID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, inFlight := o.busy[challengeID]; inFlight {
		return false
	}
	o.busy[challengeID] = struct{}{}
	return true
}

func (o *Orchestrator) endJoin(challengeID string) {
	o.mu.Lock()
	delete(o.busy, challengeID)
	o.mu.Unlock()
}
