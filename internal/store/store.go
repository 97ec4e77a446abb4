// Package store is the single source of truth for server-derived entities.
// It holds one State aggregate, mutated only through named actions run
// through a pure reducer, and fans out snapshots to subscribers.
package store

import (
	"sync"

	"github.com/matchup-app/matchup/internal/api"
	"github.com/matchup-app/matchup/internal/domain"
)

// Section is a navigation position.
type Section string

const SectionHome Section = "home"

// Nav keeps one level of back history only.
type Nav struct {
	Current  Section
	Previous Section
}

// State is the application aggregate. Collections are replaced wholesale on
// refresh, never merged; readers must treat slices as read-only.
type State struct {
	ActiveProfile *domain.Profile
	Venues        []domain.Venue
	Challenges    []domain.Challenge
	Nav           Nav
	Loading       bool
	Err           *api.Classified
}

// Action is a named transition. The store accepts nothing else.
type Action interface{ isAction() }

type ReplaceVenues struct{ Venues []domain.Venue }
type ReplaceChallenges struct{ Challenges []domain.Challenge }
type SetActiveProfile struct{ Profile domain.Profile }
type AppendChallenge struct{ Challenge domain.Challenge }
type RecordJoin struct {
	ChallengeID string
	Profile     domain.Profile
}
type UpdateActiveProfile struct{ Profile domain.Profile }
type SetLoading struct{ Loading bool }
type SetError struct{ Err *api.Classified }
type Navigate struct{ Section Section }

func (ReplaceVenues) isAction()       {}
func (ReplaceChallenges) isAction()   {}
func (SetActiveProfile) isAction()    {}
func (AppendChallenge) isAction()     {}
func (RecordJoin) isAction()          {}
func (UpdateActiveProfile) isAction() {}
func (SetLoading) isAction()          {}
func (SetError) isAction()            {}
func (Navigate) isAction()            {}

// Reduce computes the next state. Pure: the input state and the payloads are
// never mutated. Every action clears the error and loading flag except
// SetLoading, which preserves the error, and SetError, which forces loading
// off.
func Reduce(s State, a Action) State {
	next := s

	switch a := a.(type) {
	case ReplaceVenues:
		next.Venues = a.Venues
	case ReplaceChallenges:
		next.Challenges = a.Challenges
	case SetActiveProfile:
		p := a.Profile
		next.ActiveProfile = &p
	case AppendChallenge:
		challenges := make([]domain.Challenge, 0, len(s.Challenges)+1)
		challenges = append(challenges, s.Challenges...)
		challenges = append(challenges, a.Challenge)
		next.Challenges = challenges
	case RecordJoin:
		// No matching challenge is a silent no-op: the state comes back
		// unchanged and no error is raised.
		idx := -1
		for i, c := range s.Challenges {
			if c.ID == a.ChallengeID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		challenges := make([]domain.Challenge, len(s.Challenges))
		copy(challenges, s.Challenges)
		joined := challenges[idx]
		participants := make([]domain.Profile, 0, len(joined.Participants)+1)
		participants = append(participants, joined.Participants...)
		participants = append(participants, a.Profile)
		joined.Participants = participants
		challenges[idx] = joined
		next.Challenges = challenges
	case UpdateActiveProfile:
		p := a.Profile
		next.ActiveProfile = &p
	case SetLoading:
		next.Loading = a.Loading
		return next
	case SetError:
		next.Err = a.Err
		next.Loading = false
		return next
	case Navigate:
		next.Nav = Nav{Current: a.Section, Previous: s.Nav.Current}
	}

	next.Err = nil
	next.Loading = false
	return next
}

// Store wraps the reducer with locking and subscriptions. Construct one and
// pass it explicitly; there is no package-level singleton.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[chan State]struct{}
}

func New() *Store {
	return &Store{
		state: State{Nav: Nav{Current: SectionHome}},
		subs:  make(map[chan State]struct{}),
	}
}

// GetState returns the current snapshot.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies an action and notifies subscribers with the new snapshot.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state
	subs := make([]chan State, 0, len(s.subs))
	for ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
			// Drop if subscriber is slow.
		}
	}
}

// Subscribe returns a channel that receives a snapshot after every dispatch.
func (s *Store) Subscribe() chan State {
	ch := make(chan State, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel.
func (s *Store) Unsubscribe(ch chan State) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}
