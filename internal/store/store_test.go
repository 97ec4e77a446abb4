package store

import (
	"reflect"
	"testing"

	"github.com/matchup-app/matchup/internal/api"
	"github.com/matchup-app/matchup/internal/domain"
)

func sampleChallenge(id string) domain.Challenge {
	return domain.Challenge{
		ID:     id,
		Name:   "Cup " + id,
		Status: domain.ChallengeOpen,
		Owner:  domain.Profile{ID: "owner-" + id},
	}
}

func TestReduceReplaceThenAppend(t *testing.T) {
	s := State{
		Challenges: []domain.Challenge{sampleChallenge("old")},
		Loading:    true,
		Err:        &api.Classified{Kind: api.KindServer},
	}

	s = Reduce(s, ReplaceChallenges{Challenges: nil})
	c := sampleChallenge("c1")
	s = Reduce(s, AppendChallenge{Challenge: c})

	if len(s.Challenges) != 1 || s.Challenges[0].ID != "c1" {
		t.Fatalf("challenges = %+v, want exactly [c1]", s.Challenges)
	}
	if s.Loading {
		t.Error("loading not cleared")
	}
	if s.Err != nil {
		t.Error("error not cleared")
	}
}

func TestReduceRecordJoin(t *testing.T) {
	s := State{Challenges: []domain.Challenge{sampleChallenge("c1"), sampleChallenge("c2")}}

	p := domain.Profile{ID: "p9", Name: "Maria"}
	next := Reduce(s, RecordJoin{ChallengeID: "c2", Profile: p})

	if got := next.Challenges[1].Participants; len(got) != 1 || got[0].ID != "p9" {
		t.Fatalf("participants = %+v, want [p9]", got)
	}
	if len(s.Challenges[1].Participants) != 0 {
		t.Error("input state was mutated")
	}
	if len(next.Challenges[0].Participants) != 0 {
		t.Error("unrelated challenge gained a participant")
	}
}

func TestReduceRecordJoinUnknownIDIsNoOp(t *testing.T) {
	s := State{
		Challenges: []domain.Challenge{sampleChallenge("c1")},
		Loading:    true,
		Err:        &api.Classified{Kind: api.KindNetwork},
	}

	next := Reduce(s, RecordJoin{ChallengeID: "missing", Profile: domain.Profile{ID: "p1"}})

	if !reflect.DeepEqual(s, next) {
		t.Errorf("state changed on unknown id:\n  got  %+v\n  want %+v", next, s)
	}
}

func TestReduceSetLoadingPreservesError(t *testing.T) {
	errRec := &api.Classified{Kind: api.KindServer, Message: "boom", Retryable: true}
	s := State{Err: errRec}

	s = Reduce(s, SetLoading{Loading: true})
	if s.Err != errRec {
		t.Error("SetLoading must not clear the error")
	}
	if !s.Loading {
		t.Error("loading not set")
	}
}

func TestReduceSetErrorForcesLoadingOff(t *testing.T) {
	s := State{Loading: true}
	s = Reduce(s, SetError{Err: &api.Classified{Kind: api.KindNetwork}})
	if s.Loading {
		t.Error("SetError must lower the loading flag")
	}
	if s.Err == nil {
		t.Error("error not recorded")
	}

	s = Reduce(s, SetError{Err: nil})
	if s.Err != nil {
		t.Error("SetError(nil) must clear the error")
	}
}

func TestReduceNavigate(t *testing.T) {
	s := State{Nav: Nav{Current: SectionHome}}

	s = Reduce(s, Navigate{Section: "venues"})
	if s.Nav.Current != "venues" || s.Nav.Previous != SectionHome {
		t.Errorf("nav = %+v", s.Nav)
	}

	// One level deep only: a second navigate forgets "home".
	s = Reduce(s, Navigate{Section: "challenges"})
	if s.Nav.Current != "challenges" || s.Nav.Previous != "venues" {
		t.Errorf("nav = %+v", s.Nav)
	}
}

func TestReduceSetActiveProfile(t *testing.T) {
	s := Reduce(State{}, SetActiveProfile{Profile: domain.Profile{ID: "p1", Name: "Ana"}})
	if s.ActiveProfile == nil || s.ActiveProfile.ID != "p1" {
		t.Fatalf("active profile = %+v", s.ActiveProfile)
	}

	s = Reduce(s, UpdateActiveProfile{Profile: domain.Profile{ID: "p1", Name: "Ana Maria"}})
	if s.ActiveProfile.Name != "Ana Maria" {
		t.Errorf("active profile not replaced: %+v", s.ActiveProfile)
	}
}

func TestStoreDispatchAndSubscribe(t *testing.T) {
	st := New()

	if got := st.GetState().Nav.Current; got != SectionHome {
		t.Fatalf("initial section = %q, want home", got)
	}

	ch := st.Subscribe()
	defer st.Unsubscribe(ch)

	st.Dispatch(ReplaceVenues{Venues: []domain.Venue{{ID: "v1", Status: "1"}}})

	select {
	case snap := <-ch:
		if len(snap.Venues) != 1 || snap.Venues[0].ID != "v1" {
			t.Errorf("snapshot venues = %+v", snap.Venues)
		}
	default:
		t.Fatal("no snapshot delivered to subscriber")
	}

	if got := st.GetState().Venues; len(got) != 1 {
		t.Errorf("state venues = %+v", got)
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	st := New()
	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				st.Dispatch(SetLoading{Loading: j%2 == 0})
				_ = st.GetState()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
