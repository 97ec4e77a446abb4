package domain

import "testing"

func TestNormalizeExpertise(t *testing.T) {
	tests := []struct {
		raw  string
		want Expertise
	}{
		{"BEGINNER", ExpertiseBeginner},
		{"Beginner", ExpertiseBeginner},
		{"INTERMEDIATE", ExpertiseIntermediate},
		{"Intermediate", ExpertiseIntermediate},
		{"EXPERT", ExpertiseExpert},
		{"Expert", ExpertiseExpert},
		{"expert", ExpertiseExpert},
		{" Expert ", ExpertiseExpert},
		{"guru", ExpertiseBeginner},   // documented fallback
		{"", ExpertiseBeginner},
	}
	for _, tt := range tests {
		if got := NormalizeExpertise(tt.raw); got != tt.want {
			t.Errorf("NormalizeExpertise(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeExpertiseIdempotent(t *testing.T) {
	for _, e := range Expertises {
		once := NormalizeExpertise(string(e))
		twice := NormalizeExpertise(string(once))
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q then %q", e, once, twice)
		}
	}
}

func TestNormalizeTimeSlot(t *testing.T) {
	tests := []struct {
		raw  string
		want TimeSlot
	}{
		{"MORNING", SlotMorning},
		{"morning", SlotMorning},
		{"Afternoon", SlotAfternoon},
		{"EVENING", SlotEvening},
		{"NIGHT", SlotNight}, // recognized, passes through
		{"night", SlotNight},
		{"dusk", TimeSlot("dusk")}, // unrecognized, unchanged
	}
	for _, tt := range tests {
		if got := NormalizeTimeSlot(tt.raw); got != tt.want {
			t.Errorf("NormalizeTimeSlot(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeTimeSlotIdempotent(t *testing.T) {
	for _, s := range TimeSlots {
		once := NormalizeTimeSlot(string(s))
		if twice := NormalizeTimeSlot(string(once)); once != twice {
			t.Errorf("normalize not idempotent for %q", s)
		}
	}
}

func TestHasParticipant(t *testing.T) {
	c := Challenge{
		Owner: Profile{ID: "p1"},
		Participants: []Profile{
			{ID: "p2"},
			{ID: "p3"},
			{ID: "p3"}, // duplicates are tolerated
		},
	}

	if !c.HasParticipant("p1") {
		t.Error("owner must count as joined even when not in the participant list")
	}
	if !c.HasParticipant("p3") {
		t.Error("listed participant not found")
	}
	if c.HasParticipant("p9") {
		t.Error("unrelated profile reported as joined")
	}
}
