package domain

import "strings"

// NormalizeExpertise maps a raw wire value to the canonical tier. The remote
// API is inconsistent about casing ("EXPERT" and "Expert" both occur), so
// matching is case-insensitive. Unrecognized input falls back to the beginner
// tier; callers that care should check KnownExpertise first and log.
// Normalizing an already-canonical value is a no-op.
func NormalizeExpertise(raw string) Expertise {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(ExpertiseBeginner):
		return ExpertiseBeginner
	case string(ExpertiseIntermediate):
		return ExpertiseIntermediate
	case string(ExpertiseExpert):
		return ExpertiseExpert
	default:
		return ExpertiseBeginner
	}
}

// KnownExpertise reports whether raw is a recognized tier spelling.
func KnownExpertise(raw string) bool {
	up := strings.ToUpper(strings.TrimSpace(raw))
	for _, e := range Expertises {
		if up == string(e) {
			return true
		}
	}
	return false
}

// NormalizeTimeSlot upper-cases a recognized slot value. NIGHT is recognized
// but has no display mapping, so it passes through like the others.
// Unrecognized input is returned unchanged. Idempotent.
func NormalizeTimeSlot(raw string) TimeSlot {
	up := strings.ToUpper(strings.TrimSpace(raw))
	for _, s := range TimeSlots {
		if up == string(s) {
			return s
		}
	}
	return TimeSlot(raw)
}

// KnownTimeSlot reports whether raw is a recognized slot spelling.
func KnownTimeSlot(raw string) bool {
	up := strings.ToUpper(strings.TrimSpace(raw))
	for _, s := range TimeSlots {
		if up == string(s) {
			return true
		}
	}
	return false
}
