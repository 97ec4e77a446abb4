// Package domain holds the entities the sync layer manages and the canonical
// vocabulary for their enumerated fields. Everything past the wire-decoding
// boundary uses these types only.
package domain

// VenueStatusOpen is the server's code for a venue that can host challenges.
// Any other status value means closed.
const VenueStatusOpen = "1"

type Venue struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    string  `json:"status"`
}

// Open reports whether the venue accepts new challenges.
func (v Venue) Open() bool {
	return v.Status == VenueStatusOpen
}

// Expertise is a profile's skill tier. The three canonical values form an
// ordered scale; the wire sends them in inconsistent casing.
type Expertise string

const (
	ExpertiseBeginner     Expertise = "BEGINNER"
	ExpertiseIntermediate Expertise = "INTERMEDIATE"
	ExpertiseExpert       Expertise = "EXPERT"
)

// Expertises lists the canonical tiers in ascending order.
var Expertises = []Expertise{ExpertiseBeginner, ExpertiseIntermediate, ExpertiseExpert}

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Expertise Expertise `json:"expertise"`
	Score     int       `json:"score"`
}

// TimeSlot is the time-of-day slot a challenge is scheduled for.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "MORNING"
	SlotAfternoon TimeSlot = "AFTERNOON"
	SlotEvening   TimeSlot = "EVENING"
	// SlotNight is accepted from the wire but has no display mapping; it
	// passes through normalization unchanged.
	SlotNight TimeSlot = "NIGHT"
)

// TimeSlots lists every slot value the wire may carry.
var TimeSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

// ChallengeStatus is a one-directional lifecycle: Open, then either Closed or
// Completed. No reverse transition exists.
type ChallengeStatus string

const (
	ChallengeOpen      ChallengeStatus = "Open"
	ChallengeClosed    ChallengeStatus = "Closed"
	ChallengeCompleted ChallengeStatus = "Completed"
)

type Challenge struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Place        Venue           `json:"place"`
	Date         string          `json:"date"`
	Time         TimeSlot        `json:"time"`
	Status       ChallengeStatus `json:"status"`
	Owner        Profile         `json:"owner"`
	Participants []Profile       `json:"participants"`
}

// HasParticipant reports whether the profile counts as already joined. The
// owner is always eligible-as-joined even when absent from the participant
// list, and duplicate participant entries are tolerated.
func (c Challenge) HasParticipant(profileID string) bool {
	if c.Owner.ID == profileID {
		return true
	}
	for _, p := range c.Participants {
		if p.ID == profileID {
			return true
		}
	}
	return false
}
