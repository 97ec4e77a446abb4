package stubserver

import (
	"context"
	"log/slog"

	"github.com/matchup-app/matchup/internal/domain"
)

// ActivePlayerID is the seeded player the stub treats as the local user.
const ActivePlayerID = "p-ana"

// Seed loads demo data if the database is empty. Idempotent.
func Seed(ctx context.Context, logger *slog.Logger, store *Store) error {
	existing, err := store.ListPlaces(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	places := []domain.Venue{
		{ID: "v-north", Name: "North Court", Latitude: -12.0464, Longitude: -77.0428, Status: "1"},
		{ID: "v-hall", Name: "Old Hall", Latitude: -12.0521, Longitude: -77.0365, Status: "0"},
		{ID: "v-river", Name: "River Park", Latitude: -12.0605, Longitude: -77.0311, Status: "1"},
	}
	for _, p := range places {
		_, err := store.db.ExecContext(ctx, `
			INSERT INTO places (id, name, latitude, longitude, status) VALUES (?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Latitude, p.Longitude, p.Status)
		if err != nil {
			return err
		}
	}

	players := []domain.Profile{
		{ID: ActivePlayerID, Name: "Ana", Expertise: domain.ExpertiseExpert, Score: 90},
		{ID: "p-luis", Name: "Luis", Expertise: domain.ExpertiseBeginner, Score: 5},
		{ID: "p-mara", Name: "Mara", Expertise: domain.ExpertiseIntermediate, Score: 40},
	}
	for _, p := range players {
		_, err := store.db.ExecContext(ctx, `
			INSERT INTO players (id, name, expertise, score) VALUES (?, ?, ?, ?)
		`, p.ID, p.Name, p.Expertise, p.Score)
		if err != nil {
			return err
		}
	}

	if _, err := store.CreateChallenge(ctx, "Morning Cup", "v-north", "2026-09-01", string(domain.SlotMorning), ActivePlayerID); err != nil {
		return err
	}
	c, err := store.CreateChallenge(ctx, "Evening Run", "v-river", "2026-09-03", string(domain.SlotEvening), "p-mara")
	if err != nil {
		return err
	}
	if _, err := store.JoinChallenge(ctx, c.ID, "p-luis"); err != nil {
		return err
	}

	logger.Info("seeded demo data",
		"places", len(places), "players", len(players), "challenges", 2)
	return nil
}
