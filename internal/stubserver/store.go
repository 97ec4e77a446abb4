package stubserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matchup-app/matchup/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyJoined = errors.New("already joined")
	ErrNotOpen       = errors.New("challenge is not open")
)

// Store is the SQLite-backed data layer behind the fake API. Schema is
// created at init; no migrations.
type Store struct {
	db *sql.DB
}

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS places (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			latitude  REAL NOT NULL,
			longitude REAL NOT NULL,
			status    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id        TEXT PRIMARY KEY,
			name      TEXT NOT NULL,
			expertise TEXT NOT NULL,
			score     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			place_id TEXT NOT NULL REFERENCES places(id),
			date     TEXT NOT NULL,
			time     TEXT NOT NULL,
			status   TEXT NOT NULL,
			owner_id TEXT NOT NULL REFERENCES players(id)
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			challenge_id TEXT NOT NULL REFERENCES challenges(id),
			player_id    TEXT NOT NULL REFERENCES players(id),
			PRIMARY KEY (challenge_id, player_id)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) ListPlaces(ctx context.Context) ([]domain.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, latitude, longitude, status FROM places ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := []domain.Venue{}
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Latitude, &v.Longitude, &v.Status); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *Store) GetPlace(ctx context.Context, id string) (domain.Venue, error) {
	var v domain.Venue
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, latitude, longitude, status FROM places WHERE id = ?
	`, id).Scan(&v.ID, &v.Name, &v.Latitude, &v.Longitude, &v.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

func (s *Store) GetPlayer(ctx context.Context, id string) (domain.Profile, error) {
	var p domain.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, expertise, score FROM players WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Expertise, &p.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *Store) PlayersByExpertise(ctx context.Context, tier string) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, expertise, score FROM players
		WHERE upper(expertise) = upper(?) ORDER BY score DESC
	`, tier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *Store) TopPlayers(ctx context.Context, limit int) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, expertise, score FROM players ORDER BY score DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]domain.Profile, error) {
	players := []domain.Profile{}
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Expertise, &p.Score); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpdatePlayer applies the non-nil fields and returns the updated row.
func (s *Store) UpdatePlayer(ctx context.Context, id string, name, expertise *string, score *int) (domain.Profile, error) {
	if name != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE players SET name = ? WHERE id = ?`, *name, id); err != nil {
			return domain.Profile{}, err
		}
	}
	if expertise != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE players SET expertise = ? WHERE id = ?`, *expertise, id); err != nil {
			return domain.Profile{}, err
		}
	}
	if score != nil {
		if _, err := s.db.ExecContext(ctx, `UPDATE players SET score = ? WHERE id = ?`, *score, id); err != nil {
			return domain.Profile{}, err
		}
	}
	return s.GetPlayer(ctx, id)
}

// AdjustScore applies a signed delta, clamping at zero.
func (s *Store) AdjustScore(ctx context.Context, id string, delta int) (domain.Profile, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE players SET score = max(0, score + ?) WHERE id = ?
	`, delta, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Profile{}, ErrNotFound
	}
	return s.GetPlayer(ctx, id)
}

func (s *Store) SetExpertise(ctx context.Context, id, tier string) (domain.Profile, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE players SET expertise = ? WHERE id = ?`, tier, id)
	if err != nil {
		return domain.Profile{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Profile{}, ErrNotFound
	}
	return s.GetPlayer(ctx, id)
}

func (s *Store) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.date, c.time, c.status,
		       pl.id, pl.name, pl.latitude, pl.longitude, pl.status,
		       o.id, o.name, o.expertise, o.score
		FROM challenges c
		JOIN places pl ON pl.id = c.place_id
		JOIN players o ON o.id = c.owner_id
		ORDER BY c.date, c.time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := []domain.Challenge{}
	for rows.Next() {
		var c domain.Challenge
		err := rows.Scan(&c.ID, &c.Name, &c.Date, &c.Time, &c.Status,
			&c.Place.ID, &c.Place.Name, &c.Place.Latitude, &c.Place.Longitude, &c.Place.Status,
			&c.Owner.ID, &c.Owner.Name, &c.Owner.Expertise, &c.Owner.Score)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range challenges {
		parts, err := s.participants(ctx, challenges[i].ID)
		if err != nil {
			return nil, err
		}
		challenges[i].Participants = parts
	}
	return challenges, nil
}

func (s *Store) GetChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	var c domain.Challenge
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.date, c.time, c.status,
		       pl.id, pl.name, pl.latitude, pl.longitude, pl.status,
		       o.id, o.name, o.expertise, o.score
		FROM challenges c
		JOIN places pl ON pl.id = c.place_id
		JOIN players o ON o.id = c.owner_id
		WHERE c.id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Date, &c.Time, &c.Status,
		&c.Place.ID, &c.Place.Name, &c.Place.Latitude, &c.Place.Longitude, &c.Place.Status,
		&c.Owner.ID, &c.Owner.Name, &c.Owner.Expertise, &c.Owner.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, err
	}

	c.Participants, err = s.participants(ctx, c.ID)
	return c, err
}

func (s *Store) participants(ctx context.Context, challengeID string) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.expertise, p.score
		FROM participants pt
		JOIN players p ON p.id = pt.player_id
		WHERE pt.challenge_id = ?
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// CreateChallenge inserts a new challenge with status Open.
func (s *Store) CreateChallenge(ctx context.Context, name, placeID, date, slot, ownerID string) (domain.Challenge, error) {
	if _, err := s.GetPlace(ctx, placeID); err != nil {
		return domain.Challenge{}, err
	}
	if _, err := s.GetPlayer(ctx, ownerID); err != nil {
		return domain.Challenge{}, err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO challenges (id, name, place_id, date, time, status, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, name, placeID, date, slot, string(domain.ChallengeOpen), ownerID)
	if err != nil {
		return domain.Challenge{}, err
	}
	return s.GetChallenge(ctx, id)
}

// JoinChallenge adds a player to an open challenge. The owner and existing
// participants are rejected as already joined.
func (s *Store) JoinChallenge(ctx context.Context, challengeID, playerID string) (domain.Challenge, error) {
	c, err := s.GetChallenge(ctx, challengeID)
	if err != nil {
		return domain.Challenge{}, err
	}
	if c.Status != domain.ChallengeOpen {
		return domain.Challenge{}, ErrNotOpen
	}
	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return domain.Challenge{}, err
	}
	if c.HasParticipant(playerID) {
		return domain.Challenge{}, ErrAlreadyJoined
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO participants (challenge_id, player_id) VALUES (?, ?)
	`, challengeID, playerID)
	if err != nil {
		return domain.Challenge{}, err
	}
	return s.GetChallenge(ctx, challengeID)
}
