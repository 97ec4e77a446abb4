package stubserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matchup-app/matchup/internal/domain"
)

type PlaceListResponse struct {
	Places []domain.Venue `json:"places"`
}

type ChallengeListResponse struct {
	Challenges []domain.Challenge `json:"challenges"`
}

type CreateChallengeRequest struct {
	Name    string `json:"name"`
	PlaceID string `json:"placeId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	OwnerID string `json:"ownerId"`
}

type JoinRequest struct {
	ChallengeID string `json:"challengeId"`
	PlayerID    string `json:"playerId"`
}

type UpdatePlayerRequest struct {
	Name      *string `json:"name"`
	Expertise *string `json:"expertise"`
	Score     *int    `json:"score"`
}

type PointsRequest struct {
	Points int `json:"points"`
}

type ExpertiseRequest struct {
	Expertise string `json:"expertise"`
}

func handleListPlaces(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		places, err := store.ListPlaces(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, PlaceListResponse{Places: places})
	}
}

func handleGetPlace(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		place, err := store.GetPlace(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "place not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, place)
	}
}

func handleListChallenges(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challenges, err := store.ListChallenges(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, ChallengeListResponse{Challenges: challenges})
	}
}

func handleGetChallenge(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challenge, err := store.GetChallenge(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, challenge)
	}
}

func handleCreateChallenge(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateChallengeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		details := map[string]string{}
		if strings.TrimSpace(req.Name) == "" {
			details["name"] = "required"
		}
		if strings.TrimSpace(req.PlaceID) == "" {
			details["placeId"] = "required"
		}
		if strings.TrimSpace(req.Date) == "" {
			details["date"] = "required"
		}
		if !domain.KnownTimeSlot(req.Time) {
			details["time"] = "must be MORNING, AFTERNOON, EVENING or NIGHT"
		}
		if strings.TrimSpace(req.OwnerID) == "" {
			details["ownerId"] = "required"
		}
		if len(details) > 0 {
			writeError(w, http.StatusBadRequest, "invalid challenge", details)
			return
		}

		challenge, err := store.CreateChallenge(r.Context(),
			strings.TrimSpace(req.Name), req.PlaceID, req.Date,
			string(domain.NormalizeTimeSlot(req.Time)), req.OwnerID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "place or owner not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusCreated, challenge)
	}
}

func handleJoinChallenge(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if req.PlayerID == "" {
			writeError(w, http.StatusBadRequest, "playerId is required", nil)
			return
		}

		challenge, err := store.JoinChallenge(r.Context(), chi.URLParam(r, "id"), req.PlayerID)
		switch {
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "challenge or player not found", nil)
		case errors.Is(err, ErrNotOpen):
			writeError(w, http.StatusConflict, "challenge is not open", nil)
		case errors.Is(err, ErrAlreadyJoined):
			writeError(w, http.StatusConflict, "already joined", nil)
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error", nil)
		default:
			writeJSON(w, http.StatusOK, challenge)
		}
	}
}

func handleListPlayers(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tier := r.URL.Query().Get("expertise")
		if !domain.KnownExpertise(tier) {
			writeError(w, http.StatusBadRequest, "unknown expertise tier", nil)
			return
		}
		players, err := store.PlayersByExpertise(r.Context(), tier)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func handleTopPlayers(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
				return
			}
			limit = n
		}
		players, err := store.TopPlayers(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func handleGetPlayer(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

// handleUpdateMe applies a partial update to the active player.
func handleUpdateMe(store *Store, activeID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdatePlayerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty", map[string]string{"name": "required"})
			return
		}
		if req.Expertise != nil && !domain.KnownExpertise(*req.Expertise) {
			writeError(w, http.StatusBadRequest, "unknown expertise tier", map[string]string{"expertise": "invalid"})
			return
		}
		if req.Score != nil && *req.Score < 0 {
			writeError(w, http.StatusBadRequest, "score must not be negative", map[string]string{"score": "invalid"})
			return
		}
		if req.Expertise != nil {
			canonical := string(domain.NormalizeExpertise(*req.Expertise))
			req.Expertise = &canonical
		}

		player, err := store.UpdatePlayer(r.Context(), activeID, req.Name, req.Expertise, req.Score)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func handleAdjustScore(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PointsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		player, err := store.AdjustScore(r.Context(), chi.URLParam(r, "id"), req.Points)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func handleSetExpertise(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExpertiseRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		if !domain.KnownExpertise(req.Expertise) {
			writeError(w, http.StatusBadRequest, "unknown expertise tier", map[string]string{"expertise": "invalid"})
			return
		}
		player, err := store.SetExpertise(r.Context(), chi.URLParam(r, "id"),
			string(domain.NormalizeExpertise(req.Expertise)))
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error", nil)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}
