package stubserver

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/matchup-app/matchup/internal/domain"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Matchup API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("REST contract the matchup client syncs against. Served by the local stub.")

	// GET /places
	listPlaces, _ := r.NewOperationContext(http.MethodGet, "/places")
	listPlaces.SetSummary("List venues")
	listPlaces.AddRespStructure(PlaceListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listPlaces)

	// GET /places/{id}
	getPlace, _ := r.NewOperationContext(http.MethodGet, "/places/{id}")
	getPlace.SetSummary("Get venue")
	getPlace.AddRespStructure(domain.Venue{}, openapi.WithHTTPStatus(http.StatusOK))
	getPlace.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPlace)

	// GET /challenges
	listChallenges, _ := r.NewOperationContext(http.MethodGet, "/challenges")
	listChallenges.SetSummary("List challenges")
	listChallenges.AddRespStructure(ChallengeListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listChallenges)

	// POST /challenges
	createChallenge, _ := r.NewOperationContext(http.MethodPost, "/challenges")
	createChallenge.SetSummary("Create challenge")
	createChallenge.SetDescription("Creates a challenge with status Open.")
	createChallenge.AddReqStructure(CreateChallengeRequest{})
	createChallenge.AddRespStructure(domain.Challenge{}, openapi.WithHTTPStatus(http.StatusCreated))
	createChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(createChallenge)

	// GET /challenges/{id}
	getChallenge, _ := r.NewOperationContext(http.MethodGet, "/challenges/{id}")
	getChallenge.SetSummary("Get challenge")
	getChallenge.AddRespStructure(domain.Challenge{}, openapi.WithHTTPStatus(http.StatusOK))
	getChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getChallenge)

	// POST /challenges/{id}/join
	join, _ := r.NewOperationContext(http.MethodPost, "/challenges/{id}/join")
	join.SetSummary("Join challenge")
	join.SetDescription("Adds a player to an open challenge. Duplicate joins and closed challenges are rejected.")
	join.AddReqStructure(JoinRequest{})
	join.AddRespStructure(domain.Challenge{}, openapi.WithHTTPStatus(http.StatusOK))
	join.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	join.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(join)

	// GET /players
	listPlayers, _ := r.NewOperationContext(http.MethodGet, "/players")
	listPlayers.SetSummary("Filter players by expertise")
	listPlayers.AddRespStructure([]domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	listPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(listPlayers)

	// GET /players/top
	topPlayers, _ := r.NewOperationContext(http.MethodGet, "/players/top")
	topPlayers.SetSummary("Top players by score")
	topPlayers.AddRespStructure([]domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(topPlayers)

	// PUT /players/me
	updateMe, _ := r.NewOperationContext(http.MethodPut, "/players/me")
	updateMe.SetSummary("Update active player")
	updateMe.SetDescription("Partial update; only supplied fields are applied.")
	updateMe.AddReqStructure(UpdatePlayerRequest{})
	updateMe.AddRespStructure(domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	updateMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(updateMe)

	// GET /players/{id}
	getPlayer, _ := r.NewOperationContext(http.MethodGet, "/players/{id}")
	getPlayer.SetSummary("Get player")
	getPlayer.AddRespStructure(domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	getPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPlayer)

	// POST /players/{id}/points
	points, _ := r.NewOperationContext(http.MethodPost, "/players/{id}/points")
	points.SetSummary("Adjust player score")
	points.SetDescription("Applies a signed delta; the score never drops below zero.")
	points.AddReqStructure(PointsRequest{})
	points.AddRespStructure(domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	points.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(points)

	// POST /players/{id}/expertise
	expertise, _ := r.NewOperationContext(http.MethodPost, "/players/{id}/expertise")
	expertise.SetSummary("Set player expertise")
	expertise.AddReqStructure(ExpertiseRequest{})
	expertise.AddRespStructure(domain.Profile{}, openapi.WithHTTPStatus(http.StatusOK))
	expertise.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	expertise.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(expertise)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
