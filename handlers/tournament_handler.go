package handlers

import (
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/roster"
	"github.com/Dosada05/tournament-bracket/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type setCapacityInput struct {
	Capacity *int `json:"capacity"`
}

type setModeInput struct {
	Mode string `json:"mode"`
}

// GetRosterHandler обрабатывает GET /api/roster
// @Summary Текущий ростер и лист ожидания
// @Tags roster
// @Produce json
// @Success 200 {object} services.RosterView
// @Router /api/roster [get]
func (h *TournamentHandler) GetRosterHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.GetRoster(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdmitTeamHandler обрабатывает POST /api/roster/teams
// @Summary Записать команду
// @Description Команда попадает в ростер, если есть место, иначе в лист ожидания.
// @Tags roster
// @Accept json
// @Produce json
// @Param team body services.AdmitTeamInput true "Команда"
// @Success 201 {object} services.AdmitTeamResult
// @Failure 400 {object} map[string]string
// @Router /api/roster/teams [post]
func (h *TournamentHandler) AdmitTeamHandler(w http.ResponseWriter, r *http.Request) {
	var input services.AdmitTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournamentService.AdmitTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Placement == roster.PlacementWaitlist {
		status = http.StatusAccepted
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveTeamHandler обрабатывает DELETE /api/roster/teams/{index}
func (h *TournamentHandler) RemoveTeamHandler(w http.ResponseWriter, r *http.Request) {
	index, err := getIndexFromURL(r, "index")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.RemoveTeam(r.Context(), middleware.ActorFromContext(r.Context()), index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveWaitlistedTeamHandler обрабатывает DELETE /api/roster/waitlist/{index}
func (h *TournamentHandler) RemoveWaitlistedTeamHandler(w http.ResponseWriter, r *http.Request) {
	index, err := getIndexFromURL(r, "index")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.tournamentService.RemoveWaitlistedTeam(r.Context(), middleware.ActorFromContext(r.Context()), index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetCapacityHandler обрабатывает PUT /api/settings/capacity
func (h *TournamentHandler) SetCapacityHandler(w http.ResponseWriter, r *http.Request) {
	var input setCapacityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Capacity == nil {
		failedValidationResponse(w, r, map[string]string{"capacity": "must be provided"})
		return
	}

	view, err := h.tournamentService.SetCapacity(r.Context(), middleware.ActorFromContext(r.Context()), *input.Capacity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetModeHandler обрабатывает PUT /api/settings/mode
func (h *TournamentHandler) SetModeHandler(w http.ResponseWriter, r *http.Request) {
	var input setModeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	mode := strings.ToLower(strings.TrimSpace(input.Mode))
	if mode == "" {
		failedValidationResponse(w, r, map[string]string{"mode": "must be provided"})
		return
	}

	view, err := h.tournamentService.SetMode(r.Context(), middleware.ActorFromContext(r.Context()), models.TournamentMode(mode))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearTournamentHandler обрабатывает POST /api/tournament/clear
func (h *TournamentHandler) ClearTournamentHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.ClearTournament(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
