package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/Dosada05/tournament-bracket/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

type scoreInput struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

// GetBracketHandler godoc
// @Summary Турнирная сетка
// @Description Строит первый раунд, как только ростер заполнен. До этого ready=false.
// @Tags bracket
// @Produce json
// @Success 200 {object} services.BracketView
// @Failure 500 {object} map[string]string "Ошибка хранилища"
// @Router /api/bracket [get]
func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.bracketService.GetBracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitScoreHandler godoc
// @Summary Внести счет матча
// @Tags bracket
// @Accept json
// @Produce json
// @Param round path int true "Номер раунда (с нуля)"
// @Param match path int true "Номер матча в раунде (с нуля)"
// @Param body body scoreInput true "Счет"
// @Success 200 {object} services.BracketView
// @Failure 400 {object} map[string]string "Ничья, отрицательный счет или неверный индекс"
// @Failure 409 {object} map[string]string "Сетка не построена или матч с BYE"
// @Failure 422 {object} map[string]string
// @Router /api/bracket/rounds/{round}/matches/{match}/score [post]
func (h *BracketHandler) SubmitScoreHandler(w http.ResponseWriter, r *http.Request) {
	round, err := getIndexFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := getIndexFromURL(r, "match")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	problems := map[string]string{}
	if input.Score1 == nil {
		problems["score1"] = "must be provided"
	}
	if input.Score2 == nil {
		problems["score2"] = "must be provided"
	}
	if len(problems) > 0 {
		failedValidationResponse(w, r, problems)
		return
	}

	view, err := h.bracketService.SubmitScore(r.Context(), services.SubmitScoreInput{
		Round:  round,
		Match:  match,
		Score1: *input.Score1,
		Score2: *input.Score2,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetBracketHandler godoc
// @Summary Сбросить сетку
// @Tags bracket
// @Produce json
// @Success 200 {object} services.BracketView
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /api/bracket/reset [post]
func (h *BracketHandler) ResetBracketHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.bracketService.ResetBracket(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
