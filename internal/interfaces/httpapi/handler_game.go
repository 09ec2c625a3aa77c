package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

type createGameRequest struct {
	Name     string               `json:"name" validate:"required"`
	Tour     string               `json:"tour" validate:"required"`
	Season   int                  `json:"season" validate:"required,gt=0"`
	Schedule []game.ScheduleEntry `json:"schedule" validate:"dive"`
	Gamers   []game.Gamer         `json:"gamers" validate:"dive"`
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, err := h.gameService.GetGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) SearchGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchGames")
	defer span.End()

	query := r.URL.Query()
	input := usecase.SearchGamesInput{
		GamerID: strings.TrimSpace(query.Get("gamer")),
		Details: queryBool(query.Get("details")),
	}

	items, err := h.gameService.Search(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "search games failed", "gamer_id", input.GamerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.gameService.CreateGame(ctx, usecase.CreateGameInput{
		Name:     req.Name,
		Tour:     req.Tour,
		Season:   req.Season,
		Schedule: req.Schedule,
		Gamers:   req.Gamers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "tour", req.Tour, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, created)
}

func queryBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
