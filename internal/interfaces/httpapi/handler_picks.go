package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

type putPicksRequest struct {
	Picks []game.Pick `json:"picks" validate:"required"`
}

func (h *Handler) GetPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPicks")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	gamerID := strings.TrimSpace(r.PathValue("gamerID"))
	picks, err := h.picksService.GetPicks(ctx, gameID, eventID, gamerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed",
			"game_id", gameID, "event_id", eventID, "gamer_id", gamerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picks)
}

func (h *Handler) PutPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutPicks")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	gamerID := strings.TrimSpace(r.PathValue("gamerID"))

	var req putPicksRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.picksService.PutPicks(ctx, gameID, eventID, gamerID, req.Picks)
	if err != nil {
		h.logger.WarnContext(ctx, "put picks failed",
			"game_id", gameID, "event_id", eventID, "gamer_id", gamerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picks)
}
