package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/djboulia/fantasygolf/internal/domain/roster"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

type rosterUpdateRequest struct {
	Actor   string         `json:"actor" validate:"required"`
	Entries []roster.Entry `json:"entries" validate:"required,min=1,dive"`
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, err := h.rosterService.GetRoster(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) InitRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitRoster")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	item, err := h.rosterService.InitRoster(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "init roster failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) UpdateRosterPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRosterPlayers")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))

	var req rosterUpdateRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.rosterService.UpdateRoster(ctx, gameID, req.Actor, req.Entries)
	if err != nil {
		h.logger.WarnContext(ctx, "update roster failed", "game_id", gameID, "actor", req.Actor, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetRosterGamer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterGamer")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	gamerID := strings.TrimSpace(r.PathValue("gamerID"))
	entries, err := h.rosterService.GamerEntries(ctx, gameID, gamerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster gamer failed", "game_id", gameID, "gamer_id", gamerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) ListRosterTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRosterTransactions")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	items, err := h.rosterService.Transactions(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster transactions failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
