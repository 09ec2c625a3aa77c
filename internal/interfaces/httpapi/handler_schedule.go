package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/djboulia/fantasygolf/internal/usecase"
)

func (h *Handler) GetTourSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTourSchedule")
	defer span.End()

	tour := strings.TrimSpace(r.PathValue("tour"))
	yearRaw := strings.TrimSpace(r.PathValue("year"))
	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: year must be numeric, got %q", usecase.ErrInvalidInput, yearRaw))
		return
	}

	schedule, err := h.scheduleService.GetTourSchedule(ctx, tour, year)
	if err != nil {
		h.logger.WarnContext(ctx, "get tour schedule failed", "tour", tour, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, schedule)
}
