package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/djboulia/fantasygolf/internal/platform/logging"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

type Handler struct {
	gameService     *usecase.GameService
	rosterService   *usecase.RosterService
	picksService    *usecase.PicksService
	scheduleService *usecase.ScheduleService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	rosterService *usecase.RosterService,
	picksService *usecase.PicksService,
	scheduleService *usecase.ScheduleService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:     gameService,
		rosterService:   rosterService,
		picksService:    picksService,
		scheduleService: scheduleService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validator.StructCtx(ctx, req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return fmt.Errorf("%w: field %s failed on %s", usecase.ErrInvalidInput,
				strings.ToLower(field.Field()), field.Tag())
		}
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
