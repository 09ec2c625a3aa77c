package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/tournament"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
)

// PicksService stores and returns pick submissions. Submissions are gated
// by the tournament window: picks may only change while the tournament is
// open, never once play has begun.
type PicksService struct {
	games  game.Repository
	feeds  FeedProvider
	logger *logging.Logger
	clock  clock.Clock
}

func NewPicksService(games game.Repository, feeds FeedProvider, logger *logging.Logger, clk clock.Clock) *PicksService {
	if logger == nil {
		logger = logging.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &PicksService{games: games, feeds: feeds, logger: logger, clock: clk}
}

// GetPicks returns the stored picks for one gamer in one event. A
// tournament nobody has picked for yet, or a gamer without a submission,
// yields an empty list rather than an error.
func (s *PicksService) GetPicks(ctx context.Context, gameID, eventID, gamerID string) ([]game.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "PicksService.GetPicks")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	eventID = strings.TrimSpace(eventID)
	gamerID = strings.TrimSpace(gamerID)
	if gameID == "" || eventID == "" || gamerID == "" {
		return nil, fmt.Errorf("%w: game, event and gamer ids are required", ErrInvalidInput)
	}

	item, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	if !item.HasGamer(gamerID) {
		return nil, fmt.Errorf("%w: gamer %s in game %s", ErrNotFound, gamerID, gameID)
	}

	event := item.Event(eventID)
	if event == nil {
		return []game.Pick{}, nil
	}
	eg := event.Gamer(gamerID)
	if eg == nil {
		return []game.Pick{}, nil
	}

	return eg.Picks, nil
}

// PutPicks replaces one gamer's picks for a tournament. The event record is
// created lazily on the first submission for that tournament id.
func (s *PicksService) PutPicks(ctx context.Context, gameID, eventID, gamerID string, picks []game.Pick) ([]game.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "PicksService.PutPicks")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	eventID = strings.TrimSpace(eventID)
	gamerID = strings.TrimSpace(gamerID)
	if gameID == "" || eventID == "" || gamerID == "" {
		return nil, fmt.Errorf("%w: game, event and gamer ids are required", ErrInvalidInput)
	}

	cleaned, err := cleanPicks(picks)
	if err != nil {
		return nil, err
	}

	item, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	if !item.HasGamer(gamerID) {
		return nil, fmt.Errorf("%w: gamer %s in game %s", ErrNotFound, gamerID, gameID)
	}

	item, err = ensureScheduleDates(ctx, s.games, s.feeds, item)
	if err != nil {
		return nil, err
	}

	entry, ok := scheduleEntryFor(item, eventID)
	if !ok {
		return nil, fmt.Errorf("%w: tournament %s in game %s", ErrNotFound, eventID, gameID)
	}

	phase := tournament.PhaseAt(s.clock.Now(), entry.Start, entry.End)
	if phase != tournament.PhaseOpenForPicks {
		return nil, fmt.Errorf("%w: tournament %s is %s, picks may only change while open", ErrInvalidState, eventID, phase)
	}

	event := item.Event(eventID)
	if event == nil {
		item.Events = append(item.Events, game.Event{
			ID:    entry.ID,
			Name:  entry.Name,
			Start: entry.Start,
			End:   entry.End,
		})
		event = &item.Events[len(item.Events)-1]
	}

	eg := event.Gamer(gamerID)
	if eg == nil {
		event.Gamers = append(event.Gamers, game.EventGamer{ID: gamerID})
		eg = &event.Gamers[len(event.Gamers)-1]
	}
	eg.Picks = cleaned

	if _, err := s.games.Replace(ctx, item); err != nil {
		return nil, fmt.Errorf("replace game %s: %w", gameID, err)
	}

	s.logger.InfoContext(ctx, "picks updated",
		"game_id", gameID, "event_id", eventID, "gamer_id", gamerID, "picks", len(cleaned))
	return cleaned, nil
}

// cleanPicks strips derived fields and rejects empty or duplicate player
// ids. Names and score details are attached by the scoring merge at read
// time, never stored.
func cleanPicks(picks []game.Pick) ([]game.Pick, error) {
	out := make([]game.Pick, 0, len(picks))
	seen := make(map[string]struct{}, len(picks))
	for _, pick := range picks {
		playerID := strings.TrimSpace(pick.ID)
		if playerID == "" {
			return nil, fmt.Errorf("%w: pick without a player id", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return nil, fmt.Errorf("%w: duplicate pick for player %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
		out = append(out, game.Pick{ID: playerID})
	}
	return out, nil
}
