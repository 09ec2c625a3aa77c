package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/roster"
	"github.com/djboulia/fantasygolf/internal/domain/tournament"
	"github.com/djboulia/fantasygolf/internal/platform/id"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
)

// RosterService owns the roster lifecycle: initialization from the world
// rankings, the append-only transaction ledger, and the pick reconciliation
// that follows every roster change.
type RosterService struct {
	games   game.Repository
	rosters roster.Repository
	feeds   FeedProvider
	ids     id.Generator
	logger  *logging.Logger
	clock   clock.Clock
}

func NewRosterService(
	games game.Repository,
	rosters roster.Repository,
	feeds FeedProvider,
	ids id.Generator,
	logger *logging.Logger,
	clk clock.Clock,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &RosterService{
		games:   games,
		rosters: rosters,
		feeds:   feeds,
		ids:     ids,
		logger:  logger,
		clock:   clk,
	}
}

func (s *RosterService) GetRoster(ctx context.Context, gameID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GetRoster")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return roster.Roster{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.rosters.GetByGameID(ctx, gameID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster for game %s: %w", gameID, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: roster for game %s", ErrNotFound, gameID)
	}

	return item, nil
}

// InitRoster rebuilds the roster from the season's world rankings: every
// ranked player becomes a free agent, the transaction ledger is reset.
func (s *RosterService) InitRoster(ctx context.Context, gameID string) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.InitRoster")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return roster.Roster{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	ranked, err := s.feeds.Season(item.Season, item.Tour).GetRankings(ctx)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get rankings for game %s: %w", gameID, err)
	}

	seen := make(map[string]struct{}, len(ranked))
	players := make([]roster.Entry, 0, len(ranked))
	for _, rp := range ranked {
		playerID := rp.PlayerID
		if playerID == "" {
			playerID = roster.NormalizePlayerID(rp.Name)
		}
		if playerID == "" {
			continue
		}
		if _, dup := seen[playerID]; dup {
			continue
		}
		seen[playerID] = struct{}{}
		players = append(players, roster.Entry{
			PlayerID: playerID,
			Name:     rp.Name,
		})
	}

	fresh := roster.Roster{
		GameID:       gameID,
		Players:      players,
		Transactions: []roster.Transaction{},
	}
	replaced, err := s.rosters.Replace(ctx, fresh)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("replace roster for game %s: %w", gameID, err)
	}

	s.logger.InfoContext(ctx, "roster initialized", "game_id", gameID, "players", len(players))
	return replaced, nil
}

// UpdateRoster applies submitted entries as a ledger update: existing
// players are overwritten in place with a modify record capturing before
// and after, new players are appended with an add record. The write goes
// through to the store first; pick reconciliation runs only after the
// roster has committed.
func (s *RosterService) UpdateRoster(ctx context.Context, gameID, actorID string, entries []roster.Entry) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.UpdateRoster")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	actorID = strings.TrimSpace(actorID)
	if gameID == "" {
		return roster.Roster{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if actorID == "" {
		return roster.Roster{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if len(entries) == 0 {
		return roster.Roster{}, fmt.Errorf("%w: no roster entries submitted", ErrInvalidInput)
	}

	gameItem, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	current, exists, err := s.rosters.GetByGameID(ctx, gameID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster for game %s: %w", gameID, err)
	}
	if !exists {
		return roster.Roster{}, fmt.Errorf("%w: roster for game %s", ErrNotFound, gameID)
	}

	updated, err := s.applyUpdate(current, actorID, entries)
	if err != nil {
		return roster.Roster{}, err
	}

	replaced, err := s.rosters.Replace(ctx, updated)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("replace roster for game %s: %w", gameID, err)
	}

	if err := s.reconcilePicks(ctx, gameItem, replaced); err != nil {
		return roster.Roster{}, err
	}

	return replaced, nil
}

// GamerEntries returns the players a gamer currently controls.
func (s *RosterService) GamerEntries(ctx context.Context, gameID, gamerID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.GamerEntries")
	defer span.End()

	gamerID = strings.TrimSpace(gamerID)
	if gamerID == "" {
		return nil, fmt.Errorf("%w: gamer id is required", ErrInvalidInput)
	}

	item, err := s.GetRoster(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return item.EntriesForGamer(gamerID), nil
}

// Transactions returns the ledger classified at read time. Records that
// match no known shape come back as "unknown" rather than being dropped.
func (s *RosterService) Transactions(ctx context.Context, gameID string) ([]roster.ParsedTransaction, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.Transactions")
	defer span.End()

	item, err := s.GetRoster(ctx, gameID)
	if err != nil {
		return nil, err
	}

	out := make([]roster.ParsedTransaction, 0, len(item.Transactions))
	for _, tx := range item.Transactions {
		parsed := tx.Parse()
		if parsed.Action == roster.ActionUnknown {
			s.logger.WarnContext(ctx, "unclassified roster transaction",
				"game_id", gameID, "transaction_id", tx.ID)
		}
		out = append(out, parsed)
	}

	return out, nil
}

// applyUpdate diffs the submitted entries into the roster and ledger. The
// returned roster is a modified copy; nothing is persisted here.
func (s *RosterService) applyUpdate(current roster.Roster, actorID string, entries []roster.Entry) (roster.Roster, error) {
	now := s.clock.Now()

	for _, submitted := range entries {
		submitted.PlayerID = strings.TrimSpace(submitted.PlayerID)
		submitted.Name = strings.TrimSpace(submitted.Name)
		submitted.Gamer = strings.TrimSpace(submitted.Gamer)
		if submitted.PlayerID == "" {
			submitted.PlayerID = roster.NormalizePlayerID(submitted.Name)
		}
		if submitted.PlayerID == "" {
			return roster.Roster{}, fmt.Errorf("%w: roster entry needs a player id or name", ErrInvalidInput)
		}

		txID, err := s.ids.NewID()
		if err != nil {
			return roster.Roster{}, fmt.Errorf("generate transaction id: %w", err)
		}

		if existing := current.Entry(submitted.PlayerID); existing != nil {
			before := *existing
			*existing = submitted
			current.Transactions = append(current.Transactions, roster.Transaction{
				ID:     txID,
				Action: roster.RawActionModify,
				When:   now,
				Who:    actorID,
				Before: &before,
				After:  &submitted,
			})
			continue
		}

		current.Players = append(current.Players, submitted)
		current.Transactions = append(current.Transactions, roster.Transaction{
			ID:     txID,
			Action: roster.RawActionAdd,
			When:   now,
			Who:    actorID,
			Record: &submitted,
		})
	}

	return current, nil
}

// reconcilePicks drops picks in the next open event for players the picking
// gamer no longer controls. Events already in progress or complete are
// never touched; a season with no open next event is a no-op.
func (s *RosterService) reconcilePicks(ctx context.Context, gameItem game.Game, fresh roster.Roster) error {
	gameItem, err := ensureScheduleDates(ctx, s.games, s.feeds, gameItem)
	if err != nil {
		return err
	}

	next := tournament.Next(gameItem.Schedule, s.clock.Now())
	if next == nil || next.Phase != tournament.PhaseOpenForPicks {
		return nil
	}
	event := gameItem.Event(next.ID)
	if event == nil {
		return nil
	}

	changed := false
	for gi := range event.Gamers {
		eg := &event.Gamers[gi]
		kept := eg.Picks[:0]
		for _, pick := range eg.Picks {
			entry := fresh.Entry(pick.ID)
			if entry != nil && entry.Gamer == eg.ID {
				kept = append(kept, pick)
				continue
			}
			changed = true
			s.logger.InfoContext(ctx, "pick dropped by roster reconciliation",
				"game_id", gameItem.ID, "event_id", event.ID, "gamer_id", eg.ID, "player_id", pick.ID)
		}
		eg.Picks = kept
	}
	if !changed {
		return nil
	}

	if _, err := s.games.Replace(ctx, gameItem); err != nil {
		return fmt.Errorf("persist reconciled picks for game %s: %w", gameItem.ID, err)
	}

	return nil
}
