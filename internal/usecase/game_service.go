package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/itbasis/go-clock"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/roster"
	"github.com/djboulia/fantasygolf/internal/platform/id"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
)

const (
	defaultMergeWorkers  = 6
	defaultSearchWorkers = 4
)

type CreateGameInput struct {
	Name     string
	Tour     string
	Season   int
	Schedule []game.ScheduleEntry
	Gamers   []game.Gamer
}

type SearchGamesInput struct {
	GamerID string
	Details bool
}

// GameService serves season views: a game enriched with live scoring merged
// into every pick and the per-gamer season tally.
type GameService struct {
	games         game.Repository
	rosters       roster.Repository
	feeds         FeedProvider
	ids           id.Generator
	logger        *logging.Logger
	clock         clock.Clock
	mergeWorkers  int
	searchWorkers int
}

func NewGameService(
	games game.Repository,
	rosters roster.Repository,
	feeds FeedProvider,
	ids id.Generator,
	logger *logging.Logger,
	clk clock.Clock,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &GameService{
		games:         games,
		rosters:       rosters,
		feeds:         feeds,
		ids:           ids,
		logger:        logger,
		clock:         clk,
		mergeWorkers:  defaultMergeWorkers,
		searchWorkers: defaultSearchWorkers,
	}
}

// GetGame returns the season detail view: the stored game with every
// event's picks scored from the feed and gamer totals tallied. One failed
// event fails the whole view; partial standings are never returned.
func (s *GameService) GetGame(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.GetGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game %s: %w", gameID, err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	return s.withScoring(ctx, item)
}

// Search lists games, optionally restricted to those a gamer plays in.
// With details on, every match gets the full scoring merge; the fan-out
// over games is bounded and all-or-nothing.
func (s *GameService) Search(ctx context.Context, input SearchGamesInput) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.Search")
	defer span.End()

	input.GamerID = strings.TrimSpace(input.GamerID)

	items, err := s.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	matches := make([]game.Game, 0, len(items))
	for _, item := range items {
		if input.GamerID != "" && !item.HasGamer(input.GamerID) {
			continue
		}
		matches = append(matches, item)
	}

	if !input.Details || len(matches) == 0 {
		return matches, nil
	}

	return s.withScoringAll(ctx, matches)
}

// CreateGame stores a new game and initializes its empty roster record.
func (s *GameService) CreateGame(ctx context.Context, input CreateGameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "GameService.CreateGame")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Tour = strings.TrimSpace(input.Tour)

	newID, err := s.ids.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}

	item := game.Game{
		ID:       newID,
		Name:     input.Name,
		Tour:     input.Tour,
		Season:   input.Season,
		Schedule: input.Schedule,
		Gamers:   input.Gamers,
		Events:   []game.Event{},
	}
	if err := item.ValidateBasic(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.games.Create(ctx, item)
	if err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}

	if _, err := s.rosters.Replace(ctx, roster.Roster{
		GameID:       created.ID,
		Players:      []roster.Entry{},
		Transactions: []roster.Transaction{},
	}); err != nil {
		return game.Game{}, fmt.Errorf("initialize roster for game %s: %w", created.ID, err)
	}

	s.logger.InfoContext(ctx, "game created", "game_id", created.ID, "tour", created.Tour, "season", created.Season)
	return created, nil
}

// withScoring merges live scores into every event and tallies the season.
// The per-event feed fetches run concurrently with an all-or-nothing join.
func (s *GameService) withScoring(ctx context.Context, item game.Game) (game.Game, error) {
	ros, _, err := s.rosters.GetByGameID(ctx, item.ID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get roster for game %s: %w", item.ID, err)
	}
	rosterNames := ros.NamesByPlayerID()

	feed := s.feeds.Season(item.Season, item.Tour)
	merged := make([]game.Event, len(item.Events))

	p := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.mergeWorkers)
	for i, event := range item.Events {
		p.Go(func(ctx context.Context) error {
			feedEvent, err := feed.GetEvent(ctx, event.ID)
			if err != nil {
				return fmt.Errorf("merge event %s: %w", event.ID, err)
			}
			merged[i] = mergeEventScores(event, *feedEvent, rosterNames)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return game.Game{}, err
	}

	item.Events = merged
	item.Gamers = tallyGamers(item.Gamers, item.Events)

	return item, nil
}

// withScoringAll runs the scoring merge for every game on a bounded worker
// pool, capturing the first failure.
func (s *GameService) withScoringAll(ctx context.Context, items []game.Game) ([]game.Game, error) {
	workers := min(s.searchWorkers, len(items))
	antsPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer antsPool.Release()

	out := make([]game.Game, len(items))
	var firstErr error
	var errOnce sync.Once

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		if err := antsPool.Submit(func() {
			defer wg.Done()
			enriched, err := s.withScoring(ctx, item)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			out[i] = enriched
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
