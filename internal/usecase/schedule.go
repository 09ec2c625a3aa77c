package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/itbasis/go-clock"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/tournament"
	"github.com/djboulia/fantasygolf/internal/platform/logging"
)

// TourSchedule is a season schedule annotated with the next playable event.
type TourSchedule struct {
	Tour     string                `json:"tour"`
	Season   int                   `json:"season"`
	Schedule []game.ScheduleEntry  `json:"schedule"`
	Next     *tournament.NextEvent `json:"next,omitempty"`
}

// ScheduleService exposes the external tour schedule.
type ScheduleService struct {
	feeds  FeedProvider
	logger *logging.Logger
	clock  clock.Clock
}

func NewScheduleService(feeds FeedProvider, logger *logging.Logger, clk clock.Clock) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &ScheduleService{feeds: feeds, logger: logger, clock: clk}
}

// GetTourSchedule fetches the season schedule from the feed, sorted by
// start, with the first non-complete tournament annotated with its phase.
func (s *ScheduleService) GetTourSchedule(ctx context.Context, tour string, year int) (TourSchedule, error) {
	ctx, span := startUsecaseSpan(ctx, "ScheduleService.GetTourSchedule")
	defer span.End()

	tour = strings.TrimSpace(tour)
	if tour == "" {
		return TourSchedule{}, fmt.Errorf("%w: tour is required", ErrInvalidInput)
	}
	if year <= 0 {
		return TourSchedule{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	entries, err := s.feeds.Season(year, tour).GetSchedule(ctx)
	if err != nil {
		return TourSchedule{}, fmt.Errorf("get schedule tour=%s year=%d: %w", tour, year, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})

	return TourSchedule{
		Tour:     tour,
		Season:   year,
		Schedule: entries,
		Next:     tournament.Next(entries, s.clock.Now()),
	}, nil
}

// ensureScheduleDates lazily enriches a game's schedule references with
// names and dates from the feed. Entries that already carry dates are left
// alone; when anything was filled in, the game is persisted so the fetch
// happens once, not per request.
func ensureScheduleDates(ctx context.Context, games game.Repository, feeds FeedProvider, item game.Game) (game.Game, error) {
	needsDates := false
	for _, entry := range item.Schedule {
		if entry.Start.IsZero() || entry.End.IsZero() {
			needsDates = true
			break
		}
	}
	if !needsDates {
		return item, nil
	}

	entries, err := feeds.Season(item.Season, item.Tour).GetSchedule(ctx)
	if err != nil {
		return game.Game{}, fmt.Errorf("enrich schedule for game %s: %w", item.ID, err)
	}

	byID := make(map[string]game.ScheduleEntry, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	changed := false
	for i, entry := range item.Schedule {
		feedEntry, ok := byID[entry.ID]
		if !ok {
			continue
		}
		if entry.Name == "" && feedEntry.Name != "" {
			item.Schedule[i].Name = feedEntry.Name
			changed = true
		}
		if entry.Start.IsZero() && !feedEntry.Start.IsZero() {
			item.Schedule[i].Start = feedEntry.Start
			changed = true
		}
		if entry.End.IsZero() && !feedEntry.End.IsZero() {
			item.Schedule[i].End = feedEntry.End
			changed = true
		}
	}
	if !changed {
		return item, nil
	}

	replaced, err := games.Replace(ctx, item)
	if err != nil {
		return game.Game{}, fmt.Errorf("persist enriched schedule for game %s: %w", item.ID, err)
	}

	return replaced, nil
}

// scheduleEntryFor returns the game's schedule reference for a tournament
// id, or false when the tournament is not part of the season.
func scheduleEntryFor(item game.Game, eventID string) (game.ScheduleEntry, bool) {
	for _, entry := range item.Schedule {
		if entry.ID == eventID {
			return entry, true
		}
	}
	return game.ScheduleEntry{}, false
}
