package usecase

import (
	"context"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/scoring"
)

// SeasonFeed is one (year, tour) slice of the external scoring feed.
type SeasonFeed interface {
	GetEvent(ctx context.Context, eventID string) (*scoring.EventScoring, error)
	GetSchedule(ctx context.Context) ([]game.ScheduleEntry, error)
	GetRankings(ctx context.Context) ([]scoring.RankedPlayer, error)
}

// FeedProvider hands out season-scoped feed clients.
type FeedProvider interface {
	Season(year int, tour string) SeasonFeed
}
