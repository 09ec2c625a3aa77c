package usecase_test

import (
	. "github.com/djboulia/fantasygolf/internal/usecase"

	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/scoring"
)

// fakeSeasonFeed serves canned feed payloads. An event id without a canned
// payload behaves like an unavailable feed.
type fakeSeasonFeed struct {
	events      map[string]scoring.EventScoring
	schedule    []game.ScheduleEntry
	rankings    []scoring.RankedPlayer
	scheduleErr error
	rankingsErr error
	eventCalls  atomic.Int64
}

func (f *fakeSeasonFeed) GetEvent(_ context.Context, eventID string) (*scoring.EventScoring, error) {
	f.eventCalls.Add(1)
	event, ok := f.events[eventID]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", ErrUpstreamUnavailable, eventID)
	}
	return &event, nil
}

func (f *fakeSeasonFeed) GetSchedule(_ context.Context) ([]game.ScheduleEntry, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return append([]game.ScheduleEntry(nil), f.schedule...), nil
}

func (f *fakeSeasonFeed) GetRankings(_ context.Context) ([]scoring.RankedPlayer, error) {
	if f.rankingsErr != nil {
		return nil, f.rankingsErr
	}
	return append([]scoring.RankedPlayer(nil), f.rankings...), nil
}

type fakeFeedProvider struct {
	feed *fakeSeasonFeed
}

func (p fakeFeedProvider) Season(int, string) SeasonFeed {
	return p.feed
}

// Fixed tournament used across service tests: Thursday start, Sunday end.
var (
	testStart = time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 6, 16, 20, 0, 0, 0, time.UTC)

	// inside the 3-day pick window
	testNowOpen = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	// mid-tournament
	testNowInProgress = time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
)
