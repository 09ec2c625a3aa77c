package usecase_test

import (
	. "github.com/djboulia/fantasygolf/internal/usecase"

	"context"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/infrastructure/repository/memory"
)

func picksGame() game.Game {
	return game.Game{
		ID:     "game1",
		Tour:   "pga",
		Season: 2024,
		Gamers: []game.Gamer{{ID: "g1"}},
		Schedule: []game.ScheduleEntry{
			{ID: "t1", Name: "Open", Start: testStart, End: testEnd},
		},
	}
}

func newPicksFixture(games []game.Game, feed *fakeSeasonFeed) (*PicksService, *memory.GameRepository, *clock.Mock) {
	gameRepo := memory.NewGameRepository(games)
	mock := clock.NewMock()
	svc := NewPicksService(gameRepo, fakeFeedProvider{feed: feed}, nil, mock)
	return svc, gameRepo, mock
}

func TestPicksService_PutPicks_CreatesEventLazily(t *testing.T) {
	svc, gameRepo, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testNowOpen)

	picks, err := svc.PutPicks(context.Background(), "game1", "t1", "g1",
		[]game.Pick{{ID: "p1", Name: "ignored"}, {ID: "p2"}})
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Empty(t, picks[0].Name, "names are attached by the merge, not stored")

	item, _, err := gameRepo.GetByID(context.Background(), "game1")
	require.NoError(t, err)
	event := item.Event("t1")
	require.NotNil(t, event, "first submission creates the event record")
	assert.Equal(t, "Open", event.Name)
	assert.Equal(t, testStart, event.Start)
	eg := event.Gamer("g1")
	require.NotNil(t, eg)
	assert.Len(t, eg.Picks, 2)
}

func TestPicksService_PutPicks_ReplacesExistingPicks(t *testing.T) {
	svc, gameRepo, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testNowOpen)

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "g1", []game.Pick{{ID: "p1"}})
	require.NoError(t, err)
	_, err = svc.PutPicks(context.Background(), "game1", "t1", "g1", []game.Pick{{ID: "p2"}})
	require.NoError(t, err)

	item, _, err := gameRepo.GetByID(context.Background(), "game1")
	require.NoError(t, err)
	picks := item.Event("t1").Gamer("g1").Picks
	require.Len(t, picks, 1)
	assert.Equal(t, "p2", picks[0].ID)
}

func TestPicksService_PutPicks_RejectedOncePlayBegins(t *testing.T) {
	svc, _, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testNowInProgress)

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "g1", []game.Pick{{ID: "p1"}})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPicksService_PutPicks_RejectedBeforeWindowOpens(t *testing.T) {
	svc, _, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testStart.Add(-5 * 24 * time.Hour))

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "g1", []game.Pick{{ID: "p1"}})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPicksService_PutPicks_EnrichesScheduleFromFeed(t *testing.T) {
	bare := picksGame()
	bare.Schedule = []game.ScheduleEntry{{ID: "t1"}}
	feed := &fakeSeasonFeed{schedule: []game.ScheduleEntry{
		{ID: "t1", Name: "Open", Start: testStart, End: testEnd},
	}}
	svc, gameRepo, mock := newPicksFixture([]game.Game{bare}, feed)
	mock.Set(testNowOpen)

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "g1", []game.Pick{{ID: "p1"}})
	require.NoError(t, err)

	item, _, err := gameRepo.GetByID(context.Background(), "game1")
	require.NoError(t, err)
	require.Len(t, item.Schedule, 1)
	assert.Equal(t, testStart, item.Schedule[0].Start, "schedule dates are filled in once and persisted")
}

func TestPicksService_PutPicks_RejectsDuplicatePicks(t *testing.T) {
	svc, _, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testNowOpen)

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "g1",
		[]game.Pick{{ID: "p1"}, {ID: "p1"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPicksService_PutPicks_UnknownGamer(t *testing.T) {
	svc, _, mock := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})
	mock.Set(testNowOpen)

	_, err := svc.PutPicks(context.Background(), "game1", "t1", "nobody", []game.Pick{{ID: "p1"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPicksService_GetPicks_EmptyBeforeAnySubmission(t *testing.T) {
	svc, _, _ := newPicksFixture([]game.Game{picksGame()}, &fakeSeasonFeed{})

	picks, err := svc.GetPicks(context.Background(), "game1", "t1", "g1")
	require.NoError(t, err)
	assert.Empty(t, picks)
}
