package usecase_test

import (
	. "github.com/djboulia/fantasygolf/internal/usecase"

	"context"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/roster"
	"github.com/djboulia/fantasygolf/internal/domain/scoring"
	"github.com/djboulia/fantasygolf/internal/infrastructure/repository/memory"
	"github.com/djboulia/fantasygolf/internal/platform/id"
)

func newGameService(games []game.Game, rosters []roster.Roster, feed *fakeSeasonFeed) *GameService {
	return NewGameService(
		memory.NewGameRepository(games),
		memory.NewRosterRepository(rosters),
		fakeFeedProvider{feed: feed},
		id.NewRandomGenerator(),
		nil,
		clock.NewMock(),
	)
}

func twoEventGame() game.Game {
	return game.Game{
		ID:     "game1",
		Name:   "Majors Pool",
		Tour:   "pga",
		Season: 2024,
		Gamers: []game.Gamer{{ID: "g1", Name: "Alice"}, {ID: "g2", Name: "Bob"}},
		Events: []game.Event{
			{ID: "t1", Gamers: []game.EventGamer{
				{ID: "g1", Picks: []game.Pick{{ID: "p1"}}},
				{ID: "g2", Picks: []game.Pick{{ID: "p2"}}},
			}},
			{ID: "t2", Gamers: []game.EventGamer{
				{ID: "g1", Picks: []game.Pick{{ID: "p2"}}},
			}},
		},
	}
}

func TestGameService_GetGame_MergesAndTallies(t *testing.T) {
	feed := &fakeSeasonFeed{events: map[string]scoring.EventScoring{
		"t1": {EventID: "t1", Scores: []scoring.PlayerScore{
			{PlayerID: "p1", Name: "Player One", Total: -4},
			{PlayerID: "p2", Name: "Player Two", Total: 1},
		}},
		"t2": {EventID: "t2", Scores: []scoring.PlayerScore{
			{PlayerID: "p2", Name: "Player Two", Total: 3},
		}},
	}}
	svc := newGameService([]game.Game{twoEventGame()}, nil, feed)

	item, err := svc.GetGame(context.Background(), "game1")
	require.NoError(t, err)

	require.Len(t, item.Gamers, 2)
	assert.Equal(t, -4+3, item.Gamers[0].Total)
	assert.Equal(t, 1, item.Gamers[1].Total)
	assert.False(t, item.Gamers[0].Leader)
	assert.True(t, item.Gamers[1].Leader)
	assert.Equal(t, int64(2), feed.eventCalls.Load())
}

func TestGameService_GetGame_OneFailedEventFailsTheView(t *testing.T) {
	// t2 has no canned payload, so its fetch fails
	feed := &fakeSeasonFeed{events: map[string]scoring.EventScoring{
		"t1": {EventID: "t1"},
	}}
	svc := newGameService([]game.Game{twoEventGame()}, nil, feed)

	_, err := svc.GetGame(context.Background(), "game1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestGameService_GetGame_NotFound(t *testing.T) {
	svc := newGameService(nil, nil, &fakeSeasonFeed{})

	_, err := svc.GetGame(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameService_Search_FiltersByGamer(t *testing.T) {
	games := []game.Game{
		{ID: "game1", Tour: "pga", Season: 2024, Gamers: []game.Gamer{{ID: "g1"}}},
		{ID: "game2", Tour: "pga", Season: 2024, Gamers: []game.Gamer{{ID: "g2"}}},
	}
	svc := newGameService(games, nil, &fakeSeasonFeed{})

	matches, err := svc.Search(context.Background(), SearchGamesInput{GamerID: "g2"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "game2", matches[0].ID)
}

func TestGameService_Search_DetailsMergeEveryMatch(t *testing.T) {
	games := []game.Game{
		{ID: "game1", Tour: "pga", Season: 2024,
			Gamers: []game.Gamer{{ID: "g1"}},
			Events: []game.Event{{ID: "t1", Gamers: []game.EventGamer{
				{ID: "g1", Picks: []game.Pick{{ID: "p1"}}},
			}}}},
		{ID: "game2", Tour: "pga", Season: 2024,
			Gamers: []game.Gamer{{ID: "g1"}},
			Events: []game.Event{{ID: "t1", Gamers: []game.EventGamer{
				{ID: "g1", Picks: []game.Pick{{ID: "p1"}}},
			}}}},
	}
	feed := &fakeSeasonFeed{events: map[string]scoring.EventScoring{
		"t1": {EventID: "t1", Scores: []scoring.PlayerScore{
			{PlayerID: "p1", Name: "Player One", Total: -2},
		}},
	}}
	svc := newGameService(games, nil, feed)

	matches, err := svc.Search(context.Background(), SearchGamesInput{Details: true})
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, item := range matches {
		require.Len(t, item.Gamers, 1)
		assert.Equal(t, -2, item.Gamers[0].Total)
		assert.True(t, item.Gamers[0].Leader)
	}
}

func TestGameService_CreateGame_InitializesRoster(t *testing.T) {
	gameRepo := memory.NewGameRepository(nil)
	rosterRepo := memory.NewRosterRepository(nil)
	svc := NewGameService(gameRepo, rosterRepo, fakeFeedProvider{feed: &fakeSeasonFeed{}},
		id.NewRandomGenerator(), nil, clock.NewMock())

	created, err := svc.CreateGame(context.Background(), CreateGameInput{
		Name:   "Majors Pool",
		Tour:   "pga",
		Season: 2024,
		Gamers: []game.Gamer{{ID: "g1", Name: "Alice"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	ros, exists, err := rosterRepo.GetByGameID(context.Background(), created.ID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Empty(t, ros.Players)
	assert.Empty(t, ros.Transactions)
}

func TestGameService_CreateGame_RejectsMissingTour(t *testing.T) {
	svc := newGameService(nil, nil, &fakeSeasonFeed{})

	_, err := svc.CreateGame(context.Background(), CreateGameInput{Name: "x", Season: 2024})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
