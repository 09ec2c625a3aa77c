package cache

import (
	"context"
	"errors"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/roster"
	basecache "github.com/djboulia/fantasygolf/internal/platform/cache"
)

// errRecordMissing flows out of a loader when the backing store has no row.
// GetOrLoad never caches a loader error, so absent records are re-fetched on
// every call instead of being negatively cached.
var errRecordMissing = errors.New("record missing")

// GameRepository is a read-through decorator over a game.Repository. Reads
// share one backing call per key across concurrent callers; writes go
// through to the backing store first and refresh the cache on success.
type GameRepository struct {
	next  game.Repository
	store *basecache.Store[game.Game]
}

func NewGameRepository(next game.Repository, store *basecache.Store[game.Game]) *GameRepository {
	return &GameRepository{next: next, store: store}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	item, err := r.store.GetOrLoad(ctx, gameKey(gameID), func(ctx context.Context) (game.Game, error) {
		loaded, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return game.Game{}, err
		}
		if !exists {
			return game.Game{}, errRecordMissing
		}
		return loaded, nil
	})
	if errors.Is(err, errRecordMissing) {
		return game.Game{}, false, nil
	}
	if err != nil {
		return game.Game{}, false, err
	}

	return item, true, nil
}

// List always hits the backing store; it warms the per-id entries so the
// findById calls that follow a listing are free.
func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	items, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		r.store.Set(ctx, gameKey(item.ID), item)
	}

	return items, nil
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.store.Set(ctx, gameKey(created.ID), created)

	return created, nil
}

func (r *GameRepository) Replace(ctx context.Context, item game.Game) (game.Game, error) {
	replaced, err := r.next.Replace(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.store.Set(ctx, gameKey(replaced.ID), replaced)

	return replaced, nil
}

func gameKey(gameID string) string {
	return "game:id:" + gameID
}

// RosterRepository is the roster twin of GameRepository.
type RosterRepository struct {
	next  roster.Repository
	store *basecache.Store[roster.Roster]
}

func NewRosterRepository(next roster.Repository, store *basecache.Store[roster.Roster]) *RosterRepository {
	return &RosterRepository{next: next, store: store}
}

func (r *RosterRepository) GetByGameID(ctx context.Context, gameID string) (roster.Roster, bool, error) {
	item, err := r.store.GetOrLoad(ctx, rosterKey(gameID), func(ctx context.Context) (roster.Roster, error) {
		loaded, exists, err := r.next.GetByGameID(ctx, gameID)
		if err != nil {
			return roster.Roster{}, err
		}
		if !exists {
			return roster.Roster{}, errRecordMissing
		}
		return loaded, nil
	})
	if errors.Is(err, errRecordMissing) {
		return roster.Roster{}, false, nil
	}
	if err != nil {
		return roster.Roster{}, false, err
	}

	return item, true, nil
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Roster, error) {
	items, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		r.store.Set(ctx, rosterKey(item.GameID), item)
	}

	return items, nil
}

func (r *RosterRepository) Replace(ctx context.Context, item roster.Roster) (roster.Roster, error) {
	replaced, err := r.next.Replace(ctx, item)
	if err != nil {
		return roster.Roster{}, err
	}
	r.store.Set(ctx, rosterKey(replaced.GameID), replaced)

	return replaced, nil
}

func rosterKey(gameID string) string {
	return "roster:game:" + gameID
}
