package memory

import (
	"context"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

// GameRepository keeps game records in process memory. It backs local
// development and tests; production wires the postgres store instead.
type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
	order []string
}

func NewGameRepository(games []game.Game) *GameRepository {
	r := &GameRepository{games: make(map[string]game.Game)}
	for _, item := range games {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		if _, exists := r.games[id]; !exists {
			r.order = append(r.order, id)
		}
		r.games[id] = item
	}

	return r
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[gameID]
	if !ok {
		return game.Game{}, false, nil
	}

	out, err := clone(item)
	if err != nil {
		return game.Game{}, false, err
	}
	return out, true, nil
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.order))
	for _, id := range r.order {
		item, err := clone(r.games[id])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *GameRepository) Create(_ context.Context, item game.Game) (game.Game, error) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return game.Game{}, crerr.New("game id is required")
	}

	stored, err := clone(item)
	if err != nil {
		return game.Game{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[id]; exists {
		return game.Game{}, crerr.Newf("game %s already exists", id)
	}
	r.games[id] = stored
	r.order = append(r.order, id)

	return item, nil
}

func (r *GameRepository) Replace(_ context.Context, item game.Game) (game.Game, error) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return game.Game{}, crerr.New("game id is required")
	}

	stored, err := clone(item)
	if err != nil {
		return game.Game{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[id]; !exists {
		return game.Game{}, crerr.Wrapf(usecase.ErrNotFound, "game %s", id)
	}
	r.games[id] = stored

	return item, nil
}
