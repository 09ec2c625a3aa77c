package memory

import (
	"context"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/djboulia/fantasygolf/internal/domain/roster"
)

// RosterRepository keeps roster records in process memory, keyed by the
// owning game id. A Replace for an unknown game id creates the record, so
// roster initialization needs no separate insert path.
type RosterRepository struct {
	mu      sync.RWMutex
	rosters map[string]roster.Roster
	order   []string
}

func NewRosterRepository(rosters []roster.Roster) *RosterRepository {
	r := &RosterRepository{rosters: make(map[string]roster.Roster)}
	for _, item := range rosters {
		id := strings.TrimSpace(item.GameID)
		if id == "" {
			continue
		}
		if _, exists := r.rosters[id]; !exists {
			r.order = append(r.order, id)
		}
		r.rosters[id] = item
	}

	return r
}

func (r *RosterRepository) GetByGameID(_ context.Context, gameID string) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rosters[gameID]
	if !ok {
		return roster.Roster{}, false, nil
	}

	out, err := clone(item)
	if err != nil {
		return roster.Roster{}, false, err
	}
	return out, true, nil
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0, len(r.order))
	for _, id := range r.order {
		item, err := clone(r.rosters[id])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *RosterRepository) Replace(_ context.Context, item roster.Roster) (roster.Roster, error) {
	id := strings.TrimSpace(item.GameID)
	if id == "" {
		return roster.Roster{}, crerr.New("roster game id is required")
	}

	stored, err := clone(item)
	if err != nil {
		return roster.Roster{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rosters[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rosters[id] = stored

	return item, nil
}
