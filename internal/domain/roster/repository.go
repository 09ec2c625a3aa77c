package roster

import "context"

// Repository is the backing record store for rosters, keyed by game id.
type Repository interface {
	GetByGameID(ctx context.Context, gameID string) (Roster, bool, error)
	List(ctx context.Context) ([]Roster, error)
	Replace(ctx context.Context, item Roster) (Roster, error)
}
