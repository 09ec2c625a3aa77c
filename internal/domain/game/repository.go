package game

import "context"

// Repository is the backing record store for games. Implementations treat a
// game as an opaque {id, data} envelope; the typed mapping lives at the
// store boundary.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	List(ctx context.Context) ([]Game, error)
	Create(ctx context.Context, item Game) (Game, error)
	Replace(ctx context.Context, item Game) (Game, error)
}
