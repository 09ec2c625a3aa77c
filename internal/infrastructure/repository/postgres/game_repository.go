package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/usecase"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	var row recordModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, kind, data, created_at, updated_at FROM records WHERE id = $1 AND kind = $2`,
		gameID, recordKindGame)
	if isNotFound(err) {
		return game.Game{}, false, nil
	}
	if err != nil {
		return game.Game{}, false, fmt.Errorf("select game %s: %w", gameID, err)
	}

	item, err := decodeGame(row)
	if err != nil {
		return game.Game{}, false, err
	}
	return item, true, nil
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	var rows []recordModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, kind, data, created_at, updated_at FROM records WHERE kind = $1 ORDER BY created_at, id`,
		recordKindGame)
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		item, err := decodeGame(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return game.Game{}, crerr.New("game id is required")
	}

	raw, err := sonic.Marshal(item)
	if err != nil {
		return game.Game{}, fmt.Errorf("encode game %s: %w", id, err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, kind, data, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (id) DO NOTHING`,
		id, recordKindGame, raw)
	if err != nil {
		return game.Game{}, fmt.Errorf("insert game %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return game.Game{}, fmt.Errorf("insert game %s: %w", id, err)
	}
	if affected == 0 {
		return game.Game{}, crerr.Newf("game %s already exists", id)
	}

	return item, nil
}

func (r *GameRepository) Replace(ctx context.Context, item game.Game) (game.Game, error) {
	id := strings.TrimSpace(item.ID)
	if id == "" {
		return game.Game{}, crerr.New("game id is required")
	}

	raw, err := sonic.Marshal(item)
	if err != nil {
		return game.Game{}, fmt.Errorf("encode game %s: %w", id, err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE records SET data = $3, updated_at = NOW() WHERE id = $1 AND kind = $2`,
		id, recordKindGame, raw)
	if err != nil {
		return game.Game{}, fmt.Errorf("update game %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return game.Game{}, fmt.Errorf("update game %s: %w", id, err)
	}
	if affected == 0 {
		return game.Game{}, crerr.Wrapf(usecase.ErrNotFound, "game %s", id)
	}

	return item, nil
}

func decodeGame(row recordModel) (game.Game, error) {
	var item game.Game
	if err := sonic.Unmarshal(row.Data, &item); err != nil {
		return game.Game{}, fmt.Errorf("decode game record %s: %w", row.ID, err)
	}
	if item.ID == "" {
		item.ID = row.ID
	}
	return item, nil
}
