package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/djboulia/fantasygolf/internal/domain/roster"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByGameID(ctx context.Context, gameID string) (roster.Roster, bool, error) {
	var row recordModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, kind, data, created_at, updated_at FROM records WHERE id = $1 AND kind = $2`,
		rosterRecordID(gameID), recordKindRoster)
	if isNotFound(err) {
		return roster.Roster{}, false, nil
	}
	if err != nil {
		return roster.Roster{}, false, fmt.Errorf("select roster for game %s: %w", gameID, err)
	}

	item, err := decodeRoster(row)
	if err != nil {
		return roster.Roster{}, false, err
	}
	return item, true, nil
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Roster, error) {
	var rows []recordModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, kind, data, created_at, updated_at FROM records WHERE kind = $1 ORDER BY created_at, id`,
		recordKindRoster)
	if err != nil {
		return nil, fmt.Errorf("select rosters: %w", err)
	}

	out := make([]roster.Roster, 0, len(rows))
	for _, row := range rows {
		item, err := decodeRoster(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

// Replace upserts: initializing a roster and rewriting one are the same
// write.
func (r *RosterRepository) Replace(ctx context.Context, item roster.Roster) (roster.Roster, error) {
	gameID := strings.TrimSpace(item.GameID)
	if gameID == "" {
		return roster.Roster{}, crerr.New("roster game id is required")
	}

	raw, err := sonic.Marshal(item)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("encode roster for game %s: %w", gameID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO records (id, kind, data, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		rosterRecordID(gameID), recordKindRoster, raw)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("upsert roster for game %s: %w", gameID, err)
	}

	return item, nil
}

func decodeRoster(row recordModel) (roster.Roster, error) {
	var item roster.Roster
	if err := sonic.Unmarshal(row.Data, &item); err != nil {
		return roster.Roster{}, fmt.Errorf("decode roster record %s: %w", row.ID, err)
	}
	return item, nil
}

// rosterRecordID namespaces roster rows so a roster and its game can share
// the game id without colliding in the records table.
func rosterRecordID(gameID string) string {
	return "roster:" + gameID
}
