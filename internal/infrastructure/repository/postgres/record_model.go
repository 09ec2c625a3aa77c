package postgres

import (
	"encoding/json"
	"time"
)

// Game and roster records live in one jsonb-backed table. The typed mapping
// happens here at the store boundary; SQL never reaches into the payload.
const (
	recordKindGame   = "game"
	recordKindRoster = "roster"
)

type recordModel struct {
	ID        string          `db:"id"`
	Kind      string          `db:"kind"`
	Data      json.RawMessage `db:"data"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}
