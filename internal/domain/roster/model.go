package roster

import (
	"fmt"
	"strings"
	"unicode"
)

// Roster is the pool of tour players for one game, 1:1 with the game and
// looked up by game id. Transactions is an append-only ledger of roster
// mutations; records are classified lazily at read time (see Transaction).
type Roster struct {
	GameID       string        `json:"game"`
	Players      []Entry       `json:"roster"`
	Transactions []Transaction `json:"transactions"`
}

// Entry is one tour player in the roster. Gamer is the id of the gamer who
// controls the player; empty means free agent.
type Entry struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Gamer      string `json:"gamer,omitempty"`
	DraftedBy  string `json:"drafted_by,omitempty"`
	DraftRound int    `json:"draft_round,omitempty"`
}

func (r Roster) ValidateBasic() error {
	if r.GameID == "" {
		return fmt.Errorf("roster game id is required")
	}
	seen := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		if p.PlayerID == "" {
			return fmt.Errorf("roster entry without player id")
		}
		if _, dup := seen[p.PlayerID]; dup {
			return fmt.Errorf("duplicate player id %s", p.PlayerID)
		}
		seen[p.PlayerID] = struct{}{}
	}
	return nil
}

// Entry returns the roster entry for the given player id, or nil.
func (r *Roster) Entry(playerID string) *Entry {
	for i := range r.Players {
		if r.Players[i].PlayerID == playerID {
			return &r.Players[i]
		}
	}
	return nil
}

// NamesByPlayerID indexes roster entries for score-merge fallback lookup.
func (r Roster) NamesByPlayerID() map[string]string {
	out := make(map[string]string, len(r.Players))
	for _, p := range r.Players {
		out[p.PlayerID] = p.Name
	}
	return out
}

// EntriesForGamer returns the players currently controlled by the gamer.
func (r Roster) EntriesForGamer(gamerID string) []Entry {
	out := make([]Entry, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Gamer == gamerID {
			out = append(out, p)
		}
	}
	return out
}

// NormalizePlayerID synthesizes a stable player id from a golfer name when
// the external feed supplies none: lowercased with everything but letters
// and digits stripped.
func NormalizePlayerID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
