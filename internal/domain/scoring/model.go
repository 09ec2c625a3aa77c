// Package scoring holds the shapes the external tour feed resolves into:
// live event scoring and the season world rankings.
package scoring

import "time"

// EventScoring is the live scoring payload for one tournament.
type EventScoring struct {
	EventID string
	Name    string
	Start   time.Time
	End     time.Time
	Scores  []PlayerScore
}

// PlayerScore is one golfer's line in the event scoring feed. Pos is the
// place in the field ("1", "T4") or a status string (CUT, WD, DNS).
type PlayerScore struct {
	PlayerID string
	Name     string
	Pos      string
	Total    int
	Thru     int
}

// ScoresByPlayerID indexes the field for merge lookup.
func (e EventScoring) ScoresByPlayerID() map[string]PlayerScore {
	out := make(map[string]PlayerScore, len(e.Scores))
	for _, s := range e.Scores {
		if s.PlayerID != "" {
			out[s.PlayerID] = s
		}
	}
	return out
}

// RankedPlayer is one entry in the world-ranking feed.
type RankedPlayer struct {
	PlayerID string
	Name     string
	Rank     int
}
