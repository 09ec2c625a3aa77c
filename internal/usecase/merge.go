package usecase

import (
	"github.com/djboulia/fantasygolf/internal/domain/game"
	"github.com/djboulia/fantasygolf/internal/domain/scoring"
)

// mergeEventScores attaches live scoring to every pick of the event. Picks
// are matched into the feed by player id; a pick absent from the feed keeps
// the roster name and a zero-total score line so it still counts in the
// tally. The event's own name and dates are enriched from the feed when the
// stored record has none.
func mergeEventScores(event game.Event, feed scoring.EventScoring, rosterNames map[string]string) game.Event {
	if event.Name == "" {
		event.Name = feed.Name
	}
	if event.Start.IsZero() {
		event.Start = feed.Start
	}
	if event.End.IsZero() {
		event.End = feed.End
	}

	byPlayerID := feed.ScoresByPlayerID()
	for gi := range event.Gamers {
		picks := event.Gamers[gi].Picks
		for pi := range picks {
			pick := &picks[pi]
			if score, ok := byPlayerID[pick.ID]; ok {
				if score.Name != "" {
					pick.Name = score.Name
				}
				pick.ScoreDetails = &game.ScoreDetails{Total: score.Total}
				continue
			}

			if name, ok := rosterNames[pick.ID]; ok && name != "" {
				pick.Name = name
			}
			pick.ScoreDetails = &game.ScoreDetails{Total: 0}
		}
		event.Gamers[gi].Total = sumPicks(picks)
	}

	return event
}

func sumPicks(picks []game.Pick) int {
	total := 0
	for _, pick := range picks {
		if pick.ScoreDetails != nil {
			total += pick.ScoreDetails.Total
		}
	}
	return total
}

// tallyGamers sums each gamer's pick totals across all merged events and
// flags the leader. A gamer absent from an event contributes 0 for it. The
// leader is the strictly greatest total; on a tie the gamer listed first
// wins, so the result is deterministic for a fixed gamer order. Exactly one
// gamer is flagged whenever the list is non-empty.
func tallyGamers(gamers []game.Gamer, events []game.Event) []game.Gamer {
	if len(gamers) == 0 {
		return gamers
	}

	totals := make(map[string]int, len(gamers))
	for _, event := range events {
		for _, eg := range event.Gamers {
			totals[eg.ID] += sumPicks(eg.Picks)
		}
	}

	out := make([]game.Gamer, len(gamers))
	leaderIdx := 0
	for i, gm := range gamers {
		gm.Total = totals[gm.ID]
		gm.Leader = false
		out[i] = gm
		if out[i].Total > out[leaderIdx].Total {
			leaderIdx = i
		}
	}
	out[leaderIdx].Leader = true

	return out
}
