package tourdata

import (
	"strings"
	"time"
)

// Wire envelopes. The feed is loosely shaped; older payloads use different
// key names, so every field is optional and resolved with fallbacks.

type eventEnvelope struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	Name      string            `json:"name"`
	Start     string            `json:"start"`
	StartDate string            `json:"startDate"`
	End       string            `json:"end"`
	EndDate   string            `json:"endDate"`
	Scores    []playerScoreItem `json:"scores"`
}

type playerScoreItem struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Pos      string `json:"pos"`
	Total    *int   `json:"total"`
	Thru     *int   `json:"thru"`
}

type tournamentItem struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	StartDate    string `json:"startDate"`
	End          string `json:"end"`
	EndDate      string `json:"endDate"`
}

type rankingItem struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Rank     *int   `json:"rank"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// parseFeedDateTime accepts the date shapes the feed has been seen to emit:
// RFC3339 instants and naive "YYYY-MM-DD[ HH:MM:SS]" timestamps, which are
// read as UTC.
func parseFeedDateTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
