package game

import (
	"fmt"
	"time"
)

// Game is one fantasy-golf season: the gamers playing it, the tour schedule
// it tracks, and the events for which picks have been submitted.
type Game struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Tour     string          `json:"tour"`
	Season   int             `json:"season"`
	Schedule []ScheduleEntry `json:"schedule"`
	Gamers   []Gamer         `json:"gamers"`
	Events   []Event         `json:"events"`
}

// ScheduleEntry references a tournament in the external tour schedule.
// Start, End and Name are zero until lazily enriched from the feed on
// first use.
type ScheduleEntry struct {
	ID    string    `json:"id"`
	Name  string    `json:"name,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Gamer is a league member. Total and Leader are derived by the tally
// engine on merged scoring data and never persisted.
type Gamer struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Total  int    `json:"total,omitempty"`
	Leader bool   `json:"leader,omitempty"`
}

// Event records submitted picks for one tournament. It exists only once at
// least one gamer has set picks for that tournament id.
type Event struct {
	ID     string       `json:"id"`
	Name   string       `json:"name,omitempty"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Gamers []EventGamer `json:"gamers"`
}

// EventGamer holds one gamer's picks within an event.
type EventGamer struct {
	ID    string `json:"id"`
	Picks []Pick `json:"picks"`
	Total int    `json:"total,omitempty"`
}

// Pick selects one tour player. Name and ScoreDetails are attached by the
// scoring merge; a pick whose player is absent from the feed still carries
// a zero-total ScoreDetails so it never silently drops out of a tally.
type Pick struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	ScoreDetails *ScoreDetails `json:"score_details,omitempty"`
}

type ScoreDetails struct {
	Total int `json:"total"`
}

func (g Game) ValidateBasic() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.Tour == "" {
		return fmt.Errorf("game tour is required")
	}
	if g.Season <= 0 {
		return fmt.Errorf("game season is required")
	}
	return nil
}

// Event returns the event with the given tournament id, or nil.
func (g *Game) Event(eventID string) *Event {
	for i := range g.Events {
		if g.Events[i].ID == eventID {
			return &g.Events[i]
		}
	}
	return nil
}

// HasGamer reports whether the gamer participates in this game.
func (g Game) HasGamer(gamerID string) bool {
	for _, gm := range g.Gamers {
		if gm.ID == gamerID {
			return true
		}
	}
	return false
}

// Gamer returns the event entry for the given gamer, or nil.
func (e *Event) Gamer(gamerID string) *EventGamer {
	for i := range e.Gamers {
		if e.Gamers[i].ID == gamerID {
			return &e.Gamers[i]
		}
	}
	return nil
}
