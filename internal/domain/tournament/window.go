// Package tournament classifies scheduled tour events into temporal phases.
// The phases gate when picks may be set: a tournament opens for picks a few
// days before its start and closes once play begins; completion checks get
// an end-of-day grace period so a Sunday finish counts for the whole day.
package tournament

import (
	"sort"
	"time"

	"github.com/djboulia/fantasygolf/internal/domain/game"
)

type Phase string

const (
	PhaseNotOpen      Phase = "NOT_OPEN"
	PhaseOpenForPicks Phase = "OPEN_FOR_PICKS"
	PhaseInProgress   Phase = "IN_PROGRESS"
	PhaseComplete     Phase = "COMPLETE"
)

// PickLead is how far before a tournament's start picks open, e.g. the
// Monday before a Thursday start.
const PickLead = 3 * 24 * time.Hour

// AdjustForTimezone normalizes a feed-supplied instant that was reported as
// a naive timestamp: the wall-clock reading is kept and reattached in loc.
// Feeds that already report correct instants pass through unchanged when
// loc matches the instant's location.
func AdjustForTimezone(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// EndOfDay returns 23:59:59.999 of t's calendar day, in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// PhaseAt classifies the tournament window at the given instant.
// Completion is evaluated first so the in-progress and open checks never
// see a finished tournament.
func PhaseAt(now, start, end time.Time) Phase {
	eod := EndOfDay(end)

	switch {
	case now.After(eod):
		return PhaseComplete
	case now.After(start):
		return PhaseInProgress
	case !now.Before(start.Add(-PickLead)):
		return PhaseOpenForPicks
	default:
		return PhaseNotOpen
	}
}

// NextEvent is a schedule entry annotated with its current phase.
type NextEvent struct {
	game.ScheduleEntry
	Phase Phase `json:"phase"`
}

// Next returns the first schedule entry, in start order, that is not yet
// complete, or nil when the schedule is empty or fully played. This is what
// gates whether new picks may be accepted.
func Next(schedule []game.ScheduleEntry, now time.Time) *NextEvent {
	sorted := make([]game.ScheduleEntry, len(schedule))
	copy(sorted, schedule)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	for _, entry := range sorted {
		phase := PhaseAt(now, entry.Start, entry.End)
		if phase == PhaseComplete {
			continue
		}
		return &NextEvent{ScheduleEntry: entry, Phase: phase}
	}
	return nil
}
