// internal/models/season.go
package models

import (
	"errors"
	"strings"
	"time"
)

const (
	SeasonDateLayout  = "2006-01-02"
	seasonNameLayout  = "January - 2006"
	defaultSeasonDays = 30
)

var ErrSeasonEndsBeforeStart = errors.New("season end date is before its start date")

// Season is a scoring period within a league.
type Season struct {
	ID            ID[Season]  `json:"id" bson:"_id"`
	LeagueID      LeagueID    `json:"leagueId" bson:"league_id"`
	Name          string      `json:"name" bson:"name"`
	Start         time.Time   `json:"start" bson:"start"`
	End           time.Time   `json:"end" bson:"end"`
	ActiveSession *SessionID  `json:"activeSession,omitempty" bson:"active_session,omitempty"`
	Table         PointsTable `json:"table" bson:"table"`
}

// NewSeason creates a season with an empty points table. An empty name is
// replaced by DefaultSeasonName(start).
func NewSeason(leagueID LeagueID, start, end time.Time, name string) Season {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultSeasonName(start)
	}
	return Season{
		ID:       NewID[Season](),
		LeagueID: leagueID,
		Name:     name,
		Start:    start.UTC(),
		End:      end.UTC(),
		Table:    PointsTable{Entries: []PointsTableEntry{}},
	}
}

func (s Season) Validate() error {
	if s.End.Before(s.Start) {
		return ErrSeasonEndsBeforeStart
	}
	return nil
}

// Contains reports whether t falls on or between the season's start and end.
func (s Season) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// DefaultSeasonName formats start as "<Month> - <Year>", e.g. "March - 2024".
func DefaultSeasonName(start time.Time) string {
	return start.Format(seasonNameLayout)
}

// SeasonDates parses form dates in YYYY-MM-DD form. An empty or unparsable
// start becomes today, an empty or unparsable end becomes today plus 30
// days, both truncated to the UTC day.
func SeasonDates(startRaw, endRaw string, now time.Time) (time.Time, time.Time) {
	today := TruncateDay(now)

	start, err := time.Parse(SeasonDateLayout, strings.TrimSpace(startRaw))
	if err != nil {
		start = today
	}

	end, err := time.Parse(SeasonDateLayout, strings.TrimSpace(endRaw))
	if err != nil {
		end = today.AddDate(0, 0, defaultSeasonDays)
	}

	return start, end
}

// TruncateDay returns midnight UTC of the day containing t.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
