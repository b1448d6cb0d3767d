// internal/models/session.go
package models

import "time"

// Session is a match day within a season.
type Session struct {
	ID       ID[Session] `json:"id" bson:"_id"`
	SeasonID ID[Season]  `json:"seasonId" bson:"season_id"`
	Date     time.Time   `json:"date" bson:"date"`
}

func NewSession(seasonID SeasonID, date time.Time) Session {
	return Session{
		ID:       NewID[Session](),
		SeasonID: seasonID,
		Date:     date.UTC(),
	}
}
