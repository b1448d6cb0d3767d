// internal/models/league.go
package models

import (
	"errors"
	"strings"
)

var ErrNameRequired = errors.New("name is required")

// League is the top-level competition container.
type League struct {
	ID           LeagueID  `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	ActiveSeason *SeasonID `json:"activeSeason,omitempty" bson:"active_season,omitempty"`
}

// NewLeague creates a league with a generated id and no active season.
func NewLeague(name, description string) League {
	return League{
		ID:          NewID[League](),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
