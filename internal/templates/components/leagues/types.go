package leagues

import "github.com/codr1/leagus/internal/models"

// LeagueDetail is everything the league page shows. ActiveSeason and
// ActiveSession are nil when nothing is selected or pointed at.
type LeagueDetail struct {
	League        models.League
	Seasons       []models.Season
	ActiveSeason  *models.Season
	Sessions      []models.Session
	ActiveSession *models.Session
}

type LeagueForm struct {
	Name        string
	Description string
	Error       string
}

type SeasonForm struct {
	League models.League
	Name   string
	Start  string
	End    string
	Error  string
}

func (d LeagueDetail) activeSeasonID() *models.SeasonID {
	if d.ActiveSeason == nil {
		return nil
	}
	return d.ActiveSeason.ID.Ptr()
}

func (d LeagueDetail) activeSessionID() *models.SessionID {
	if d.ActiveSession == nil {
		return nil
	}
	return d.ActiveSession.ID.Ptr()
}
