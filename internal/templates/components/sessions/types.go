package sessions

import "github.com/codr1/leagus/internal/models"

// SessionDetail is the session page: its rounds and, when there is one, the
// round being worked on.
type SessionDetail struct {
	Session     models.Session
	Season      models.Season
	Rounds      []models.Round
	ActiveRound *RoundDetail
}

// RoundDetail carries a round with the names needed to render it.
type RoundDetail struct {
	Round        models.Round
	Participants []models.Participant
	Available    []models.Participant
	Query        string
	Matches      []models.Match
	Names        map[models.ParticipantID]string
	Venues       map[models.VenueID]string
}

// NameOf falls back to the id for participants that have no name on hand.
func (d RoundDetail) NameOf(id models.ParticipantID) string {
	if name, ok := d.Names[id]; ok {
		return name
	}
	return id.String()
}

func (d RoundDetail) VenueName(id models.VenueID) string {
	if name, ok := d.Venues[id]; ok {
		return name
	}
	return id.String()
}
