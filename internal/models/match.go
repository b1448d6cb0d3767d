// internal/models/match.go
package models

import (
	"errors"
	"time"
)

var ErrWinnerNotInMatch = errors.New("winner is not a participant of the match")

// Match is a single contest between participants at a venue.
type Match struct {
	ID           MatchID         `json:"id" bson:"_id"`
	RoundID      RoundID         `json:"roundId" bson:"round_id"`
	VenueID      VenueID         `json:"venueId" bson:"venue_id"`
	Participants []ParticipantID `json:"participants" bson:"participants"`
	Result       *MatchResult    `json:"result,omitempty" bson:"result,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"created_at"`
}

type MatchResult struct {
	WinnerID   ParticipantID `json:"winnerId" bson:"winner_id"`
	RecordedAt time.Time     `json:"recordedAt" bson:"recorded_at"`
}

func NewMatch(roundID RoundID, venueID VenueID, participants []ParticipantID) Match {
	if participants == nil {
		participants = []ParticipantID{}
	}
	return Match{
		ID:           NewID[Match](),
		RoundID:      roundID,
		VenueID:      venueID,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewResult checks that winner took part in the match.
func (m Match) NewResult(winner ParticipantID, at time.Time) (MatchResult, error) {
	for _, p := range m.Participants {
		if p == winner {
			return MatchResult{WinnerID: winner, RecordedAt: at.UTC()}, nil
		}
	}
	return MatchResult{}, ErrWinnerNotInMatch
}
