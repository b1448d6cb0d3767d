// internal/models/round.go
package models

import "time"

// Round groups the matches of a session, e.g. the 10:00 round and the 11:30
// round. Participants lists who is available to be drawn into matches.
type Round struct {
	ID           ID[Round]       `json:"id" bson:"_id"`
	SessionID    SessionID       `json:"sessionId" bson:"session_id"`
	Participants []ParticipantID `json:"participants" bson:"participants"`
	CreatedAt    time.Time       `json:"createdAt" bson:"created_at"`
}

// NewRound creates a round with no participants yet.
func NewRound(sessionID SessionID) Round {
	return Round{
		ID:           NewID[Round](),
		SessionID:    sessionID,
		Participants: []ParticipantID{},
		CreatedAt:    time.Now().UTC(),
	}
}

func (r Round) HasParticipant(id ParticipantID) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// AvailableParticipants returns the members of all that are not in attached,
// preserving the order of all.
func AvailableParticipants(all []Participant, attached []Participant) []Participant {
	taken := make(map[ParticipantID]struct{}, len(attached))
	for _, p := range attached {
		taken[p.ID] = struct{}{}
	}

	available := make([]Participant, 0, len(all))
	for _, p := range all {
		if _, ok := taken[p.ID]; ok {
			continue
		}
		available = append(available, p)
	}
	return available
}
