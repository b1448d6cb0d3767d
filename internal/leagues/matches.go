package leagues

import (
	"errors"
	"time"

	"github.com/codr1/leagus/internal/models"
)

var (
	ErrNotEnoughParticipants = errors.New("at least two participants are required")
	ErrNoVenues              = errors.New("at least one venue is required")
)

// GenerateRoundMatches pairs participants in the order given, first with
// second, third with fourth and so on. An odd participant out sits the round
// out. Venues are handed out round-robin in the order given.
func GenerateRoundMatches(round models.Round, participants []models.Participant, venues []models.Venue) ([]models.Match, error) {
	if round.ID.IsZero() {
		return nil, errors.New("round ID is required")
	}
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}
	if len(venues) == 0 {
		return nil, ErrNoVenues
	}

	// Mongo keeps millisecond precision, so space creation times out to keep
	// the listing order stable.
	created := time.Now().UTC().Truncate(time.Millisecond)
	matches := make([]models.Match, 0, len(participants)/2)
	for i := 0; i+1 < len(participants); i += 2 {
		venue := venues[len(matches)%len(venues)]
		match := models.NewMatch(round.ID, venue.ID, []models.ParticipantID{
			participants[i].ID,
			participants[i+1].ID,
		})
		match.CreatedAt = created.Add(time.Duration(len(matches)) * time.Millisecond)
		matches = append(matches, match)
	}
	return matches, nil
}

// SittingOut returns the participant left without a partner, if any.
func SittingOut(participants []models.Participant) (models.Participant, bool) {
	if len(participants)%2 == 0 {
		return models.Participant{}, false
	}
	return participants[len(participants)-1], true
}
