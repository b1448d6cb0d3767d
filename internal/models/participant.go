// internal/models/participant.go
package models

import "strings"

// Participant is an individual or a team that can enter rounds and matches.
type Participant struct {
	ID   ID[Participant] `json:"id" bson:"_id"`
	Name string          `json:"name" bson:"name"`
}

func NewParticipant(name string) Participant {
	return Participant{ID: NewID[Participant](), Name: strings.TrimSpace(name)}
}

// Venue is somewhere to play a match. Physical or virtual.
type Venue struct {
	ID   ID[Venue] `json:"id" bson:"_id"`
	Name string    `json:"name" bson:"name"`
}

func NewVenue(name string) Venue {
	return Venue{ID: NewID[Venue](), Name: strings.TrimSpace(name)}
}
