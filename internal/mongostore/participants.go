// internal/mongostore/participants.go
package mongostore

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
)

var byName = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

func (s *Store) CreateParticipant(ctx context.Context, participant models.Participant) error {
	_, err := s.collection(participantsCollection).InsertOne(ctx, participant)
	return translateErr("create participant", err)
}

func (s *Store) GetParticipant(ctx context.Context, id models.ParticipantID) (models.Participant, error) {
	return findOne[models.Participant](ctx, s.collection(participantsCollection), "get participant", byID(id))
}

func (s *Store) ListParticipants(ctx context.Context, nameQuery string) ([]models.Participant, error) {
	filter := bson.M{}
	if q := strings.TrimSpace(nameQuery); q != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	}
	return findAll[models.Participant](ctx, s.collection(participantsCollection), "list participants", filter, byName)
}

// ListParticipantsForRound returns the round's participants in the order they
// were attached.
func (s *Store) ListParticipantsForRound(ctx context.Context, roundID models.RoundID) ([]models.Participant, error) {
	round, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if len(round.Participants) == 0 {
		return []models.Participant{}, nil
	}

	ids := make([]string, 0, len(round.Participants))
	for _, id := range round.Participants {
		ids = append(ids, id.String())
	}
	found, err := findAll[models.Participant](ctx, s.collection(participantsCollection), "list participants for round",
		bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	index := make(map[models.ParticipantID]models.Participant, len(found))
	for _, p := range found {
		index[p.ID] = p
	}
	ordered := make([]models.Participant, 0, len(found))
	for _, id := range round.Participants {
		if p, ok := index[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
