// internal/mongostore/rounds.go
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
)

func (s *Store) CreateRound(ctx context.Context, round models.Round) error {
	if err := s.exists(ctx, sessionsCollection, "create round", round.SessionID); err != nil {
		return err
	}
	if round.Participants == nil {
		round.Participants = []models.ParticipantID{}
	}
	_, err := s.collection(roundsCollection).InsertOne(ctx, round)
	return translateErr("create round", err)
}

func (s *Store) GetRound(ctx context.Context, id models.RoundID) (models.Round, error) {
	return findOne[models.Round](ctx, s.collection(roundsCollection), "get round", byID(id))
}

func (s *Store) ListRoundsForSession(ctx context.Context, sessionID models.SessionID) ([]models.Round, error) {
	return findAll[models.Round](ctx, s.collection(roundsCollection), "list rounds",
		bson.M{"session_id": sessionID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
}

// AddParticipantToRound uses $addToSet, so attaching twice keeps one entry.
func (s *Store) AddParticipantToRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error {
	if err := s.exists(ctx, participantsCollection, "add participant to round", participantID); err != nil {
		return err
	}
	result, err := s.collection(roundsCollection).UpdateOne(ctx, byID(roundID),
		bson.M{"$addToSet": bson.M{"participants": participantID.String()}})
	if err != nil {
		return translateErr("add participant to round", err)
	}
	return requireMatched("add participant to round", result)
}

func (s *Store) RemoveParticipantFromRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error {
	_, err := s.collection(roundsCollection).UpdateOne(ctx, byID(roundID),
		bson.M{"$pull": bson.M{"participants": participantID.String()}})
	return translateErr("remove participant from round", err)
}
