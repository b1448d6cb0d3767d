// internal/mongostore/sessions.go
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
)

var sessionOrder = options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

func (s *Store) CreateSession(ctx context.Context, session models.Session, makeActive bool) error {
	if err := s.exists(ctx, seasonsCollection, "create session", session.SeasonID); err != nil {
		return err
	}
	if _, err := s.collection(sessionsCollection).InsertOne(ctx, session); err != nil {
		return translateErr("create session", err)
	}
	if !makeActive {
		return nil
	}
	return activateAfterInsert("create session", session.ID, s.SetActiveSession(ctx, session.SeasonID, session.ID))
}

func (s *Store) GetSession(ctx context.Context, id models.SessionID) (models.Session, error) {
	return findOne[models.Session](ctx, s.collection(sessionsCollection), "get session", byID(id))
}

func (s *Store) ListSessions(ctx context.Context) ([]models.Session, error) {
	return findAll[models.Session](ctx, s.collection(sessionsCollection), "list sessions", bson.M{}, sessionOrder)
}

func (s *Store) ListSessionsForSeason(ctx context.Context, seasonID models.SeasonID) ([]models.Session, error) {
	return findAll[models.Session](ctx, s.collection(sessionsCollection), "list sessions",
		bson.M{"season_id": seasonID.String()}, sessionOrder)
}
