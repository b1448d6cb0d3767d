// internal/mongostore/seasons.go
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
)

var seasonOrder = options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "name", Value: 1}})

func (s *Store) CreateSeason(ctx context.Context, season models.Season, makeActive bool) error {
	if err := s.exists(ctx, leaguesCollection, "create season", season.LeagueID); err != nil {
		return err
	}
	if _, err := s.collection(seasonsCollection).InsertOne(ctx, season); err != nil {
		return translateErr("create season", err)
	}
	if !makeActive {
		return nil
	}
	return activateAfterInsert("create season", season.ID, s.SetActiveSeason(ctx, season.LeagueID, season.ID))
}

func (s *Store) GetSeason(ctx context.Context, id models.SeasonID) (models.Season, error) {
	return findOne[models.Season](ctx, s.collection(seasonsCollection), "get season", byID(id))
}

func (s *Store) ListSeasons(ctx context.Context) ([]models.Season, error) {
	return findAll[models.Season](ctx, s.collection(seasonsCollection), "list seasons", bson.M{}, seasonOrder)
}

func (s *Store) ListSeasonsForLeague(ctx context.Context, leagueID models.LeagueID) ([]models.Season, error) {
	return findAll[models.Season](ctx, s.collection(seasonsCollection), "list seasons",
		bson.M{"league_id": leagueID.String()}, seasonOrder)
}

func (s *Store) SetActiveSession(ctx context.Context, seasonID models.SeasonID, sessionID models.SessionID) error {
	result, err := s.collection(seasonsCollection).UpdateOne(ctx, byID(seasonID),
		bson.M{"$set": bson.M{"active_session": sessionID.String()}})
	if err != nil {
		return translateErr("set active session", err)
	}
	return requireMatched("set active session", result)
}

func (s *Store) UpdatePointsTable(ctx context.Context, seasonID models.SeasonID, table models.PointsTable) error {
	if table.Entries == nil {
		table.Entries = []models.PointsTableEntry{}
	}
	result, err := s.collection(seasonsCollection).UpdateOne(ctx, byID(seasonID),
		bson.M{"$set": bson.M{"table": table}})
	if err != nil {
		return translateErr("update points table", err)
	}
	return requireMatched("update points table", result)
}
