// internal/mongostore/leagues.go
package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
)

func (s *Store) CreateLeague(ctx context.Context, league models.League) error {
	_, err := s.collection(leaguesCollection).InsertOne(ctx, league)
	return translateErr("create league", err)
}

func (s *Store) GetLeague(ctx context.Context, id models.LeagueID) (models.League, error) {
	return findOne[models.League](ctx, s.collection(leaguesCollection), "get league", byID(id))
}

func (s *Store) GetLeagueByName(ctx context.Context, name string) (models.League, error) {
	return findOne[models.League](ctx, s.collection(leaguesCollection), "get league by name", bson.M{"name": name})
}

func (s *Store) ListLeagues(ctx context.Context) ([]models.League, error) {
	return findAll[models.League](ctx, s.collection(leaguesCollection), "list leagues",
		bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *Store) SetActiveSeason(ctx context.Context, leagueID models.LeagueID, seasonID models.SeasonID) error {
	result, err := s.collection(leaguesCollection).UpdateOne(ctx, byID(leagueID),
		bson.M{"$set": bson.M{"active_season": seasonID.String()}})
	if err != nil {
		return translateErr("set active season", err)
	}
	return requireMatched("set active season", result)
}

// activateAfterInsert runs the pointer update that follows an insert. The two
// writes are not atomic without a replica set, so a failure here leaves the
// inserted document in place and says so.
func activateAfterInsert(op string, inserted fmt.Stringer, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %s was stored but could not be made active: %w", op, inserted, err)
}
