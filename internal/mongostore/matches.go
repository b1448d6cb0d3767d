// internal/mongostore/matches.go
package mongostore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (s *Store) CreateMatch(ctx context.Context, match models.Match) error {
	if err := s.exists(ctx, roundsCollection, "create match", match.RoundID); err != nil {
		return err
	}
	if err := s.exists(ctx, venuesCollection, "create match", match.VenueID); err != nil {
		return err
	}
	if match.Participants == nil {
		match.Participants = []models.ParticipantID{}
	}
	_, err := s.collection(matchesCollection).InsertOne(ctx, match)
	return translateErr("create match", err)
}

// CreateMatches claims the round with a matches_generated flag before
// inserting, so concurrent callers cannot both generate. A failed insert
// removes whatever was written and releases the claim.
func (s *Store) CreateMatches(ctx context.Context, roundID models.RoundID, matches []models.Match) error {
	rounds := s.collection(roundsCollection)
	claimed, err := rounds.UpdateOne(ctx,
		bson.M{"_id": roundID.String(), "matches_generated": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"matches_generated": true}})
	if err != nil {
		return translateErr("create matches", err)
	}
	if claimed.MatchedCount == 0 {
		if err := s.exists(ctx, roundsCollection, "create matches", roundID); err != nil {
			return err
		}
		return fmt.Errorf("create matches: %w", store.ErrRoundHasMatches)
	}

	release := func() {
		if _, err := rounds.UpdateOne(context.WithoutCancel(ctx), byID(roundID),
			bson.M{"$unset": bson.M{"matches_generated": ""}}); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("round_id", roundID.String()).Msg("Failed to release match generation claim")
		}
	}

	existing, err := s.collection(matchesCollection).CountDocuments(ctx,
		bson.M{"round_id": roundID.String()}, options.Count().SetLimit(1))
	if err != nil {
		release()
		return translateErr("create matches", err)
	}
	if existing > 0 {
		return fmt.Errorf("create matches: %w", store.ErrRoundHasMatches)
	}
	if len(matches) == 0 {
		return nil
	}

	docs := make([]any, 0, len(matches))
	ids := make([]string, 0, len(matches))
	checkedVenues := map[models.VenueID]bool{}
	for _, match := range matches {
		if match.RoundID != roundID {
			release()
			return fmt.Errorf("create matches: match %s belongs to round %s", match.ID, match.RoundID)
		}
		if !checkedVenues[match.VenueID] {
			if err := s.exists(ctx, venuesCollection, "create matches", match.VenueID); err != nil {
				release()
				return err
			}
			checkedVenues[match.VenueID] = true
		}
		if match.Participants == nil {
			match.Participants = []models.ParticipantID{}
		}
		docs = append(docs, match)
		ids = append(ids, match.ID.String())
	}

	if _, err := s.collection(matchesCollection).InsertMany(ctx, docs); err != nil {
		cleanupCtx := context.WithoutCancel(ctx)
		if _, delErr := s.collection(matchesCollection).DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
			log.Ctx(ctx).Error().Err(delErr).Str("round_id", roundID.String()).Msg("Failed to remove partially created matches")
			return translateErr("create matches", err)
		}
		release()
		return translateErr("create matches", err)
	}
	return nil
}

func (s *Store) GetMatch(ctx context.Context, id models.MatchID) (models.Match, error) {
	return findOne[models.Match](ctx, s.collection(matchesCollection), "get match", byID(id))
}

func (s *Store) ListMatchesForRound(ctx context.Context, roundID models.RoundID) ([]models.Match, error) {
	return findAll[models.Match](ctx, s.collection(matchesCollection), "list matches",
		bson.M{"round_id": roundID.String()},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *Store) RecordMatchResult(ctx context.Context, matchID models.MatchID, result models.MatchResult) error {
	updated, err := s.collection(matchesCollection).UpdateOne(ctx, byID(matchID),
		bson.M{"$set": bson.M{"result": result}})
	if err != nil {
		return translateErr("record match result", err)
	}
	return requireMatched("record match result", updated)
}
