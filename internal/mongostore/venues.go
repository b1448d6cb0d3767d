// internal/mongostore/venues.go
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/codr1/leagus/internal/models"
)

func (s *Store) CreateVenue(ctx context.Context, venue models.Venue) error {
	_, err := s.collection(venuesCollection).InsertOne(ctx, venue)
	return translateErr("create venue", err)
}

func (s *Store) GetVenue(ctx context.Context, id models.VenueID) (models.Venue, error) {
	return findOne[models.Venue](ctx, s.collection(venuesCollection), "get venue", byID(id))
}

func (s *Store) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return findAll[models.Venue](ctx, s.collection(venuesCollection), "list venues", bson.M{}, byName)
}
