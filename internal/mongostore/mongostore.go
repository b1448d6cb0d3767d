// internal/mongostore/mongostore.go

// Package mongostore implements store.Store on MongoDB, one collection per
// entity.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/codr1/leagus/internal/config"
	"github.com/codr1/leagus/internal/store"
)

const (
	DefaultDatabase = "leagus"

	leaguesCollection      = "leagues"
	seasonsCollection      = "seasons"
	sessionsCollection     = "sessions"
	roundsCollection       = "rounds"
	matchesCollection      = "matches"
	participantsCollection = "participants"
	venuesCollection       = "venues"

	connectTimeout = 10 * time.Second
)

// Store is the MongoDB implementation of store.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info().Str("database", database).Msg("Connected to MongoDB")
	return New(client, database), nil
}

// NewFromConfig connects using the mongodb section of cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Database.Driver != config.DriverMongo {
		return nil, fmt.Errorf("unsupported database driver for mongo store: %s", cfg.Database.Driver)
	}
	return Connect(ctx, cfg.Database.URL, cfg.Database.Name)
}

// New wraps an existing client.
func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Bootstrap creates the unique name indexes and one index per parent
// pointer. CreateMany is idempotent for identical index definitions.
func (s *Store) Bootstrap(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		leaguesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		},
		seasonsCollection: {
			{Keys: bson.D{{Key: "league_id", Value: 1}, {Key: "start", Value: 1}}, Options: options.Index().SetName("league_id_start")},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "season_id", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("season_id_date")},
		},
		roundsCollection: {
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("session_id_created_at")},
		},
		matchesCollection: {
			{Keys: bson.D{{Key: "round_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("round_id_created_at")},
		},
		participantsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		},
		venuesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("name_unique")},
		},
	}

	for name, specs := range indexes {
		created, err := s.collection(name).Indexes().CreateMany(ctx, specs)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
		log.Info().Str("collection", name).Strs("indexes", created).Msg("Ensured indexes")
	}
	return nil
}

func translateErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w: %v", op, store.ErrDuplicate, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func requireMatched(op string, result *mongo.UpdateResult) error {
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	return nil
}

// findAll decodes every document matching filter into a non-nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, op string, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateErr(op, err)
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, translateErr(op, err)
	}
	return results, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, op string, filter any) (T, error) {
	var result T
	if err := coll.FindOne(ctx, filter).Decode(&result); err != nil {
		var zero T
		return zero, translateErr(op, err)
	}
	return result, nil
}

func byID(id fmt.Stringer) bson.M {
	return bson.M{"_id": id.String()}
}

// exists reports ErrNotFound when no document in coll has the given id.
func (s *Store) exists(ctx context.Context, coll, op string, id fmt.Stringer) error {
	count, err := s.collection(coll).CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return translateErr(op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %s %s: %w", op, coll, id, store.ErrNotFound)
	}
	return nil
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}
