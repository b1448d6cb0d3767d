// internal/app/app.go

// Package app wires configuration to the pieces both binaries share.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/config"
	"github.com/codr1/leagus/internal/db"
	"github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/mongostore"
	"github.com/codr1/leagus/internal/store"
)

// OpenStore opens the back end named by cfg.Database.Driver and makes sure
// its schema or indexes are in place.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		s, err = db.NewFromConfig(cfg)
	case config.DriverMongo:
		s, err = mongostore.NewFromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Bootstrap(ctx); err != nil {
		if closeErr := s.Close(ctx); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close store after bootstrap error")
		}
		return nil, fmt.Errorf("bootstrap %s store: %w", cfg.Database.Driver, err)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("Store ready")
	return s, nil
}

func PointsRules(cfg *config.Config) leagues.PointsRules {
	return leagues.PointsRules{Win: cfg.Points.Win, Loss: cfg.Points.Loss}
}
