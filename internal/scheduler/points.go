package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/leagues"
	"github.com/codr1/leagus/internal/metrics"
	"github.com/codr1/leagus/internal/store"
)

const (
	pointsRefreshJobName = "points_refresh"
	pointsRefreshTimeout = 5 * time.Minute
)

// RegisterPointsRefreshJob schedules a recalculation of every league's active
// season points table.
func (s *Service) RegisterPointsRefreshJob(st store.Store, cronExpr string, rules leagues.PointsRules) error {
	if st == nil {
		return fmt.Errorf("points refresh job requires a store")
	}

	_, err := s.AddJob(pointsRefreshJobName, cronExpr, pointsRefreshTimeout, func(ctx context.Context) error {
		_, err := RunPointsRefresh(ctx, st, rules)
		return err
	})
	if err != nil {
		return fmt.Errorf("add points refresh job: %w", err)
	}
	return nil
}

// RunPointsRefresh performs one refresh and records it in the metrics.
func RunPointsRefresh(ctx context.Context, st store.Store, rules leagues.PointsRules) (int, error) {
	start := time.Now()
	refreshed, err := leagues.RefreshPointsTables(ctx, st, rules)
	metrics.RecordPointsRefresh(refreshed, time.Since(start), err)

	logger := log.Ctx(ctx)
	if err != nil {
		logger.Error().Err(err).Int("refreshed", refreshed).Msg("Points refresh finished with errors")
		return refreshed, err
	}
	logger.Info().Int("refreshed", refreshed).Dur("took", time.Since(start)).Msg("Points refresh finished")
	return refreshed, nil
}
