package leagues

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

// PointsRules says how many points a recorded result is worth.
type PointsRules struct {
	Win  int
	Loss int
}

var DefaultPointsRules = PointsRules{Win: 3, Loss: 1}

// PointsSource is the slice of store.Store needed to walk a season.
type PointsSource interface {
	GetSeason(ctx context.Context, id models.SeasonID) (models.Season, error)
	ListSessionsForSeason(ctx context.Context, seasonID models.SeasonID) ([]models.Session, error)
	ListRoundsForSession(ctx context.Context, sessionID models.SessionID) ([]models.Round, error)
	ListMatchesForRound(ctx context.Context, roundID models.RoundID) ([]models.Match, error)
	ListParticipants(ctx context.Context, nameQuery string) ([]models.Participant, error)
}

// CalculatePointsTable walks every session, round and match of the season.
// Each recorded result gives the winner rules.Win points and a win, and
// every other participant of the match rules.Loss points and a loss.
// Participants attached to a round without a recorded match get a zero row.
func CalculatePointsTable(ctx context.Context, src PointsSource, seasonID models.SeasonID, rules PointsRules) (models.PointsTable, error) {
	if src == nil {
		return models.PointsTable{}, errors.New("store is required")
	}
	if seasonID.IsZero() {
		return models.PointsTable{}, errors.New("season ID is required")
	}

	if _, err := src.GetSeason(ctx, seasonID); err != nil {
		return models.PointsTable{}, err
	}

	participants, err := src.ListParticipants(ctx, "")
	if err != nil {
		return models.PointsTable{}, err
	}
	names := make(map[models.ParticipantID]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	entries := make(map[models.ParticipantID]*models.PointsTableEntry)
	order := []models.ParticipantID{}
	entryFor := func(id models.ParticipantID) *models.PointsTableEntry {
		entry, ok := entries[id]
		if !ok {
			name, known := names[id]
			if !known {
				name = id.String()
			}
			entry = &models.PointsTableEntry{ParticipantID: id, ParticipantName: name}
			entries[id] = entry
			order = append(order, id)
		}
		return entry
	}

	sessions, err := src.ListSessionsForSeason(ctx, seasonID)
	if err != nil {
		return models.PointsTable{}, err
	}
	for _, session := range sessions {
		rounds, err := src.ListRoundsForSession(ctx, session.ID)
		if err != nil {
			return models.PointsTable{}, err
		}
		for _, round := range rounds {
			for _, id := range round.Participants {
				entryFor(id)
			}

			matches, err := src.ListMatchesForRound(ctx, round.ID)
			if err != nil {
				return models.PointsTable{}, err
			}
			for _, match := range matches {
				if err := scoreMatch(match, rules, entryFor); err != nil {
					return models.PointsTable{}, err
				}
			}
		}
	}

	table := models.PointsTable{Entries: make([]models.PointsTableEntry, 0, len(order))}
	for _, id := range order {
		table.Entries = append(table.Entries, *entries[id])
	}
	table.Sort()
	return table, nil
}

func scoreMatch(match models.Match, rules PointsRules, entryFor func(models.ParticipantID) *models.PointsTableEntry) error {
	for _, id := range match.Participants {
		entryFor(id)
	}
	if match.Result == nil {
		return nil
	}
	if _, err := match.NewResult(match.Result.WinnerID, match.Result.RecordedAt); err != nil {
		return fmt.Errorf("match %s: %w", match.ID, err)
	}

	for _, id := range match.Participants {
		entry := entryFor(id)
		if id == match.Result.WinnerID {
			entry.Wins++
			entry.Points += rules.Win
		} else {
			entry.Losses++
			entry.Points += rules.Loss
		}
	}
	return nil
}

// RecalculateSeason computes the season's table and stores it.
func RecalculateSeason(ctx context.Context, s store.Store, seasonID models.SeasonID, rules PointsRules) (models.PointsTable, error) {
	table, err := CalculatePointsTable(ctx, s, seasonID, rules)
	if err != nil {
		return models.PointsTable{}, err
	}
	if err := s.UpdatePointsTable(ctx, seasonID, table); err != nil {
		return models.PointsTable{}, err
	}
	return table, nil
}

// RefreshPointsTables recalculates the active season of every league. A
// failing league is logged and skipped; the failures are returned joined.
func RefreshPointsTables(ctx context.Context, s store.Store, rules PointsRules) (int, error) {
	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		return 0, err
	}

	var (
		refreshed int
		errs      []error
	)
	for _, league := range leagues {
		if league.ActiveSeason == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		if _, err := RecalculateSeason(ctx, s, *league.ActiveSeason, rules); err != nil {
			log.Ctx(ctx).Error().
				Err(err).
				Str("league_id", league.ID.String()).
				Str("season_id", league.ActiveSeason.String()).
				Msg("Failed to refresh points table")
			errs = append(errs, fmt.Errorf("league %s: %w", league.Name, err))
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}
