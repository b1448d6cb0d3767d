// internal/db/seasons.go
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/codr1/leagus/internal/models"
)

const seasonColumns = `id, league_id, name, start_at, end_at, active_session_id, points_table`

// CreateSeason inserts the season and moves the league's active pointer in
// the same transaction.
func (db *DB) CreateSeason(ctx context.Context, season models.Season, makeActive bool) error {
	table, err := json.Marshal(season.Table)
	if err != nil {
		return fmt.Errorf("encode points table: %w", err)
	}

	return db.RunInTx(ctx, func(tx *DB) error {
		_, err := tx.q.ExecContext(ctx,
			`INSERT INTO seasons (`+seasonColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			season.ID.String(),
			season.LeagueID.String(),
			season.Name,
			season.Start.UTC(),
			season.End.UTC(),
			nullableID(season.ActiveSession),
			string(table),
		)
		if err != nil {
			return translateErr("create season", err)
		}
		if !makeActive {
			return nil
		}
		return tx.SetActiveSeason(ctx, season.LeagueID, season.ID)
	})
}

func (db *DB) GetSeason(ctx context.Context, id models.SeasonID) (models.Season, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id = ?`, id.String())
	season, err := scanSeason(row)
	return season, translateErr("get season", err)
}

func (db *DB) ListSeasons(ctx context.Context) ([]models.Season, error) {
	return db.listSeasons(ctx, `SELECT `+seasonColumns+` FROM seasons ORDER BY start_at, name`)
}

func (db *DB) ListSeasonsForLeague(ctx context.Context, leagueID models.LeagueID) ([]models.Season, error) {
	return db.listSeasons(ctx,
		`SELECT `+seasonColumns+` FROM seasons WHERE league_id = ? ORDER BY start_at, name`,
		leagueID.String(),
	)
}

func (db *DB) SetActiveSession(ctx context.Context, seasonID models.SeasonID, sessionID models.SessionID) error {
	result, err := db.q.ExecContext(ctx,
		`UPDATE seasons SET active_session_id = ? WHERE id = ?`,
		sessionID.String(),
		seasonID.String(),
	)
	if err != nil {
		return translateErr("set active session", err)
	}
	return requireAffected("set active session", result)
}

func (db *DB) UpdatePointsTable(ctx context.Context, seasonID models.SeasonID, table models.PointsTable) error {
	encoded, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode points table: %w", err)
	}
	result, err := db.q.ExecContext(ctx,
		`UPDATE seasons SET points_table = ? WHERE id = ?`,
		string(encoded),
		seasonID.String(),
	)
	if err != nil {
		return translateErr("update points table", err)
	}
	return requireAffected("update points table", result)
}

func (db *DB) listSeasons(ctx context.Context, query string, args ...any) ([]models.Season, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr("list seasons", err)
	}
	defer rows.Close()

	seasons := []models.Season{}
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, translateErr("list seasons", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, translateErr("list seasons", rows.Err())
}

func scanSeason(row rowScanner) (models.Season, error) {
	var (
		season        models.Season
		id            string
		leagueID      string
		activeSession sql.NullString
		table         string
	)
	if err := row.Scan(&id, &leagueID, &season.Name, &season.Start, &season.End, &activeSession, &table); err != nil {
		return models.Season{}, err
	}

	var err error
	if season.ID, err = models.ParseID[models.Season](id); err != nil {
		return models.Season{}, err
	}
	if season.LeagueID, err = models.ParseID[models.League](leagueID); err != nil {
		return models.Season{}, err
	}
	if season.ActiveSession, err = parseNullableID[models.Session](activeSession); err != nil {
		return models.Season{}, err
	}
	if err := json.Unmarshal([]byte(table), &season.Table); err != nil {
		return models.Season{}, fmt.Errorf("decode points table: %w", err)
	}
	if season.Table.Entries == nil {
		season.Table.Entries = []models.PointsTableEntry{}
	}
	season.Start = season.Start.UTC()
	season.End = season.End.UTC()
	return season, nil
}
