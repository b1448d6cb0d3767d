// internal/db/leagues.go
package db

import (
	"context"
	"database/sql"

	"github.com/codr1/leagus/internal/models"
)

const leagueColumns = `id, name, description, active_season_id`

func (db *DB) CreateLeague(ctx context.Context, league models.League) error {
	_, err := db.q.ExecContext(ctx,
		`INSERT INTO leagues (id, name, description, active_season_id) VALUES (?, ?, ?, ?)`,
		league.ID.String(),
		league.Name,
		league.Description,
		nullableID(league.ActiveSeason),
	)
	return translateErr("create league", err)
}

func (db *DB) GetLeague(ctx context.Context, id models.LeagueID) (models.League, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+leagueColumns+` FROM leagues WHERE id = ?`, id.String())
	league, err := scanLeague(row)
	return league, translateErr("get league", err)
}

func (db *DB) GetLeagueByName(ctx context.Context, name string) (models.League, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+leagueColumns+` FROM leagues WHERE name = ?`, name)
	league, err := scanLeague(row)
	return league, translateErr("get league by name", err)
}

func (db *DB) ListLeagues(ctx context.Context) ([]models.League, error) {
	rows, err := db.q.QueryContext(ctx, `SELECT `+leagueColumns+` FROM leagues ORDER BY name`)
	if err != nil {
		return nil, translateErr("list leagues", err)
	}
	defer rows.Close()

	leagues := []models.League{}
	for rows.Next() {
		league, err := scanLeague(rows)
		if err != nil {
			return nil, translateErr("list leagues", err)
		}
		leagues = append(leagues, league)
	}
	return leagues, translateErr("list leagues", rows.Err())
}

func (db *DB) SetActiveSeason(ctx context.Context, leagueID models.LeagueID, seasonID models.SeasonID) error {
	result, err := db.q.ExecContext(ctx,
		`UPDATE leagues SET active_season_id = ? WHERE id = ?`,
		seasonID.String(),
		leagueID.String(),
	)
	if err != nil {
		return translateErr("set active season", err)
	}
	return requireAffected("set active season", result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLeague(row rowScanner) (models.League, error) {
	var (
		league       models.League
		id           string
		activeSeason sql.NullString
	)
	if err := row.Scan(&id, &league.Name, &league.Description, &activeSeason); err != nil {
		return models.League{}, err
	}
	var err error
	if league.ID, err = models.ParseID[models.League](id); err != nil {
		return models.League{}, err
	}
	if league.ActiveSeason, err = parseNullableID[models.Season](activeSeason); err != nil {
		return models.League{}, err
	}
	return league, nil
}

func nullableID[T any](id *models.ID[T]) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func parseNullableID[T any](raw sql.NullString) (*models.ID[T], error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	id, err := models.ParseID[T](raw.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
