// internal/db/sessions.go
package db

import (
	"context"

	"github.com/codr1/leagus/internal/models"
)

const sessionColumns = `id, season_id, session_date`

// CreateSession inserts the session and moves the season's active pointer in
// the same transaction.
func (db *DB) CreateSession(ctx context.Context, session models.Session, makeActive bool) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		_, err := tx.q.ExecContext(ctx,
			`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?)`,
			session.ID.String(),
			session.SeasonID.String(),
			session.Date.UTC(),
		)
		if err != nil {
			return translateErr("create session", err)
		}
		if !makeActive {
			return nil
		}
		return tx.SetActiveSession(ctx, session.SeasonID, session.ID)
	})
}

func (db *DB) GetSession(ctx context.Context, id models.SessionID) (models.Session, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id.String())
	session, err := scanSession(row)
	return session, translateErr("get session", err)
}

func (db *DB) ListSessions(ctx context.Context) ([]models.Session, error) {
	return db.listSessions(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY session_date`)
}

func (db *DB) ListSessionsForSeason(ctx context.Context, seasonID models.SeasonID) ([]models.Session, error) {
	return db.listSessions(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE season_id = ? ORDER BY session_date`,
		seasonID.String(),
	)
}

func (db *DB) listSessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr("list sessions", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, translateErr("list sessions", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, translateErr("list sessions", rows.Err())
}

func scanSession(row rowScanner) (models.Session, error) {
	var (
		session  models.Session
		id       string
		seasonID string
	)
	if err := row.Scan(&id, &seasonID, &session.Date); err != nil {
		return models.Session{}, err
	}
	var err error
	if session.ID, err = models.ParseID[models.Session](id); err != nil {
		return models.Session{}, err
	}
	if session.SeasonID, err = models.ParseID[models.Season](seasonID); err != nil {
		return models.Session{}, err
	}
	session.Date = session.Date.UTC()
	return session, nil
}
