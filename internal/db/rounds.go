// internal/db/rounds.go
package db

import (
	"context"

	"github.com/codr1/leagus/internal/models"
)

const roundColumns = `id, session_id, created_at`

func (db *DB) CreateRound(ctx context.Context, round models.Round) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		_, err := tx.q.ExecContext(ctx,
			`INSERT INTO rounds (`+roundColumns+`) VALUES (?, ?, ?)`,
			round.ID.String(),
			round.SessionID.String(),
			round.CreatedAt.UTC(),
		)
		if err != nil {
			return translateErr("create round", err)
		}
		for _, participantID := range round.Participants {
			if err := tx.AddParticipantToRound(ctx, participantID, round.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) GetRound(ctx context.Context, id models.RoundID) (models.Round, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id.String())
	round, err := scanRound(row)
	if err != nil {
		return models.Round{}, translateErr("get round", err)
	}
	if round.Participants, err = db.roundParticipantIDs(ctx, round.ID); err != nil {
		return models.Round{}, err
	}
	return round, nil
}

// ListRoundsForSession returns rounds in creation order; the last one is the
// most recent.
func (db *DB) ListRoundsForSession(ctx context.Context, sessionID models.SessionID) ([]models.Round, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE session_id = ? ORDER BY created_at, rowid`,
		sessionID.String(),
	)
	if err != nil {
		return nil, translateErr("list rounds", err)
	}

	rounds := []models.Round{}
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			rows.Close()
			return nil, translateErr("list rounds", err)
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, translateErr("list rounds", err)
	}
	rows.Close()

	for i := range rounds {
		if rounds[i].Participants, err = db.roundParticipantIDs(ctx, rounds[i].ID); err != nil {
			return nil, err
		}
	}
	return rounds, nil
}

func (db *DB) AddParticipantToRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error {
	_, err := db.q.ExecContext(ctx,
		`INSERT INTO round_participants (round_id, participant_id, position)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM round_participants WHERE round_id = ?))
		 ON CONFLICT (round_id, participant_id) DO NOTHING`,
		roundID.String(),
		participantID.String(),
		roundID.String(),
	)
	return translateErr("add participant to round", err)
}

func (db *DB) RemoveParticipantFromRound(ctx context.Context, participantID models.ParticipantID, roundID models.RoundID) error {
	_, err := db.q.ExecContext(ctx,
		`DELETE FROM round_participants WHERE round_id = ? AND participant_id = ?`,
		roundID.String(),
		participantID.String(),
	)
	return translateErr("remove participant from round", err)
}

func (db *DB) roundParticipantIDs(ctx context.Context, roundID models.RoundID) ([]models.ParticipantID, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT participant_id FROM round_participants WHERE round_id = ? ORDER BY position`,
		roundID.String(),
	)
	if err != nil {
		return nil, translateErr("list round participants", err)
	}
	defer rows.Close()
	return scanIDs[models.Participant](rows)
}

func scanRound(row rowScanner) (models.Round, error) {
	var (
		round     models.Round
		id        string
		sessionID string
	)
	if err := row.Scan(&id, &sessionID, &round.CreatedAt); err != nil {
		return models.Round{}, err
	}
	var err error
	if round.ID, err = models.ParseID[models.Round](id); err != nil {
		return models.Round{}, err
	}
	if round.SessionID, err = models.ParseID[models.Session](sessionID); err != nil {
		return models.Round{}, err
	}
	round.CreatedAt = round.CreatedAt.UTC()
	round.Participants = []models.ParticipantID{}
	return round, nil
}

type idRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanIDs[T any](rows idRows) ([]models.ID[T], error) {
	ids := []models.ID[T]{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := models.ParseID[T](raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
