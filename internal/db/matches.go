// internal/db/matches.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

const matchColumns = `id, round_id, venue_id, winner_id, recorded_at, created_at`

func (db *DB) CreateMatch(ctx context.Context, match models.Match) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		return tx.insertMatch(ctx, match)
	})
}

// CreateMatches checks for existing matches and inserts the new ones in one
// transaction.
func (db *DB) CreateMatches(ctx context.Context, roundID models.RoundID, matches []models.Match) error {
	return db.RunInTx(ctx, func(tx *DB) error {
		if _, err := tx.GetRound(ctx, roundID); err != nil {
			return err
		}
		var existing int
		err := tx.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE round_id = ?`, roundID.String()).
			Scan(&existing)
		if err != nil {
			return translateErr("create matches", err)
		}
		if existing > 0 {
			return fmt.Errorf("create matches: %w", store.ErrRoundHasMatches)
		}
		for _, match := range matches {
			if match.RoundID != roundID {
				return fmt.Errorf("create matches: match %s belongs to round %s", match.ID, match.RoundID)
			}
			if err := tx.insertMatch(ctx, match); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) insertMatch(ctx context.Context, match models.Match) error {
	var winner sql.NullString
	var recordedAt sql.NullTime
	if match.Result != nil {
		winner = sql.NullString{String: match.Result.WinnerID.String(), Valid: true}
		recordedAt = sql.NullTime{Time: match.Result.RecordedAt.UTC(), Valid: true}
	}
	_, err := db.q.ExecContext(ctx,
		`INSERT INTO matches (`+matchColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		match.ID.String(),
		match.RoundID.String(),
		match.VenueID.String(),
		winner,
		recordedAt,
		match.CreatedAt.UTC(),
	)
	if err != nil {
		return translateErr("create match", err)
	}
	for position, participantID := range match.Participants {
		_, err := db.q.ExecContext(ctx,
			`INSERT INTO match_participants (match_id, participant_id, position) VALUES (?, ?, ?)`,
			match.ID.String(),
			participantID.String(),
			position+1,
		)
		if err != nil {
			return translateErr("create match participant", err)
		}
	}
	return nil
}

func (db *DB) GetMatch(ctx context.Context, id models.MatchID) (models.Match, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, id.String())
	match, err := scanMatch(row)
	if err != nil {
		return models.Match{}, translateErr("get match", err)
	}
	if match.Participants, err = db.matchParticipantIDs(ctx, match.ID); err != nil {
		return models.Match{}, err
	}
	return match, nil
}

func (db *DB) ListMatchesForRound(ctx context.Context, roundID models.RoundID) ([]models.Match, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE round_id = ? ORDER BY created_at, rowid`,
		roundID.String(),
	)
	if err != nil {
		return nil, translateErr("list matches", err)
	}

	matches := []models.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, translateErr("list matches", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, translateErr("list matches", err)
	}
	rows.Close()

	for i := range matches {
		if matches[i].Participants, err = db.matchParticipantIDs(ctx, matches[i].ID); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (db *DB) RecordMatchResult(ctx context.Context, matchID models.MatchID, result models.MatchResult) error {
	res, err := db.q.ExecContext(ctx,
		`UPDATE matches SET winner_id = ?, recorded_at = ? WHERE id = ?`,
		result.WinnerID.String(),
		result.RecordedAt.UTC(),
		matchID.String(),
	)
	if err != nil {
		return translateErr("record match result", err)
	}
	return requireAffected("record match result", res)
}

func (db *DB) matchParticipantIDs(ctx context.Context, matchID models.MatchID) ([]models.ParticipantID, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT participant_id FROM match_participants WHERE match_id = ? ORDER BY position`,
		matchID.String(),
	)
	if err != nil {
		return nil, translateErr("list match participants", err)
	}
	defer rows.Close()
	return scanIDs[models.Participant](rows)
}

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		match      models.Match
		id         string
		roundID    string
		venueID    string
		winnerID   sql.NullString
		recordedAt sql.NullTime
	)
	if err := row.Scan(&id, &roundID, &venueID, &winnerID, &recordedAt, &match.CreatedAt); err != nil {
		return models.Match{}, err
	}
	var err error
	if match.ID, err = models.ParseID[models.Match](id); err != nil {
		return models.Match{}, err
	}
	if match.RoundID, err = models.ParseID[models.Round](roundID); err != nil {
		return models.Match{}, err
	}
	if match.VenueID, err = models.ParseID[models.Venue](venueID); err != nil {
		return models.Match{}, err
	}
	if winnerID.Valid {
		winner, err := models.ParseID[models.Participant](winnerID.String)
		if err != nil {
			return models.Match{}, err
		}
		match.Result = &models.MatchResult{WinnerID: winner, RecordedAt: recordedAt.Time.UTC()}
	}
	match.CreatedAt = match.CreatedAt.UTC()
	match.Participants = []models.ParticipantID{}
	return match, nil
}
