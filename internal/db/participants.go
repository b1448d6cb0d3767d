// internal/db/participants.go
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/codr1/leagus/internal/models"
	"github.com/codr1/leagus/internal/store"
)

func (db *DB) CreateParticipant(ctx context.Context, participant models.Participant) error {
	_, err := db.q.ExecContext(ctx,
		`INSERT INTO participants (id, name) VALUES (?, ?)`,
		participant.ID.String(),
		participant.Name,
	)
	return translateErr("create participant", err)
}

func (db *DB) GetParticipant(ctx context.Context, id models.ParticipantID) (models.Participant, error) {
	var participant models.Participant
	var rawID string
	err := db.q.QueryRowContext(ctx, `SELECT id, name FROM participants WHERE id = ?`, id.String()).
		Scan(&rawID, &participant.Name)
	if err != nil {
		return models.Participant{}, translateErr("get participant", err)
	}
	participant.ID, err = models.ParseID[models.Participant](rawID)
	return participant, err
}

func (db *DB) ListParticipants(ctx context.Context, nameQuery string) ([]models.Participant, error) {
	nameQuery = strings.TrimSpace(nameQuery)
	if nameQuery == "" {
		return db.listParticipants(ctx, `SELECT id, name FROM participants ORDER BY name`)
	}
	return db.listParticipants(ctx,
		`SELECT id, name FROM participants WHERE instr(fold(name), ?) > 0 ORDER BY name`,
		foldName(nameQuery),
	)
}

func (db *DB) ListParticipantsForRound(ctx context.Context, roundID models.RoundID) ([]models.Participant, error) {
	var found int
	err := db.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds WHERE id = ?`, roundID.String()).Scan(&found)
	if err != nil {
		return nil, translateErr("list participants for round", err)
	}
	if found == 0 {
		return nil, fmt.Errorf("list participants for round: %w", store.ErrNotFound)
	}
	return db.listParticipants(ctx,
		`SELECT p.id, p.name
		 FROM round_participants rp
		 JOIN participants p ON p.id = rp.participant_id
		 WHERE rp.round_id = ?
		 ORDER BY rp.position`,
		roundID.String(),
	)
}

func (db *DB) listParticipants(ctx context.Context, query string, args ...any) ([]models.Participant, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr("list participants", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var participant models.Participant
		var rawID string
		if err := rows.Scan(&rawID, &participant.Name); err != nil {
			return nil, translateErr("list participants", err)
		}
		if participant.ID, err = models.ParseID[models.Participant](rawID); err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, translateErr("list participants", rows.Err())
}
