// internal/db/venues.go
package db

import (
	"context"

	"github.com/codr1/leagus/internal/models"
)

func (db *DB) CreateVenue(ctx context.Context, venue models.Venue) error {
	_, err := db.q.ExecContext(ctx,
		`INSERT INTO venues (id, name) VALUES (?, ?)`,
		venue.ID.String(),
		venue.Name,
	)
	return translateErr("create venue", err)
}

func (db *DB) GetVenue(ctx context.Context, id models.VenueID) (models.Venue, error) {
	var venue models.Venue
	var rawID string
	err := db.q.QueryRowContext(ctx, `SELECT id, name FROM venues WHERE id = ?`, id.String()).
		Scan(&rawID, &venue.Name)
	if err != nil {
		return models.Venue{}, translateErr("get venue", err)
	}
	venue.ID, err = models.ParseID[models.Venue](rawID)
	return venue, err
}

func (db *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	rows, err := db.q.QueryContext(ctx, `SELECT id, name FROM venues ORDER BY name`)
	if err != nil {
		return nil, translateErr("list venues", err)
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		var venue models.Venue
		var rawID string
		if err := rows.Scan(&rawID, &venue.Name); err != nil {
			return nil, translateErr("list venues", err)
		}
		if venue.ID, err = models.ParseID[models.Venue](rawID); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}
	return venues, translateErr("list venues", rows.Err())
}
