// internal/models/points_table.go
package models

import "sort"

// PointsTable ranks the participants of a season.
type PointsTable struct {
	Entries []PointsTableEntry `json:"entries" bson:"entries"`
}

type PointsTableEntry struct {
	ParticipantID   ParticipantID `json:"participantId" bson:"participant_id"`
	ParticipantName string        `json:"participantName" bson:"participant_name"`
	Points          int           `json:"points" bson:"points"`
	Wins            int           `json:"wins" bson:"wins"`
	Losses          int           `json:"losses" bson:"losses"`
}

// Sort orders entries by points, then wins, then fewest losses, then name.
func (t *PointsTable) Sort() {
	sort.SliceStable(t.Entries, func(i, j int) bool {
		a, b := t.Entries[i], t.Entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		return a.ParticipantName < b.ParticipantName
	})
}
