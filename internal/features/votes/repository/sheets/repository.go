package sheets

import (
	"context"
	"time"

	"election-tracker-backend/internal/features/votes/models"
	"election-tracker-backend/internal/platform/sheets"
)

const votesRange = "Votes!A:F"

var voteColumns = []string{"timestamp", "delegateUserId", "voterNationalId", "status", "center", "village"}

type Repository struct {
	client sheets.Client
	now    func() time.Time
}

func NewRepository(client sheets.Client) *Repository {
	return &Repository{client: client, now: time.Now}
}

func (r *Repository) List(ctx context.Context) ([]models.Vote, error) {
	rows, err := r.client.ReadRange(ctx, votesRange)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header, data := rows[0], rows[1:]
	idx := sheets.HeaderIndex(header, voteColumns...)

	out := make([]models.Vote, 0, len(data))
	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		out = append(out, models.Vote{
			Timestamp:       sheets.Cell(row, idx["timestamp"]),
			DelegateUserID:  sheets.Cell(row, idx["delegateUserId"]),
			VoterNationalID: sheets.Cell(row, idx["voterNationalId"]),
			Status:          models.Status(sheets.Cell(row, idx["status"])),
			Center:          sheets.Cell(row, idx["center"]),
			Village:         sheets.Cell(row, idx["village"]),
		})
	}
	return out, nil
}

func (r *Repository) Append(ctx context.Context, v models.Vote) error {
	ts := v.Timestamp
	if ts == "" {
		ts = r.now().UTC().Format(time.RFC3339)
	}
	return r.client.AppendRows(ctx, votesRange, [][]string{{
		ts, v.DelegateUserID, v.VoterNationalID, string(v.Status), v.Center, v.Village,
	}})
}
