package sheets

import (
	"context"

	"election-tracker-backend/internal/platform/sheets"
)

// The Settings tab has no header row: column A is the key, column B the
// value.
const settingsRange = "Settings!A:B"

type Repository struct {
	client sheets.Client
}

func NewRepository(client sheets.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Read(ctx context.Context) (map[string]string, error) {
	rows, err := r.client.ReadRange(ctx, settingsRange)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		key := sheets.Cell(row, 0)
		if key == "" {
			continue
		}
		out[key] = sheets.Cell(row, 1)
	}
	return out, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	rows, err := r.client.ReadRange(ctx, settingsRange)
	if err != nil {
		return err
	}
	found := false
	updated := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		if sheets.Cell(row, 0) == key {
			found = true
			updated = append(updated, []string{key, value})
			continue
		}
		updated = append(updated, row)
	}
	if !found {
		updated = append(updated, []string{key, value})
	}
	return r.client.UpdateRange(ctx, settingsRange, updated)
}
