package sheets

import (
	"context"

	"election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/platform/sheets"
)

const (
	delegatesRange   = "Delegates!A:E"
	supervisorsRange = "Supervisors!A:C"
	votersRange      = "Voters!A:E"
)

// Tab layouts. The first row of each range is a header; columns are located
// by header text, not position.
var (
	delegateColumns   = []string{"userId", "name", "center", "village", "supervisorId"}
	supervisorColumns = []string{"userId", "name", "center"}
	voterColumns      = []string{"name", "nationalId", "rollNumber", "center", "village"}
)

type DelegateRepository struct {
	client sheets.Client
}

func NewDelegateRepository(client sheets.Client) *DelegateRepository {
	return &DelegateRepository{client: client}
}

func (r *DelegateRepository) List(ctx context.Context) ([]models.Delegate, error) {
	rows, err := r.client.ReadRange(ctx, delegatesRange)
	if err != nil {
		return nil, err
	}
	header, data := splitHeader(rows)
	idx := sheets.HeaderIndex(header, delegateColumns...)

	out := make([]models.Delegate, 0, len(data))
	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		out = append(out, models.Delegate{
			UserID:       sheets.Cell(row, idx["userId"]),
			Name:         sheets.Cell(row, idx["name"]),
			Center:       sheets.Cell(row, idx["center"]),
			Village:      sheets.Cell(row, idx["village"]),
			SupervisorID: sheets.Cell(row, idx["supervisorId"]),
		})
	}
	return out, nil
}

func (r *DelegateRepository) Add(ctx context.Context, d models.Delegate) error {
	return r.client.AppendRows(ctx, delegatesRange, [][]string{{
		d.UserID, d.Name, d.Center, d.Village, d.SupervisorID,
	}})
}

func (r *DelegateRepository) DeleteByUserID(ctx context.Context, userID string) error {
	rows, err := r.client.ReadRange(ctx, delegatesRange)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	header, data := splitHeader(rows)
	idx := sheets.HeaderIndex(header, delegateColumns...)

	kept := [][]string{header}
	for _, row := range data {
		if sheets.Cell(row, idx["userId"]) == userID {
			continue
		}
		kept = append(kept, row)
	}
	return r.client.UpdateRange(ctx, delegatesRange, kept)
}

type SupervisorRepository struct {
	client sheets.Client
}

func NewSupervisorRepository(client sheets.Client) *SupervisorRepository {
	return &SupervisorRepository{client: client}
}

func (r *SupervisorRepository) List(ctx context.Context) ([]models.Supervisor, error) {
	rows, err := r.client.ReadRange(ctx, supervisorsRange)
	if err != nil {
		return nil, err
	}
	header, data := splitHeader(rows)
	idx := sheets.HeaderIndex(header, supervisorColumns...)

	out := make([]models.Supervisor, 0, len(data))
	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		out = append(out, models.Supervisor{
			UserID: sheets.Cell(row, idx["userId"]),
			Name:   sheets.Cell(row, idx["name"]),
			Center: sheets.Cell(row, idx["center"]),
		})
	}
	return out, nil
}

func (r *SupervisorRepository) Add(ctx context.Context, s models.Supervisor) error {
	return r.client.AppendRows(ctx, supervisorsRange, [][]string{{
		s.UserID, s.Name, s.Center,
	}})
}

func (r *SupervisorRepository) DeleteByUserID(ctx context.Context, userID string) error {
	rows, err := r.client.ReadRange(ctx, supervisorsRange)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	header, data := splitHeader(rows)
	idx := sheets.HeaderIndex(header, supervisorColumns...)

	kept := [][]string{header}
	for _, row := range data {
		if sheets.Cell(row, idx["userId"]) == userID {
			continue
		}
		kept = append(kept, row)
	}
	return r.client.UpdateRange(ctx, supervisorsRange, kept)
}

type VoterRepository struct {
	client sheets.Client
}

func NewVoterRepository(client sheets.Client) *VoterRepository {
	return &VoterRepository{client: client}
}

func (r *VoterRepository) List(ctx context.Context) ([]models.Voter, error) {
	rows, err := r.client.ReadRange(ctx, votersRange)
	if err != nil {
		return nil, err
	}
	header, data := splitHeader(rows)
	idx := sheets.HeaderIndex(header, voterColumns...)

	out := make([]models.Voter, 0, len(data))
	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		out = append(out, models.Voter{
			Name:       sheets.Cell(row, idx["name"]),
			NationalID: sheets.Cell(row, idx["nationalId"]),
			RollNumber: sheets.Cell(row, idx["rollNumber"]),
			Center:     sheets.Cell(row, idx["center"]),
			Village:    sheets.Cell(row, idx["village"]),
		})
	}
	return out, nil
}

func splitHeader(rows [][]string) (header []string, data [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], rows[1:]
}
