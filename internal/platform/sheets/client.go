package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ErrUnavailable is what every remote failure collapses to. Callers decide
// whether to fail soft (listing) or loud (writing); the detail stays in the
// wrapped error for the logs.
var ErrUnavailable = errors.New("sheet store unreachable")

// Client is the range-level contract the repositories are built on. Values
// are plain strings; header interpretation happens one layer up.
type Client interface {
	ReadRange(ctx context.Context, rng string) ([][]string, error)
	UpdateRange(ctx context.Context, rng string, values [][]string) error
	AppendRows(ctx context.Context, rng string, values [][]string) error
}

type googleClient struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewClient builds a Sheets API client from a service-account credentials
// file. The spreadsheet id is fixed per deployment.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &googleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *googleClient) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, rng, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		row := make([]string, 0, len(r))
		for _, cell := range r {
			row = append(row, cellString(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *googleClient) UpdateRange(ctx context.Context, rng string, values [][]string) error {
	body := &gsheets.ValueRange{Values: toValues(values)}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrUnavailable, rng, err)
	}
	return nil
}

func (c *googleClient) AppendRows(ctx context.Context, rng string, values [][]string) error {
	body := &gsheets.ValueRange{Values: toValues(values)}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrUnavailable, rng, err)
	}
	return nil
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		row := make([]interface{}, 0, len(r))
		for _, cell := range r {
			row = append(row, cell)
		}
		out = append(out, row)
	}
	return out
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
