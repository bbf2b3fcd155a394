// Package sheetstest provides an in-memory sheets.Client for repository
// tests.
package sheetstest

import (
	"context"
	"fmt"
	"sync"

	"election-tracker-backend/internal/platform/sheets"
)

// Fake stores rows per range string. The repositories address whole tables
// by fixed ranges, so a plain map is enough.
type Fake struct {
	mu   sync.Mutex
	data map[string][][]string

	// Err, when set, is returned by every call. Lets tests simulate an
	// unreachable store.
	Err error
}

func New() *Fake {
	return &Fake{data: make(map[string][][]string)}
}

// Seed replaces the contents of a range.
func (f *Fake) Seed(rng string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[rng] = cloneRows(rows)
}

// Rows returns a copy of the current contents of a range.
func (f *Fake) Rows(rng string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneRows(f.data[rng])
}

func (f *Fake) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, fmt.Errorf("%w: %v", sheets.ErrUnavailable, f.Err)
	}
	return cloneRows(f.data[rng]), nil
}

func (f *Fake) UpdateRange(ctx context.Context, rng string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return fmt.Errorf("%w: %v", sheets.ErrUnavailable, f.Err)
	}
	f.data[rng] = cloneRows(values)
	return nil
}

func (f *Fake) AppendRows(ctx context.Context, rng string, values [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return fmt.Errorf("%w: %v", sheets.ErrUnavailable, f.Err)
	}
	f.data[rng] = append(f.data[rng], cloneRows(values)...)
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(r))
		copy(row, r)
		out = append(out, row)
	}
	return out
}
