package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"election-tracker-backend/internal/platform/sheets/sheetstest"
)

func TestReadSkipsBlankKeys(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed("Settings!A:B", [][]string{
		{"election_day", "2026-09-01"},
		{"", "orphan value"},
		{"banner"},
	})
	repo := NewRepository(fake)

	got, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"election_day": "2026-09-01",
		"banner":       "",
	}, got)
}

func TestSetOverwritesExistingKey(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed("Settings!A:B", [][]string{
		{"election_day", "2026-09-01"},
		{"banner", "old"},
	})
	repo := NewRepository(fake)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "banner", "new"))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got["banner"])
	assert.Equal(t, "2026-09-01", got["election_day"])
}

func TestSetAppendsMissingKey(t *testing.T) {
	fake := sheetstest.New()
	repo := NewRepository(fake)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "election_day", "2026-09-01"))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"election_day": "2026-09-01"}, got)
}
