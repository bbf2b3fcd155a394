package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"election-tracker-backend/internal/features/votes/models"
)

func TestVotesCSVStartsWithBOMAndHeader(t *testing.T) {
	out := string(VotesCSV(nil))

	require.True(t, strings.HasPrefix(out, "\uFEFF"))
	assert.Equal(t, "timestamp,delegateUserId,voterNationalId,status,center,village",
		strings.TrimPrefix(out, "\uFEFF"))
}

func TestVotesCSVQuotesOnlyWhenNeeded(t *testing.T) {
	votes := []models.Vote{
		{
			Timestamp:       "2026-01-01T08:00:00Z",
			DelegateUserID:  "d1",
			VoterNationalID: "n1",
			Status:          models.StatusVoted,
			Center:          "Center, North",
			Village:         `The "old" one`,
		},
		{
			Timestamp:       "2026-01-01T09:00:00Z",
			DelegateUserID:  "d1",
			VoterNationalID: "n2",
			Status:          models.StatusNotVoted,
			Center:          "plain",
			Village:         "plain",
		},
	}

	out := string(VotesCSV(votes))
	lines := strings.Split(strings.TrimPrefix(out, "\uFEFF"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, `2026-01-01T08:00:00Z,d1,n1,VOTED,"Center, North","The ""old"" one"`, lines[1])
	assert.Equal(t, "2026-01-01T09:00:00Z,d1,n2,NOT_VOTED,plain,plain", lines[2])
}

func TestVotesCSVUsesLFSeparators(t *testing.T) {
	votes := []models.Vote{{VoterNationalID: "n1", Status: models.StatusVoted}}

	out := string(VotesCSV(votes))

	assert.NotContains(t, out, "\r")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
