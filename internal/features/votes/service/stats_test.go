package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rostermodels "election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/votes/models"
)

func voter(id, center, village string) rostermodels.Voter {
	return rostermodels.Voter{Name: "v-" + id, NationalID: id, Center: center, Village: village}
}

func vote(ts, nationalID string, status models.Status, center string) models.Vote {
	return models.Vote{
		Timestamp:       ts,
		DelegateUserID:  "d1",
		VoterNationalID: nationalID,
		Status:          status,
		Center:          center,
	}
}

func TestComputeScopeSingleVoter(t *testing.T) {
	voters := []rostermodels.Voter{voter("n1", "c1", "village-a")}
	votes := []models.Vote{vote("2026-01-01T10:00:00Z", "n1", models.StatusVoted, "c1")}

	sc := ComputeScope(votes, voters, ModeEvents)

	assert.Equal(t, 1, sc.TotalVoters)
	assert.Equal(t, 1, sc.Voted)
	assert.Equal(t, 1, sc.TotalVoted)
	assert.Equal(t, 0, sc.NotVoted)
	assert.Equal(t, 0, sc.Remaining)
	assert.Equal(t, 100, sc.ProgressPercent)
}

func TestComputeScopeEmptyRoll(t *testing.T) {
	sc := ComputeScope(nil, nil, ModeEvents)

	assert.Equal(t, 0, sc.TotalVoters)
	assert.Equal(t, 0, sc.ProgressPercent)
	assert.Equal(t, 0, sc.Remaining)
}

func TestComputeScopeIdentities(t *testing.T) {
	voters := []rostermodels.Voter{
		voter("n1", "c1", "a"), voter("n2", "c1", "a"), voter("n3", "c1", "a"), voter("n4", "c1", "a"),
	}
	votes := []models.Vote{
		vote("2026-01-01T08:00:00Z", "n1", models.StatusVoted, "c1"),
		vote("2026-01-01T09:00:00Z", "n2", models.StatusInvalid, "c1"),
		vote("2026-01-01T10:00:00Z", "n3", models.StatusNotVoted, "c1"),
	}

	sc := ComputeScope(votes, voters, ModeEvents)

	assert.Equal(t, sc.Voted+sc.Invalid, sc.TotalVoted)
	assert.Equal(t, sc.TotalVoters-sc.TotalVoted, sc.Remaining)
	assert.Equal(t, 2, sc.TotalVoted)
	assert.Equal(t, 1, sc.NotVoted)
	assert.Equal(t, 50, sc.ProgressPercent)
}

func TestComputeEventsCountsEveryRow(t *testing.T) {
	voters := []rostermodels.Voter{voter("n1", "c1", "a")}
	votes := []models.Vote{
		vote("2026-01-01T08:00:00Z", "n1", models.StatusVoted, "c1"),
		vote("2026-01-01T09:00:00Z", "n1", models.StatusVoted, "c1"),
	}

	sc := ComputeScope(votes, voters, ModeEvents)

	// A voter marked twice counts twice; progress passes 100%.
	assert.Equal(t, 2, sc.Voted)
	assert.Equal(t, 200, sc.ProgressPercent)
	assert.Equal(t, -1, sc.Remaining)
}

func TestComputeLatestKeepsNewestRowPerVoter(t *testing.T) {
	voters := []rostermodels.Voter{voter("n1", "c1", "a")}
	votes := []models.Vote{
		vote("2026-01-01T08:00:00Z", "n1", models.StatusNotVoted, "c1"),
		vote("2026-01-01T09:00:00Z", "n1", models.StatusVoted, "c1"),
	}

	sc := ComputeScope(votes, voters, ModeLatest)

	assert.Equal(t, 1, sc.Voted)
	assert.Equal(t, 0, sc.NotVoted)
	assert.Equal(t, 100, sc.ProgressPercent)
}

func TestComputeLatestTieFavorsLaterRow(t *testing.T) {
	voters := []rostermodels.Voter{voter("n1", "c1", "a")}
	same := "2026-01-01T08:00:00Z"
	votes := []models.Vote{
		vote(same, "n1", models.StatusVoted, "c1"),
		vote(same, "n1", models.StatusInvalid, "c1"),
	}

	sc := ComputeScope(votes, voters, ModeLatest)

	assert.Equal(t, 0, sc.Voted)
	assert.Equal(t, 1, sc.Invalid)
}

func TestComputeBucketsBlankCenterAsUnspecified(t *testing.T) {
	voters := []rostermodels.Voter{
		voter("n1", "c1", "a"),
		voter("n2", "", "a"),
	}
	votes := []models.Vote{
		vote("2026-01-01T08:00:00Z", "n2", models.StatusVoted, ""),
	}

	totals := Compute(votes, voters, ModeEvents)

	require.Contains(t, totals.Centers, UnspecifiedCenter)
	assert.Equal(t, 1, totals.Centers[UnspecifiedCenter].Voted)
	assert.Equal(t, 1, totals.Centers[UnspecifiedCenter].TotalVoters)
	assert.Equal(t, 1, totals.Centers["c1"].TotalVoters)
	// The unspecified bucket still counts toward the overall numbers.
	assert.Equal(t, 2, totals.Overall.TotalVoters)
	assert.Equal(t, 1, totals.Overall.Voted)
}

func TestComputePerCenterSplit(t *testing.T) {
	voters := []rostermodels.Voter{
		voter("n1", "c1", "a"), voter("n2", "c1", "a"),
		voter("n3", "c2", "b"),
	}
	votes := []models.Vote{
		vote("2026-01-01T08:00:00Z", "n1", models.StatusVoted, "c1"),
		vote("2026-01-01T09:00:00Z", "n3", models.StatusInvalid, "c2"),
	}

	totals := Compute(votes, voters, ModeEvents)

	assert.Equal(t, 50, totals.Centers["c1"].ProgressPercent)
	assert.Equal(t, 100, totals.Centers["c2"].ProgressPercent)
	assert.Equal(t, 67, totals.Overall.ProgressPercent)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeLatest, ParseMode("latest"))
	assert.Equal(t, ModeEvents, ParseMode("events"))
	assert.Equal(t, ModeEvents, ParseMode(""))
	assert.Equal(t, ModeEvents, ParseMode("bogus"))
}

func TestBreakdownByDelegate(t *testing.T) {
	delegates := []rostermodels.Delegate{
		{UserID: "d1", Name: "First", Center: "c1", Village: "a"},
		{UserID: "d2", Name: "Second", Center: "c1", Village: "b"},
	}
	votes := []models.Vote{
		{DelegateUserID: "d1", VoterNationalID: "n1", Status: models.StatusVoted},
		{DelegateUserID: "d1", VoterNationalID: "n2", Status: models.StatusNotVoted},
		{DelegateUserID: "d2", VoterNationalID: "n3", Status: models.StatusInvalid},
		{DelegateUserID: "unknown", VoterNationalID: "n4", Status: models.StatusVoted},
	}

	out := BreakdownByDelegate(votes, delegates)

	require.Len(t, out, 2)
	assert.Equal(t, "d1", out[0].Delegate.UserID)
	assert.Equal(t, 2, out[0].Total)
	assert.Equal(t, 1, out[0].Voted)
	assert.Equal(t, 1, out[0].NotVoted)
	assert.Equal(t, 1, out[1].Total)
	assert.Equal(t, 1, out[1].Invalid)
}

func TestFiltersScopeByAssignment(t *testing.T) {
	voters := []rostermodels.Voter{
		voter("n1", "c1", "a"),
		voter("n2", "c1", "b"),
		voter("n3", "c2", "a"),
	}

	got := VotersForAssignment(voters, "c1", "a")

	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].NationalID)
}

func TestVotesForDelegates(t *testing.T) {
	delegates := []rostermodels.Delegate{{UserID: "d1"}, {UserID: "d2"}}
	votes := []models.Vote{
		{DelegateUserID: "d1", VoterNationalID: "n1"},
		{DelegateUserID: "d9", VoterNationalID: "n2"},
		{DelegateUserID: "d2", VoterNationalID: "n3"},
	}

	got := VotesForDelegates(votes, delegates)

	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].VoterNationalID)
	assert.Equal(t, "n3", got[1].VoterNationalID)
}
