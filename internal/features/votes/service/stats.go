package service

import (
	"math"

	rostermodels "election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/votes/models"
)

// Mode selects how repeated vote rows for one voter are counted.
//
// ModeEvents is the historical behavior: every row counts independently, so a
// voter marked twice counts twice and a scope's progress can pass 100%.
// ModeLatest keeps only the newest row per voter national id before counting.
// The product has not decided which is correct yet; both stay available.
type Mode string

const (
	ModeEvents Mode = "events"
	ModeLatest Mode = "latest"
)

// ParseMode falls back to ModeEvents on anything unrecognized.
func ParseMode(s string) Mode {
	if Mode(s) == ModeLatest {
		return ModeLatest
	}
	return ModeEvents
}

// UnspecifiedCenter is the bucket for rows whose center column is blank or
// unknown. They are counted, never dropped.
const UnspecifiedCenter = "unspecified"

// Scope is the aggregate for one slice of the election: overall, one center,
// one delegate, or one supervisor.
type Scope struct {
	TotalVoters     int
	TotalVoted      int // Voted + Invalid
	Voted           int
	Invalid         int
	NotVoted        int
	Remaining       int // TotalVoters - TotalVoted
	ProgressPercent int // 0 when TotalVoters == 0
}

// Totals is the dashboard shape: one overall scope plus one per center.
type Totals struct {
	Overall Scope
	Centers map[string]Scope
}

// Compute derives turnout statistics from the raw vote log and voter roll.
// Pure: same inputs, same outputs.
func Compute(votes []models.Vote, voters []rostermodels.Voter, mode Mode) Totals {
	if mode == ModeLatest {
		votes = latestPerVoter(votes)
	}

	totals := Totals{Centers: make(map[string]Scope)}

	for _, v := range voters {
		c := centerKey(v.Center)
		sc := totals.Centers[c]
		sc.TotalVoters++
		totals.Centers[c] = sc
		totals.Overall.TotalVoters++
	}

	for _, v := range votes {
		c := centerKey(v.Center)
		sc := totals.Centers[c]
		tally(&sc, v.Status)
		totals.Centers[c] = sc
		tally(&totals.Overall, v.Status)
	}

	for c, sc := range totals.Centers {
		finalize(&sc)
		totals.Centers[c] = sc
	}
	finalize(&totals.Overall)
	return totals
}

// ComputeScope is Compute restricted to a single pre-filtered slice, as the
// bot's progress reports and pinned summaries need.
func ComputeScope(votes []models.Vote, voters []rostermodels.Voter, mode Mode) Scope {
	if mode == ModeLatest {
		votes = latestPerVoter(votes)
	}
	sc := Scope{TotalVoters: len(voters)}
	for _, v := range votes {
		tally(&sc, v.Status)
	}
	finalize(&sc)
	return sc
}

func tally(sc *Scope, status models.Status) {
	switch status {
	case models.StatusVoted:
		sc.Voted++
	case models.StatusNotVoted:
		sc.NotVoted++
	case models.StatusInvalid:
		sc.Invalid++
	}
}

func finalize(sc *Scope) {
	sc.TotalVoted = sc.Voted + sc.Invalid
	sc.Remaining = sc.TotalVoters - sc.TotalVoted
	if sc.TotalVoters > 0 {
		sc.ProgressPercent = int(math.Round(100 * float64(sc.TotalVoted) / float64(sc.TotalVoters)))
	}
}

func centerKey(center string) string {
	if center == "" {
		return UnspecifiedCenter
	}
	return center
}

// latestPerVoter keeps one row per voter national id. RFC3339 timestamps
// compare lexically; ties and blank timestamps resolve to the later row in
// log order.
func latestPerVoter(votes []models.Vote) []models.Vote {
	latest := make(map[string]models.Vote, len(votes))
	order := make([]string, 0, len(votes))
	for _, v := range votes {
		prev, seen := latest[v.VoterNationalID]
		if !seen {
			order = append(order, v.VoterNationalID)
			latest[v.VoterNationalID] = v
			continue
		}
		if v.Timestamp >= prev.Timestamp {
			latest[v.VoterNationalID] = v
		}
	}
	out := make([]models.Vote, 0, len(latest))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out
}

// DelegateBreakdown is one delegate's line in a supervisor detail view. Total
// counts all of the delegate's rows regardless of mode.
type DelegateBreakdown struct {
	Delegate rostermodels.Delegate
	Total    int
	Voted    int
	NotVoted int
	Invalid  int
}

// BreakdownByDelegate groups vote rows by the given delegates. Rows whose
// delegate id matches none of them are ignored.
func BreakdownByDelegate(votes []models.Vote, delegates []rostermodels.Delegate) []DelegateBreakdown {
	byID := make(map[string]int, len(delegates))
	out := make([]DelegateBreakdown, len(delegates))
	for i, d := range delegates {
		byID[d.UserID] = i
		out[i] = DelegateBreakdown{Delegate: d}
	}
	for _, v := range votes {
		i, ok := byID[v.DelegateUserID]
		if !ok {
			continue
		}
		out[i].Total++
		switch v.Status {
		case models.StatusVoted:
			out[i].Voted++
		case models.StatusNotVoted:
			out[i].NotVoted++
		case models.StatusInvalid:
			out[i].Invalid++
		}
	}
	return out
}
