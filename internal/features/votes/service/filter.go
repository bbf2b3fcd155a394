package service

import (
	rostermodels "election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/votes/models"
)

// Scoping helpers shared by the bot and the dashboard. All joins in this
// system are client-side linear scans; there are no foreign keys to lean on.

func VotesForCenter(votes []models.Vote, center string) []models.Vote {
	out := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		if v.Center == center {
			out = append(out, v)
		}
	}
	return out
}

func VotesForDelegate(votes []models.Vote, delegateUserID string) []models.Vote {
	out := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		if v.DelegateUserID == delegateUserID {
			out = append(out, v)
		}
	}
	return out
}

// VotesForDelegates keeps rows recorded by any of the given delegates,
// e.g. everything under one supervisor.
func VotesForDelegates(votes []models.Vote, delegates []rostermodels.Delegate) []models.Vote {
	ids := make(map[string]struct{}, len(delegates))
	for _, d := range delegates {
		ids[d.UserID] = struct{}{}
	}
	out := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		if _, ok := ids[v.DelegateUserID]; ok {
			out = append(out, v)
		}
	}
	return out
}

func VotersForCenter(voters []rostermodels.Voter, center string) []rostermodels.Voter {
	out := make([]rostermodels.Voter, 0, len(voters))
	for _, v := range voters {
		if v.Center == center {
			out = append(out, v)
		}
	}
	return out
}

// VotersForAssignment is a delegate's responsibility: every voter sharing its
// (center, village).
func VotersForAssignment(voters []rostermodels.Voter, center, village string) []rostermodels.Voter {
	out := make([]rostermodels.Voter, 0, len(voters))
	for _, v := range voters {
		if v.Center == center && v.Village == village {
			out = append(out, v)
		}
	}
	return out
}

// VotersForVillages keeps voters living in any of the given delegates'
// villages, mirroring how the dashboard scopes a supervisor's voter base.
func VotersForVillages(voters []rostermodels.Voter, delegates []rostermodels.Delegate) []rostermodels.Voter {
	villages := make(map[string]struct{}, len(delegates))
	for _, d := range delegates {
		villages[d.Village] = struct{}{}
	}
	out := make([]rostermodels.Voter, 0, len(voters))
	for _, v := range voters {
		if _, ok := villages[v.Village]; ok {
			out = append(out, v)
		}
	}
	return out
}

func DelegatesForCenter(delegates []rostermodels.Delegate, center string) []rostermodels.Delegate {
	out := make([]rostermodels.Delegate, 0, len(delegates))
	for _, d := range delegates {
		if d.Center == center {
			out = append(out, d)
		}
	}
	return out
}

func DelegatesForSupervisor(delegates []rostermodels.Delegate, supervisorID string) []rostermodels.Delegate {
	out := make([]rostermodels.Delegate, 0, len(delegates))
	for _, d := range delegates {
		if d.SupervisorID == supervisorID {
			out = append(out, d)
		}
	}
	return out
}

func SupervisorsForCenter(supervisors []rostermodels.Supervisor, center string) []rostermodels.Supervisor {
	out := make([]rostermodels.Supervisor, 0, len(supervisors))
	for _, s := range supervisors {
		if s.Center == center {
			out = append(out, s)
		}
	}
	return out
}
