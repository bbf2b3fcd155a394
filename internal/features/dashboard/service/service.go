package service

import (
	"context"
	"sort"

	rostermodels "election-tracker-backend/internal/features/roster/models"
	rosterservice "election-tracker-backend/internal/features/roster/service"
	settingsrepo "election-tracker-backend/internal/features/settings/repository"
	votesrepo "election-tracker-backend/internal/features/votes/repository"
	votesservice "election-tracker-backend/internal/features/votes/service"
)

// Service assembles the read models the dashboard pages render. All numbers
// come from full-range reads of the spreadsheet at request time; nothing is
// cached between requests.
type Service struct {
	roster   *rosterservice.Service
	votes    votesrepo.Repository
	settings settingsrepo.Repository
	mode     votesservice.Mode
	centers  []string
}

func New(
	roster *rosterservice.Service,
	votes votesrepo.Repository,
	settings settingsrepo.Repository,
	mode votesservice.Mode,
	centers []string,
) *Service {
	return &Service{
		roster:   roster,
		votes:    votes,
		settings: settings,
		mode:     mode,
		centers:  centers,
	}
}

// Overview is everything the main page shows, already narrowed to the active
// filters. Center and supervisor filters compose: a supervisor filter first
// narrows to that supervisor's delegates, then a center filter narrows the
// rest.
type Overview struct {
	Center     string
	Supervisor string

	Totals      votesservice.Totals
	CenterNames []string

	Delegates   []rostermodels.Delegate
	Supervisors []rostermodels.Supervisor
	VoterCount  int
	VoteCount   int

	Settings map[string]string
	Mode     votesservice.Mode
}

func (s *Service) Overview(ctx context.Context, center, supervisor string) (*Overview, error) {
	delegates, err := s.roster.ListDelegates(ctx)
	if err != nil {
		return nil, err
	}
	supervisors, err := s.roster.ListSupervisors(ctx)
	if err != nil {
		return nil, err
	}
	voters, err := s.roster.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Read(ctx)
	if err != nil {
		return nil, err
	}

	if supervisor != "" {
		delegates = votesservice.DelegatesForSupervisor(delegates, supervisor)
		votes = votesservice.VotesForDelegates(votes, delegates)
		voters = votesservice.VotersForVillages(voters, delegates)
	}
	if center != "" {
		delegates = votesservice.DelegatesForCenter(delegates, center)
		supervisors = votesservice.SupervisorsForCenter(supervisors, center)
		voters = votesservice.VotersForCenter(voters, center)
		votes = votesservice.VotesForCenter(votes, center)
	}

	totals := votesservice.Compute(votes, voters, s.mode)

	return &Overview{
		Center:      center,
		Supervisor:  supervisor,
		Totals:      totals,
		CenterNames: s.centerNames(totals),
		Delegates:   delegates,
		Supervisors: supervisors,
		VoterCount:  len(voters),
		VoteCount:   len(votes),
		Settings:    settings,
		Mode:        s.mode,
	}, nil
}

// centerNames merges the configured center list with every center seen in the
// data, sorted, so a center with no activity yet still gets a row.
func (s *Service) centerNames(totals votesservice.Totals) []string {
	seen := make(map[string]struct{}, len(totals.Centers)+len(s.centers))
	names := make([]string, 0, len(totals.Centers)+len(s.centers))
	for _, c := range s.centers {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			names = append(names, c)
		}
	}
	for c := range totals.Centers {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			names = append(names, c)
		}
	}
	sort.Strings(names)
	return names
}

// SupervisorDetail is the per-supervisor drill-down: the center-wide scope
// plus a per-delegate breakdown of recorded rows.
type SupervisorDetail struct {
	Supervisor rostermodels.Supervisor
	Scope      votesservice.Scope
	Delegates  []votesservice.DelegateBreakdown
	VoterCount int
}

func (s *Service) SupervisorDetail(ctx context.Context, userID string) (*SupervisorDetail, error) {
	sup, err := s.roster.GetSupervisor(ctx, userID)
	if err != nil {
		return nil, err
	}
	delegates, err := s.roster.ListDelegates(ctx)
	if err != nil {
		return nil, err
	}
	voters, err := s.roster.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}

	own := votesservice.DelegatesForSupervisor(delegates, userID)
	centerVotes := votesservice.VotesForCenter(votes, sup.Center)
	centerVoters := votesservice.VotersForCenter(voters, sup.Center)

	return &SupervisorDetail{
		Supervisor: sup,
		Scope:      votesservice.ComputeScope(centerVotes, centerVoters, s.mode),
		Delegates:  votesservice.BreakdownByDelegate(centerVotes, own),
		VoterCount: len(centerVoters),
	}, nil
}

// VotesCSV exports the vote log, narrowed the same way Overview narrows it.
func (s *Service) VotesCSV(ctx context.Context, center, supervisor string) ([]byte, error) {
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}
	if supervisor != "" {
		delegates, err := s.roster.ListDelegates(ctx)
		if err != nil {
			return nil, err
		}
		votes = votesservice.VotesForDelegates(votes, votesservice.DelegatesForSupervisor(delegates, supervisor))
	}
	if center != "" {
		votes = votesservice.VotesForCenter(votes, center)
	}
	return votesservice.VotesCSV(votes), nil
}

// SupervisorVotesCSV exports only the rows recorded by one supervisor's
// delegates. Unknown supervisors export as rosterservice.ErrSupervisorNotFound.
func (s *Service) SupervisorVotesCSV(ctx context.Context, userID string) ([]byte, error) {
	if _, err := s.roster.GetSupervisor(ctx, userID); err != nil {
		return nil, err
	}
	delegates, err := s.roster.ListDelegates(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, err
	}
	own := votesservice.DelegatesForSupervisor(delegates, userID)
	return votesservice.VotesCSV(votesservice.VotesForDelegates(votes, own)), nil
}

// SaveSetting persists one key. Blank keys are rejected by the repository
// contract upstream; the dashboard form sends both fields.
func (s *Service) SaveSetting(ctx context.Context, key, value string) error {
	return s.settings.Set(ctx, key, value)
}

// Roster returns the roster service for the admin form handlers.
func (s *Service) Roster() *rosterservice.Service {
	return s.roster
}
