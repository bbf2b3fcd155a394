package service

import (
	"context"
	"errors"

	"election-tracker-backend/internal/common/logger"
	"election-tracker-backend/internal/features/roster/models"
	"election-tracker-backend/internal/features/roster/repository"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrDelegateExists     = errors.New("delegate with this user id already exists")
	ErrSupervisorExists   = errors.New("supervisor with this user id already exists")
	ErrSupervisorNotFound = errors.New("supervisor not found")
)

// Service wraps the roster repositories with the validation the store itself
// does not provide: required fields and a pre-insert uniqueness scan on
// userId. The scan-then-append is not atomic; concurrent admin edits can
// still race.
type Service struct {
	delegates   repository.DelegateRepository
	supervisors repository.SupervisorRepository
	voters      repository.VoterRepository
}

func New(delegates repository.DelegateRepository, supervisors repository.SupervisorRepository, voters repository.VoterRepository) *Service {
	return &Service{
		delegates:   delegates,
		supervisors: supervisors,
		voters:      voters,
	}
}

func (s *Service) ListDelegates(ctx context.Context) ([]models.Delegate, error) {
	return s.delegates.List(ctx)
}

func (s *Service) ListSupervisors(ctx context.Context) ([]models.Supervisor, error) {
	return s.supervisors.List(ctx)
}

func (s *Service) ListVoters(ctx context.Context) ([]models.Voter, error) {
	return s.voters.List(ctx)
}

func (s *Service) AddDelegate(ctx context.Context, d models.Delegate) error {
	if d.UserID == "" || d.Name == "" || d.Center == "" || d.Village == "" {
		return ErrMissingFields
	}
	existing, err := s.delegates.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.UserID == d.UserID {
			return ErrDelegateExists
		}
	}
	if err := s.delegates.Add(ctx, d); err != nil {
		return err
	}
	logger.Info().Str("user_id", d.UserID).Str("center", d.Center).Str("village", d.Village).Msg("delegate added")
	return nil
}

func (s *Service) AddSupervisor(ctx context.Context, sup models.Supervisor) error {
	if sup.UserID == "" || sup.Name == "" || sup.Center == "" {
		return ErrMissingFields
	}
	existing, err := s.supervisors.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.UserID == sup.UserID {
			return ErrSupervisorExists
		}
	}
	if err := s.supervisors.Add(ctx, sup); err != nil {
		return err
	}
	logger.Info().Str("user_id", sup.UserID).Str("center", sup.Center).Msg("supervisor added")
	return nil
}

func (s *Service) DeleteDelegate(ctx context.Context, userID string) error {
	if err := s.delegates.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	logger.Info().Str("user_id", userID).Msg("delegate deleted")
	return nil
}

func (s *Service) DeleteSupervisor(ctx context.Context, userID string) error {
	if err := s.supervisors.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	logger.Info().Str("user_id", userID).Msg("supervisor deleted")
	return nil
}

// GetSupervisor resolves a single supervisor by user id via a linear scan.
func (s *Service) GetSupervisor(ctx context.Context, userID string) (models.Supervisor, error) {
	all, err := s.supervisors.List(ctx)
	if err != nil {
		return models.Supervisor{}, err
	}
	for _, sup := range all {
		if sup.UserID == userID {
			return sup, nil
		}
	}
	return models.Supervisor{}, ErrSupervisorNotFound
}
