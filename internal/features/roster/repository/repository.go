package repository

import (
	"context"

	"election-tracker-backend/internal/features/roster/models"
)

// DeleteByUserID on both repositories is a read-modify-write over the whole
// table: it is NOT atomic with respect to concurrent writers. The admin
// surface is assumed single-writer.

type DelegateRepository interface {
	List(ctx context.Context) ([]models.Delegate, error)
	Add(ctx context.Context, d models.Delegate) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type SupervisorRepository interface {
	List(ctx context.Context) ([]models.Supervisor, error)
	Add(ctx context.Context, s models.Supervisor) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// VoterRepository is read-only; the roll is uploaded out of band.
type VoterRepository interface {
	List(ctx context.Context) ([]models.Voter, error)
}
