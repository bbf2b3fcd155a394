package repository

import (
	"context"

	"election-tracker-backend/internal/features/votes/models"
)

// Repository is the append-only vote log. Append stamps the row with the
// current time when the vote carries none.
type Repository interface {
	List(ctx context.Context) ([]models.Vote, error)
	Append(ctx context.Context, v models.Vote) error
}
