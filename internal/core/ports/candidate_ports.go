package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
)

type CandidateRepository interface {
	// Create fails with domain.ErrDuplicateCandidate if the name is taken.
	Create(ctx context.Context, candidate *domain.Candidate) error
	DeleteByName(ctx context.Context, name string) error
	// Increment adds one vote; domain.ErrCandidateNotFound if the row is gone.
	Increment(ctx context.Context, candidateID uuid.UUID) error
	// List returns candidates in the order they were added.
	List(ctx context.Context) ([]*domain.Candidate, error)
}

type CandidateService interface {
	AddCandidate(ctx context.Context, name string) (*domain.Candidate, error)
	RemoveCandidate(ctx context.Context, name string) error
	ListCandidates(ctx context.Context) ([]*domain.Candidate, error)
}
