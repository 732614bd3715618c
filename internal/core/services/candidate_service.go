package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type candidateService struct {
	repo ports.CandidateRepository
}

func NewCandidateService(repo ports.CandidateRepository) ports.CandidateService {
	return &candidateService{
		repo: repo,
	}
}

// AddCandidate stores name verbatim; "Alice" and "alice" are different
// candidates.
func (s *candidateService) AddCandidate(ctx context.Context, name string) (*domain.Candidate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: candidate name is required", domain.ErrInvalidInput)
	}

	candidate := &domain.Candidate{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, err
	}

	return candidate, nil
}

// RemoveCandidate deletes the candidate together with any votes it has
// already received.
func (s *candidateService) RemoveCandidate(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrCandidateNotFound
	}
	return s.repo.DeleteByName(ctx, name)
}

func (s *candidateService) ListCandidates(ctx context.Context) ([]*domain.Candidate, error) {
	candidates, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}
