package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type resultService struct {
	candidates ports.CandidateRepository
	tallies    ports.TallyRepository
}

func NewResultService(candidates ports.CandidateRepository, tallies ports.TallyRepository) ports.ResultService {
	return &resultService{
		candidates: candidates,
		tallies:    tallies,
	}
}

// ListResults reports committed vote counts in the order candidates were
// added, not ranked by votes.
func (s *resultService) ListResults(ctx context.Context) ([]domain.Result, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}

	results := make([]domain.Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.Result{
			CandidateName: c.Name,
			VoteCount:     c.VoteCount,
		})
	}
	return results, nil
}

func (s *resultService) Tally(ctx context.Context) (domain.Tally, error) {
	tally, err := s.tallies.Tally(ctx)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to compute tally: %w", err)
	}
	return tally, nil
}
