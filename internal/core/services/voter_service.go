package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type voterService struct {
	repo   ports.VoterRepository
	hasher ports.CredentialHasher
}

func NewVoterService(repo ports.VoterRepository, hasher ports.CredentialHasher) ports.VoterService {
	return &voterService{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *voterService) RegisterVoter(ctx context.Context, input ports.RegisterVoterInput) (*domain.Voter, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: voter name is required", domain.ErrInvalidInput)
	}
	if input.Secret == "" {
		return nil, fmt.Errorf("%w: credential is required", domain.ErrInvalidInput)
	}

	voter := &domain.Voter{
		ID:             uuid.New(),
		Name:           input.Name,
		CredentialHash: s.hasher.Hash(input.Secret),
	}
	if err := s.repo.Create(ctx, voter); err != nil {
		return nil, err
	}

	return voter, nil
}

func (s *voterService) Verify(ctx context.Context, secret string) (*domain.Voter, error) {
	if secret == "" {
		return nil, domain.ErrInvalidCredential
	}
	return s.repo.GetByCredentialHash(ctx, s.hasher.Hash(secret))
}
