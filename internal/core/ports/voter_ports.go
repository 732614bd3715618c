package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
)

type VoterRepository interface {
	// Create inserts voter and fills in its ID and CreatedAt. A credential
	// hash that is already present yields domain.ErrDuplicateCredential.
	Create(ctx context.Context, voter *domain.Voter) error
	// GetByCredentialHash returns domain.ErrInvalidCredential when no voter
	// carries hash.
	GetByCredentialHash(ctx context.Context, hash string) (*domain.Voter, error)
	// MarkConsumed flips has_voted to true. It fails with
	// domain.ErrAlreadyVoted when the row was consumed already, which is how
	// a concurrent cast loses the race.
	MarkConsumed(ctx context.Context, voterID uuid.UUID) error
}

// CredentialHasher turns a registration secret into the digest stored in
// voters.credential_hash. It must be deterministic.
type CredentialHasher interface {
	Hash(secret string) string
}

// VoterVerifier resolves a presented secret to the voter it belongs to. The
// hash comparison is one implementation; a biometric matcher would be
// another.
type VoterVerifier interface {
	Verify(ctx context.Context, secret string) (*domain.Voter, error)
}

type RegisterVoterInput struct {
	Name   string
	Secret string
}

type VoterService interface {
	VoterVerifier
	RegisterVoter(ctx context.Context, input RegisterVoterInput) (*domain.Voter, error)
}
