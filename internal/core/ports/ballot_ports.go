package ports

import (
	"context"

	"github.com/google/uuid"
)

// TxRepositories are bound to a single open transaction.
type TxRepositories struct {
	Voters     VoterRepository
	Candidates CandidateRepository
}

// Transactor runs fn inside one database transaction. The transaction commits
// only if fn returns nil; otherwise every write made through repos is rolled
// back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

type CastVoteInput struct {
	Secret      string
	CandidateID uuid.UUID
}

type BallotService interface {
	CastVote(ctx context.Context, input CastVoteInput) error
}
