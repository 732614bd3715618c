package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

const DefaultCastTimeout = 5 * time.Second

type ballotService struct {
	verifier    ports.VoterVerifier
	tx          ports.Transactor
	castTimeout time.Duration
}

func NewBallotService(verifier ports.VoterVerifier, tx ports.Transactor, castTimeout time.Duration) ports.BallotService {
	if castTimeout <= 0 {
		castTimeout = DefaultCastTimeout
	}
	return &ballotService{
		verifier:    verifier,
		tx:          tx,
		castTimeout: castTimeout,
	}
}

// CastVote authenticates the secret and records one vote for the candidate.
// The consumption of the voter and the tally increment commit together or
// not at all. An unknown or nil candidate id surfaces as
// domain.ErrCandidateNotFound from inside the rolled-back transaction.
func (s *ballotService) CastVote(ctx context.Context, input ports.CastVoteInput) error {
	voter, err := s.verifier.Verify(ctx, input.Secret)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	if voter.HasVoted {
		return domain.ErrAlreadyVoted
	}

	// Once casting starts the caller can no longer abort it; only the cast
	// deadline can.
	castCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.castTimeout)
	defer cancel()

	err = s.tx.WithinTx(castCtx, func(ctx context.Context, repos ports.TxRepositories) error {
		// has_voted is re-checked here, under the row lock.
		if err := repos.Voters.MarkConsumed(ctx, voter.ID); err != nil {
			return err
		}
		return repos.Candidates.Increment(ctx, input.CandidateID)
	})

	switch {
	case err == nil:
		slog.Info("ballot cast", "voter_id", voter.ID, "candidate_id", input.CandidateID)
		return nil
	case domain.IsRejection(err):
		slog.Debug("ballot rejected", "voter_id", voter.ID, "candidate_id", input.CandidateID, "reason", err)
		return err
	default:
		slog.Error("ballot transaction failed", "voter_id", voter.ID, "candidate_id", input.CandidateID, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
}
