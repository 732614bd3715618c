package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type voterRepository struct {
	q querier
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{q: db}
}

func (r *voterRepository) Create(ctx context.Context, voter *domain.Voter) error {
	query := `
		INSERT INTO voters (id, name, credential_hash, has_voted)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.q.QueryRowContext(ctx, query, voter.ID, voter.Name, voter.CredentialHash, voter.HasVoted).Scan(&voter.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCredential
		}
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

func (r *voterRepository) GetByCredentialHash(ctx context.Context, hash string) (*domain.Voter, error) {
	query := `
		SELECT id, name, credential_hash, has_voted, created_at
		FROM voters
		WHERE credential_hash = $1
	`
	voter := &domain.Voter{}
	err := r.q.QueryRowContext(ctx, query, hash).Scan(
		&voter.ID,
		&voter.Name,
		&voter.CredentialHash,
		&voter.HasVoted,
		&voter.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return voter, nil
}

func (r *voterRepository) MarkConsumed(ctx context.Context, voterID uuid.UUID) error {
	query := `UPDATE voters SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE`
	res, err := r.q.ExecContext(ctx, query, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter consumed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark voter consumed: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	err = r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM voters WHERE id = $1)`, voterID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check voter: %w", err)
	}
	if !exists {
		return domain.ErrInvalidCredential
	}
	return domain.ErrAlreadyVoted
}
