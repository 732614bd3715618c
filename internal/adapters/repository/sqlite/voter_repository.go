package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO voters (id, name, credential_hash, has_voted, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, voter.ID.String(), voter.Name, voter.CredentialHash, voter.HasVoted, now.UnixMicro())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCredential
		}
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	voter.CreatedAt = now.Truncate(time.Microsecond)
	return nil
}

func (r *voterRepository) GetByCredentialHash(ctx context.Context, hash string) (*domain.Voter, error) {
	var (
		voter     domain.Voter
		id        string
		createdAt int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, credential_hash, has_voted, created_at
		FROM voters
		WHERE credential_hash = ?
	`, hash).Scan(&id, &voter.Name, &voter.CredentialHash, &voter.HasVoted, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}

	if voter.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("corrupt voter id %q: %w", id, err)
	}
	voter.CreatedAt = time.UnixMicro(createdAt).UTC()
	return &voter, nil
}

func (r *voterRepository) MarkConsumed(ctx context.Context, voterID uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `UPDATE voters SET has_voted = 1 WHERE id = ? AND has_voted = 0`, voterID.String())
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
	err = r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM voters WHERE id = ?)`, voterID.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check voter: %w", err)
	}
	if !exists {
		return domain.ErrInvalidCredential
	}
	return domain.ErrAlreadyVoted
}
