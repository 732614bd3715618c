package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type candidateRepository struct {
	q querier
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{q: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, name)
		VALUES ($1, $2)
		RETURNING vote_count, created_at
	`
	err := r.q.QueryRowContext(ctx, query, candidate.ID, candidate.Name).Scan(&candidate.VoteCount, &candidate.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCandidate
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) DeleteByName(ctx context.Context, name string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM candidates WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return requireOneRow(res, domain.ErrCandidateNotFound)
}

func (r *candidateRepository) Increment(ctx context.Context, candidateID uuid.UUID) error {
	query := `UPDATE candidates SET vote_count = vote_count + 1 WHERE id = $1`
	res, err := r.q.ExecContext(ctx, query, candidateID)
	if err != nil {
		return fmt.Errorf("failed to increment candidate: %w", err)
	}
	return requireOneRow(res, domain.ErrCandidateNotFound)
}

func (r *candidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	query := `
		SELECT id, name, vote_count, created_at
		FROM candidates
		ORDER BY seq
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.VoteCount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func requireOneRow(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
