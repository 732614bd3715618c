package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

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
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO candidates (id, name, vote_count, created_at)
		VALUES (?, ?, 0, ?)
	`, candidate.ID.String(), candidate.Name, now.UnixMicro())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCandidate
		}
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	candidate.VoteCount = 0
	candidate.CreatedAt = now.Truncate(time.Microsecond)
	return nil
}

func (r *candidateRepository) DeleteByName(ctx context.Context, name string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM candidates WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return requireOneRow(res, domain.ErrCandidateNotFound)
}

func (r *candidateRepository) Increment(ctx context.Context, candidateID uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `UPDATE candidates SET vote_count = vote_count + 1 WHERE id = ?`, candidateID.String())
	if err != nil {
		return fmt.Errorf("failed to increment candidate: %w", err)
	}
	return requireOneRow(res, domain.ErrCandidateNotFound)
}

// List orders by seq, which AUTOINCREMENT never reuses or renumbers.
func (r *candidateRepository) List(ctx context.Context) ([]*domain.Candidate, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, vote_count, created_at
		FROM candidates
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		var (
			c         domain.Candidate
			id        string
			createdAt int64
		)
		if err := rows.Scan(&id, &c.Name, &c.VoteCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt candidate id %q: %w", id, err)
		}
		c.CreatedAt = time.UnixMicro(createdAt).UTC()
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
