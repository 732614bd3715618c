package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type tallyRepository struct {
	db *sql.DB
}

func NewTallyRepository(db *sql.DB) ports.TallyRepository {
	return &tallyRepository{db: db}
}

func (r *tallyRepository) Tally(ctx context.Context) (domain.Tally, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(vote_count), 0) FROM candidates),
			(SELECT COUNT(*) FROM voters WHERE has_voted)
	`
	var t domain.Tally
	if err := r.db.QueryRowContext(ctx, query).Scan(&t.VotesCounted, &t.VotersConsumed); err != nil {
		return domain.Tally{}, fmt.Errorf("failed to read tally: %w", err)
	}
	return t, nil
}
