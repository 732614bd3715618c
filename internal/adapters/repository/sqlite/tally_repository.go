package sqlite

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
	var t domain.Tally
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(vote_count), 0) FROM candidates),
			(SELECT COUNT(*) FROM voters WHERE has_voted = 1)
	`).Scan(&t.VotesCounted, &t.VotersConsumed)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("failed to read tally: %w", err)
	}
	return t, nil
}
