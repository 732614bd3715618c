package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

type transactor struct {
	db          *sql.DB
	lockTimeout time.Duration
}

// NewTransactor returns a Transactor whose transactions give up waiting on a
// row lock after lockTimeout. Zero leaves the server default in place.
func NewTransactor(db *sql.DB, lockTimeout time.Duration) ports.Transactor {
	return &transactor{db: db, lockTimeout: lockTimeout}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if t.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", t.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	repos := ports.TxRepositories{
		Voters:     &voterRepository{q: tx},
		Candidates: &candidateRepository{q: tx},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
