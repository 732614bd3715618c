package ports

import (
	"context"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
)

type TallyRepository interface {
	// Tally reads both counters in a single statement so they come from the
	// same snapshot.
	Tally(ctx context.Context) (domain.Tally, error)
}

type ResultService interface {
	ListResults(ctx context.Context) ([]domain.Result, error)
	Tally(ctx context.Context) (domain.Tally, error)
}
