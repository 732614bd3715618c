package services_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/ballotbox/internal/adapters/hashing"
	"github.com/vncsmyrnk/ballotbox/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
	"github.com/vncsmyrnk/ballotbox/internal/core/services"
)

type testEnv struct {
	db         *sql.DB
	voters     ports.VoterService
	candidates ports.CandidateService
	ballots    ports.BallotService
	results    ports.ResultService
	transactor ports.Transactor
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "voting.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	voterRepo := sqlite.NewVoterRepository(db)
	candidateRepo := sqlite.NewCandidateRepository(db)
	transactor := sqlite.NewTransactor(db)

	voters := services.NewVoterService(voterRepo, hashing.SHA256Hasher{})
	return &testEnv{
		db:         db,
		voters:     voters,
		candidates: services.NewCandidateService(candidateRepo),
		ballots:    services.NewBallotService(voters, transactor, services.DefaultCastTimeout),
		results:    services.NewResultService(candidateRepo, sqlite.NewTallyRepository(db)),
		transactor: transactor,
	}
}

func (e *testEnv) register(t *testing.T, name, secret string) {
	t.Helper()
	_, err := e.voters.RegisterVoter(context.Background(), ports.RegisterVoterInput{Name: name, Secret: secret})
	require.NoError(t, err)
}

func (e *testEnv) addCandidate(t *testing.T, name string) ports.CastVoteInput {
	t.Helper()
	c, err := e.candidates.AddCandidate(context.Background(), name)
	require.NoError(t, err)
	return ports.CastVoteInput{CandidateID: c.ID}
}

func ballot(candidate ports.CastVoteInput, secret string) ports.CastVoteInput {
	candidate.Secret = secret
	return candidate
}
