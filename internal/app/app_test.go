package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/ballotbox/internal/config"
	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
)

func sqliteConfig(t *testing.T) config.Config {
	return config.Config{
		Driver:           config.DriverSQLite,
		SQLitePath:       filepath.Join(t.TempDir(), "voting.db"),
		CastTimeout:      time.Second,
		LockTimeout:      time.Second,
		CredentialHasher: "sha256",
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Ping(ctx))

	_, err = a.Voters.RegisterVoter(ctx, ports.RegisterVoterInput{Name: "Ada", Secret: "s1"})
	require.NoError(t, err)
	alice, err := a.Candidates.AddCandidate(ctx, "Alice")
	require.NoError(t, err)

	require.NoError(t, a.Ballots.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: alice.ID}))

	results, err := a.Results.ListResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{{CandidateName: "Alice", VoteCount: 1}}, results)
}

func TestNew_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	a, err := New(ctx, cfg)
	require.NoError(t, err)
	_, err = a.Candidates.AddCandidate(ctx, "Alice")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	a, err = New(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	list, err := a.Candidates.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].Name)
}

func TestNew_UnknownHasher(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.CredentialHasher = "md5"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Driver = "mysql"

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}
