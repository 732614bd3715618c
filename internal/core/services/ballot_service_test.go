package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
	"github.com/vncsmyrnk/ballotbox/internal/core/services"
)

func TestBallotService_CastVote(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")

	require.NoError(t, env.ballots.CastVote(ctx, ballot(alice, "s1")))

	voter, err := env.voters.Verify(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, voter.HasVoted)

	results, err := env.results.ListResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{{CandidateName: "Alice", VoteCount: 1}}, results)
}

func TestBallotService_SecondCastRejected(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")
	bob := env.addCandidate(t, "Bob")

	require.NoError(t, env.ballots.CastVote(ctx, ballot(alice, "s1")))

	err := env.ballots.CastVote(ctx, ballot(bob, "s1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	results, err := env.results.ListResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{
		{CandidateName: "Alice", VoteCount: 1},
		{CandidateName: "Bob", VoteCount: 0},
	}, results)
}

func TestBallotService_Rejections(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")

	tests := []struct {
		name    string
		input   ports.CastVoteInput
		wantErr error
	}{
		{"unknown secret", ballot(alice, "nope"), domain.ErrInvalidCredential},
		{"empty secret", ballot(alice, ""), domain.ErrInvalidCredential},
		{"nil candidate", ports.CastVoteInput{Secret: "s1"}, domain.ErrCandidateNotFound},
		{"unknown secret and nil candidate", ports.CastVoteInput{Secret: "nope"}, domain.ErrInvalidCredential},
		{"unknown candidate", ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()}, domain.ErrCandidateNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.ballots.CastVote(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsRejection(err))
		})
	}

	// None of the rejections consumed the voter.
	voter, err := env.voters.Verify(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, voter.HasVoted)

	tally, err := env.results.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Tally{}, tally)
}

func TestBallotService_AuthenticatesBeforeCheckingCandidate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")

	require.NoError(t, env.ballots.CastVote(ctx, ballot(alice, "s1")))

	err := env.ballots.CastVote(ctx, ports.CastVoteInput{Secret: "s1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	err = env.ballots.CastVote(ctx, ports.CastVoteInput{Secret: "s2", CandidateID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestBallotService_CandidateRemovedBeforeCast(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")
	bob := env.addCandidate(t, "Bob")

	require.NoError(t, env.candidates.RemoveCandidate(ctx, "Alice"))

	err := env.ballots.CastVote(ctx, ballot(alice, "s1"))
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)

	// The voter was not consumed, so a retry for a live candidate succeeds.
	require.NoError(t, env.ballots.CastVote(ctx, ballot(bob, "s1")))

	tally, err := env.results.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Tally{VotesCounted: 1, VotersConsumed: 1}, tally)
}

func TestBallotService_ConcurrentCastsSameSecret(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")
	bob := env.addCandidate(t, "Bob")

	const casts = 10
	var wg sync.WaitGroup
	var completed, alreadyVoted atomic.Int32

	for i := 0; i < casts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := alice
			if i%2 == 1 {
				target = bob
			}
			err := env.ballots.CastVote(ctx, ballot(target, "s1"))
			switch {
			case err == nil:
				completed.Add(1)
			case errors.Is(err, domain.ErrAlreadyVoted):
				alreadyVoted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), completed.Load())
	assert.Equal(t, int32(casts-1), alreadyVoted.Load())

	tally, err := env.results.Tally(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Tally{VotesCounted: 1, VotersConsumed: 1}, tally)
}

func TestBallotService_ConcurrentVotersInvariant(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	alice := env.addCandidate(t, "Alice")
	bob := env.addCandidate(t, "Bob")

	const voters = 20
	secrets := make([]string, voters)
	for i := range secrets {
		secrets[i] = uuid.NewString()
		env.register(t, "voter", secrets[i])
	}

	var wg sync.WaitGroup
	for i, secret := range secrets {
		wg.Add(1)
		go func(i int, secret string) {
			defer wg.Done()
			target := alice
			if i%3 == 0 {
				target = bob
			}
			assert.NoError(t, env.ballots.CastVote(ctx, ballot(target, secret)))
		}(i, secret)
	}
	wg.Wait()

	results, err := env.results.ListResults(ctx)
	require.NoError(t, err)

	var sum int64
	for _, r := range results {
		sum += r.VoteCount
	}
	assert.Equal(t, int64(voters), sum)

	tally, err := env.results.Tally(ctx)
	require.NoError(t, err)
	assert.True(t, tally.Balanced())
	assert.Equal(t, int64(voters), tally.VotersConsumed)
}

func TestBallotService_EndToEnd(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	env.register(t, "A", "a1")
	env.register(t, "B", "b1")
	alice := env.addCandidate(t, "Alice")
	bob := env.addCandidate(t, "Bob")

	require.NoError(t, env.ballots.CastVote(ctx, ballot(alice, "a1")))
	require.NoError(t, env.ballots.CastVote(ctx, ballot(alice, "b1")))

	results, err := env.results.ListResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{
		{CandidateName: "Alice", VoteCount: 2},
		{CandidateName: "Bob", VoteCount: 0},
	}, results)

	err = env.ballots.CastVote(ctx, ballot(bob, "a1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

type stubVerifier struct {
	voter *domain.Voter
	err   error
}

func (v stubVerifier) Verify(context.Context, string) (*domain.Voter, error) {
	return v.voter, v.err
}

type failingTransactor struct {
	err error
}

func (f failingTransactor) WithinTx(context.Context, func(context.Context, ports.TxRepositories) error) error {
	return f.err
}

func TestBallotService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")
	voter := &domain.Voter{ID: uuid.New(), Name: "Ada"}

	t.Run("transaction fails", func(t *testing.T) {
		svc := services.NewBallotService(stubVerifier{voter: voter}, failingTransactor{err: diskFull}, time.Second)

		err := svc.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrStorageFailure)
		assert.ErrorIs(t, err, diskFull)
		assert.False(t, domain.IsRejection(err))
	})

	t.Run("lookup fails", func(t *testing.T) {
		svc := services.NewBallotService(stubVerifier{err: diskFull}, failingTransactor{}, time.Second)

		err := svc.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrStorageFailure)
	})

	t.Run("rejections pass through", func(t *testing.T) {
		svc := services.NewBallotService(stubVerifier{voter: voter}, failingTransactor{err: domain.ErrCandidateNotFound}, time.Second)

		err := svc.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
		assert.NotErrorIs(t, err, domain.ErrStorageFailure)
	})

	t.Run("voter vanished inside the transaction", func(t *testing.T) {
		svc := services.NewBallotService(stubVerifier{voter: voter}, failingTransactor{err: domain.ErrInvalidCredential}, time.Second)

		err := svc.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrInvalidCredential)
		assert.NotErrorIs(t, err, domain.ErrStorageFailure)
	})

	t.Run("already consumed voter", func(t *testing.T) {
		consumed := &domain.Voter{ID: uuid.New(), HasVoted: true}
		svc := services.NewBallotService(stubVerifier{voter: consumed}, failingTransactor{err: diskFull}, time.Second)

		err := svc.CastVote(ctx, ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
	})
}

// cancelingTransactor cancels the caller's context right before the
// transaction starts.
type cancelingTransactor struct {
	inner  ports.Transactor
	cancel context.CancelFunc
}

func (c cancelingTransactor) WithinTx(ctx context.Context, fn func(context.Context, ports.TxRepositories) error) error {
	c.cancel()
	return c.inner.WithinTx(ctx, fn)
}

func TestBallotService_CallerCancellationDoesNotAbortCast(t *testing.T) {
	env := setupEnv(t)
	env.register(t, "Ada", "s1")
	alice := env.addCandidate(t, "Alice")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := services.NewBallotService(env.voters, cancelingTransactor{inner: env.transactor, cancel: cancel}, time.Second)
	require.NoError(t, svc.CastVote(ctx, ballot(alice, "s1")))
	require.Error(t, ctx.Err())

	tally, err := env.results.Tally(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Tally{VotesCounted: 1, VotersConsumed: 1}, tally)
}

func TestBallotService_CastTimeout(t *testing.T) {
	voter := &domain.Voter{ID: uuid.New()}
	blocking := transactorFunc(func(ctx context.Context, _ func(context.Context, ports.TxRepositories) error) error {
		<-ctx.Done()
		return ctx.Err()
	})

	svc := services.NewBallotService(stubVerifier{voter: voter}, blocking, 20*time.Millisecond)
	err := svc.CastVote(context.Background(), ports.CastVoteInput{Secret: "s1", CandidateID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type transactorFunc func(context.Context, func(context.Context, ports.TxRepositories) error) error

func (f transactorFunc) WithinTx(ctx context.Context, fn func(context.Context, ports.TxRepositories) error) error {
	return f(ctx, fn)
}
