// Package app assembles the storage backend, credential hasher and core
// services selected by the configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vncsmyrnk/ballotbox/internal/adapters/hashing"
	"github.com/vncsmyrnk/ballotbox/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/ballotbox/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/ballotbox/internal/config"
	"github.com/vncsmyrnk/ballotbox/internal/core/ports"
	"github.com/vncsmyrnk/ballotbox/internal/core/services"
)

type App struct {
	db *sql.DB

	Voters     ports.VoterService
	Candidates ports.CandidateService
	Ballots    ports.BallotService
	Results    ports.ResultService
}

type repositories struct {
	voters     ports.VoterRepository
	candidates ports.CandidateRepository
	tallies    ports.TallyRepository
	transactor ports.Transactor
}

// New opens the configured database, brings its schema up to date and wires
// the services on top of it. The caller owns the returned App and must Close
// it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	hasher, err := hashing.New(cfg.CredentialHasher, cfg.CredentialPepper)
	if err != nil {
		return nil, err
	}

	db, repos, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	voters := services.NewVoterService(repos.voters, hasher)
	return &App{
		db:         db,
		Voters:     voters,
		Candidates: services.NewCandidateService(repos.candidates),
		Ballots:    services.NewBallotService(voters, repos.transactor, cfg.CastTimeout),
		Results:    services.NewResultService(repos.candidates, repos.tallies),
	}, nil
}

// Open connects to the configured database without migrating it.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN())
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath, cfg.LockTimeout)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate applies the schema of the configured backend.
func Migrate(ctx context.Context, cfg config.Config, db *sql.DB) error {
	if cfg.Driver == config.DriverPostgres {
		return postgres.Migrate(ctx, db)
	}
	return sqlite.Migrate(ctx, db)
}

// Rollback drops the schema of the configured backend.
func Rollback(ctx context.Context, cfg config.Config, db *sql.DB) error {
	if cfg.Driver == config.DriverPostgres {
		return postgres.Rollback(ctx, db)
	}
	return sqlite.Rollback(ctx, db)
}

func openStore(ctx context.Context, cfg config.Config) (*sql.DB, repositories, error) {
	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, repositories{}, err
	}

	if err := Migrate(ctx, cfg, db); err != nil {
		db.Close()
		return nil, repositories{}, err
	}
	slog.Info("database schema ready", "driver", cfg.Driver)

	if cfg.Driver == config.DriverPostgres {
		return db, repositories{
			voters:     postgres.NewVoterRepository(db),
			candidates: postgres.NewCandidateRepository(db),
			tallies:    postgres.NewTallyRepository(db),
			transactor: postgres.NewTransactor(db, cfg.LockTimeout),
		}, nil
	}

	return db, repositories{
		voters:     sqlite.NewVoterRepository(db),
		candidates: sqlite.NewCandidateRepository(db),
		tallies:    sqlite.NewTallyRepository(db),
		transactor: sqlite.NewTransactor(db),
	}, nil
}

func (a *App) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *App) Close() error {
	return a.db.Close()
}
