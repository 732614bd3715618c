package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/ballotbox/internal/adapters/handler/http"
	"github.com/vncsmyrnk/ballotbox/internal/app"
	"github.com/vncsmyrnk/ballotbox/internal/config"
)

func main() {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	handler := http.NewHandler(http.Handlers{
		Voters:     http.NewVoterHandler(a.Voters),
		Candidates: http.NewCandidateHandler(a.Candidates),
		Ballots:    http.NewBallotHandler(a.Ballots),
		Results:    http.NewResultHandler(a.Results),
		Health:     a,
	})
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "driver", cfg.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	// In-flight ballots finish under their own deadline; give them room.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
